package wire

import "fmt"

// FrameType distinguishes requests from responses.
type FrameType uint8

const (
	// FrameTypeRequest is a host command or an unsolicited controller callback.
	FrameTypeRequest FrameType = 0x00

	// FrameTypeResponse is the controller's immediate reply to a request.
	FrameTypeResponse FrameType = 0x01
)

// String returns the frame type name.
func (t FrameType) String() string {
	switch t {
	case FrameTypeRequest:
		return "REQUEST"
	case FrameTypeResponse:
		return "RESPONSE"
	default:
		return "UNKNOWN"
	}
}

// IsValid returns true if the frame type is defined.
func (t FrameType) IsValid() bool {
	return t == FrameTypeRequest || t == FrameTypeResponse
}

// FunctionID identifies a serial API command.
type FunctionID uint8

const (
	FuncGetInitData               FunctionID = 0x02
	FuncApplicationCommandHandler FunctionID = 0x04
	FuncGetControllerCapabilities FunctionID = 0x05
	FuncSendData                  FunctionID = 0x13
	FuncGetVersion                FunctionID = 0x15
	FuncMemoryGetID               FunctionID = 0x20
	FuncGetNodeProtocolInfo       FunctionID = 0x41
	FuncApplicationUpdate         FunctionID = 0x49
	FuncAddNodeToNetwork          FunctionID = 0x4A
	FuncRemoveNodeFromNetwork     FunctionID = 0x4B
	FuncSetLearnMode              FunctionID = 0x50
	FuncRequestNodeInfo           FunctionID = 0x60
)

// String returns the function name.
func (f FunctionID) String() string {
	switch f {
	case FuncGetInitData:
		return "GET_INIT_DATA"
	case FuncApplicationCommandHandler:
		return "APPLICATION_COMMAND_HANDLER"
	case FuncGetControllerCapabilities:
		return "GET_CONTROLLER_CAPABILITIES"
	case FuncSendData:
		return "SEND_DATA"
	case FuncGetVersion:
		return "GET_VERSION"
	case FuncMemoryGetID:
		return "MEMORY_GET_ID"
	case FuncGetNodeProtocolInfo:
		return "GET_NODE_PROTOCOL_INFO"
	case FuncApplicationUpdate:
		return "APPLICATION_UPDATE"
	case FuncAddNodeToNetwork:
		return "ADD_NODE_TO_NETWORK"
	case FuncRemoveNodeFromNetwork:
		return "REMOVE_NODE_FROM_NETWORK"
	case FuncSetLearnMode:
		return "SET_LEARN_MODE"
	case FuncRequestNodeInfo:
		return "REQUEST_NODE_INFO"
	default:
		return fmt.Sprintf("UNKNOWN(0x%02X)", uint8(f))
	}
}

// MessageKey identifies a message type for dispatch.
type MessageKey struct {
	Type     FrameType
	Function FunctionID
}

// String returns "TYPE/FUNCTION".
func (k MessageKey) String() string {
	return k.Type.String() + "/" + k.Function.String()
}

// Key returns the dispatch key of the frame.
func (f *Frame) Key() MessageKey {
	return MessageKey{Type: f.Type, Function: f.Function}
}

// Priority classifies outbound messages for queuing.
// Lower value = sent first. The wire format does not carry it.
type Priority uint8

const (
	// PriorityImmediate is for messages that must preempt everything else.
	PriorityImmediate Priority = 0

	// PriorityController is for controller management commands
	// (inclusion, exclusion, learn mode).
	PriorityController Priority = 1

	// PriorityNormal is for regular application traffic.
	PriorityNormal Priority = 2

	// PriorityPoll is for background polling.
	PriorityPoll Priority = 3
)

// String returns the priority name.
func (p Priority) String() string {
	switch p {
	case PriorityImmediate:
		return "IMMEDIATE"
	case PriorityController:
		return "CONTROLLER"
	case PriorityNormal:
		return "NORMAL"
	case PriorityPoll:
		return "POLL"
	default:
		return "UNKNOWN"
	}
}
