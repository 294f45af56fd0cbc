package inclusion

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zmesh-protocol/zmesh-go/pkg/wire"
)

// Key is the dispatch key of add-node frames. Status callbacks arrive as
// controller-initiated requests with this function id.
var Key = wire.MessageKey{Type: wire.FrameTypeRequest, Function: wire.FuncAddNodeToNetwork}

// Priority is the outbound queuing class of the add-node command.
const Priority = wire.PriorityController

// NodeType selects which kind of node the controller accepts, or stops
// the inclusion window.
type NodeType uint8

const (
	NodeTypeAny        NodeType = 1
	NodeTypeController NodeType = 2
	NodeTypeSlave      NodeType = 3
	NodeTypeExisting   NodeType = 4
	NodeTypeStop       NodeType = 5
	NodeTypeStopFailed NodeType = 6
)

// String returns the node type name.
func (t NodeType) String() string {
	switch t {
	case NodeTypeAny:
		return "ANY"
	case NodeTypeController:
		return "CONTROLLER"
	case NodeTypeSlave:
		return "SLAVE"
	case NodeTypeExisting:
		return "EXISTING"
	case NodeTypeStop:
		return "STOP"
	case NodeTypeStopFailed:
		return "STOP_FAILED"
	default:
		return "UNKNOWN"
	}
}

// IsValid returns true for the defined node types.
func (t NodeType) IsValid() bool {
	return t >= NodeTypeAny && t <= NodeTypeStopFailed
}

// ErrInvalidNodeType is returned by ParseNodeType.
var ErrInvalidNodeType = errors.New("invalid node type")

// ParseNodeType parses a node type name such as "any" or "stop_failed".
func ParseNodeType(s string) (NodeType, error) {
	name := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	for t := NodeTypeAny; t <= NodeTypeStopFailed; t++ {
		if t.String() == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidNodeType, s)
}

// Status is the add-node callback status.
type Status uint8

const (
	// StatusReady indicates the controller opened the inclusion window.
	StatusReady Status = 1

	// StatusNodeFound indicates a node answered the inclusion request.
	StatusNodeFound Status = 2

	// StatusAddingSlave carries the node information of an end node.
	StatusAddingSlave Status = 3

	// StatusAddingController carries the node id of a controller being added.
	StatusAddingController Status = 4

	// StatusProtocolDone indicates the protocol part of inclusion finished.
	StatusProtocolDone Status = 5

	// StatusDone indicates the node was added.
	StatusDone Status = 6

	// StatusFailed indicates the inclusion attempt failed.
	StatusFailed Status = 7
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "READY"
	case StatusNodeFound:
		return "NODE_FOUND"
	case StatusAddingSlave:
		return "ADDING_SLAVE"
	case StatusAddingController:
		return "ADDING_CONTROLLER"
	case StatusProtocolDone:
		return "PROTOCOL_DONE"
	case StatusDone:
		return "DONE"
	case StatusFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// HasContext returns true if reports with this status carry a StatusContext.
func (s Status) HasContext() bool {
	switch s {
	case StatusAddingSlave, StatusAddingController, StatusDone:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if no further reports follow for this attempt.
func (s Status) IsTerminal() bool {
	return s == StatusDone || s == StatusFailed
}

// MinPayloadLength returns the minimum payload length for a report with this status.
func (s Status) MinPayloadLength() int {
	switch s {
	case StatusAddingSlave:
		return slavePrefixLength
	case StatusAddingController, StatusDone:
		return 3
	default:
		return minPayloadLength
	}
}

// Payload layout.
const (
	// minPayloadLength covers the opaque byte and the status byte.
	minPayloadLength = 2

	// slavePrefixLength is the fixed part of an ADDING_SLAVE payload.
	slavePrefixLength = 7
)
