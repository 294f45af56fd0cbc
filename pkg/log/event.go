package log

import (
	"time"

	"github.com/zmesh-protocol/zmesh-go/pkg/wire"
)

// Event represents a protocol log event captured at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ConnectionID uniquely identifies the serial session (UUID).
	ConnectionID string `cbor:"2,keyasint"`

	// Direction indicates frame flow relative to the host.
	Direction Direction `cbor:"3,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// Port is the serial device the controller is attached to.
	Port string `cbor:"6,keyasint,omitempty"`

	// NodeID is the node being included, once known.
	NodeID uint8 `cbor:"7,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Frame       *FrameEvent       `cbor:"10,keyasint,omitempty"` // Transport layer
	Message     *MessageEvent     `cbor:"11,keyasint,omitempty"` // Wire layer (decoded)
	StateChange *StateChangeEvent `cbor:"12,keyasint,omitempty"` // Inclusion progress
	ControlMsg  *ControlMsgEvent  `cbor:"13,keyasint,omitempty"` // ACK/NAK/CAN
	Error       *ErrorEventData   `cbor:"14,keyasint,omitempty"` // Errors at any layer
}

// Direction indicates the direction of frame flow.
type Direction uint8

const (
	// DirectionIn indicates a frame from the controller.
	DirectionIn Direction = 0
	// DirectionOut indicates a frame to the controller.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which protocol layer captured the event.
type Layer uint8

const (
	// LayerTransport is the serial framing layer (raw bytes).
	LayerTransport Layer = 0
	// LayerWire is the message layer (decoded payloads).
	LayerWire Layer = 1
	// LayerSession is the inclusion session driving the controller.
	LayerSession Layer = 2
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerTransport:
		return "TRANSPORT"
	case LayerWire:
		return "WIRE"
	case LayerSession:
		return "SESSION"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryMessage indicates a data frame.
	CategoryMessage Category = 0
	// CategoryControl indicates a single-byte control frame.
	CategoryControl Category = 1
	// CategoryState indicates a state change.
	CategoryState Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryMessage:
		return "MESSAGE"
	case CategoryControl:
		return "CONTROL"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// FrameEvent captures raw frame data at the transport layer.
type FrameEvent struct {
	// Size is the frame size in bytes (including SOF and checksum).
	Size int `cbor:"1,keyasint"`

	// Data is the raw frame bytes (may be truncated for large frames).
	Data []byte `cbor:"2,keyasint,omitempty"`

	// Truncated indicates if Data was truncated.
	Truncated bool `cbor:"3,keyasint,omitempty"`
}

// MessageEvent captures a decoded frame at the wire layer.
type MessageEvent struct {
	// Type distinguishes requests from responses.
	Type wire.FrameType `cbor:"1,keyasint"`

	// Function is the serial API function id.
	Function wire.FunctionID `cbor:"2,keyasint"`

	// Status is the decoded status name, for callbacks that carry one.
	Status string `cbor:"3,keyasint,omitempty"`

	// Decoded payload (CBOR-compatible representation).
	Payload any `cbor:"4,keyasint,omitempty"`
}

// StateChangeEvent captures inclusion session progress.
type StateChangeEvent struct {
	// Entity being changed.
	Entity StateEntity `cbor:"1,keyasint"`

	// OldState is the previous state (may be empty).
	OldState string `cbor:"2,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"3,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"4,keyasint,omitempty"`
}

// StateEntity indicates what entity changed state.
type StateEntity uint8

const (
	// StateEntityPort indicates the serial port opened or closed.
	StateEntityPort StateEntity = 0
	// StateEntityInclusion indicates an add-node status transition.
	StateEntityInclusion StateEntity = 1
)

// String returns the state entity name.
func (s StateEntity) String() string {
	switch s {
	case StateEntityPort:
		return "PORT"
	case StateEntityInclusion:
		return "INCLUSION"
	default:
		return "UNKNOWN"
	}
}

// ControlMsgEvent captures single-byte control frames.
type ControlMsgEvent struct {
	// Type of control frame.
	Type ControlMsgType `cbor:"1,keyasint"`
}

// ControlMsgType indicates the type of control frame.
type ControlMsgType uint8

const (
	// ControlMsgACK acknowledges a data frame.
	ControlMsgACK ControlMsgType = 0
	// ControlMsgNAK rejects a data frame.
	ControlMsgNAK ControlMsgType = 1
	// ControlMsgCAN reports a collision.
	ControlMsgCAN ControlMsgType = 2
)

// String returns the control frame type name.
func (c ControlMsgType) String() string {
	switch c {
	case ControlMsgACK:
		return "ACK"
	case ControlMsgNAK:
		return "NAK"
	case ControlMsgCAN:
		return "CAN"
	default:
		return "UNKNOWN"
	}
}

// ControlMsgTypeFor maps a control byte to its event type.
func ControlMsgTypeFor(b byte) (ControlMsgType, bool) {
	switch b {
	case wire.ACK:
		return ControlMsgACK, true
	case wire.NAK:
		return ControlMsgNAK, true
	case wire.CAN:
		return ControlMsgCAN, true
	default:
		return 0, false
	}
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Code is the error code (if applicable).
	Code *int `cbor:"3,keyasint,omitempty"`

	// Context describes what operation was being performed.
	Context string `cbor:"4,keyasint,omitempty"`
}
