package inclusion

import (
	"github.com/zmesh-protocol/zmesh-go/pkg/commandclass"
	"github.com/zmesh-protocol/zmesh-go/pkg/deviceclass"
)

// StatusReport is one decoded add-node callback.
// Reports are immutable once returned by Decode.
type StatusReport struct {
	// Status is always set.
	Status Status

	// Context is non-nil iff Status.HasContext().
	Context StatusContext

	// Raw is a copy of the decoded payload.
	Raw []byte
}

// NodeID returns the node id carried by the report, if any.
func (r *StatusReport) NodeID() (uint8, bool) {
	switch c := r.Context.(type) {
	case NodeContext:
		return c.NodeID, true
	case SlaveContext:
		return c.NodeID, true
	default:
		return 0, false
	}
}

// StatusContext is the status-dependent part of a report.
// It is implemented by NodeContext and SlaveContext.
type StatusContext interface {
	statusContext()
}

// NodeContext is the context of ADDING_CONTROLLER and DONE reports.
type NodeContext struct {
	NodeID uint8 `json:"nodeId" yaml:"nodeId" cbor:"1,keyasint"`
}

func (NodeContext) statusContext() {}

// SlaveContext is the context of ADDING_SLAVE reports.
type SlaveContext struct {
	NodeID     uint8 `json:"nodeId" yaml:"nodeId" cbor:"1,keyasint"`
	BasicClass uint8 `json:"basicClass" yaml:"basicClass" cbor:"2,keyasint"`

	GenericClass  deviceclass.Descriptor `json:"genericClass" yaml:"genericClass" cbor:"3,keyasint"`
	SpecificClass deviceclass.Descriptor `json:"specificClass" yaml:"specificClass" cbor:"4,keyasint"`

	// SupportedCommandClasses precede the Support/Control Mark on the wire.
	SupportedCommandClasses []commandclass.ID `json:"supportedCommandClasses" yaml:"supportedCommandClasses" cbor:"5,keyasint"`

	// ControlledCommandClasses follow the Support/Control Mark on the wire.
	ControlledCommandClasses []commandclass.ID `json:"controlledCommandClasses" yaml:"controlledCommandClasses" cbor:"6,keyasint"`
}

func (SlaveContext) statusContext() {}

// BasicClassName returns the name of the basic device class.
func (c SlaveContext) BasicClassName() string {
	return deviceclass.BasicName(c.BasicClass)
}

// Compile-time interface satisfaction checks.
var (
	_ StatusContext = NodeContext{}
	_ StatusContext = SlaveContext{}
)
