package inclusion

import (
	"errors"
	"fmt"

	"github.com/zmesh-protocol/zmesh-go/pkg/commandclass"
	"github.com/zmesh-protocol/zmesh-go/pkg/deviceclass"
	"github.com/zmesh-protocol/zmesh-go/pkg/wire"
)

// Decode errors.
var (
	// ErrMalformedPayload matches every *MalformedPayloadError.
	ErrMalformedPayload = errors.New("malformed add-node payload")

	// ErrUnexpectedFunction is returned by DecodeFrame for frames that are
	// not add-node callbacks.
	ErrUnexpectedFunction = errors.New("not an add-node callback")
)

// MalformedPayloadError reports a payload too short for its status.
// Status is zero when the payload is too short to carry a status byte.
type MalformedPayloadError struct {
	Status            Status
	ExpectedMinLength int
	ActualLength      int
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("%v: status %s (%d) needs at least %d bytes, got %d",
		ErrMalformedPayload, e.Status, uint8(e.Status), e.ExpectedMinLength, e.ActualLength)
}

// Is makes errors.Is(err, ErrMalformedPayload) match.
func (e *MalformedPayloadError) Is(target error) bool {
	return target == ErrMalformedPayload
}

// Decoder decodes add-node status reports.
// A Decoder is immutable and safe for concurrent use.
type Decoder struct {
	registry deviceclass.Registry
	mark     commandclass.ID
}

// NewDecoder creates a decoder resolving device classes through registry.
// A nil registry selects deviceclass.Default().
func NewDecoder(registry deviceclass.Registry) *Decoder {
	if registry == nil {
		registry = deviceclass.Default()
	}
	return &Decoder{
		registry: registry,
		mark:     commandclass.SupportControlMark,
	}
}

var defaultDecoder = NewDecoder(nil)

// Decode decodes a report using the built-in device class tables.
func Decode(payload []byte) (*StatusReport, error) {
	return defaultDecoder.Decode(payload)
}

// Decode decodes one add-node callback payload, already stripped of the
// frame envelope. It never returns a partial report.
func (d *Decoder) Decode(payload []byte) (*StatusReport, error) {
	if len(payload) < minPayloadLength {
		return nil, &MalformedPayloadError{
			ExpectedMinLength: minPayloadLength,
			ActualLength:      len(payload),
		}
	}

	status := Status(payload[1])
	if need := status.MinPayloadLength(); len(payload) < need {
		return nil, &MalformedPayloadError{
			Status:            status,
			ExpectedMinLength: need,
			ActualLength:      len(payload),
		}
	}

	report := &StatusReport{
		Status: status,
		Raw:    append([]byte(nil), payload...),
	}

	switch status {
	case StatusAddingController, StatusDone:
		report.Context = NodeContext{NodeID: payload[2]}
	case StatusAddingSlave:
		report.Context = d.decodeSlave(payload)
	}

	return report, nil
}

// decodeSlave decodes an ADDING_SLAVE payload. payload[3] is a length field
// covered by the envelope and is not interpreted.
func (d *Decoder) decodeSlave(payload []byte) SlaveContext {
	generic, specific := payload[5], payload[6]
	supported, controlled := splitCommandClasses(payload[slavePrefixLength:], d.mark)

	return SlaveContext{
		NodeID:                   payload[2],
		BasicClass:               payload[4],
		GenericClass:             d.registry.LookupGeneric(generic),
		SpecificClass:            d.registry.LookupSpecific(generic, specific),
		SupportedCommandClasses:  supported,
		ControlledCommandClasses: controlled,
	}
}

// splitCommandClasses splits a node information list at mark in a single
// pass. Every mark occurrence is consumed; bytes after the first mark are
// controlled, bytes before it supported. Order is preserved in both lists.
func splitCommandClasses(list []byte, mark commandclass.ID) (supported, controlled []commandclass.ID) {
	supported = make([]commandclass.ID, 0, len(list))
	controlled = make([]commandclass.ID, 0)

	afterMark := false
	for _, b := range list {
		id := commandclass.ID(b)
		if id == mark {
			afterMark = true
			continue
		}
		if afterMark {
			controlled = append(controlled, id)
		} else {
			supported = append(supported, id)
		}
	}
	return supported, controlled
}

// DecodeFrame decodes the payload of an add-node callback frame.
func (d *Decoder) DecodeFrame(f *wire.Frame) (*StatusReport, error) {
	if f.Key() != Key {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedFunction, f.Key())
	}
	return d.Decode(f.Payload)
}

// DecodeFrame decodes a callback frame using the built-in device class tables.
func DecodeFrame(f *wire.Frame) (*StatusReport, error) {
	return defaultDecoder.DecodeFrame(f)
}
