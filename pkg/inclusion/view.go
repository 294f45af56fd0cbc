package inclusion

import "github.com/zmesh-protocol/zmesh-go/pkg/wire"

// Record is the diagnostic projection of a StatusReport, for logging only.
//
// Context holds the report's StatusContext when one was decoded. Payload
// holds the raw bytes only when no context was decoded, so an interpreted
// report is never logged twice.
type Record struct {
	Status     string        `json:"status" yaml:"status" cbor:"1,keyasint"`
	StatusCode uint8         `json:"statusCode" yaml:"statusCode" cbor:"2,keyasint"`
	Context    StatusContext `json:"context,omitempty" yaml:"context,omitempty" cbor:"3,keyasint,omitempty"`
	Payload    wire.HexBytes `json:"payload,omitempty" yaml:"payload,omitempty" cbor:"4,keyasint,omitempty"`
}

// View returns the diagnostic record of the report.
func (r *StatusReport) View() Record {
	rec := Record{
		Status:     r.Status.String(),
		StatusCode: uint8(r.Status),
	}
	if r.Context != nil {
		rec.Context = r.Context
	} else {
		rec.Payload = append(wire.HexBytes(nil), r.Raw...)
	}
	return rec
}
