package inclusion

import (
	"fmt"

	"github.com/zmesh-protocol/zmesh-go/pkg/wire"
)

// Mode flags of the request byte.
const (
	FlagHighPower   byte = 0x80
	FlagNetworkWide byte = 0x40
)

// Request opens, or stops, the inclusion window.
type Request struct {
	NodeType    NodeType
	HighPower   bool
	NetworkWide bool
}

// NewRequest returns a request accepting any node type with both flags off.
func NewRequest() Request {
	return Request{NodeType: NodeTypeAny}
}

// String returns a short description such as "ANY+HIGH_POWER".
func (r Request) String() string {
	s := r.NodeType.String()
	if r.HighPower {
		s += "+HIGH_POWER"
	}
	if r.NetworkWide {
		s += "+NETWORK_WIDE"
	}
	return s
}

// Encode returns the single-byte request payload.
func Encode(r Request) []byte {
	mode := byte(r.NodeType)
	if r.HighPower {
		mode |= FlagHighPower
	}
	if r.NetworkWide {
		mode |= FlagNetworkWide
	}
	return []byte{mode}
}

// EncodeFrame wraps the encoded request in an ADD_NODE_TO_NETWORK request frame.
func EncodeFrame(r Request) *wire.Frame {
	return wire.NewRequest(wire.FuncAddNodeToNetwork, Encode(r))
}

// MarshalFrame encodes the request as a complete serial frame.
func MarshalFrame(r Request) ([]byte, error) {
	data, err := EncodeFrame(r).MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("encoding add-node request: %w", err)
	}
	return data, nil
}
