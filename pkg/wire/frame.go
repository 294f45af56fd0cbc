package wire

import (
	"errors"
	"fmt"
)

// Frame delimiters and control bytes.
const (
	SOF byte = 0x01
	ACK byte = 0x06
	NAK byte = 0x15
	CAN byte = 0x18
)

// Frame layout constants.
const (
	// HeaderSize is SOF + LEN.
	HeaderSize = 2

	// MinFrameSize is a data frame with an empty payload.
	MinFrameSize = 5

	// MaxPayloadSize keeps LEN within a single byte.
	MaxPayloadSize = 0xFF - 3
)

// Frame errors.
var (
	ErrNotSOF          = errors.New("frame does not start with SOF")
	ErrFrameTooShort   = errors.New("frame too short")
	ErrLengthMismatch  = errors.New("frame length mismatch")
	ErrChecksum        = errors.New("frame checksum mismatch")
	ErrPayloadTooLarge = errors.New("payload too large")
	ErrInvalidType     = errors.New("invalid frame type")
)

// Frame is a decoded data frame.
type Frame struct {
	Type     FrameType
	Function FunctionID
	Payload  []byte
}

// NewRequest creates a request frame.
func NewRequest(fn FunctionID, payload []byte) *Frame {
	return &Frame{Type: FrameTypeRequest, Function: fn, Payload: payload}
}

// Checksum computes the frame checksum over LEN..last payload byte.
func Checksum(data []byte) byte {
	sum := byte(0xFF)
	for _, b := range data {
		sum ^= b
	}
	return sum
}

// Size returns the encoded size of the frame in bytes.
func (f *Frame) Size() int {
	return MinFrameSize + len(f.Payload)
}

// MarshalBinary encodes the frame including SOF, length and checksum.
func (f *Frame) MarshalBinary() ([]byte, error) {
	if len(f.Payload) > MaxPayloadSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrPayloadTooLarge, len(f.Payload), MaxPayloadSize)
	}
	if !f.Type.IsValid() {
		return nil, fmt.Errorf("%w: 0x%02X", ErrInvalidType, uint8(f.Type))
	}

	buf := make([]byte, 0, f.Size())
	buf = append(buf, SOF, byte(len(f.Payload)+3), byte(f.Type), byte(f.Function))
	buf = append(buf, f.Payload...)
	buf = append(buf, Checksum(buf[1:]))
	return buf, nil
}

// ParseFrame decodes a complete data frame. The returned payload does not
// alias data.
func ParseFrame(data []byte) (*Frame, error) {
	if len(data) == 0 || data[0] != SOF {
		return nil, ErrNotSOF
	}
	if len(data) < MinFrameSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrFrameTooShort, len(data))
	}

	length := int(data[1])
	if length < 3 || length+HeaderSize != len(data) {
		return nil, fmt.Errorf("%w: LEN=%d, frame=%d bytes", ErrLengthMismatch, length, len(data))
	}

	last := len(data) - 1
	if want := Checksum(data[1:last]); data[last] != want {
		return nil, fmt.Errorf("%w: got 0x%02X, want 0x%02X", ErrChecksum, data[last], want)
	}

	ft := FrameType(data[2])
	if !ft.IsValid() {
		return nil, fmt.Errorf("%w: 0x%02X", ErrInvalidType, data[2])
	}

	payload := make([]byte, last-4)
	copy(payload, data[4:last])

	return &Frame{
		Type:     ft,
		Function: FunctionID(data[3]),
		Payload:  payload,
	}, nil
}

// IsControlByte returns true for ACK, NAK and CAN.
func IsControlByte(b byte) bool {
	return b == ACK || b == NAK || b == CAN
}

// ControlName returns the name of a control byte.
func ControlName(b byte) string {
	switch b {
	case ACK:
		return "ACK"
	case NAK:
		return "NAK"
	case CAN:
		return "CAN"
	default:
		return "UNKNOWN"
	}
}
