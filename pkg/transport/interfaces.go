package transport

import (
	"context"

	"github.com/zmesh-protocol/zmesh-go/pkg/wire"
)

// FrameSender transmits frames to a controller and waits for acknowledgement.
// Implemented by Connection.
type FrameSender interface {
	Send(ctx context.Context, f *wire.Frame) error
}

// UnitReadWriter provides serial API frame I/O.
// Implemented by Framer.
type UnitReadWriter interface {
	// ReadUnit reads the next control byte or data frame.
	ReadUnit() (Unit, error)

	// WriteFrame writes a data frame.
	WriteFrame(f *wire.Frame) error

	// WriteControl writes ACK, NAK or CAN.
	WriteControl(b byte) error
}

// Compile-time interface satisfaction checks.
var (
	_ FrameSender    = (*Connection)(nil)
	_ UnitReadWriter = (*Framer)(nil)
)
