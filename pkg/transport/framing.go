package transport

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/zmesh-protocol/zmesh-go/pkg/log"
	"github.com/zmesh-protocol/zmesh-go/pkg/wire"
)

// MaxLogFrameDataSize is the maximum frame data size to include in logs.
// A serial frame never exceeds it; the limit guards custom writers.
const MaxLogFrameDataSize = 512

// Framing errors.
var (
	// ErrFrameTruncated indicates the stream ended inside a frame.
	ErrFrameTruncated = errors.New("frame truncated")

	// ErrInvalidFrame indicates a complete frame failed validation.
	// The reader has consumed it; the caller should answer with NAK.
	ErrInvalidFrame = errors.New("invalid frame")
)

// Unit is one item read from the serial stream: a single control byte or
// a complete data frame.
type Unit struct {
	// Control is ACK, NAK or CAN. Zero for data frames.
	Control byte

	// Frame is the decoded data frame. Nil for control bytes.
	Frame *wire.Frame

	// Raw holds the bytes of the data frame as received.
	Raw []byte
}

// IsControl reports whether the unit is a control byte.
func (u Unit) IsControl() bool {
	return u.Control != 0
}

// FrameWriter writes data frames and control bytes to an underlying writer.
type FrameWriter struct {
	w  io.Writer
	mu sync.Mutex

	// Logging support (optional)
	logger log.Logger
	connID string
	port   string
}

// NewFrameWriter creates a new frame writer.
func NewFrameWriter(w io.Writer) *FrameWriter {
	return &FrameWriter{w: w}
}

// SetLogger configures logging for this writer.
// Pass nil to disable logging.
func (fw *FrameWriter) SetLogger(logger log.Logger, connID, port string) {
	fw.logger = logger
	fw.connID = connID
	fw.port = port
}

// WriteFrame encodes and writes a data frame.
// Thread-safe: can be called from multiple goroutines.
func (fw *FrameWriter) WriteFrame(f *wire.Frame) error {
	data, err := f.MarshalBinary()
	if err != nil {
		return err
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if _, err := fw.w.Write(data); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	if fw.logger != nil {
		fw.logger.Log(makeFrameEvent(fw.connID, fw.port, data, log.DirectionOut))
	}
	return nil
}

// WriteControl writes a single ACK, NAK or CAN byte.
func (fw *FrameWriter) WriteControl(b byte) error {
	if !wire.IsControlByte(b) {
		return fmt.Errorf("%w: 0x%02X is not a control byte", ErrInvalidFrame, b)
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if _, err := fw.w.Write([]byte{b}); err != nil {
		return fmt.Errorf("failed to write %s: %w", wire.ControlName(b), err)
	}

	if fw.logger != nil {
		fw.logger.Log(makeControlEvent(fw.connID, fw.port, b, log.DirectionOut))
	}
	return nil
}

// FrameReader reads data frames and control bytes from an underlying
// reader, skipping bytes that cannot start either.
type FrameReader struct {
	r *bufio.Reader

	skipped uint64

	// Logging support (optional)
	logger log.Logger
	connID string
	port   string
}

// NewFrameReader creates a new frame reader.
func NewFrameReader(r io.Reader) *FrameReader {
	return &FrameReader{r: bufio.NewReader(r)}
}

// SetLogger configures logging for this reader.
// Pass nil to disable logging.
func (fr *FrameReader) SetLogger(logger log.Logger, connID, port string) {
	fr.logger = logger
	fr.connID = connID
	fr.port = port
}

// Skipped returns the number of garbage bytes discarded while looking for
// the start of a frame.
func (fr *FrameReader) Skipped() uint64 {
	return fr.skipped
}

// ReadUnit reads the next control byte or data frame.
//
// It returns io.EOF if the stream ends between units and ErrFrameTruncated
// if it ends inside a frame. A frame that is complete but invalid (bad
// checksum, bad type) is consumed and reported as ErrInvalidFrame.
func (fr *FrameReader) ReadUnit() (Unit, error) {
	for {
		b, err := fr.r.ReadByte()
		if err != nil {
			return Unit{}, err
		}

		switch {
		case wire.IsControlByte(b):
			if fr.logger != nil {
				fr.logger.Log(makeControlEvent(fr.connID, fr.port, b, log.DirectionIn))
			}
			return Unit{Control: b}, nil
		case b == wire.SOF:
			return fr.readFrame()
		default:
			fr.skipped++
		}
	}
}

// readFrame reads the remainder of a data frame after SOF.
func (fr *FrameReader) readFrame() (Unit, error) {
	length, err := fr.r.ReadByte()
	if err != nil {
		return Unit{}, truncated(err)
	}

	raw := make([]byte, wire.HeaderSize+int(length))
	raw[0] = wire.SOF
	raw[1] = length
	if _, err := io.ReadFull(fr.r, raw[wire.HeaderSize:]); err != nil {
		return Unit{}, truncated(err)
	}

	if fr.logger != nil {
		fr.logger.Log(makeFrameEvent(fr.connID, fr.port, raw, log.DirectionIn))
	}

	f, err := wire.ParseFrame(raw)
	if err != nil {
		if fr.logger != nil {
			fr.logger.Log(makeErrorEvent(fr.connID, fr.port, err, "parse frame"))
		}
		return Unit{Raw: raw}, fmt.Errorf("%w: %w", ErrInvalidFrame, err)
	}
	return Unit{Frame: f, Raw: raw}, nil
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrFrameTruncated
	}
	return fmt.Errorf("failed to read frame: %w", err)
}

// Framer combines frame reading and writing.
type Framer struct {
	*FrameReader
	*FrameWriter
}

// NewFramer creates a new framer for bidirectional communication.
func NewFramer(rw io.ReadWriter) *Framer {
	return &Framer{
		FrameReader: NewFrameReader(rw),
		FrameWriter: NewFrameWriter(rw),
	}
}

// SetLogger configures logging for both reader and writer.
// Pass nil to disable logging.
func (f *Framer) SetLogger(logger log.Logger, connID, port string) {
	f.FrameReader.SetLogger(logger, connID, port)
	f.FrameWriter.SetLogger(logger, connID, port)
}

// makeFrameEvent creates a log event for a data frame.
func makeFrameEvent(connID, port string, data []byte, direction log.Direction) log.Event {
	frameData := data
	truncated := false
	if len(data) > MaxLogFrameDataSize {
		frameData = data[:MaxLogFrameDataSize]
		truncated = true
	}

	return log.Event{
		Timestamp:    time.Now(),
		ConnectionID: connID,
		Direction:    direction,
		Layer:        log.LayerTransport,
		Category:     log.CategoryMessage,
		Port:         port,
		Frame: &log.FrameEvent{
			Size:      len(data),
			Data:      append([]byte(nil), frameData...),
			Truncated: truncated,
		},
	}
}

// makeControlEvent creates a log event for a control byte.
func makeControlEvent(connID, port string, b byte, direction log.Direction) log.Event {
	typ, _ := log.ControlMsgTypeFor(b)
	return log.Event{
		Timestamp:    time.Now(),
		ConnectionID: connID,
		Direction:    direction,
		Layer:        log.LayerTransport,
		Category:     log.CategoryControl,
		Port:         port,
		ControlMsg:   &log.ControlMsgEvent{Type: typ},
	}
}

// makeErrorEvent creates a log event for a transport error.
func makeErrorEvent(connID, port string, err error, context string) log.Event {
	return log.Event{
		Timestamp:    time.Now(),
		ConnectionID: connID,
		Direction:    log.DirectionIn,
		Layer:        log.LayerTransport,
		Category:     log.CategoryError,
		Port:         port,
		Error: &log.ErrorEventData{
			Layer:   log.LayerTransport,
			Message: err.Error(),
			Context: context,
		},
	}
}
