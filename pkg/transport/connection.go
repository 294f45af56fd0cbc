package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zmesh-protocol/zmesh-go/pkg/log"
	"github.com/zmesh-protocol/zmesh-go/pkg/wire"
)

// Connection states.
type ConnectionState int

const (
	// StateDisconnected indicates the port is not being serviced.
	StateDisconnected ConnectionState = iota

	// StateConnected indicates the read loop is running.
	StateConnected

	// StateClosing indicates close in progress.
	StateClosing
)

// String returns the connection state name.
func (s ConnectionState) String() string {
	switch s {
	case StateDisconnected:
		return "DISCONNECTED"
	case StateConnected:
		return "CONNECTED"
	case StateClosing:
		return "CLOSING"
	default:
		return "UNKNOWN"
	}
}

// Connection errors.
var (
	ErrNotConnected     = errors.New("not connected")
	ErrAlreadyConnected = errors.New("already connected")
	ErrConnectionClosed = errors.New("connection closed")
	ErrCloseTimeout     = errors.New("close timeout")

	// ErrNoAck is returned by Send when every attempt went unacknowledged.
	ErrNoAck = errors.New("frame not acknowledged")
)

// ConnectionConfig configures a serial connection.
type ConnectionConfig struct {
	// AckTimeout bounds the wait for ACK after each transmission (default: 1.6s).
	AckTimeout time.Duration

	// MaxRetries is the number of retransmissions after NAK, CAN or
	// timeout (default: 3).
	MaxRetries int

	// RetryBackoff is added per attempt before retransmitting (default: 100ms).
	RetryBackoff time.Duration

	// CloseTimeout bounds the wait for the read loop to stop (default: 2s).
	CloseTimeout time.Duration
}

// DefaultConnectionConfig returns the default connection configuration.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		AckTimeout:   1600 * time.Millisecond,
		MaxRetries:   3,
		RetryBackoff: 100 * time.Millisecond,
		CloseTimeout: 2 * time.Second,
	}
}

func (c ConnectionConfig) withDefaults() ConnectionConfig {
	d := DefaultConnectionConfig()
	if c.AckTimeout == 0 {
		c.AckTimeout = d.AckTimeout
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = d.MaxRetries
	}
	if c.RetryBackoff == 0 {
		c.RetryBackoff = d.RetryBackoff
	}
	if c.CloseTimeout == 0 {
		c.CloseTimeout = d.CloseTimeout
	}
	return c
}

// ConnectionHandler handles connection events. Callbacks run on the read
// loop goroutine and must not call Send synchronously.
type ConnectionHandler interface {
	// OnFrame is called for every valid data frame, after it was acknowledged.
	OnFrame(f *wire.Frame)

	// OnStateChange is called when the connection state changes.
	OnStateChange(oldState, newState ConnectionState)

	// OnError is called when an error occurs.
	OnError(err error)
}

// Connection services a serial link to a controller: it acknowledges
// incoming frames and retransmits outgoing ones until acknowledged.
type Connection struct {
	config  ConnectionConfig
	handler ConnectionHandler

	rwc    io.ReadWriteCloser
	framer *Framer

	state     atomic.Int32
	closeOnce sync.Once
	closeDone chan struct{}

	// ackCh carries control bytes to the pending Send.
	ackCh  chan byte
	sendMu sync.Mutex

	ctx    context.Context
	cancel context.CancelFunc
}

// NewConnection wraps rwc. The read loop starts with Start.
func NewConnection(rwc io.ReadWriteCloser, config ConnectionConfig, handler ConnectionHandler) *Connection {
	c := &Connection{
		config:    config.withDefaults(),
		handler:   handler,
		rwc:       rwc,
		framer:    NewFramer(rwc),
		closeDone: make(chan struct{}),
		ackCh:     make(chan byte, 1),
	}
	c.state.Store(int32(StateDisconnected))
	return c
}

// SetLogger configures protocol logging. Call before Start.
func (c *Connection) SetLogger(logger log.Logger, connID, port string) {
	c.framer.SetLogger(logger, connID, port)
}

// State returns the current connection state.
func (c *Connection) State() ConnectionState {
	return ConnectionState(c.state.Load())
}

// Start begins servicing the link. The connection stops when ctx is
// cancelled, Close is called or the link fails.
func (c *Connection) Start(ctx context.Context) error {
	if !c.state.CompareAndSwap(int32(StateDisconnected), int32(StateConnected)) {
		return ErrAlreadyConnected
	}
	c.ctx, c.cancel = context.WithCancel(ctx)
	c.notifyStateChange(StateDisconnected, StateConnected)

	go c.readLoop()
	go func() {
		select {
		case <-c.ctx.Done():
			c.Close()
		case <-c.closeDone:
		}
	}()
	return nil
}

// Send transmits a frame and waits for the controller's ACK, retransmitting
// after NAK, CAN or timeout. Only one Send is in flight at a time.
func (c *Connection) Send(ctx context.Context, f *wire.Frame) error {
	if c.State() != StateConnected {
		return ErrNotConnected
	}

	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := sleepCtx(ctx, time.Duration(attempt)*c.config.RetryBackoff); err != nil {
				return err
			}
		}

		// Discard a stale control byte from an earlier exchange.
		select {
		case <-c.ackCh:
		default:
		}

		if err := c.framer.WriteFrame(f); err != nil {
			return err
		}

		lastErr = c.awaitAck(ctx)
		if lastErr == nil {
			return nil
		}
		if !errors.Is(lastErr, ErrNoAck) {
			return lastErr
		}
	}
	return fmt.Errorf("%s after %d attempts: %w", f.Key(), c.config.MaxRetries+1, lastErr)
}

// awaitAck waits for the control byte answering the last transmission.
func (c *Connection) awaitAck(ctx context.Context) error {
	timer := time.NewTimer(c.config.AckTimeout)
	defer timer.Stop()

	select {
	case b := <-c.ackCh:
		if b == wire.ACK {
			return nil
		}
		return fmt.Errorf("%w: got %s", ErrNoAck, wire.ControlName(b))
	case <-timer.C:
		return fmt.Errorf("%w: timeout after %v", ErrNoAck, c.config.AckTimeout)
	case <-ctx.Done():
		return ctx.Err()
	case <-c.closeDone:
		return ErrConnectionClosed
	}
}

// Close stops the read loop and closes the underlying port.
func (c *Connection) Close() error {
	var closeErr error

	c.closeOnce.Do(func() {
		current := c.State()
		if current == StateDisconnected {
			return
		}

		c.state.Store(int32(StateClosing))
		c.notifyStateChange(current, StateClosing)

		if c.cancel != nil {
			c.cancel()
		}
		closeErr = c.rwc.Close()

		select {
		case <-c.closeDone:
		case <-time.After(c.config.CloseTimeout):
			if closeErr == nil {
				closeErr = ErrCloseTimeout
			}
		}

		c.state.Store(int32(StateDisconnected))
		c.notifyStateChange(StateClosing, StateDisconnected)
	})

	return closeErr
}

// Done is closed once the read loop has stopped.
func (c *Connection) Done() <-chan struct{} {
	return c.closeDone
}

// readLoop reads units until the link fails or the connection closes.
func (c *Connection) readLoop() {
	defer close(c.closeDone)

	for {
		unit, err := c.framer.ReadUnit()
		if err != nil {
			if errors.Is(err, ErrInvalidFrame) {
				c.framer.WriteControl(wire.NAK)
				c.notifyError(err)
				continue
			}
			if c.State() == StateClosing || c.ctx.Err() != nil {
				return
			}
			c.notifyError(fmt.Errorf("read error: %w", err))
			go c.Close()
			return
		}

		if unit.IsControl() {
			select {
			case c.ackCh <- unit.Control:
			default:
			}
			continue
		}

		if err := c.framer.WriteControl(wire.ACK); err != nil {
			c.notifyError(err)
		}
		if c.handler != nil {
			c.handler.OnFrame(unit.Frame)
		}
	}
}

func (c *Connection) notifyStateChange(oldState, newState ConnectionState) {
	if c.handler != nil {
		c.handler.OnStateChange(oldState, newState)
	}
}

func (c *Connection) notifyError(err error) {
	if c.handler != nil {
		c.handler.OnError(err)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
