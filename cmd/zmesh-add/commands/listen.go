package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/zmesh-protocol/zmesh-go/pkg/deviceclass"
	"github.com/zmesh-protocol/zmesh-go/pkg/inclusion"
	"github.com/zmesh-protocol/zmesh-go/pkg/log"
	"github.com/zmesh-protocol/zmesh-go/pkg/transport"
	"github.com/zmesh-protocol/zmesh-go/pkg/wire"
)

// Session errors.
var (
	// ErrInclusionFailed is returned when the controller reports FAILED.
	ErrInclusionFailed = errors.New("inclusion failed")

	// ErrInclusionTimeout is returned when no terminal status arrived in time.
	ErrInclusionTimeout = errors.New("inclusion timed out")
)

// SessionConfig configures one inclusion attempt.
type SessionConfig struct {
	// Request opens the inclusion window.
	Request inclusion.Request

	// Timeout bounds the whole attempt.
	Timeout time.Duration

	// Port names the serial device on log events.
	Port string

	// Connection tunes the serial link.
	Connection transport.ConnectionConfig
}

// Session drives one inclusion attempt over a controller link: it opens the
// window, decodes every status report, and closes the window again.
type Session struct {
	config  SessionConfig
	decoder *inclusion.Decoder
	logger  *slog.Logger
	proto   log.Logger
	connID  string

	conn    *transport.Connection
	reports chan *inclusion.StatusReport
	done    chan struct{}

	// OnReport, if set, is called from Run for every decoded report.
	OnReport func(*inclusion.StatusReport)
}

// NewSession creates a session over rwc. The session owns rwc and closes
// it when Run returns.
func NewSession(rwc io.ReadWriteCloser, decoder *inclusion.Decoder, config SessionConfig, logger *slog.Logger, proto log.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Session{
		config:  config,
		decoder: decoder,
		logger:  logger,
		proto:   log.OrNoop(proto),
		connID:  uuid.NewString(),
		reports: make(chan *inclusion.StatusReport, 16),
		done:    make(chan struct{}),
	}
	s.conn = transport.NewConnection(rwc, config.Connection, s)
	s.conn.SetLogger(s.proto, s.connID, config.Port)
	return s
}

// ConnectionID returns the id stamped on the session's log events.
func (s *Session) ConnectionID() string {
	return s.connID
}

// Run performs the attempt and returns the last report received.
//
// It returns nil error once DONE arrives. FAILED yields ErrInclusionFailed
// and an expired timeout ErrInclusionTimeout; in both cases the window is
// stopped before returning.
func (s *Session) Run(ctx context.Context) (*inclusion.StatusReport, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	// The link outlives ctx so the window can be stopped after a timeout.
	if err := s.conn.Start(context.WithoutCancel(ctx)); err != nil {
		return nil, err
	}
	defer s.conn.Close()
	defer close(s.done)

	s.logger.Info("opening inclusion window", "request", s.config.Request.String(), "port", s.config.Port, "conn_id", s.connID)
	if err := s.send(ctx, s.config.Request); err != nil {
		return nil, fmt.Errorf("sending add-node request: %w", err)
	}

	var last *inclusion.StatusReport
	for {
		select {
		case report := <-s.reports:
			s.trackStatus(last, report)
			last = report
			if s.OnReport != nil {
				s.OnReport(report)
			}

			switch report.Status {
			case inclusion.StatusProtocolDone:
				if err := s.stop(ctx); err != nil {
					return last, err
				}
			case inclusion.StatusDone:
				if id, ok := report.NodeID(); ok {
					s.logger.Info("node added", "node_id", id)
				}
				return last, nil
			case inclusion.StatusFailed:
				s.stop(context.WithoutCancel(ctx))
				return last, ErrInclusionFailed
			}

		case <-s.conn.Done():
			return last, transport.ErrConnectionClosed

		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				s.logger.Warn("inclusion window expired", "timeout", s.config.Timeout)
				s.stop(context.WithoutCancel(ctx))
				return last, ErrInclusionTimeout
			}
			s.stop(context.WithoutCancel(ctx))
			return last, ctx.Err()
		}
	}
}

// stop closes the inclusion window.
func (s *Session) stop(ctx context.Context) error {
	req := inclusion.Request{NodeType: inclusion.NodeTypeStop}
	if err := s.send(ctx, req); err != nil {
		s.logger.Warn("failed to stop inclusion window", "error", err)
		return fmt.Errorf("stopping inclusion: %w", err)
	}
	return nil
}

func (s *Session) send(ctx context.Context, req inclusion.Request) error {
	s.logMessage(log.DirectionOut, inclusion.EncodeFrame(req), "", req.String())
	return s.conn.Send(ctx, inclusion.EncodeFrame(req))
}

// OnFrame decodes add-node callbacks. It runs on the read loop.
func (s *Session) OnFrame(f *wire.Frame) {
	if f.Function != wire.FuncAddNodeToNetwork {
		s.logger.Debug("ignoring frame", "key", f.Key().String())
		return
	}

	report, err := s.decoder.DecodeFrame(f)
	if err != nil {
		s.logger.Warn("undecodable add-node callback", "payload", wire.HexBytes(f.Payload).String(), "error", err)
		s.proto.Log(log.Event{
			Timestamp:    time.Now(),
			ConnectionID: s.connID,
			Direction:    log.DirectionIn,
			Layer:        log.LayerWire,
			Category:     log.CategoryError,
			Port:         s.config.Port,
			Error: &log.ErrorEventData{
				Layer:   log.LayerWire,
				Message: err.Error(),
				Context: "decode add-node callback",
			},
		})
		return
	}

	s.logMessage(log.DirectionIn, f, report.Status.String(), report.View())
	s.logger.Debug("status report", "status", report.Status.String())

	select {
	case s.reports <- report:
	case <-s.done:
	}
}

// OnStateChange logs port state changes.
func (s *Session) OnStateChange(oldState, newState transport.ConnectionState) {
	s.proto.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: s.connID,
		Layer:        log.LayerSession,
		Category:     log.CategoryState,
		Port:         s.config.Port,
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntityPort,
			OldState: oldState.String(),
			NewState: newState.String(),
		},
	})
}

// OnError logs link errors.
func (s *Session) OnError(err error) {
	s.logger.Warn("link error", "error", err)
}

// trackStatus records an inclusion status transition.
func (s *Session) trackStatus(prev, next *inclusion.StatusReport) {
	e := log.Event{
		Timestamp:    time.Now(),
		ConnectionID: s.connID,
		Direction:    log.DirectionIn,
		Layer:        log.LayerSession,
		Category:     log.CategoryState,
		Port:         s.config.Port,
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntityInclusion,
			NewState: next.Status.String(),
		},
	}
	if prev != nil {
		e.StateChange.OldState = prev.Status.String()
	}
	if id, ok := next.NodeID(); ok {
		e.NodeID = id
	}
	s.proto.Log(e)
	s.logger.Info("inclusion status", "status", next.Status.String())
}

func (s *Session) logMessage(dir log.Direction, f *wire.Frame, status string, payload any) {
	s.proto.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: s.connID,
		Direction:    dir,
		Layer:        log.LayerWire,
		Category:     log.CategoryMessage,
		Port:         s.config.Port,
		Message: &log.MessageEvent{
			Type:     f.Type,
			Function: f.Function,
			Status:   status,
			Payload:  payload,
		},
	})
}

// RunListen opens the configured serial port and performs one inclusion
// attempt, printing every status report to w.
func RunListen(ctx context.Context, cfg Config, w io.Writer) error {
	if err := cfg.ValidateListen(); err != nil {
		return err
	}
	req, _ := cfg.Request.Build()

	logger, err := cfg.Log.NewLogger(w)
	if err != nil {
		return err
	}
	registry, err := deviceclass.LoadRegistry(cfg.DeviceClasses)
	if err != nil {
		return fmt.Errorf("loading device classes: %w", err)
	}

	// Protocol events reach the console at debug level only.
	var fileLogger log.Logger
	if cfg.Log.ProtocolLog != "" {
		fl, err := log.NewFileLogger(cfg.Log.ProtocolLog)
		if err != nil {
			return fmt.Errorf("opening protocol log: %w", err)
		}
		defer fl.Close()
		fileLogger = fl
	}
	proto := log.NewMultiLogger(log.NewSlogAdapter(logger), fileLogger)

	port, err := transport.OpenSerial(cfg.Serial)
	if err != nil {
		return err
	}

	session := NewSession(port, inclusion.NewDecoder(registry), SessionConfig{
		Request: req,
		Timeout: cfg.Timeout,
		Port:    cfg.Serial.Port,
	}, logger, proto)
	session.OnReport = func(r *inclusion.StatusReport) {
		formatReport(w, r)
	}

	_, err = session.Run(ctx)
	return err
}

// RunPorts lists the serial ports present on the host.
func RunPorts(w io.Writer) error {
	ports, err := transport.ListPorts()
	if err != nil {
		return fmt.Errorf("listing serial ports: %w", err)
	}
	if len(ports) == 0 {
		fmt.Fprintln(w, "No serial ports found")
		return nil
	}
	for _, p := range ports {
		fmt.Fprintln(w, p)
	}
	return nil
}
