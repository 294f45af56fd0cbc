// Package log provides structured protocol logging for serial controller
// sessions.
//
// This package defines the Logger interface and Event types for capturing
// protocol-level events at multiple layers (transport, wire, session).
// It is separate from operational logging (slog) - protocol capture provides
// a complete machine-readable event trace for debugging and analysis.
//
// # Basic Usage
//
// Applications configure logging by providing a Logger implementation:
//
//	// For development: log to console via slog
//	logger := log.NewSlogAdapter(slog.Default())
//
//	// For capture: write to binary file
//	logger, _ := log.NewFileLogger("/var/log/zmesh/inclusion.zlog")
//
//	// Both: use MultiLogger
//	logger := log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
// Events are captured at multiple layers:
//   - Transport: Raw frame bytes (FrameEvent) and ACK/NAK/CAN (ControlMsgEvent)
//   - Wire: Decoded frames (MessageEvent)
//   - Session: Inclusion progress (StateChangeEvent)
//
// Errors at any layer have a dedicated event type.
//
// # File Format
//
// Log files are a stream of CBOR-encoded events with the .zlog extension.
// The zmesh-add view command reads and filters them.
package log
