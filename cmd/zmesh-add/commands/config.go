// Package commands implements the zmesh-add CLI commands.
package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zmesh-protocol/zmesh-go/pkg/inclusion"
	"github.com/zmesh-protocol/zmesh-go/pkg/transport"
)

// ErrInvalidConfig wraps every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the zmesh-add configuration. It is loaded from YAML and then
// overridden by command-line flags.
type Config struct {
	Serial  transport.SerialConfig `yaml:"serial"`
	Request RequestConfig          `yaml:"request"`
	Log     LogConfig              `yaml:"log"`

	// Timeout bounds a listen session (default: 60s).
	Timeout time.Duration `yaml:"timeout"`

	// DeviceClasses is an optional YAML file layered over the built-in
	// device class tables.
	DeviceClasses string `yaml:"deviceClasses"`
}

// RequestConfig holds the add-node request options.
type RequestConfig struct {
	NodeType    string `yaml:"nodeType"`
	HighPower   bool   `yaml:"highPower"`
	NetworkWide bool   `yaml:"networkWide"`
}

// LogConfig selects operational and protocol logging.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `yaml:"level"`

	// Format is text or json.
	Format string `yaml:"format"`

	// ProtocolLog is a .zlog capture path. Empty disables capture.
	ProtocolLog string `yaml:"protocolLog"`
}

// DefaultConfig returns the default configuration: include any node type
// at high power, network wide, with a one minute window.
func DefaultConfig() Config {
	return Config{
		Serial: transport.DefaultSerialConfig(),
		Request: RequestConfig{
			NodeType:    "any",
			HighPower:   true,
			NetworkWide: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Timeout: 60 * time.Second,
	}
}

// LoadConfig reads a YAML configuration file over DefaultConfig.
// An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the settings that do not depend on the command.
func (c Config) Validate() error {
	if _, err := c.Request.Build(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format %q (must be text or json)", ErrInvalidConfig, c.Log.Format)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %v", ErrInvalidConfig, c.Timeout)
	}
	return nil
}

// ValidateListen additionally checks the serial settings.
func (c Config) ValidateListen() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := c.Serial.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Build converts the request options into an inclusion request.
func (r RequestConfig) Build() (inclusion.Request, error) {
	nt, err := inclusion.ParseNodeType(r.NodeType)
	if err != nil {
		return inclusion.Request{}, err
	}
	return inclusion.Request{
		NodeType:    nt,
		HighPower:   r.HighPower,
		NetworkWide: r.NetworkWide,
	}, nil
}

// NewLogger builds the operational logger described by the configuration.
func (c LogConfig) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(c.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", c.Format)
	}
	return slog.New(handler), nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
