package transport

import (
	"errors"
	"fmt"

	"go.bug.st/serial"
)

// DefaultBaudRate is the serial API line speed.
const DefaultBaudRate = 115200

// ErrNoPort is returned by SerialConfig.Validate when no port is named.
var ErrNoPort = errors.New("serial port not set")

// SerialConfig selects the controller's serial device.
type SerialConfig struct {
	// Port is the device path, e.g. /dev/ttyACM0 or COM3.
	Port string `yaml:"port"`

	// BaudRate is the line speed (default: 115200). Framing is always 8N1.
	BaudRate int `yaml:"baudRate"`
}

// DefaultSerialConfig returns the serial API line settings with no port.
func DefaultSerialConfig() SerialConfig {
	return SerialConfig{BaudRate: DefaultBaudRate}
}

// Validate checks the configuration.
func (c SerialConfig) Validate() error {
	if c.Port == "" {
		return ErrNoPort
	}
	if c.BaudRate <= 0 {
		return fmt.Errorf("invalid baud rate %d", c.BaudRate)
	}
	return nil
}

// Mode returns the serial line mode for the configuration.
func (c SerialConfig) Mode() *serial.Mode {
	return &serial.Mode{
		BaudRate: c.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
}

// OpenSerial opens the controller's serial port.
func OpenSerial(cfg SerialConfig) (serial.Port, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	port, err := serial.Open(cfg.Port, cfg.Mode())
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Port, err)
	}

	// USB CDC ACM sticks only forward data once DTR/RTS are asserted.
	_ = port.SetDTR(true)
	_ = port.SetRTS(true)

	return port, nil
}

// ListPorts returns the serial ports present on the host.
func ListPorts() ([]string, error) {
	return serial.GetPortsList()
}
