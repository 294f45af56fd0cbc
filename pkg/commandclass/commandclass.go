// Package commandclass holds the command class identifier registry.
//
// A command class identifies one functional capability of a node (switching,
// metering, association, ...). Nodes announce the command classes they
// support and, after the Support/Control Mark, the ones they control.
package commandclass

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ID is a single-byte command class identifier.
type ID uint8

const (
	NoOperation        ID = 0x00
	Basic              ID = 0x20
	ApplicationStatus  ID = 0x22
	SwitchBinary       ID = 0x25
	SwitchMultilevel   ID = 0x26
	SwitchAll          ID = 0x27
	SceneActivation    ID = 0x2B
	SensorBinary       ID = 0x30
	SensorMultilevel   ID = 0x31
	Meter              ID = 0x32
	ThermostatMode     ID = 0x40
	ThermostatSetpoint ID = 0x43
	DoorLock           ID = 0x62
	UserCode           ID = 0x63
	Configuration      ID = 0x70
	Notification       ID = 0x71
	ManufacturerSpec   ID = 0x72
	Powerlevel         ID = 0x73
	Battery            ID = 0x80
	Clock              ID = 0x81
	WakeUp             ID = 0x84
	Association        ID = 0x85
	Version            ID = 0x86
	Indicator          ID = 0x87
	MultiChannel       ID = 0x60
	Security           ID = 0x98
	ZWavePlusInfo      ID = 0x5E
	Supervision        ID = 0x6C
	TransportService   ID = 0x55
	Security2          ID = 0x9F

	// SupportControlMark separates supported from controlled command classes
	// in a node information list. It is not a command class itself.
	SupportControlMark ID = 0xEF
)

var names = map[ID]string{
	NoOperation:        "NO_OPERATION",
	Basic:              "BASIC",
	ApplicationStatus:  "APPLICATION_STATUS",
	SwitchBinary:       "SWITCH_BINARY",
	SwitchMultilevel:   "SWITCH_MULTILEVEL",
	SwitchAll:          "SWITCH_ALL",
	SceneActivation:    "SCENE_ACTIVATION",
	SensorBinary:       "SENSOR_BINARY",
	SensorMultilevel:   "SENSOR_MULTILEVEL",
	Meter:              "METER",
	ThermostatMode:     "THERMOSTAT_MODE",
	ThermostatSetpoint: "THERMOSTAT_SETPOINT",
	DoorLock:           "DOOR_LOCK",
	UserCode:           "USER_CODE",
	Configuration:      "CONFIGURATION",
	Notification:       "NOTIFICATION",
	ManufacturerSpec:   "MANUFACTURER_SPECIFIC",
	Powerlevel:         "POWERLEVEL",
	Battery:            "BATTERY",
	Clock:              "CLOCK",
	WakeUp:             "WAKE_UP",
	Association:        "ASSOCIATION",
	Version:            "VERSION",
	Indicator:          "INDICATOR",
	MultiChannel:       "MULTI_CHANNEL",
	Security:           "SECURITY",
	ZWavePlusInfo:      "ZWAVEPLUS_INFO",
	Supervision:        "SUPERVISION",
	TransportService:   "TRANSPORT_SERVICE",
	Security2:          "SECURITY_2",
	SupportControlMark: "SUPPORT_CONTROL_MARK",
}

// ErrUnknownName is returned by Parse for names that are not registered.
var ErrUnknownName = errors.New("unknown command class")

// String returns the command class name, or UNKNOWN(0xNN) for unregistered ids.
func (id ID) String() string {
	if n, ok := names[id]; ok {
		return n
	}
	return fmt.Sprintf("UNKNOWN(0x%02X)", uint8(id))
}

// IsMark reports whether id is the Support/Control Mark.
func (id ID) IsMark() bool {
	return id == SupportControlMark
}

// Known reports whether id has a registered name.
func (id ID) Known() bool {
	_, ok := names[id]
	return ok
}

// Parse resolves a command class from its name (case-insensitive), from the
// UNKNOWN(0xNN) form produced by String, or from a numeric literal such as
// "0x25" or "37".
func Parse(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseUint(s, 0, 8); err == nil {
		return ID(v), nil
	}
	upper := strings.ToUpper(s)
	if inner, ok := strings.CutPrefix(upper, "UNKNOWN("); ok {
		if v, err := strconv.ParseUint(strings.TrimSuffix(inner, ")"), 0, 8); err == nil {
			return ID(v), nil
		}
	}
	for id, n := range names {
		if n == upper {
			return id, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownName, s)
}

// MarshalText encodes the id as its name.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText accepts anything Parse accepts.
func (id *ID) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*id = v
	return nil
}

// Names converts a list of ids into their names.
func Names(ids []ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
