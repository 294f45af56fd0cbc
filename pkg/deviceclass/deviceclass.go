package deviceclass

import (
	"fmt"
)

// Descriptor describes one resolved device class code.
type Descriptor struct {
	// Key is the raw class code as seen on the wire.
	Key uint8 `json:"key" yaml:"key" cbor:"1,keyasint"`

	// Name is the symbolic class name, or UNKNOWN(0xNN) when unresolved.
	Name string `json:"name" yaml:"name" cbor:"2,keyasint"`

	// Known is false for placeholder descriptors.
	Known bool `json:"known" yaml:"known" cbor:"3,keyasint"`
}

// Unknown returns the placeholder descriptor for an unresolved code.
func Unknown(code uint8) Descriptor {
	return Descriptor{
		Key:  code,
		Name: fmt.Sprintf("UNKNOWN(0x%02X)", code),
	}
}

// String returns the descriptor name.
func (d Descriptor) String() string {
	return d.Name
}

// NotUsed is the specific class code meaning "no specific class".
const NotUsed uint8 = 0x00

// Registry resolves generic and specific device classes.
// Both lookups are total and never fail.
type Registry interface {
	LookupGeneric(generic uint8) Descriptor
	LookupSpecific(generic, specific uint8) Descriptor
}

// Basic device classes.
const (
	BasicController       uint8 = 0x01
	BasicStaticController uint8 = 0x02
	BasicSlave            uint8 = 0x03
	BasicRoutingSlave     uint8 = 0x04
)

// BasicName returns the name of a basic device class.
func BasicName(basic uint8) string {
	switch basic {
	case BasicController:
		return "CONTROLLER"
	case BasicStaticController:
		return "STATIC_CONTROLLER"
	case BasicSlave:
		return "SLAVE"
	case BasicRoutingSlave:
		return "ROUTING_SLAVE"
	default:
		return fmt.Sprintf("UNKNOWN(0x%02X)", basic)
	}
}

// Table is an immutable Registry backed by lookup maps.
// It is safe for concurrent use.
type Table struct {
	generic  map[uint8]string
	specific map[uint8]map[uint8]string
}

// NewTable creates a table from generic and specific name maps.
// The maps are copied.
func NewTable(generic map[uint8]string, specific map[uint8]map[uint8]string) *Table {
	t := &Table{
		generic:  make(map[uint8]string, len(generic)),
		specific: make(map[uint8]map[uint8]string, len(specific)),
	}
	for k, v := range generic {
		t.generic[k] = v
	}
	for g, m := range specific {
		inner := make(map[uint8]string, len(m))
		for k, v := range m {
			inner[k] = v
		}
		t.specific[g] = inner
	}
	return t
}

var defaultTable = NewTable(generatedGenericClasses(), generatedSpecificClasses())

// Default returns the registry built from the generated tables.
func Default() *Table {
	return defaultTable
}

// LookupGeneric resolves a generic device class.
func (t *Table) LookupGeneric(generic uint8) Descriptor {
	if name, ok := t.generic[generic]; ok {
		return Descriptor{Key: generic, Name: name, Known: true}
	}
	return Unknown(generic)
}

// LookupSpecific resolves a specific device class within its generic class.
// Specific codes are only meaningful relative to the generic class.
func (t *Table) LookupSpecific(generic, specific uint8) Descriptor {
	if name, ok := t.specific[generic][specific]; ok {
		return Descriptor{Key: specific, Name: name, Known: true}
	}
	if specific == NotUsed {
		if _, ok := t.generic[generic]; ok {
			return Descriptor{Key: specific, Name: "NOT_USED", Known: true}
		}
	}
	return Unknown(specific)
}

// Len returns the number of generic classes in the table.
func (t *Table) Len() int {
	return len(t.generic)
}

// Merge returns a new table with the entries of overrides layered over base.
// Entries in overrides win on conflict.
func Merge(base, overrides *Table) *Table {
	merged := NewTable(base.generic, base.specific)
	for k, v := range overrides.generic {
		merged.generic[k] = v
	}
	for g, m := range overrides.specific {
		inner, ok := merged.specific[g]
		if !ok {
			inner = make(map[uint8]string, len(m))
			merged.specific[g] = inner
		}
		for k, v := range m {
			inner[k] = v
		}
	}
	return merged
}

// Compile-time interface satisfaction check.
var _ Registry = (*Table)(nil)
