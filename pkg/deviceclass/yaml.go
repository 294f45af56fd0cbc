package deviceclass

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidDefinition indicates a malformed device class definition file.
var ErrInvalidDefinition = errors.New("invalid device class definition")

// File is the YAML representation of a device class table.
type File struct {
	Generic []GenericDef `yaml:"generic"`
}

// GenericDef defines a generic class and its specific classes.
type GenericDef struct {
	Key         int           `yaml:"key"`
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Specific    []SpecificDef `yaml:"specific,omitempty"`
}

// SpecificDef defines a specific class.
type SpecificDef struct {
	Key         int    `yaml:"key"`
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

// Parse parses and validates a device class definition from YAML bytes.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing device classes: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadFile reads and parses a device class definition file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data)
}

// Validate checks key ranges, names and duplicates.
func (f *File) Validate() error {
	seen := make(map[int]bool, len(f.Generic))
	for _, g := range f.Generic {
		if g.Key < 0 || g.Key > 0xFF {
			return fmt.Errorf("%w: generic key %d out of range", ErrInvalidDefinition, g.Key)
		}
		if g.Name == "" {
			return fmt.Errorf("%w: generic 0x%02X has no name", ErrInvalidDefinition, g.Key)
		}
		if seen[g.Key] {
			return fmt.Errorf("%w: duplicate generic 0x%02X", ErrInvalidDefinition, g.Key)
		}
		seen[g.Key] = true

		specSeen := make(map[int]bool, len(g.Specific))
		for _, s := range g.Specific {
			if s.Key < 0 || s.Key > 0xFF {
				return fmt.Errorf("%w: specific key %d of %s out of range", ErrInvalidDefinition, s.Key, g.Name)
			}
			if s.Name == "" {
				return fmt.Errorf("%w: specific 0x%02X of %s has no name", ErrInvalidDefinition, s.Key, g.Name)
			}
			if specSeen[s.Key] {
				return fmt.Errorf("%w: duplicate specific 0x%02X in %s", ErrInvalidDefinition, s.Key, g.Name)
			}
			specSeen[s.Key] = true
		}
	}
	return nil
}

// Table builds a lookup table from the definition.
func (f *File) Table() *Table {
	generic := make(map[uint8]string, len(f.Generic))
	specific := make(map[uint8]map[uint8]string, len(f.Generic))
	for _, g := range f.Generic {
		generic[uint8(g.Key)] = g.Name
		if len(g.Specific) == 0 {
			continue
		}
		m := make(map[uint8]string, len(g.Specific))
		for _, s := range g.Specific {
			m[uint8(s.Key)] = s.Name
		}
		specific[uint8(g.Key)] = m
	}
	return NewTable(generic, specific)
}

// LoadRegistry returns the default registry, with the definitions in path
// layered over it when path is non-empty.
func LoadRegistry(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return Merge(Default(), f.Table()), nil
}
