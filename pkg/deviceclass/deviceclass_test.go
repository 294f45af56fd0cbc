package deviceclass

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLookupGeneric(t *testing.T) {
	reg := Default()

	d := reg.LookupGeneric(0x10)
	assert.Equal(t, Descriptor{Key: 0x10, Name: "SWITCH_BINARY", Known: true}, d)

	d = reg.LookupGeneric(0x04)
	assert.Equal(t, "DISPLAY", d.Name)
	assert.True(t, d.Known)
}

func TestDefaultLookupSpecific(t *testing.T) {
	reg := Default()

	d := reg.LookupSpecific(0x10, 0x01)
	assert.Equal(t, Descriptor{Key: 0x01, Name: "POWER_SWITCH_BINARY", Known: true}, d)

	// Specific codes are scoped by generic class.
	d = reg.LookupSpecific(0x11, 0x01)
	assert.Equal(t, "POWER_SWITCH_MULTILEVEL", d.Name)
}

func TestLookupNotUsedSpecific(t *testing.T) {
	reg := Default()

	d := reg.LookupSpecific(0x30, NotUsed)
	assert.Equal(t, "NOT_USED", d.Name)
	assert.True(t, d.Known)

	// NOT_USED only applies inside a known generic class.
	d = reg.LookupSpecific(0xEE, NotUsed)
	assert.False(t, d.Known)
}

func TestLookupUnknownReturnsPlaceholder(t *testing.T) {
	reg := Default()

	tests := []struct {
		name string
		got  Descriptor
		want Descriptor
	}{
		{
			name: "unknown generic",
			got:  reg.LookupGeneric(0xEE),
			want: Descriptor{Key: 0xEE, Name: "UNKNOWN(0xEE)"},
		},
		{
			name: "unknown specific in known generic",
			got:  reg.LookupSpecific(0x04, 0x18),
			want: Descriptor{Key: 0x18, Name: "UNKNOWN(0x18)"},
		},
		{
			name: "specific in unknown generic",
			got:  reg.LookupSpecific(0xEE, 0x01),
			want: Descriptor{Key: 0x01, Name: "UNKNOWN(0x01)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
			assert.Equal(t, tt.want.Name, tt.got.String())
		})
	}
}

func TestBasicName(t *testing.T) {
	assert.Equal(t, "CONTROLLER", BasicName(BasicController))
	assert.Equal(t, "STATIC_CONTROLLER", BasicName(BasicStaticController))
	assert.Equal(t, "SLAVE", BasicName(BasicSlave))
	assert.Equal(t, "ROUTING_SLAVE", BasicName(BasicRoutingSlave))
	assert.Equal(t, "UNKNOWN(0x15)", BasicName(0x15))
}

func TestNewTableCopiesInput(t *testing.T) {
	generic := map[uint8]string{0x01: "A"}
	specific := map[uint8]map[uint8]string{0x01: {0x02: "B"}}
	tbl := NewTable(generic, specific)

	generic[0x01] = "changed"
	specific[0x01][0x02] = "changed"

	assert.Equal(t, "A", tbl.LookupGeneric(0x01).Name)
	assert.Equal(t, "B", tbl.LookupSpecific(0x01, 0x02).Name)
}

const overrideYAML = `
generic:
  - key: 0x10
    name: BINARY_SWITCH_OVERRIDE
  - key: 0x60
    name: VENDOR_GENERIC
    specific:
      - key: 0x01
        name: VENDOR_SPECIFIC
  - key: 0x11
    name: SWITCH_MULTILEVEL
    specific:
      - {key: 0x20, name: VENDOR_DIMMER}
`

func TestParseAndMerge(t *testing.T) {
	f, err := Parse([]byte(overrideYAML))
	require.NoError(t, err)
	require.Len(t, f.Generic, 3)

	merged := Merge(Default(), f.Table())

	assert.Equal(t, "BINARY_SWITCH_OVERRIDE", merged.LookupGeneric(0x10).Name)
	assert.Equal(t, "VENDOR_GENERIC", merged.LookupGeneric(0x60).Name)
	assert.Equal(t, "VENDOR_SPECIFIC", merged.LookupSpecific(0x60, 0x01).Name)
	assert.Equal(t, "VENDOR_DIMMER", merged.LookupSpecific(0x11, 0x20).Name)
	// Existing specifics of a merged generic survive.
	assert.Equal(t, "POWER_SWITCH_MULTILEVEL", merged.LookupSpecific(0x11, 0x01).Name)

	// The default table is untouched.
	assert.Equal(t, "SWITCH_BINARY", Default().LookupGeneric(0x10).Name)
	assert.False(t, Default().LookupGeneric(0x60).Known)
}

func TestParseRejectsInvalidDefinitions(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"key out of range", "generic:\n  - {key: 256, name: X}\n"},
		{"negative key", "generic:\n  - {key: -1, name: X}\n"},
		{"missing name", "generic:\n  - {key: 1}\n"},
		{"duplicate generic", "generic:\n  - {key: 1, name: A}\n  - {key: 1, name: B}\n"},
		{"duplicate specific", "generic:\n  - key: 1\n    name: A\n    specific:\n      - {key: 2, name: X}\n      - {key: 2, name: Y}\n"},
		{"specific without name", "generic:\n  - key: 1\n    name: A\n    specific:\n      - {key: 2}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalidDefinition)
		})
	}
}

func TestParseMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("generic: [unterminated"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidDefinition)
}

func TestLoadRegistry(t *testing.T) {
	reg, err := LoadRegistry("")
	require.NoError(t, err)
	assert.Same(t, Default(), reg)

	path := filepath.Join(t.TempDir(), "classes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(overrideYAML), 0o644))

	reg, err = LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, "VENDOR_GENERIC", reg.LookupGeneric(0x60).Name)

	_, err = LoadRegistry(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

// TestGeneratedTablesMatchSource verifies classes_gen.go is in sync with classes.yaml.
func TestGeneratedTablesMatchSource(t *testing.T) {
	f, err := LoadFile("classes.yaml")
	require.NoError(t, err)

	src := f.Table()
	assert.Equal(t, src.Len(), Default().Len())
	for _, g := range f.Generic {
		assert.Equal(t, g.Name, Default().LookupGeneric(uint8(g.Key)).Name)
		for _, s := range g.Specific {
			assert.Equal(t, s.Name, Default().LookupSpecific(uint8(g.Key), uint8(s.Key)).Name)
		}
	}
}

func TestConcurrentLookups(t *testing.T) {
	reg := Default()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for code := 0; code < 256; code++ {
				_ = reg.LookupGeneric(uint8(code))
				_ = reg.LookupSpecific(uint8(i), uint8(code))
			}
		}(i)
	}
	wg.Wait()
}
