package wire

import (
	"encoding/hex"
	"strings"
)

// HexBytes is a byte slice that renders as hex text in JSON and YAML.
// CBOR keeps it as a byte string.
type HexBytes []byte

// String returns space-separated upper-case hex, e.g. "00 05".
func (h HexBytes) String() string {
	return strings.ToUpper(formatHex(h))
}

// MarshalText encodes the bytes as lower-case hex without separators.
func (h HexBytes) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(h)), nil
}

// UnmarshalText accepts the output of MarshalText and String.
func (h *HexBytes) UnmarshalText(text []byte) error {
	b, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*h = b
	return nil
}

// ParseHex decodes hex text, ignoring whitespace, colons and an optional 0x prefix.
func ParseHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	s = strings.NewReplacer(" ", "", ":", "", "\t", "", "\n", "").Replace(s)
	return hex.DecodeString(s)
}

func formatHex(b []byte) string {
	var sb strings.Builder
	for i, v := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(hex.EncodeToString([]byte{v}))
	}
	return sb.String()
}
