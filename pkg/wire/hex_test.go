package wire

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestHexBytesString(t *testing.T) {
	if got := (HexBytes{0x00, 0x05, 0xEF}).String(); got != "00 05 EF" {
		t.Errorf("String() = %q", got)
	}
	if got := HexBytes(nil).String(); got != "" {
		t.Errorf("String() of nil = %q", got)
	}
}

func TestHexBytesJSON(t *testing.T) {
	in := struct {
		Data HexBytes `json:"data"`
	}{Data: HexBytes{0x01, 0x4A, 0xC1}}

	out, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(out) != `{"data":"014ac1"}` {
		t.Errorf("Marshal = %s", out)
	}

	var back struct {
		Data HexBytes `json:"data"`
	}
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !bytes.Equal(back.Data, in.Data) {
		t.Errorf("round trip = % X", back.Data)
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want []byte
	}{
		{"00 05", []byte{0x00, 0x05}},
		{"0x0005", []byte{0x00, 0x05}},
		{"01:04:00:4a", []byte{0x01, 0x04, 0x00, 0x4A}},
		{"  EF\t25 ", []byte{0xEF, 0x25}},
		{"", []byte{}},
	}

	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if err != nil {
			t.Fatalf("ParseHex(%q) failed: %v", tt.in, err)
		}
		if !bytes.Equal(got, tt.want) {
			t.Errorf("ParseHex(%q) = % X, want % X", tt.in, got, tt.want)
		}
	}

	if _, err := ParseHex("zz"); err == nil {
		t.Error("expected error for invalid hex")
	}
	if _, err := ParseHex("abc"); err == nil {
		t.Error("expected error for odd length")
	}
}
