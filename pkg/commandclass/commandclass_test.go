package commandclass

import (
	"errors"
	"testing"
)

func TestIDString(t *testing.T) {
	tests := []struct {
		id   ID
		want string
	}{
		{Basic, "BASIC"},
		{SwitchBinary, "SWITCH_BINARY"},
		{ZWavePlusInfo, "ZWAVEPLUS_INFO"},
		{SupportControlMark, "SUPPORT_CONTROL_MARK"},
		{ID(0xD7), "UNKNOWN(0xD7)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.id.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMarkValue(t *testing.T) {
	if SupportControlMark != 0xEF {
		t.Errorf("SupportControlMark = 0x%02X, want 0xEF", uint8(SupportControlMark))
	}
	if !SupportControlMark.IsMark() {
		t.Error("SupportControlMark.IsMark() = false")
	}
	if Basic.IsMark() {
		t.Error("Basic.IsMark() = true")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    ID
		wantErr bool
	}{
		{in: "0x25", want: SwitchBinary},
		{in: "37", want: SwitchBinary},
		{in: "switch_binary", want: SwitchBinary},
		{in: " BASIC ", want: Basic},
		{in: "support_control_mark", want: SupportControlMark},
		{in: "not-a-class", wantErr: true},
		{in: "0x1FF", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownName) {
					t.Fatalf("Parse(%q) error = %v, want ErrUnknownName", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNames(t *testing.T) {
	got := Names([]ID{Basic, ID(0x01)})
	if len(got) != 2 || got[0] != "BASIC" || got[1] != "UNKNOWN(0x01)" {
		t.Errorf("Names() = %v", got)
	}
}

func TestParseUnknownForm(t *testing.T) {
	id, err := Parse(ID(0xD7).String())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if id != 0xD7 {
		t.Errorf("Parse(UNKNOWN(0xD7)) = 0x%02X", uint8(id))
	}
}

func TestTextRoundTrip(t *testing.T) {
	for _, want := range []ID{Basic, SupportControlMark, ID(0x01)} {
		text, err := want.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText failed: %v", err)
		}
		var got ID
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) failed: %v", text, err)
		}
		if got != want {
			t.Errorf("round trip of %v = %v", want, got)
		}
	}

	var id ID
	if err := id.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("expected error for bogus name")
	}
}
