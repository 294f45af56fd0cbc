package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zmesh-protocol/zmesh-go/pkg/inclusion"
	"github.com/zmesh-protocol/zmesh-go/pkg/wire"
)

// Output formats of the decode command.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// DecodeInput decodes hex text that holds either a callback payload or a
// complete frame starting with SOF. A frame is only assumed when the bytes
// parse as one with a valid checksum.
func DecodeInput(decoder *inclusion.Decoder, input string) (*inclusion.StatusReport, error) {
	data, err := wire.ParseHex(input)
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}

	if len(data) >= wire.MinFrameSize && data[0] == wire.SOF {
		if f, err := wire.ParseFrame(data); err == nil {
			return decoder.DecodeFrame(f)
		}
	}
	return decoder.Decode(data)
}

// RunDecode decodes input and writes the report in the given format.
func RunDecode(decoder *inclusion.Decoder, input, format string, w io.Writer) error {
	report, err := DecodeInput(decoder, input)
	if err != nil {
		return err
	}
	return WriteReport(w, report, format)
}

// WriteReport renders a report as text, JSON or YAML.
func WriteReport(w io.Writer, report *inclusion.StatusReport, format string) error {
	switch strings.ToLower(format) {
	case "", FormatText:
		formatReport(w, report)
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report.View())
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report.View()); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (must be text, json or yaml)", format)
	}
}
