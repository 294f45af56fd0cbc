package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/zmesh-protocol/zmesh-go/pkg/commandclass"
	"github.com/zmesh-protocol/zmesh-go/pkg/deviceclass"
	"github.com/zmesh-protocol/zmesh-go/pkg/inclusion"
	"github.com/zmesh-protocol/zmesh-go/pkg/wire"
)

// formatReport writes a human-readable representation of the report to w.
func formatReport(w io.Writer, report *inclusion.StatusReport) {
	fmt.Fprintf(w, "Status: %s (%d)\n", report.Status, uint8(report.Status))

	switch ctx := report.Context.(type) {
	case inclusion.NodeContext:
		fmt.Fprintf(w, "  Node: %d\n", ctx.NodeID)
	case inclusion.SlaveContext:
		fmt.Fprintf(w, "  Node: %d\n", ctx.NodeID)
		fmt.Fprintf(w, "  Basic: %s\n", formatBasic(ctx))
		fmt.Fprintf(w, "  Generic: %s\n", formatDescriptor(ctx.GenericClass))
		fmt.Fprintf(w, "  Specific: %s\n", formatDescriptor(ctx.SpecificClass))
		fmt.Fprintf(w, "  Supported: %s\n", formatClasses(ctx.SupportedCommandClasses))
		fmt.Fprintf(w, "  Controlled: %s\n", formatClasses(ctx.ControlledCommandClasses))
	default:
		fmt.Fprintf(w, "  Payload: %s\n", wire.HexBytes(report.Raw))
	}

	if report.Status.IsTerminal() {
		fmt.Fprintln(w, "  (inclusion finished)")
	}
}

func formatBasic(ctx inclusion.SlaveContext) string {
	name := ctx.BasicClassName()
	if name == deviceclass.Unknown(ctx.BasicClass).Name {
		return name
	}
	return fmt.Sprintf("%s (0x%02X)", name, ctx.BasicClass)
}

func formatDescriptor(d deviceclass.Descriptor) string {
	if !d.Known {
		return d.Name
	}
	return fmt.Sprintf("%s (0x%02X)", d.Name, d.Key)
}

func formatClasses(ids []commandclass.ID) string {
	if len(ids) == 0 {
		return "-"
	}
	return strings.Join(commandclass.Names(ids), ", ")
}
