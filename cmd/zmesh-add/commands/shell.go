package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/zmesh-protocol/zmesh-go/pkg/commandclass"
	"github.com/zmesh-protocol/zmesh-go/pkg/deviceclass"
	"github.com/zmesh-protocol/zmesh-go/pkg/inclusion"
)

// Shell is an interactive encode/decode prompt.
type Shell struct {
	registry deviceclass.Registry
	decoder  *inclusion.Decoder
	format   string
}

// NewShell creates a shell resolving device classes through registry.
func NewShell(registry deviceclass.Registry) *Shell {
	return &Shell{
		registry: registry,
		decoder:  inclusion.NewDecoder(registry),
		format:   FormatText,
	}
}

// Run reads commands until quit, EOF or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "zmesh> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	s.printHelp(rl.Stdout())

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			return nil
		}

		if quit := s.Exec(line, rl.Stdout()); quit {
			return nil
		}
	}
}

// Exec runs one command line, writing its output to w. It returns true
// when the line asks the shell to exit.
func (s *Shell) Exec(line string, w io.Writer) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp(w)

	case "encode", "e":
		s.cmdEncode(args, w)

	case "decode", "d":
		s.cmdDecode(args, w)

	case "format", "f":
		s.cmdFormat(args, w)

	case "class":
		s.cmdClass(args, w)

	case "cc":
		s.cmdCommandClass(args, w)

	case "quit", "exit", "q":
		fmt.Fprintln(w, "Exiting...")
		return true

	default:
		fmt.Fprintf(w, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func (s *Shell) printHelp(w io.Writer) {
	fmt.Fprintln(w, `
Add-node Commands:
    encode <type> [hp] [nw]  - Encode a request (type: any, controller, slave, existing, stop, stop_failed)
    decode <hex>             - Decode a callback payload or complete frame
    format <text|json|yaml>  - Set the decode output format
    class <generic> [sp]     - Look up a device class (and specific class)
    cc <id|name>             - Look up a command class
    help                     - Show this help
    quit                     - Exit`)
}

func (s *Shell) cmdEncode(args []string, w io.Writer) {
	if len(args) == 0 {
		fmt.Fprintln(w, "Usage: encode <type> [hp] [nw]")
		return
	}
	nt, err := inclusion.ParseNodeType(args[0])
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	req := inclusion.Request{NodeType: nt}
	for _, flag := range args[1:] {
		switch strings.ToLower(flag) {
		case "hp", "high-power":
			req.HighPower = true
		case "nw", "network-wide":
			req.NetworkWide = true
		default:
			fmt.Fprintf(w, "Error: unknown flag %q (must be hp or nw)\n", flag)
			return
		}
	}
	if err := RunEncode(req, w); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
	}
}

func (s *Shell) cmdDecode(args []string, w io.Writer) {
	if len(args) == 0 {
		fmt.Fprintln(w, "Usage: decode <hex>")
		return
	}
	if err := RunDecode(s.decoder, strings.Join(args, ""), s.format, w); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
	}
}

func (s *Shell) cmdFormat(args []string, w io.Writer) {
	if len(args) == 0 {
		fmt.Fprintf(w, "Format: %s\n", s.format)
		return
	}
	switch f := strings.ToLower(args[0]); f {
	case FormatText, FormatJSON, FormatYAML:
		s.format = f
		fmt.Fprintf(w, "Format: %s\n", s.format)
	default:
		fmt.Fprintf(w, "Error: unknown format %q (must be text, json or yaml)\n", args[0])
	}
}

func (s *Shell) cmdClass(args []string, w io.Writer) {
	if len(args) == 0 || len(args) > 2 {
		fmt.Fprintln(w, "Usage: class <generic> [specific]")
		return
	}
	codes := make([]uint8, len(args))
	for i, a := range args {
		v, err := strconv.ParseUint(a, 0, 8)
		if err != nil {
			fmt.Fprintf(w, "Error: invalid class code %q\n", a)
			return
		}
		codes[i] = uint8(v)
	}

	generic := s.registry.LookupGeneric(codes[0])
	fmt.Fprintf(w, "Generic: %s\n", formatDescriptor(generic))
	if len(codes) == 2 {
		fmt.Fprintf(w, "Specific: %s\n", formatDescriptor(s.registry.LookupSpecific(codes[0], codes[1])))
	}
}

func (s *Shell) cmdCommandClass(args []string, w io.Writer) {
	if len(args) != 1 {
		fmt.Fprintln(w, "Usage: cc <id|name>")
		return
	}
	id, err := commandclass.Parse(args[0])
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(w, "%s (0x%02X)\n", id, uint8(id))
}
