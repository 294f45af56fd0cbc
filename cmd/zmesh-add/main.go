// Command zmesh-add encodes and decodes add-node (inclusion) messages and
// drives an inclusion attempt on a serial-attached controller.
//
// Usage:
//
//	zmesh-add <command> [flags] [args]
//
// Commands:
//
//	encode   Encode an add-node request
//	decode   Decode an add-node callback payload or frame
//	listen   Open the inclusion window and report progress
//	shell    Interactive encode/decode prompt
//	view     View a protocol capture (.zlog)
//	ports    List serial ports
//
// Examples:
//
//	# Encode a request for any node, high power and network wide
//	zmesh-add encode -node-type any -high-power -network-wide
//
//	# Decode an ADDING_SLAVE callback payload
//	zmesh-add decode -format json 0003020315041801 5eef2526
//
//	# Include a node, capturing the serial traffic
//	zmesh-add listen -port /dev/ttyACM0 -protocol-log add.zlog
//
//	# Show only decoded messages of a capture
//	zmesh-add view -category message add.zlog
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/zmesh-protocol/zmesh-go/cmd/zmesh-add/commands"
	"github.com/zmesh-protocol/zmesh-go/pkg/deviceclass"
	"github.com/zmesh-protocol/zmesh-go/pkg/inclusion"
	"github.com/zmesh-protocol/zmesh-go/pkg/log"
)

const usage = `zmesh-add - Add-node inclusion tool

Usage:
  zmesh-add <command> [flags] [args]

Commands:
  encode   Encode an add-node request
  decode   Decode an add-node callback payload or frame
  listen   Open the inclusion window and report progress
  shell    Interactive encode/decode prompt
  view     View a protocol capture (.zlog)
  ports    List serial ports

Use "zmesh-add <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "encode":
		runEncode(args)
	case "decode":
		runDecode(args)
	case "listen":
		runListen(args)
	case "shell":
		runShell(args)
	case "view":
		runView(args)
	case "ports":
		exitOnError(commands.RunPorts(os.Stdout))
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// configFlags are the flags shared by commands that read the configuration.
type configFlags struct {
	config      *string
	port        *string
	baud        *int
	nodeType    *string
	highPower   *bool
	networkWide *bool
	timeout     *time.Duration
	logLevel    *string
	logFormat   *string
	protocolLog *string
	classes     *string
}

func registerConfigFlags(fs *flag.FlagSet) *configFlags {
	d := commands.DefaultConfig()
	return &configFlags{
		config:      fs.String("config", "", "YAML configuration file"),
		port:        fs.String("port", "", "Serial port of the controller"),
		baud:        fs.Int("baud", d.Serial.BaudRate, "Serial baud rate"),
		nodeType:    fs.String("node-type", d.Request.NodeType, "Node type (any, controller, slave, existing, stop, stop_failed)"),
		highPower:   fs.Bool("high-power", d.Request.HighPower, "Include at high power"),
		networkWide: fs.Bool("network-wide", d.Request.NetworkWide, "Network wide inclusion"),
		timeout:     fs.Duration("timeout", d.Timeout, "Inclusion window timeout"),
		logLevel:    fs.String("log-level", d.Log.Level, "Log level (debug, info, warn, error)"),
		logFormat:   fs.String("log-format", d.Log.Format, "Log format (text, json)"),
		protocolLog: fs.String("protocol-log", "", "Write a protocol capture (.zlog) to this path"),
		classes:     fs.String("classes", "", "YAML device class overrides"),
	}
}

// load reads the configuration file and applies the flags that were set
// explicitly on the command line.
func (cf *configFlags) load(fs *flag.FlagSet) (commands.Config, error) {
	cfg, err := commands.LoadConfig(*cf.config)
	if err != nil {
		return cfg, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			cfg.Serial.Port = *cf.port
		case "baud":
			cfg.Serial.BaudRate = *cf.baud
		case "node-type":
			cfg.Request.NodeType = *cf.nodeType
		case "high-power":
			cfg.Request.HighPower = *cf.highPower
		case "network-wide":
			cfg.Request.NetworkWide = *cf.networkWide
		case "timeout":
			cfg.Timeout = *cf.timeout
		case "log-level":
			cfg.Log.Level = *cf.logLevel
		case "log-format":
			cfg.Log.Format = *cf.logFormat
		case "protocol-log":
			cfg.Log.ProtocolLog = *cf.protocolLog
		case "classes":
			cfg.DeviceClasses = *cf.classes
		}
	})
	return cfg, nil
}

func newFlagSet(name, synopsis, args string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `zmesh-add %s - %s

Usage:
  zmesh-add %s [flags] %s

Flags:
`, name, synopsis, name, args)
		fs.PrintDefaults()
	}
	return fs
}

func runEncode(args []string) {
	fs := newFlagSet("encode", "Encode an add-node request", "")
	cf := registerConfigFlags(fs)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cfg, err := cf.load(fs)
	exitOnError(err)
	req, err := cfg.Request.Build()
	exitOnError(err)

	exitOnError(commands.RunEncode(req, os.Stdout))
}

func runDecode(args []string) {
	fs := newFlagSet("decode", "Decode an add-node callback payload or frame", "<hex>...")
	cf := registerConfigFlags(fs)
	format := fs.String("format", commands.FormatText, "Output format (text, json, yaml)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: hex payload required")
		fs.Usage()
		os.Exit(1)
	}

	cfg, err := cf.load(fs)
	exitOnError(err)
	registry, err := deviceclass.LoadRegistry(cfg.DeviceClasses)
	exitOnError(err)

	input := strings.Join(fs.Args(), "")
	exitOnError(commands.RunDecode(inclusion.NewDecoder(registry), input, *format, os.Stdout))
}

func runListen(args []string) {
	fs := newFlagSet("listen", "Open the inclusion window and report progress", "")
	cf := registerConfigFlags(fs)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cfg, err := cf.load(fs)
	exitOnError(err)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := commands.RunListen(ctx, cfg, os.Stdout); err != nil {
		cancel()
		exitOnError(err)
	}
}

func runShell(args []string) {
	fs := newFlagSet("shell", "Interactive encode/decode prompt", "")
	cf := registerConfigFlags(fs)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cfg, err := cf.load(fs)
	exitOnError(err)
	registry, err := deviceclass.LoadRegistry(cfg.DeviceClasses)
	exitOnError(err)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()

	exitOnError(commands.NewShell(registry).Run(ctx))
}

func runView(args []string) {
	fs := newFlagSet("view", "View a protocol capture in human-readable format", "<file.zlog>")
	layer := fs.String("layer", "", "Filter by layer (transport, wire, session)")
	direction := fs.String("direction", "", "Filter by direction (in, out)")
	category := fs.String("category", "", "Filter by category (message, control, state, error)")
	function := fs.String("function", "", "Filter messages by function id (e.g. 0x4A)")
	port := fs.String("port", "", "Filter by serial port")
	connID := fs.String("conn-id", "", "Filter by connection ID")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}

	filter := log.Filter{
		ConnectionID: *connID,
		Port:         *port,
	}

	if *layer != "" {
		l, err := commands.ParseLayerFlag(*layer)
		exitOnError(err)
		filter.Layer = &l
	}

	if *direction != "" {
		d, err := commands.ParseDirectionFlag(*direction)
		exitOnError(err)
		filter.Direction = &d
	}

	if *category != "" {
		c, err := commands.ParseCategoryFlag(*category)
		exitOnError(err)
		filter.Category = &c
	}

	if *function != "" {
		f, err := commands.ParseFunctionFlag(*function)
		exitOnError(err)
		filter.Function = &f
	}

	exitOnError(commands.RunView(fs.Arg(0), filter, os.Stdout))
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
