// Command zmesh-classgen generates the built-in device class tables from a
// YAML definition file.
//
// Usage:
//
//	zmesh-classgen -input classes.yaml -output classes_gen.go [-package deviceclass]
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/tools/imports"

	"github.com/zmesh-protocol/zmesh-go/pkg/deviceclass"
)

func main() {
	input := flag.String("input", "", "Path to the device class YAML definition")
	output := flag.String("output", "", "Path of the generated Go file")
	pkg := flag.String("package", "deviceclass", "Package name of the generated file")
	flag.Parse()

	if *input == "" || *output == "" {
		fmt.Fprintln(os.Stderr, "Usage: zmesh-classgen -input <yaml> -output <go file> [-package <name>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(*input, *output, *pkg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(input, output, pkg string) error {
	def, err := deviceclass.LoadFile(input)
	if err != nil {
		return fmt.Errorf("loading device classes: %w", err)
	}

	code, err := Generate(def, pkg, filepath.Base(input))
	if err != nil {
		return fmt.Errorf("generating tables: %w", err)
	}

	if err := writeFormatted(output, code); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(output), err)
	}
	fmt.Printf("  generated %s (%d generic classes)\n", output, len(def.Generic))
	return nil
}

// writeFormatted formats Go source code with goimports and writes it to a file.
func writeFormatted(path string, code string) error {
	formatted, err := imports.Process(path, []byte(code), nil)
	if err != nil {
		// Keep the raw output around for debugging the template.
		_ = os.WriteFile(path+".broken", []byte(code), 0o644)
		return fmt.Errorf("goimports %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, formatted, 0o644)
}
