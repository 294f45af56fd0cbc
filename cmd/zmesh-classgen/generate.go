package main

import (
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/zmesh-protocol/zmesh-go/pkg/deviceclass"
)

var funcMap = template.FuncMap{
	"hexByte": func(v int) string { return fmt.Sprintf("0x%02X", v) },
	"quote":   func(s string) string { return fmt.Sprintf("%q", s) },
}

const tablesTmpl = `// Code generated by zmesh-classgen from {{.Source}}. DO NOT EDIT.

package {{.Package}}

// generatedGenericClasses returns the generic device class names by key.
func generatedGenericClasses() map[uint8]string {
	return map[uint8]string{
{{- range .Generic}}
		{{hexByte .Key}}: {{quote .Name}},
{{- end}}
	}
}

// generatedSpecificClasses returns the specific device class names by generic key.
func generatedSpecificClasses() map[uint8]map[uint8]string {
	return map[uint8]map[uint8]string{
{{- range .Generic}}{{if .Specific}}
		{{hexByte .Key}}: {
{{- range .Specific}}
			{{hexByte .Key}}: {{quote .Name}},
{{- end}}
		},
{{- end}}{{end}}
	}
}
`

var tables = template.Must(template.New("tables").Funcs(funcMap).Parse(tablesTmpl))

type tablesData struct {
	Source  string
	Package string
	Generic []deviceclass.GenericDef
}

// Generate renders the lookup table source for def. Entries are emitted in
// key order regardless of their order in the YAML file.
func Generate(def *deviceclass.File, pkg, source string) (string, error) {
	if err := def.Validate(); err != nil {
		return "", err
	}

	generic := make([]deviceclass.GenericDef, len(def.Generic))
	copy(generic, def.Generic)
	sort.Slice(generic, func(i, j int) bool { return generic[i].Key < generic[j].Key })
	for i := range generic {
		specific := make([]deviceclass.SpecificDef, len(generic[i].Specific))
		copy(specific, generic[i].Specific)
		sort.Slice(specific, func(a, b int) bool { return specific[a].Key < specific[b].Key })
		generic[i].Specific = specific
	}

	var b strings.Builder
	if err := tables.Execute(&b, tablesData{Source: source, Package: pkg, Generic: generic}); err != nil {
		return "", fmt.Errorf("template: %w", err)
	}
	return b.String(), nil
}
