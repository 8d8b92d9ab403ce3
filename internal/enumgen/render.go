package enumgen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"strings"
	"text/template"
	"unicode"
)

// RenderOptions controls the emitted file.
type RenderOptions struct {
	// Package is the Go package name of the output file.
	Package string
	// Sources names the headers the constants came from, for the header comment.
	Sources []string
	// Generator names the tool in the "Code generated" line.
	Generator string
}

type renderGroup struct {
	*Group
	GoType   string
	Table    string
	Items    []Variant
	FromFunc string
	FromArg  string
	MaskHex  string
}

type renderData struct {
	Package   string
	Generator string
	Sources   string
	Enums     []renderGroup
	Flags     []renderGroup
	Plain     []Constant
	Untyped   []Constant
	Imports   []string
}

// Render emits a gofmt-formatted Go source file declaring every group of
// res as a typed enumeration (or bit-flag type), plus the plain and untyped
// pass-through constants.
func Render(res *Result, opts RenderOptions) ([]byte, error) {
	if opts.Package == "" {
		return nil, fmt.Errorf("enumgen: render: package name is empty")
	}
	if !token.IsIdentifier(opts.Package) {
		return nil, fmt.Errorf("enumgen: render: invalid package name %q", opts.Package)
	}
	gen := opts.Generator
	if gen == "" {
		gen = "ivgen"
	}

	data := renderData{
		Package:   opts.Package,
		Generator: gen,
		Sources:   strings.Join(opts.Sources, ", "),
		Plain:     exportedOnly(res.Plain),
		Untyped:   exportedOnly(res.Untyped),
	}

	for _, g := range res.Groups {
		rg := renderGroup{
			Group:    g,
			GoType:   g.Width.GoType(),
			Table:    lowerFirst(g.Name) + "Names",
			Items:    g.Variants(),
			FromFunc: g.Name + "From" + upperFirst(g.Width.GoType()),
			FromArg:  g.Width.GoType(),
		}
		if g.Kind == KindFlags {
			rg.FromFunc = g.Name + "FromInt32"
			rg.FromArg = "int32"
			rg.MaskHex = fmt.Sprintf("%#x", g.Mask())
			data.Flags = append(data.Flags, rg)
			continue
		}
		data.Enums = append(data.Enums, rg)
	}

	if err := checkDeclared(data); err != nil {
		return nil, err
	}

	if len(data.Flags) > 0 {
		data.Imports = append(data.Imports, "fmt")
	}
	if len(data.Enums) > 0 || len(data.Flags) > 0 {
		data.Imports = append(data.Imports, "strconv")
	}
	if len(data.Flags) > 0 {
		data.Imports = append(data.Imports, "strings")
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("enumgen: render: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("enumgen: render: generated code does not parse: %w", err)
	}
	return src, nil
}

// checkDeclared fails when two top-level declarations of the output file
// would share one identifier.
func checkDeclared(data renderData) error {
	seen := make(map[string]string)
	add := func(ident, what string) error {
		if prev, dup := seen[ident]; dup {
			return fmt.Errorf("enumgen: render: %s and %s both declare %s: %w", prev, what, ident, ErrIdentifierClash)
		}
		seen[ident] = what
		return nil
	}
	group := func(rg renderGroup, extra ...string) error {
		names := append([]string{rg.Name, rg.Table, rg.FromFunc}, extra...)
		for _, n := range names {
			if err := add(n, "group "+rg.Name); err != nil {
				return err
			}
		}
		for _, v := range rg.Items {
			if err := add(v.Ident, v.Source); err != nil {
				return err
			}
		}
		return nil
	}

	if len(data.Flags) > 0 {
		if err := add("FlagRangeError", "flag support"); err != nil {
			return err
		}
	}
	for _, rg := range data.Enums {
		if err := group(rg, rg.Name+"Values"); err != nil {
			return err
		}
	}
	for _, rg := range data.Flags {
		if err := group(rg, rg.Name+"Mask"); err != nil {
			return err
		}
	}
	for _, list := range [][]Constant{data.Plain, data.Untyped} {
		for _, c := range list {
			if err := add(c.Name, c.Name); err != nil {
				return err
			}
		}
	}
	return nil
}

func exportedOnly(in []Constant) []Constant {
	out := make([]Constant, 0, len(in))
	for _, c := range in {
		if token.IsIdentifier(c.Name) && token.IsExported(c.Name) {
			out = append(out, c)
		}
	}
	return out
}

func lowerFirst(s string) string {
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

func upperFirst(s string) string {
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

var fileTemplate = template.Must(template.New("file").Parse(`// Code generated by {{.Generator}}{{if .Sources}} from {{.Sources}}{{end}}; DO NOT EDIT.

package {{.Package}}
{{if .Imports}}
import (
{{- range .Imports}}
	"{{.}}"
{{- end}}
)
{{end}}
{{- range $g := .Enums}}
// {{.Name}} enumerates the {{.Prefix}} constants.
type {{.Name}} {{.GoType}}

const (
{{- range .Items}}
	{{.Ident}} {{$g.Name}} = {{.Value}} // {{.Source}}
{{- end}}
)

var {{.Table}} = map[{{.Name}}]string{
{{- range .Items}}
	{{.Ident}}: "{{.Name}}",
{{- end}}
}

// String returns the variant name, or {{.Name}}(n) for unknown values.
func (v {{.Name}}) String() string {
	if s, ok := {{.Table}}[v]; ok {
		return s
	}
	return "{{.Name}}(" + strconv.FormatInt(int64(v), 10) + ")"
}

// Valid reports whether v is a known variant.
func (v {{.Name}}) Valid() bool {
	_, ok := {{.Table}}[v]
	return ok
}

// {{.FromFunc}} converts a native value, reporting false when no
// variant has that value.
func {{.FromFunc}}(n {{.FromArg}}) ({{.Name}}, bool) {
	v := {{.Name}}(n)
	return v, v.Valid()
}

// {{.Name}}Values returns every variant in ascending order.
func {{.Name}}Values() []{{.Name}} {
	return []{{.Name}}{
{{- range .Items}}
		{{.Ident}},
{{- end}}
	}
}
{{end}}
{{- if .Flags}}
// FlagRangeError reports a value above the union of a flag type's known bits.
type FlagRangeError struct {
	Type  string
	Value int64
	Mask  uint64
}

func (e *FlagRangeError) Error() string {
	return fmt.Sprintf("%s: value %d exceeds known flags %#x", e.Type, e.Value, e.Mask)
}
{{end}}
{{- range $g := .Flags}}
// {{.Name}} is a bit set of the {{.Prefix}} flags.
type {{.Name}} {{.GoType}}

const (
{{- range .Items}}
	{{.Ident}} {{$g.Name}} = {{printf "%#x" .Value}} // {{.Source}}
{{- end}}
)

// {{.Name}}Mask is the union of every known {{.Name}} bit.
const {{.Name}}Mask {{.Name}} = {{.MaskHex}}

var {{.Table}} = []struct {
	bit  {{.Name}}
	name string
}{
{{- range .Items}}
	{ {{- .Ident}}, "{{.Name}}"},
{{- end}}
}

// {{.FromFunc}} validates a native value: it must not be negative and must
// not exceed {{.Name}}Mask.
func {{.FromFunc}}(n int32) ({{.Name}}, error) {
	if n < 0 || {{.Name}}(n) > {{.Name}}Mask {
		return 0, &FlagRangeError{Type: "{{.Name}}", Value: int64(n), Mask: uint64({{.Name}}Mask)}
	}
	return {{.Name}}(n), nil
}

// Has reports whether every bit of bit is set in f.
func (f {{.Name}}) Has(bit {{.Name}}) bool {
	return f&bit == bit
}

func (f {{.Name}}) String() string {
	var parts []string
	for _, e := range {{.Table}} {
		if e.bit == 0 {
			if f == 0 {
				return e.name
			}
			continue
		}
		if f&e.bit == e.bit {
			parts = append(parts, e.name)
		}
	}
	if rest := f &^ {{.Name}}Mask; rest != 0 {
		parts = append(parts, "0x"+strconv.FormatUint(uint64(rest), 16))
	}
	if len(parts) == 0 {
		return "0"
	}
	return strings.Join(parts, "|")
}
{{end}}
{{- if .Plain}}
const (
{{- range .Plain}}
	{{.Name}} int32 = {{.Value}}
{{- end}}
)
{{end}}
{{- if .Untyped}}
const (
{{- range .Untyped}}
	{{.Name}} = {{.Value}}
{{- end}}
)
{{end}}`))
