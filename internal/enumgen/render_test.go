package enumgen

import (
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"testing"
)

func renderFixture(t *testing.T) string {
	t.Helper()
	rules := []Rule{
		{Prefix: "EVT_", Group: "Event"},
		{Prefix: "PANEL_", Group: "PanelType", Width: Uint32, Kind: KindFlags},
		{Prefix: "MODE_", Group: "Mode", Width: Uint32},
	}
	consts := []RawConstant{
		{Name: "EVT_SHOW", Value: 23},
		{Name: "EVT_INIT", Value: 21},
		{Name: "EVT_2LEVEL_DISPLAY", Value: 42},
		{Name: "PANEL_DISABLED", Value: 0},
		{Name: "PANEL_ENABLED", Value: 2},
		{Name: "PANEL_NO_FB_OFFSET", Value: 8},
		{Name: "MODE_FAST", Value: 3},
		{Name: "WHITE", Value: 0xFFFFFF},
		{Name: "_PRIVATE", Value: 1},
		{Name: "BIG_MASK", Value: 1 << 40},
	}
	res, err := Classify(rules, consts)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	src, err := Render(res, RenderOptions{Package: "inkview", Sources: []string{"inkview.h"}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return string(src)
}

func TestRender_ParsesAndDeclares(t *testing.T) {
	src := renderFixture(t)

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "zconst.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("rendered file does not parse: %v\n%s", err, src)
	}
	if f.Name.Name != "inkview" {
		t.Errorf("package = %s", f.Name.Name)
	}

	decls := map[string]bool{}
	for _, d := range f.Decls {
		switch d := d.(type) {
		case *ast.FuncDecl:
			name := d.Name.Name
			if d.Recv != nil {
				recv := d.Recv.List[0].Type
				if star, ok := recv.(*ast.StarExpr); ok {
					recv = star.X
				}
				name = recv.(*ast.Ident).Name + "." + name
			}
			decls[name] = true
		case *ast.GenDecl:
			for _, s := range d.Specs {
				switch s := s.(type) {
				case *ast.TypeSpec:
					decls[s.Name.Name] = true
				case *ast.ValueSpec:
					for _, n := range s.Names {
						decls[n.Name] = true
					}
				}
			}
		}
	}

	for _, want := range []string{
		"Event", "EventInit", "EventShow", "Event2levelDisplay",
		"Event.String", "Event.Valid", "EventFromInt32", "EventValues",
		"Mode", "ModeFast", "ModeFromUint32",
		"PanelType", "PanelTypeMask", "PanelTypeFromInt32", "PanelType.Has", "PanelType.String",
		"FlagRangeError", "FlagRangeError.Error",
		"WHITE", "BIG_MASK",
	} {
		if !decls[want] {
			t.Errorf("missing declaration %s", want)
		}
	}
	if decls["_PRIVATE"] {
		t.Error("unexported constant should be skipped")
	}
}

func TestRender_ExactValuesAndOrder(t *testing.T) {
	src := renderFixture(t)

	for _, want := range []string{
		"// Code generated by ivgen from inkview.h; DO NOT EDIT.",
		"type Event int32",
		"EventInit          Event = 21 // EVT_INIT",
		"EventShow          Event = 23 // EVT_SHOW",
		"Event2levelDisplay Event = 42 // EVT_2LEVEL_DISPLAY",
		`Event2levelDisplay: "EVENT2LEVEL_DISPLAY",`,
		"type PanelType uint32",
		"const PanelTypeMask PanelType = 0xa",
		"WHITE int32 = 16777215",
		"BIG_MASK = 1099511627776",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("rendered source missing %q\n%s", want, src)
		}
	}

	init := strings.Index(src, "EventInit ")
	show := strings.Index(src, "EventShow ")
	two := strings.Index(src, "Event2levelDisplay ")
	if !(init < show && show < two) {
		t.Errorf("variants not ascending: %d %d %d", init, show, two)
	}
}

func TestRender_Deterministic(t *testing.T) {
	a := renderFixture(t)
	for i := 0; i < 5; i++ {
		if b := renderFixture(t); a != b {
			t.Fatal("render output differs between runs")
		}
	}
}

func TestRender_PlainOnlyHasNoImports(t *testing.T) {
	res, err := Classify(nil, []RawConstant{{Name: "BLACK", Value: 0}})
	if err != nil {
		t.Fatal(err)
	}
	src, err := Render(res, RenderOptions{Package: "consts"})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(src), "import") {
		t.Errorf("unexpected import block:\n%s", src)
	}
}

func TestRender_BadPackage(t *testing.T) {
	if _, err := Render(&Result{}, RenderOptions{}); err == nil {
		t.Error("expected error for empty package")
	}
	if _, err := Render(&Result{}, RenderOptions{Package: "not-valid"}); err == nil {
		t.Error("expected error for invalid package")
	}
}

func TestRender_DeclarationClash(t *testing.T) {
	tests := []struct {
		name   string
		rules  []Rule
		consts []RawConstant
		ident  string
	}{
		{
			name: "variants of two groups",
			rules: []Rule{
				{Prefix: "KEY_", Group: "Key"},
				{Prefix: "KPAD_", Group: "KeyPad"},
			},
			consts: []RawConstant{{Name: "KEY_PAD_X", Value: 1}, {Name: "KPAD_X", Value: 1}},
			ident:  "KeyPadX",
		},
		{
			name:   "variant shadows values function",
			rules:  []Rule{{Prefix: "IV_KEY_", Group: "Key"}},
			consts: []RawConstant{{Name: "IV_KEY_OK", Value: 10}, {Name: "IV_KEY_VALUES", Value: 11}},
			ident:  "KeyValues",
		},
		{
			name:   "flag shadows mask constant",
			rules:  []Rule{{Prefix: "PANEL_", Group: "PanelType", Width: Uint32, Kind: KindFlags}},
			consts: []RawConstant{{Name: "PANEL_ENABLED", Value: 2}, {Name: "PANEL_MASK", Value: 4}},
			ident:  "PanelTypeMask",
		},
		{
			name:   "variant shadows from function",
			rules:  []Rule{{Prefix: "EVT_", Group: "Event"}},
			consts: []RawConstant{{Name: "EVT_FROM_INT32", Value: 1}},
			ident:  "EventFromInt32",
		},
		{
			name:   "plain constant shadows group type",
			rules:  []Rule{{Prefix: "EVT_", Group: "Event"}},
			consts: []RawConstant{{Name: "EVT_SHOW", Value: 1}, {Name: "Event", Value: 2}},
			ident:  "Event",
		},
		{
			name:   "plain constant shadows flag error type",
			rules:  []Rule{{Prefix: "PANEL_", Group: "PanelType", Width: Uint32, Kind: KindFlags}},
			consts: []RawConstant{{Name: "PANEL_ENABLED", Value: 2}, {Name: "FlagRangeError", Value: 1}},
			ident:  "FlagRangeError",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Classify(tt.rules, tt.consts)
			if err != nil {
				t.Fatalf("Classify: %v", err)
			}
			_, err = Render(res, RenderOptions{Package: "inkview"})
			if !errors.Is(err, ErrIdentifierClash) {
				t.Fatalf("err = %v, want %v", err, ErrIdentifierClash)
			}
			if !strings.Contains(err.Error(), tt.ident) {
				t.Errorf("error %q does not name %s", err, tt.ident)
			}
		})
	}
}
