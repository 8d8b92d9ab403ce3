package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testHeader = `
#define WHITE 0xffffff
#define O_RDWR 2
#define EVT_INIT 21
#define EVT_SHOW 23
#define EVT_REPAINT 23
#define IV_KEY_0 0x30
enum { PANEL_DISABLED = 0, PANEL_ENABLED = 1 << 1 };
`

// execute runs rootCmd with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	force = false
	logLevel = ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	err := rootCmd.Execute()
	return out.String(), err
}

// rows splits printed output into whitespace-separated fields per line.
func rows(out string) [][]string {
	var r [][]string
	for _, l := range strings.Split(out, "\n") {
		if f := strings.Fields(l); len(f) > 0 {
			r = append(r, f)
		}
	}
	return r
}

func hasRow(out string, want ...string) bool {
	for _, r := range rows(out) {
		if strings.Join(r, " ") == strings.Join(want, " ") {
			return true
		}
	}
	return false
}

func TestInit(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "ivgen.yaml")

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"creates", []string{"init", "-c", cfgPath}, ""},
		{"refuses existing", []string{"init", "-c", cfgPath}, "already exists"},
		{"force overwrites", []string{"init", "--force", "-c", cfgPath}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.name == "force overwrites" {
				if err := os.WriteFile(cfgPath, []byte("package: old\n"), 0o600); err != nil {
					t.Fatal(err)
				}
			}
			out, err := execute(t, tt.args...)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("init: %v", err)
			}
			if !hasRow(out, "wrote", cfgPath) {
				t.Errorf("output = %q", out)
			}
			data, err := os.ReadFile(cfgPath)
			if err != nil {
				t.Fatal(err)
			}
			for _, want := range []string{"package: inkview", "prefix: EVT_", "group: PanelType"} {
				if !strings.Contains(string(data), want) {
					t.Errorf("config missing %q:\n%s", want, data)
				}
			}
		})
	}
}

func setupDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "inkview.h"), []byte(testHeader), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "init", "-c", filepath.Join(dir, "ivgen.yaml")); err != nil {
		t.Fatalf("init: %v", err)
	}
	return filepath.Join(dir, "ivgen.yaml")
}

func TestScan(t *testing.T) {
	cfgPath := setupDir(t)
	out, err := execute(t, "scan", "-c", cfgPath)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	tests := []struct {
		name string
		row  []string
	}{
		{"header", []string{"NAME", "VALUE", "CLASS", "GROUP", "VARIANT"}},
		{"enum", []string{"EVT_INIT", "21", "enum", "Event", "INIT"}},
		{"collision keeps both rows", []string{"EVT_REPAINT", "23", "enum", "Event", "REPAINT"}},
		{"digit variant", []string{"IV_KEY_0", "48", "enum", "Key", "KEY0"}},
		{"flag", []string{"PANEL_ENABLED", "2", "enum", "PanelType", "ENABLED"}},
		{"plain", []string{"WHITE", "16777215", "i32"}},
		{"filtered", []string{"O_RDWR", "2", "filtered"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !hasRow(out, tt.row...) {
				t.Errorf("missing row %v in:\n%s", tt.row, out)
			}
		})
	}
}

func TestGenerateReport(t *testing.T) {
	cfgPath := setupDir(t)
	output := filepath.Join(filepath.Dir(cfgPath), "zconst.go")

	first, err := execute(t, "generate", "-c", cfgPath)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := execute(t, "generate", "-c", cfgPath)
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}

	tests := []struct {
		name string
		out  string
		row  []string
	}{
		{"written", first, []string{output, "(written)"}},
		{"event count", first, []string{"Event", "enum", "2"}},
		{"key count", first, []string{"Key", "enum", "1"}},
		{"flags count", first, []string{"PanelType", "flags", "2"}},
		{"plain", first, []string{"plain", "i32", "1"}},
		{"untyped", first, []string{"untyped", "-", "0"}},
		{"filtered", first, []string{"filtered", "-", "1"}},
		{"collision", first, []string{"collision:", "Event:", "EVT_REPAINT", "replaces", "EVT_SHOW", "at", "value", "23"}},
		{"unchanged", second, []string{output, "(unchanged)"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !hasRow(tt.out, tt.row...) {
				t.Errorf("missing row %v in:\n%s", tt.row, tt.out)
			}
		})
	}

	src, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(src), "EventRepaint Event = 23 // EVT_REPAINT") {
		t.Errorf("generated file:\n%s", src)
	}
}

func TestGenerateMissingHeader(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "ivgen.yaml")
	if _, err := execute(t, "generate", "-c", cfgPath); err == nil {
		t.Fatal("generate without a header succeeded")
	}
}
