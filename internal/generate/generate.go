// Package generate runs the header-to-Go constant pipeline described by a
// config.Config: scan, classify, filter, render and write.
package generate

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"inkview/internal/config"
	"inkview/internal/enumgen"
	"inkview/internal/header"
	appLog "inkview/internal/log"
)

// GroupCount is the number of variants generated for one group.
type GroupCount struct {
	Name     string
	Kind     enumgen.Kind
	Variants int
}

// Report summarizes one pipeline run.
type Report struct {
	Output     string
	Groups     []GroupCount
	Plain      int
	Untyped    int
	Filtered   int
	Collisions []enumgen.Collision
	// Changed is false when the output already had identical content.
	Changed bool
}

// Scan reads every configured header in order into one constant list.
func Scan(cfg *config.Config) ([]enumgen.RawConstant, error) {
	s := header.NewScanner()
	for _, p := range cfg.HeaderPaths() {
		if err := s.ScanFile(p); err != nil {
			return nil, err
		}
	}
	return s.Constants(), nil
}

// Classify scans the headers and classifies the constants with the
// configured rules, applying the include/exclude filter to pass-through
// constants. It returns the number of filtered constants as well.
func Classify(cfg *config.Config) (*enumgen.Result, int, error) {
	rules, err := cfg.EnumRules()
	if err != nil {
		return nil, 0, err
	}
	keep, err := cfg.PassThroughFilter()
	if err != nil {
		return nil, 0, err
	}
	consts, err := Scan(cfg)
	if err != nil {
		return nil, 0, err
	}
	res, err := enumgen.Classify(rules, consts)
	if err != nil {
		return nil, 0, err
	}

	filtered := 0
	res.Plain, filtered = filter(res.Plain, keep, filtered)
	res.Untyped, filtered = filter(res.Untyped, keep, filtered)
	return res, filtered, nil
}

func filter(in []enumgen.Constant, keep func(string) bool, n int) ([]enumgen.Constant, int) {
	out := in[:0]
	for _, c := range in {
		if keep(c.Name) {
			out = append(out, c)
			continue
		}
		n++
	}
	return out, n
}

// Run executes the full pipeline and writes the output file. The file is
// left untouched when its content would not change.
func Run(cfg *config.Config) (*Report, error) {
	if cfg == nil {
		return nil, errors.New("generate: config is nil")
	}
	res, filtered, err := Classify(cfg)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	if cfg.StrictCollisions && len(res.Collisions) > 0 {
		msgs := make([]string, len(res.Collisions))
		for i, c := range res.Collisions {
			msgs[i] = c.String()
		}
		return nil, fmt.Errorf("generate: %s: %w", strings.Join(msgs, "; "), enumgen.ErrCollision)
	}

	sources := make([]string, len(cfg.Headers))
	for i, h := range cfg.Headers {
		sources[i] = filepath.Base(h)
	}
	src, err := enumgen.Render(res, enumgen.RenderOptions{
		Package: cfg.Package,
		Sources: sources,
	})
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	rep := &Report{
		Output:     cfg.OutputPath(),
		Plain:      len(res.Plain),
		Untyped:    len(res.Untyped),
		Filtered:   filtered,
		Collisions: res.Collisions,
	}
	for _, g := range res.Groups {
		rep.Groups = append(rep.Groups, GroupCount{Name: g.Name, Kind: g.Kind, Variants: g.Len()})
	}

	old, err := os.ReadFile(rep.Output)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("generate: %w", err)
	}
	if err == nil && bytes.Equal(old, src) {
		appLog.Debug("output unchanged", "path", rep.Output)
		return rep, nil
	}

	if err := config.WriteFileAtomic(rep.Output, src, 0o644); err != nil {
		return nil, fmt.Errorf("generate: write %s: %w", rep.Output, err)
	}
	rep.Changed = true
	appLog.Info("generated constants",
		"path", rep.Output,
		"groups", len(rep.Groups),
		"plain", rep.Plain,
		"untyped", rep.Untyped,
		"collisions", len(rep.Collisions),
	)
	return rep, nil
}
