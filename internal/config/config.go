package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"inkview/internal/enumgen"
	appLog "inkview/internal/log"
)

// RuleConfig is one prefix classification rule.
type RuleConfig struct {
	// Prefix is matched literally against the start of each constant name.
	Prefix string `yaml:"prefix" toml:"prefix" json:"prefix"`
	// Group is the generated Go type name.
	Group string `yaml:"group" toml:"group" json:"group"`
	// Width is "i32" (default) or "u32".
	Width string `yaml:"width,omitempty" toml:"width,omitempty" json:"width,omitempty"`
	// Flags renders the group as a bit set instead of an enumeration.
	Flags bool `yaml:"flags,omitempty" toml:"flags,omitempty" json:"flags,omitempty"`
}

// Config drives the constant generator (ivgen).
type Config struct {
	// Headers are the C headers to scan, in order. Relative paths are
	// resolved against the directory of the config file.
	Headers []string `yaml:"headers" toml:"headers" json:"headers"`

	// Output is the generated Go file.
	Output string `yaml:"output" toml:"output" json:"output"`

	// Package is the package clause of the generated file.
	Package string `yaml:"package" toml:"package" json:"package"`

	// Rules map constant name prefixes to enumeration groups. Matching order
	// is the lexicographic order of the prefixes, not the order listed here.
	Rules []RuleConfig `yaml:"rules" toml:"rules" json:"rules"`

	// Include, if non-empty, limits pass-through (non-enum) constants to
	// names matching at least one of these regular expressions.
	Include []string `yaml:"include,omitempty" toml:"include,omitempty" json:"include,omitempty"`

	// Exclude drops pass-through constants matching any of these regular
	// expressions. Applied after Include.
	Exclude []string `yaml:"exclude,omitempty" toml:"exclude,omitempty" json:"exclude,omitempty"`

	// StrictCollisions fails generation when two constants of one group
	// share a value, instead of keeping the last name.
	StrictCollisions bool `yaml:"strict_collisions" toml:"strict_collisions" json:"strict_collisions"`

	// dir is the directory the config was loaded from.
	dir string
}

// DefaultRules is the rule set used for the PocketBook inkview header.
func DefaultRules() []RuleConfig {
	return []RuleConfig{
		{Prefix: "DEF_", Group: "Button", Width: "i32"},
		{Prefix: "DITHER_", Group: "Dither", Width: "i32"},
		{Prefix: "EVT_", Group: "Event", Width: "i32"},
		{Prefix: "ICON_", Group: "Icon", Width: "i32"},
		{Prefix: "IV_KEY_", Group: "Key", Width: "i32"},
		{Prefix: "PANEL_", Group: "PanelType", Width: "u32", Flags: true},
		{Prefix: "REQ_", Group: "Request", Width: "i32"},
	}
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Headers: []string{"inkview.h"},
		Output:  "zconst.go",
		Package: "inkview",
		Rules:   DefaultRules(),
		Include: []string{
			`^(BLACK|[DL]GRAY|WHITE)$`,
			`^V?ALIGN_[A-Z]+$`,
			`^(ROTATE|HYPHENS|DOTS|RTLAUTO|UNDERLINE|STRETCH|TILE|TO_UPPER)$`,
			`^(KBD|ITEM|LIST|BMK|CFG|TASK|FTYPE|NET|CONN|GSENSOR|A2DP|CF)_[0-9A-Z_]+$`,
			`^(ROTATE[0-9]+|[XY]MIRROR|A2DITHER)$`,
			`^(NO_DISMISS|WITH_SIZE|MAXMSGSIZE|SYSTEMDEPTH)$`,
		},
		Exclude: []string{
			`^O_[A-Z]+$`,
			`^E(NOT|IS)DIR$`,
			`^E[NM]FILE$`,
			`^ENODATA$`,
		},
		StrictCollisions: false,
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	if len(c.Headers) == 0 {
		c.Headers = []string{"inkview.h"}
	}
	if c.Output == "" {
		c.Output = "zconst.go"
	}
	if c.Package == "" {
		c.Package = "inkview"
	}
	if c.Rules == nil {
		c.Rules = DefaultRules()
	}
	for i := range c.Rules {
		if c.Rules[i].Width == "" {
			c.Rules[i].Width = "i32"
		}
	}
}

// Validate checks rules and patterns without scanning anything.
func (c *Config) Validate() error {
	if _, err := c.EnumRules(); err != nil {
		return err
	}
	if _, err := compileAll(c.Include); err != nil {
		return fmt.Errorf("config: include: %w", err)
	}
	if _, err := compileAll(c.Exclude); err != nil {
		return fmt.Errorf("config: exclude: %w", err)
	}
	return nil
}

// EnumRules converts the configured rules for the classifier.
func (c *Config) EnumRules() ([]enumgen.Rule, error) {
	out := make([]enumgen.Rule, 0, len(c.Rules))
	for _, r := range c.Rules {
		w, err := enumgen.ParseWidth(r.Width)
		if err != nil {
			return nil, fmt.Errorf("config: rule %q: %w", r.Prefix, err)
		}
		kind := enumgen.KindEnum
		if r.Flags {
			kind = enumgen.KindFlags
		}
		out = append(out, enumgen.Rule{Prefix: r.Prefix, Group: r.Group, Width: w, Kind: kind})
	}
	return out, nil
}

// PassThroughFilter returns a predicate over constant names built from
// Include and Exclude.
func (c *Config) PassThroughFilter() (func(name string) bool, error) {
	inc, err := compileAll(c.Include)
	if err != nil {
		return nil, fmt.Errorf("config: include: %w", err)
	}
	exc, err := compileAll(c.Exclude)
	if err != nil {
		return nil, fmt.Errorf("config: exclude: %w", err)
	}
	return func(name string) bool {
		if len(inc) > 0 && !matchAny(inc, name) {
			return false
		}
		return !matchAny(exc, name)
	}, nil
}

// Resolve makes p absolute relative to the config file's directory.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.dir == "" {
		return p
	}
	return filepath.Join(c.dir, p)
}

// HeaderPaths returns the resolved header paths.
func (c *Config) HeaderPaths() []string {
	out := make([]string, len(c.Headers))
	for i, h := range c.Headers {
		out[i] = c.Resolve(os.ExpandEnv(h))
	}
	return out
}

// OutputPath returns the resolved output path.
func (c *Config) OutputPath() string {
	return c.Resolve(os.ExpandEnv(c.Output))
}

func compileAll(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		out = append(out, re)
	}
	return out, nil
}

func matchAny(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// Load loads the generator configuration from path.
//
// Behavior:
//   - If the file does not exist:
//   - create parent directory if needed
//   - write a default config with 0600 perms
//   - return the default config
//   - If the file exists:
//   - decode it (TOML for .toml, YAML otherwise)
//   - normalize defaults
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	created, err := loadOrCreate(path, cfg)
	if err != nil {
		return cfg, err
	}
	if created {
		appLog.Info("wrote default generator config", "path", path)
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// Save writes the given configuration to the specified path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	return save(path, cfg)
}

// Save is a convenience method on Config that delegates to the package-level
// Save function.
func (c *Config) Save(path string) error {
	return Save(path, c)
}

// normalizer is implemented by every config document in this package.
type normalizer interface {
	Normalize()
}

// loadOrCreate decodes path into v, or writes v (holding defaults) to path
// when the file does not exist yet. It reports whether the file was created.
func loadOrCreate(path string, v normalizer) (bool, error) {
	if path == "" {
		return false, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// First run: create default config file.
			if err := save(path, v); err != nil {
				// Even if save fails, the caller still has the defaults.
				return false, err
			}
			return true, nil
		}
		return false, err
	}

	if err := decode(path, data, v); err != nil {
		return false, fmt.Errorf("config: %s: %w", path, err)
	}
	v.Normalize()
	return false, nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func decode(path string, data []byte, v any) error {
	if isTOML(path) {
		return toml.Unmarshal(data, v)
	}
	return yaml.Unmarshal(data, v)
}

func encode(path string, v any) ([]byte, error) {
	if isTOML(path) {
		return toml.Marshal(v)
	}
	return yaml.Marshal(v)
}

// save writes v atomically:
//   - Ensures parent directory exists (0700).
//   - Writes to a temp file in the same directory, then renames.
//   - Ensures final file permissions are 0600.
func save(path string, v normalizer) error {
	if path == "" {
		return errors.New("config path is empty")
	}

	v.Normalize()

	data, err := encode(path, v)
	if err != nil {
		return err
	}
	return WriteFileAtomic(path, data, 0o600)
}

// WriteFileAtomic writes data to path via a temp file in the same
// directory and a rename, so readers never observe a partial file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	// Ensure we clean up temp file on error.
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
