package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	appLog "inkview/internal/log"
)

// SourceConfig describes a single ICS source.
type SourceConfig struct {
	// Path is a local .ics file or an http(s) URL.
	Path string `yaml:"path" toml:"path" json:"path"`
	// ID is an internal identifier used for de-dup and logging.
	ID string `yaml:"id" toml:"id" json:"id"`
	// Name is a human-friendly label shown on screen.
	Name string `yaml:"name" toml:"name" json:"name"`
}

// AgendaConfig is the configuration of the agenda application.
type AgendaConfig struct {
	// Timezone is the IANA timezone used as canonical display zone.
	Timezone string `yaml:"timezone" toml:"timezone" json:"timezone"`

	// HorizonDays is the number of future days to display.
	HorizonDays int `yaml:"horizon_days" toml:"horizon_days" json:"horizon_days"`

	// ShowAllDay toggles all-day events.
	ShowAllDay bool `yaml:"show_all_day" toml:"show_all_day" json:"show_all_day"`

	// Highlight is a list of keywords that cause events to be drawn inverted.
	Highlight []string `yaml:"highlight" toml:"highlight" json:"highlight"`

	// FontName and FontSize select the native font used for event lines.
	FontName string `yaml:"font" toml:"font" json:"font"`
	FontSize int    `yaml:"font_size" toml:"font_size" json:"font_size"`

	// CacheDir holds fetched remote calendars with their ETag metadata.
	// Empty means the user cache directory.
	CacheDir string `yaml:"cache_dir,omitempty" toml:"cache_dir,omitempty" json:"cache_dir,omitempty"`

	// Sources is the list of calendars.
	Sources []SourceConfig `yaml:"sources" toml:"sources" json:"sources"`
}

// DefaultAgendaConfig returns an in-memory default agenda configuration.
func DefaultAgendaConfig() *AgendaConfig {
	return &AgendaConfig{
		Timezone:    "UTC",
		HorizonDays: 7,
		ShowAllDay:  true,
		Highlight:   []string{"holiday", "important"},
		FontName:    "LiberationSans",
		FontSize:    24,
		Sources:     []SourceConfig{},
	}
}

// Normalize fills in missing/zero values with sensible defaults.
func (c *AgendaConfig) Normalize() {
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
	if c.HorizonDays <= 0 {
		c.HorizonDays = 7
	}
	if c.Highlight == nil {
		c.Highlight = []string{}
	}
	if c.FontName == "" {
		c.FontName = "LiberationSans"
	}
	if c.FontSize <= 0 {
		c.FontSize = 24
	}
	if c.Sources == nil {
		c.Sources = []SourceConfig{}
	}
	for i := range c.Sources {
		if c.Sources[i].ID == "" {
			c.Sources[i].ID = filepath.Base(c.Sources[i].Path)
		}
		if c.Sources[i].Name == "" {
			c.Sources[i].Name = c.Sources[i].ID
		}
	}
}

// Location resolves Timezone, falling back to UTC when the zone database
// does not know it.
func (c *AgendaConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		appLog.Warn("unknown timezone, using UTC", "timezone", c.Timezone)
		return time.UTC
	}
	return loc
}

// CachePath returns the cache directory, defaulting to
// <user cache dir>/ivagenda.
func (c *AgendaConfig) CachePath() string {
	if c.CacheDir != "" {
		return os.ExpandEnv(c.CacheDir)
	}
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "ivagenda")
}

// LoadAgenda loads the agenda configuration from path, writing the default
// on first run like Load.
func LoadAgenda(path string) (*AgendaConfig, error) {
	cfg := DefaultAgendaConfig()
	created, err := loadOrCreate(path, cfg)
	if err != nil {
		return cfg, err
	}
	if created {
		appLog.Info("wrote default agenda config", "path", path)
	}
	return cfg, nil
}

// SaveAgenda writes cfg atomically with 0600 permissions.
func SaveAgenda(path string, cfg *AgendaConfig) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	return save(path, cfg)
}
