// Package config provides configuration loading from YAML files.
package config

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration. Unlike the setlist
// files it also persists editing preferences (band list, current
// artist, duration mode), so it is written back when those change.
type Config struct {
	Bands       []string   `yaml:"bands" default:"[\"carrel bites\"]" validate:"min=1"`
	Artist      string     `yaml:"artist"`
	UseDuration bool       `yaml:"use_duration"`
	Dirs        DirsConfig `yaml:"dirs"`
	PDF         PDFConfig  `yaml:"pdf"`
}

// DirsConfig holds the working directories.
type DirsConfig struct {
	Setlists string `yaml:"setlists" default:"setlists" validate:"required"`
	Export   string `yaml:"export" default:"export" validate:"required"`
}

// PDFConfig holds the PDF exporter configuration. Settings is a loose
// map decoded by the exporter itself, so layout knobs can be added
// without touching this package.
type PDFConfig struct {
	FontFamily string         `yaml:"font_family" default:"NotoSansJP" validate:"required"`
	FontPaths  []string       `yaml:"font_paths"`
	Settings   map[string]any `yaml:"settings,omitempty"`
}

// Load loads configuration from a YAML file. A missing file is not an
// error: the tool must start on a fresh machine, so defaults apply.
// Environment variables take precedence over file values.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "failed to parse config file")
		}
	case os.IsNotExist(err):
		// Fresh start, defaults only
	default:
		return nil, errors.Wrap(err, "failed to read config file")
	}

	// Override with environment variables
	cfg.overrideFromEnv()

	// Set defaults using creasty/defaults
	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	cfg.normalize()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// Save writes the configuration back to path, creating parent
// directories as needed.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to encode config")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "failed to create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("SETLIST_ARTIST"); v != "" {
		c.Artist = v
	}
	if v := os.Getenv("SETLIST_FONT_PATH"); v != "" {
		c.PDF.FontPaths = append([]string{v}, c.PDF.FontPaths...)
	}
}

// normalize keeps Artist consistent with the band list: an unknown
// artist is registered, an empty one falls back to the first band.
func (c *Config) normalize() {
	if c.Artist == "" {
		if len(c.Bands) > 0 {
			c.Artist = c.Bands[0]
		}
		return
	}
	if !c.HasBand(c.Artist) {
		c.Bands = append(c.Bands, c.Artist)
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	if c.Artist != "" && !c.HasBand(c.Artist) {
		return errors.Newf("artist %q is not in the band list", c.Artist)
	}
	return nil
}

// HasBand reports whether name is in the band list.
func (c *Config) HasBand(name string) bool {
	for _, b := range c.Bands {
		if b == name {
			return true
		}
	}
	return false
}

// AddBand registers a band. Duplicates are rejected.
func (c *Config) AddBand(name string) bool {
	if name == "" || c.HasBand(name) {
		return false
	}
	c.Bands = append(c.Bands, name)
	return true
}

// RemoveBand removes a band. The current artist moves to the first
// remaining band when its own entry is removed; the last band cannot
// be removed.
func (c *Config) RemoveBand(name string) bool {
	if len(c.Bands) <= 1 || !c.HasBand(name) {
		return false
	}
	kept := make([]string, 0, len(c.Bands)-1)
	for _, b := range c.Bands {
		if b != name {
			kept = append(kept, b)
		}
	}
	c.Bands = kept
	if c.Artist == name {
		c.Artist = c.Bands[0]
	}
	return true
}
