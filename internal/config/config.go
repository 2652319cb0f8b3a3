// Package config loads named dialog profiles from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/leonwijng/filechooser/internal/dialog"
	"github.com/leonwijng/filechooser/internal/packed"
)

// ErrProfileNotFound is returned by Profile for unknown names.
var ErrProfileNotFound = errors.New("profile not found")

// Profile is a preset dialog configuration
type Profile struct {
	// Mode is one of files, dirs or both
	Mode string `yaml:"mode"`

	// Multi enables multi-selection
	Multi bool `yaml:"multi"`

	Title       string `yaml:"title"`
	Directory   string `yaml:"directory"`
	DefaultFile string `yaml:"default_file"`
	OpenButton  string `yaml:"open_button"`
	SaveButton  string `yaml:"save_button"`

	// FilterIndex is the 1-based filter selected initially
	FilterIndex int `yaml:"filter_index"`

	AddToRecent bool `yaml:"add_to_recent"`

	// MaxFiles sizes the native multi-selection buffer (0 = default)
	MaxFiles int `yaml:"max_files"`

	Filters []dialog.Filter `yaml:"filters"`
}

// Config is the content of a profiles file
type Config struct {
	// LogLevel sets the logging verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	Profiles map[string]Profile `yaml:"profiles"`
}

// DefaultPath returns the profiles file in the user configuration directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "filechooser", "profiles.yaml"), nil
}

// Load reads and validates the profiles file at path. A missing file is
// an empty configuration.
func Load(path string) (*Config, error) {
	cfg := &Config{Profiles: map[string]Profile{}}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if cfg.Profiles == nil {
		cfg.Profiles = map[string]Profile{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every profile.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	for _, name := range c.Names() {
		if err := c.Profiles[name].Validate(); err != nil {
			return fmt.Errorf("profile %q: %w", name, err)
		}
	}
	return nil
}

// Validate checks the mode, counters and filters of p.
func (p Profile) Validate() error {
	if _, err := dialog.ParseMode(p.Mode); err != nil {
		return err
	}
	if p.FilterIndex < 0 || p.FilterIndex > len(p.Filters) {
		return fmt.Errorf("filter_index %d out of range", p.FilterIndex)
	}
	if p.MaxFiles < 0 || p.MaxFiles > packed.MaxFiles {
		return fmt.Errorf("max_files must be between 0 and %d", packed.MaxFiles)
	}
	for _, f := range p.Filters {
		if _, err := dialog.NewFilter(f.Label, f.Extensions...); err != nil {
			return err
		}
	}
	return nil
}

// Names returns the profile names in sorted order.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Profile returns the named profile with "~" expanded in its directory.
func (c *Config) Profile(name string) (Profile, error) {
	p, ok := c.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	dir, err := expandHome(p.Directory)
	if err != nil {
		return Profile{}, err
	}
	p.Directory = dir
	return p, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to expand %s: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
