// Package config loads the cellscope configuration file and resolves the
// application data directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const appName = "cellscope"

// Config holds all tunable settings. Every field has a working default; a
// missing config file is not an error.
type Config struct {
	// Grid dimensions for new simulations.
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`

	// SpeedMS is the auto-step interval in milliseconds.
	SpeedMS int `yaml:"speed_ms"`

	// PatternsDir holds user .cells definitions. When the directory does
	// not exist the embedded default set is used instead.
	PatternsDir string `yaml:"patterns_dir"`

	// MaxPatternBox is the largest bounding-box dimension recognized.
	MaxPatternBox int `yaml:"max_pattern_box"`

	// DataDir holds the SQLite database. Empty means the XDG default.
	DataDir string `yaml:"data_dir"`

	// DarkMode forces the dark color theme.
	DarkMode bool `yaml:"dark_mode"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Rows:          50,
		Cols:          50,
		SpeedMS:       100,
		PatternsDir:   "patterns",
		MaxPatternBox: 10,
	}
}

// Load reads the YAML config at path, layered over defaults. A missing
// file yields the defaults; a malformed file is an error. The
// CELLSCOPE_DATA_DIR environment variable overrides data_dir either way.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if env := os.Getenv("CELLSCOPE_DATA_DIR"); env != "" {
		cfg.DataDir = env
	}
	cfg.sanitize()
	return cfg, nil
}

func (c *Config) sanitize() {
	d := Default()
	if c.Rows <= 0 {
		c.Rows = d.Rows
	}
	if c.Cols <= 0 {
		c.Cols = d.Cols
	}
	if c.SpeedMS <= 0 {
		c.SpeedMS = d.SpeedMS
	}
	if c.MaxPatternBox <= 0 {
		c.MaxPatternBox = d.MaxPatternBox
	}
	if c.PatternsDir == "" {
		c.PatternsDir = d.PatternsDir
	}
}

// ResolveDataDir returns the directory for persistent data, creating it if
// needed. Defaults to $XDG_DATA_HOME/cellscope (or ~/.local/share/cellscope).
func (c Config) ResolveDataDir() (string, error) {
	dir := c.DataDir
	if dir == "" {
		xdg := os.Getenv("XDG_DATA_HOME")
		if xdg == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to locate home directory: %w", err)
			}
			xdg = filepath.Join(home, ".local", "share")
		}
		dir = filepath.Join(xdg, appName)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return dir, nil
}

// DatabasePath resolves the SQLite database location.
func (c Config) DatabasePath() (string, error) {
	dir, err := c.ResolveDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cellscope.db"), nil
}
