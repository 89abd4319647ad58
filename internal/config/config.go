// pattern: Imperative Shell

// Package config loads sessionizer settings from a YAML file under the XDG
// config directory, falling back to the TOML file of the original tool.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"sessionizer/internal/discovery"
	"sessionizer/internal/pathutil"
)

const (
	appName        = "sessionizer"
	FileName       = "config.yaml"
	LegacyFileName = "tmux-sessionizer.toml"
	legacyAppName  = "tmux-sessionizer"

	DefaultTheme  = "mocha"
	DefaultPicker = "builtin"
	DefaultDepth  = 1
)

type Config struct {
	SearchPaths     []string `yaml:"search_paths" toml:"search_paths"`
	AdditionalPaths []string `yaml:"additional_paths" toml:"additional_paths"`
	ExcludePatterns []string `yaml:"exclude_patterns" toml:"exclude_patterns"`
	ScanDepth       int      `yaml:"scan_depth" toml:"scan_depth"`
	IncludeHidden   bool     `yaml:"include_hidden" toml:"include_hidden"`
	LogLevel        string   `yaml:"log_level" toml:"log_level"`
	Theme           string   `yaml:"theme" toml:"theme"`
	Picker          string   `yaml:"picker" toml:"picker"`
	TmuxBin         string   `yaml:"tmux_bin" toml:"tmux_bin"`

	// Source is the file the values came from; empty when only defaults apply.
	Source string `yaml:"-" toml:"-"`
}

func DefaultConfig() Config {
	return Config{
		SearchPaths: []string{"~/projects", "~/Development"},
		ScanDepth:   DefaultDepth,
		LogLevel:    "info",
		Theme:       DefaultTheme,
		Picker:      DefaultPicker,
	}
}

// Load reads the default config file, or the legacy TOML file when no YAML
// file exists. With neither present the defaults are returned.
func Load() (Config, error) {
	for _, path := range candidatePaths() {
		if _, err := os.Stat(path); err == nil {
			return LoadFrom(path)
		}
	}
	return DefaultConfig(), nil
}

// LoadFrom reads configPath, choosing the decoder by extension. A missing
// file yields the defaults. Keys absent from the file keep their defaults.
func LoadFrom(configPath string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if strings.EqualFold(filepath.Ext(configPath), ".toml") {
		err = toml.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return DefaultConfig(), fmt.Errorf("parsing %s: %w", configPath, err)
	}

	cfg.applyDefaults()
	cfg.Source = configPath
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ScanDepth == 0 {
		c.ScanDepth = DefaultDepth
	}
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
	if c.Picker == "" {
		c.Picker = DefaultPicker
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.ScanDepth < 1 {
		return fmt.Errorf("scan_depth must be at least 1, got %d", c.ScanDepth)
	}
	switch c.Theme {
	case "latte", "frappe", "macchiato", "mocha":
	default:
		return fmt.Errorf("theme %q is not a catppuccin flavor (latte, frappe, macchiato, mocha)", c.Theme)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q is not one of debug, info, warn, error", c.LogLevel)
	}
	if strings.TrimSpace(c.Picker) == "" {
		return errors.New("picker must be \"builtin\" or a command line")
	}
	_, err := c.CompiledExcludes()
	return err
}

// CompiledExcludes compiles exclude_patterns in order.
func (c Config) CompiledExcludes() ([]*regexp.Regexp, error) {
	patterns := make([]*regexp.Regexp, 0, len(c.ExcludePatterns))
	for i, p := range c.ExcludePatterns {
		if p == "" {
			return nil, fmt.Errorf("exclude_patterns[%d] is empty", i)
		}
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("exclude_patterns[%d] %q: %w", i, p, err)
		}
		patterns = append(patterns, re)
	}
	return patterns, nil
}

// Roots returns the scan roots with ~ expanded, in configured order.
func (c Config) Roots() discovery.Roots {
	return discovery.Roots{
		Search:     expandAll(c.SearchPaths),
		Additional: expandAll(c.AdditionalPaths),
	}
}

// ScanOptions returns the scanner options set by the config.
func (c Config) ScanOptions() discovery.Options {
	return discovery.Options{
		Depth:         c.ScanDepth,
		IncludeHidden: c.IncludeHidden,
	}
}

func expandAll(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, pathutil.ExpandUser(strings.TrimSpace(p)))
	}
	return out
}

// Dir returns the sessionizer config directory.
func Dir() string {
	return filepath.Join(configHome(), appName)
}

// Path returns the default config file path.
func Path() string {
	return filepath.Join(Dir(), FileName)
}

// candidatePaths lists config files in lookup order.
func candidatePaths() []string {
	return []string{
		Path(),
		filepath.Join(Dir(), LegacyFileName),
		filepath.Join(configHome(), legacyAppName, LegacyFileName),
	}
}

func configHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ".config"
	}

	return filepath.Join(home, ".config")
}
