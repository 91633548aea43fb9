// Package config loads .ember.toml settings shared by the ember commands.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the per-project configuration file looked up by Discover.
const FileName = ".ember.toml"

// Config holds the complete tool configuration
type Config struct {
	Parse  ParseConfig  `toml:"parse"`
	Output OutputConfig `toml:"output"`
	Log    LogConfig    `toml:"log"`
	REPL   REPLConfig   `toml:"repl"`
	Check  CheckConfig  `toml:"check"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `toml:"-"`
}

// ParseConfig selects the parser start symbol and extensions
type ParseConfig struct {
	Mode          string `toml:"mode"`
	ChainedAccess bool   `toml:"chained_access"`
}

// OutputConfig controls how `ember parse` prints trees
type OutputConfig struct {
	Format    string `toml:"format"`
	Positions bool   `toml:"positions"`
}

// LogConfig configures commonlog
type LogConfig struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

type REPLConfig struct {
	History string `toml:"history"`
	Prompt  string `toml:"prompt"`
}

// CheckConfig holds workspace scanning settings
type CheckConfig struct {
	Extensions   []string `toml:"extensions"`
	Exclude      []string `toml:"exclude"`
	PollInterval Duration `toml:"poll_interval"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// Load loads configuration from a TOML file
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.Path = path

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Discover finds the configuration for dir: the nearest .ember.toml in dir
// or one of its parents, then $EMBER_CONFIG, then
// $HOME/.config/ember/config.toml. Without any of them it returns Default.
func Discover(dir string) (*Config, error) {
	if path, ok := findUp(dir); ok {
		return Load(path)
	}

	candidates := []string{os.Getenv("EMBER_CONFIG")}
	if home := os.Getenv("HOME"); home != "" {
		candidates = append(candidates, filepath.Join(home, ".config/ember/config.toml"))
	}
	for _, p := range candidates {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}

	return Default(), nil
}

func findUp(dir string) (string, bool) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for d := abs; ; d = filepath.Dir(d) {
		candidate := filepath.Join(d, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		if filepath.Dir(d) == d {
			return "", false
		}
	}
}

// Validate rejects values the commands cannot act on.
func (c *Config) Validate() error {
	switch c.Parse.Mode {
	case "statements", "object":
	default:
		return fmt.Errorf("parse.mode: unknown mode %q (expected statements or object)", c.Parse.Mode)
	}
	switch c.Output.Format {
	case "tree", "json", "yaml", "source":
	default:
		return fmt.Errorf("output.format: unknown format %q", c.Output.Format)
	}
	if c.Log.Verbosity < 0 {
		return fmt.Errorf("log.verbosity: must not be negative")
	}
	return nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Parse.Mode == "" {
		c.Parse.Mode = "statements"
	}
	if c.Output.Format == "" {
		c.Output.Format = "tree"
	}
	if c.REPL.Prompt == "" {
		c.REPL.Prompt = "ember> "
	}
	if c.REPL.History == "" {
		if home := os.Getenv("HOME"); home != "" {
			c.REPL.History = filepath.Join(home, ".ember_history")
		}
	}
	c.REPL.History = os.ExpandEnv(c.REPL.History)
	c.Log.File = os.ExpandEnv(c.Log.File)
	if len(c.Check.Extensions) == 0 {
		c.Check.Extensions = []string{".em"}
	}
	if c.Check.PollInterval.Duration == 0 {
		c.Check.PollInterval.Duration = defaultPollInterval
	}
}
