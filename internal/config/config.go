package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file inside a tally directory.
const FileName = "tally.yaml"

// Environment variables that override values from tally.yaml.
const (
	EnvFile     = "TALLY_FILE"
	EnvCurrency = "TALLY_CURRENCY"
	EnvLogLevel = "TALLY_LOG_LEVEL"
)

// Config represents the top-level tally.yaml configuration.
type Config struct {
	Ledger  LedgerConfig  `yaml:"ledger"`
	Display DisplayConfig `yaml:"display"`
	Log     LogConfig     `yaml:"log"`
	Git     GitConfig     `yaml:"git"`
}

// LedgerConfig locates the journal file.
type LedgerConfig struct {
	File string `yaml:"file"` // relative to the project directory unless absolute
}

// DisplayConfig controls report formatting.
type DisplayConfig struct {
	Currency string `yaml:"currency"` // ISO 4217 code
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	Level string `yaml:"level"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a tally.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Ledger: LedgerConfig{
			File: "file.csv",
		},
		Display: DisplayConfig{
			Currency: "USD",
		},
		Log: LogConfig{
			Level: "info",
		},
		Git: GitConfig{
			AutoCommit:  false,
			AuthorName:  "Tally",
			AuthorEmail: "tally@localhost",
		},
	}
}

// Resolve builds the effective configuration for a project directory:
// defaults, then dir/tally.yaml if present, then dir/.env and the process
// environment. A missing tally.yaml or .env is not an error.
func Resolve(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
	} else if err != nil {
		return nil, err
	}

	// Variables already set in the environment win over .env.
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv overrides fields from TALLY_* environment variables.
func (c *Config) ApplyEnv() {
	if v, ok := os.LookupEnv(EnvFile); ok && v != "" {
		c.Ledger.File = v
	}
	if v, ok := os.LookupEnv(EnvCurrency); ok && v != "" {
		c.Display.Currency = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
}

// LedgerPath returns the absolute-or-dir-relative path of the journal file.
func (c *Config) LedgerPath(dir string) string {
	if filepath.IsAbs(c.Ledger.File) {
		return c.Ledger.File
	}
	return filepath.Join(dir, c.Ledger.File)
}
