package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/caarlos0/env/v11"
	"go.yaml.in/yaml/v3"
)

const (
	fileMode = 0o600
	dirMode  = 0o750
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the taskline configuration.
type Config struct {
	DataFile string    `yaml:"data_file" env:"DATA_FILE"`
	Output   string    `yaml:"output" env:"OUTPUT"`
	Log      LogConfig `yaml:"log" envPrefix:"LOG_"`

	// path is the config file this config was read from (not serialized).
	path string `yaml:"-"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
}

// NewDefault creates a Config with default values.
func NewDefault() *Config {
	return &Config{
		DataFile: DefaultDataFile,
		Output:   DefaultOutput,
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Path returns the config file path, empty for a config never tied to a file.
func (c *Config) Path() string {
	return c.path
}

// SetPath ties the config to a file for Save.
func (c *Config) SetPath(path string) {
	c.path = path
}

// Load reads the config file at path (a missing file yields defaults),
// then applies TASKLINE_* environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read reads only the config file at path, without environment overrides.
// A missing file yields defaults.
func Read(path string) (*Config, error) {
	cfg := NewDefault()
	cfg.path = path

	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted source
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg.fillDefaults()
	return cfg, nil
}

// ApplyEnv overrides fields from TASKLINE_* environment variables.
// Unset variables leave the current values alone.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("%w: environment: %w", ErrInvalid, err)
	}
	return nil
}

// Save writes the config to its file, creating the directory if needed.
func (c *Config) Save() error {
	if c.path == "" {
		return errors.New("config has no file path")
	}
	if err := os.MkdirAll(filepath.Dir(c.path), dirMode); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(c.path, data, fileMode)
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.DataFile == "" {
		return fmt.Errorf("%w: data_file is required", ErrInvalid)
	}
	if !slices.Contains(ValidOutputs, c.Output) {
		return fmt.Errorf("%w: output %q must be one of %v", ErrInvalid, c.Output, ValidOutputs)
	}
	if !slices.Contains(ValidLogLevels, c.Log.Level) {
		return fmt.Errorf("%w: log.level %q must be one of %v", ErrInvalid, c.Log.Level, ValidLogLevels)
	}
	if !slices.Contains(ValidLogFormats, c.Log.Format) {
		return fmt.Errorf("%w: log.format %q must be one of %v", ErrInvalid, c.Log.Format, ValidLogFormats)
	}
	return nil
}

// fillDefaults restores defaults for keys a config file left empty.
func (c *Config) fillDefaults() {
	def := NewDefault()
	if c.DataFile == "" {
		c.DataFile = def.DataFile
	}
	if c.Output == "" {
		c.Output = def.Output
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = def.Log.Format
	}
}
