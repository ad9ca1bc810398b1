// Package config handles taskline configuration.
package config

import "path/filepath"

const (
	// DefaultDataFile is the data file used when none is configured,
	// relative to the working directory.
	DefaultDataFile = "data/tasks.txt"
	// DefaultLogLevel is the default logger level.
	DefaultLogLevel = "warn"
	// DefaultLogFormat is the default logger format.
	DefaultLogFormat = "text"
	// DefaultOutput is the default rendering for list and find.
	DefaultOutput = OutputText

	// ConfigFileName is the name of the config file within the config directory.
	ConfigFileName = "config.yml"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "TASKLINE_"
)

// Output formats for list and find.
const (
	OutputText  = "text"
	OutputJSON  = "json"
	OutputTable = "table"
)

// Default slice values (slices cannot be const).
var (
	ValidOutputs    = []string{OutputText, OutputJSON, OutputTable}
	ValidLogLevels  = []string{"debug", "info", "warn", "error"}
	ValidLogFormats = []string{"text", "json", "logfmt"}
)

// DefaultDir returns the config directory below the given home directory.
func DefaultDir(home string) string {
	return filepath.Join(home, ".config", "taskline")
}
