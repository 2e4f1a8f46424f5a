// Package config provides centralized configuration management for the movies CLI.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds all application configuration.
// All settings can be configured via environment variables (or a .env file).
type Config struct {
	Loader  LoaderConfig
	Files   FilesConfig
	Output  OutputConfig
	Logging LoggingConfig
	Metrics MetricsConfig
}

// LoaderConfig selects the row validation policy used when reading movie CSVs.
type LoaderConfig struct {
	// Policy is the name of a registered validation policy (default: bracketed)
	Policy string `env:"MOVIES_POLICY" default:"bracketed"`

	// PolicyFile is an optional YAML file layered over Policy
	PolicyFile string `env:"MOVIES_POLICY_FILE"`
}

// FilesConfig controls which files are accepted as input.
type FilesConfig struct {
	// Prefix is the required name prefix for organizer candidates (default: movies_)
	Prefix string `env:"MOVIES_FILE_PREFIX" default:"movies_"`

	// Ext is the required extension for organizer candidates (default: .csv)
	Ext string `env:"MOVIES_FILE_EXT" default:".csv"`

	// MaxNameLen is the longest accepted file name argument (default: 49)
	MaxNameLen int `env:"MOVIES_MAX_FILENAME" default:"49"`
}

// OutputConfig holds materializer settings.
type OutputConfig struct {
	// OwnerID is embedded in output directory names: <owner>.movies.<n>
	OwnerID string `env:"MOVIES_OWNER_ID" default:"movies"`

	// Root is where output directories are created (default: .)
	Root string `env:"MOVIES_OUTPUT_ROOT" default:"."`

	// DirPerm is applied to the output directory, octal (default: 0750)
	DirPerm os.FileMode `env:"MOVIES_DIR_PERM" default:"0750"`

	// FilePerm is applied to each per-year file, octal (default: 0640)
	FilePerm os.FileMode `env:"MOVIES_FILE_PERM" default:"0640"`

	// SuffixMax is the inclusive upper bound of the random directory suffix (default: 99999)
	SuffixMax int `env:"MOVIES_SUFFIX_MAX" default:"99999"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: warn)
	Level string `env:"LOG_LEVEL" default:"warn"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// MetricsConfig holds metrics export settings.
type MetricsConfig struct {
	// File receives counters in Prometheus text format after each command.
	// Empty disables the export.
	File string `env:"METRICS_FILE"`
}

// String returns a compact representation of the config for logging.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Loader: {Policy: %q, PolicyFile: %q}, ", c.Loader.Policy, c.Loader.PolicyFile))
	b.WriteString(fmt.Sprintf("Files: {Prefix: %q, Ext: %q, MaxNameLen: %d}, ",
		c.Files.Prefix, c.Files.Ext, c.Files.MaxNameLen))
	b.WriteString(fmt.Sprintf("Output: {OwnerID: %q, Root: %q, DirPerm: %#o, FilePerm: %#o}, ",
		c.Output.OwnerID, c.Output.Root, uint32(c.Output.DirPerm), uint32(c.Output.FilePerm)))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q}",
		c.Logging.Level, c.Logging.Format))
	b.WriteString("}")
	return b.String()
}
