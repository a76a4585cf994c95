package app

import "errors"

// Output modes for computed library search paths.
const (
	// OutputLines prints one absolute directory per line.
	OutputLines = "lines"
	// OutputEnv prints a single NAME=value assignment for the dynamic
	// linker's environment variable on the current OS.
	OutputEnv = "env"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// SummaryPath is a summary JSON file, or a directory searched
	// recursively for *.json summaries.
	SummaryPath string
	// ProfilePath is an optional HCL reuse-build profile.
	ProfilePath string
	// EnvFile is an optional .env file applied before flag defaults.
	EnvFile string

	LogFormat string
	LogLevel  string

	// Output selects OutputLines or OutputEnv.
	Output string
	// Reencode writes each decoded summary back out in canonical form next
	// to its input, refreshing legacy metadata files.
	Reencode bool
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.SummaryPath == "" {
		return nil, errors.New("SummaryPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
