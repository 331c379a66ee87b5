package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variable names.
const (
	EnvHome         = "SPLINTER_HOME"
	EnvRelayURL     = "SPLINTER_RELAY_URL"
	EnvOutputFormat = "SPLINTER_OUTPUT_FORMAT"
	EnvVerbose      = "SPLINTER_VERBOSE"
	EnvLogLevel     = "SPLINTER_LOG_LEVEL"
	EnvNoColor      = "NO_COLOR"
)

// ApplyEnvironment applies environment variable overrides to the
// configuration.
func ApplyEnvironment(cfg *Config) {
	if v := os.Getenv(EnvHome); v != "" {
		cfg.Home = v
	}

	if v := os.Getenv(EnvRelayURL); v != "" {
		cfg.Relay.URL = strings.TrimSpace(v)
	}

	if v := os.Getenv(EnvOutputFormat); v != "" {
		cfg.Output.DefaultFormat = strings.ToLower(v)
	}

	if v := os.Getenv(EnvVerbose); v != "" {
		cfg.Output.Verbose = parseBool(v)
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}

	// NO_COLOR disables colored output.
	if _, ok := os.LookupEnv(EnvNoColor); ok {
		cfg.Output.Color = "never"
	}
}

// parseBool parses a boolean string value.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "1" || s == "true" || s == "yes" || s == "on" {
		return true
	}
	b, _ := strconv.ParseBool(s)
	return b
}
