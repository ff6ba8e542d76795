// Package appconfig loads optional process-level defaults for the ethabi
// CLI from the environment, with a .env file as an opt-in convenience.
package appconfig

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the small set of environment-tunable CLI defaults.
type Config struct {
	LogLevel  string // ETHABI_LOG_LEVEL: trace|debug|info|warn|error
	LogFormat string // ETHABI_LOG_FORMAT: text|json
	Lenient   bool   // ETHABI_LENIENT: default for --lenient when unset
}

// Load reads a .env file if present (missing file is not an error, mirroring
// the CLI's "config is optional" contract) and returns the resolved Config.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		LogLevel:  "info",
		LogFormat: "text",
	}
	if v := os.Getenv("ETHABI_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("ETHABI_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("ETHABI_LENIENT"); v == "1" || v == "true" {
		cfg.Lenient = true
	}
	return cfg
}
