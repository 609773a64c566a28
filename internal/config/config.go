package config

import (
	"github.com/dmitrijs2005/inputguard/internal/credentials"
	"github.com/dmitrijs2005/inputguard/internal/inputs"
)

// Config holds runtime settings for the inputguard CLI.
type Config struct {
	StorePath          string
	ErrorLogPath       string
	AuditDBPath        string
	MaxVerifyAttempts  int
	MaxInputFileSize   int64
	RequirePersistence bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StorePath = "password.hash"
	c.ErrorLogPath = "error_log.txt"
	c.AuditDBPath = "audit.db"
	c.MaxVerifyAttempts = 0
	c.MaxInputFileSize = inputs.DefaultMaxInputFileSize
	c.RequirePersistence = false
}

// Credentials returns the settings of the credential store.
func (c *Config) Credentials() credentials.Config {
	return credentials.Config{
		StorePath:          c.StorePath,
		MaxVerifyAttempts:  c.MaxVerifyAttempts,
		RequirePersistence: c.RequirePersistence,
	}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
