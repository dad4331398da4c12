package config

import (
	"os"
	"strconv"
	"time"
)

// Default values for configuration.
const (
	DefaultChunkSize        = 256 * 1024
	DefaultProgressInterval = 1024 * 1024
	DefaultEncoding         = "utf-8"
	DefaultWebhookTimeout   = 10 * time.Second
)

// Environment variable names.
const (
	EnvEncoding    = "SEGLOG_ENCODING"
	EnvMaxFileSize = "SEGLOG_MAX_FILE_SIZE"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Parser: ParserConfig{
			ChunkSize:        DefaultChunkSize,
			ProgressInterval: DefaultProgressInterval,
			Encoding:         DefaultEncoding,
		},
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if enc := os.Getenv(EnvEncoding); enc != "" {
		c.Parser.Encoding = enc
	}
	if raw := os.Getenv(EnvMaxFileSize); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			c.Limits.MaxFileSize = n
		}
	}
}
