package config

import "time"

// Default values for configuration.
const (
	DefaultFormat         = "text"
	DefaultTop            = 5
	DefaultColor          = "auto"
	DefaultWebhookTimeout = 10 * time.Second
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Format:   DefaultFormat,
		Top:      DefaultTop,
		Color:    DefaultColor,
		Progress: true,
	}
}
