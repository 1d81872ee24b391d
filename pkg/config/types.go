// Package config loads optional user defaults for the loglyzer CLI.
package config

import "time"

// Config holds user defaults applied when the corresponding flags are
// not set explicitly. All fields are optional.
type Config struct {
	// Format is the default output format (text, json, csv).
	Format string `yaml:"format"`

	// Top is the default number of top errors to report.
	Top int `yaml:"top"`

	// Color controls ANSI colors in text output (auto, always, never).
	Color string `yaml:"color"`

	// Progress enables the progress bar for large inputs.
	Progress bool `yaml:"progress"`

	// Webhooks receive the JSON report after analysis.
	Webhooks []WebhookConfig `yaml:"webhooks"`
}

// WebhookTrigger controls when a webhook fires.
type WebhookTrigger string

// Valid webhook triggers.
const (
	WebhookTriggerOnErrors WebhookTrigger = "on_errors"
	WebhookTriggerAlways   WebhookTrigger = "always"
	WebhookTriggerNever    WebhookTrigger = "never"
)

// WebhookConfig describes one webhook endpoint.
type WebhookConfig struct {
	// Name identifies the webhook in status messages.
	Name string `yaml:"name"`

	// URL is the endpoint to POST the report to.
	URL string `yaml:"url"`

	// Token is an optional bearer token. Supports ${VAR} expansion.
	Token string `yaml:"token"`

	// Trigger controls when the webhook fires (on_errors, always, never).
	Trigger WebhookTrigger `yaml:"trigger"`

	// Timeout is the request timeout.
	Timeout time.Duration `yaml:"timeout"`
}
