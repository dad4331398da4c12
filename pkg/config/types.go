// Package config provides configuration loading and validation for seglog.
package config

import "time"

// Config is the root configuration structure loaded from YAML.
type Config struct {
	Parser   ParserConfig    `yaml:"parser"`
	Limits   LimitsConfig    `yaml:"limits"`
	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`
}

// ParserConfig tunes the streaming segmentation engine.
type ParserConfig struct {
	// ChunkSize is the number of bytes read per chunk.
	ChunkSize int `yaml:"chunk_size"`

	// ProgressInterval is the minimum number of bytes processed between two
	// progress reports.
	ProgressInterval int64 `yaml:"progress_interval"`

	// Encoding of the input files: utf-8 (default), utf-16le, or utf-16be.
	// A byte order mark in the input always wins.
	Encoding string `yaml:"encoding"`

	// StrictUTF8 aborts the parse on malformed UTF-8 instead of replacing
	// invalid bytes with U+FFFD.
	StrictUTF8 bool `yaml:"strict_utf8"`
}

// LimitsConfig holds caller-side input policy. The engine itself accepts any
// size; the ceiling is enforced by the CLI before parsing starts.
type LimitsConfig struct {
	// MaxFileSize rejects inputs larger than this many bytes. Zero disables
	// the ceiling.
	MaxFileSize int64 `yaml:"max_file_size"`
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerOnErrors fires only when ERROR or FATAL entries were
	// found (default).
	WebhookTriggerOnErrors WebhookTrigger = "on_errors"
	// WebhookTriggerAlways fires after every parse.
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines a webhook endpoint for sending parse reports.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token for authentication.
	Token string `yaml:"token,omitempty"`

	// Trigger determines when the webhook fires.
	// Defaults to "on_errors" if not specified.
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Timeout is the HTTP request timeout.
	// Defaults to 10s if not specified.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
