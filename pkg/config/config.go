package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors.
func Validate(cfg *Config) error {
	if err := validateParser(&cfg.Parser); err != nil {
		return fmt.Errorf("parser: %w", err)
	}

	if cfg.Limits.MaxFileSize < 0 {
		return errors.New("limits: max_file_size must not be negative")
	}

	// Webhooks are optional, but validate if present
	for i := range cfg.Webhooks {
		if err := validateWebhook(&cfg.Webhooks[i]); err != nil {
			name := cfg.Webhooks[i].Name
			if name == "" {
				name = cfg.Webhooks[i].URL
			}
			return fmt.Errorf("webhooks[%d] (%s): %w", i, name, err)
		}
	}

	return nil
}

func validateParser(p *ParserConfig) error {
	if p.ChunkSize <= 0 {
		return errors.New("chunk_size must be positive")
	}

	if p.ProgressInterval <= 0 {
		return errors.New("progress_interval must be positive")
	}

	switch p.Encoding {
	case "utf-8", "utf-16le", "utf-16be":
	default:
		return fmt.Errorf("unsupported encoding %q (use utf-8, utf-16le, or utf-16be)", p.Encoding)
	}

	if p.StrictUTF8 && p.Encoding != "utf-8" {
		return errors.New("strict_utf8 requires encoding utf-8")
	}

	return nil
}

func validateWebhook(wh *WebhookConfig) error {
	if wh.URL == "" {
		return errors.New("url is required")
	}

	u, err := url.Parse(wh.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}

	switch wh.Trigger {
	case "", WebhookTriggerOnErrors, WebhookTriggerAlways, WebhookTriggerNever:
	default:
		return fmt.Errorf("invalid trigger %q (use on_errors, always, or never)", wh.Trigger)
	}

	if wh.Timeout < 0 {
		return errors.New("timeout must not be negative")
	}
	if wh.Timeout == 0 {
		wh.Timeout = DefaultWebhookTimeout
	}
	if wh.Trigger == "" {
		wh.Trigger = WebhookTriggerOnErrors
	}

	return nil
}
