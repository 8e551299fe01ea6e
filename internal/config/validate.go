package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.validateMedia(); err != nil {
		return err
	}
	if err := c.validateDefaults(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAPI() error {
	base := strings.TrimSpace(c.API.BaseURL)
	if base == "" {
		return fmt.Errorf("api.base_url must be set (or set %s)", EnvAPIBase)
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return fmt.Errorf("api.base_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("api.base_url must use http or https, got %q", base)
	}
	if parsed.Host == "" {
		return fmt.Errorf("api.base_url must include a host, got %q", base)
	}
	return ensurePositiveMap(map[string]int{
		"api.timeout_seconds": c.API.TimeoutSeconds,
	})
}

func (c *Config) validateMedia() error {
	if c.Media.MaxImageBytes <= 0 {
		return errors.New("media.max_image_bytes must be positive")
	}
	return ensurePositiveMap(map[string]int{
		"media.fetch_timeout_seconds": c.Media.FetchTimeoutSeconds,
	})
}

func (c *Config) validateDefaults() error {
	if c.Defaults.FlashcardsLimit <= 0 || c.Defaults.FlashcardsLimit > MaxFlashcardsLimit {
		return fmt.Errorf("defaults.flashcards_limit must be between 1 and %d", MaxFlashcardsLimit)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
