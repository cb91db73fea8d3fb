package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateIndex(); err != nil {
		return err
	}
	if err := c.validateSpeak(); err != nil {
		return err
	}
	if err := c.validateWatson(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateIndex() error {
	if c.Index.ConfidenceThreshold < 0 || c.Index.ConfidenceThreshold > 1 {
		return errors.New("index.confidence_threshold must be between 0 and 1")
	}
	if c.Index.Workers <= 0 {
		return errors.New("index.workers must be positive")
	}
	return nil
}

func (c *Config) validateSpeak() error {
	if c.Speak.TightnessMS < 0 {
		return errors.New("speak.tightness_ms must not be negative")
	}
	if c.Speak.HeadroomDB < 0 {
		return errors.New("speak.headroom_db must not be negative")
	}
	if c.Speak.DecodeWorkers <= 0 {
		return errors.New("speak.decode_workers must be positive")
	}
	return nil
}

func (c *Config) validateWatson() error {
	if c.Watson.URL != "" && !strings.HasPrefix(c.Watson.URL, "http://") && !strings.HasPrefix(c.Watson.URL, "https://") {
		return fmt.Errorf("watson.url must be an http(s) URL, got %q", c.Watson.URL)
	}
	if c.Watson.TimeoutSeconds <= 0 {
		return errors.New("watson.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json; got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}
