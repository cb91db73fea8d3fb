package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeIndex()
	c.normalizeSpeak()
	c.normalizeWatson()
	c.normalizeLogging()
	return c.normalizeMetrics()
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.IndexDir, err = expandPath(strings.TrimSpace(c.Paths.IndexDir)); err != nil {
		return fmt.Errorf("paths.index_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeIndex() {
	if c.Index.Workers <= 0 {
		c.Index.Workers = defaultIndexWorkers
	}
}

func (c *Config) normalizeSpeak() {
	if c.Speak.DecodeWorkers <= 0 {
		c.Speak.DecodeWorkers = defaultDecodeWorkers
	}
}

func (c *Config) normalizeWatson() {
	c.Watson.APIKey = strings.TrimSpace(c.Watson.APIKey)
	if value, ok := os.LookupEnv("SPEECH_TO_TEXT_IAM_APIKEY"); ok && strings.TrimSpace(value) != "" {
		c.Watson.APIKey = strings.TrimSpace(value)
	}
	c.Watson.URL = strings.TrimRight(strings.TrimSpace(c.Watson.URL), "/")
	if value, ok := os.LookupEnv("SPEECH_TO_TEXT_URL"); ok && strings.TrimSpace(value) != "" {
		c.Watson.URL = strings.TrimRight(strings.TrimSpace(value), "/")
	}
	c.Watson.Model = strings.TrimSpace(c.Watson.Model)
	if c.Watson.Model == "" {
		c.Watson.Model = defaultWatsonModel
	}
	if c.Watson.TimeoutSeconds <= 0 {
		c.Watson.TimeoutSeconds = defaultWatsonTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeMetrics() error {
	var err error
	if c.Metrics.Textfile, err = expandPath(strings.TrimSpace(c.Metrics.Textfile)); err != nil {
		return fmt.Errorf("metrics.textfile: %w", err)
	}
	return nil
}
