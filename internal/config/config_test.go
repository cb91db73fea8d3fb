package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"wordsplice/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("SPEECH_TO_TEXT_IAM_APIKEY", "")
	t.Setenv("SPEECH_TO_TEXT_URL", "")
	t.Chdir(tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	wantLogs := filepath.Join(tempHome, ".local", "share", "wordsplice", "logs")
	if cfg.Paths.LogDir != wantLogs {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogs)
	}
	if cfg.Paths.IndexDir != "" {
		t.Fatalf("expected empty index dir, got %q", cfg.Paths.IndexDir)
	}
	if cfg.Index.ConfidenceThreshold != 0.90 {
		t.Fatalf("unexpected threshold %v", cfg.Index.ConfidenceThreshold)
	}
	if cfg.Speak.TightnessMS != 0 || cfg.Speak.HeadroomDB != 0.1 {
		t.Fatalf("unexpected speak defaults: %+v", cfg.Speak)
	}
	if cfg.WatsonConfigured() {
		t.Fatal("expected Watson to be unconfigured by default")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	if info, err := os.Stat(cfg.Paths.LogDir); err != nil || !info.IsDir() {
		t.Fatalf("expected log dir to exist: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "wordsplice.toml")

	type payload struct {
		Paths struct {
			IndexDir string `toml:"index_dir"`
		} `toml:"paths"`
		Index struct {
			ConfidenceThreshold float64 `toml:"confidence_threshold"`
		} `toml:"index"`
		Speak struct {
			TightnessMS int `toml:"tightness_ms"`
		} `toml:"speak"`
	}
	custom := payload{}
	custom.Paths.IndexDir = filepath.Join(tempDir, "indexes")
	custom.Index.ConfidenceThreshold = 0.75
	custom.Speak.TightnessMS = 15
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if cfg.Paths.IndexDir != filepath.Join(tempDir, "indexes") {
		t.Fatalf("unexpected index dir %q", cfg.Paths.IndexDir)
	}
	if cfg.Index.ConfidenceThreshold != 0.75 {
		t.Fatalf("unexpected threshold %v", cfg.Index.ConfidenceThreshold)
	}
	if cfg.Speak.TightnessMS != 15 {
		t.Fatalf("unexpected tightness %d", cfg.Speak.TightnessMS)
	}
	if cfg.Index.Workers != config.Default().Index.Workers {
		t.Fatalf("expected default workers, got %d", cfg.Index.Workers)
	}
}

func TestEnvVarOverridesWatsonCredentials(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "wordsplice.toml")
	contents := "[watson]\napi_key = \"file-key\"\nurl = \"https://file.example.com/\"\n"
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SPEECH_TO_TEXT_IAM_APIKEY", "env-key")
	t.Setenv("SPEECH_TO_TEXT_URL", "https://env.example.com/")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Watson.APIKey != "env-key" {
		t.Errorf("expected api key from env, got %q", cfg.Watson.APIKey)
	}
	if cfg.Watson.URL != "https://env.example.com" {
		t.Errorf("expected url from env without trailing slash, got %q", cfg.Watson.URL)
	}
	if !cfg.WatsonConfigured() {
		t.Error("expected Watson to be configured")
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "your_watson_api_key_here") {
		t.Fatalf("sample config missing placeholder key: %s", contents)
	}
	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if cfg.Index.ConfidenceThreshold != 0.90 {
		t.Fatalf("unexpected sample threshold %v", cfg.Index.ConfidenceThreshold)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	mutations := map[string]func(*config.Config){
		"threshold above one": func(c *config.Config) { c.Index.ConfidenceThreshold = 1.5 },
		"negative threshold":  func(c *config.Config) { c.Index.ConfidenceThreshold = -0.1 },
		"zero workers":        func(c *config.Config) { c.Index.Workers = 0 },
		"negative tightness":  func(c *config.Config) { c.Speak.TightnessMS = -1 },
		"negative headroom":   func(c *config.Config) { c.Speak.HeadroomDB = -3 },
		"bad watson url":      func(c *config.Config) { c.Watson.URL = "ftp://x" },
		"bad log level":       func(c *config.Config) { c.Logging.Level = "loud" },
		"bad log format":      func(c *config.Config) { c.Logging.Format = "xml" },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			cfg := config.Default()
			mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}
}

func TestLoadRejectsUnknownLogFormat(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "wordsplice.toml")
	if err := os.WriteFile(configPath, []byte("[logging]\nformat = \"XML\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, _, _, err := config.Load(configPath)
	if err == nil || !strings.Contains(err.Error(), "logging.format") {
		t.Fatalf("expected logging.format error, got %v", err)
	}
}
