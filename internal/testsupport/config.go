package testsupport

import (
	"path/filepath"
	"testing"

	"wordsplice/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.IndexDir = filepath.Join(base, "index")
	cfgVal.Index.Workers = 2
	cfgVal.Speak.DecodeWorkers = 2

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithIndexBesideAudio clears the index directory so caches sit next to
// their audio files.
func WithIndexBesideAudio() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.IndexDir = ""
	}
}

// WithTightness sets the per-edge trim in milliseconds.
func WithTightness(ms int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Speak.TightnessMS = ms
	}
}

// WithThreshold overrides the reconciliation confidence threshold.
func WithThreshold(threshold float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Index.ConfidenceThreshold = threshold
	}
}

// WithMetricsTextfile writes run metrics below the test directory.
func WithMetricsTextfile(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Metrics.Textfile = filepath.Join(b.baseDir, name)
	}
}

// WithWatson sets Watson credentials on the test config.
func WithWatson(apiKey, url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Watson.APIKey = apiKey
		b.cfg.Watson.URL = url
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}
