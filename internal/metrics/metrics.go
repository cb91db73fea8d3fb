// Package metrics records per-run Prometheus instruments and can flush them
// to a node-exporter textfile.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "wordsplice"

// Metrics groups all Prometheus instruments used by a run.
type Metrics struct {
	registry *prometheus.Registry

	SourcesLoaded  *prometheus.CounterVec
	RecordsDropped *prometheus.CounterVec
	IndexWords     prometheus.Gauge
	WordsSpoken    prometheus.Counter
	OutputSeconds  prometheus.Gauge
	Runs           *prometheus.CounterVec
	RunDuration    *prometheus.HistogramVec
}

// New registers the instruments on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &Metrics{
		registry: registry,
		SourcesLoaded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sources_loaded_total",
			Help:      "Sources resolved into the index by origin (cache or transcript).",
		}, []string{"origin"}),
		RecordsDropped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_dropped_total",
			Help:      "Word records removed during reconciliation by reason.",
		}, []string{"reason"}),
		IndexWords: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "index_words",
			Help:      "Distinct words in the reconciled index.",
		}),
		WordsSpoken: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "words_spoken_total",
			Help:      "Script words spliced into output audio.",
		}),
		OutputSeconds: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "output_seconds",
			Help:      "Length of the last synthesized audio.",
		}),
		Runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Command runs by command and outcome.",
		}, []string{"command", "outcome"}),
		RunDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of command runs.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 300},
		}, []string{"command"}),
	}
}

// ObserveRun records one finished command.
func (m *Metrics) ObserveRun(command, outcome string, elapsed time.Duration) {
	m.Runs.WithLabelValues(command, outcome).Inc()
	m.RunDuration.WithLabelValues(command).Observe(elapsed.Seconds())
}

// WriteTextfile writes every instrument to path in the text exposition
// format. An empty path is a no-op.
func (m *Metrics) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

// Gatherer exposes the registry for inspection.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}
