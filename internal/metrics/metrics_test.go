package metrics_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"wordsplice/internal/metrics"
)

func TestWriteTextfile(t *testing.T) {
	m := metrics.New()
	m.SourcesLoaded.WithLabelValues("cache").Add(2)
	m.IndexWords.Set(42)
	m.ObserveRun("speak", "success", 1500*time.Millisecond)

	path := filepath.Join(t.TempDir(), "textfile", "wordsplice.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	text := string(data)
	for _, want := range []string{
		`wordsplice_sources_loaded_total{origin="cache"} 2`,
		`wordsplice_index_words 42`,
		`wordsplice_runs_total{command="speak",outcome="success"} 1`,
		`wordsplice_run_duration_seconds_count{command="speak"} 1`,
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("textfile missing %q:\n%s", want, text)
		}
	}
}

func TestWriteTextfileEmptyPath(t *testing.T) {
	if err := metrics.New().WriteTextfile(""); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
}

func TestGathererListsFamilies(t *testing.T) {
	m := metrics.New()
	m.WordsSpoken.Add(3)
	families, err := m.Gatherer().Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	found := false
	for _, mf := range families {
		if mf.GetName() == "wordsplice_words_spoken_total" {
			found = true
			if got := mf.GetMetric()[0].GetCounter().GetValue(); got != 3 {
				t.Fatalf("words spoken = %f", got)
			}
		}
	}
	if !found {
		t.Fatal("words_spoken_total not gathered")
	}
}
