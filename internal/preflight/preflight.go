package preflight

import (
	"context"

	"wordsplice/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
	// State is set by CheckSource only.
	State SourceState
}

// SourceState is how far a recording has progressed towards being indexed.
type SourceState string

const (
	SourceUnusable      SourceState = "unusable"
	SourceUntranscribed SourceState = "untranscribed"
	SourceTranscribed   SourceState = "transcribed"
	SourceIndexed       SourceState = "indexed"
)

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	// Log directory (always checked)
	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))

	// Shared index directory (when configured)
	if cfg.Paths.IndexDir != "" {
		results = append(results, CheckDirectoryAccess("Index directory", cfg.Paths.IndexDir))
	}

	results = append(results, CheckWatson(ctx, cfg.Watson))
	return results
}
