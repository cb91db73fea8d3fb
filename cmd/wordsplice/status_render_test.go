package main

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"wordsplice/internal/preflight"
)

func TestRenderCheckLineNoColor(t *testing.T) {
	got := renderCheckLine("talk.wav", stateIndexed, "index cached", false)
	want := fmt.Sprintf("%s%-*s %-*s %s", checkIndent, checkLabelWidth, "talk.wav:", checkStateWidth, "indexed", "index cached")
	if got != want {
		t.Fatalf("renderCheckLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderCheckLineWithColor(t *testing.T) {
	got := renderCheckLine("talk.wav", stateUntranscribed, "", true)
	if !strings.Contains(got, ansiRed+"untranscribed"+ansiReset) {
		t.Fatalf("expected red state word, got %q", got)
	}
	if strings.HasSuffix(got, " ") {
		t.Fatalf("trailing space in %q", got)
	}
}

func TestSourceCheckStates(t *testing.T) {
	tests := []struct {
		state    preflight.SourceState
		word     string
		blocking bool
	}{
		{preflight.SourceIndexed, "indexed", false},
		{preflight.SourceTranscribed, "transcribed", false},
		{preflight.SourceUntranscribed, "untranscribed", true},
		{preflight.SourceUnusable, "blocked", true},
	}
	for _, tc := range tests {
		got := sourceCheckState(tc.state)
		if got.word != tc.word || got.blocking != tc.blocking {
			t.Fatalf("%s: got %+v", tc.state, got)
		}
	}
}

func TestCheckReportCountsBlockedLines(t *testing.T) {
	report := &checkReport{}
	report.section("sources")
	report.add("a.wav", stateIndexed, "index cached")
	report.add("b.wav", stateOptional, "")
	if err := report.err(); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	report.section("environment")
	report.add("Log directory", stateBlocked, "not writable")
	report.add("c.wav", stateUntranscribed, "no transcript")

	out := report.String()
	if !strings.HasPrefix(out, "== Sources ==") {
		t.Fatalf("expected title-cased header first, got %q", out)
	}
	if !strings.Contains(out, "\n\n== Environment ==") {
		t.Fatalf("expected blank line between sections, got %q", out)
	}
	err := report.err()
	if err == nil || !strings.Contains(err.Error(), "2 check(s) blocked") {
		t.Fatalf("expected 2 blocked, got %v", err)
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatal("expected non-file writer to disable color")
	}
}
