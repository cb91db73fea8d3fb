package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"wordsplice/internal/preflight"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	checkLabelWidth = 24
	checkStateWidth = 13
	checkIndent     = "  "
)

// checkState is the verdict word printed for one `check` line. Blocking
// states make the command fail.
type checkState struct {
	word     string
	color    string
	blocking bool
}

var (
	stateReady         = checkState{word: "ready", color: ansiGreen}
	stateDefaults      = checkState{word: "defaults", color: ansiYellow}
	stateOptional      = checkState{word: "optional", color: ansiYellow}
	stateBlocked       = checkState{word: "blocked", color: ansiRed, blocking: true}
	stateIndexed       = checkState{word: "indexed", color: ansiGreen}
	stateTranscribed   = checkState{word: "transcribed", color: ansiBlue}
	stateUntranscribed = checkState{word: "untranscribed", color: ansiRed, blocking: true}
)

// sourceCheckState maps a recording's progress to its verdict.
func sourceCheckState(state preflight.SourceState) checkState {
	switch state {
	case preflight.SourceIndexed:
		return stateIndexed
	case preflight.SourceTranscribed:
		return stateTranscribed
	case preflight.SourceUntranscribed:
		return stateUntranscribed
	default:
		return stateBlocked
	}
}

// checkReport accumulates the sections printed by `check`.
type checkReport struct {
	colorize bool
	lines    []string
	blocked  int
}

var titleCaser = cases.Title(language.English)

func (r *checkReport) section(title string) {
	if len(r.lines) > 0 {
		r.lines = append(r.lines, "")
	}
	header := fmt.Sprintf("== %s ==", titleCaser.String(strings.TrimSpace(title)))
	rule := strings.Repeat("-", len(header))
	if r.colorize {
		header, rule = ansiBlue+header+ansiReset, ansiBlue+rule+ansiReset
	}
	r.lines = append(r.lines, header, rule)
}

func (r *checkReport) add(label string, state checkState, detail string) {
	if state.blocking {
		r.blocked++
	}
	r.lines = append(r.lines, renderCheckLine(label, state, detail, r.colorize))
}

func (r *checkReport) String() string {
	return strings.Join(r.lines, "\n")
}

func (r *checkReport) err() error {
	if r.blocked == 0 {
		return nil
	}
	return fmt.Errorf("%d check(s) blocked", r.blocked)
}

func renderCheckLine(label string, state checkState, detail string, colorize bool) string {
	pad := strings.Repeat(" ", max(checkStateWidth-len(state.word), 0))
	word := state.word
	if colorize {
		word = state.color + word + ansiReset
	}
	line := fmt.Sprintf("%s%-*s %s%s %s", checkIndent, checkLabelWidth, label+":", word, pad, detail)
	return strings.TrimRight(line, " ")
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
