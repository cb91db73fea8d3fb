// Package logging assembles structured slog loggers and formatting helpers used
// across wordsplice.
//
// The console handler prints one line per record with the run id, component
// and recording name lifted into the line header; the JSON handler keeps them
// as ordinary keys. Context helpers tag log lines with stages, source files
// and correlation IDs, and a no-op logger serves tests and wiring code that
// cannot fail.
package logging
