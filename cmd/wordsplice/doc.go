// Package main hosts the wordsplice CLI entrypoint and command graph.
//
// The Cobra-based command tree resolves configuration once per invocation,
// builds the structured logger, tags the run with a correlation id and hands
// off to internal/pipeline. Commands own only terminal concerns: argument
// parsing, confirmation prompts, tables and status lines.
package main
