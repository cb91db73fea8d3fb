// Package services defines shared utilities consumed by the pipeline stages
// and external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp stage names, source files, and correlation
//     identifiers for logging.
//   - Structured error markers plus the Wrap helper, and Kind which maps any
//     error (typed or marked) to a coarse classification for CLI reporting.
//
// Use these helpers when wiring new stage logic so operational behaviour stays
// uniform across the pipeline.
package services
