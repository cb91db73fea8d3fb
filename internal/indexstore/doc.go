// Package indexstore persists the unreconciled word records of one source
// recording in SQLite so later runs can skip transcription and parsing.
//
// Each source gets its own database file. The cache is reused as-is whenever
// it exists; invalidation is manual (delete the file). Schema changes bump
// schemaVersion in schema.go and surface ErrSchemaMismatch on older files.
package indexstore
