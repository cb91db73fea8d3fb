// Package wordindex maps normalized word text to candidate occurrences across
// one or more source recordings.
//
// An Index is built unreconciled so a single source can be inspected or
// persisted as-is. Merge unions indexes in a caller-defined order and
// Reconcile then applies the confidence threshold and keeps one best record
// per word. Candidate order is insertion order; it decides ties.
package wordindex
