// Package indexbuild turns recognition output into word indexes.
//
// Records and Build convert one raw transcript without reconciling it, so a
// single-source index can be inspected or persisted first. Builder resolves
// each source from its SQLite cache when one exists (reusing it as-is) or from
// its transcript JSON otherwise, then BuildCombined unions every source in
// caller order and reconciles once so the retained record per word is the
// global best.
package indexbuild
