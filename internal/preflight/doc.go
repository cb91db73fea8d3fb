// Package preflight provides readiness checks for the directories, service
// credentials and per-source files that wordsplice depends on.
//
// The CLI "wordsplice check" command runs RunAll and CheckSource and renders
// the results. Checks never mutate state; a failing check only describes
// what to fix.
package preflight
