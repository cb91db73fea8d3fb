// Package textutil provides the text normalization shared by the word index
// and the script resolver.
//
// Both sides must agree on how a word is keyed: transcript words and script
// tokens are lowercased with Unicode case mapping (so "Straße" and "STRASSE"
// fold the way a reader expects) and split on Unicode whitespace.
package textutil
