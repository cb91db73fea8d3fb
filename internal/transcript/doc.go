// Package transcript models speech-to-text output and the word records
// derived from it.
//
// Result mirrors the JSON returned by the Watson recognize endpoint when word
// timestamps and word confidence are requested: a list of chunks, each with
// alternatives whose first entry carries parallel `timestamps`
// ([word, start, end]) and `word_confidence` ([word, score]) arrays. Record
// is the immutable, case-normalized occurrence the word index stores.
package transcript
