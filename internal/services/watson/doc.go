// Package watson calls the IBM Watson speech-to-text recognize endpoint.
//
// The client uploads one whole audio file per request and asks for word
// timestamps and per-word confidence, which are the two arrays the word index
// is built from. The response body is returned verbatim so it can be stored as
// the source's transcript.
package watson
