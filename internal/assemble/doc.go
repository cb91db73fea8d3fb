// Package assemble splices indexed word spans into one output buffer.
//
// Every distinct source recording is decoded exactly once per call, in
// parallel, before any span is cut. Spans are trimmed by the configured
// tightness on both edges, appended strictly in script order, and the joined
// buffer is peak-normalized once at the end.
package assemble
