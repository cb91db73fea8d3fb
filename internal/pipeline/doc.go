// Package pipeline runs the user-facing operations end to end.
//
// A Runner owns the configuration-derived collaborators (index builder,
// assembler, decoder, metrics) and exposes one method per CLI command:
// Transcribe, Index, Dictionary and Speak. Artifacts are written through
// fileutil.WriteAtomic so a failed run never leaves a partial file behind.
package pipeline
