// Package audio holds decoded sample buffers and the codecs around them.
//
// Buffers are stereo float64 frames tagged with a beep.Format. Decoding picks
// a beep decoder by file extension (wav, mp3, flac, ogg vorbis); encoding
// always produces 16-bit PCM WAV. Normalize scales a buffer so its peak sits
// a fixed number of decibels below full scale.
package audio
