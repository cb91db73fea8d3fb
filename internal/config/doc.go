// Package config loads, normalizes, and validates wordsplice configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks for the
// Watson speech-to-text credentials (SPEECH_TO_TEXT_IAM_APIKEY and
// SPEECH_TO_TEXT_URL). Always obtain settings through this package so
// downstream code receives sanitized paths and clear validation errors.
package config
