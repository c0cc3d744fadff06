// Package log provides secure logging utilities for topicscan.
//
// The SecureHandler wraps any slog.Handler and masks attribute values that
// look like credentials before they reach the underlying handler. topicscan
// logs request URLs and configuration at debug level, and both can carry the
// Groq API key or the Google search key; the handler keeps those out of
// terminal scrollback and log files.
package log
