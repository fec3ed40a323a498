// Package logging builds the slog loggers used across matchscan.
//
// Console output goes to stderr so scan results on stdout stay pipeable; when
// a log directory is configured the same stream is appended to matchscan.log.
package logging
