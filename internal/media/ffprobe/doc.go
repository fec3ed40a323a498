// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// The match-start search only needs container duration, so the wrapper decodes
// format-level metadata and exposes Duration as the primary entry point.
package ffprobe
