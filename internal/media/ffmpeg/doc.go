// Package ffmpeg extracts single frames from a video at a given timestamp.
//
// Extraction failure is a routine outcome during a scan (timestamps past the
// end of stream, corrupt segments) and is reported via ErrExtractionFailed so
// callers can treat it as a failed observation rather than a fault.
package ffmpeg
