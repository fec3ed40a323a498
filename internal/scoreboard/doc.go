// Package scoreboard models scoreboard readings and talks to the reader
// sidecar that OCRs score overlays out of video frames.
//
// Key types:
//   - Reading: one observation with players, set/game scores, and predicates
//     (IsMatchStart, IsGameStart, IsEarlyMatch) the search reasons over
//   - Client: HTTP client for the reader service with bounded retry
//
// A reading that failed (occluded overlay, unparsable OCR text, service
// hiccup) is a value, not an error; only context cancellation surfaces as an
// error from ReadScore.
package scoreboard
