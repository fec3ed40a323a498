// Package services defines shared utilities consumed by the search phases and
// external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp video IDs, phase names, and correlation
//     identifiers for logging.
//   - Structured error markers plus the Wrap helper that keep failure
//     classification (fatal vs transient) consistent across collaborators.
//
// Use these helpers when wiring new collaborators so operational behaviour
// (error handling, observability) stays uniform across the scan.
package services
