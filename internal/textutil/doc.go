// Package textutil provides text processing utilities for player-name
// normalization and filename sanitization.
//
// Scoreboard OCR output is noisy: names arrive with inconsistent casing,
// diacritics, and stray punctuation. NormalizePlayer reduces a name to a
// comparison key so the same player read at two timestamps compares equal;
// SanitizeName produces filesystem-safe fragments for evidence filenames.
package textutil
