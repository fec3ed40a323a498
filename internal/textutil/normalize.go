package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldDiacritics strips combining marks so "MÜLLER" and "MULLER" compare equal.
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizePlayer reduces a raw OCR player name to an uppercase alphanumeric
// comparison key. Returns "" when nothing usable remains.
func NormalizePlayer(name string) string {
	folded, _, err := transform.String(foldDiacritics, name)
	if err != nil {
		folded = name
	}
	var b strings.Builder
	for _, r := range strings.ToUpper(folded) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// PlayerSetKey builds an order-insensitive key for a pair of player names.
// Two readings describe the same pairing exactly when their keys match.
func PlayerSetKey(player1, player2 string) string {
	a := NormalizePlayer(player1)
	b := NormalizePlayer(player2)
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}

// DisplayName renders a raw OCR name for table output: trimmed and title-cased.
func DisplayName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "?"
	}
	return cases.Title(language.Und).String(strings.ToLower(trimmed))
}
