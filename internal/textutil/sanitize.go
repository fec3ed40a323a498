package textutil

import "strings"

// SanitizeName converts a player name into a filename fragment: word
// characters and hyphens are kept, everything else becomes an underscore, and
// the result is truncated to maxLen runes. Returns "unknown" for empty input.
func SanitizeName(name string, maxLen int) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "unknown"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := b.String()
	if maxLen > 0 {
		runes := []rune(out)
		if len(runes) > maxLen {
			out = string(runes[:maxLen])
		}
	}
	if strings.Trim(out, "_") == "" {
		return "unknown"
	}
	return out
}
