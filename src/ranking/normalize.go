package ranking

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Normalize title-cases every whitespace-separated token of an agent name
// and rejoins them single-spaced. "MARIA  silva" -> "Maria Silva".
func Normalize(name string) string {
	parts := strings.Fields(name)
	for i, part := range parts {
		parts[i] = capitalize(part)
	}
	return strings.Join(parts, " ")
}

func capitalize(word string) string {
	runes := []rune(strings.ToLower(word))
	if len(runes) > 0 {
		runes[0] = unicode.ToUpper(runes[0])
	}
	return string(runes)
}

// Shorten abbreviates interior name tokens to their initial plus a period,
// left to right, until the whole name fits maxLen runes. The first and last
// tokens are never abbreviated, so a name may still exceed maxLen when those
// two alone are too long. Already-short and already-abbreviated names pass
// through unchanged, which makes the function idempotent.
func Shorten(name string, maxLen int) string {
	if utf8.RuneCountInString(name) <= maxLen {
		return name
	}

	parts := strings.Fields(name)
	for i := 1; i < len(parts)-1; i++ {
		if utf8.RuneCountInString(name) <= maxLen {
			break
		}
		first, _ := utf8.DecodeRuneInString(parts[i])
		parts[i] = string(first) + "."
		name = strings.Join(parts, " ")
	}
	return name
}
