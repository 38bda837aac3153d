package slug

import (
	"strings"
	"unicode"
)

// Make converts free text into a kebab-case identifier suitable for
// filenames and directory names. The operation is idempotent:
// Make(Make(s)) == Make(s).
func Make(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))

	var b strings.Builder
	lastHyphen := true // swallow leading hyphens
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case unicode.IsSpace(r) || r == '-' || r == '_':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		default:
			// drop everything else (punctuation, accents, symbols)
		}
	}

	return strings.TrimRight(b.String(), "-")
}

// Display turns a slug back into a human-readable name:
// "hearthkyn-salvagers" -> "Hearthkyn Salvagers".
func Display(s string) string {
	words := strings.Split(s, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
