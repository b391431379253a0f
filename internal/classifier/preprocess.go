package classifier

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jonesrussell/freefood/internal/data"
)

var (
	urlPattern        = regexp.MustCompile(`(?i)\b(?:https?://|www\.)\S+`)
	mentionPattern    = regexp.MustCompile(`@[\w.]+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// punctuation folds characters the ASCII strip would otherwise destroy.
var punctuation = strings.NewReplacer(
	"’", "'", "‘", "'", "“", `"`, "”", `"`,
	"–", "-", "—", "-", "…", "...",
	"€", " eur ", "£", " gbp ",
)

// Clean strips URLs and mentions, spells out food emoji, folds to ASCII
// and collapses whitespace. Case is preserved.
func Clean(text string) string {
	s := urlPattern.ReplaceAllString(text, " ")
	s = mentionPattern.ReplaceAllString(s, " ")
	s = punctuation.Replace(s)
	s = spellEmoji(s)
	s = foldASCII(s)
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Normalize is Clean lowercased; every rule table is matched against it.
func Normalize(text string) string {
	return strings.ToLower(Clean(text))
}

func spellEmoji(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if kw, ok := data.EmojiKeyword(r); ok {
			b.WriteByte(' ')
			b.WriteString(kw)
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// foldASCII decomposes accents ("café" to "cafe") and drops whatever is
// still outside ASCII.
func foldASCII(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}
