package enrich

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DescriptionBudget is the character limit for generated descriptions.
const DescriptionBudget = 300

// Shorten truncates text at the last sentence boundary that still fits the
// limit, counting characters, not bytes. Sentences end at '.', '!' or '?'
// followed by whitespace. Text already within the limit is returned
// unchanged, and when not even the first sentence fits the whole text is
// returned as-is rather than cut mid-word.
func Shorten(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}

	var out strings.Builder
	outLen := 0
	for _, sentence := range splitSentences(text) {
		n := utf8.RuneCountInString(sentence)
		if outLen+n > limit {
			break
		}
		out.WriteString(sentence)
		out.WriteString(" ")
		outLen += n + 1
	}

	short := strings.TrimSpace(out.String())
	if short == "" {
		return text
	}
	return short
}

// splitSentences splits after '.', '!' or '?' followed by whitespace. The
// terminating punctuation stays with its sentence; the whitespace run
// between sentences is dropped.
func splitSentences(text string) []string {
	var sentences []string
	runes := []rune(text)
	start := 0
	i := 0
	for i < len(runes) {
		r := runes[i]
		if (r == '.' || r == '!' || r == '?') && i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			sentences = append(sentences, string(runes[start:i+1]))
			i++
			for i < len(runes) && unicode.IsSpace(runes[i]) {
				i++
			}
			start = i
			continue
		}
		i++
	}
	if start < len(runes) {
		sentences = append(sentences, string(runes[start:]))
	}
	return sentences
}

// DeriveTitle builds a title candidate from a (already shortened)
// description: the first three whitespace-separated words, or the whole
// description when it has fewer. Trailing sentence punctuation is dropped
// and the phrase is capitalized (first letter upper, rest lower).
func DeriveTitle(desc string) string {
	words := strings.Fields(desc)
	var base string
	if len(words) >= 3 {
		base = strings.Join(words[:3], " ")
	} else {
		base = strings.TrimSpace(desc)
	}
	base = strings.TrimRight(base, ".!?,")
	return capitalize(base)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
