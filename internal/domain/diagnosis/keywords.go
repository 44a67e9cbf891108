package diagnosis

import (
	"strings"
	"unicode/utf8"
)

// ExtractKeywords tokenizes free text into lowercase keywords. Tokens of two
// runes or fewer are dropped as filler; if that leaves nothing for a
// non-empty input, the full lowercase split is returned instead.
func ExtractKeywords(text string) []string {
	words := strings.Fields(strings.ToLower(text))
	keywords := make([]string, 0, len(words))
	for _, word := range words {
		if utf8.RuneCountInString(word) > 2 {
			keywords = append(keywords, word)
		}
	}
	if len(keywords) == 0 {
		return words
	}
	return keywords
}

// DetectLanguage reports "ar" when the text contains any Arabic-block rune,
// otherwise "en".
func DetectLanguage(text string) string {
	for _, r := range text {
		if r >= 0x0600 && r <= 0x06FF {
			return "ar"
		}
	}
	return "en"
}

func keywordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}
