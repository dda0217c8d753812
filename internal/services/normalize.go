package services

import "strings"

// NormalizePrompt collapses whitespace and title-cases each token. The result
// is the dedupe key, so "  red  dragon " and "Red Dragon" resolve to the same
// stored artifact.
func NormalizePrompt(prompt string) string {
	words := strings.Fields(prompt)
	for i, word := range words {
		r := []rune(word)
		words[i] = strings.ToUpper(string(r[:1])) + strings.ToLower(string(r[1:]))
	}
	return strings.Join(words, " ")
}
