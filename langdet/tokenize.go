package langdet

import "unicode"

// Tokenize splits text into lowercased word tokens, one rune per element,
// and reports the word count. Any run of non-letter characters separates
// words; digits and punctuation never enter a token.
func Tokenize(text string) (tokens [][]rune, words int) {
	var cur []rune
	for _, r := range text {
		if unicode.IsLetter(r) {
			cur = append(cur, unicode.ToLower(r))
			continue
		}
		if len(cur) > 0 {
			tokens = append(tokens, cur)
			cur = nil
		}
	}
	if len(cur) > 0 {
		tokens = append(tokens, cur)
	}
	return tokens, len(tokens)
}
