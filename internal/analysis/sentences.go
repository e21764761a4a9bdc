package analysis

import (
	"strings"
	"unicode"
)

// abbreviations are tokens whose trailing period does not end a sentence.
var abbreviations = map[string]struct{}{
	"dr": {}, "mr": {}, "mrs": {}, "ms": {}, "prof": {}, "sr": {}, "jr": {},
	"st": {}, "vs": {}, "etc": {}, "e.g": {}, "i.e": {}, "inc": {}, "ltd": {},
	"no": {}, "fig": {}, "approx": {},
}

// Sentences splits text after '.', '!' or '?' runs that are followed by
// whitespace and an upper-case letter, a digit or the end of the text.
// Known abbreviations do not end a sentence.
func Sentences(text string) []string {
	var sentences []string
	runes := []rune(strings.TrimSpace(text))
	start := 0

	for i := 0; i < len(runes); i++ {
		if !isTerminal(runes[i]) {
			continue
		}
		end := i
		for end+1 < len(runes) && (isTerminal(runes[end+1]) || isCloser(runes[end+1])) {
			end++
		}
		next := end + 1
		if next < len(runes) && !unicode.IsSpace(runes[next]) {
			i = end
			continue
		}
		for next < len(runes) && unicode.IsSpace(runes[next]) {
			next++
		}
		if next < len(runes) && !unicode.IsUpper(runes[next]) && !unicode.IsDigit(runes[next]) && !isOpener(runes[next]) {
			i = end
			continue
		}
		if runes[i] == '.' && isAbbreviation(runes[start:i]) {
			i = end
			continue
		}

		if s := strings.TrimSpace(string(runes[start : end+1])); s != "" {
			sentences = append(sentences, s)
		}
		start = next
		i = next - 1
	}

	if start < len(runes) {
		if s := strings.TrimSpace(string(runes[start:])); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

func isAbbreviation(before []rune) bool {
	j := len(before)
	for j > 0 && !unicode.IsSpace(before[j-1]) {
		j--
	}
	word := strings.ToLower(string(before[j:]))
	_, ok := abbreviations[word]
	return ok
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isCloser(r rune) bool {
	return r == '"' || r == '\'' || r == ')' || r == '”' || r == '’'
}

func isOpener(r rune) bool {
	return r == '"' || r == '(' || r == '“'
}
