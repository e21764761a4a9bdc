package analysis

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

type TokenPosition struct {
	Token    string
	Position uint64
}

// Analyzer defines the interface for text analysis.
type Analyzer interface {
	Analyze(text string) []TokenPosition
}

// Simple lower-cases text with the rules of its language and splits it on
// anything that is not a letter, a number or an in-word apostrophe.
type Simple struct {
	lower cases.Caser
}

// NewSimple returns a tokenizer using the language-neutral lower-casing rules.
func NewSimple() *Simple {
	return NewSimpleFor(language.Und)
}

// NewSimpleFor returns a tokenizer lower-casing with the rules of tag
// (Turkish dotted and dotless i, for instance).
func NewSimpleFor(tag language.Tag) *Simple {
	return &Simple{lower: cases.Lower(tag)}
}

// Analyze tokenizes text into tokens with positions.
func (a *Simple) Analyze(text string) []TokenPosition {
	var tokens []TokenPosition
	var currentToken strings.Builder
	var position uint64

	text = a.lower.String(norm.NFC.String(text))
	runes := []rune(text)

	flush := func() {
		if currentToken.Len() > 0 {
			tokens = append(tokens, TokenPosition{
				Token:    currentToken.String(),
				Position: position,
			})
			position++
			currentToken.Reset()
		}
	}

	for i, r := range runes {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.Is(unicode.Mn, r):
			currentToken.WriteRune(r)
		case isApostrophe(r) && currentToken.Len() > 0 && i+1 < len(runes) && unicode.IsLetter(runes[i+1]):
			currentToken.WriteRune('\'')
		default:
			flush()
		}
	}
	flush()

	return tokens
}

// Words returns only the token strings of Analyze.
func (a *Simple) Words(text string) []string {
	tokens := a.Analyze(text)
	words := make([]string, len(tokens))
	for i, t := range tokens {
		words[i] = t.Token
	}
	return words
}

// IsAlpha reports whether every rune of s is a letter.
func IsAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.Is(unicode.Mn, r) {
			return false
		}
	}
	return true
}

func isApostrophe(r rune) bool {
	return r == '\'' || r == '’'
}
