package analysis

import (
	"strings"

	"github.com/kljensen/snowball"

	"harshagw/textanalysis/internal/config"
)

// Stemmer reduces a word to its stem.
type Stemmer interface {
	Stem(word string) string
	Language() string
}

// Snowball stems with the snowball algorithm of one language.
type Snowball struct {
	language string
}

// NewSnowball returns a snowball stemmer for language, a name ("english")
// or a code ("en", "spa"). "porter" is accepted as an alias of english.
func NewSnowball(language string) (*Snowball, error) {
	lang := strings.ToLower(strings.TrimSpace(language))
	if lang == "porter" {
		lang = "english"
	} else if tag, err := config.ResolveLanguage(lang); err == nil {
		if name := config.LanguageName(tag); name != "" {
			lang = name
		}
	}
	if _, err := snowball.Stem("test", lang, true); err != nil {
		return nil, config.Errorf("unsupported stemmer language %q", language)
	}
	return &Snowball{language: lang}, nil
}

// Stem returns the stem of word, or word itself if it cannot be stemmed.
func (s *Snowball) Stem(word string) string {
	stem, err := snowball.Stem(word, s.language, false)
	if err != nil || stem == "" {
		return word
	}
	return stem
}

// Language returns the stemmer language.
func (s *Snowball) Language() string {
	return s.language
}

// StemAll stems every token.
func StemAll(stemmer Stemmer, tokens []string) []string {
	r := make([]string, len(tokens))
	for i, token := range tokens {
		r[i] = stemmer.Stem(token)
	}
	return r
}
