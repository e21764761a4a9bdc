package analysis

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/kljensen/snowball/english"
	"github.com/kljensen/snowball/french"
	"github.com/kljensen/snowball/hungarian"
	"github.com/kljensen/snowball/norwegian"
	"github.com/kljensen/snowball/russian"
	"github.com/kljensen/snowball/spanish"
	"github.com/kljensen/snowball/swedish"

	"harshagw/textanalysis/internal/config"
)

// Stopwords is a set of words ignored by frequency counts and spelling
// correction. The zero value and a nil *Stopwords contain nothing.
type Stopwords struct {
	language string
	words    map[string]struct{}
	builtin  func(string) bool
}

var builtinStopwords = map[string]func(string) bool{
	"english":   english.IsStopWord,
	"french":    french.IsStopWord,
	"hungarian": hungarian.IsStopWord,
	"norwegian": norwegian.IsStopWord,
	"russian":   russian.IsStopWord,
	"spanish":   spanish.IsStopWord,
	"swedish":   swedish.IsStopWord,
}

// NewStopwords returns the built-in list for language, a name ("spanish")
// or a code ("es", "spa"). "none" yields an empty set. Languages without a
// built-in list need a file (see LoadStopwords).
func NewStopwords(language string) (*Stopwords, error) {
	lang := strings.ToLower(strings.TrimSpace(language))
	if lang == "none" {
		return &Stopwords{language: lang}, nil
	}
	if tag, err := config.ResolveLanguage(lang); err == nil {
		if name := config.LanguageName(tag); name != "" {
			lang = name
		}
	}
	builtin, ok := builtinStopwords[lang]
	if !ok {
		return nil, config.Errorf("no built-in stopword list for %q; supply a stopwords file", language)
	}
	return &Stopwords{language: lang, builtin: builtin}, nil
}

// LoadStopwords reads one word per line (blank lines and '#' comments are
// skipped) and labels the set with language.
func LoadStopwords(language string, r io.Reader) (*Stopwords, error) {
	sw := &Stopwords{language: language, words: make(map[string]struct{})}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, w := range strings.Fields(line) {
			sw.words[strings.ToLower(w)] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stopwords: %w", err)
	}
	return sw, nil
}

// Contains reports whether the lower-cased word is a stopword.
func (s *Stopwords) Contains(word string) bool {
	if s == nil {
		return false
	}
	if _, ok := s.words[word]; ok {
		return true
	}
	return s.builtin != nil && s.builtin(word)
}

// Language returns the label of the set.
func (s *Stopwords) Language() string {
	if s == nil {
		return "none"
	}
	return s.language
}

// Filter removes stopwords from tokens.
func (s *Stopwords) Filter(tokens []string) []string {
	r := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if !s.Contains(token) {
			r = append(r, token)
		}
	}
	return r
}
