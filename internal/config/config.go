package config

import (
	"log/slog"
	"strings"
)

// Settings carries the parameters shared by every task of one command
// invocation. A fresh Settings is built per invocation and handed to the
// components that need it; nothing is remembered between invocations.
type Settings struct {
	// StopwordsLanguage names the stopword list ("english") or "none".
	StopwordsLanguage string

	// StopwordsFile optionally replaces the built-in stopword list.
	StopwordsFile string

	// StemmerLanguage names the snowball stemmer ("english").
	StemmerLanguage string

	// LexiconLanguage is the ISO 639-3 code used for synonym lookups.
	LexiconLanguage string

	// DictionaryLanguage is the ISO 639-3 code of the spelling dictionary.
	DictionaryLanguage string

	// Overwrite allows generated variables to replace existing ones.
	Overwrite bool

	Logger *slog.Logger
}

// Option configures Settings.
type Option func(*Settings)

// WithStopwords sets the stopword language and optional replacement file.
func WithStopwords(lang, file string) Option {
	return func(s *Settings) {
		s.StopwordsLanguage = lang
		s.StopwordsFile = file
	}
}

// WithStemmer sets the stemmer language.
func WithStemmer(lang string) Option {
	return func(s *Settings) {
		s.StemmerLanguage = lang
	}
}

// WithLexiconLanguage sets the synonym lookup language.
func WithLexiconLanguage(lang string) Option {
	return func(s *Settings) {
		s.LexiconLanguage = lang
	}
}

// WithDictionaryLanguage sets the spelling dictionary language.
func WithDictionaryLanguage(lang string) Option {
	return func(s *Settings) {
		s.DictionaryLanguage = lang
	}
}

// WithOverwrite allows generated variables to overwrite existing ones.
func WithOverwrite(overwrite bool) Option {
	return func(s *Settings) {
		s.Overwrite = overwrite
	}
}

// WithLogger sets the logger. A nil logger keeps slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Settings) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

// Default returns the settings the command uses when nothing is specified.
func Default() *Settings {
	return &Settings{
		StopwordsLanguage:  "english",
		StemmerLanguage:    "english",
		LexiconLanguage:    "eng",
		DictionaryLanguage: "eng",
		Logger:             slog.Default(),
	}
}

// New returns default settings with opts applied.
func New(opts ...Option) *Settings {
	s := Default()
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate normalizes language codes and checks the settings.
func (s *Settings) Validate() error {
	s.StopwordsLanguage = strings.ToLower(strings.TrimSpace(s.StopwordsLanguage))
	s.StemmerLanguage = strings.ToLower(strings.TrimSpace(s.StemmerLanguage))

	if s.StopwordsLanguage == "" {
		return Errorf("stopwords language is required")
	}
	if s.StemmerLanguage == "" {
		return Errorf("stemmer language is required")
	}

	lex, err := NormalizeLexiconLanguage(s.LexiconLanguage)
	if err != nil {
		return err
	}
	s.LexiconLanguage = lex

	dict, err := NormalizeLexiconLanguage(s.DictionaryLanguage)
	if err != nil {
		return err
	}
	s.DictionaryLanguage = dict

	if s.Logger == nil {
		s.Logger = slog.Default()
	}
	return nil
}
