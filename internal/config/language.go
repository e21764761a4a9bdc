package config

import (
	"strings"

	"golang.org/x/text/language"
)

// languageNames maps the language names accepted on the command line to
// BCP 47 base codes.
var languageNames = map[string]string{
	"arabic":     "ar",
	"danish":     "da",
	"dutch":      "nl",
	"english":    "en",
	"finnish":    "fi",
	"french":     "fr",
	"german":     "de",
	"greek":      "el",
	"hungarian":  "hu",
	"indonesian": "id",
	"italian":    "it",
	"norwegian":  "no",
	"portuguese": "pt",
	"romanian":   "ro",
	"russian":    "ru",
	"spanish":    "es",
	"swedish":    "sv",
	"turkish":    "tr",
}

// ResolveLanguage accepts a language name ("english"), a two letter code
// ("en") or a three letter code ("eng") and returns its tag.
func ResolveLanguage(name string) (language.Tag, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return language.Und, Errorf("no language given")
	}
	if code, ok := languageNames[key]; ok {
		key = code
	}
	tag, err := language.Parse(key)
	if err != nil {
		return language.Und, Errorf("unknown language %q", name)
	}
	return tag, nil
}

// ISO3 returns the ISO 639-3 code of the tag's base language, the form
// wordnet lexicons are keyed by.
func ISO3(tag language.Tag) string {
	base, _ := tag.Base()
	return base.ISO3()
}

// LanguageName returns the snowball/stopword name for a tag ("english"),
// or the empty string when there is none.
func LanguageName(tag language.Tag) string {
	base, _ := tag.Base()
	code := base.String()
	for name, c := range languageNames {
		if c == code {
			return name
		}
	}
	return ""
}

// NormalizeLexiconLanguage resolves name and returns its ISO 639-3 code.
func NormalizeLexiconLanguage(name string) (string, error) {
	tag, err := ResolveLanguage(name)
	if err != nil {
		return "", err
	}
	return ISO3(tag), nil
}
