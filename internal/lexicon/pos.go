package lexicon

import (
	"strings"

	"harshagw/textanalysis/internal/config"
)

// POS is a one-letter part-of-speech code. Noun, Verb, Adjective,
// Satellite and Adverb are wordnet parts of speech; None and Any are
// filters used in word lists.
type POS byte

const (
	None      POS = 'x'
	Noun      POS = 'n'
	Verb      POS = 'v'
	Adjective POS = 'a'
	Satellite POS = 's'
	Adverb    POS = 'r'
	Any       POS = 'y'
)

// OpenClass lists the wordnet parts of speech in lookup order.
var OpenClass = []POS{Noun, Verb, Adjective, Satellite, Adverb}

func (p POS) String() string {
	switch p {
	case None:
		return "none"
	case Noun:
		return "noun"
	case Verb:
		return "verb"
	case Adjective:
		return "adjective"
	case Satellite:
		return "adjective satellite"
	case Adverb:
		return "adverb"
	case Any:
		return "any"
	default:
		return "unknown"
	}
}

// Wordnet reports whether p names a wordnet part of speech.
func (p POS) Wordnet() bool {
	switch p {
	case Noun, Verb, Adjective, Satellite, Adverb:
		return true
	}
	return false
}

// ParsePOS parses a single code, ignoring case.
func ParsePOS(code rune) (POS, error) {
	p := POS(strings.ToLower(string(code))[0])
	switch p {
	case None, Noun, Verb, Adjective, Satellite, Adverb, Any:
		return p, nil
	}
	return 0, config.Errorf("invalid part of speech code %q", string(code))
}

// Expand returns the wordnet parts of speech a filter code looks up:
// nothing for None, all open classes for Any and the adjective plus its
// satellite form for Adjective.
func Expand(p POS) []POS {
	switch p {
	case None:
		return nil
	case Any:
		return append([]POS(nil), OpenClass...)
	case Adjective:
		return []POS{Adjective, Satellite}
	default:
		return []POS{p}
	}
}
