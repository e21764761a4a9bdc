package match

import (
	"strings"

	"harshagw/textanalysis/internal/analysis"
	"harshagw/textanalysis/internal/config"
	"harshagw/textanalysis/internal/terms"
)

// Tokenizer splits text into lower-cased word tokens.
type Tokenizer interface {
	Words(text string) []string
}

type Config struct {
	Mode Mode
	// Stem keeps only alphabetic tokens and stems them before matching.
	Stem      bool
	Stemmer   analysis.Stemmer
	Tokenizer Tokenizer
}

// Matcher evaluates compiled terms against texts. A Matcher is meant for one
// command execution; it is not safe for concurrent use.
type Matcher struct {
	terms []*terms.Term
	cfg   Config
	cache *windowCache
}

// NewMatcher validates cfg and returns a matcher for list.
func NewMatcher(list []*terms.Term, cfg Config) (*Matcher, error) {
	switch cfg.Mode {
	case Any, All, Pattern:
	default:
		return nil, config.Errorf("invalid search mode %d", cfg.Mode)
	}
	if len(list) == 0 {
		return nil, config.Errorf("no search terms")
	}
	if cfg.Stem && cfg.Stemmer == nil {
		return nil, config.Errorf("stemmed search requires a stemmer")
	}
	if cfg.Tokenizer == nil {
		cfg.Tokenizer = analysis.NewSimple()
	}
	return &Matcher{terms: list, cfg: cfg, cache: newWindowCache()}, nil
}

// Width is the width of pattern results, or 0 in other modes.
func (m *Matcher) Width() int {
	if m.cfg.Mode == Pattern {
		return len(m.terms)
	}
	return 0
}

// Scan returns whether each term occurs in text, in term order. ok is false
// for blank text.
func (m *Matcher) Scan(text string) (hits []bool, ok bool) {
	if strings.TrimSpace(text) == "" {
		return nil, false
	}

	tokens := m.cfg.Tokenizer.Words(text)
	if m.cfg.Stem {
		stemmed := make([]string, 0, len(tokens))
		for _, tok := range tokens {
			if analysis.IsAlpha(tok) {
				stemmed = append(stemmed, m.cfg.Stemmer.Stem(tok))
			}
		}
		tokens = stemmed
	}

	w := m.cache.get(tokens)
	hits = make([]bool, len(m.terms))
	for i, t := range m.terms {
		hits[i] = t.Match(w)
	}
	return hits, true
}

// Match evaluates text and combines the per-term results by mode.
func (m *Matcher) Match(text string) Result {
	hits, ok := m.Scan(text)
	if !ok {
		return Empty
	}

	switch m.cfg.Mode {
	case Any:
		for _, h := range hits {
			if h {
				return Result{kind: boolResult, match: true}
			}
		}
		return Result{kind: boolResult}
	case All:
		for _, h := range hits {
			if !h {
				return Result{kind: boolResult}
			}
		}
		return Result{kind: boolResult, match: true}
	default:
		var b strings.Builder
		for _, h := range hits {
			if h {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
		return Result{kind: patternResult, pattern: b.String()}
	}
}

// CacheStats returns window cache usage so far.
func (m *Matcher) CacheStats() CacheStats {
	return m.cache.stats()
}
