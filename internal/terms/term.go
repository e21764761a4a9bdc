package terms

import (
	"slices"
	"sort"
	"strings"

	"harshagw/textanalysis/internal/analysis"
	"harshagw/textanalysis/internal/lexicon"
)

// Kind is the arity of a term.
type Kind int

const (
	SingleWord Kind = iota + 1
	Bigram
	Trigram
)

func (k Kind) String() string {
	switch k {
	case SingleWord:
		return "word"
	case Bigram:
		return "bigram"
	case Trigram:
		return "trigram"
	default:
		return "unknown"
	}
}

// Arity returns the number of words in a term of kind k.
func (k Kind) Arity() int {
	return int(k)
}

// Slot is one word position of a term.
type Slot struct {
	Word  string
	POS   lexicon.POS
	Words []string // literal word plus synonyms, sorted
}

// Term is a compiled word, bigram or trigram with its accepted variants.
// Terms are immutable once compiled.
type Term struct {
	Kind     Kind
	Text     string
	Slots    []Slot
	Variants map[analysis.Gram]struct{}

	// compounds holds the variants containing a multi-word synonym
	// ("look-for"), flattened to their words.
	compounds [][]string
}

// Match reports whether any variant of t occurs among the windows of its size.
// A multi-word synonym matches its words as adjacent tokens.
func (t *Term) Match(w *analysis.Windows) bool {
	var windows map[analysis.Gram]struct{}
	switch t.Kind {
	case SingleWord:
		windows = w.Set(1)
	case Bigram:
		windows = w.Set(2)
	case Trigram:
		windows = w.Set(3)
	default:
		return false
	}

	small, large := t.Variants, windows
	if len(small) > len(large) {
		small, large = large, small
	}
	for g := range small {
		if _, ok := large[g]; ok {
			return true
		}
	}
	for _, seq := range t.compounds {
		if len(seq) <= analysis.MaxGram {
			if w.Has(analysis.NewGram(seq...)) {
				return true
			}
		} else if containsRun(w.Tokens(), seq) {
			return true
		}
	}
	return false
}

// containsRun reports whether seq occurs as adjacent tokens.
func containsRun(tokens, seq []string) bool {
	for i := 0; i+len(seq) <= len(tokens); i++ {
		if slices.Equal(tokens[i:i+len(seq)], seq) {
			return true
		}
	}
	return false
}

// flatten splits the multi-word members of the variants into their words.
// Variants made of single words only are left out.
func flatten(variants map[analysis.Gram]struct{}) [][]string {
	var out [][]string
	for g := range variants {
		var seq []string
		compound := false
		for _, w := range g.Slice() {
			parts := strings.FieldsFunc(w, func(r rune) bool { return r == '-' })
			compound = compound || len(parts) > 1
			seq = append(seq, parts...)
		}
		if compound {
			out = append(out, seq)
		}
	}
	return out
}

// Codes returns the part-of-speech annotation of the term, one code per slot.
func (t *Term) Codes() string {
	var b strings.Builder
	for _, s := range t.Slots {
		b.WriteByte(byte(s.POS))
	}
	return b.String()
}

// Label is the term text followed by its annotation when any slot expands,
// e.g. "direction(y)".
func (t *Term) Label() string {
	for _, s := range t.Slots {
		if s.POS != lexicon.None {
			return t.Text + "(" + t.Codes() + ")"
		}
	}
	return t.Text
}

// VariantList returns the variants as hyphen-joined strings, sorted.
func (t *Term) VariantList() []string {
	out := make([]string, 0, len(t.Variants))
	for g := range t.Variants {
		out = append(out, strings.Join(g.Slice(), "-"))
	}
	sort.Strings(out)
	return out
}
