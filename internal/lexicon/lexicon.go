package lexicon

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrLookup reports that the knowledge base could not answer a query.
// Callers treat it as "no synonyms".
var ErrLookup = errors.New("lexicon lookup failed")

// Lexicon is a lexical knowledge base mapping a word, part of speech and
// language to the surface forms of its synonyms.
type Lexicon interface {
	// Synonyms returns the lemma names of every synset containing word
	// with part of speech pos in lang, normalized by SurfaceForm.
	Synonyms(word string, pos POS, lang string) ([]string, error)

	// Languages returns the ISO 639-3 codes the lexicon covers.
	Languages() []string
}

// WordSource provides the single-word vocabulary of a language, used as a
// spelling dictionary.
type WordSource interface {
	Words(lang string) (*WordIndex, bool)
}

// Synset is a set of synonymous lemmas in one language.
type Synset struct {
	ID     string   `json:"id"`
	POS    POS      `json:"pos"`
	Lang   string   `json:"lang"`
	Lemmas []string `json:"lemmas"`
}

// LemmaKey normalizes a word or lemma for lookup: lower case with spaces
// and hyphens turned into underscores.
func LemmaKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}

// SurfaceForm renders a lemma the way word lists write multi-word terms:
// lower case with internal separators turned into hyphens.
func SurfaceForm(lemma string) string {
	s := strings.ToLower(strings.TrimSpace(lemma))
	return strings.NewReplacer("_", "-", " ", "-").Replace(s)
}

// IsSingleWord reports whether a lemma has no internal separator.
func IsSingleWord(lemma string) bool {
	return !strings.ContainsAny(lemma, "_ -")
}

// Memory is an in-memory Lexicon.
type Memory struct {
	synsets []Synset
	index   map[string]map[POS]map[string][]int
	words   map[string]map[string]uint64
	indexes map[string]*WordIndex
}

// NewMemory indexes synsets.
func NewMemory(synsets []Synset) *Memory {
	m := &Memory{
		synsets: synsets,
		index:   make(map[string]map[POS]map[string][]int),
		words:   make(map[string]map[string]uint64),
		indexes: make(map[string]*WordIndex),
	}
	for i, s := range synsets {
		if m.index[s.Lang] == nil {
			m.index[s.Lang] = make(map[POS]map[string][]int)
			m.words[s.Lang] = make(map[string]uint64)
		}
		if m.index[s.Lang][s.POS] == nil {
			m.index[s.Lang][s.POS] = make(map[string][]int)
		}
		for _, lemma := range s.Lemmas {
			key := LemmaKey(lemma)
			m.index[s.Lang][s.POS][key] = append(m.index[s.Lang][s.POS][key], i)
			if IsSingleWord(key) {
				m.words[s.Lang][key]++
			}
		}
	}
	return m
}

// Synonyms implements Lexicon.
func (m *Memory) Synonyms(word string, pos POS, lang string) ([]string, error) {
	byPOS, ok := m.index[lang]
	if !ok {
		return nil, fmt.Errorf("%w: language %q not available", ErrLookup, lang)
	}
	var lemmas []string
	for _, i := range byPOS[pos][LemmaKey(word)] {
		lemmas = append(lemmas, m.synsets[i].Lemmas...)
	}
	return surfaceForms(lemmas), nil
}

// Languages implements Lexicon.
func (m *Memory) Languages() []string {
	langs := make([]string, 0, len(m.index))
	for lang := range m.index {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Words implements WordSource.
func (m *Memory) Words(lang string) (*WordIndex, bool) {
	if idx, ok := m.indexes[lang]; ok {
		return idx, true
	}
	counts, ok := m.words[lang]
	if !ok {
		return nil, false
	}
	idx, err := BuildWordIndex(counts)
	if err != nil {
		return nil, false
	}
	m.indexes[lang] = idx
	return idx, true
}

// NumSynsets returns the number of synsets.
func (m *Memory) NumSynsets() int {
	return len(m.synsets)
}

// surfaceForms normalizes, deduplicates and sorts lemmas.
func surfaceForms(lemmas []string) []string {
	if len(lemmas) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(lemmas))
	out := make([]string, 0, len(lemmas))
	for _, l := range lemmas {
		s := SurfaceForm(l)
		if _, ok := seen[s]; ok || s == "" {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
