// Package freq counts words, bigrams and trigrams across the cases of a
// text variable.
package freq

import (
	"math"
	"sort"
	"strings"

	"github.com/RoaringBitmap/roaring"

	"harshagw/textanalysis/internal/analysis"
)

// Item is one counted word or n-gram.
type Item struct {
	Text  string
	Count uint64
	// Cases is the number of cases the item occurs in.
	Cases uint64
}

type counter struct {
	count uint64
	cases *roaring.Bitmap
}

// Options configures a Tabulator.
type Options struct {
	// Stemmer is applied to every word when set.
	Stemmer   analysis.Stemmer
	Stopwords *analysis.Stopwords
	Tokenizer *analysis.Simple
}

// Tabulator accumulates frequencies for one variable. It is not safe for
// concurrent use.
type Tabulator struct {
	opts   Options
	counts [analysis.MaxGram]map[string]*counter

	nextCase  uint32
	textCases int
	weighted  bool
}

// NewTabulator returns an empty tabulator.
func NewTabulator(opts Options) *Tabulator {
	if opts.Tokenizer == nil {
		opts.Tokenizer = analysis.NewSimple()
	}
	t := &Tabulator{opts: opts}
	for i := range t.counts {
		t.counts[i] = make(map[string]*counter)
	}
	return t
}

// RoundWeight rounds a case weight half to even. Negative weights count
// as zero.
func RoundWeight(w float64) uint64 {
	if math.IsNaN(w) || w <= 0 {
		return 0
	}
	return uint64(math.RoundToEven(w))
}

// Add counts the words and n-grams of text, each occurrence multiplied by
// the rounded weight. Texts are split into sentences and n-grams never
// span a sentence boundary; n-grams repeating a word are skipped. Add
// reports whether the text was non-blank.
func (t *Tabulator) Add(text string, weight float64) bool {
	caseID := t.nextCase
	t.nextCase++
	if weight != 1 {
		t.weighted = true
	}

	text = strings.TrimRight(text, " \t\r\n")
	if text == "" {
		return false
	}
	t.textCases++

	w := RoundWeight(weight)
	if w == 0 {
		return true
	}
	for _, sentence := range analysis.Sentences(text) {
		words := t.words(sentence)
		for n := 1; n <= analysis.MaxGram; n++ {
			for _, g := range analysis.Ngrams(words, n, n > 1) {
				t.count(n, g.String(), caseID, w)
			}
		}
	}
	return true
}

func (t *Tabulator) words(sentence string) []string {
	var words []string
	for _, w := range t.opts.Tokenizer.Words(sentence) {
		if !analysis.IsAlpha(w) {
			continue
		}
		if t.opts.Stemmer != nil {
			w = t.opts.Stemmer.Stem(w)
		}
		if t.opts.Stopwords.Contains(w) {
			continue
		}
		words = append(words, w)
	}
	return words
}

func (t *Tabulator) count(n int, text string, caseID uint32, weight uint64) {
	c, ok := t.counts[n-1][text]
	if !ok {
		c = &counter{cases: roaring.New()}
		t.counts[n-1][text] = c
	}
	c.count += weight
	c.cases.Add(caseID)
}

// CasesWithText returns the number of non-blank texts added.
func (t *Tabulator) CasesWithText() int { return t.textCases }

// Weighted reports whether any case had a weight other than 1.
func (t *Tabulator) Weighted() bool { return t.weighted }

// Words returns the n most frequent words; n <= 0 returns all.
func (t *Tabulator) Words(n int) []Item { return t.top(1, n) }

// Bigrams returns the n most frequent word pairs.
func (t *Tabulator) Bigrams(n int) []Item { return t.top(2, n) }

// Trigrams returns the n most frequent word triples.
func (t *Tabulator) Trigrams(n int) []Item { return t.top(3, n) }

// CasesContaining returns the bitmap of case numbers, in order of Add,
// whose text contains the word or n-gram.
func (t *Tabulator) CasesContaining(text string) *roaring.Bitmap {
	n := len(strings.Fields(text))
	if n < 1 || n > analysis.MaxGram {
		return roaring.New()
	}
	c, ok := t.counts[n-1][text]
	if !ok {
		return roaring.New()
	}
	return c.cases.Clone()
}

// top returns items sorted by count descending, then text ascending.
func (t *Tabulator) top(size, n int) []Item {
	items := make([]Item, 0, len(t.counts[size-1]))
	for text, c := range t.counts[size-1] {
		items = append(items, Item{Text: text, Count: c.count, Cases: c.cases.GetCardinality()})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Text < items[j].Text
	})
	if n > 0 && len(items) > n {
		items = items[:n]
	}
	return items
}
