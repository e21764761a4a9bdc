package analysis

import "strings"

// MaxGram is the longest word sequence a Gram can hold.
const MaxGram = 3

// Gram is a sequence of one to three words. It is comparable and can be
// used as a map key.
type Gram struct {
	N     int
	Words [MaxGram]string
}

// NewGram builds a Gram from up to MaxGram words.
func NewGram(words ...string) Gram {
	var g Gram
	g.N = min(len(words), MaxGram)
	copy(g.Words[:], words[:g.N])
	return g
}

// Slice returns the gram's words.
func (g Gram) Slice() []string {
	return g.Words[:g.N]
}

// Distinct reports whether no word appears twice in the gram.
func (g Gram) Distinct() bool {
	for i := 0; i < g.N; i++ {
		for j := i + 1; j < g.N; j++ {
			if g.Words[i] == g.Words[j] {
				return false
			}
		}
	}
	return true
}

// String joins the words with a space.
func (g Gram) String() string {
	return strings.Join(g.Slice(), " ")
}

// Ngrams returns the sliding windows of n adjacent tokens in order. With
// distinct set, windows repeating a token are dropped.
func Ngrams(tokens []string, n int, distinct bool) []Gram {
	if n < 1 || n > MaxGram || len(tokens) < n {
		return nil
	}
	grams := make([]Gram, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		g := NewGram(tokens[i : i+n]...)
		if distinct && !g.Distinct() {
			continue
		}
		grams = append(grams, g)
	}
	return grams
}

// Windows holds the word, bigram and trigram sets of one tokenized text.
// Bigrams and trigrams repeating a token ("the the") are not included.
type Windows struct {
	tokens []string
	sets   [MaxGram]map[Gram]struct{}
}

// NewWindows builds the window sets for tokens.
func NewWindows(tokens []string) *Windows {
	w := &Windows{tokens: tokens}
	for n := 1; n <= MaxGram; n++ {
		grams := Ngrams(tokens, n, n > 1)
		set := make(map[Gram]struct{}, len(grams))
		for _, g := range grams {
			set[g] = struct{}{}
		}
		w.sets[n-1] = set
	}
	return w
}

// Tokens returns the tokens the windows were built from.
func (w *Windows) Tokens() []string {
	return w.tokens
}

// Set returns the windows of size n.
func (w *Windows) Set(n int) map[Gram]struct{} {
	if n < 1 || n > MaxGram {
		return nil
	}
	return w.sets[n-1]
}

// Has reports whether g occurs among the windows of its size.
func (w *Windows) Has(g Gram) bool {
	_, ok := w.Set(g.N)[g]
	return ok
}
