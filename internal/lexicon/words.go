package lexicon

import (
	"bytes"
	"fmt"
	"sort"
	"sync"

	"github.com/couchbase/vellum"
	"github.com/couchbase/vellum/levenshtein"
)

// MaxFuzziness is the largest edit distance Fuzzy accepts.
const MaxFuzziness = 2

// WordIndex is an FST of single words and their frequencies.
type WordIndex struct {
	fst *vellum.FST
}

// BuildWordIndex builds an in-memory index from word counts.
func BuildWordIndex(counts map[string]uint64) (*WordIndex, error) {
	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Strings(words)

	data, err := buildFST(words, func(w string) uint64 { return counts[w] })
	if err != nil {
		return nil, fmt.Errorf("failed to build word index: %w", err)
	}
	return loadWordIndex(data)
}

func loadWordIndex(data []byte) (*WordIndex, error) {
	fst, err := vellum.Load(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load word index: %w", err)
	}
	return &WordIndex{fst: fst}, nil
}

// Len returns the number of words.
func (w *WordIndex) Len() int {
	return w.fst.Len()
}

// Frequency returns the count of word and whether it is known.
func (w *WordIndex) Frequency(word string) (uint64, bool) {
	val, exists, err := w.fst.Get([]byte(word))
	if err != nil || !exists {
		return 0, false
	}
	return val, true
}

// Contains reports whether word is in the index.
func (w *WordIndex) Contains(word string) bool {
	_, ok := w.Frequency(word)
	return ok
}

var (
	automatonBuildersMu sync.Mutex
	automatonBuilders   [MaxFuzziness + 1]*levenshtein.LevenshteinAutomatonBuilder
)

// automatonBuilder returns the shared builder for distance. Building one is
// expensive, so each is created once.
func automatonBuilder(distance uint8) (*levenshtein.LevenshteinAutomatonBuilder, error) {
	automatonBuildersMu.Lock()
	defer automatonBuildersMu.Unlock()

	if b := automatonBuilders[distance]; b != nil {
		return b, nil
	}
	b, err := levenshtein.NewLevenshteinAutomatonBuilder(distance, true)
	if err != nil {
		return nil, fmt.Errorf("failed to create levenshtein builder: %w", err)
	}
	automatonBuilders[distance] = b
	return b, nil
}

// Fuzzy returns all words within distance edits of word, counting an
// adjacent transposition as one edit.
func (w *WordIndex) Fuzzy(word string, distance uint8) ([]string, error) {
	if distance > MaxFuzziness {
		return nil, fmt.Errorf("fuzziness %d exceeds maximum %d", distance, MaxFuzziness)
	}
	builder, err := automatonBuilder(distance)
	if err != nil {
		return nil, err
	}
	aut, err := builder.BuildDfa(word, distance)
	if err != nil {
		return nil, fmt.Errorf("failed to build fuzzy automaton: %w", err)
	}

	iter, err := w.fst.Search(aut, nil, nil)
	return collect(iter, err, 0)
}

// Prefix returns up to limit words starting with prefix; limit <= 0 means
// no limit. Uses an FST range scan.
func (w *WordIndex) Prefix(prefix string, limit int) ([]string, error) {
	start := []byte(prefix)
	end := prefixSuccessor(start)

	iter, err := w.fst.Iterator(start, end)
	return collect(iter, err, limit)
}

// Close releases the FST.
func (w *WordIndex) Close() error {
	return w.fst.Close()
}

func collect(iter vellum.Iterator, err error, limit int) ([]string, error) {
	var words []string
	for err == nil {
		key, _ := iter.Current()
		words = append(words, string(key))
		if limit > 0 && len(words) >= limit {
			return words, nil
		}
		err = iter.Next()
	}
	if err != vellum.ErrIteratorDone {
		return nil, err
	}
	return words, nil
}

// prefixSuccessor returns the lexicographically next prefix after the given one.
func prefixSuccessor(prefix []byte) []byte {
	if len(prefix) == 0 {
		return nil
	}

	succ := bytes.Clone(prefix)

	for i := len(succ) - 1; i >= 0; i-- {
		if succ[i] < 0xff {
			succ[i]++
			return succ[:i+1]
		}
	}

	return nil
}
