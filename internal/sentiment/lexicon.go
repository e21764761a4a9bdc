package sentiment

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"harshagw/textanalysis/internal/config"
)

//go:embed lexicon.txt
var lexiconData string

// Entry is a word and its valence.
type Entry struct {
	Word  string
	Score float64
}

// Lexicon maps lower-case words to a valence between -4 and +4.
type Lexicon struct {
	words map[string]float64
}

// DefaultLexicon returns a fresh copy of the built-in lexicon.
func DefaultLexicon() *Lexicon {
	l := &Lexicon{words: make(map[string]float64)}
	if _, err := l.AddScores(strings.NewReader(lexiconData)); err != nil {
		panic(fmt.Sprintf("sentiment: invalid embedded lexicon: %v", err))
	}
	return l
}

// AddScores reads "word score" lines and adds or replaces their entries.
// Blank lines and '#' comments are skipped. It returns the number of
// entries read.
func (l *Lexicon) AddScores(r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	n, lineNo := 0, 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return n, config.Errorf("word scores line %d: expected word and score, got %q", lineNo, line)
		}
		score, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return n, config.Errorf("word scores line %d: invalid score %q", lineNo, fields[1])
		}
		l.words[strings.ToLower(fields[0])] = score
		n++
	}
	if err := scanner.Err(); err != nil {
		return n, fmt.Errorf("failed to read word scores: %w", err)
	}
	return n, nil
}

// Valence returns the score of a lower-case word.
func (l *Lexicon) Valence(word string) (float64, bool) {
	v, ok := l.words[word]
	return v, ok
}

// Len returns the number of entries.
func (l *Lexicon) Len() int { return len(l.words) }

// Entries returns all entries sorted by word.
func (l *Lexicon) Entries() []Entry {
	entries := make([]Entry, 0, len(l.words))
	for w, s := range l.words {
		entries = append(entries, Entry{Word: w, Score: s})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Word < entries[j].Word })
	return entries
}
