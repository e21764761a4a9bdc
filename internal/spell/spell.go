package spell

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"harshagw/textanalysis/internal/analysis"
	"harshagw/textanalysis/internal/config"
	"harshagw/textanalysis/internal/lexicon"
)

// DefaultMaxDistance is the largest edit distance a correction may have.
const DefaultMaxDistance = 2

//go:embed names.txt
var namesData string

// separators splits text into words, keeping the separators.
var separators = regexp.MustCompile(`[ ,.]+`)

// Dictionary is a word list with frequencies and fuzzy lookup.
// *lexicon.WordIndex implements it.
type Dictionary interface {
	Frequency(word string) (uint64, bool)
	Fuzzy(word string, distance uint8) ([]string, error)
}

type Options struct {
	Dictionaries []Dictionary
	MaxDistance  int
	Stopwords    *analysis.Stopwords
	// Names are left uncorrected when ExcludeNames is set. Nil uses the
	// built-in list of common given names.
	Names        map[string]struct{}
	ExcludeNames bool
	Language     language.Tag
	Logger       *slog.Logger
}

// Candidate is a possible correction.
type Candidate struct {
	Word      string
	Distance  int
	Frequency uint64
}

// Corrector corrects spelling word by word. Corrections are cached for the
// life of the Corrector, which is one command execution.
type Corrector struct {
	opts  Options
	lower cases.Caser
	cache map[string]string
}

// New returns a corrector. At least one dictionary is required.
func New(opts Options) (*Corrector, error) {
	if len(opts.Dictionaries) == 0 {
		return nil, config.Errorf("no spelling dictionary available")
	}
	if opts.MaxDistance <= 0 {
		opts.MaxDistance = DefaultMaxDistance
	}
	if opts.MaxDistance > lexicon.MaxFuzziness {
		return nil, config.Errorf("maximum edit distance %d exceeds %d", opts.MaxDistance, lexicon.MaxFuzziness)
	}
	if opts.Names == nil {
		opts.Names = DefaultNames()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Corrector{
		opts:  opts,
		lower: cases.Lower(opts.Language),
		cache: make(map[string]string),
	}, nil
}

// DefaultNames returns the built-in given names.
func DefaultNames() map[string]struct{} {
	names, _ := readWords(strings.NewReader(namesData))
	return names
}

// LoadNames reads a whitespace separated list of names.
func LoadNames(r io.Reader) (map[string]struct{}, error) {
	return readWords(r)
}

func readWords(r io.Reader) (map[string]struct{}, error) {
	words := make(map[string]struct{})
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}
		for _, w := range strings.Fields(line) {
			words[strings.ToLower(w)] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	return words, nil
}

// LoadWords builds a dictionary from text, counting each word occurrence.
// A plain word list gives every word a frequency of one.
func LoadWords(r io.Reader) (*lexicon.WordIndex, error) {
	counts := make(map[string]uint64)
	tokenizer := analysis.NewSimple()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		for _, w := range tokenizer.Words(scanner.Text()) {
			if analysis.IsAlpha(w) {
				counts[w]++
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dictionary: %w", err)
	}
	if len(counts) == 0 {
		return nil, config.Errorf("spelling dictionary has no words")
	}
	return lexicon.BuildWordIndex(counts)
}

// CorrectText corrects every word of text. Separators (spaces, commas and
// periods) are kept as they are. Blank text yields "".
func (c *Corrector) CorrectText(text string) string {
	text = strings.TrimRightFunc(text, unicode.IsSpace)
	if text == "" {
		return ""
	}

	var b strings.Builder
	last := 0
	for _, loc := range separators.FindAllStringIndex(text, -1) {
		c.writeWord(&b, text[last:loc[0]])
		b.WriteString(text[loc[0]:loc[1]])
		last = loc[1]
	}
	c.writeWord(&b, text[last:])
	return b.String()
}

func (c *Corrector) writeWord(b *strings.Builder, w string) {
	if w == "" {
		return
	}
	lw := c.lower.String(w)
	if c.opts.Stopwords.Contains(lw) {
		b.WriteString(w)
		return
	}
	if c.opts.ExcludeNames {
		if _, ok := c.opts.Names[lw]; ok {
			b.WriteString(w)
			return
		}
	}
	b.WriteString(c.Correct(w))
}

// Correct returns the best correction of w. Known words, single characters
// and tokens without letters are returned unchanged; so are words with no
// candidate. A correction starting with the same letter as w keeps the case
// of w's first letter.
func (c *Corrector) Correct(w string) string {
	if out, ok := c.cache[w]; ok {
		return out
	}
	out := c.correct(w)
	c.cache[w] = out
	return out
}

func (c *Corrector) correct(w string) string {
	start := strings.IndexFunc(w, isWordRune)
	if start < 0 {
		return w
	}
	end := strings.LastIndexFunc(w, isWordRune)
	_, size := utf8.DecodeRuneInString(w[end:])
	end += size
	prefix, core, suffix := w[:start], w[start:end], w[end:]

	if utf8.RuneCountInString(core) <= 1 || !hasLetter(core) {
		return w
	}
	lw := c.lower.String(core)
	if c.Known(lw) {
		return w
	}

	cands := c.Candidates(lw)
	if len(cands) == 0 {
		return w
	}
	best := cands[0].Word

	first, _ := utf8.DecodeRuneInString(core)
	lfirst, _ := utf8.DecodeRuneInString(lw)
	bfirst, bsize := utf8.DecodeRuneInString(best)
	if bfirst == lfirst {
		best = string(first) + best[bsize:]
	}
	c.opts.Logger.Debug("spelling corrected", "word", core, "correction", best, "distance", cands[0].Distance)
	return prefix + best + suffix
}

// Known reports whether the lower-cased word is in any dictionary.
func (c *Corrector) Known(word string) bool {
	for _, d := range c.opts.Dictionaries {
		if _, ok := d.Frequency(word); ok {
			return true
		}
	}
	return false
}

// Candidates returns the dictionary words within the maximum distance of the
// lower-cased word, closest first, then most frequent, then alphabetical.
// Frequencies from several dictionaries add up.
func (c *Corrector) Candidates(word string) []Candidate {
	freqs := make(map[string]uint64)
	for _, d := range c.opts.Dictionaries {
		words, err := d.Fuzzy(word, uint8(c.opts.MaxDistance))
		if err != nil {
			c.opts.Logger.Warn("spelling lookup failed", "word", word, "error", err)
			continue
		}
		for _, w := range words {
			if _, seen := freqs[w]; seen {
				continue
			}
			for _, dd := range c.opts.Dictionaries {
				if f, ok := dd.Frequency(w); ok {
					freqs[w] += f
				}
			}
		}
	}

	cands := make([]Candidate, 0, len(freqs))
	for w, f := range freqs {
		d := edlib.OSADamerauLevenshteinDistance(word, w)
		if d == 0 || d > c.opts.MaxDistance {
			continue
		}
		cands = append(cands, Candidate{Word: w, Distance: d, Frequency: f})
	}
	sort.Slice(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		if a.Frequency != b.Frequency {
			return a.Frequency > b.Frequency
		}
		return a.Word < b.Word
	})
	return cands
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
