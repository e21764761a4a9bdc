package terms

import (
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"harshagw/textanalysis/internal/analysis"
	"harshagw/textanalysis/internal/config"
	"harshagw/textanalysis/internal/lexicon"
)

// Compiler turns word lists into synonym-expanded terms.
type Compiler struct {
	lex      lexicon.Lexicon
	language string
	lower    cases.Caser
	logger   *slog.Logger
}

type Option func(*Compiler)

// WithLogger sets the logger used for lookup failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCompiler returns a compiler expanding synonyms from lex in language, a
// language name or code. A nil lex disables expansion: every slot matches
// its literal word only.
func NewCompiler(lex lexicon.Lexicon, lang string, opts ...Option) (*Compiler, error) {
	tag, err := config.ResolveLanguage(lang)
	if err != nil {
		return nil, err
	}
	code := config.ISO3(tag)
	if lex != nil && !slices.Contains(lex.Languages(), code) {
		return nil, config.Errorf("lexicon language %q is not available", lang)
	}

	c := &Compiler{
		lex:      lex,
		language: code,
		lower:    cases.Lower(tag),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Language returns the ISO 639-3 code synonyms are looked up in.
func (c *Compiler) Language() string {
	return c.language
}

// Compile parses words (with inline "(codes)" annotations, or codes given
// separately in posp) into terms in input order. Compilation stops at the
// first error.
func (c *Compiler) Compile(words []string, posp []string) ([]*Term, error) {
	raw, codes, err := splitAnnotations(words, posp)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, config.Errorf("a word search was specified, but no word list was given")
	}

	terms := make([]*Term, 0, len(raw))
	for i, text := range raw {
		t, err := c.compileTerm(text, codes[i])
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	return terms, nil
}

func (c *Compiler) compileTerm(text, code string) (*Term, error) {
	text = c.lower.String(norm.NFC.String(text))

	var kind Kind
	switch strings.Count(text, "-") {
	case 0:
		kind = SingleWord
	case 1:
		kind = Bigram
	case 2:
		kind = Trigram
	default:
		return nil, config.Errorf("invalid word list: %s", text)
	}

	words := strings.Split(text, "-")
	for _, w := range words {
		if w == "" {
			return nil, config.Errorf("invalid word list: %s", text)
		}
	}

	code = strings.ToLower(code)
	if len(code) > kind.Arity() {
		return nil, config.Errorf("part of speech %q has more codes than %s has words", code, text)
	}
	code += strings.Repeat(string(lexicon.None), kind.Arity()-len(code))

	t := &Term{Kind: kind, Text: text, Slots: make([]Slot, len(words))}
	for i, w := range words {
		pos, err := lexicon.ParsePOS(rune(code[i]))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", text, err)
		}
		t.Slots[i] = Slot{Word: w, POS: pos, Words: c.expand(w, pos)}
	}
	t.Variants = product(t.Slots)
	t.compounds = flatten(t.Variants)
	return t, nil
}

// expand returns word and its synonyms for every part of speech pos covers.
// Lookup failures leave the literal word only.
func (c *Compiler) expand(word string, pos lexicon.POS) []string {
	set := map[string]struct{}{word: {}}
	parts := lexicon.Expand(pos)
	if len(parts) > 0 && c.lex == nil {
		c.logger.Warn("no lexicon available, matching literal word only", "word", word)
		parts = nil
	}
	for _, p := range parts {
		syns, err := c.lex.Synonyms(word, p, c.language)
		if err != nil {
			c.logger.Warn("synonym lookup failed", "word", word, "pos", p.String(),
				"language", c.language, "error", err)
			continue
		}
		for _, s := range syns {
			set[c.lower.String(norm.NFC.String(s))] = struct{}{}
		}
	}

	out := make([]string, 0, len(set))
	for w := range set {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// product builds the cartesian product of the slot word sets.
func product(slots []Slot) map[analysis.Gram]struct{} {
	combos := [][]string{nil}
	for _, s := range slots {
		next := make([][]string, 0, len(combos)*len(s.Words))
		for _, prefix := range combos {
			for _, w := range s.Words {
				combo := append(append([]string(nil), prefix...), w)
				next = append(next, combo)
			}
		}
		combos = next
	}

	variants := make(map[analysis.Gram]struct{}, len(combos))
	for _, combo := range combos {
		variants[analysis.NewGram(combo...)] = struct{}{}
	}
	return variants
}

// Criteria renders a word list the way it is recorded with search results.
func Criteria(words []string) string {
	return "criteria: " + strings.ReplaceAll(strings.Join(words, " "), " - ", "-")
}

// SynonymRow is one line of the synonym report.
type SynonymRow struct {
	Label    string
	Synonyms string
}

// SynonymTable lists each term with its variants.
func SynonymTable(terms []*Term) []SynonymRow {
	rows := make([]SynonymRow, len(terms))
	for i, t := range terms {
		rows[i] = SynonymRow{Label: t.Label(), Synonyms: strings.Join(t.VariantList(), ", ")}
	}
	return rows
}
