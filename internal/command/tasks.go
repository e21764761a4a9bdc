package command

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"harshagw/textanalysis/internal/analysis"
	"harshagw/textanalysis/internal/config"
	"harshagw/textanalysis/internal/freq"
	"harshagw/textanalysis/internal/host"
	"harshagw/textanalysis/internal/lexicon"
	"harshagw/textanalysis/internal/match"
	"harshagw/textanalysis/internal/sentiment"
	"harshagw/textanalysis/internal/spell"
	"harshagw/textanalysis/internal/terms"
)

// outputs names one output variable per requested variable.
func (inv *invocation) outputs(suffix string, define func(src host.Variable, name string) host.Variable) ([]host.Variable, error) {
	out := make([]host.Variable, len(inv.req.Variables))
	for i, v := range inv.req.Variables {
		name, err := inv.names.name(v, suffix)
		if err != nil {
			return nil, err
		}
		out[i] = define(inv.variable(v), name)
	}
	return out, nil
}

func (inv *invocation) prepareSpelling() (*task, error) {
	t := inv.req.Spelling
	if t == nil {
		return nil, nil
	}
	tag, err := config.ResolveLanguage(inv.settings.DictionaryLanguage)
	if err != nil {
		return nil, err
	}

	var dicts []spell.Dictionary
	if inv.env.Words != nil {
		if idx, ok := inv.env.Words.Words(inv.settings.DictionaryLanguage); ok {
			dicts = append(dicts, idx)
		}
	}
	if t.ExtraDict != "" {
		idx, err := loadDictionary(t.ExtraDict)
		if err != nil {
			return nil, err
		}
		dicts = append(dicts, idx)
	}

	var names map[string]struct{}
	if t.NamesFile != "" {
		if names, err = loadNames(t.NamesFile); err != nil {
			return nil, err
		}
	}

	corrector, err := spell.New(spell.Options{
		Dictionaries: dicts,
		Stopwords:    inv.stopwords,
		Names:        names,
		ExcludeNames: t.ExcludeNames,
		Language:     tag,
		Logger:       inv.h.logger,
	})
	if err != nil {
		return nil, err
	}

	outputs, err := inv.outputs(or(t.Suffix, SpellingSuffix), func(src host.Variable, name string) host.Variable {
		return host.Variable{
			Name:  name,
			Label: "Spelling corrected " + src.Name,
			Type:  host.String,
			Width: src.Width + 10,
		}
	})
	if err != nil {
		return nil, err
	}

	return &task{name: "spelling", run: func() error {
		return inv.transform(outputs, func(text string) host.Value {
			return host.Text(corrector.CorrectText(text))
		})
	}}, nil
}

func loadDictionary(path string) (*lexicon.WordIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, config.Errorf("extra spelling dictionary not found: %s", path)
	}
	defer f.Close()
	return spell.LoadWords(f)
}

func loadNames(path string) (map[string]struct{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, config.Errorf("names file not found: %s", path)
	}
	defer f.Close()
	return spell.LoadNames(f)
}

func (inv *invocation) prepareWordScores() (*task, error) {
	t := inv.req.WordScores
	if t == nil {
		return nil, nil
	}
	if t.File == "" {
		return nil, config.Errorf("a word scores file was requested, but no file name was given")
	}
	if _, err := os.Stat(t.File); err != nil {
		return nil, config.Errorf("word scores file not found: %s", t.File)
	}

	return &task{name: "word scores", run: func() error {
		f, err := os.Open(t.File)
		if err != nil {
			return err
		}
		defer f.Close()

		n, err := inv.h.sentiment.Lexicon().AddScores(f)
		if err != nil {
			return err
		}
		inv.h.logger.Info("added word scores", "file", t.File, "count", n)
		return inv.env.Output.Note(fmt.Sprintf("Words added to lexicon from %s: %d", t.File, n))
	}}, nil
}

func (inv *invocation) prepareFrequencies() (*task, error) {
	t := inv.req.Frequencies
	if t == nil {
		return nil, nil
	}
	count := t.Count
	if count <= 0 {
		count = DefaultFrequencyCount
	}
	var stemmer analysis.Stemmer
	if t.Stem {
		stemmer = inv.stemmer
	}

	return &task{name: "frequencies", run: func() error {
		weightVar := inv.env.Data.WeightVariable()
		for _, v := range inv.req.Variables {
			tab := freq.NewTabulator(freq.Options{Stemmer: stemmer, Stopwords: inv.stopwords})
			names := []string{v}
			if weightVar != "" {
				names = append(names, weightVar)
			}
			err := inv.eachCase(names, func(values []host.Value) error {
				weight := 1.0
				if weightVar != "" {
					weight = 0
					if !values[1].Missing {
						weight = values[1].Num
					}
				}
				tab.Add(values[0].Str, weight)
				return nil
			})
			if err != nil {
				return err
			}
			if err := inv.frequencyTables(inv.variable(v), tab, count, weightVar != "", t.Stem); err != nil {
				return err
			}
		}
		return nil
	}}, nil
}

func (inv *invocation) frequencyTables(v host.Variable, tab *freq.Tabulator, count int, weighted, stemmed bool) error {
	out := inv.env.Output
	if tab.CasesWithText() == 0 {
		return out.Note(fmt.Sprintf("Variable %s has no text", v.Name))
	}
	words := tab.Words(count)
	if len(words) == 0 {
		if weighted {
			return out.Note("The weighted counts are zero")
		}
		return out.Note(fmt.Sprintf("No words were found for variable %s", v.Name))
	}

	footnotes := []string{"Case and stopwords are ignored"}
	if stemmed {
		footnotes = append(footnotes, fmt.Sprintf("Words have been stemmed using stemmer %s", inv.stemmer.Language()))
	} else {
		footnotes = append(footnotes, "Words have not been stemmed")
	}
	footnotes = append(footnotes,
		fmt.Sprintf("%d most common items", count),
		fmt.Sprintf("%d cases have text", tab.CasesWithText()))
	if weighted {
		footnotes = append(footnotes, "Frequencies are based on rounded weights")
	}

	table := frequencyTable("Word", v, words)
	table.Footnotes = footnotes
	if err := out.Table(table); err != nil {
		return err
	}

	for _, g := range []struct {
		kind  string
		items []freq.Item
	}{
		{"Bigram", tab.Bigrams(count)},
		{"Trigram", tab.Trigrams(count)},
	} {
		var err error
		if len(g.items) == 0 {
			err = out.Note(fmt.Sprintf("No %ss were found for variable %s", strings.ToLower(g.kind), v.Name))
		} else {
			err = out.Table(frequencyTable(g.kind, v, g.items))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func frequencyTable(kind string, v host.Variable, items []freq.Item) host.Table {
	title := fmt.Sprintf("%s Frequencies for %s", kind, v.Name)
	if v.Label != "" {
		title += ": " + v.Label
	}
	rows := make([]host.Row, len(items))
	for i, item := range items {
		rows[i] = host.Row{Label: item.Text, Cells: []string{
			fmt.Sprint(item.Count),
			fmt.Sprint(item.Cases),
		}}
	}
	return host.Table{
		Title:   title,
		Corner:  kind,
		Columns: []string{kind + " Frequency", "Cases"},
		Rows:    rows,
	}
}

func (inv *invocation) prepareSentiment() (*task, error) {
	t := inv.req.Sentiment
	if t == nil {
		return nil, nil
	}
	types, err := sentiment.ParseTypes(strings.Join(t.Types, " "))
	if err != nil {
		return nil, err
	}
	suffixes := t.Suffixes
	if len(suffixes) == 0 {
		for _, st := range types {
			suffixes = append(suffixes, sentimentSuffix(st))
		}
	}
	if len(suffixes) != len(types) {
		return nil, config.Errorf("number of sentiment suffixes (%d) is different from number of sentiment types (%d)", len(suffixes), len(types))
	}

	// Names are allocated per variable, then per type.
	outputs := make([][]host.Variable, len(inv.req.Variables))
	for i, v := range inv.req.Variables {
		for j, st := range types {
			name, err := inv.names.name(v, suffixes[j])
			if err != nil {
				return nil, err
			}
			outputs[i] = append(outputs[i], host.Variable{
				Name:  name,
				Label: fmt.Sprintf("%s for %s", st.Label(), v),
				Type:  host.Numeric,
			})
		}
	}

	return &task{name: "sentiment", run: func() error {
		for i, v := range inv.req.Variables {
			columns := make([][]host.Value, len(types))
			err := inv.eachCase([]string{v}, func(values []host.Value) error {
				scores, ok := inv.h.sentiment.Scores(values[0].Str)
				for j, st := range types {
					val := host.Missing
					if ok {
						val = host.Number(scores.Get(st))
					}
					columns[j] = append(columns[j], val)
				}
				return nil
			})
			if err != nil {
				return err
			}
			for j := range types {
				if err := inv.env.Data.Put(outputs[i][j], columns[j]); err != nil {
					return err
				}
			}
		}
		return nil
	}}, nil
}

func sentimentSuffix(t sentiment.Type) string {
	if t == sentiment.Compound {
		return "comp"
	}
	return t.String()
}

func (inv *invocation) prepareSearch() (*task, error) {
	t := inv.req.Search
	if t == nil {
		return nil, nil
	}
	if len(t.Words) == 0 {
		return nil, config.Errorf("a word search was specified, but no word list was given")
	}
	mode, err := match.ParseMode(or(t.Mode, "anywords"))
	if err != nil {
		return nil, err
	}

	compiler, err := terms.NewCompiler(inv.env.Lexicon, inv.settings.LexiconLanguage, terms.WithLogger(inv.h.logger))
	if err != nil {
		return nil, err
	}
	list, err := compiler.Compile(t.Words, t.POS)
	if err != nil {
		return nil, err
	}

	tag, err := config.ResolveLanguage(inv.settings.LexiconLanguage)
	if err != nil {
		return nil, err
	}
	var stemmer analysis.Stemmer
	if t.Stem {
		stemmer = inv.stemmer
	}
	matcher, err := match.NewMatcher(list, match.Config{
		Mode:      mode,
		Stem:      t.Stem,
		Stemmer:   stemmer,
		Tokenizer: analysis.NewSimpleFor(tag),
	})
	if err != nil {
		return nil, err
	}

	criteria := terms.Criteria(t.Words)
	outputs, err := inv.outputs(or(t.Suffix, SearchSuffix), func(src host.Variable, name string) host.Variable {
		v := host.Variable{
			Name:       name,
			Label:      "Search results for " + src.Name,
			Type:       host.Numeric,
			Attributes: map[string]string{"search": criteria},
		}
		if mode == match.Pattern {
			v.Type = host.String
			v.Width = matcher.Width()
		}
		return v
	})
	if err != nil {
		return nil, err
	}

	return &task{name: "search", run: func() error {
		if t.ShowSynonyms {
			if err := inv.env.Output.Table(synonymTable(list)); err != nil {
				return err
			}
		}
		err := inv.transform(outputs, func(text string) host.Value {
			r := matcher.Match(text)
			if mode == match.Pattern {
				return host.Text(r.Value())
			}
			hit, ok := r.Bool()
			switch {
			case !ok:
				return host.Missing
			case hit:
				return host.Number(1)
			default:
				return host.Number(0)
			}
		})
		stats := matcher.CacheStats()
		inv.h.logger.Debug("search finished", "mode", mode, "terms", len(list),
			"windows", stats.Entries, "hits", stats.Hits, "misses", stats.Misses)
		return err
	}}, nil
}

func synonymTable(list []*terms.Term) host.Table {
	syn := terms.SynonymTable(list)
	rows := make([]host.Row, len(syn))
	for i, r := range syn {
		rows[i] = host.Row{Label: r.Label, Cells: []string{r.Synonyms}}
	}
	return host.Table{
		Title:   "Search Terms and Synonyms",
		Corner:  "Term",
		Columns: []string{"Synonyms"},
		Rows:    rows,
	}
}

func (inv *invocation) prepareLexicon() (*task, error) {
	t := inv.req.Lexicon
	if t == nil {
		return nil, nil
	}
	if t.Dataset == "" {
		return nil, config.Errorf("no dataset name was specified for the lexicon dataset")
	}
	if !host.ValidName(t.Dataset) {
		return nil, config.Errorf("invalid lexicon dataset name %q", t.Dataset)
	}
	if inv.env.Creator == nil {
		return nil, config.Errorf("exporting the lexicon requires a place to create datasets")
	}

	return &task{name: "lexicon", run: func() error {
		entries := inv.h.sentiment.Lexicon().Entries()
		rows := make([][]host.Value, len(entries))
		width := 0
		for i, e := range entries {
			rows[i] = []host.Value{host.Text(e.Word), host.Number(e.Score)}
			width = max(width, len(e.Word))
		}
		vars := []host.Variable{
			{Name: "word", Type: host.String, Width: width},
			{Name: "score", Type: host.Numeric},
		}
		if err := inv.env.Creator.Create(t.Dataset, vars, rows); err != nil {
			return err
		}
		return inv.env.Output.Note(fmt.Sprintf("Lexicon dataset %s created with %d words", t.Dataset, len(entries)))
	}}, nil
}

func (inv *invocation) prepareStems() (*task, error) {
	t := inv.req.Stems
	if t == nil {
		return nil, nil
	}
	outputs, err := inv.outputs(or(t.Suffix, StemsSuffix), func(src host.Variable, name string) host.Variable {
		return host.Variable{
			Name:  name,
			Label: "Stemmed " + src.Name,
			Type:  host.String,
			Width: src.Width,
		}
	})
	if err != nil {
		return nil, err
	}

	tokenizer := analysis.NewSimple()
	return &task{name: "stems", run: func() error {
		return inv.transform(outputs, func(text string) host.Value {
			if strings.TrimRightFunc(text, unicode.IsSpace) == "" {
				return host.Text("")
			}
			stems := analysis.StemAll(inv.stemmer, tokenizer.Words(text))
			return host.Text(strings.Join(stems, " "))
		})
	}}, nil
}
