package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"harshagw/textanalysis/internal/command"
	"harshagw/textanalysis/internal/host"
	"harshagw/textanalysis/internal/library"
)

func runCommand() *cli.Command {
	return &cli.Command{
		Name:   "run",
		Usage:  "Run text analysis tasks over variables of a CSV dataset",
		Action: runAction,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "data", Aliases: []string{"d"}, Usage: "CSV dataset to analyze", Required: true},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Where to write the dataset (defaults to --data)"},
			&cli.StringFlag{Name: "datasets-dir", Usage: "Directory for created datasets (defaults to the output directory)"},
			&cli.StringSliceFlag{Name: "variables", Aliases: []string{"v"}, Usage: "String variables to analyze"},
			&cli.StringFlag{Name: "weight", Usage: "Numeric case weight variable"},
			&cli.BoolFlag{Name: "overwrite", Usage: "Allow generated variables to replace existing ones"},
			&cli.StringFlag{Name: "stopwords-lang", Value: "english", EnvVars: []string{"TEXTA_STOPWORDS_LANG"}, Usage: "Stopword list language or none"},
			&cli.StringFlag{Name: "stopwords-file", EnvVars: []string{"TEXTA_STOPWORDS_FILE"}, Usage: "File of stopwords replacing the built-in list"},
			&cli.StringFlag{Name: "stemmer-lang", Value: "english", EnvVars: []string{"TEXTA_STEMMER_LANG"}, Usage: "Snowball stemmer language"},

			&cli.BoolFlag{Name: "spelling", Usage: "Write spelling-corrected variables"},
			&cli.StringFlag{Name: "spelling-suffix", Value: command.SpellingSuffix},
			&cli.BoolFlag{Name: "exclude-names", Value: true, Usage: "Leave given names uncorrected"},
			&cli.StringFlag{Name: "extra-dict", Usage: "Text file of additional correctly spelled words"},
			&cli.StringFlag{Name: "names-file", Usage: "Text file of names replacing the built-in list"},
			&cli.StringFlag{Name: "dict-language", Value: "english", Usage: "Language of the spelling dictionary"},

			&cli.BoolFlag{Name: "frequencies", Usage: "Tabulate word, bigram and trigram frequencies"},
			&cli.BoolFlag{Name: "freq-stem", Usage: "Stem words before counting"},
			&cli.IntFlag{Name: "freq-count", Value: command.DefaultFrequencyCount, Usage: "Number of items per table"},

			&cli.StringFlag{Name: "word-scores", Usage: "File of \"word score\" lines added to the sentiment lexicon"},
			&cli.BoolFlag{Name: "sentiment", Usage: "Write sentiment score variables"},
			&cli.StringFlag{Name: "sentiment-types", Usage: "Space separated types among neg neu pos comp"},
			&cli.StringFlag{Name: "sentiment-suffixes", Usage: "Space separated suffixes, one per type"},

			&cli.StringFlag{Name: "search", Usage: "Space separated words, bigrams and trigrams to search for"},
			&cli.StringFlag{Name: "search-pos", Usage: "Space separated part-of-speech codes, one per term"},
			&cli.StringFlag{Name: "search-mode", Value: "anywords", Usage: "anywords, allwords or pattern"},
			&cli.StringFlag{Name: "search-suffix", Value: command.SearchSuffix},
			&cli.BoolFlag{Name: "search-stem", Usage: "Stem the text before searching"},
			&cli.StringFlag{Name: "search-language", Value: "english", EnvVars: []string{"TEXTA_SEARCH_LANG"}, Usage: "Language of synonym lookups"},
			&cli.BoolFlag{Name: "show-synonyms", Usage: "Display the search terms with their synonyms"},

			&cli.StringFlag{Name: "export-lexicon", Usage: "Name of a dataset to create from the sentiment lexicon"},

			&cli.BoolFlag{Name: "stems", Usage: "Write stemmed variables"},
			&cli.StringFlag{Name: "stems-suffix", Value: command.StemsSuffix},
		},
	}
}

// requestFromFlags translates command line flags into a request.
func requestFromFlags(c *cli.Context) *command.Request {
	req := &command.Request{
		Variables:     c.StringSlice("variables"),
		Overwrite:     c.Bool("overwrite"),
		StopwordsLang: c.String("stopwords-lang"),
		StopwordsFile: c.String("stopwords-file"),
		StemmerLang:   c.String("stemmer-lang"),
	}
	if c.Bool("spelling") {
		req.Spelling = &command.SpellingTask{
			Suffix:       c.String("spelling-suffix"),
			ExcludeNames: c.Bool("exclude-names"),
			ExtraDict:    c.String("extra-dict"),
			NamesFile:    c.String("names-file"),
			Language:     c.String("dict-language"),
		}
	}
	if c.IsSet("word-scores") {
		req.WordScores = &command.WordScoresTask{File: c.String("word-scores")}
	}
	if c.Bool("frequencies") {
		req.Frequencies = &command.FrequencyTask{Stem: c.Bool("freq-stem"), Count: c.Int("freq-count")}
	}
	if c.Bool("sentiment") {
		req.Sentiment = &command.SentimentTask{
			Types:    strings.Fields(c.String("sentiment-types")),
			Suffixes: strings.Fields(c.String("sentiment-suffixes")),
		}
	}
	if c.IsSet("search") {
		req.Search = &command.SearchTask{
			Words:        strings.Fields(c.String("search")),
			POS:          strings.Fields(c.String("search-pos")),
			Mode:         c.String("search-mode"),
			Suffix:       c.String("search-suffix"),
			Stem:         c.Bool("search-stem"),
			Language:     c.String("search-language"),
			ShowSynonyms: c.Bool("show-synonyms"),
		}
	}
	if c.IsSet("export-lexicon") {
		req.Lexicon = &command.LexiconTask{Dataset: c.String("export-lexicon")}
	}
	if c.Bool("stems") {
		req.Stems = &command.StemsTask{Suffix: c.String("stems-suffix")}
	}
	return req
}

func runAction(c *cli.Context) error {
	dataPath := c.String("data")
	data, err := readDataset(dataPath)
	if err != nil {
		return err
	}
	if err := data.SetWeight(c.String("weight")); err != nil {
		return err
	}

	outPath := c.String("out")
	if outPath == "" {
		outPath = dataPath
	}
	datasetsDir := c.String("datasets-dir")
	if datasetsDir == "" {
		datasetsDir = filepath.Dir(outPath)
	}

	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	env := newEnv(lib, data, host.NewTextSink(os.Stdout))
	env.Creator = host.CSVDir(datasetsDir)

	report, err := command.NewHandler().Run(c.Context, requestFromFlags(c), env)
	if err != nil {
		return err
	}
	if len(report.Variables) == 0 {
		return nil
	}
	if err := writeDataset(outPath, data); err != nil {
		return err
	}
	slog.Info("dataset written", "path", outPath, "variables", len(report.Variables))
	return nil
}

// newEnv wires the library into a command environment. An empty library
// provides no synonyms instead of rejecting every language.
func newEnv(lib *library.Library, data host.Dataset, out host.TableSink) command.Env {
	env := command.Env{Data: data, Output: out, Words: lib}
	if len(lib.Languages()) > 0 {
		env.Lexicon = lib
	} else {
		slog.Warn("no lexicons installed; search terms will not be expanded with synonyms")
	}
	return env
}

func readDataset(path string) (*host.Memory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()
	return host.ReadCSV(f)
}

// writeDataset replaces path atomically.
func writeDataset(path string, data *host.Memory) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create dataset: %w", err)
	}
	if err := data.WriteCSV(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to write dataset: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
