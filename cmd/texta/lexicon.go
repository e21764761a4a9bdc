package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"harshagw/textanalysis/internal/config"
	"harshagw/textanalysis/internal/host"
	"harshagw/textanalysis/internal/lexicon"
)

func lexiconCommand() *cli.Command {
	langFlag := &cli.StringFlag{
		Name:    "lang",
		Usage:   "Lexicon language (english, en or eng)",
		Value:   "english",
		EnvVars: []string{"TEXTA_SEARCH_LANG"},
	}
	return &cli.Command{
		Name:  "lexicon",
		Usage: "Manage installed wordnet lexicons",
		Subcommands: []*cli.Command{
			{
				Name:      "install",
				Usage:     "Install an Open Multilingual Wordnet tab file",
				ArgsUsage: "<name> <file>",
				Action:    lexiconInstall,
			},
			{
				Name:   "list",
				Usage:  "List installed lexicons",
				Action: lexiconList,
			},
			{
				Name:      "remove",
				Usage:     "Remove an installed lexicon",
				ArgsUsage: "<name>",
				Action:    lexiconRemove,
			},
			{
				Name:      "synonyms",
				Usage:     "Show the synonyms of a word",
				ArgsUsage: "<word>",
				Action:    lexiconSynonyms,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "pos", Value: "y", Usage: "Part of speech code (n v a s r y)"},
					langFlag,
				},
			},
			{
				Name:      "fuzzy",
				Usage:     "Show dictionary words within an edit distance",
				ArgsUsage: "<word>",
				Action:    lexiconFuzzy,
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "distance", Value: 1, Usage: "Maximum edit distance"},
					langFlag,
				},
			},
		},
	}
}

func lexiconInstall(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("usage: lexicon install <name> <file>")
	}
	name, path := c.Args().Get(0), c.Args().Get(1)

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open wordnet data: %w", err)
	}
	defer f.Close()

	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	entry, err := lib.Install(name, f, path)
	if err != nil {
		return err
	}
	fmt.Printf("Installed '%s' (%d synsets, languages %s)\n", entry.Name, entry.Synsets, strings.Join(entry.Languages, " "))
	return nil
}

func lexiconList(c *cli.Context) error {
	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	entries, err := lib.Entries()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No lexicons installed")
		return nil
	}

	rows := make([]host.Row, len(entries))
	for i, e := range entries {
		rows[i] = host.Row{Label: e.Name, Cells: []string{
			strings.Join(e.Languages, " "),
			fmt.Sprint(e.Synsets),
			fmt.Sprint(e.Lemmas),
			e.Installed.Format("2006-01-02 15:04"),
			e.Source,
		}}
	}
	return host.NewTextSink(os.Stdout).Table(host.Table{
		Title:   "Installed Lexicons",
		Corner:  "Name",
		Columns: []string{"Languages", "Synsets", "Lemmas", "Installed", "Source"},
		Rows:    rows,
	})
}

func lexiconRemove(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: lexicon remove <name>")
	}
	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	if err := lib.Remove(c.Args().First()); err != nil {
		return err
	}
	fmt.Printf("Removed '%s'\n", c.Args().First())
	return nil
}

func lexiconSynonyms(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: lexicon synonyms <word>")
	}
	code := c.String("pos")
	if len(code) != 1 {
		return config.Errorf("part of speech must be a single code, got %q", code)
	}
	pos, err := lexicon.ParsePOS(rune(code[0]))
	if err != nil {
		return err
	}
	lang, err := config.NormalizeLexiconLanguage(c.String("lang"))
	if err != nil {
		return err
	}

	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	word := c.Args().First()
	for _, p := range lexicon.Expand(pos) {
		syns, err := lib.Synonyms(word, p, lang)
		if err != nil {
			return err
		}
		if len(syns) > 0 {
			fmt.Printf("%s(%s): %s\n", word, p, strings.Join(syns, ", "))
		}
	}
	return nil
}

func lexiconFuzzy(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: lexicon fuzzy <word>")
	}
	lang, err := config.NormalizeLexiconLanguage(c.String("lang"))
	if err != nil {
		return err
	}

	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	idx, ok := lib.Words(lang)
	if !ok {
		return fmt.Errorf("no dictionary installed for language %s", lang)
	}
	words, err := idx.Fuzzy(strings.ToLower(c.Args().First()), uint8(c.Uint("distance")))
	if err != nil {
		return err
	}
	for _, w := range words {
		n, _ := idx.Frequency(w)
		fmt.Printf("%s\t%d\n", w, n)
	}
	return nil
}
