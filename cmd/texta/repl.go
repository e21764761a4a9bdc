package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/urfave/cli/v2"

	"harshagw/textanalysis/internal/command"
	"harshagw/textanalysis/internal/config"
	"harshagw/textanalysis/internal/host"
	"harshagw/textanalysis/internal/library"
	"harshagw/textanalysis/internal/lexicon"
)

type REPL struct {
	ctx     context.Context
	lib     *library.Library
	data    *host.Memory
	path    string
	handler *command.Handler
	out     *host.TextSink

	overwrite bool
	lang      string
}

var replCommands = []prompt.Suggest{
	{Text: "vars", Description: "List variables"},
	{Text: "show", Description: "Print values of a variable"},
	{Text: "weight", Description: "Set or clear the weight variable"},
	{Text: "overwrite", Description: "Toggle overwriting of existing variables"},
	{Text: "spell", Description: "Spelling-correct a variable"},
	{Text: "freq", Description: "Word, bigram and trigram frequencies"},
	{Text: "sentiment", Description: "Sentiment scores"},
	{Text: "scores", Description: "Add word scores to the sentiment lexicon"},
	{Text: "search", Description: "Search for words and their synonyms"},
	{Text: "stems", Description: "Stem a variable"},
	{Text: "synonyms", Description: "Show synonyms of a word"},
	{Text: "save", Description: "Write the dataset"},
	{Text: "help", Description: "Show help"},
	{Text: "quit", Description: "Exit"},
}

func replCommand(c *cli.Context) error {
	path := c.String("data")
	data, err := readDataset(path)
	if err != nil {
		return err
	}
	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	fmt.Println("Text Analysis REPL")
	fmt.Println()
	printHelp()
	fmt.Println()

	r := &REPL{
		ctx:     c.Context,
		lib:     lib,
		data:    data,
		path:    path,
		handler: command.NewHandler(),
		out:     host.NewTextSink(os.Stdout),
		lang:    "eng",
	}
	fmt.Printf("Dataset loaded from %s (%d cases, %d variables)\n", path, data.NumCases(), len(data.Variables()))
	fmt.Printf("Lexicon languages: %s\n\n", strings.Join(or(lib.Languages(), []string{"none"}), " "))

	p := prompt.New(
		r.executor,
		r.completer,
		prompt.OptionPrefix("texta >> "),
		prompt.OptionTitle("texta"),
	)
	p.Run()
	return nil
}

func or(v, fallback []string) []string {
	if len(v) == 0 {
		return fallback
	}
	return v
}

func printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  vars                              - List variables")
	fmt.Println("  show <var> [n]                    - Print the first n values of a variable")
	fmt.Println("  weight [var]                      - Set the weight variable, or clear it")
	fmt.Println("  overwrite                         - Toggle overwriting of existing variables")
	fmt.Println("  spell <var> [dictfile]            - Spelling-correct into <var>_cor")
	fmt.Println("  freq <var> [count] [--stem]       - Word, bigram and trigram frequencies")
	fmt.Println("  sentiment <var> [neg neu pos comp] - Sentiment scores into <var>_<type>")
	fmt.Println("  scores <file>                     - Add \"word score\" lines to the sentiment lexicon")
	fmt.Println("  search <var> <mode> <term[:pos]>...  - Search (mode anywords, allwords or pattern)")
	fmt.Println("  stems <var>                       - Stem into <var>_stem")
	fmt.Println("  synonyms <word> [pos]             - Show synonyms of a word")
	fmt.Println("  save [path]                       - Write the dataset")
	fmt.Println("  help                              - Show this help")
	fmt.Println("  quit                              - Exit")
}

func (r *REPL) executor(input string) {
	input = strings.TrimSpace(input)
	if input == "" {
		return
	}

	parts := strings.Fields(input)
	cmd := parts[0]

	switch cmd {
	case "vars":
		r.cmdVars()
	case "show":
		r.cmdShow(parts[1:])
	case "weight":
		r.cmdWeight(parts[1:])
	case "overwrite":
		r.overwrite = !r.overwrite
		fmt.Printf("Overwrite %v\n", r.overwrite)
	case "spell":
		r.cmdSpell(parts[1:])
	case "freq":
		r.cmdFreq(parts[1:])
	case "sentiment":
		r.cmdSentiment(parts[1:])
	case "scores":
		r.cmdScores(parts[1:])
	case "search":
		r.cmdSearch(parts[1:])
	case "stems":
		r.cmdStems(parts[1:])
	case "synonyms":
		r.cmdSynonyms(parts[1:])
	case "save":
		r.cmdSave(parts[1:])
	case "help":
		printHelp()
	case "quit", "exit":
		fmt.Println("Goodbye!")
		r.lib.Close()
		os.Exit(0)
	default:
		fmt.Printf("Unknown command: %s\n", cmd)
	}
}

func (r *REPL) completer(d prompt.Document) []prompt.Suggest {
	before := d.TextBeforeCursor()
	word := d.GetWordBeforeCursor()
	if !strings.Contains(before, " ") {
		return prompt.FilterHasPrefix(replCommands, word, true)
	}

	fields := strings.Fields(before)
	if len(fields) == 1 || (len(fields) == 2 && word != "") {
		if fields[0] == "synonyms" {
			return r.wordSuggestions(word)
		}
		var vars []prompt.Suggest
		for _, v := range r.data.Variables() {
			vars = append(vars, prompt.Suggest{Text: v.Name, Description: v.Type.String()})
		}
		return prompt.FilterHasPrefix(vars, word, true)
	}
	if fields[0] == "search" && word != "" {
		return r.wordSuggestions(word)
	}
	return nil
}

func (r *REPL) wordSuggestions(prefix string) []prompt.Suggest {
	if prefix == "" {
		return nil
	}
	idx, ok := r.lib.Words(r.lang)
	if !ok {
		return nil
	}
	words, err := idx.Prefix(strings.ToLower(prefix), 10)
	if err != nil {
		return nil
	}
	s := make([]prompt.Suggest, len(words))
	for i, w := range words {
		s[i] = prompt.Suggest{Text: w}
	}
	return s
}

// run executes req and reports errors the way every other command does.
func (r *REPL) run(req *command.Request) {
	req.Overwrite = r.overwrite
	env := newEnv(r.lib, r.data, r.out)
	env.Creator = host.CSVDir(".")
	if _, err := r.handler.Run(r.ctx, req, env); err != nil {
		fmt.Printf("Error: %v\n", err)
	}
}

func (r *REPL) cmdVars() {
	vars := r.data.Variables()
	fmt.Printf("%d variables (%d cases):\n", len(vars), r.data.NumCases())
	for _, v := range vars {
		marker := ""
		if strings.EqualFold(v.Name, r.data.WeightVariable()) {
			marker = " [weight]"
		}
		if crit, ok := v.Attributes["search"]; ok {
			marker += " search=" + crit
		}
		fmt.Printf("  %s: %s(%d)%s\n", v.Name, v.Type, v.Width, marker)
	}
}

func (r *REPL) cmdShow(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: show <var> [n]")
		return
	}
	v, ok := r.data.Variable(args[0])
	if !ok {
		fmt.Printf("Unknown variable: %s\n", args[0])
		return
	}
	limit := 10
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			fmt.Printf("Invalid count: %s\n", args[1])
			return
		}
		limit = n
	}

	cur, err := r.data.Cases(v.Name)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer cur.Close()
	for i := 1; i <= limit; i++ {
		row, err := cur.Next()
		if err != nil {
			break
		}
		fmt.Printf("  %d: %s\n", i, row[0].Format(v.Type))
	}
}

func (r *REPL) cmdWeight(args []string) {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	if err := r.data.SetWeight(name); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if name == "" {
		fmt.Println("Weighting off")
	} else {
		fmt.Printf("Weighting by %s\n", name)
	}
}

func (r *REPL) cmdSpell(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: spell <var> [dictfile]")
		return
	}
	task := &command.SpellingTask{Suffix: command.SpellingSuffix, ExcludeNames: true}
	if len(args) > 1 {
		task.ExtraDict = args[1]
	}
	r.run(&command.Request{Variables: args[:1], Spelling: task})
}

func (r *REPL) cmdFreq(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: freq <var> [count] [--stem]")
		return
	}
	task := &command.FrequencyTask{Count: command.DefaultFrequencyCount}
	for _, a := range args[1:] {
		if a == "--stem" {
			task.Stem = true
			continue
		}
		n, err := strconv.Atoi(a)
		if err != nil {
			fmt.Printf("Invalid count: %s\n", a)
			return
		}
		task.Count = n
	}
	r.run(&command.Request{Variables: args[:1], Frequencies: task})
}

func (r *REPL) cmdSentiment(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: sentiment <var> [neg neu pos comp]")
		return
	}
	r.run(&command.Request{
		Variables: args[:1],
		Sentiment: &command.SentimentTask{Types: args[1:]},
	})
}

func (r *REPL) cmdScores(args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: scores <file>")
		return
	}
	r.run(&command.Request{WordScores: &command.WordScoresTask{File: args[0]}})
}

func (r *REPL) cmdSearch(args []string) {
	if len(args) < 3 {
		fmt.Println("Usage: search <var> <mode> <term[:pos]>...")
		return
	}
	task := &command.SearchTask{
		Mode:         args[1],
		Suffix:       command.SearchSuffix,
		Language:     r.lang,
		ShowSynonyms: true,
	}
	for _, t := range args[2:] {
		word, pos, _ := strings.Cut(t, ":")
		if pos == "" {
			pos = "y"
		}
		task.Words = append(task.Words, word)
		task.POS = append(task.POS, pos)
	}
	r.run(&command.Request{Variables: args[:1], Search: task})
}

func (r *REPL) cmdStems(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: stems <var>")
		return
	}
	r.run(&command.Request{Variables: args[:1], Stems: &command.StemsTask{Suffix: command.StemsSuffix}})
}

func (r *REPL) cmdSynonyms(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: synonyms <word> [pos]")
		return
	}
	pos := lexicon.Any
	if len(args) > 1 {
		if len(args[1]) != 1 {
			fmt.Printf("Error: %v\n", config.Errorf("part of speech must be a single code, got %q", args[1]))
			return
		}
		p, err := lexicon.ParsePOS(rune(args[1][0]))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		pos = p
	}

	found := false
	for _, p := range lexicon.Expand(pos) {
		syns, err := r.lib.Synonyms(args[0], p, r.lang)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(syns) > 0 {
			found = true
			fmt.Printf("  %s(%s): %s\n", args[0], p, strings.Join(syns, ", "))
		}
	}
	if !found {
		fmt.Printf("No synonyms for %s\n", args[0])
	}
}

func (r *REPL) cmdSave(args []string) {
	path := r.path
	if len(args) > 0 {
		path = args[0]
	}
	if err := writeDataset(path, r.data); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Saved %d cases to %s\n", r.data.NumCases(), path)
}
