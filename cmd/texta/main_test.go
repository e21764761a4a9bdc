package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"harshagw/textanalysis/internal/command"
	"harshagw/textanalysis/internal/library"
	"harshagw/textanalysis/internal/lexicon"
)

func captureRequest(t *testing.T, args ...string) *command.Request {
	t.Helper()
	var req *command.Request
	cmd := runCommand()
	cmd.Action = func(c *cli.Context) error {
		req = requestFromFlags(c)
		return nil
	}
	app := &cli.App{Name: "texta", Commands: []*cli.Command{cmd}}
	require.NoError(t, app.Run(append([]string{"texta", "run", "--data", "x.csv"}, args...)))
	require.NotNil(t, req)
	return req
}

func TestRunCommandFlags(t *testing.T) {
	t.Run("data is required", func(t *testing.T) {
		err := newApp().Run([]string{"texta", "run"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "data")
	})

	t.Run("invalid log level", func(t *testing.T) {
		err := newApp().Run([]string{"texta", "--log-level", "loud", "run", "--data", "x.csv"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("no tasks", func(t *testing.T) {
		req := captureRequest(t, "--variables", "comment")
		assert.Equal(t, []string{"comment"}, req.Variables)
		assert.Equal(t, "english", req.StopwordsLang)
		assert.Equal(t, "english", req.StemmerLang)
		assert.Nil(t, req.Spelling)
		assert.Nil(t, req.Frequencies)
		assert.Nil(t, req.Sentiment)
		assert.Nil(t, req.Search)
		assert.Nil(t, req.Lexicon)
		assert.Nil(t, req.Stems)
		assert.Nil(t, req.WordScores)
	})

	t.Run("all tasks", func(t *testing.T) {
		req := captureRequest(t,
			"--variables", "a", "--variables", "b",
			"--overwrite",
			"--spelling", "--extra-dict", "words.txt",
			"--frequencies", "--freq-count", "5", "--freq-stem",
			"--sentiment", "--sentiment-types", "pos comp", "--sentiment-suffixes", "p c",
			"--search", "dog big cat", "--search-pos", "n a", "--search-mode", "pattern",
			"--export-lexicon", "lex",
			"--stems",
			"--word-scores", "scores.txt",
		)
		assert.Equal(t, []string{"a", "b"}, req.Variables)
		assert.True(t, req.Overwrite)

		require.NotNil(t, req.Spelling)
		assert.Equal(t, command.SpellingSuffix, req.Spelling.Suffix)
		assert.True(t, req.Spelling.ExcludeNames)
		assert.Equal(t, "words.txt", req.Spelling.ExtraDict)

		require.NotNil(t, req.Frequencies)
		assert.Equal(t, 5, req.Frequencies.Count)
		assert.True(t, req.Frequencies.Stem)

		require.NotNil(t, req.Sentiment)
		assert.Equal(t, []string{"pos", "comp"}, req.Sentiment.Types)
		assert.Equal(t, []string{"p", "c"}, req.Sentiment.Suffixes)

		require.NotNil(t, req.Search)
		assert.Equal(t, []string{"dog", "big", "cat"}, req.Search.Words)
		assert.Equal(t, []string{"n", "a"}, req.Search.POS)
		assert.Equal(t, "pattern", req.Search.Mode)
		assert.Equal(t, command.SearchSuffix, req.Search.Suffix)

		require.NotNil(t, req.Lexicon)
		assert.Equal(t, "lex", req.Lexicon.Dataset)
		require.NotNil(t, req.Stems)
		assert.Equal(t, command.StemsSuffix, req.Stems.Suffix)
		require.NotNil(t, req.WordScores)
		assert.Equal(t, "scores.txt", req.WordScores.File)
	})
}

func TestRunStems(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(data, []byte("id,comment\n1,Running dogs\n2,\n"), 0o644))

	err := newApp().Run([]string{
		"texta", "--library", filepath.Join(dir, "lib"),
		"run", "--data", data, "--variables", "comment", "--stems",
	})
	require.NoError(t, err)

	out, err := os.ReadFile(data)
	require.NoError(t, err)
	assert.Equal(t, "id,comment,comment_stem\n1,Running dogs,run dog\n2,,\n", string(out))
}

func TestRunConfigurationErrorKeepsFile(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "data.csv")
	original := "id,comment\n1,good\n"
	require.NoError(t, os.WriteFile(data, []byte(original), 0o644))

	err := newApp().Run([]string{
		"texta", "--library", filepath.Join(dir, "lib"),
		"run", "--data", data, "--variables", "missing", "--sentiment",
	})
	require.Error(t, err)

	out, err := os.ReadFile(data)
	require.NoError(t, err)
	assert.Equal(t, original, string(out))
}

func TestLexiconInstall(t *testing.T) {
	dir := t.TempDir()
	libDir := filepath.Join(dir, "lib")
	sample := filepath.Join("..", "..", "internal", "lexicon", "testdata", "wn-sample.tab")

	app := newApp()
	require.NoError(t, app.Run([]string{"texta", "--library", libDir, "lexicon", "install", "sample", sample}))
	require.NoError(t, newApp().Run([]string{"texta", "--library", libDir, "lexicon", "list"}))
	require.NoError(t, newApp().Run([]string{"texta", "--library", libDir, "lexicon", "synonyms", "--pos", "n", "dog"}))
	require.NoError(t, newApp().Run([]string{"texta", "--library", libDir, "lexicon", "fuzzy", "dgo"}))

	lib, err := library.Open(library.DefaultConfig(libDir))
	require.NoError(t, err)
	syns, err := lib.Synonyms("dog", lexicon.Noun, "eng")
	require.NoError(t, err)
	assert.Contains(t, syns, "domestic-dog")
	require.NoError(t, lib.Close())

	require.NoError(t, newApp().Run([]string{"texta", "--library", libDir, "lexicon", "remove", "sample"}))
	lib, err = library.Open(library.DefaultConfig(libDir))
	require.NoError(t, err)
	defer lib.Close()
	entries, err := lib.Entries()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLexiconArgs(t *testing.T) {
	libDir := filepath.Join(t.TempDir(), "lib")
	err := newApp().Run([]string{"texta", "--library", libDir, "lexicon", "remove"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage")

	err = newApp().Run([]string{"texta", "--library", libDir, "lexicon", "synonyms", "--pos", "q", "dog"})
	require.Error(t, err)
}
