package sentiment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"harshagw/textanalysis/internal/config"
)

func TestScores_Blank(t *testing.T) {
	a := NewAnalyzer(nil)
	for _, text := range []string{"", "   ", "\t\n"} {
		_, ok := a.Scores(text)
		assert.False(t, ok, "text %q", text)
	}
}

func TestScores_SingleWord(t *testing.T) {
	s, ok := NewAnalyzer(nil).Scores("good")
	require.True(t, ok)
	assert.InDelta(t, 0.4404, s.Compound, 1e-9)
	assert.Equal(t, 1.0, s.Pos)
	assert.Equal(t, 0.0, s.Neg)
	assert.Equal(t, 0.0, s.Neu)
}

func TestScores_Neutral(t *testing.T) {
	s, ok := NewAnalyzer(nil).Scores("the table is in the kitchen")
	require.True(t, ok)
	assert.Equal(t, Scores{Neu: 1}, s)

	s, ok = NewAnalyzer(nil).Scores("!!!")
	require.True(t, ok)
	assert.Equal(t, Scores{}, s)
}

func TestScores_Heuristics(t *testing.T) {
	a := NewAnalyzer(nil)
	compound := func(text string) float64 {
		t.Helper()
		s, ok := a.Scores(text)
		require.True(t, ok)
		return s.Compound
	}

	good := compound("good")
	assert.Less(t, compound("not good"), 0.0, "negation flips polarity")
	assert.Less(t, compound("isn't good"), 0.0, "contracted negation")
	assert.Greater(t, compound("very good"), good, "booster")
	assert.Less(t, compound("slightly good"), good, "dampener")
	assert.Greater(t, compound("GOOD day"), compound("good day"), "caps emphasis")
	assert.Equal(t, compound("GOOD"), good, "caps need contrast")
	assert.Greater(t, compound("good!!!"), good, "exclamation")
	assert.Greater(t, compound("bad but good"), 0.0, "clause after but dominates")
	assert.Less(t, compound("good but bad"), 0.0)
	assert.Less(t, compound("very bad"), compound("bad"))
}

func TestScores_ProportionsSumToOne(t *testing.T) {
	s, ok := NewAnalyzer(nil).Scores("The food was great but the service was terrible.")
	require.True(t, ok)
	assert.InDelta(t, 1.0, s.Neg+s.Neu+s.Pos, 0.002)
	assert.Greater(t, s.Pos, 0.0)
	assert.Greater(t, s.Neg, 0.0)
}

func TestLexicon_AddScores(t *testing.T) {
	lex := DefaultLexicon()
	base := lex.Len()
	require.Greater(t, base, 100)

	n, err := lex.AddScores(strings.NewReader("# custom\nZesty 2.5\n\ngood -1\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, base+1, lex.Len())

	v, ok := lex.Valence("zesty")
	assert.True(t, ok)
	assert.Equal(t, 2.5, v)
	v, _ = lex.Valence("good")
	assert.Equal(t, -1.0, v)

	s, _ := NewAnalyzer(lex).Scores("good")
	assert.Less(t, s.Compound, 0.0)

	// The built-in lexicon is not shared between copies.
	v, _ = DefaultLexicon().Valence("good")
	assert.Equal(t, 1.9, v)
}

func TestLexicon_AddScoresInvalid(t *testing.T) {
	for _, in := range []string{"word\n", "word 1 2\n", "word high\n"} {
		_, err := DefaultLexicon().AddScores(strings.NewReader(in))
		assert.True(t, config.IsConfiguration(err), "input %q", in)
	}
}

func TestLexicon_Entries(t *testing.T) {
	lex := &Lexicon{words: map[string]float64{}}
	_, err := lex.AddScores(strings.NewReader("b 1\na -2\nc 0.5\n"))
	require.NoError(t, err)
	assert.Equal(t, []Entry{{"a", -2}, {"b", 1}, {"c", 0.5}}, lex.Entries())
}

func TestParseTypes(t *testing.T) {
	types, err := ParseTypes("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTypes, types)

	types, err = ParseTypes("comp POS comp")
	require.NoError(t, err)
	assert.Equal(t, []Type{Compound, Positive}, types)

	_, err = ParseTypes("neg happy")
	assert.True(t, config.IsConfiguration(err))
}

func TestScores_Select(t *testing.T) {
	s := Scores{Neg: 0.1, Neu: 0.2, Pos: 0.7, Compound: 0.5}
	assert.Equal(t, []float64{0.5, 0.1}, s.Select([]Type{Compound, Negative}))
	assert.Equal(t, "compound", Compound.String())
}
