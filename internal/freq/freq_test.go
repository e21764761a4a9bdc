package freq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"harshagw/textanalysis/internal/analysis"
)

func englishStopwords(t *testing.T) *analysis.Stopwords {
	t.Helper()
	sw, err := analysis.NewStopwords("english")
	require.NoError(t, err)
	return sw
}

func TestTabulator(t *testing.T) {
	tab := NewTabulator(Options{Stopwords: englishStopwords(t)})
	assert.True(t, tab.Add("The cat sat on the mat. The cat ran.", 1))
	assert.True(t, tab.Add("Cat cat cat", 2))
	assert.False(t, tab.Add("   ", 1))

	assert.Equal(t, 2, tab.CasesWithText())
	assert.True(t, tab.Weighted())

	assert.Equal(t, []Item{
		{Text: "cat", Count: 8, Cases: 2},
		{Text: "mat", Count: 1, Cases: 1},
		{Text: "ran", Count: 1, Cases: 1},
		{Text: "sat", Count: 1, Cases: 1},
	}, tab.Words(0))

	// "cat cat" repeats a word; "mat cat" would span two sentences.
	assert.Equal(t, []Item{
		{Text: "cat ran", Count: 1, Cases: 1},
		{Text: "cat sat", Count: 1, Cases: 1},
		{Text: "sat mat", Count: 1, Cases: 1},
	}, tab.Bigrams(0))
	assert.Equal(t, []Item{{Text: "cat sat mat", Count: 1, Cases: 1}}, tab.Trigrams(10))

	top := tab.Words(2)
	require.Len(t, top, 2)
	assert.Equal(t, "cat", top[0].Text)
	assert.Equal(t, "mat", top[1].Text)

	assert.Equal(t, []uint32{0, 1}, tab.CasesContaining("cat").ToArray())
	assert.Equal(t, []uint32{0}, tab.CasesContaining("cat sat").ToArray())
	assert.True(t, tab.CasesContaining("dog").IsEmpty())
}

func TestTabulator_NoStopwords(t *testing.T) {
	tab := NewTabulator(Options{})
	tab.Add("the cat", 1)
	assert.Equal(t, []Item{{"cat", 1, 1}, {"the", 1, 1}}, tab.Words(0))
	assert.False(t, tab.Weighted())
}

func TestTabulator_NonAlphaDropped(t *testing.T) {
	tab := NewTabulator(Options{})
	tab.Add("route 66 is open 24x7", 1)
	assert.Equal(t, []Item{{"is", 1, 1}, {"open", 1, 1}, {"route", 1, 1}}, tab.Words(0))
}

func TestTabulator_Stemmed(t *testing.T) {
	stemmer, err := analysis.NewSnowball("english")
	require.NoError(t, err)

	tab := NewTabulator(Options{Stemmer: stemmer})
	tab.Add("running runs", 1)
	assert.Equal(t, []Item{{"run", 2, 1}}, tab.Words(0))
	assert.Empty(t, tab.Bigrams(0))
}

func TestTabulator_ZeroWeight(t *testing.T) {
	tab := NewTabulator(Options{})
	assert.True(t, tab.Add("some text", 0.2))
	assert.Equal(t, 1, tab.CasesWithText())
	assert.Empty(t, tab.Words(0))
}

func TestRoundWeight(t *testing.T) {
	assert.Equal(t, uint64(2), RoundWeight(2.5))
	assert.Equal(t, uint64(4), RoundWeight(3.5))
	assert.Equal(t, uint64(1), RoundWeight(1.4))
	assert.Equal(t, uint64(0), RoundWeight(-3))
	assert.Equal(t, uint64(0), RoundWeight(0.5))
}
