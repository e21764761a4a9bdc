package command

// Default suffixes of generated variables.
const (
	SpellingSuffix = "cor"
	SearchSuffix   = "ser"
	StemsSuffix    = "stem"
)

// DefaultFrequencyCount is the number of items listed per frequency table.
const DefaultFrequencyCount = 10

// Request is one invocation of the text analysis command.
type Request struct {
	// Variables are the string variables to analyze.
	Variables []string
	// Overwrite lets generated variables replace existing ones.
	Overwrite bool

	StopwordsLang string
	// StopwordsFile replaces the built-in stopword list.
	StopwordsFile string
	StemmerLang   string

	Spelling    *SpellingTask
	WordScores  *WordScoresTask
	Frequencies *FrequencyTask
	Sentiment   *SentimentTask
	Search      *SearchTask
	Lexicon     *LexiconTask
	Stems       *StemsTask
}

// SpellingTask writes a spelling-corrected copy of each variable.
type SpellingTask struct {
	Suffix       string
	ExcludeNames bool
	// ExtraDict is a text file whose words extend the dictionary.
	ExtraDict string
	// NamesFile replaces the built-in given names left uncorrected.
	NamesFile string
	// Language of the dictionary taken from the lexicon.
	Language string
}

// WordScoresTask adds "word score" lines to the sentiment lexicon.
type WordScoresTask struct {
	File string
}

// FrequencyTask tabulates words, bigrams and trigrams.
type FrequencyTask struct {
	Stem  bool
	Count int
}

// SentimentTask writes one numeric variable per score type.
type SentimentTask struct {
	// Types holds codes among neg, neu, pos and comp; empty means all.
	Types []string
	// Suffixes default to the type codes.
	Suffixes []string
}

// SearchTask flags cases containing search terms.
type SearchTask struct {
	Words []string
	// POS holds external part-of-speech annotations.
	POS  []string
	Mode string
	// Suffix of the result variable.
	Suffix string
	Stem   bool
	// Language of the synonym lookups.
	Language string
	// ShowSynonyms emits the table of terms and their synonyms.
	ShowSynonyms bool
}

// LexiconTask exports the sentiment lexicon as a new dataset.
type LexiconTask struct {
	Dataset string
}

// StemsTask writes a stemmed copy of each variable.
type StemsTask struct {
	Suffix string
}

func (r *Request) hasAction() bool {
	return r.Spelling != nil || r.WordScores != nil || r.Frequencies != nil ||
		r.Sentiment != nil || r.Search != nil || r.Lexicon != nil || r.Stems != nil
}

// needsVariables reports whether a requested task reads the variable list.
func (r *Request) needsVariables() bool {
	return r.Spelling != nil || r.Frequencies != nil || r.Sentiment != nil ||
		r.Search != nil || r.Stems != nil
}
