package sentiment

import (
	"math"
	"strings"
	"unicode"
)

const (
	boostIncr = 0.293
	boostDecr = -0.293

	// capsIncr is added to the magnitude of a shouted word when the rest of
	// the text is not shouted.
	capsIncr  = 0.733
	negScalar = -0.74

	// normAlpha approximates the maximum expected raw sum.
	normAlpha = 15

	exclaimIncr  = 0.292
	questionIncr = 0.18
)

var negations = toSet(
	"aint", "arent", "cannot", "cant", "couldnt", "darent", "didnt", "doesnt",
	"dont", "hadnt", "hasnt", "havent", "isnt", "mightnt", "mustnt", "neither",
	"never", "no", "nobody", "none", "nope", "nor", "not", "nothing", "nowhere",
	"shant", "shouldnt", "wasnt", "werent", "without", "wont", "wouldnt",
	"rarely", "seldom", "despite",
)

var boosters = map[string]float64{
	"absolutely": boostIncr, "amazingly": boostIncr, "awfully": boostIncr,
	"completely": boostIncr, "considerably": boostIncr, "decidedly": boostIncr,
	"deeply": boostIncr, "enormously": boostIncr, "entirely": boostIncr,
	"especially": boostIncr, "exceptionally": boostIncr, "extremely": boostIncr,
	"fully": boostIncr, "greatly": boostIncr, "highly": boostIncr,
	"hugely": boostIncr, "incredibly": boostIncr, "intensely": boostIncr,
	"more": boostIncr, "most": boostIncr, "particularly": boostIncr,
	"purely": boostIncr, "quite": boostIncr, "really": boostIncr,
	"remarkably": boostIncr, "so": boostIncr, "substantially": boostIncr,
	"thoroughly": boostIncr, "totally": boostIncr, "tremendously": boostIncr,
	"truly": boostIncr, "unbelievably": boostIncr, "utterly": boostIncr,
	"very": boostIncr,

	"almost": boostDecr, "barely": boostDecr, "hardly": boostDecr,
	"kinda": boostDecr, "less": boostDecr, "little": boostDecr,
	"marginally": boostDecr, "occasionally": boostDecr, "partly": boostDecr,
	"scarcely": boostDecr, "slightly": boostDecr, "somewhat": boostDecr,
	"sorta": boostDecr,
}

func toSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// Analyzer scores text against a valence lexicon.
type Analyzer struct {
	lex *Lexicon
}

// NewAnalyzer returns an analyzer over lex, or over the built-in lexicon
// when lex is nil.
func NewAnalyzer(lex *Lexicon) *Analyzer {
	if lex == nil {
		lex = DefaultLexicon()
	}
	return &Analyzer{lex: lex}
}

// Lexicon returns the analyzer's lexicon.
func (a *Analyzer) Lexicon() *Lexicon { return a.lex }

// Scores computes the sentiment of text. It returns false when text is
// blank, in which case no score applies.
func (a *Analyzer) Scores(text string) (Scores, bool) {
	text = strings.TrimRightFunc(text, unicode.IsSpace)
	if strings.TrimSpace(text) == "" {
		return Scores{}, false
	}

	tokens := tokenize(text)
	capDiff := capDifferential(tokens)

	sentiments := make([]float64, len(tokens))
	butAt := -1
	for i, tok := range tokens {
		lower := strings.ToLower(tok)
		if lower == "but" && butAt < 0 {
			butAt = i
		}
		if _, ok := boosters[lower]; ok {
			continue
		}
		valence, ok := a.lex.Valence(lower)
		if !ok {
			continue
		}
		if capDiff && isShouted(tok) {
			valence += math.Copysign(capsIncr, valence)
		}

		for j := 1; j <= 3 && i-j >= 0; j++ {
			prev := tokens[i-j]
			prevLower := strings.ToLower(prev)
			if _, known := a.lex.Valence(prevLower); known {
				continue
			}
			s := boost(prev, valence, capDiff)
			switch j {
			case 2:
				s *= 0.95
			case 3:
				s *= 0.9
			}
			valence += s
			if isNegation(prevLower) {
				valence *= negScalar
			}
		}
		sentiments[i] = valence
	}

	if butAt >= 0 {
		for i := range sentiments {
			switch {
			case i < butAt:
				sentiments[i] *= 0.5
			case i > butAt:
				sentiments[i] *= 1.5
			}
		}
	}

	return score(sentiments, punctuationEmphasis(text)), true
}

func score(sentiments []float64, emphasis float64) Scores {
	if len(sentiments) == 0 {
		return Scores{}
	}

	var sum, posSum, negSum, neutral float64
	for _, s := range sentiments {
		sum += s
		switch {
		case s > 0:
			posSum += s + 1
		case s < 0:
			negSum += s - 1
		default:
			neutral++
		}
	}

	switch {
	case sum > 0:
		sum += emphasis
	case sum < 0:
		sum -= emphasis
	}
	compound := sum / math.Sqrt(sum*sum+normAlpha)
	compound = math.Max(-1, math.Min(1, compound))

	switch {
	case posSum > math.Abs(negSum):
		posSum += emphasis
	case posSum < math.Abs(negSum):
		negSum -= emphasis
	}

	total := posSum + math.Abs(negSum) + neutral
	return Scores{
		Neg:      round(math.Abs(negSum/total), 3),
		Neu:      round(math.Abs(neutral/total), 3),
		Pos:      round(math.Abs(posSum/total), 3),
		Compound: round(compound, 4),
	}
}

// boost returns the shift a booster word applies to valence.
func boost(word string, valence float64, capDiff bool) float64 {
	scalar, ok := boosters[strings.ToLower(word)]
	if !ok {
		return 0
	}
	if valence < 0 {
		scalar = -scalar
	}
	if capDiff && isShouted(word) {
		scalar += math.Copysign(capsIncr, valence)
	}
	return scalar
}

func punctuationEmphasis(text string) float64 {
	exclaims := min(strings.Count(text, "!"), 4)
	emphasis := float64(exclaims) * exclaimIncr

	if questions := strings.Count(text, "?"); questions > 1 {
		if questions <= 3 {
			emphasis += float64(questions) * questionIncr
		} else {
			emphasis += 0.96
		}
	}
	return emphasis
}

func isNegation(word string) bool {
	if strings.Contains(word, "n't") {
		return true
	}
	_, ok := negations[strings.ReplaceAll(word, "'", "")]
	return ok
}

// tokenize splits on whitespace, strips surrounding punctuation and drops
// single-character tokens.
func tokenize(text string) []string {
	var tokens []string
	for _, f := range strings.Fields(text) {
		f = strings.TrimFunc(f, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSymbol(r)
		})
		if len([]rune(f)) > 1 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func isShouted(word string) bool {
	hasLetter := false
	for _, r := range word {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

// capDifferential reports whether some, but not all, tokens are shouted.
func capDifferential(tokens []string) bool {
	shouted := 0
	for _, t := range tokens {
		if isShouted(t) {
			shouted++
		}
	}
	return shouted > 0 && shouted < len(tokens)
}

func round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
