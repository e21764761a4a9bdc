package sentiment

import (
	"strings"

	"harshagw/textanalysis/internal/config"
)

// Type names one of the four sentiment measures.
type Type int

const (
	Negative Type = iota
	Neutral
	Positive
	Compound
)

// DefaultTypes is the set produced when no types are requested.
var DefaultTypes = []Type{Negative, Neutral, Positive, Compound}

func (t Type) String() string {
	switch t {
	case Negative:
		return "neg"
	case Neutral:
		return "neu"
	case Positive:
		return "pos"
	case Compound:
		return "compound"
	}
	return "unknown"
}

// Label is the descriptive name used for variable labels.
func (t Type) Label() string {
	switch t {
	case Negative:
		return "Negative sentiment"
	case Neutral:
		return "Neutral sentiment"
	case Positive:
		return "Positive sentiment"
	case Compound:
		return "Compound sentiment"
	}
	return "Sentiment"
}

// ParseTypes parses a space-separated list such as "neg neu pos comp".
// "comp" is accepted for compound; an empty list yields DefaultTypes.
func ParseTypes(s string) ([]Type, error) {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 0 {
		return append([]Type(nil), DefaultTypes...), nil
	}

	var types []Type
	seen := make(map[Type]bool)
	for _, f := range fields {
		var t Type
		switch f {
		case "neg":
			t = Negative
		case "neu":
			t = Neutral
		case "pos":
			t = Positive
		case "comp", "compound":
			t = Compound
		default:
			return nil, config.Errorf("invalid sentiment type %q", f)
		}
		if !seen[t] {
			seen[t] = true
			types = append(types, t)
		}
	}
	return types, nil
}

// Scores holds proportions of negative, neutral and positive content and
// a normalized compound score in [-1, 1].
type Scores struct {
	Neg      float64
	Neu      float64
	Pos      float64
	Compound float64
}

// Get returns the score of type t.
func (s Scores) Get(t Type) float64 {
	switch t {
	case Negative:
		return s.Neg
	case Neutral:
		return s.Neu
	case Positive:
		return s.Pos
	default:
		return s.Compound
	}
}

// Select returns the scores for types in order.
func (s Scores) Select(types []Type) []float64 {
	out := make([]float64, len(types))
	for i, t := range types {
		out[i] = s.Get(t)
	}
	return out
}
