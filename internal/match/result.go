package match

import "strconv"

type resultKind int

const (
	emptyResult resultKind = iota
	boolResult
	patternResult
)

// Result is the outcome of matching one text: Empty for blank text, a
// boolean in Any and All mode, or a pattern of '1'/'0' per term.
type Result struct {
	kind    resultKind
	match   bool
	pattern string
}

// Empty is the result for blank text. It is distinct from "no match".
var Empty = Result{}

// IsEmpty reports whether r is the Empty sentinel.
func (r Result) IsEmpty() bool {
	return r.kind == emptyResult
}

// Bool returns the match outcome and whether r is a boolean result.
func (r Result) Bool() (bool, bool) {
	return r.match, r.kind == boolResult
}

// Pattern returns the pattern and whether r is a pattern result.
func (r Result) Pattern() (string, bool) {
	return r.pattern, r.kind == patternResult
}

// Value renders r as a dataset value: "" for Empty, "1"/"0" for booleans
// and the pattern itself for patterns.
func (r Result) Value() string {
	switch r.kind {
	case boolResult:
		if r.match {
			return "1"
		}
		return "0"
	case patternResult:
		return r.pattern
	default:
		return ""
	}
}

func (r Result) String() string {
	switch r.kind {
	case boolResult:
		return strconv.FormatBool(r.match)
	case patternResult:
		return r.pattern
	default:
		return "<empty>"
	}
}
