package match

import (
	"strings"

	"harshagw/textanalysis/internal/config"
)

// Mode is how per-term results are combined.
type Mode int

const (
	Any Mode = iota + 1
	All
	Pattern
)

func (m Mode) String() string {
	switch m {
	case Any:
		return "any"
	case All:
		return "all"
	case Pattern:
		return "pattern"
	default:
		return "unknown"
	}
}

// ParseMode parses "any"/"anywords", "all"/"allwords" or "pattern",
// ignoring case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "any", "anywords":
		return Any, nil
	case "all", "allwords":
		return All, nil
	case "pattern":
		return Pattern, nil
	}
	return 0, config.Errorf("invalid search mode %q", s)
}
