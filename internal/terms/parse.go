package terms

import (
	"regexp"
	"strings"

	"harshagw/textanalysis/internal/config"
)

// sentinel separates terms while annotations are extracted. It cannot occur
// in a word list.
const sentinel = "\x1f"

var (
	annotationGroup = regexp.MustCompile(`\(([^()]*)\)`)
	annotatedTerm   = regexp.MustCompile(`^([^()]*)\(([^()]*)\)$`)
)

// errUnbalanced is the message for term/annotation count mismatches.
const errUnbalanced = "missing part of speech or unclosed parenthesis"

// joinTokens joins raw tokens with the sentinel. Tokens a command parser
// splits off ("-", "(y)", ")") are glued back onto their neighbour.
func joinTokens(words []string) string {
	var b strings.Builder
	var piece string
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		glue := piece != "" && (strings.HasPrefix(w, "-") ||
			strings.HasPrefix(w, "(") ||
			strings.HasPrefix(w, ")") ||
			strings.HasSuffix(piece, "-") ||
			strings.Count(piece, "(") > strings.Count(piece, ")"))
		if glue {
			piece += w
			b.WriteString(w)
			continue
		}
		if piece != "" {
			b.WriteString(sentinel)
		}
		piece = w
		b.WriteString(w)
	}
	return b.String()
}

// splitAnnotations separates the terms of a word list from their part of
// speech codes. posp is the external code list; inline "(codes)" groups and
// posp are mutually exclusive. An inline group must close its term.
func splitAnnotations(words, posp []string) ([]string, []string, error) {
	joined := joinTokens(words)
	inline := annotationGroup.MatchString(joined)
	if inline && len(nonEmpty(posp)) > 0 {
		return nil, nil, config.Errorf("part of speech given both inline and as a separate list")
	}

	var terms, codes []string
	for _, piece := range strings.Split(joined, sentinel) {
		if piece = strings.TrimSpace(piece); piece == "" {
			continue
		}
		if !strings.ContainsAny(piece, "()") {
			terms = append(terms, piece)
			continue
		}
		m := annotatedTerm.FindStringSubmatch(piece)
		if m == nil {
			return nil, nil, config.Errorf(errUnbalanced)
		}
		if strings.TrimSpace(m[1]) == "" {
			return nil, nil, config.Errorf("part of speech %q does not follow a word", piece)
		}
		terms = append(terms, strings.TrimSpace(m[1]))
		codes = append(codes, strings.Join(strings.Fields(m[2]), ""))
	}

	if !inline {
		codes = nonEmpty(posp)
	}
	switch {
	case len(codes) == 0:
		codes = make([]string, len(terms))
		for i := range codes {
			codes[i] = "x"
		}
	case !inline && len(codes) == 1 && len(terms) > 1:
		for len(codes) < len(terms) {
			codes = append(codes, codes[0])
		}
	}

	if len(terms) != len(codes) {
		return nil, nil, config.Errorf(errUnbalanced)
	}
	return terms, codes, nil
}

func nonEmpty(items []string) []string {
	var out []string
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
