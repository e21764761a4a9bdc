package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ReadOMW reads synsets from an Open Multilingual Wordnet tab file. Each
// data line is "offset-pos<TAB>lang:lemma<TAB>lemma"; other line types
// (definitions, examples) and '#' comments are skipped. Synsets are
// returned in the order their first lemma appears.
func ReadOMW(r io.Reader) ([]Synset, error) {
	var synsets []Synset
	index := make(map[string]int)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			return nil, fmt.Errorf("line %d: expected 3 tab-separated fields, got %d", lineNo, len(fields))
		}

		lang, kind, ok := strings.Cut(fields[1], ":")
		if !ok || kind != "lemma" {
			continue
		}

		id := strings.TrimSpace(fields[0])
		dash := strings.LastIndexByte(id, '-')
		if dash < 0 || dash != len(id)-2 {
			return nil, fmt.Errorf("line %d: malformed synset id %q", lineNo, id)
		}
		pos, err := ParsePOS(rune(id[dash+1]))
		if err != nil || !pos.Wordnet() {
			return nil, fmt.Errorf("line %d: invalid part of speech in synset id %q", lineNo, id)
		}

		lemma := strings.TrimSpace(fields[2])
		if lemma == "" {
			continue
		}

		key := lang + "\x00" + id
		i, ok := index[key]
		if !ok {
			i = len(synsets)
			index[key] = i
			synsets = append(synsets, Synset{ID: id, POS: pos, Lang: lang})
		}
		synsets[i].Lemmas = append(synsets[i].Lemmas, lemma)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read wordnet data: %w", err)
	}
	return synsets, nil
}
