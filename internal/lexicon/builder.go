package lexicon

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/RoaringBitmap/roaring"
	"github.com/couchbase/vellum"
	"github.com/golang/snappy"
)

// Builder accumulates synsets before flushing them to an immutable lexicon file.
type Builder struct {
	Synsets []Synset
	langs   map[string]*langEntries
}

type langEntries struct {
	dict  map[string][]uint32 // dict key -> synset numbers
	words map[string]uint64   // single-word lemma -> synset count
}

// NewBuilder creates a new lexicon builder.
func NewBuilder() *Builder {
	return &Builder{langs: make(map[string]*langEntries)}
}

// Add adds a synset and returns its number.
func (b *Builder) Add(s Synset) uint32 {
	num := uint32(len(b.Synsets))
	b.Synsets = append(b.Synsets, s)

	le := b.langs[s.Lang]
	if le == nil {
		le = &langEntries{
			dict:  make(map[string][]uint32),
			words: make(map[string]uint64),
		}
		b.langs[s.Lang] = le
	}

	seen := make(map[string]struct{}, len(s.Lemmas))
	for _, lemma := range s.Lemmas {
		key := LemmaKey(lemma)
		if _, ok := seen[key]; ok || key == "" {
			continue
		}
		seen[key] = struct{}{}
		dk := string(DictKey(key, s.POS))
		le.dict[dk] = append(le.dict[dk], num)
		if IsSingleWord(key) {
			le.words[key]++
		}
	}
	return num
}

// NumSynsets returns the number of synsets added.
func (b *Builder) NumSynsets() int {
	return len(b.Synsets)
}

// Build writes the lexicon to dir/id.lex and returns the path.
func (b *Builder) Build(dir, id string) (string, error) {
	lexPath := filepath.Join(dir, id+".lex")
	tmpPath := lexPath + ".tmp"

	file, err := os.Create(tmpPath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	// Write header
	if _, err := file.WriteString(FileMagic); err != nil {
		return "", err
	}
	if err := binary.Write(file, binary.BigEndian, FileVersion); err != nil {
		return "", err
	}
	if err := binary.Write(file, binary.BigEndian, uint64(len(b.Synsets))); err != nil {
		return "", err
	}

	// Reserve space for the synsets offset
	offsetsPos, _ := file.Seek(0, 1)
	if _, err := file.Write(make([]byte, 8)); err != nil {
		return "", err
	}

	synsetsOffset, _ := file.Seek(0, 1)
	chunkOffsets, err := b.writeSynsets(file)
	if err != nil {
		return "", err
	}

	langs := make([]string, 0, len(b.langs))
	for lang := range b.langs {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	var langsMeta []LangMeta
	for _, lang := range langs {
		meta, err := b.writeLanguage(file, lang, b.langs[lang])
		if err != nil {
			return "", fmt.Errorf("failed to write language %s: %w", lang, err)
		}
		langsMeta = append(langsMeta, meta)
	}

	footerOffset, _ := file.Seek(0, 1)
	footer := Footer{
		SynsetsOffset: uint64(synsetsOffset),
		ChunkOffsets:  chunkOffsets,
		Languages:     langsMeta,
		NumSynsets:    uint64(len(b.Synsets)),
	}
	footerData, err := json.Marshal(footer)
	if err != nil {
		return "", err
	}
	if _, err := file.Write(footerData); err != nil {
		return "", err
	}

	if err := binary.Write(file, binary.BigEndian, uint64(footerOffset)); err != nil {
		return "", err
	}
	if err := binary.Write(file, binary.BigEndian, uint64(len(footerData))); err != nil {
		return "", err
	}

	// Go back and write the actual offset
	if _, err := file.Seek(offsetsPos, 0); err != nil {
		return "", err
	}
	if err := binary.Write(file, binary.BigEndian, uint64(synsetsOffset)); err != nil {
		return "", err
	}

	if err := file.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmpPath, lexPath); err != nil {
		return "", err
	}
	return lexPath, nil
}

// writeSynsets writes chunked, compressed synsets.
func (b *Builder) writeSynsets(file *os.File) ([]uint64, error) {
	var chunkOffsets []uint64

	for i := 0; i < len(b.Synsets); i += ChunkSize {
		end := min(i+ChunkSize, len(b.Synsets))

		chunkData, err := json.Marshal(b.Synsets[i:end])
		if err != nil {
			return nil, err
		}
		compressed := snappy.Encode(nil, chunkData)

		offset, err := file.Seek(0, 1)
		if err != nil {
			return nil, err
		}
		chunkOffsets = append(chunkOffsets, uint64(offset))

		if err := binary.Write(file, binary.BigEndian, uint32(len(compressed))); err != nil {
			return nil, err
		}
		if _, err := file.Write(compressed); err != nil {
			return nil, err
		}
	}

	return chunkOffsets, nil
}

// writeLanguage writes the bitmaps, dictionary FST and words FST of one language.
func (b *Builder) writeLanguage(file *os.File, lang string, le *langEntries) (LangMeta, error) {
	meta := LangMeta{Lang: lang, NumLemmas: uint64(len(le.dict)), NumWords: uint64(len(le.words))}

	keys := make([]string, 0, len(le.dict))
	for key := range le.dict {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	// Bitmaps first, collect offsets
	bitmapsStart, _ := file.Seek(0, 1)
	meta.BitmapsOffset = uint64(bitmapsStart)

	values := make(map[string]uint64, len(keys))
	for _, key := range keys {
		nums := le.dict[key]
		if len(nums) == 1 {
			values[key] = EncodeOneHit(uint64(nums[0]))
			continue
		}

		offset, _ := file.Seek(0, 1)
		values[key] = uint64(offset) - meta.BitmapsOffset

		encoded, err := EncodeBitmap(roaring.BitmapOf(nums...))
		if err != nil {
			return meta, err
		}
		if _, err := file.Write(encoded); err != nil {
			return meta, err
		}
	}

	bitmapsEnd, _ := file.Seek(0, 1)
	meta.BitmapsSize = uint64(bitmapsEnd) - meta.BitmapsOffset

	dictStart, _ := file.Seek(0, 1)
	meta.DictOffset = uint64(dictStart)
	if err := writeFST(file, keys, func(key string) uint64 { return values[key] }); err != nil {
		return meta, err
	}

	words := make([]string, 0, len(le.words))
	for w := range le.words {
		words = append(words, w)
	}
	sort.Strings(words)

	wordsStart, _ := file.Seek(0, 1)
	meta.WordsOffset = uint64(wordsStart)
	if err := writeFST(file, words, func(w string) uint64 { return le.words[w] }); err != nil {
		return meta, err
	}

	return meta, nil
}

// writeFST writes sorted keys as a size-prefixed FST.
func writeFST(file *os.File, keys []string, value func(string) uint64) error {
	data, err := buildFST(keys, value)
	if err != nil {
		return err
	}
	if err := binary.Write(file, binary.BigEndian, uint64(len(data))); err != nil {
		return err
	}
	_, err = file.Write(data)
	return err
}

// buildFST builds an FST in memory. keys must be sorted.
func buildFST(keys []string, value func(string) uint64) ([]byte, error) {
	var buf bytes.Buffer
	builder, err := vellum.New(&buf, nil)
	if err != nil {
		return nil, err
	}
	for _, key := range keys {
		if err := builder.Insert([]byte(key), value(key)); err != nil {
			return nil, err
		}
	}
	if err := builder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
