package lexicon

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/couchbase/vellum"
	"github.com/edsrzf/mmap-go"
	"github.com/golang/snappy"
)

// File is an immutable, mmap'd lexicon.
type File struct {
	id     string
	path   string
	file   *os.File
	data   mmap.MMap
	footer Footer

	langMetaByName map[string]*LangMeta

	mu     sync.RWMutex
	dicts  map[string]*vellum.FST
	words  map[string]*WordIndex
	chunks map[uint64][]Synset
}

// Open opens an existing lexicon file with mmap.
func Open(path, id string) (*File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open lexicon %s: %w", path, err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	if stat.Size() < int64(len(FileMagic)+4+8+8+16) {
		file.Close()
		return nil, fmt.Errorf("lexicon file too small: %s", path)
	}

	data, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to mmap lexicon %s: %w", path, err)
	}

	fail := func(err error) (*File, error) {
		data.Unmap()
		file.Close()
		return nil, err
	}

	if string(data[:len(FileMagic)]) != FileMagic {
		return fail(fmt.Errorf("invalid lexicon magic: %s", path))
	}
	if v := binary.BigEndian.Uint32(data[len(FileMagic):]); v != FileVersion {
		return fail(fmt.Errorf("unsupported lexicon version %d: %s", v, path))
	}

	// Read footer offset and size from end of file
	footerOffset := binary.BigEndian.Uint64(data[len(data)-16 : len(data)-8])
	footerSize := binary.BigEndian.Uint64(data[len(data)-8:])
	if footerOffset+footerSize > uint64(len(data)-16) {
		return fail(fmt.Errorf("corrupt lexicon footer: %s", path))
	}

	var footer Footer
	if err := json.Unmarshal(data[footerOffset:footerOffset+footerSize], &footer); err != nil {
		return fail(fmt.Errorf("failed to parse lexicon footer: %w", err))
	}

	langMetaByName := make(map[string]*LangMeta, len(footer.Languages))
	for i := range footer.Languages {
		langMetaByName[footer.Languages[i].Lang] = &footer.Languages[i]
	}

	return &File{
		id:             id,
		path:           path,
		file:           file,
		data:           data,
		footer:         footer,
		langMetaByName: langMetaByName,
		dicts:          make(map[string]*vellum.FST),
		words:          make(map[string]*WordIndex),
		chunks:         make(map[uint64][]Synset),
	}, nil
}

// ID returns the lexicon ID.
func (f *File) ID() string { return f.id }

// Path returns the lexicon file path.
func (f *File) Path() string { return f.path }

// NumSynsets returns the total number of synsets.
func (f *File) NumSynsets() uint64 { return f.footer.NumSynsets }

// Languages implements Lexicon.
func (f *File) Languages() []string {
	langs := make([]string, len(f.footer.Languages))
	for i, lm := range f.footer.Languages {
		langs[i] = lm.Lang
	}
	return langs
}

// HasLanguage reports whether the file covers lang.
func (f *File) HasLanguage(lang string) bool {
	_, ok := f.langMetaByName[lang]
	return ok
}

// Synonyms implements Lexicon.
func (f *File) Synonyms(word string, pos POS, lang string) ([]string, error) {
	nums, err := f.Lookup(word, pos, lang)
	if err != nil {
		return nil, err
	}
	var lemmas []string
	for _, num := range nums {
		s, err := f.Synset(num)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLookup, err)
		}
		lemmas = append(lemmas, s.Lemmas...)
	}
	return surfaceForms(lemmas), nil
}

// Lookup returns the numbers of the synsets containing word with pos in lang.
func (f *File) Lookup(word string, pos POS, lang string) ([]uint64, error) {
	meta := f.langMetaByName[lang]
	if meta == nil {
		return nil, fmt.Errorf("%w: language %q not available", ErrLookup, lang)
	}
	fst, err := f.dict(lang)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookup, err)
	}

	val, exists, err := fst.Get(DictKey(LemmaKey(word), pos))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookup, err)
	}
	if !exists {
		return nil, nil
	}

	if IsOneHit(val) {
		return []uint64{DecodeOneHit(val)}, nil
	}

	bm, err := DecodeBitmap(f.data[meta.BitmapsOffset+val:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookup, err)
	}
	nums := make([]uint64, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		nums = append(nums, uint64(it.Next()))
	}
	return nums, nil
}

// Synset loads a synset by number from stored chunks.
func (f *File) Synset(num uint64) (Synset, error) {
	if num >= f.footer.NumSynsets {
		return Synset{}, fmt.Errorf("synset %d out of range", num)
	}

	chunk, err := f.chunk(num / ChunkSize)
	if err != nil {
		return Synset{}, err
	}

	inChunk := num % ChunkSize
	if int(inChunk) >= len(chunk) {
		return Synset{}, fmt.Errorf("synset index out of range in chunk")
	}
	return chunk[inChunk], nil
}

// Words implements WordSource.
func (f *File) Words(lang string) (*WordIndex, bool) {
	f.mu.RLock()
	idx, ok := f.words[lang]
	f.mu.RUnlock()
	if ok {
		return idx, true
	}

	meta := f.langMetaByName[lang]
	if meta == nil {
		return nil, false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	// Double-check after acquiring write lock
	if idx, ok := f.words[lang]; ok {
		return idx, true
	}
	if f.words == nil {
		return nil, false
	}
	idx, err := loadWordIndex(f.fstData(meta.WordsOffset))
	if err != nil {
		return nil, false
	}
	f.words[lang] = idx
	return idx, true
}

// dict returns the dictionary FST of a language, loading it lazily.
func (f *File) dict(lang string) (*vellum.FST, error) {
	f.mu.RLock()
	fst, ok := f.dicts[lang]
	f.mu.RUnlock()
	if ok {
		return fst, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if fst, ok := f.dicts[lang]; ok {
		return fst, nil
	}
	if f.dicts == nil {
		return nil, fmt.Errorf("lexicon closed")
	}

	meta := f.langMetaByName[lang]
	fst, err := vellum.Load(f.fstData(meta.DictOffset))
	if err != nil {
		return nil, fmt.Errorf("failed to load dictionary for %s: %w", lang, err)
	}
	f.dicts[lang] = fst
	return fst, nil
}

// fstData returns the FST stored at offset after its 8-byte size prefix.
func (f *File) fstData(offset uint64) []byte {
	size := binary.BigEndian.Uint64(f.data[offset:])
	return f.data[offset+8 : offset+8+size]
}

func (f *File) chunk(idx uint64) ([]Synset, error) {
	f.mu.RLock()
	chunk, ok := f.chunks[idx]
	f.mu.RUnlock()
	if ok {
		return chunk, nil
	}

	if int(idx) >= len(f.footer.ChunkOffsets) {
		return nil, fmt.Errorf("chunk index out of range")
	}
	offset := f.footer.ChunkOffsets[idx]

	chunkLen := binary.BigEndian.Uint32(f.data[offset:])
	compressed := f.data[offset+4 : offset+4+uint64(chunkLen)]

	decompressed, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress chunk: %w", err)
	}
	if err := json.Unmarshal(decompressed, &chunk); err != nil {
		return nil, fmt.Errorf("failed to parse chunk: %w", err)
	}

	f.mu.Lock()
	if f.chunks != nil {
		f.chunks[idx] = chunk
	}
	f.mu.Unlock()
	return chunk, nil
}

// Close releases lexicon resources.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, fst := range f.dicts {
		fst.Close()
	}
	for _, idx := range f.words {
		idx.Close()
	}
	f.dicts = nil
	f.words = nil
	f.chunks = nil

	if f.data != nil {
		f.data.Unmap()
		f.data = nil
	}
	if f.file != nil {
		err := f.file.Close()
		f.file = nil
		return err
	}
	return nil
}
