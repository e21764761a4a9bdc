package lexicon

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/RoaringBitmap/roaring"
)

func loadSample(t *testing.T) []Synset {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", "wn-sample.tab"))
	if err != nil {
		t.Fatalf("open sample: %v", err)
	}
	defer f.Close()
	synsets, err := ReadOMW(f)
	if err != nil {
		t.Fatalf("ReadOMW error: %v", err)
	}
	return synsets
}

// Helper to build and open a lexicon file from the sample data
func makeFile(t *testing.T) *File {
	t.Helper()
	b := NewBuilder()
	for _, s := range loadSample(t) {
		b.Add(s)
	}
	path, err := b.Build(t.TempDir(), "sample")
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	f, err := Open(path, "sample")
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestReadOMW(t *testing.T) {
	synsets := loadSample(t)
	if len(synsets) != 15 {
		t.Fatalf("expected 15 synsets, got %d", len(synsets))
	}
	first := synsets[0]
	if first.ID != "02084071-n" || first.POS != Noun || first.Lang != "eng" {
		t.Errorf("unexpected first synset %+v", first)
	}
	if !reflect.DeepEqual(first.Lemmas, []string{"dog", "domestic_dog", "Canis_familiaris"}) {
		t.Errorf("definition line must be skipped, got %v", first.Lemmas)
	}
}

func TestReadOMW_Malformed(t *testing.T) {
	for _, in := range []string{
		"02084071-n\teng:lemma\n",
		"02084071\teng:lemma\tdog\n",
		"02084071-q\teng:lemma\tdog\n",
	} {
		if _, err := ReadOMW(strings.NewReader(in)); err == nil {
			t.Errorf("expected error for %q", in)
		}
	}
}

func TestParsePOS(t *testing.T) {
	for _, c := range "xnvasryXN" {
		if _, err := ParsePOS(c); err != nil {
			t.Errorf("ParsePOS(%q) error: %v", c, err)
		}
	}
	if _, err := ParsePOS('q'); err == nil {
		t.Error("expected error for q")
	}
}

func TestExpand(t *testing.T) {
	if got := Expand(None); len(got) != 0 {
		t.Errorf("Expand(None) = %v", got)
	}
	if got := Expand(Any); !reflect.DeepEqual(got, []POS{Noun, Verb, Adjective, Satellite, Adverb}) {
		t.Errorf("Expand(Any) = %v", got)
	}
	if got := Expand(Adjective); !reflect.DeepEqual(got, []POS{Adjective, Satellite}) {
		t.Errorf("Expand(Adjective) = %v", got)
	}
	if got := Expand(Verb); !reflect.DeepEqual(got, []POS{Verb}) {
		t.Errorf("Expand(Verb) = %v", got)
	}
}

func TestSurfaceForm(t *testing.T) {
	if got := SurfaceForm("Canis_familiaris"); got != "canis-familiaris" {
		t.Errorf("got %q", got)
	}
	if got := LemmaKey("Ice Cream"); got != "ice_cream" {
		t.Errorf("got %q", got)
	}
}

// synonymCases runs against every Lexicon implementation.
var synonymCases = []struct {
	word string
	pos  POS
	lang string
	want []string
}{
	{"dog", Noun, "eng", []string{"canis-familiaris", "dog", "domestic-dog", "frump"}},
	{"dog", Verb, "eng", []string{"chase", "chase-after", "dog", "go-after", "trail"}},
	{"happy", Satellite, "eng", []string{"felicitous", "happy"}},
	{"happy", Adjective, "eng", []string{"happy"}},
	{"Ice-Cream", Noun, "eng", []string{"ice-cream", "icecream"}},
	{"perro", Noun, "spa", []string{"can", "perro"}},
	{"dog", Adverb, "eng", nil},
	{"unknownword", Noun, "eng", nil},
}

func testSynonyms(t *testing.T, lex Lexicon) {
	t.Helper()
	for _, tc := range synonymCases {
		got, err := lex.Synonyms(tc.word, tc.pos, tc.lang)
		if err != nil {
			t.Errorf("Synonyms(%s, %s, %s) error: %v", tc.word, tc.pos, tc.lang, err)
			continue
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Synonyms(%s, %s, %s) = %v, want %v", tc.word, tc.pos, tc.lang, got, tc.want)
		}
	}

	if _, err := lex.Synonyms("dog", Noun, "deu"); !errors.Is(err, ErrLookup) {
		t.Errorf("expected ErrLookup for missing language, got %v", err)
	}
	if got := lex.Languages(); !reflect.DeepEqual(got, []string{"eng", "spa"}) {
		t.Errorf("Languages() = %v", got)
	}
}

func testWords(t *testing.T, src WordSource) {
	t.Helper()
	idx, ok := src.Words("eng")
	if !ok {
		t.Fatal("expected english words")
	}
	if n, ok := idx.Frequency("dog"); !ok || n != 3 {
		t.Errorf("Frequency(dog) = %d, %v; want 3", n, ok)
	}
	if n, _ := idx.Frequency("direction"); n != 2 {
		t.Errorf("Frequency(direction) = %d; want 2", n)
	}
	if idx.Contains("ice_cream") {
		t.Error("multi-word lemmas must not be spelling words")
	}

	fuzzy, err := idx.Fuzzy("dgo", 1)
	if err != nil {
		t.Fatalf("Fuzzy error: %v", err)
	}
	if !slices.Contains(fuzzy, "dog") || !slices.Contains(fuzzy, "go") {
		t.Errorf("Fuzzy(dgo, 1) = %v", fuzzy)
	}
	if _, err := idx.Fuzzy("dog", 3); err == nil {
		t.Error("expected error above max fuzziness")
	}

	prefix, err := idx.Prefix("tr", 0)
	if err != nil {
		t.Fatalf("Prefix error: %v", err)
	}
	if !reflect.DeepEqual(prefix, []string{"trail", "travel"}) {
		t.Errorf("Prefix(tr) = %v", prefix)
	}
	if limited, _ := idx.Prefix("", 2); len(limited) != 2 {
		t.Errorf("expected limit of 2, got %v", limited)
	}

	if _, ok := src.Words("deu"); ok {
		t.Error("expected no words for missing language")
	}
}

func TestMemory(t *testing.T) {
	m := NewMemory(loadSample(t))
	if m.NumSynsets() != 15 {
		t.Errorf("NumSynsets() = %d", m.NumSynsets())
	}
	testSynonyms(t, m)
	testWords(t, m)
}

func TestFile(t *testing.T) {
	f := makeFile(t)
	if f.NumSynsets() != 15 {
		t.Errorf("NumSynsets() = %d", f.NumSynsets())
	}
	if !f.HasLanguage("spa") || f.HasLanguage("deu") {
		t.Error("HasLanguage mismatch")
	}
	testSynonyms(t, f)
	testWords(t, f)
}

func TestFile_Synset(t *testing.T) {
	f := makeFile(t)
	nums, err := f.Lookup("cat", Noun, "eng")
	if err != nil || len(nums) != 1 {
		t.Fatalf("Lookup(cat) = %v, %v", nums, err)
	}
	s, err := f.Synset(nums[0])
	if err != nil {
		t.Fatalf("Synset error: %v", err)
	}
	if s.ID != "02121620-n" || !reflect.DeepEqual(s.Lemmas, []string{"cat", "true_cat"}) {
		t.Errorf("unexpected synset %+v", s)
	}
	if _, err := f.Synset(99); err == nil {
		t.Error("expected out of range error")
	}
}

func TestFile_ManyChunks(t *testing.T) {
	b := NewBuilder()
	for i := 0; i < ChunkSize*2+10; i++ {
		b.Add(Synset{ID: "x", POS: Noun, Lang: "eng", Lemmas: []string{"common", "w" + string(rune('a'+i%26))}})
	}
	path, err := b.Build(t.TempDir(), "many")
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	f, err := Open(path, "many")
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	defer f.Close()

	nums, err := f.Lookup("common", Noun, "eng")
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if len(nums) != ChunkSize*2+10 {
		t.Errorf("expected %d synsets, got %d", ChunkSize*2+10, len(nums))
	}
	last, err := f.Synset(uint64(ChunkSize*2 + 9))
	if err != nil || last.Lemmas[0] != "common" {
		t.Errorf("last synset %+v, %v", last, err)
	}
}

func TestOpen_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.lex")
	if err := os.WriteFile(path, make([]byte, 64), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path, "bad"); err == nil {
		t.Error("expected invalid magic error")
	}
	if _, err := Open(filepath.Join(dir, "missing.lex"), "missing"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestOneHit(t *testing.T) {
	v := EncodeOneHit(42)
	if !IsOneHit(v) || DecodeOneHit(v) != 42 {
		t.Errorf("one-hit round trip failed: %x", v)
	}
	if IsOneHit(42) {
		t.Error("plain offset must not be one-hit")
	}
}

func TestBitmapCodec(t *testing.T) {
	encoded, err := EncodeBitmap(roaring.BitmapOf(1, 5, 1000))
	if err != nil {
		t.Fatalf("EncodeBitmap error: %v", err)
	}
	bm, err := DecodeBitmap(encoded)
	if err != nil {
		t.Fatalf("DecodeBitmap error: %v", err)
	}
	if !reflect.DeepEqual(bm.ToArray(), []uint32{1, 5, 1000}) {
		t.Errorf("got %v", bm.ToArray())
	}
	if _, err := DecodeBitmap(encoded[:3]); err == nil {
		t.Error("expected truncation error")
	}
}

func TestPrefixSuccessor(t *testing.T) {
	if got := prefixSuccessor([]byte("ab")); string(got) != "ac" {
		t.Errorf("got %q", got)
	}
	if got := prefixSuccessor([]byte{0xff}); got != nil {
		t.Errorf("got %v", got)
	}
}
