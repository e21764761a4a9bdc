package analysis

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/text/language"

	"harshagw/textanalysis/internal/config"
)

func TestSimple_Analyze(t *testing.T) {
	a := NewSimple()
	tokens := a.Analyze("The Quick, brown fox!")

	want := []TokenPosition{
		{Token: "the", Position: 0},
		{Token: "quick", Position: 1},
		{Token: "brown", Position: 2},
		{Token: "fox", Position: 3},
	}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("got %v, want %v", tokens, want)
	}
}

func TestSimple_Words(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"   ", []string{}},
		{"I have a cat and a dog", []string{"i", "have", "a", "cat", "and", "a", "dog"}},
		{"hello-world 42", []string{"hello", "world", "42"}},
		{"Don't stop", []string{"don't", "stop"}},
		{"Café au lait", []string{"café", "au", "lait"}},
	}
	a := NewSimple()
	for _, tt := range tests {
		got := a.Words(tt.in)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Words(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSimple_LanguageAwareLowercase(t *testing.T) {
	a := NewSimpleFor(language.Turkish)
	got := a.Words("İSTANBUL")
	if len(got) != 1 || got[0] != "istanbul" {
		t.Errorf("got %v, want [istanbul]", got)
	}
}

func TestIsAlpha(t *testing.T) {
	if !IsAlpha("cat") || IsAlpha("cat9") || IsAlpha("") || IsAlpha("don't") {
		t.Error("IsAlpha classification mismatch")
	}
}

func TestSentences(t *testing.T) {
	got := Sentences("I saw Dr. Smith today. He was fine! Was he? Yes, 3.5 times.")
	want := []string{
		"I saw Dr. Smith today.",
		"He was fine!",
		"Was he?",
		"Yes, 3.5 times.",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}

	if s := Sentences("  "); len(s) != 0 {
		t.Errorf("expected no sentences, got %q", s)
	}
	if s := Sentences("no terminal punctuation"); len(s) != 1 {
		t.Errorf("expected one sentence, got %q", s)
	}
}

func TestNgrams(t *testing.T) {
	tokens := []string{"the", "the", "cat", "sat"}

	all := Ngrams(tokens, 2, false)
	if len(all) != 3 {
		t.Fatalf("expected 3 bigrams, got %d", len(all))
	}

	distinct := Ngrams(tokens, 2, true)
	want := []Gram{NewGram("the", "cat"), NewGram("cat", "sat")}
	if !reflect.DeepEqual(distinct, want) {
		t.Errorf("got %v, want %v", distinct, want)
	}

	if g := Ngrams(tokens, 4, false); g != nil {
		t.Errorf("expected nil for n=4, got %v", g)
	}
	if g := Ngrams([]string{"a"}, 2, false); g != nil {
		t.Errorf("expected nil for short input, got %v", g)
	}
}

func TestWindows(t *testing.T) {
	w := NewWindows([]string{"the", "the", "cat", "sat", "down"})

	if !w.Has(NewGram("the")) {
		t.Error("expected word window 'the'")
	}
	if w.Has(NewGram("the", "the")) {
		t.Error("repeated-token bigram must not be a window")
	}
	if !w.Has(NewGram("the", "cat")) {
		t.Error("expected bigram 'the cat'")
	}
	if !w.Has(NewGram("cat", "sat", "down")) {
		t.Error("expected trigram 'cat sat down'")
	}
	if w.Has(NewGram("the", "the", "cat")) {
		t.Error("trigram with repeated token must not be a window")
	}
	if len(w.Set(1)) != 4 {
		t.Errorf("expected 4 distinct words, got %d", len(w.Set(1)))
	}
	if w.Set(0) != nil || w.Set(4) != nil {
		t.Error("out of range sizes must return nil")
	}
}

func TestGram(t *testing.T) {
	g := NewGram("big", "cat")
	if g.N != 2 || g.String() != "big cat" {
		t.Errorf("unexpected gram %+v", g)
	}
	if NewGram("a", "b", "c", "d").N != MaxGram {
		t.Error("gram longer than MaxGram must be truncated")
	}
	if NewGram("x", "y", "x").Distinct() {
		t.Error("expected non-distinct gram")
	}
}

func TestSnowball(t *testing.T) {
	s, err := NewSnowball("english")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := StemAll(s, []string{"running", "foxes", "connected"})
	want := []string{"run", "fox", "connect"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if p, err := NewSnowball("porter"); err != nil || p.Language() != "english" {
		t.Errorf("porter alias: got %v, %v", p, err)
	}

	_, err = NewSnowball("klingon")
	if !errors.Is(err, config.ErrConfiguration) {
		t.Errorf("expected configuration error, got %v", err)
	}
}

func TestStopwords(t *testing.T) {
	sw, err := NewStopwords("english")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := sw.Filter([]string{"the", "quick", "and", "fox"})
	if !reflect.DeepEqual(got, []string{"quick", "fox"}) {
		t.Errorf("got %v", got)
	}

	none, err := NewStopwords("none")
	if err != nil || none.Contains("the") {
		t.Errorf("none stopwords should be empty: %v", err)
	}

	var nilSet *Stopwords
	if nilSet.Contains("the") || nilSet.Language() != "none" {
		t.Error("nil stopwords should be empty")
	}

	if _, err := NewStopwords("german"); !errors.Is(err, config.ErrConfiguration) {
		t.Errorf("expected configuration error, got %v", err)
	}

	loaded, err := LoadStopwords("german", strings.NewReader("# german\nder die\n\ndas\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, w := range []string{"der", "die", "das"} {
		if !loaded.Contains(w) {
			t.Errorf("expected %q to be a stopword", w)
		}
	}
	if loaded.Contains("hund") {
		t.Error("unexpected stopword")
	}
}

func TestStopwordsLanguages(t *testing.T) {
	tests := []struct {
		lang string
		name string
		stop string
		keep string
	}{
		{"spanish", "spanish", "para", "perro"},
		{"es", "spanish", "los", "gato"},
		{"fra", "french", "avec", "chien"},
		{"swedish", "swedish", "och", "hund"},
		{"ru", "russian", "и", "собака"},
		{"norwegian", "norwegian", "og", "hund"},
		{"hungarian", "hungarian", "ahol", "kutya"},
	}
	for _, tt := range tests {
		sw, err := NewStopwords(tt.lang)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.lang, err)
		}
		if sw.Language() != tt.name {
			t.Errorf("%s: language %q, want %q", tt.lang, sw.Language(), tt.name)
		}
		if !sw.Contains(tt.stop) {
			t.Errorf("%s: %q should be a stopword", tt.lang, tt.stop)
		}
		if sw.Contains(tt.keep) {
			t.Errorf("%s: %q should not be a stopword", tt.lang, tt.keep)
		}
	}
}

func TestSnowballLanguageCodes(t *testing.T) {
	s, err := NewSnowball("es")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Language() != "spanish" {
		t.Errorf("got %q", s.Language())
	}
}
