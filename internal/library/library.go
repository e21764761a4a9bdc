package library

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"sync"
	"time"

	"harshagw/textanalysis/internal/config"
	"harshagw/textanalysis/internal/lexicon"
	"harshagw/textanalysis/internal/store"
)

// ErrClosed is returned by operations on a closed library.
var ErrClosed = errors.New("library is closed")

var validName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// Library is the set of installed lexicon files. It implements
// lexicon.Lexicon as the union of its files and lexicon.WordSource from the
// first file, by name, covering a language.
type Library struct {
	mu sync.RWMutex

	dir     string
	catalog *store.Catalog
	files   map[string]*lexicon.File
	names   []string
	logger  *slog.Logger

	closed bool
}

type Config struct {
	Dir    string
	Logger *slog.Logger
}

func DefaultConfig(dir string) Config {
	return Config{
		Dir:    dir,
		Logger: slog.Default(),
	}
}

// Open creates or opens a library at the given directory.
func Open(cfg Config) (*Library, error) {
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create library directory: %w", err)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	catalog, err := store.NewCatalog(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	lib := &Library{
		dir:     cfg.Dir,
		catalog: catalog,
		files:   make(map[string]*lexicon.File),
		logger:  cfg.Logger,
	}

	if err := lib.loadFiles(); err != nil {
		lib.closeFiles()
		catalog.Close()
		return nil, fmt.Errorf("failed to load lexicons: %w", err)
	}

	return lib, nil
}

// loadFiles opens every file registered in the catalog.
func (l *Library) loadFiles() error {
	entries, err := l.catalog.Entries()
	if err != nil {
		return err
	}

	for _, e := range entries {
		f, err := lexicon.Open(filepath.Join(l.dir, e.File), e.Name)
		if err != nil {
			return fmt.Errorf("failed to open lexicon %s: %w", e.Name, err)
		}
		l.files[e.Name] = f
	}
	l.sortNames()
	return nil
}

func (l *Library) sortNames() {
	l.names = l.names[:0]
	for name := range l.files {
		l.names = append(l.names, name)
	}
	sort.Strings(l.names)
}

// Install reads Open Multilingual Wordnet data from r and registers it as
// name, replacing an earlier install of the same name.
func (l *Library) Install(name string, r io.Reader, source string) (store.Entry, error) {
	synsets, err := lexicon.ReadOMW(r)
	if err != nil {
		return store.Entry{}, err
	}
	return l.InstallSynsets(name, synsets, source)
}

// InstallSynsets builds a lexicon file from synsets and registers it as name.
func (l *Library) InstallSynsets(name string, synsets []lexicon.Synset, source string) (store.Entry, error) {
	if !validName.MatchString(name) {
		return store.Entry{}, config.Errorf("invalid lexicon name %q", name)
	}
	if len(synsets) == 0 {
		return store.Entry{}, fmt.Errorf("lexicon %s has no synsets", name)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return store.Entry{}, ErrClosed
	}

	builder := lexicon.NewBuilder()
	var lemmas uint64
	for _, s := range synsets {
		builder.Add(s)
		lemmas += uint64(len(s.Lemmas))
	}

	gen, err := l.catalog.Generation()
	if err != nil {
		return store.Entry{}, err
	}
	fileID := fmt.Sprintf("%s-%06d", name, gen+1)

	path, err := builder.Build(l.dir, fileID)
	if err != nil {
		return store.Entry{}, fmt.Errorf("failed to build lexicon %s: %w", name, err)
	}

	f, err := lexicon.Open(path, name)
	if err != nil {
		os.Remove(path)
		return store.Entry{}, err
	}

	entry := store.Entry{
		Name:      name,
		File:      filepath.Base(path),
		Languages: f.Languages(),
		Synsets:   f.NumSynsets(),
		Lemmas:    lemmas,
		Source:    source,
		Installed: time.Now().UTC(),
	}

	err = l.catalog.Update(func(tx *store.Tx) error {
		if _, err := tx.IncrementGeneration(); err != nil {
			return err
		}
		return tx.Put(entry)
	})
	if err != nil {
		f.Close()
		os.Remove(path)
		return store.Entry{}, err
	}

	if old, ok := l.files[name]; ok {
		l.discard(old)
	}
	l.files[name] = f
	l.sortNames()

	l.logger.Info("lexicon installed", "name", name, "file", entry.File,
		"languages", entry.Languages, "synsets", entry.Synsets)
	return entry, nil
}

// Remove unregisters name and deletes its file.
func (l *Library) Remove(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrClosed
	}

	err := l.catalog.Update(func(tx *store.Tx) error {
		return tx.Delete(name)
	})
	if err != nil {
		return err
	}

	if f, ok := l.files[name]; ok {
		l.discard(f)
		delete(l.files, name)
		l.sortNames()
	}
	l.logger.Info("lexicon removed", "name", name)
	return nil
}

// discard closes a replaced file and removes it from disk.
func (l *Library) discard(f *lexicon.File) {
	path := f.Path()
	if err := f.Close(); err != nil {
		l.logger.Warn("failed to close lexicon", "path", path, "error", err)
	}
	if err := os.Remove(path); err != nil {
		l.logger.Warn("failed to remove lexicon", "path", path, "error", err)
	}
}

// Entries returns the registered lexicons.
func (l *Library) Entries() ([]store.Entry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.closed {
		return nil, ErrClosed
	}
	return l.catalog.Entries()
}

// Synonyms implements lexicon.Lexicon.
func (l *Library) Synonyms(word string, pos lexicon.POS, lang string) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.closed {
		return nil, ErrClosed
	}

	found := false
	seen := make(map[string]struct{})
	var out []string
	for _, name := range l.names {
		f := l.files[name]
		if !f.HasLanguage(lang) {
			continue
		}
		found = true
		syns, err := f.Synonyms(word, pos, lang)
		if err != nil {
			return nil, err
		}
		for _, s := range syns {
			if _, ok := seen[s]; !ok {
				seen[s] = struct{}{}
				out = append(out, s)
			}
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: language %q not available", lexicon.ErrLookup, lang)
	}
	sort.Strings(out)
	return out, nil
}

// Languages implements lexicon.Lexicon.
func (l *Library) Languages() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	seen := make(map[string]struct{})
	var langs []string
	for _, f := range l.files {
		for _, lang := range f.Languages() {
			if _, ok := seen[lang]; !ok {
				seen[lang] = struct{}{}
				langs = append(langs, lang)
			}
		}
	}
	sort.Strings(langs)
	return langs
}

// Words implements lexicon.WordSource.
func (l *Library) Words(lang string) (*lexicon.WordIndex, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, name := range l.names {
		if idx, ok := l.files[name].Words(lang); ok {
			return idx, true
		}
	}
	return nil, false
}

// Close closes the library and releases resources.
func (l *Library) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	l.closeFiles()
	return l.catalog.Close()
}

func (l *Library) closeFiles() {
	for _, f := range l.files {
		f.Close()
	}
	l.files = nil
	l.names = nil
}
