package store

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/boltdb/bolt"
)

var (
	bucketLexicons = []byte("lexicons")
	bucketMeta     = []byte("meta")
	keyGeneration  = []byte("generation")
)

// ErrNotFound is returned when a lexicon is not registered.
var ErrNotFound = errors.New("lexicon not found")

// Entry describes an installed lexicon file.
type Entry struct {
	Name      string    `json:"name"`
	File      string    `json:"file"`
	Languages []string  `json:"languages"`
	Synsets   uint64    `json:"synsets"`
	Lemmas    uint64    `json:"lemmas"`
	Source    string    `json:"source,omitempty"`
	Installed time.Time `json:"installed"`
}

// Catalog provides persistent storage for installed lexicons using BoltDB.
type Catalog struct {
	db *bolt.DB
}

// NewCatalog opens or creates a catalog store.
func NewCatalog(dir string) (*Catalog, error) {
	dbPath := filepath.Join(dir, "catalog.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	// Initialize buckets
	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketLexicons, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Catalog{db: db}, nil
}

// Entries returns all registered lexicons ordered by name.
func (c *Catalog) Entries() ([]Entry, error) {
	var entries []Entry
	err := c.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketLexicons).ForEach(func(_, v []byte) error {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				return err
			}
			entries = append(entries, e)
			return nil
		})
	})
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, err
}

// Entry returns the lexicon registered under name.
func (c *Catalog) Entry(name string) (Entry, error) {
	var e Entry
	err := c.db.View(func(tx *bolt.Tx) error {
		var err error
		e, err = getEntry(tx, name)
		return err
	})
	return e, err
}

// Generation returns the current generation.
func (c *Catalog) Generation() (uint64, error) {
	var gen uint64
	err := c.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketMeta).Get(keyGeneration)
		if data != nil {
			gen = binary.BigEndian.Uint64(data)
		}
		return nil
	})
	return gen, err
}

func (c *Catalog) Close() error {
	return c.db.Close()
}

// Update runs fn within a write transaction.
func (c *Catalog) Update(fn func(*Tx) error) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		return fn(&Tx{tx: tx})
	})
}

// Tx provides write operations within a transaction.
type Tx struct {
	tx *bolt.Tx
}

// Put registers e, replacing any entry with the same name.
func (t *Tx) Put(e Entry) error {
	if e.Name == "" {
		return fmt.Errorf("lexicon name is empty")
	}
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return t.tx.Bucket(bucketLexicons).Put([]byte(e.Name), data)
}

// Get returns the entry registered under name.
func (t *Tx) Get(name string) (Entry, error) {
	return getEntry(t.tx, name)
}

// Delete unregisters name.
func (t *Tx) Delete(name string) error {
	b := t.tx.Bucket(bucketLexicons)
	if b.Get([]byte(name)) == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return b.Delete([]byte(name))
}

// IncrementGeneration increments and returns the generation.
func (t *Tx) IncrementGeneration() (uint64, error) {
	b := t.tx.Bucket(bucketMeta)
	var gen uint64
	if data := b.Get(keyGeneration); data != nil {
		gen = binary.BigEndian.Uint64(data)
	}
	gen++
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, gen)
	return gen, b.Put(keyGeneration, buf)
}

func getEntry(tx *bolt.Tx, name string) (Entry, error) {
	var e Entry
	data := tx.Bucket(bucketLexicons).Get([]byte(name))
	if data == nil {
		return e, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err := json.Unmarshal(data, &e); err != nil {
		return e, fmt.Errorf("corrupt catalog entry %s: %w", name, err)
	}
	return e, nil
}
