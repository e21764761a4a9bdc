package store

import (
	"errors"
	"testing"
)

func TestCatalog_PutAndReopen(t *testing.T) {
	dir := t.TempDir()
	c, err := NewCatalog(dir)
	if err != nil {
		t.Fatalf("NewCatalog error: %v", err)
	}

	err = c.Update(func(tx *Tx) error {
		if err := tx.Put(Entry{Name: "wn", File: "wn-1.lex", Languages: []string{"eng"}, Synsets: 10}); err != nil {
			return err
		}
		return tx.Put(Entry{Name: "omw-spa", File: "omw-spa-2.lex", Languages: []string{"spa"}})
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	c.Close()

	c, err = NewCatalog(dir)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer c.Close()

	entries, err := c.Entries()
	if err != nil {
		t.Fatalf("Entries error: %v", err)
	}
	if len(entries) != 2 || entries[0].Name != "omw-spa" || entries[1].Name != "wn" {
		t.Fatalf("unexpected entries %+v", entries)
	}

	e, err := c.Entry("wn")
	if err != nil {
		t.Fatalf("Entry error: %v", err)
	}
	if e.File != "wn-1.lex" || e.Synsets != 10 || e.Languages[0] != "eng" {
		t.Errorf("unexpected entry %+v", e)
	}
}

func TestCatalog_NotFound(t *testing.T) {
	c, err := NewCatalog(t.TempDir())
	if err != nil {
		t.Fatalf("NewCatalog error: %v", err)
	}
	defer c.Close()

	if _, err := c.Entry("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	err = c.Update(func(tx *Tx) error { return tx.Delete("missing") })
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on delete, got %v", err)
	}
	if err := c.Update(func(tx *Tx) error { return tx.Put(Entry{}) }); err == nil {
		t.Error("expected error for empty name")
	}
}

func TestCatalog_Delete(t *testing.T) {
	c, err := NewCatalog(t.TempDir())
	if err != nil {
		t.Fatalf("NewCatalog error: %v", err)
	}
	defer c.Close()

	c.Update(func(tx *Tx) error { return tx.Put(Entry{Name: "wn"}) })
	if err := c.Update(func(tx *Tx) error { return tx.Delete("wn") }); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	entries, _ := c.Entries()
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %+v", entries)
	}
}

func TestCatalog_Generation(t *testing.T) {
	c, err := NewCatalog(t.TempDir())
	if err != nil {
		t.Fatalf("NewCatalog error: %v", err)
	}
	defer c.Close()

	if gen, _ := c.Generation(); gen != 0 {
		t.Errorf("expected generation 0, got %d", gen)
	}
	for want := uint64(1); want <= 3; want++ {
		var got uint64
		err := c.Update(func(tx *Tx) error {
			var err error
			got, err = tx.IncrementGeneration()
			return err
		})
		if err != nil || got != want {
			t.Errorf("IncrementGeneration = %d, %v; want %d", got, err, want)
		}
	}
	if gen, _ := c.Generation(); gen != 3 {
		t.Errorf("expected generation 3, got %d", gen)
	}
}

func TestCatalog_RollbackOnError(t *testing.T) {
	c, err := NewCatalog(t.TempDir())
	if err != nil {
		t.Fatalf("NewCatalog error: %v", err)
	}
	defer c.Close()

	boom := errors.New("boom")
	err = c.Update(func(tx *Tx) error {
		if err := tx.Put(Entry{Name: "wn"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if _, err := c.Entry("wn"); !errors.Is(err, ErrNotFound) {
		t.Errorf("put must be rolled back, got %v", err)
	}
}
