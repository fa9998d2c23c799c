package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/notelet/notelet/pkg/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(Config{Path: t.TempDir()})
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, core.CollectionNotes, "n1", []byte(`{"title":"hi"}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := s.Get(ctx, core.CollectionNotes, "n1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `{"title":"hi"}` {
		t.Errorf("Get = %s", got)
	}

	// Values land as one file per key under the collection directory.
	if _, err := os.Stat(filepath.Join(s.Path, "notes", "n1.json")); err != nil {
		t.Errorf("expected notes/n1.json on disk: %v", err)
	}

	if err := s.Delete(ctx, core.CollectionNotes, "n1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get(ctx, core.CollectionNotes, "n1"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestStoreGetMissing(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Get(context.Background(), core.CollectionNotes, "ghost"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreDeleteAbsent(t *testing.T) {
	s := newTestStore(t)
	if err := s.Delete(context.Background(), core.CollectionNotes, "ghost"); err != nil {
		t.Errorf("deleting an absent key must not fail: %v", err)
	}
}

func TestStoreList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, key := range []string{"a", "b"} {
		if err := s.Put(ctx, core.CollectionLabels, key, []byte(key)); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	// Stray files that are not stored values are ignored.
	dir := filepath.Join(s.Path, "labels")
	if err := os.WriteFile(filepath.Join(dir, TempFilePrefix+"x"), []byte("tmp"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "README.txt"), []byte("doc"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := s.List(ctx, core.CollectionLabels)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 || string(got["a"]) != "a" || string(got["b"]) != "b" {
		t.Errorf("List = %v", got)
	}
}

func TestStoreListEmptyCollection(t *testing.T) {
	s := NewStore(Config{Path: t.TempDir()})
	// No Initialize: the collection directory does not exist yet.
	got, err := s.List(context.Background(), core.CollectionNotes)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty map, got %v", got)
	}
}

func TestStoreRejectsEscapingKeys(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, key := range []string{"", ".", "..", "a/b", `a\b`, "../../etc"} {
		if err := s.Put(ctx, core.CollectionNotes, key, []byte("x")); !core.IsValidation(err) {
			t.Errorf("key %q: expected ValidationError, got %v", key, err)
		}
	}
}

func TestStoreMustExist(t *testing.T) {
	s := NewStore(Config{Path: filepath.Join(t.TempDir(), "missing"), MustExist: true})
	if err := s.Initialize(context.Background()); err == nil {
		t.Error("expected failure for a missing vault with MustExist")
	}
}

func TestStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first := NewStore(Config{Path: dir})
	if err := first.Initialize(ctx); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if err := first.Put(ctx, core.CollectionNotes, "n1", []byte("persisted")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	second := NewStore(Config{Path: dir, MustExist: true})
	if err := second.Initialize(ctx); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	got, err := second.Get(ctx, core.CollectionNotes, "n1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != "persisted" {
		t.Errorf("Get = %s", got)
	}
}
