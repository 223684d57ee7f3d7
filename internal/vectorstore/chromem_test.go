package vectorstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestChromemStore_AddDeleteSearch(t *testing.T) {
	ctx := context.Background()
	store, err := NewChromemStore(t.TempDir(), &mockEmbedder{dims: 64})
	if err != nil {
		t.Fatalf("NewChromemStore: %v", err)
	}

	n, err := store.Add(ctx, []Document{
		testDoc("a", "invoice batch processing"),
		testDoc("a", "invoice batch retries"),
		testDoc("b", "vacation request flow"),
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if n != 3 || store.Count() != 3 {
		t.Fatalf("Add = %d, Count = %d, want 3 and 3", n, store.Count())
	}

	results, err := store.Search(ctx, "invoice batch processing", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Search returned %d results, want 2", len(results))
	}
	if results[0].Document.Metadata.DocID != "a" {
		t.Errorf("top result doc_id = %q, want a", results[0].Document.Metadata.DocID)
	}

	if err := store.Delete(ctx, "doc_id", "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if store.Count() != 1 {
		t.Errorf("Count after delete = %d, want 1", store.Count())
	}
}

func TestChromemStore_SearchClampsK(t *testing.T) {
	ctx := context.Background()
	store, err := NewChromemStore(t.TempDir(), &mockEmbedder{dims: 64})
	if err != nil {
		t.Fatalf("NewChromemStore: %v", err)
	}
	if _, err := store.Add(ctx, []Document{testDoc("a", "only entry")}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	results, err := store.Search(ctx, "entry", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("Search returned %d results, want 1", len(results))
	}
}

func TestChromemStore_PersistRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	embedder := &mockEmbedder{dims: 32}

	store, err := NewChromemStore(dir, embedder)
	if err != nil {
		t.Fatalf("NewChromemStore: %v", err)
	}
	if _, err := store.Add(ctx, []Document{testDoc("a", "exported content")}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := store.Persist(ctx); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, chromemFilename)); err != nil {
		t.Fatalf("export file not written: %v", err)
	}

	reopened, err := NewChromemStore(dir, embedder)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.Count() != 1 {
		t.Errorf("reopened Count = %d, want 1", reopened.Count())
	}
}
