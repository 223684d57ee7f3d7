package vectorstore

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/psdocs/docsearch/internal/embeddings"
)

// storeFilename is the single serialized file holding the full entry set.
const storeFilename = "documents.json"

// JSONStore keeps the entire index in memory and round-trips it through one
// JSON file. Every mutation rewrites the whole file, which is O(total
// entries) per write; acceptable at library scale, a known limit beyond it.
//
// Mutations are serialized by the write lock so a delete-then-add reindex
// for one doc_id can never interleave with another writer. Searches take
// the read lock and never observe a store mid-rewrite.
type JSONStore struct {
	mu       sync.RWMutex
	path     string
	embedder embeddings.Embedder
	entries  []Entry
	dims     int
}

// NewJSONStore opens (or initializes) the store persisted under dir.
func NewJSONStore(dir string, embedder embeddings.Embedder) (*JSONStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	s := &JSONStore{
		path:     filepath.Join(dir, storeFilename),
		embedder: embedder,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *JSONStore) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read store file: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse store file %s: %w", s.path, err)
	}

	for _, e := range entries {
		if s.dims == 0 {
			s.dims = len(e.Embedding)
			continue
		}
		if len(e.Embedding) != s.dims {
			return fmt.Errorf("%w: store file %s holds %d- and %d-dimension vectors",
				ErrDimensionMismatch, s.path, s.dims, len(e.Embedding))
		}
	}
	s.entries = entries
	return nil
}

// save rewrites the full entry set. Callers must hold the write lock.
func (s *JSONStore) save() error {
	data, err := json.Marshal(s.entries)
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write store file %s: %w", s.path, err)
	}
	return nil
}

func (s *JSONStore) Add(ctx context.Context, docs []Document) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}

	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Content
	}
	vectors, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed batch: %w", err)
	}
	if len(vectors) != len(docs) {
		return 0, fmt.Errorf("embedder returned %d vectors for %d documents", len(vectors), len(docs))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate the batch as a whole before adopting its dimensionality, so
	// a rejected mixed batch cannot pin an empty store to a bad width.
	batchDims := len(vectors[0])
	for _, v := range vectors {
		if len(v) != batchDims {
			return 0, fmt.Errorf("%w: embedder %q produced %d- and %d-dimension vectors in one batch",
				ErrDimensionMismatch, s.embedder.Name(), batchDims, len(v))
		}
	}
	if s.dims == 0 {
		s.dims = batchDims
	} else if batchDims != s.dims {
		return 0, fmt.Errorf("%w: store holds %d-dimension vectors, embedder %q produced %d",
			ErrDimensionMismatch, s.dims, s.embedder.Name(), batchDims)
	}

	for i, d := range docs {
		s.entries = append(s.entries, Entry{
			Content:   d.Content,
			Metadata:  d.Metadata,
			Embedding: vectors[i],
		})
	}

	if err := s.save(); err != nil {
		return 0, err
	}
	return len(docs), nil
}

func (s *JSONStore) Delete(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.entries[:0]
	removed := 0
	for _, e := range s.entries {
		if v, ok := e.Metadata.Field(key); ok && v == value {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	if removed == 0 {
		return nil
	}
	s.entries = kept
	return s.save()
}

func (s *JSONStore) Search(ctx context.Context, query string, k int) ([]SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.entries) == 0 {
		return nil, nil
	}
	if k <= 0 {
		k = 5
	}

	qvec, err := s.embedder.EmbedOne(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	results := make([]SearchResult, len(s.entries))
	for i, e := range s.entries {
		results[i] = SearchResult{
			Document: Document{Content: e.Content, Metadata: e.Metadata},
			Score:    cosineSimilarity(qvec, e.Embedding),
		}
	}

	// Stable sort keeps insertion order on ties, so results for a fixed
	// store state and query are deterministic.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

// Persist is a no-op: every mutation already rewrites the store file.
func (s *JSONStore) Persist(ctx context.Context) error { return nil }

func (s *JSONStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// cosineSimilarity returns the cosine of the angle between a and b.
// A zero vector has similarity 0.0 with anything.
func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
