package vectorstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	chromem "github.com/philippgille/chromem-go"

	"github.com/psdocs/docsearch/internal/embeddings"
)

const (
	collectionName  = "library"
	chromemFilename = "library.gob.gz"
)

// ChromemStore is the chromem-go backed implementation of Store. It keeps
// the same add/delete/search semantics as JSONStore but persists through
// chromem's compressed gob export.
type ChromemStore struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedFunc  chromem.EmbeddingFunc
	path       string
}

// NewChromemStore opens (or initializes) a chromem store persisted under dir.
func NewChromemStore(dir string, embedder embeddings.Embedder) (*ChromemStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	db := chromem.NewDB()
	ef := embeddings.ToChromemFunc(embedder)
	path := filepath.Join(dir, chromemFilename)

	if _, err := os.Stat(path); err == nil {
		if err := db.ImportFromFile(path, ""); err != nil {
			return nil, fmt.Errorf("import store from %s: %w", path, err)
		}
	}

	col, err := db.GetOrCreateCollection(collectionName, nil, ef)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	return &ChromemStore{
		db:         db,
		collection: col,
		embedFunc:  ef,
		path:       path,
	}, nil
}

func (s *ChromemStore) Add(ctx context.Context, docs []Document) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}

	chromemDocs := make([]chromem.Document, len(docs))
	for i, d := range docs {
		chromemDocs[i] = chromem.Document{
			ID:       uuid.NewString(),
			Content:  d.Content,
			Metadata: d.Metadata.toMap(),
		}
	}
	if err := s.collection.AddDocuments(ctx, chromemDocs, 1); err != nil {
		return 0, fmt.Errorf("add documents: %w", err)
	}
	return len(docs), nil
}

func (s *ChromemStore) Delete(ctx context.Context, key, value string) error {
	if s.collection.Count() == 0 {
		return nil
	}
	return s.collection.Delete(ctx, map[string]string{key: value}, nil)
}

func (s *ChromemStore) Search(ctx context.Context, query string, k int) ([]SearchResult, error) {
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if k <= 0 {
		k = 5
	}
	// chromem requires nResults <= collection size.
	if k > count {
		k = count
	}

	results, err := s.collection.Query(ctx, query, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	out := make([]SearchResult, len(results))
	for i, r := range results {
		out[i] = SearchResult{
			Document: Document{Content: r.Content, Metadata: metadataFromMap(r.Metadata)},
			Score:    float64(r.Similarity),
		}
	}
	return out, nil
}

func (s *ChromemStore) Persist(ctx context.Context) error {
	if err := s.db.ExportToFile(s.path, true, ""); err != nil {
		return fmt.Errorf("export store to %s: %w", s.path, err)
	}
	return nil
}

func (s *ChromemStore) Count() int {
	return s.collection.Count()
}
