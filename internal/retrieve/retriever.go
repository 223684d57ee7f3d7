// Package retrieve answers queries against the vector store, applying the
// caller-side minimum-score filter and formatting context for generation.
package retrieve

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/psdocs/docsearch/internal/vectorstore"
)

// RetrievedDoc is one ranked hit surfaced to callers.
type RetrievedDoc struct {
	Content  string               `json:"content"`
	Metadata vectorstore.Metadata `json:"metadata"`
	Score    float64              `json:"score"`
}

// Retriever wraps a store with search defaults.
type Retriever struct {
	store vectorstore.Store
}

// New creates a Retriever over the given store.
func New(store vectorstore.Store) *Retriever {
	return &Retriever{store: store}
}

// Retrieve returns the top-k documents for query with score >= minScore.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int, minScore float64) ([]RetrievedDoc, error) {
	results, err := r.store.Search(ctx, query, k)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	docs := make([]RetrievedDoc, 0, len(results))
	for _, res := range results {
		if res.Score < minScore {
			continue
		}
		docs = append(docs, RetrievedDoc{
			Content:  res.Document.Content,
			Metadata: res.Document.Metadata,
			Score:    res.Score,
		})
	}
	return docs, nil
}

// RetrieveContext retrieves documents and renders them as a numbered
// context block for prompt grounding.
func (r *Retriever) RetrieveContext(ctx context.Context, query string, k int, minScore float64) (string, error) {
	docs, err := r.Retrieve(ctx, query, k, minScore)
	if err != nil {
		return "", err
	}
	if len(docs) == 0 {
		return "", nil
	}

	var parts []string
	for i, d := range docs {
		source := d.Metadata.Title
		if d.Metadata.Version != "" {
			source += " (" + d.Metadata.Version + ")"
		}
		content := d.Content
		if len(content) > 500 {
			cut := 500
			for cut > 0 && !utf8.RuneStart(content[cut]) {
				cut--
			}
			content = content[:cut] + "..."
		}
		parts = append(parts, fmt.Sprintf("[%d] Source: %s (score: %.2f)\n%s\n", i+1, source, d.Score, content))
	}
	return strings.Join(parts, "\n"), nil
}
