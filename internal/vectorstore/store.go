// Package vectorstore persists embedded document chunks and serves
// cosine-similarity retrieval over them.
package vectorstore

import (
	"context"
	"errors"
)

// ErrDimensionMismatch is returned when a vector of a different
// dimensionality would enter the store. Mixing embedding providers without
// a full reindex produces meaningless similarity scores, so it is rejected
// outright instead of silently tolerated.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// Store is the persistence and retrieval contract for embedded chunks.
type Store interface {
	// Add embeds each document's content and appends one entry per
	// document. It returns the number added (0 for empty input).
	Add(ctx context.Context, docs []Document) (int, error)

	// Delete removes every entry whose metadata field key equals value.
	// Deleting with no matches is a no-op. The key used in practice is
	// "doc_id", making this "remove all chunks for document X".
	Delete(ctx context.Context, key, value string) error

	// Search embeds the query once and returns the top k entries ranked by
	// descending cosine similarity. Ties keep insertion order.
	Search(ctx context.Context, query string, k int) ([]SearchResult, error)

	// Persist flushes the store to durable storage.
	Persist(ctx context.Context) error

	// Count returns the number of entries currently stored.
	Count() int
}
