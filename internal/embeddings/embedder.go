// Package embeddings provides text embedding providers for the vector store.
package embeddings

import "context"

// Embedder turns text into fixed-dimension vectors. A provider instance
// always emits vectors of the same dimensionality; mixing providers in one
// store without a full reindex corrupts similarity comparisons.
type Embedder interface {
	// Embed generates one vector per input text.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedOne generates the vector for a single text (used for queries).
	EmbedOne(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the vector dimensionality of this provider.
	Dimensions() int

	// Name identifies the provider and model.
	Name() string
}
