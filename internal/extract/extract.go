// Package extract turns binary document formats into raw text blocks.
// Extraction is tolerant by contract: a corrupt or unsupported file yields
// zero blocks and a logged warning, never an ingestion failure.
package extract

import (
	"log"
	"strings"
)

// Extractor produces the raw text blocks of one document.
type Extractor interface {
	Extract(path string) ([]string, error)
}

// Registry dispatches extraction by file extension. Formats without a
// built-in adapter (PDF, for instance) can be plugged in by the caller.
type Registry struct {
	byExt map[string]Extractor
}

// NewRegistry returns a registry with the built-in adapters registered.
func NewRegistry() *Registry {
	r := &Registry{byExt: make(map[string]Extractor)}
	r.Register(".txt", PlainText{})
	r.Register(".docx", Docx{})
	return r
}

// Register installs an extractor for the given extension (with dot).
func (r *Registry) Register(ext string, e Extractor) {
	r.byExt[strings.ToLower(ext)] = e
}

// Extract runs the adapter for ext against path. A missing adapter or a
// failed extraction yields an empty result; the caller treats zero blocks
// as "nothing to index" for that document.
func (r *Registry) Extract(path, ext string) []string {
	e, ok := r.byExt[strings.ToLower(ext)]
	if !ok {
		log.Printf("extract: no adapter for %s (%s)", ext, path)
		return nil
	}
	blocks, err := e.Extract(path)
	if err != nil {
		log.Printf("extract: %s: %v", path, err)
		return nil
	}
	return blocks
}
