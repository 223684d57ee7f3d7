package vectorstore

// Metadata carries the owning document's identity on every chunk. The
// fields are fixed and typed so key drift is caught at compile time.
type Metadata struct {
	DocID      string `json:"doc_id"`
	SourcePath string `json:"source_path"`
	Category   string `json:"category"`
	System     string `json:"system,omitempty"`
	Title      string `json:"title"`
	Version    string `json:"version"`
}

// Field looks up a metadata field by its wire name, for filtered deletes.
func (m Metadata) Field(key string) (string, bool) {
	switch key {
	case "doc_id":
		return m.DocID, true
	case "source_path":
		return m.SourcePath, true
	case "category":
		return m.Category, true
	case "system":
		return m.System, true
	case "title":
		return m.Title, true
	case "version":
		return m.Version, true
	}
	return "", false
}

// toMap flattens Metadata for backends that store string maps.
func (m Metadata) toMap() map[string]string {
	return map[string]string{
		"doc_id":      m.DocID,
		"source_path": m.SourcePath,
		"category":    m.Category,
		"system":      m.System,
		"title":       m.Title,
		"version":     m.Version,
	}
}

func metadataFromMap(m map[string]string) Metadata {
	return Metadata{
		DocID:      m["doc_id"],
		SourcePath: m["source_path"],
		Category:   m["category"],
		System:     m["system"],
		Title:      m["title"],
		Version:    m["version"],
	}
}

// Document is one chunk of text plus its document metadata, ready to embed.
type Document struct {
	Content  string
	Metadata Metadata
}

// Entry is the persisted form of a document: its text, metadata, and the
// embedding produced when it was added.
type Entry struct {
	Content   string    `json:"text"`
	Metadata  Metadata  `json:"metadata"`
	Embedding []float32 `json:"embedding"`
}

// SearchResult pairs a stored document with its similarity to the query.
type SearchResult struct {
	Document Document
	Score    float64
}
