// Package ingest composes discovery, metadata extraction, chunking, and the
// vector store into the batch and single-file ingestion flows.
package ingest

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/psdocs/docsearch/internal/chunker"
	"github.com/psdocs/docsearch/internal/config"
	"github.com/psdocs/docsearch/internal/docmeta"
	"github.com/psdocs/docsearch/internal/extract"
	"github.com/psdocs/docsearch/internal/registry"
	"github.com/psdocs/docsearch/internal/vectorstore"
	"github.com/psdocs/docsearch/internal/walker"
)

// ProgressFunc reports per-document progress during a batch.
type ProgressFunc func(done, total int, path string)

// Stats summarizes an ingestion pass.
type Stats struct {
	RunID         string                `json:"run_id"`
	ProcessedDocs int                   `json:"processed_docs"`
	IndexedChunks int                   `json:"indexed_chunks"`
	Ignored       []docmeta.IgnoredFile `json:"ignored"`
	Duration      time.Duration         `json:"-"`
}

// Pipeline wires the ingestion components around one store instance. The
// store and embedder are constructed by the caller, so tests can substitute
// doubles and multiple isolated stores can coexist in-process.
type Pipeline struct {
	store      vectorstore.Store
	extractors *extract.Registry
	cfg        *config.Config
	ledger     *registry.Ledger // optional; nil disables run bookkeeping
	onProgress ProgressFunc
}

// NewPipeline creates a Pipeline. ledger may be nil.
func NewPipeline(store vectorstore.Store, extractors *extract.Registry, cfg *config.Config, ledger *registry.Ledger) *Pipeline {
	return &Pipeline{
		store:      store,
		extractors: extractors,
		cfg:        cfg,
		ledger:     ledger,
	}
}

// SetProgressFunc sets the progress callback for batch runs.
func (p *Pipeline) SetProgressFunc(fn ProgressFunc) {
	p.onProgress = fn
}

// IngestDirectory runs the full batch pipeline over root: discover files,
// build records, then reindex each valid document (delete old chunks by
// doc_id, add fresh ones). Per-document failures are recorded in
// Stats.Ignored and never abort the batch; a store persistence failure is
// fatal because the index would otherwise silently diverge.
func (p *Pipeline) IngestDirectory(ctx context.Context, root string) (*Stats, error) {
	start := time.Now()
	stats := &Stats{RunID: uuid.NewString()}

	discovered, err := walker.Walk(walker.Config{RootDir: root, Exclude: p.cfg.Exclude})
	if err != nil {
		return stats, fmt.Errorf("discover files: %w", err)
	}

	valid, ignored := docmeta.BuildRecords(root, discovered)
	stats.Ignored = ignored

	var outcomes []registry.DocumentOutcome
	for _, ig := range ignored {
		outcomes = append(outcomes, registry.DocumentOutcome{
			RunID:      stats.RunID,
			SourcePath: ig.SourcePath,
			Status:     "ignored",
			Reason:     ig.Reason,
		})
	}

	for i, rec := range valid {
		if p.onProgress != nil {
			p.onProgress(i+1, len(valid), rec.SourcePath)
		}

		chunks := p.chunksFor(rec)

		n, err := p.reindex(ctx, rec.DocID, chunks)
		if err != nil {
			stats.Duration = time.Since(start)
			return stats, fmt.Errorf("reindex %s: %w", rec.SourcePath, err)
		}

		stats.ProcessedDocs++
		stats.IndexedChunks += n
		outcomes = append(outcomes, registry.DocumentOutcome{
			RunID:      stats.RunID,
			DocID:      rec.DocID,
			SourcePath: rec.SourcePath,
			Category:   rec.Category,
			System:     rec.System,
			Title:      rec.Title,
			Version:    rec.Version,
			ChunkCount: n,
			Status:     "indexed",
		})
	}

	if err := p.store.Persist(ctx); err != nil {
		return stats, fmt.Errorf("persist store: %w", err)
	}

	stats.Duration = time.Since(start)
	p.recordRun(ctx, stats, root, start, outcomes)
	return stats, nil
}

// IngestFile runs the same pipeline for a single path. It returns false
// (with a nil error) when the path fails metadata validation, signalling
// "saved but not indexed" rather than a hard failure.
func (p *Pipeline) IngestFile(ctx context.Context, path, root string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !walker.AllowedExtensions[ext] {
		log.Printf("ingest: %s: extension %s not in allow-list", path, ext)
		return false, nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return false, err
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return false, err
	}

	valid, ignored := docmeta.BuildRecords(absRoot, []walker.DiscoveredFile{{
		Path:       abs,
		Extension:  ext,
		SizeBytes:  info.Size(),
		ModifiedAt: info.ModTime(),
	}})
	if len(valid) == 0 {
		for _, ig := range ignored {
			log.Printf("ingest: %s not indexed: %s", ig.SourcePath, ig.Reason)
		}
		return false, nil
	}

	rec := valid[0]
	chunks := p.chunksFor(rec)
	if _, err := p.reindex(ctx, rec.DocID, chunks); err != nil {
		return false, fmt.Errorf("reindex %s: %w", path, err)
	}
	if err := p.store.Persist(ctx); err != nil {
		return false, fmt.Errorf("persist store: %w", err)
	}
	return true, nil
}

// chunksFor extracts, normalizes, and splits one document's text, stamping
// every chunk with the owning record's identity. Zero extracted text is a
// warning, not an error: the document simply yields no chunks.
func (p *Pipeline) chunksFor(rec docmeta.DocumentRecord) []vectorstore.Document {
	blocks := p.extractors.Extract(rec.SourcePath, rec.Extension)
	if len(blocks) == 0 {
		log.Printf("ingest: no text extracted from %s", rec.SourcePath)
		return nil
	}

	meta := vectorstore.Metadata{
		DocID:      rec.DocID,
		SourcePath: rec.SourcePath,
		Category:   rec.Category,
		System:     rec.System,
		Title:      rec.Title,
		Version:    rec.Version,
	}

	var docs []vectorstore.Document
	for _, block := range blocks {
		normalized := chunker.Normalize(block)
		if normalized == "" {
			continue
		}
		for _, window := range chunker.Split(normalized, p.cfg.ChunkSize, p.cfg.ChunkOverlap) {
			docs = append(docs, vectorstore.Document{Content: window, Metadata: meta})
		}
	}
	return docs
}

// reindex replaces all chunks belonging to docID: stale chunks are removed
// before fresh ones are inserted, so re-ingesting an edited document never
// leaves duplicate or stale hits.
func (p *Pipeline) reindex(ctx context.Context, docID string, chunks []vectorstore.Document) (int, error) {
	if err := p.store.Delete(ctx, "doc_id", docID); err != nil {
		return 0, fmt.Errorf("delete old chunks: %w", err)
	}
	if len(chunks) == 0 {
		return 0, nil
	}
	n, err := p.store.Add(ctx, chunks)
	if err != nil {
		return 0, fmt.Errorf("add chunks: %w", err)
	}
	return n, nil
}

// recordRun writes the run summary to the ledger. Ledger failures are
// logged, not propagated: bookkeeping must never fail an ingestion that
// already committed to the store.
func (p *Pipeline) recordRun(ctx context.Context, stats *Stats, root string, start time.Time, outcomes []registry.DocumentOutcome) {
	if p.ledger == nil {
		return
	}

	run := registry.Run{
		ID:            stats.RunID,
		Root:          root,
		StartedAt:     start,
		FinishedAt:    start.Add(stats.Duration),
		ProcessedDocs: stats.ProcessedDocs,
		IndexedChunks: stats.IndexedChunks,
		IgnoredCount:  len(stats.Ignored),
	}
	if err := p.ledger.InsertRun(ctx, run); err != nil {
		log.Printf("ingest: record run: %v", err)
		return
	}
	for _, o := range outcomes {
		if err := p.ledger.InsertDocument(ctx, o); err != nil {
			log.Printf("ingest: record document outcome: %v", err)
		}
	}
}
