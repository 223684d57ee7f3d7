// Package registry keeps a SQLite ledger of ingestion runs and per-document
// outcomes, so operators can answer "what got indexed, when, and why was
// the rest skipped" without replaying a run.
package registry

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Ledger wraps the SQLite connection.
type Ledger struct {
	db *sql.DB
}

// Open creates or opens the ledger database at the given path.
func Open(path string) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging ledger: %w", err)
	}

	l := &Ledger{db: db}
	if err := l.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return l, nil
}

// OpenMemory creates an in-memory ledger (useful for testing).
func OpenMemory() (*Ledger, error) {
	db, err := sql.Open("sqlite", ":memory:?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory ledger: %w", err)
	}
	l := &Ledger{db: db}
	if err := l.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return l, nil
}

// Close releases the underlying database handle.
func (l *Ledger) Close() error { return l.db.Close() }

func (l *Ledger) migrate() error {
	_, err := l.db.Exec(schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS ingestion_runs (
    id TEXT PRIMARY KEY,
    root TEXT NOT NULL,
    started_at DATETIME NOT NULL,
    finished_at DATETIME NOT NULL,
    processed_docs INTEGER NOT NULL DEFAULT 0,
    indexed_chunks INTEGER NOT NULL DEFAULT 0,
    ignored_count INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS run_documents (
    run_id TEXT NOT NULL REFERENCES ingestion_runs(id) ON DELETE CASCADE,
    doc_id TEXT NOT NULL DEFAULT '',
    source_path TEXT NOT NULL,
    category TEXT NOT NULL DEFAULT '',
    system TEXT NOT NULL DEFAULT '',
    title TEXT NOT NULL DEFAULT '',
    version TEXT NOT NULL DEFAULT '',
    chunk_count INTEGER NOT NULL DEFAULT 0,
    status TEXT NOT NULL CHECK(status IN ('indexed','ignored')),
    reason TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_run_documents_run ON run_documents(run_id);
CREATE INDEX IF NOT EXISTS idx_run_documents_doc ON run_documents(doc_id);
`

// Run summarizes one ingestion pass.
type Run struct {
	ID            string
	Root          string
	StartedAt     time.Time
	FinishedAt    time.Time
	ProcessedDocs int
	IndexedChunks int
	IgnoredCount  int
}

// DocumentOutcome records what happened to one file during a run.
type DocumentOutcome struct {
	RunID      string
	DocID      string
	SourcePath string
	Category   string
	System     string
	Title      string
	Version    string
	ChunkCount int
	Status     string // "indexed" or "ignored"
	Reason     string // set when Status is "ignored"
}

// InsertRun records a completed ingestion run.
func (l *Ledger) InsertRun(ctx context.Context, run Run) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO ingestion_runs (id, root, started_at, finished_at, processed_docs, indexed_chunks, ignored_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Root, run.StartedAt.UTC(), run.FinishedAt.UTC(),
		run.ProcessedDocs, run.IndexedChunks, run.IgnoredCount)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// InsertDocument records one document outcome for a run.
func (l *Ledger) InsertDocument(ctx context.Context, doc DocumentOutcome) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO run_documents (run_id, doc_id, source_path, category, system, title, version, chunk_count, status, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.RunID, doc.DocID, doc.SourcePath, doc.Category, doc.System,
		doc.Title, doc.Version, doc.ChunkCount, doc.Status, doc.Reason)
	if err != nil {
		return fmt.Errorf("insert document outcome: %w", err)
	}
	return nil
}

// RecentRuns returns the most recent runs, newest first.
func (l *Ledger) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, root, started_at, finished_at, processed_docs, indexed_chunks, ignored_count
		FROM ingestion_runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Root, &r.StartedAt, &r.FinishedAt,
			&r.ProcessedDocs, &r.IndexedChunks, &r.IgnoredCount); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// DocumentsForRun returns the per-document outcomes of one run.
func (l *Ledger) DocumentsForRun(ctx context.Context, runID string) ([]DocumentOutcome, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT run_id, doc_id, source_path, category, system, title, version, chunk_count, status, reason
		FROM run_documents WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run documents: %w", err)
	}
	defer rows.Close()

	var docs []DocumentOutcome
	for rows.Next() {
		var d DocumentOutcome
		if err := rows.Scan(&d.RunID, &d.DocID, &d.SourcePath, &d.Category, &d.System,
			&d.Title, &d.Version, &d.ChunkCount, &d.Status, &d.Reason); err != nil {
			return nil, fmt.Errorf("scan document outcome: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
