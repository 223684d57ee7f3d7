package registry

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func sampleRun(id string, started time.Time) Run {
	return Run{
		ID:            id,
		Root:          "/library",
		StartedAt:     started,
		FinishedAt:    started.Add(2 * time.Second),
		ProcessedDocs: 3,
		IndexedChunks: 12,
		IgnoredCount:  1,
	}
}

func TestLedgerRoundTrip(t *testing.T) {
	ledger, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer ledger.Close()

	ctx := context.Background()
	started := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	if err := ledger.InsertRun(ctx, sampleRun("run-1", started)); err != nil {
		t.Fatalf("InsertRun: %v", err)
	}

	outcomes := []DocumentOutcome{
		{
			RunID:      "run-1",
			DocID:      "sha256:abc",
			SourcePath: "/library/processos/onboarding__v2024-01.txt",
			Category:   "processos",
			Title:      "onboarding",
			Version:    "v2024-01",
			ChunkCount: 4,
			Status:     "indexed",
		},
		{
			RunID:      "run-1",
			SourcePath: "/library/processos/notes.txt",
			Status:     "ignored",
			Reason:     "missing_version_separator",
		},
	}
	for _, o := range outcomes {
		if err := ledger.InsertDocument(ctx, o); err != nil {
			t.Fatalf("InsertDocument: %v", err)
		}
	}

	runs, err := ledger.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("RecentRuns returned %d runs, want 1", len(runs))
	}
	got := runs[0]
	if got.ID != "run-1" || got.ProcessedDocs != 3 || got.IndexedChunks != 12 || got.IgnoredCount != 1 {
		t.Errorf("unexpected run: %+v", got)
	}

	docs, err := ledger.DocumentsForRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("DocumentsForRun: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("DocumentsForRun returned %d outcomes, want 2", len(docs))
	}
	byStatus := map[string]DocumentOutcome{}
	for _, d := range docs {
		byStatus[d.Status] = d
	}
	if byStatus["indexed"].DocID != "sha256:abc" || byStatus["indexed"].ChunkCount != 4 {
		t.Errorf("unexpected indexed outcome: %+v", byStatus["indexed"])
	}
	if byStatus["ignored"].Reason != "missing_version_separator" {
		t.Errorf("unexpected ignored outcome: %+v", byStatus["ignored"])
	}
}

func TestRecentRunsOrderAndLimit(t *testing.T) {
	ledger, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer ledger.Close()

	ctx := context.Background()
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-1", "run-2", "run-3"} {
		if err := ledger.InsertRun(ctx, sampleRun(id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("InsertRun(%s): %v", id, err)
		}
	}

	runs, err := ledger.RecentRuns(ctx, 2)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("RecentRuns returned %d runs, want 2", len(runs))
	}
	if runs[0].ID != "run-3" || runs[1].ID != "run-2" {
		t.Errorf("runs not newest-first: %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestLedgerRejectsBadStatus(t *testing.T) {
	ledger, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer ledger.Close()

	ctx := context.Background()
	if err := ledger.InsertRun(ctx, sampleRun("run-1", time.Now())); err != nil {
		t.Fatalf("InsertRun: %v", err)
	}
	err = ledger.InsertDocument(ctx, DocumentOutcome{
		RunID:      "run-1",
		SourcePath: "/library/x.txt",
		Status:     "partial",
	})
	if err == nil {
		t.Error("InsertDocument accepted a status outside the allowed set")
	}
}

func TestOpenCreatesFileAndDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ledger.db")
	ledger, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer ledger.Close()

	if err := ledger.InsertRun(context.Background(), sampleRun("run-1", time.Now().UTC())); err != nil {
		t.Fatalf("InsertRun: %v", err)
	}
}
