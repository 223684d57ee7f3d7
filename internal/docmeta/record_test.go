package docmeta

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/psdocs/docsearch/internal/walker"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func discovered(path string) walker.DiscoveredFile {
	return walker.DiscoveredFile{
		Path:       path,
		Extension:  strings.ToLower(filepath.Ext(path)),
		SizeBytes:  1,
		ModifiedAt: time.Now(),
	}
}

func TestBuildRecords_PartialProgress(t *testing.T) {
	root := t.TempDir()
	good := filepath.Join(root, "processos", "onboarding__v2024-01.txt")
	noSep := filepath.Join(root, "processos", "notes.txt")
	badCat := filepath.Join(root, "other", "doc__v2024-01.txt")
	gone := filepath.Join(root, "processos", "vanished__v2024-02.txt")

	writeFile(t, good, "content")
	writeFile(t, noSep, "content")
	writeFile(t, badCat, "content")
	// gone is never written: checksum will fail.

	valid, ignored := BuildRecords(root, []walker.DiscoveredFile{
		discovered(good), discovered(noSep), discovered(badCat), discovered(gone),
	})

	if len(valid) != 1 {
		t.Fatalf("valid = %d records, want 1", len(valid))
	}
	rec := valid[0]
	if !strings.HasPrefix(rec.DocID, "sha256:") {
		t.Errorf("DocID = %q, want sha256: prefix", rec.DocID)
	}
	if rec.Title != "onboarding" || rec.Version != "v2024-01" || rec.Category != CategoryProcessos {
		t.Errorf("unexpected record: %+v", rec)
	}

	if len(ignored) != 3 {
		t.Fatalf("ignored = %d entries, want 3: %+v", len(ignored), ignored)
	}

	reasons := make(map[string]string)
	for _, ig := range ignored {
		reasons[ig.SourcePath] = ig.Reason
	}
	if reasons[noSep] != RejectMissingVersionSeparator {
		t.Errorf("reason for %s = %q", noSep, reasons[noSep])
	}
	if !strings.Contains(reasons[badCat], "invalid category") {
		t.Errorf("reason for %s = %q", badCat, reasons[badCat])
	}
	if !strings.HasPrefix(reasons[gone], "checksum_error: ") {
		t.Errorf("reason for %s = %q, want checksum_error prefix", gone, reasons[gone])
	}
}

func TestBuildRecords_CarriesVersionWarning(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "processos", "doc__v1.txt")
	writeFile(t, path, "content")

	valid, ignored := BuildRecords(root, []walker.DiscoveredFile{discovered(path)})
	if len(ignored) != 0 {
		t.Fatalf("unexpected ignored entries: %+v", ignored)
	}
	if len(valid) != 1 {
		t.Fatalf("valid = %d records, want 1", len(valid))
	}
	if valid[0].VersionWarning != WarnNonStandardVersion {
		t.Errorf("VersionWarning = %q, want %q", valid[0].VersionWarning, WarnNonStandardVersion)
	}
}
