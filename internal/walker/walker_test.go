package walker

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("content"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWalk_FiltersByNameAndExtension(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "doc__v2024-01.txt"))
	writeFile(t, filepath.Join(root, ".hidden.txt"))
	writeFile(t, filepath.Join(root, "~$temp.docx"))
	writeFile(t, filepath.Join(root, "note.md"))

	files, err := Walk(Config{RootDir: root})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("Walk() returned %d files, want exactly 1: %+v", len(files), files)
	}

	f := files[0]
	if filepath.Base(f.Path) != "doc__v2024-01.txt" {
		t.Errorf("discovered %q, want doc__v2024-01.txt", f.Path)
	}
	if f.Extension != ".txt" {
		t.Errorf("Extension = %q, want .txt", f.Extension)
	}
	if f.SizeBytes <= 0 {
		t.Errorf("SizeBytes = %d, want > 0", f.SizeBytes)
	}
	if f.ModifiedAt.IsZero() {
		t.Error("ModifiedAt is zero")
	}
}

func TestWalk_Recursive(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "processos", "a__v2024-01.txt"))
	writeFile(t, filepath.Join(root, "sistemas", "erp", "b__v2024-02.pdf"))
	writeFile(t, filepath.Join(root, "sistemas", "erp", "c__v2024-02.docx"))

	files, err := Walk(Config{RootDir: root})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	if len(files) != 3 {
		t.Errorf("Walk() returned %d files, want 3", len(files))
	}
}

func TestWalk_MissingRootIsEmpty(t *testing.T) {
	files, err := Walk(Config{RootDir: filepath.Join(t.TempDir(), "does-not-exist")})
	if err != nil {
		t.Fatalf("Walk() error for missing root: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("Walk() returned %d files for missing root, want 0", len(files))
	}
}

func TestWalk_SkipsHiddenDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".archive", "old__v2020-01.txt"))
	writeFile(t, filepath.Join(root, "processos", "new__v2024-01.txt"))

	files, err := Walk(Config{RootDir: root})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("Walk() returned %d files, want 1", len(files))
	}
	if filepath.Base(files[0].Path) != "new__v2024-01.txt" {
		t.Errorf("discovered %q, want new__v2024-01.txt", files[0].Path)
	}
}

func TestWalk_ExcludePatterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "processos", "keep__v2024-01.txt"))
	writeFile(t, filepath.Join(root, "processos", "drafts", "skip__v2024-01.txt"))

	files, err := Walk(Config{RootDir: root, Exclude: []string{"**/drafts/**"}})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("Walk() returned %d files, want 1", len(files))
	}
	if filepath.Base(files[0].Path) != "keep__v2024-01.txt" {
		t.Errorf("discovered %q, want keep__v2024-01.txt", files[0].Path)
	}
}

func TestMatchesExclude(t *testing.T) {
	tests := []struct {
		rel      string
		patterns []string
		want     bool
	}{
		{"a/b.txt", nil, false},
		{"a/b.txt", []string{"**/*.txt"}, true},
		{"a/b.txt", []string{"*.pdf"}, false},
		{"drafts/x.txt", []string{"drafts/**"}, true},
	}
	for _, tt := range tests {
		if got := MatchesExclude(tt.rel, tt.patterns); got != tt.want {
			t.Errorf("MatchesExclude(%q, %v) = %v, want %v", tt.rel, tt.patterns, got, tt.want)
		}
	}
}
