package docmeta

import (
	"os"
	"path/filepath"
	"testing"
)

func TestChecksum_KnownDigest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte("hello world"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Checksum(path)
	if err != nil {
		t.Fatalf("Checksum() error: %v", err)
	}
	want := "sha256:b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if got != want {
		t.Errorf("Checksum() = %q, want %q", got, want)
	}

	// Deterministic on unchanged bytes.
	again, err := Checksum(path)
	if err != nil {
		t.Fatalf("Checksum() second call error: %v", err)
	}
	if again != got {
		t.Errorf("Checksum() not deterministic: %q vs %q", again, got)
	}
}

func TestChecksum_IdenticalBytesShareID(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	for _, p := range []string{a, b} {
		if err := os.WriteFile(p, []byte("same content"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	ca, err := Checksum(a)
	if err != nil {
		t.Fatal(err)
	}
	cb, err := Checksum(b)
	if err != nil {
		t.Fatal(err)
	}
	if ca != cb {
		t.Errorf("identical bytes produced different checksums: %q vs %q", ca, cb)
	}
}

func TestChecksum_MissingFile(t *testing.T) {
	if _, err := Checksum(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}
