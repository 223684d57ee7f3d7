package walker

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// AllowedExtensions is the fixed allow-list of ingestible document formats.
var AllowedExtensions = map[string]bool{
	".txt":  true,
	".pdf":  true,
	".docx": true,
}

// ignoredPrefixes mark temporary or hidden files by naming convention.
var ignoredPrefixes = []string{"~$", "."}

// DiscoveredFile holds the basic facts about one candidate document. It is
// ephemeral: the record builder consumes it immediately.
type DiscoveredFile struct {
	Path       string // absolute path on disk
	Extension  string // lowercased, including the dot
	SizeBytes  int64
	ModifiedAt time.Time
}

// Config controls a discovery pass.
type Config struct {
	RootDir string
	Exclude []string // glob patterns matched against the path relative to RootDir
}

// Walk enumerates ingestible files under cfg.RootDir. Discovery is
// best-effort: files that vanish or cannot be stat'd mid-walk are skipped
// silently, and a missing root yields an empty result rather than an error.
func Walk(cfg Config) ([]DiscoveredFile, error) {
	root, err := filepath.Abs(cfg.RootDir)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, nil
	}

	var files []DiscoveredFile

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, entryErr error) error {
		if entryErr != nil {
			// Unreadable entries are skipped, not fatal.
			return nil
		}

		name := d.Name()
		if d.IsDir() {
			if path != root && isIgnoredName(name) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if isIgnoredName(name) {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(name))
		if !AllowedExtensions[ext] {
			return nil
		}

		if rel, err := filepath.Rel(root, path); err == nil && MatchesExclude(rel, cfg.Exclude) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			// The file may have been removed mid-walk.
			return nil
		}

		files = append(files, DiscoveredFile{
			Path:       path,
			Extension:  ext,
			SizeBytes:  info.Size(),
			ModifiedAt: info.ModTime(),
		})
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return files, nil
}

// isIgnoredName reports whether a file name marks a temporary or hidden file.
func isIgnoredName(name string) bool {
	for _, p := range ignoredPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}
