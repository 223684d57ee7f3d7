package docmeta

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Document categories recognized in the library tree.
const (
	CategoryProcessos = "processos"
	CategorySistemas  = "sistemas"
)

// Rejection reasons and warnings. These classify files that are skipped or
// flagged during metadata extraction without treating them as errors.
const (
	RejectMissingVersionSeparator = "missing_version_separator"
	WarnNonStandardVersion        = "non_standard_version_format"
)

var (
	// ErrOutsideRoot means the source path does not live under the library root.
	ErrOutsideRoot = errors.New("path outside root directory")
	// ErrPathTooShort means the relative path has too few segments to carry metadata.
	ErrPathTooShort = errors.New("path too short for metadata")
	// ErrInvalidCategory means the first path segment is not a known category.
	ErrInvalidCategory = errors.New("invalid category")
)

// versionRE matches vYYYY-MM or vYYYY-MM-DD.
var versionRE = regexp.MustCompile(`^v\d{4}-\d{2}(-\d{2})?$`)

// PathMeta is the semantic identity encoded in a file's relative path:
// <category>/<system?>/<title>__<version>.<ext>.
type PathMeta struct {
	Category       string
	System         string // set only for the "sistemas" category
	Title          string
	Version        string
	VersionWarning string // WarnNonStandardVersion, or empty
}

// ParsePath decomposes sourcePath (which must live under rootDir) into
// path metadata. It returns a non-empty reject reason for files that are
// structurally fine but skippable (no "__" title/version separator), so
// batch ingestion can skip them without treating them as failures.
func ParsePath(sourcePath, rootDir string) (PathMeta, string, error) {
	rel, err := filepath.Rel(filepath.Clean(rootDir), filepath.Clean(sourcePath))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return PathMeta{}, "", fmt.Errorf("%w: %s is not under %s", ErrOutsideRoot, sourcePath, rootDir)
	}

	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) < 2 {
		return PathMeta{}, "", fmt.Errorf("%w: %q", ErrPathTooShort, rel)
	}

	category := parts[0]
	if category != CategoryProcessos && category != CategorySistemas {
		return PathMeta{}, "", fmt.Errorf("%w: %q in %q", ErrInvalidCategory, category, rel)
	}

	var system string
	if category == CategorySistemas {
		if len(parts) < 3 {
			return PathMeta{}, "", fmt.Errorf("%w: %q lacks a system segment", ErrPathTooShort, rel)
		}
		system = parts[1]
	}
	filename := parts[len(parts)-1]

	name := strings.TrimSuffix(filename, filepath.Ext(filename))
	if !strings.Contains(name, "__") {
		return PathMeta{}, RejectMissingVersionSeparator, nil
	}

	title, version, _ := strings.Cut(name, "__")

	meta := PathMeta{
		Category: category,
		System:   system,
		Title:    title,
		Version:  version,
	}
	if !versionRE.MatchString(version) {
		meta.VersionWarning = WarnNonStandardVersion
	}
	return meta, "", nil
}
