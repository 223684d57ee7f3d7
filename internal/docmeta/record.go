package docmeta

import (
	"time"

	"github.com/psdocs/docsearch/internal/walker"
)

// DocumentRecord is the validated identity of one library document. It is
// recomputed in full on every ingestion pass and never mutated in place.
type DocumentRecord struct {
	DocID          string // content hash, "sha256:<hex>"
	SourcePath     string
	Category       string
	System         string // empty for the "processos" category
	Title          string
	Version        string
	Extension      string
	SizeBytes      int64
	ModifiedAt     time.Time
	VersionWarning string
}

// IgnoredFile explains why a discovered file was skipped during a batch.
type IgnoredFile struct {
	SourcePath string `json:"source_path"`
	Reason     string `json:"reason"`
}

// BuildRecords enriches discovered files with path metadata and a content
// checksum. Per-file problems never abort the batch: every failure lands in
// the ignored list with its reason, and the rest of the batch proceeds.
func BuildRecords(rootDir string, discovered []walker.DiscoveredFile) ([]DocumentRecord, []IgnoredFile) {
	var valid []DocumentRecord
	var ignored []IgnoredFile

	for _, f := range discovered {
		meta, reject, err := ParsePath(f.Path, rootDir)
		if err != nil {
			ignored = append(ignored, IgnoredFile{SourcePath: f.Path, Reason: err.Error()})
			continue
		}
		if reject != "" {
			ignored = append(ignored, IgnoredFile{SourcePath: f.Path, Reason: reject})
			continue
		}

		docID, err := Checksum(f.Path)
		if err != nil {
			ignored = append(ignored, IgnoredFile{SourcePath: f.Path, Reason: "checksum_error: " + err.Error()})
			continue
		}

		valid = append(valid, DocumentRecord{
			DocID:          docID,
			SourcePath:     f.Path,
			Category:       meta.Category,
			System:         meta.System,
			Title:          meta.Title,
			Version:        meta.Version,
			Extension:      f.Extension,
			SizeBytes:      f.SizeBytes,
			ModifiedAt:     f.ModifiedAt,
			VersionWarning: meta.VersionWarning,
		})
	}

	return valid, ignored
}
