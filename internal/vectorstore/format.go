package vectorstore

import (
	"fmt"
	"strings"
)

// FormatResults renders search results as human-readable text for the CLI.
func FormatResults(results []SearchResult) string {
	if len(results) == 0 {
		return "No results found."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d result(s):\n\n", len(results)))

	for i, r := range results {
		m := r.Document.Metadata
		sb.WriteString(fmt.Sprintf("--- Result %d (score: %.4f) ---\n", i+1, r.Score))
		sb.WriteString(fmt.Sprintf("Document: %s (%s)\n", m.Title, m.Version))
		if m.System != "" {
			sb.WriteString(fmt.Sprintf("Category: %s / %s\n", m.Category, m.System))
		} else {
			sb.WriteString(fmt.Sprintf("Category: %s\n", m.Category))
		}
		sb.WriteString(fmt.Sprintf("Source: %s\n\n", m.SourcePath))
		sb.WriteString(r.Document.Content)
		sb.WriteString("\n\n")
	}

	return sb.String()
}
