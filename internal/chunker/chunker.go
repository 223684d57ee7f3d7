// Package chunker normalizes extracted document text and splits it into
// overlapping windows suitable for embedding.
package chunker

import (
	"regexp"
	"strings"
)

// Defaults match the ingestion configuration the library was indexed with.
const (
	DefaultChunkSize    = 500
	DefaultChunkOverlap = 100
)

// separators are tried in order when looking for a break point: paragraph
// boundaries first, then lines, then words. The empty separator is the hard
// character cut used only when nothing better fits within the window.
var separators = []string{"\n\n", "\n", " ", ""}

var blankRunRE = regexp.MustCompile(`\n{3,}`)

// Normalize converts CRLF/CR line endings to LF, collapses runs of blank
// lines down to a single blank line, and trims surrounding whitespace.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	t := strings.ReplaceAll(text, "\r\n", "\n")
	t = strings.ReplaceAll(t, "\r", "\n")
	t = blankRunRE.ReplaceAllString(t, "\n\n")
	return strings.TrimSpace(t)
}

// Split divides text into windows of at most chunkSize characters with
// chunkOverlap characters carried between consecutive windows. Break points
// prefer paragraph boundaries, then lines, then words, and fall back to a
// hard cut only for unbreakable runs longer than the window.
func Split(text string, chunkSize, chunkOverlap int) []string {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		chunkOverlap = DefaultChunkOverlap
		if chunkOverlap >= chunkSize {
			chunkOverlap = chunkSize / 4
		}
	}
	return splitRecursive(text, chunkSize, chunkOverlap, separators)
}

func splitRecursive(text string, size, overlap int, seps []string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if len(text) <= size {
		return []string{strings.TrimSpace(text)}
	}

	// Choose the first separator actually present in the text.
	sep := ""
	var rest []string
	for i, s := range seps {
		if s == "" {
			break
		}
		if strings.Contains(text, s) {
			sep = s
			rest = seps[i+1:]
			break
		}
	}

	if sep == "" {
		return hardCut(text, size, overlap)
	}

	pieces := strings.Split(text, sep)
	return mergePieces(pieces, sep, size, overlap, rest)
}

// mergePieces greedily packs split pieces into windows no larger than size,
// carrying roughly overlap characters of trailing context into the next
// window. Pieces that alone exceed size are split again with the finer
// separators.
func mergePieces(pieces []string, sep string, size, overlap int, rest []string) []string {
	var chunks []string
	var current []string
	curLen := 0
	sepLen := len(sep)

	flush := func() {
		if len(current) == 0 {
			return
		}
		joined := strings.TrimSpace(strings.Join(current, sep))
		if joined != "" {
			chunks = append(chunks, joined)
		}
	}

	for _, piece := range pieces {
		if len(piece) > size {
			flush()
			current = nil
			curLen = 0
			chunks = append(chunks, splitRecursive(piece, size, overlap, rest)...)
			continue
		}

		extra := len(piece)
		if len(current) > 0 {
			extra += sepLen
		}
		if curLen+extra > size && len(current) > 0 {
			flush()
			// Retain trailing pieces as overlap for the next window.
			for curLen > overlap || (len(current) > 0 && curLen+len(piece)+sepLen > size) {
				curLen -= len(current[0]) + sepLen
				current = current[1:]
				if len(current) == 0 {
					curLen = 0
					break
				}
			}
		}

		if len(current) > 0 {
			curLen += sepLen
		}
		current = append(current, piece)
		curLen += len(piece)
	}
	flush()

	return chunks
}

// hardCut slices text into fixed windows when no separator can help. It
// operates on runes so a multi-byte character is never split across a
// window boundary.
func hardCut(text string, size, overlap int) []string {
	step := size - overlap
	if step < 1 {
		step = size
	}
	runes := []rune(text)
	var out []string
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return out
}
