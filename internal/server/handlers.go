package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/psdocs/docsearch/internal/docmeta"
	"github.com/psdocs/docsearch/internal/walker"
)

type askRequest struct {
	Question string  `json:"question"`
	K        int     `json:"k"`
	MinScore float64 `json:"min_score"`
}

type searchRequest struct {
	Query    string  `json:"query"`
	K        int     `json:"k"`
	MinScore float64 `json:"min_score"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "docsearch",
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		http.Error(w, "query is required", http.StatusBadRequest)
		return
	}
	if req.K <= 0 {
		req.K = s.cfg.SearchK
	}

	docs, err := s.retriever.Retrieve(r.Context(), req.Query, req.K, req.MinScore)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"query":   req.Query,
		"results": docs,
	})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if s.generator == nil {
		http.Error(w, "answer generation is not configured", http.StatusServiceUnavailable)
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		http.Error(w, "question is required", http.StatusBadRequest)
		return
	}
	if req.K <= 0 {
		req.K = s.cfg.SearchK
	}

	answer, err := s.generator.Generate(r.Context(), req.Question, req.K, req.MinScore)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, answer)
}

// handleUpload saves an uploaded document into the library tree and runs
// single-file ingestion. The optional "category" and "system" form fields
// place the file under the path grammar; without a valid placement the file
// is saved but not indexed, and the response says so.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !walker.AllowedExtensions[ext] {
		http.Error(w, fmt.Sprintf("unsupported format %s: use .txt, .pdf or .docx", ext), http.StatusBadRequest)
		return
	}

	category := r.FormValue("category")
	system := r.FormValue("system")
	if category != "" && category != docmeta.CategoryProcessos && category != docmeta.CategorySistemas {
		http.Error(w, fmt.Sprintf("invalid category %q: must be processos or sistemas", category), http.StatusBadRequest)
		return
	}
	if system != "" && (strings.ContainsAny(system, `/\`) || strings.Contains(system, "..")) {
		http.Error(w, fmt.Sprintf("invalid system %q", system), http.StatusBadRequest)
		return
	}

	targetDir := s.cfg.LibraryDir
	if category != "" {
		targetDir = filepath.Join(targetDir, category)
		if category == docmeta.CategorySistemas && system != "" {
			targetDir = filepath.Join(targetDir, system)
		}
	}
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		http.Error(w, "saving upload failed", http.StatusInternalServerError)
		return
	}

	targetPath := filepath.Join(targetDir, filepath.Base(header.Filename))
	dst, err := os.Create(targetPath)
	if err != nil {
		http.Error(w, "saving upload failed", http.StatusInternalServerError)
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		http.Error(w, "saving upload failed", http.StatusInternalServerError)
		return
	}
	dst.Close()

	indexed, err := s.pipeline.IngestFile(r.Context(), targetPath, s.cfg.LibraryDir)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if indexed {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "indexed",
			"message": fmt.Sprintf("document %q uploaded and indexed", header.Filename),
			"file":    header.Filename,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "saved_not_indexed",
		"message": fmt.Sprintf("document %q was saved but did not pass metadata validation; expected <category>/<system?>/<title>__<version>%s", header.Filename, ext),
		"file":    header.Filename,
	})
}

func (s *Server) handleReindex(w http.ResponseWriter, r *http.Request) {
	stats, err := s.pipeline.IngestDirectory(r.Context(), s.cfg.LibraryDir)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.ledger == nil {
		http.Error(w, "ingestion ledger is not configured", http.StatusServiceUnavailable)
		return
	}
	runs, err := s.ledger.RecentRuns(r.Context(), 20)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The response has already started, so an encode failure is unrecoverable.
	_ = json.NewEncoder(w).Encode(v)
}
