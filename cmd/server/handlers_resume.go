package main

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"resumix/internal/extractor"
	"resumix/internal/index"
)

// ========== Upload & Parse ==========

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Parse multipart (max 20MB)
	if err := r.ParseMultipartForm(20 << 20); err != nil {
		jsonErr(w, "Failed to parse upload: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonErr(w, "No file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	// The filename gate runs before any pipeline work.
	if strings.ToLower(filepath.Ext(header.Filename)) != ".pdf" {
		jsonErr(w, "Only PDF files are supported at this stage.", http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		jsonErr(w, "Failed to read upload: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, err := s.parser.Parse(r.Context(), data)
	if err != nil {
		// Unreadable document — nothing to fall back on.
		if errors.Is(err, extractor.ErrBadDocument) {
			jsonErr(w, "Uploaded file is not a readable PDF", http.StatusBadRequest)
			return
		}
		jsonErr(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := UploadResponse{Filename: header.Filename, ParsedData: result}

	// Recording and indexing are best-effort: a storage hiccup should not
	// cost the caller a parse that already succeeded.
	rec, err := s.store.Add(header.Filename, result)
	if err != nil {
		slog.Warn("resume.store_failed", "filename", header.Filename, "error", err)
		jsonResp(w, resp)
		return
	}
	resp.ID = rec.ID

	rawText, _ := result["raw_text"].(string)
	if err := s.index.Add(index.Entry{
		ID:       rec.ID,
		Filename: rec.Filename,
		Name:     rec.Name,
		Email:    rec.Email,
		Skills:   index.FlattenSkills(result),
		Text:     rawText,
	}); err != nil {
		slog.Warn("resume.index_failed", "id", rec.ID, "error", err)
	}

	jsonResp(w, resp)
}

// ========== Listing & Retrieval ==========

func (s *Server) handleResumes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		jsonResp(w, s.store.List())

	case http.MethodDelete:
		var req struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
			jsonErr(w, "id is required", http.StatusBadRequest)
			return
		}
		if err := s.store.Delete(req.ID); err != nil {
			jsonErr(w, err.Error(), http.StatusNotFound)
			return
		}
		if err := s.index.Remove(req.ID); err != nil {
			slog.Warn("resume.index_remove_failed", "id", req.ID, "error", err)
		}
		jsonResp(w, map[string]string{"status": "deleted"})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleResumeResult(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		jsonErr(w, "id is required", http.StatusBadRequest)
		return
	}

	rec, err := s.store.Get(id)
	if err != nil {
		jsonErr(w, err.Error(), http.StatusNotFound)
		return
	}
	result, err := s.store.Result(id)
	if err != nil {
		jsonErr(w, err.Error(), http.StatusNotFound)
		return
	}

	jsonResp(w, ResumeResponse{Record: *rec, ParsedData: result})
}

// ========== Search ==========

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		jsonErr(w, "q is required", http.StatusBadRequest)
		return
	}

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	hits, err := s.index.Search(query, limit)
	if err != nil {
		jsonErr(w, "search failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	results := []SearchResult{}
	for _, hit := range hits {
		rec, err := s.store.Get(hit.ID)
		if err != nil {
			// Index and store can drift if a delete half-failed; skip.
			continue
		}
		results = append(results, SearchResult{Record: *rec, Score: hit.Score})
	}

	jsonResp(w, results)
}

// ========== Stats & Health ==========

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	_, countErr := s.index.Count()
	jsonResp(w, StatsResponse{
		Resumes:    s.store.Count(),
		IndexReady: countErr == nil,
		Provider:   s.cfg.Provider,
		Model:      s.cfg.Model,
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	jsonResp(w, map[string]string{"message": "Resumix backend is running!"})
}
