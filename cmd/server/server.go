package main

import (
	"encoding/json"
	"net/http"

	"resumix/internal/index"
	"resumix/internal/llm"
	"resumix/internal/parser"
	"resumix/internal/store"
)

// Server holds all shared state. Everything here is either immutable after
// startup (cfg, parser) or internally synchronized (store, index).
type Server struct {
	cfg    llm.Config
	parser *parser.Parser
	store  *store.ResumeStore
	index  *index.Index
}

// ----- Request / Response types -----

type UploadResponse struct {
	Filename   string         `json:"filename"`
	ID         string         `json:"id,omitempty"`
	ParsedData map[string]any `json:"parsed_data"`
}

type ResumeResponse struct {
	Record     store.Record   `json:"record"`
	ParsedData map[string]any `json:"parsed_data"`
}

type SearchResult struct {
	Record store.Record `json:"record"`
	Score  float64      `json:"score"`
}

type StatsResponse struct {
	Resumes    int    `json:"resumes"`
	IndexReady bool   `json:"index_ready"`
	Provider   string `json:"provider"`
	Model      string `json:"model"`
}

// ========== Middleware ==========

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ========== Helpers ==========

func jsonResp(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func jsonErr(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
