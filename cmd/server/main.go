package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"resumix/internal/index"
	"resumix/internal/llm"
	"resumix/internal/parser"
	"resumix/internal/store"
)

func main() {
	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg := llm.Config{
		Provider:  os.Getenv("LLM_PROVIDER"),
		Endpoint:  os.Getenv("OLLAMA_URL"),
		APIKey:    os.Getenv("OPENAI_API_KEY"),
		Model:     os.Getenv("LLM_MODEL"),
		MaxTokens: envInt("LLM_MAX_TOKENS", llm.DefaultMaxTokens),
		Timeout:   time.Duration(envInt("LLM_TIMEOUT_SECS", 60)) * time.Second,
	}

	gen, err := llm.NewGenerator(cfg)
	if err != nil {
		slog.Error("failed to configure generation client", "error", err)
		os.Exit(1)
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	resumeStore, err := store.NewResumeStore(filepath.Join(dataDir, "resumes"))
	if err != nil {
		slog.Error("failed to init resume store", "error", err)
		os.Exit(1)
	}

	searchIndex, err := index.Open(filepath.Join(dataDir, "resumes.index"))
	if err != nil {
		slog.Error("failed to open search index", "error", err)
		os.Exit(1)
	}
	defer searchIndex.Close()

	srv := &Server{
		cfg:    cfg,
		parser: parser.New(gen, slog.Default()),
		store:  resumeStore,
		index:  searchIndex,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/", srv.handleRoot)
	mux.HandleFunc("/api/resume/upload", srv.handleUpload)
	mux.HandleFunc("/api/resumes", srv.handleResumes)
	mux.HandleFunc("/api/resumes/result", srv.handleResumeResult)
	mux.HandleFunc("/api/resumes/search", srv.handleSearch)
	mux.HandleFunc("/api/stats", srv.handleStats)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	slog.Info("Resumix server starting", "port", port, "provider", cfg.Provider, "model", cfg.Model)
	if err := http.ListenAndServe(":"+port, corsMiddleware(mux)); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
		slog.Warn("ignoring invalid numeric env value", "key", key, "value", v)
	}
	return fallback
}
