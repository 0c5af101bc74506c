package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrGeneration covers every way a generation call can fail: network error,
// timeout, non-2xx status, or a reply envelope we cannot read. Callers treat
// all of these the same (fall back to regex-extracted fields), so there is a
// single sentinel rather than one error per cause.
var ErrGeneration = errors.New("generation failed")

// Config carries the process-wide generation settings. It is built once at
// startup and injected into the client; nothing mutates it afterwards.
type Config struct {
	Provider  string        // "ollama" (default) or "openai"
	Endpoint  string        // generation endpoint URL (ollama only)
	APIKey    string        // API key (openai only)
	Model     string        // model identifier
	MaxTokens int           // generation-length cap
	Timeout   time.Duration // single fixed timeout for the whole call
}

const (
	DefaultEndpoint  = "http://127.0.0.1:11434/api/generate"
	DefaultModel     = "llama3.2:3b"
	DefaultMaxTokens = 1500
	DefaultTimeout   = 60 * time.Second
)

// ResponseKind tags the shape of a raw model response.
type ResponseKind int

const (
	KindMap   ResponseKind = iota // already a JSON object
	KindText                      // free text, possibly with embedded JSON
	KindOther                     // null, number, array — nothing usable
)

// RawResponse is the loosely-typed value the generation service hands back.
// The service is free to return a JSON object, a text blob, or garbage; the
// sanitizer decides what to do with each case by switching on Kind.
type RawResponse struct {
	Kind ResponseKind
	Map  map[string]any
	Text string
}

// DecodeRaw classifies the designated response field of the reply envelope.
// JSON null unmarshals into both maps and strings without error, so it is
// checked explicitly before either probe.
func DecodeRaw(raw json.RawMessage) RawResponse {
	if string(bytes.TrimSpace(raw)) == "null" {
		return RawResponse{Kind: KindOther}
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err == nil {
		return RawResponse{Kind: KindMap, Map: m}
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return RawResponse{Kind: KindText, Text: s}
	}

	return RawResponse{Kind: KindOther}
}

// Generator is the interface the parsing pipeline depends on.
type Generator interface {
	Generate(ctx context.Context, prompt string) (RawResponse, error)
}

// NewGenerator creates the configured generation client. Defaults are filled
// in here so callers can pass a sparse Config.
func NewGenerator(cfg Config) (Generator, error) {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	switch strings.ToLower(cfg.Provider) {
	case "ollama", "":
		if cfg.Endpoint == "" {
			cfg.Endpoint = DefaultEndpoint
		}
		return newOllamaClient(cfg), nil
	case "openai":
		return newOpenAIClient(cfg), nil
	default:
		return nil, fmt.Errorf("unknown generation provider: %s", cfg.Provider)
	}
}
