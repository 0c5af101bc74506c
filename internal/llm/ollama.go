package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// OllamaClient talks to an Ollama-style /api/generate endpoint. One attempt
// per call, bounded by the configured timeout — no retry, no backoff.
type OllamaClient struct {
	endpoint  string
	model     string
	maxTokens int
	client    *http.Client
}

func newOllamaClient(cfg Config) *OllamaClient {
	return &OllamaClient{
		endpoint:  cfg.Endpoint,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		client:    &http.Client{Timeout: cfg.Timeout},
	}
}

// generateEnvelope is the slice of the Ollama reply we care about. The
// response field is kept raw because its shape is not under our control.
type generateEnvelope struct {
	Response json.RawMessage `json:"response"`
}

func (c *OllamaClient) Generate(ctx context.Context, prompt string) (RawResponse, error) {
	reqID := uuid.New().String()
	start := time.Now()

	reqBody, _ := json.Marshal(map[string]interface{}{
		"model":      c.model,
		"prompt":     prompt,
		"max_tokens": c.maxTokens,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(reqBody))
	if err != nil {
		return RawResponse{}, fmt.Errorf("%w: build request: %v", ErrGeneration, err)
	}
	req.Header.Set("Content-Type", "application/json")

	slog.Info("llm.http.request",
		"req_id", reqID,
		"url", c.endpoint,
		"model", c.model,
		"prompt_length", len(prompt),
	)

	resp, err := c.client.Do(req)
	if err != nil {
		slog.Error("llm.http.send_error", "req_id", reqID, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return RawResponse{}, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	defer resp.Body.Close()

	slog.Info("llm.http.response",
		"req_id", reqID,
		"status", resp.StatusCode,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode/100 != 2 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return RawResponse{}, fmt.Errorf("%w: status %d - %s", ErrGeneration, resp.StatusCode, string(bodyBytes))
	}

	var envelope generateEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return RawResponse{}, fmt.Errorf("%w: decode envelope: %v", ErrGeneration, err)
	}
	if len(envelope.Response) == 0 {
		return RawResponse{}, fmt.Errorf("%w: envelope has no response field", ErrGeneration)
	}

	return DecodeRaw(envelope.Response), nil
}
