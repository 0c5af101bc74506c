package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// ========== DecodeRaw ==========

func TestDecodeRaw_JSONObject(t *testing.T) {
	raw := DecodeRaw(json.RawMessage(`{"name": "John", "Skills": {"Languages": ["Go"]}}`))
	if raw.Kind != KindMap {
		t.Fatalf("kind = %v, want KindMap", raw.Kind)
	}
	if raw.Map["name"] != "John" {
		t.Errorf("map name = %v, want John", raw.Map["name"])
	}
}

func TestDecodeRaw_String(t *testing.T) {
	raw := DecodeRaw(json.RawMessage(`"some generated text"`))
	if raw.Kind != KindText {
		t.Fatalf("kind = %v, want KindText", raw.Kind)
	}
	if raw.Text != "some generated text" {
		t.Errorf("text = %q", raw.Text)
	}
}

func TestDecodeRaw_Number(t *testing.T) {
	raw := DecodeRaw(json.RawMessage(`42`))
	if raw.Kind != KindOther {
		t.Errorf("kind = %v, want KindOther for a number", raw.Kind)
	}
}

func TestDecodeRaw_Array(t *testing.T) {
	raw := DecodeRaw(json.RawMessage(`["a", "b"]`))
	if raw.Kind != KindOther {
		t.Errorf("kind = %v, want KindOther for an array", raw.Kind)
	}
}

func TestDecodeRaw_Null(t *testing.T) {
	// null unmarshals into both maps and strings without error, so it needs
	// its own check to land in the "nothing usable" bucket.
	raw := DecodeRaw(json.RawMessage(`null`))
	if raw.Kind != KindOther {
		t.Errorf("kind = %v, want KindOther for null", raw.Kind)
	}
}

// ========== OllamaClient.Generate ==========

func ollamaTestClient(url string) *OllamaClient {
	return newOllamaClient(Config{
		Endpoint:  url,
		Model:     DefaultModel,
		MaxTokens: DefaultMaxTokens,
		Timeout:   2 * time.Second,
	})
}

func TestGenerate_TextResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("request body not JSON: %v", err)
		}
		if body["model"] != DefaultModel {
			t.Errorf("model = %v, want %s", body["model"], DefaultModel)
		}
		if body["prompt"] == "" {
			t.Error("prompt missing from request body")
		}
		if body["max_tokens"] == nil {
			t.Error("max_tokens missing from request body")
		}
		json.NewEncoder(w).Encode(map[string]string{"response": `{"Skills": {"Languages": ["Python"]}}`})
	}))
	defer srv.Close()

	got, err := ollamaTestClient(srv.URL).Generate(context.Background(), "parse this resume")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Kind != KindText {
		t.Fatalf("kind = %v, want KindText", got.Kind)
	}
	if got.Text != `{"Skills": {"Languages": ["Python"]}}` {
		t.Errorf("text = %q", got.Text)
	}
}

func TestGenerate_MapResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response": {"name": "Jane"}}`))
	}))
	defer srv.Close()

	got, err := ollamaTestClient(srv.URL).Generate(context.Background(), "p")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Kind != KindMap {
		t.Fatalf("kind = %v, want KindMap", got.Kind)
	}
	if got.Map["name"] != "Jane" {
		t.Errorf("map name = %v, want Jane", got.Map["name"])
	}
}

func TestGenerate_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := ollamaTestClient(srv.URL).Generate(context.Background(), "p")
	if !errors.Is(err, ErrGeneration) {
		t.Errorf("error = %v, want ErrGeneration", err)
	}
}

func TestGenerate_MalformedEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`this is not json`))
	}))
	defer srv.Close()

	_, err := ollamaTestClient(srv.URL).Generate(context.Background(), "p")
	if !errors.Is(err, ErrGeneration) {
		t.Errorf("error = %v, want ErrGeneration", err)
	}
}

func TestGenerate_MissingResponseField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"done": true}`))
	}))
	defer srv.Close()

	_, err := ollamaTestClient(srv.URL).Generate(context.Background(), "p")
	if !errors.Is(err, ErrGeneration) {
		t.Errorf("error = %v, want ErrGeneration", err)
	}
}

func TestGenerate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`{"response": "too late"}`))
	}))
	defer srv.Close()

	c := newOllamaClient(Config{
		Endpoint: srv.URL,
		Model:    DefaultModel,
		Timeout:  50 * time.Millisecond,
	})
	_, err := c.Generate(context.Background(), "p")
	if !errors.Is(err, ErrGeneration) {
		t.Errorf("error = %v, want ErrGeneration on timeout", err)
	}
}

func TestGenerate_ServerUnreachable(t *testing.T) {
	c := newOllamaClient(Config{
		Endpoint: "http://127.0.0.1:1/api/generate",
		Model:    DefaultModel,
		Timeout:  time.Second,
	})
	_, err := c.Generate(context.Background(), "p")
	if !errors.Is(err, ErrGeneration) {
		t.Errorf("error = %v, want ErrGeneration when unreachable", err)
	}
}

// ========== NewGenerator ==========

func TestNewGenerator_DefaultsToOllama(t *testing.T) {
	g, err := NewGenerator(Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	oc, ok := g.(*OllamaClient)
	if !ok {
		t.Fatalf("generator type = %T, want *OllamaClient", g)
	}
	if oc.endpoint != DefaultEndpoint {
		t.Errorf("endpoint = %q, want default", oc.endpoint)
	}
	if oc.model != DefaultModel {
		t.Errorf("model = %q, want default", oc.model)
	}
	if oc.maxTokens != DefaultMaxTokens {
		t.Errorf("maxTokens = %d, want default", oc.maxTokens)
	}
}

func TestNewGenerator_OpenAI(t *testing.T) {
	g, err := NewGenerator(Config{Provider: "openai", APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := g.(*OpenAIClient); !ok {
		t.Errorf("generator type = %T, want *OpenAIClient", g)
	}
}

func TestNewGenerator_UnknownProvider(t *testing.T) {
	_, err := NewGenerator(Config{Provider: "mystery"})
	if err == nil {
		t.Error("expected error for unknown provider")
	}
}
