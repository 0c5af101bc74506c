// Command parse runs the resume pipeline on a local PDF and prints the
// resulting field map as JSON. Useful for trying prompts and models without
// standing up the server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"resumix/internal/llm"
	"resumix/internal/parser"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		log.Fatal("usage: parse <resume.pdf>")
	}
	path := os.Args[1]

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", path, err)
	}

	timeoutSecs := 60
	if v := os.Getenv("LLM_TIMEOUT_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			timeoutSecs = n
		}
	}

	gen, err := llm.NewGenerator(llm.Config{
		Provider: os.Getenv("LLM_PROVIDER"),
		Endpoint: os.Getenv("OLLAMA_URL"),
		APIKey:   os.Getenv("OPENAI_API_KEY"),
		Model:    os.Getenv("LLM_MODEL"),
		Timeout:  time.Duration(timeoutSecs) * time.Second,
	})
	if err != nil {
		log.Fatalf("Failed to configure generation client: %v", err)
	}

	p := parser.New(gen, slog.Default())

	start := time.Now()
	result, err := p.Parse(context.Background(), data)
	if err != nil {
		log.Fatalf("Failed to parse %s: %v", path, err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
	fmt.Println(string(out))
	fmt.Fprintf(os.Stderr, "Parsed %s in %v\n", path, time.Since(start))
}
