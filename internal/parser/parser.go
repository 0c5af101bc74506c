package parser

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"resumix/internal/extractor"
	"resumix/internal/llm"
)

// Pipeline stage names, in execution order. They show up verbatim in the
// parse.stage log events.
const (
	stageExtractText      = "extracting_text"
	stageExtractBasicInfo = "extracting_basic_info"
	stageBuildPrompt      = "building_prompt"
	stageCallModel        = "calling_model"
	stageSanitize         = "sanitizing_response"
	stageMerge            = "merging"
	stageFallback         = "falling_back"
)

// Parser runs the extraction-and-reconciliation pipeline. Each request is
// independent; the only shared state is the injected generation client and
// logger, both of which are safe for concurrent use.
type Parser struct {
	gen    llm.Generator
	logger *slog.Logger
}

func New(gen llm.Generator, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{gen: gen, logger: logger}
}

// Parse converts raw PDF bytes into the final field map. An unreadable
// document is fatal — there is no fallback data yet at that point. Any
// failure after basic-info extraction (generation call or sanitization)
// discards the partial output and returns BasicInfo unchanged.
func (p *Parser) Parse(ctx context.Context, data []byte) (map[string]any, error) {
	reqID := uuid.New().String()

	start := time.Now()
	text, err := extractor.ExtractText(data)
	p.stage(reqID, stageExtractText, start, err)
	if err != nil {
		return nil, err
	}

	return p.parseText(ctx, reqID, text), nil
}

// ParseText runs the pipeline on already-extracted text. Exposed for
// callers that bring their own text (and for exercising the pipeline
// without a PDF in front of it).
func (p *Parser) ParseText(ctx context.Context, text string) map[string]any {
	return p.parseText(ctx, uuid.New().String(), text)
}

func (p *Parser) parseText(ctx context.Context, reqID, text string) map[string]any {
	start := time.Now()
	basic := ExtractBasicInfo(text)
	p.stage(reqID, stageExtractBasicInfo, start, nil)

	start = time.Now()
	prompt := BuildPrompt(text)
	p.stage(reqID, stageBuildPrompt, start, nil)

	start = time.Now()
	raw, err := p.gen.Generate(ctx, prompt)
	p.stage(reqID, stageCallModel, start, err)
	if err != nil {
		return p.fallback(reqID, basic)
	}

	start = time.Now()
	structured, err := Sanitize(raw)
	p.stage(reqID, stageSanitize, start, err)
	if err != nil {
		return p.fallback(reqID, basic)
	}

	start = time.Now()
	merged := MergeBasicInfo(structured, basic)
	p.stage(reqID, stageMerge, start, nil)

	return merged
}

// fallback returns the regex-derived fields unchanged. Partial generation
// output is never mixed in: the result is either a full merge or this.
func (p *Parser) fallback(reqID string, basic BasicInfo) map[string]any {
	p.logger.Warn("parse.stage",
		"req_id", reqID,
		"stage", stageFallback,
		"outcome", "fallback",
	)
	return basic.Fields()
}

func (p *Parser) stage(reqID, name string, start time.Time, err error) {
	if err != nil {
		p.logger.Error("parse.stage",
			"req_id", reqID,
			"stage", name,
			"outcome", "failed",
			"elapsed_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		return
	}
	p.logger.Info("parse.stage",
		"req_id", reqID,
		"stage", name,
		"outcome", "ok",
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
}
