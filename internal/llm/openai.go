package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"
)

// OpenAIClient runs the same single-shot generation contract against the
// OpenAI chat-completion API. The assistant message content is treated as the
// raw model response text; the sanitizer handles everything after that.
type OpenAIClient struct {
	client    *openai.Client
	model     string
	maxTokens int
}

func newOpenAIClient(cfg Config) *OpenAIClient {
	model := cfg.Model
	if model == DefaultModel {
		model = openai.GPT4oMini
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	return &OpenAIClient{
		client:    openai.NewClientWithConfig(clientCfg),
		model:     model,
		maxTokens: cfg.MaxTokens,
	}
}

func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (RawResponse, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   c.maxTokens,
		Temperature: 0.1,
	})
	if err != nil {
		return RawResponse{}, fmt.Errorf("%w: openai: %v", ErrGeneration, err)
	}
	if len(resp.Choices) == 0 {
		return RawResponse{}, fmt.Errorf("%w: openai empty response", ErrGeneration)
	}

	return RawResponse{Kind: KindText, Text: resp.Choices[0].Message.Content}, nil
}
