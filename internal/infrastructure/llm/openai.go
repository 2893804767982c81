package llm

import (
	"context"
	"fmt"
	"log"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/kalyan4133/Sales-project/internal/domain"
)

// OpenAIBackend implements the extraction capability via the OpenAI chat API.
type OpenAIBackend struct {
	client      *openai.Client
	model       string
	maxTokens   int
	rateLimiter *rate.Limiter
}

// NewOpenAIBackend creates an OpenAI-backed extraction backend.
// baseURL may be empty to use the public API endpoint.
func NewOpenAIBackend(apiKey, model, baseURL string, maxTokens int) *OpenAIBackend {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if maxTokens <= 0 {
		maxTokens = 900
	}

	return &OpenAIBackend{
		client:    openai.NewClientWithConfig(cfg),
		model:     model,
		maxTokens: maxTokens,
		// Stay well under provider request-per-minute limits
		rateLimiter: rate.NewLimiter(rate.Limit(2), 5),
	}
}

// Analyze sends the note to the model and parses the JSON reply.
func (b *OpenAIBackend) Analyze(ctx context.Context, text string, hints map[string]string) (*domain.Analysis, error) {
	if err := b.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     b.model,
		MaxTokens: b.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(text, hints)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no choices")
	}

	analysis, err := decodeAnalysis(resp.Choices[0].Message.Content)
	if err != nil {
		log.Printf("[LLM] OpenAI output rejected: %v", err)
		return nil, err
	}
	return analysis, nil
}
