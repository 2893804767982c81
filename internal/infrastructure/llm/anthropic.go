package llm

import (
	"context"
	"fmt"
	"log"

	"github.com/liushuangls/go-anthropic/v2"
	"golang.org/x/time/rate"

	"github.com/kalyan4133/Sales-project/internal/domain"
)

// AnthropicBackend implements the extraction capability via the Anthropic
// messages API.
type AnthropicBackend struct {
	client      *anthropic.Client
	model       string
	maxTokens   int
	rateLimiter *rate.Limiter
}

// NewAnthropicBackend creates an Anthropic-backed extraction backend.
func NewAnthropicBackend(apiKey, model string, maxTokens int) *AnthropicBackend {
	if maxTokens <= 0 {
		maxTokens = 900
	}

	return &AnthropicBackend{
		client:      anthropic.NewClient(apiKey),
		model:       model,
		maxTokens:   maxTokens,
		rateLimiter: rate.NewLimiter(rate.Limit(2), 5),
	}
}

// Analyze sends the note to the model and parses the JSON reply.
func (b *AnthropicBackend) Analyze(ctx context.Context, text string, hints map[string]string) (*domain.Analysis, error) {
	if err := b.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	resp, err := b.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(b.model),
		System:    systemPrompt,
		MaxTokens: b.maxTokens,
		Messages: []anthropic.Message{
			{
				Role: anthropic.RoleUser,
				Content: []anthropic.MessageContent{
					anthropic.NewTextMessageContent(buildPrompt(text, hints)),
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic request failed: %w", err)
	}
	if len(resp.Content) == 0 || resp.Content[0].Text == nil {
		return nil, fmt.Errorf("anthropic returned no content")
	}

	analysis, err := decodeAnalysis(*resp.Content[0].Text)
	if err != nil {
		log.Printf("[LLM] Anthropic output rejected: %v", err)
		return nil, err
	}
	return analysis, nil
}
