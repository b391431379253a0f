// Package llm is the fallback classifier consulted for grey-zone posts.
// It wraps an external model behind a content-hash cache, a timeout and
// a circuit breaker; every failure surfaces as a nil hint.
package llm

import (
	"context"
	"errors"
	"fmt"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"golang.org/x/time/rate"
)

var (
	// ErrEmptyResponse is returned when the model replies without text.
	ErrEmptyResponse = errors.New("empty model response")
	// ErrNoJSON is returned when the reply holds no JSON object.
	ErrNoJSON = errors.New("no JSON object found in response")
	// ErrInvalidHint is returned when the JSON lacks the food verdict.
	ErrInvalidHint = errors.New("response is not a valid hint")
)

// Request is a single-turn completion request.
type Request struct {
	System      string
	Prompt      string
	ImageURLs   []string
	MaxTokens   int
	Temperature float64
}

// Model completes a request and returns the reply text.
type Model interface {
	Complete(ctx context.Context, req Request) (string, error)
}

const defaultMaxTokens = 256

// AnthropicModel calls the Anthropic Messages API.
type AnthropicModel struct {
	client anthropic.Client
	model  string
}

// NewAnthropicModel creates a model client. Extra options are appended
// after the API key.
func NewAnthropicModel(apiKey, model string, opts ...option.RequestOption) *AnthropicModel {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &AnthropicModel{
		client: anthropic.NewClient(opts...),
		model:  model,
	}
}

// Complete sends the prompt, preceded by any images, as one user message.
func (m *AnthropicModel) Complete(ctx context.Context, req Request) (string, error) {
	blocks := make([]anthropic.ContentBlockParamUnion, 0, len(req.ImageURLs)+1)
	for _, u := range req.ImageURLs {
		blocks = append(blocks, anthropic.NewImageBlock(anthropic.URLImageSourceParam{URL: u}))
	}
	blocks = append(blocks, anthropic.NewTextBlock(req.Prompt))

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(m.model),
		MaxTokens:   int64(maxTokens),
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(blocks...)},
		Temperature: anthropic.Float(req.Temperature),
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	msg, err := m.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic messages call: %w", err)
	}

	for _, block := range msg.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text, nil
		}
	}
	return "", ErrEmptyResponse
}

// RateLimitedModel throttles calls to the wrapped model.
type RateLimitedModel struct {
	next    Model
	limiter *rate.Limiter
}

// NewRateLimitedModel wraps next with a token bucket of rps and burst.
func NewRateLimitedModel(next Model, rps float64, burst int) *RateLimitedModel {
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimitedModel{next: next, limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

// Complete waits for a token, then delegates.
func (m *RateLimitedModel) Complete(ctx context.Context, req Request) (string, error) {
	if err := m.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}
	return m.next.Complete(ctx, req)
}
