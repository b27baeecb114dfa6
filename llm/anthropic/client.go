// Package anthropic provides an Anthropic-backed llm.Client.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/MrPergite/lookapp-sub001/llm"
)

// DefaultModel is used when a request does not name a model.
const DefaultModel = anthropic.ModelClaude3_5HaikuLatest

// defaultMaxTokens applies when a request leaves MaxTokens unset; the
// Anthropic API requires an explicit value.
const defaultMaxTokens = 1024

// Client wraps the Anthropic API client.
type Client struct {
	client anthropic.Client
}

// Config for the Anthropic client.
type Config struct {
	APIKey  string
	BaseURL string
}

// New creates a client with the given config.
func New(cfg Config) *Client {
	var opts []option.RequestOption
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &Client{client: anthropic.NewClient(opts...)}
}

// NewFromEnv creates a client from the ANTHROPIC_API_KEY environment
// variable.
func NewFromEnv() *Client {
	return New(Config{APIKey: os.Getenv("ANTHROPIC_API_KEY")})
}

// Complete sends one completion request.
func (c *Client) Complete(ctx context.Context, req llm.Request) (*llm.Response, error) {
	model := anthropic.Model(req.Model)
	if req.Model == "" {
		model = DefaultModel
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     model,
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.User)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(float64(req.Temperature))
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic completion failed: %w", err)
	}

	var content string
	for _, block := range resp.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}
	if content == "" {
		return nil, errors.New("anthropic returned no text content")
	}

	return &llm.Response{
		Content: content,
		Usage: llm.Usage{
			PromptTokens:     int(resp.Usage.InputTokens),
			CompletionTokens: int(resp.Usage.OutputTokens),
			TotalTokens:      int(resp.Usage.InputTokens + resp.Usage.OutputTokens),
		},
	}, nil
}
