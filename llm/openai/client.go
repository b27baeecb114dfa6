// Package openai provides an OpenAI-backed llm.Client.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	oai "github.com/sashabaranov/go-openai"

	"github.com/MrPergite/lookapp-sub001/llm"
)

// DefaultModel is used when a request does not name a model.
const DefaultModel = "gpt-4o-mini"

// Client wraps the OpenAI API client.
type Client struct {
	client *oai.Client
}

// New creates a client from an existing OpenAI API client.
func New(client *oai.Client) *Client {
	return &Client{client: client}
}

// NewWithKey creates a client from an API key.
func NewWithKey(apiKey string) *Client {
	return New(oai.NewClient(apiKey))
}

// Complete sends one completion request.
func (c *Client) Complete(ctx context.Context, req llm.Request) (*llm.Response, error) {
	model := req.Model
	if model == "" {
		model = DefaultModel
	}

	oaiReq := oai.ChatCompletionRequest{
		Model: model,
		Messages: []oai.ChatCompletionMessage{
			{Role: oai.ChatMessageRoleSystem, Content: req.System},
			{Role: oai.ChatMessageRoleUser, Content: req.User},
		},
		Temperature: req.Temperature,
	}
	if req.MaxTokens > 0 {
		oaiReq.MaxTokens = req.MaxTokens
	}

	resp, err := c.client.CreateChatCompletion(ctx, oaiReq)
	if err != nil {
		return nil, fmt.Errorf("openai chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("openai returned no choices")
	}

	return &llm.Response{
		Content: resp.Choices[0].Message.Content,
		Usage: llm.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

// OpenRouterBaseURL is the base URL for the OpenRouter API.
const OpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterConfig holds configuration for creating an OpenRouter client.
type OpenRouterConfig struct {
	// APIKey is your OpenRouter API key (required).
	APIKey string

	// SiteURL is your site URL for OpenRouter rankings (optional).
	SiteURL string

	// SiteName is your site/app name for OpenRouter rankings (optional).
	SiteName string
}

// NewOpenRouter creates a Client configured for OpenRouter, which exposes
// many models through an OpenAI-compatible API.
func NewOpenRouter(cfg OpenRouterConfig) *Client {
	config := oai.DefaultConfig(cfg.APIKey)
	config.BaseURL = OpenRouterBaseURL

	if cfg.SiteURL != "" || cfg.SiteName != "" {
		config.HTTPClient = &http.Client{
			Transport: &openRouterTransport{
				base:     http.DefaultTransport,
				siteURL:  cfg.SiteURL,
				siteName: cfg.SiteName,
			},
		}
	}

	return New(oai.NewClientWithConfig(config))
}

// openRouterTransport adds OpenRouter-specific headers to requests.
type openRouterTransport struct {
	base     http.RoundTripper
	siteURL  string
	siteName string
}

func (t *openRouterTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req2 := req.Clone(req.Context())
	if t.siteURL != "" {
		req2.Header.Set("HTTP-Referer", t.siteURL)
	}
	if t.siteName != "" {
		req2.Header.Set("X-Title", t.siteName)
	}
	return t.base.RoundTrip(req2)
}
