// Package llm defines the provider-neutral interface the local search
// gateway uses to compose search phrases.
package llm

import "context"

// Request is a single completion request.
type Request struct {
	// System is the system prompt.
	System string

	// User is the user message.
	User string

	// Model is the provider model name. Providers apply their own default
	// when empty.
	Model string

	// Temperature controls randomness.
	Temperature float32

	// MaxTokens limits the response length. Zero means provider default.
	MaxTokens int
}

// Usage tracks token consumption for a completion.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Response is the provider's completion.
type Response struct {
	// Content is the assistant text.
	Content string

	// Usage is the token accounting, when the provider reports it.
	Usage Usage
}

// Client is implemented by LLM providers.
type Client interface {
	// Complete sends one completion request.
	Complete(ctx context.Context, req Request) (*Response, error)
}
