package lookapp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/MrPergite/lookapp-sub001/llm"
)

// ProductSearcher fetches raw products for a composed search phrase. It is
// the product half of a self-hosted gateway; implementations typically wrap
// a shopping search API.
type ProductSearcher interface {
	Search(ctx context.Context, phrase string, usedItems bool) ([]RawProduct, string, error)
}

// ProductSearcherFunc adapts a function to the ProductSearcher interface.
type ProductSearcherFunc func(ctx context.Context, phrase string, usedItems bool) ([]RawProduct, string, error)

func (f ProductSearcherFunc) Search(ctx context.Context, phrase string, usedItems bool) ([]RawProduct, string, error) {
	return f(ctx, phrase, usedItems)
}

// defaultComposerPrompt instructs the model to distill chat history into a
// product search phrase.
const defaultComposerPrompt = `You are a fashion shopping assistant.
Given the conversation so far, compose one concise product search phrase
capturing what the shopper wants: garment type, color, style, brand if named.
If the shopper attached a photo, describe the garment in it.
If the request is not about clothing or accessories, reply starting with
"Sorry" and explain briefly. Otherwise reply with the search phrase only.`

// LocalGateway is a SearchGateway for deployments without the hosted
// backend: it composes the search phrase with an LLM provider and fetches
// products through an injected ProductSearcher.
type LocalGateway struct {
	llm      llm.Client
	products ProductSearcher
	prompt   string
	model    string
	logger   *slog.Logger
}

// LocalGatewayConfig configures a LocalGateway.
type LocalGatewayConfig struct {
	// LLM composes search phrases (required).
	LLM llm.Client

	// Products fetches results for a phrase (required).
	Products ProductSearcher

	// ComposerPrompt overrides the phrase-composer system prompt.
	ComposerPrompt string

	// Model names the provider model. Optional.
	Model string

	// Logger is the structured logger. Optional.
	Logger *slog.Logger
}

// NewLocalGateway creates a self-hosted search gateway.
func NewLocalGateway(cfg LocalGatewayConfig) (*LocalGateway, error) {
	if cfg.LLM == nil {
		return nil, NewValidationError("LocalGateway requires an LLM client")
	}
	if cfg.Products == nil {
		return nil, NewValidationError("LocalGateway requires a ProductSearcher")
	}
	if cfg.ComposerPrompt == "" {
		cfg.ComposerPrompt = defaultComposerPrompt
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &LocalGateway{
		llm:      cfg.LLM,
		products: cfg.Products,
		prompt:   cfg.ComposerPrompt,
		model:    cfg.Model,
		logger:   cfg.Logger,
	}, nil
}

// SearchPart composes the search phrase from the chat history.
func (g *LocalGateway) SearchPart(ctx context.Context, req SearchPartRequest) (*SearchPartResponse, error) {
	resp, err := g.llm.Complete(ctx, llm.Request{
		System:      g.prompt,
		User:        renderHistory(req.ChatHistory),
		Model:       g.model,
		Temperature: 0.3,
	})
	if err != nil {
		return nil, NewGatewayError("phrase composition failed", err)
	}

	phrase := strings.TrimSpace(resp.Content)
	g.logger.Debug("composed search phrase",
		slog.String("phrase", phrase),
		slog.Int("tokens", resp.Usage.TotalTokens),
	)

	return &SearchPartResponse{ConversationResponse: phrase}, nil
}

// SearchProducts fetches products for the last assistant phrase in the
// history.
func (g *LocalGateway) SearchProducts(ctx context.Context, req SearchProductsRequest) (*SearchProductsResponse, error) {
	phrase := lastAssistantContent(req.ChatHistory)
	if phrase == "" {
		return nil, NewValidationError("chat history carries no composed search phrase")
	}

	results, sessionID, err := g.products.Search(ctx, phrase, req.UsedItems)
	if err != nil {
		return nil, NewGatewayError("product search failed", err)
	}
	if sessionID == "" {
		sessionID = req.SessionID
	}

	g.logger.Debug("product search completed",
		slog.String("phrase", phrase),
		slog.Int("results", len(results)),
	)

	return &SearchProductsResponse{ShoppingResults: results, SessionID: sessionID}, nil
}

func renderHistory(history []GatewayMessage) string {
	var b strings.Builder
	for _, msg := range history {
		fmt.Fprintf(&b, "%s: %s\n", msg.Role, msg.Content)
		if msg.Image != "" {
			b.WriteString("(photo attached)\n")
		}
	}
	return b.String()
}

func lastAssistantContent(history []GatewayMessage) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == string(RoleAssistant) {
			return history[i].Content
		}
	}
	return ""
}
