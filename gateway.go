package lookapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// GatewayMessage is one chat-history entry as the search gateway expects it.
type GatewayMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Image   string `json:"image,omitempty"`
}

// SearchPartRequest asks the gateway to compose a search phrase from the
// conversation so far.
type SearchPartRequest struct {
	ChatHistory     []GatewayMessage `json:"chatHistory"`
	UsedItems       bool             `json:"usedItems"`
	Personalization bool             `json:"personalization"`
	InputType       InputType        `json:"inputType"`
	SessionID       string           `json:"sessionId,omitempty"`
}

// SearchPartResponse carries the AI-composed search phrase.
type SearchPartResponse struct {
	ConversationResponse string `json:"conversationResponse"`
}

// SearchProductsRequest asks the gateway for products matching the
// conversation including the composed phrase.
type SearchProductsRequest struct {
	ChatHistory     []GatewayMessage `json:"chatHistory"`
	UsedItems       bool             `json:"usedItems"`
	Personalization bool             `json:"personalization"`
	SessionID       string           `json:"sessionId,omitempty"`
}

// SearchProductsResponse carries a raw product batch and the session id to
// thread into subsequent requests.
type SearchProductsResponse struct {
	ShoppingResults []RawProduct `json:"shopping_results"`
	SessionID       string       `json:"sessionId"`
}

// SearchGateway is the external service pair that turns chat context into a
// search phrase and then into product results.
type SearchGateway interface {
	SearchPart(ctx context.Context, req SearchPartRequest) (*SearchPartResponse, error)
	SearchProducts(ctx context.Context, req SearchProductsRequest) (*SearchProductsResponse, error)
}

// TokenProvider supplies the caller's auth token. An empty token means the
// caller is signed out and public endpoint variants are used.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// TokenProviderFunc adapts a function to the TokenProvider interface.
type TokenProviderFunc func(ctx context.Context) (string, error)

func (f TokenProviderFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// AnonymousTokens is a TokenProvider that never authenticates.
var AnonymousTokens TokenProvider = TokenProviderFunc(func(context.Context) (string, error) {
	return "", nil
})

// HTTPGateway is the SearchGateway implementation that proxies to the
// hosted backend API over HTTP, attaching auth headers when a token is
// available and retrying once on server or transport failure.
type HTTPGateway struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenProvider
	logger     *slog.Logger
	retryDelay time.Duration
}

// HTTPGatewayConfig configures an HTTPGateway.
type HTTPGatewayConfig struct {
	// BaseURL is the backend API root (required).
	BaseURL string

	// Tokens supplies auth tokens. Optional, defaults to anonymous.
	Tokens TokenProvider

	// HTTPClient overrides the default client. Optional.
	HTTPClient *http.Client

	// Logger is the structured logger. Optional.
	Logger *slog.Logger

	// RetryDelay is the fixed pause before the single retry.
	// Defaults to 1 second.
	RetryDelay time.Duration
}

// NewHTTPGateway creates a gateway client for the hosted backend.
func NewHTTPGateway(cfg HTTPGatewayConfig) (*HTTPGateway, error) {
	if cfg.BaseURL == "" {
		return nil, NewValidationError("gateway BaseURL is required")
	}
	if cfg.Tokens == nil {
		cfg.Tokens = AnonymousTokens
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 60 * time.Second}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	return &HTTPGateway{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: cfg.HTTPClient,
		tokens:     cfg.Tokens,
		logger:     cfg.Logger,
		retryDelay: cfg.RetryDelay,
	}, nil
}

// SearchPart calls the search-phrase endpoint.
func (g *HTTPGateway) SearchPart(ctx context.Context, req SearchPartRequest) (*SearchPartResponse, error) {
	var resp SearchPartResponse
	if err := g.post(ctx, "search-part", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SearchProducts calls the product-search endpoint.
func (g *HTTPGateway) SearchProducts(ctx context.Context, req SearchProductsRequest) (*SearchProductsResponse, error) {
	var resp SearchProductsResponse
	if err := g.post(ctx, "search-products", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// post sends one JSON request, retrying exactly once after a fixed delay on
// 5xx or transport failure. 4xx responses are surfaced immediately.
func (g *HTTPGateway) post(ctx context.Context, endpoint string, payload, result any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return NewGatewayError("failed to marshal request", err)
	}

	token, err := g.tokens.Token(ctx)
	if err != nil {
		return NewError(ErrCodeAuth, "failed to resolve auth token", err)
	}

	url := g.endpointURL(endpoint, token != "")

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			g.logger.Debug("retrying gateway call",
				slog.String("endpoint", endpoint),
				slog.Duration("delay", g.retryDelay),
			)
			select {
			case <-time.After(g.retryDelay):
			case <-ctx.Done():
				return NewError(ErrCodeTimeout, "gateway call canceled", ctx.Err())
			}
		}

		retryable, err := g.doOnce(ctx, url, token, body, result)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable {
			return err
		}
	}

	return lastErr
}

func (g *HTTPGateway) doOnce(ctx context.Context, url, token string, body []byte, result any) (retryable bool, err error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return false, NewGatewayError("failed to create request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return true, NewGatewayError("gateway unreachable", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return true, NewGatewayError(fmt.Sprintf("gateway returned %d", resp.StatusCode), nil)
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return false, NewError(ErrCodeAuth, "gateway rejected credentials", ErrUnauthorized)
	case resp.StatusCode >= 400:
		msg := readErrorMessage(resp.Body)
		return false, NewGatewayError(fmt.Sprintf("gateway returned %d: %s", resp.StatusCode, msg), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return false, NewGatewayError("failed to decode gateway response", err)
	}
	return false, nil
}

// endpointURL selects the authenticated or public endpoint variant.
func (g *HTTPGateway) endpointURL(endpoint string, authenticated bool) string {
	if authenticated {
		return g.baseURL + "/api/" + endpoint
	}
	return g.baseURL + "/api/public/" + endpoint
}

func readErrorMessage(r io.Reader) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return "unreadable error body"
	}
	if body.Error != "" {
		return body.Error
	}
	if body.Message != "" {
		return body.Message
	}
	return "no error detail"
}
