package lookapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// TryOnStatus is the lifecycle state of a try-on job.
type TryOnStatus string

const (
	// TryOnPending means the job is queued or rendering.
	TryOnPending TryOnStatus = "pending"

	// TryOnSucceeded means the rendered image is ready.
	TryOnSucceeded TryOnStatus = "succeeded"

	// TryOnFailed means rendering failed; Error carries the reason.
	TryOnFailed TryOnStatus = "failed"
)

// TryOnRequest submits a person photo and a garment image for rendering.
type TryOnRequest struct {
	// PersonImage is the shopper's photo (base64 or URL).
	PersonImage string `json:"personImage"`

	// GarmentImage is the garment to render onto the photo.
	GarmentImage string `json:"garmentImage"`

	// ProductID optionally links the job to a search result.
	ProductID string `json:"productId,omitempty"`
}

// TryOnJob is the proxied job state.
type TryOnJob struct {
	ID          string      `json:"id"`
	Status      TryOnStatus `json:"status"`
	ResultImage string      `json:"resultImage,omitempty"`
	Error       string      `json:"error,omitempty"`
}

// TryOnClient proxies to the external virtual try-on service. Jobs are
// asynchronous: Submit returns a job id, Result polls it. Calls retry once
// on server or transport failure, like the search gateway.
type TryOnClient struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenProvider
	logger     *slog.Logger
	retryDelay time.Duration
}

// TryOnClientConfig configures a TryOnClient.
type TryOnClientConfig struct {
	// BaseURL is the try-on service root (required).
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

// NewTryOnClient creates a try-on proxy client.
func NewTryOnClient(cfg TryOnClientConfig) (*TryOnClient, error) {
	if cfg.BaseURL == "" {
		return nil, NewValidationError("try-on BaseURL is required")
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
	return &TryOnClient{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: cfg.HTTPClient,
		tokens:     cfg.Tokens,
		logger:     cfg.Logger,
		retryDelay: cfg.RetryDelay,
	}, nil
}

// Submit starts a try-on job.
func (c *TryOnClient) Submit(ctx context.Context, req TryOnRequest) (*TryOnJob, error) {
	if req.PersonImage == "" || req.GarmentImage == "" {
		return nil, NewValidationError("try-on needs a person image and a garment image")
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, NewGatewayError("failed to marshal try-on request", err)
	}

	var job TryOnJob
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/api/tryon", body, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// Result polls a job by id.
func (c *TryOnClient) Result(ctx context.Context, jobID string) (*TryOnJob, error) {
	if jobID == "" {
		return nil, NewValidationError("job id is required")
	}

	var job TryOnJob
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/api/tryon/"+jobID, nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// do sends one request, retrying exactly once after a fixed delay on 5xx or
// transport failure.
func (c *TryOnClient) do(ctx context.Context, method, url string, body []byte, result any) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return NewError(ErrCodeAuth, "failed to resolve auth token", err)
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			c.logger.Debug("retrying try-on call", slog.String("url", url))
			select {
			case <-time.After(c.retryDelay):
			case <-ctx.Done():
				return NewError(ErrCodeTimeout, "try-on call canceled", ctx.Err())
			}
		}

		retryable, err := c.doOnce(ctx, method, url, token, body, result)
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

func (c *TryOnClient) doOnce(ctx context.Context, method, url, token string, body []byte, result any) (retryable bool, err error) {
	httpReq, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return false, NewGatewayError("failed to create try-on request", err)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return true, NewGatewayError("try-on service unreachable", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return true, NewGatewayError(fmt.Sprintf("try-on service returned %d", resp.StatusCode), nil)
	case resp.StatusCode == http.StatusNotFound:
		return false, NewNotFoundError("try-on job", "")
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return false, NewError(ErrCodeAuth, "try-on service rejected credentials", ErrUnauthorized)
	case resp.StatusCode >= 400:
		msg := readErrorMessage(resp.Body)
		return false, NewGatewayError(fmt.Sprintf("try-on service returned %d: %s", resp.StatusCode, msg), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return false, NewGatewayError("failed to decode try-on response", err)
	}
	return false, nil
}
