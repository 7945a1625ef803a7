// Package mistral provides an embedding service adapter using the Mistral
// AI platform API.
package mistral

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/kadolab/kado-cli/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.mistral.ai/v1"
	DefaultModel   = "mistral-embed"
	DefaultTimeout = 60 * time.Second

	// maxRateLimitRetries bounds how often a 429 response is retried
	// before the batch fails. Mistral throttles free-tier keys hard.
	maxRateLimitRetries = 3
)

// Model dimensions for Mistral embedding models.
var modelDimensions = map[string]int{
	"mistral-embed": 1024,
}

// Config holds configuration for the Mistral embedding service.
type Config struct {
	// APIKey is the Mistral API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.mistral.ai/v1).
	BaseURL string

	// Model is the embedding model to use (default: mistral-embed).
	Model string

	// Timeout is the request timeout (default: 60s).
	Timeout time.Duration
}

// EmbeddingService generates embeddings using the Mistral API.
type EmbeddingService struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// embeddingRequest is the Mistral /embeddings request format.
type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

// embeddingResponse is the Mistral /embeddings response format.
type embeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
	Message string `json:"message,omitempty"`
}

// NewEmbeddingService creates a new Mistral embedding service.
func NewEmbeddingService(cfg Config) (*EmbeddingService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("mistral: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &EmbeddingService{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}, nil
}

// Embed generates a vector embedding for the given text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := s.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("mistral: no embedding returned")
	}
	return embeddings[0], nil
}

// EmbedBatch generates embeddings for multiple texts in one request,
// returning one vector per input in input order. Rate-limited responses
// are retried with the server's suggested delay.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	jsonBody, err := json.Marshal(embeddingRequest{
		Model: s.model,
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	var lastBody []byte
	for attempt := 0; attempt <= maxRateLimitRetries; attempt++ {
		status, header, body, err := s.post(ctx, "/embeddings", jsonBody)
		if err != nil {
			return nil, err
		}

		if status == http.StatusTooManyRequests {
			lastBody = body
			delay, ok := parseRetryAfter(header)
			if !ok {
				delay = retryDelay(attempt)
			}
			if err := sleepCtx(ctx, delay); err != nil {
				return nil, err
			}
			continue
		}

		return parseEmbeddings(status, body, len(texts))
	}

	return nil, fmt.Errorf("mistral: rate limited after %d retries: %s", maxRateLimitRetries, string(lastBody))
}

// post sends a JSON POST and returns the status code, headers and raw body.
func (s *EmbeddingService) post(ctx context.Context, path string, body []byte) (int, http.Header, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, nil, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, resp.Header, respBody, nil
}

// parseEmbeddings decodes a response body into input-ordered vectors.
func parseEmbeddings(status int, body []byte, count int) ([][]float32, error) {
	var embedResp embeddingResponse
	if err := json.Unmarshal(body, &embedResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if status != http.StatusOK {
		if embedResp.Message != "" {
			return nil, fmt.Errorf("mistral error: %s", embedResp.Message)
		}
		return nil, fmt.Errorf("mistral error (status %d): %s", status, string(body))
	}

	// Order by the returned index rather than response position.
	embeddings := make([][]float32, count)
	for _, data := range embedResp.Data {
		if data.Index < 0 || data.Index >= count {
			return nil, fmt.Errorf("mistral: embedding index %d out of range", data.Index)
		}
		vector := make([]float32, len(data.Embedding))
		for i, v := range data.Embedding {
			vector[i] = float32(v)
		}
		embeddings[data.Index] = vector
	}
	for i, vector := range embeddings {
		if vector == nil {
			return nil, fmt.Errorf("mistral: missing embedding for input %d", i)
		}
	}
	return embeddings, nil
}

// retryDelay returns the backoff before retry attempt n.
func retryDelay(attempt int) time.Duration {
	return time.Duration(attempt+1) * time.Second
}

// sleepCtx sleeps for d unless the context is cancelled first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	if d, ok := modelDimensions[s.model]; ok {
		return d
	}
	return modelDimensions[DefaultModel]
}

// ModelName returns the name of the embedding model being used.
func (s *EmbeddingService) ModelName() string {
	return s.model
}

// Ping validates the service is reachable by checking the /models endpoint.
// This is a lightweight check that validates the API key without running inference.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/models", http.NoBody)
	if err != nil {
		return fmt.Errorf("mistral: failed to create ping request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("mistral: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("mistral: API returned status %d (failed to read body: %w)", resp.StatusCode, err)
		}
		return fmt.Errorf("mistral: API returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}

// parseRetryAfter reads a Retry-After header value in seconds. The second
// return is false for missing or malformed values, letting the caller
// apply its own backoff.
func parseRetryAfter(h http.Header) (time.Duration, bool) {
	v := h.Get("Retry-After")
	if v == "" {
		return 0, false
	}
	seconds, err := strconv.Atoi(v)
	if err != nil || seconds < 0 {
		return 0, false
	}
	return time.Duration(seconds) * time.Second, true
}
