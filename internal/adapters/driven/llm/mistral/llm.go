// Package mistral provides an LLM service adapter using the Mistral AI
// platform API.
package mistral

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kadolab/kado-cli/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// Default configuration values.
const (
	DefaultBaseURL    = "https://api.mistral.ai/v1"
	DefaultLLMModel   = "mistral-small-latest"
	DefaultLLMTimeout = 120 * time.Second
)

// LLMConfig holds configuration for the Mistral LLM service.
type LLMConfig struct {
	// APIKey is the Mistral API key (required).
	APIKey string

	// BaseURL overrides the API endpoint, for gateways and tests.
	BaseURL string

	// Model is the chat model (default: mistral-small-latest).
	Model string

	// Timeout bounds each request (default: 120s).
	Timeout time.Duration
}

// LLMService talks to the Mistral chat-completions API.
type LLMService struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// NewLLMService creates a Mistral LLM service.
func NewLLMService(cfg LLMConfig) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("mistral: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultLLMModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultLLMTimeout
	}

	return &LLMService{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}, nil
}

// wire types for /chat/completions.
type completionRequest struct {
	Model       string        `json:"model"`
	Messages    []wireMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
	Stop        []string      `json:"stop,omitempty"`
}

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`

	// Message carries the error description on non-200 responses.
	Message string `json:"message,omitempty"`
}

// Chat conducts a multi-turn conversation.
func (s *LLMService) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	return s.complete(ctx, toWire(messages), opts.MaxTokens, opts.Temperature, nil)
}

// Generate produces a completion for a single prompt, wrapped as one user
// message.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	wire := []wireMessage{{Role: "user", Content: prompt}}
	return s.complete(ctx, wire, opts.MaxTokens, opts.Temperature, opts.StopWords)
}

func (s *LLMService) complete(ctx context.Context, messages []wireMessage, maxTokens int, temperature float64, stop []string) (string, error) {
	payload := completionRequest{Model: s.model, Messages: messages, Stop: stop}
	if maxTokens > 0 {
		payload.MaxTokens = maxTokens
	}
	if temperature > 0 {
		payload.Temperature = temperature
	}

	status, body, err := s.post(ctx, "/chat/completions", payload)
	if err != nil {
		return "", err
	}

	var parsed completionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("mistral: decode response: %w", err)
	}

	if status != http.StatusOK {
		if parsed.Message != "" {
			return "", fmt.Errorf("mistral error: %s", parsed.Message)
		}
		return "", fmt.Errorf("mistral error (status %d): %s", status, body)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("mistral: no response choices returned")
	}
	return parsed.Choices[0].Message.Content, nil
}

// post sends a JSON payload and returns the status code and raw body.
func (s *LLMService) post(ctx context.Context, path string, payload any) (int, []byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("mistral: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return 0, nil, fmt.Errorf("mistral: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("mistral: send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("mistral: read response: %w", err)
	}
	return resp.StatusCode, body, nil
}

func toWire(messages []driven.ChatMessage) []wireMessage {
	wire := make([]wireMessage, len(messages))
	for i, m := range messages {
		wire[i] = wireMessage{Role: m.Role, Content: m.Content}
	}
	return wire
}

// ModelName returns the configured chat model.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping checks reachability and key validity against /models without
// running inference.
func (s *LLMService) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/models", http.NoBody)
	if err != nil {
		return fmt.Errorf("mistral: create ping request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("mistral: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("mistral: API returned status %d: %s", resp.StatusCode, body)
	}
	return nil
}

// Close releases resources. The shared HTTP client needs none.
func (s *LLMService) Close() error {
	return nil
}
