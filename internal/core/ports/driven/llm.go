package driven

import "context"

// LLMService is the chat-completions surface the services build on.
// Mistral and OpenAI adapters implement it today; anything speaking the
// same completions dialect would slot in.
type LLMService interface {
	// Chat sends the full conversation and returns the next assistant
	// message.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// Generate completes a single standalone prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName identifies the chat model in use.
	ModelName() string

	// Ping makes a cheap request to confirm the endpoint and API key work.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ChatMessage is one turn of a conversation.
type ChatMessage struct {
	// Role is "system", "user", or "assistant".
	Role string

	Content string
}

// ChatOptions tunes a Chat call.
type ChatOptions struct {
	MaxTokens int

	// Temperature ranges from 0 (deterministic) to 1 (creative).
	Temperature float64
}

// GenerateOptions tunes a Generate call.
type GenerateOptions struct {
	MaxTokens   int
	Temperature float64

	// StopWords halt generation when the model emits any of them.
	StopWords []string
}
