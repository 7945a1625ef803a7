package driven

import "context"

// EmbeddingService turns text into vectors. It only generates; storing and
// searching the vectors is VectorIndex's job. Backed by mistral-embed or
// OpenAI's text-embedding-3 family.
type EmbeddingService interface {
	// Embed returns the vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch embeds many texts in one request, returning one vector
	// per input in input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions reports the vector size this model produces.
	Dimensions() int

	// ModelName identifies the embedding model in use.
	ModelName() string

	// Ping makes a cheap request to confirm the endpoint and API key work.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
