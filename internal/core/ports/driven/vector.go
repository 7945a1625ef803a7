package driven

import (
	"context"

	"github.com/kadolab/kado-cli/internal/core/domain"
)

// VectorIndex provides similarity search over catalog item embeddings.
//
// Build is all-or-nothing: a failure mid-build must leave the index in its
// prior state (empty or previous build), never half-populated. Concurrent
// queries against a completed build must be safe.
type VectorIndex interface {
	// Build replaces the index contents with the given entries in a single
	// batch. Entry order defines the identifier-to-vector correspondence.
	Build(ctx context.Context, entries []domain.IndexEntry) error

	// Query finds the k nearest neighbours to the query vector, ordered
	// most similar first with ties broken by entry insertion order.
	// A k larger than the index is clamped; an unbuilt index returns an
	// empty result, not an error.
	Query(ctx context.Context, vector []float32, k int) ([]VectorHit, error)

	// Size returns the number of indexed entries.
	Size() int

	// Close releases resources.
	Close() error
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// ItemID is the matched catalog item identifier.
	ItemID int

	// Similarity is the cosine similarity score (higher is more similar).
	Similarity float64
}
