package driven

import (
	"context"

	"github.com/kadolab/kado-cli/internal/core/domain"
)

// RecommendationStore persists the flat record of each completed
// recommendation. The core writes to it after a recommendation turn and
// never depends on reading it back during a turn.
type RecommendationStore interface {
	// Save persists one completed recommendation.
	Save(ctx context.Context, rec domain.SavedRecommendation) error

	// List returns all saved recommendations, most recent first.
	List(ctx context.Context) ([]domain.SavedRecommendation, error)

	// Close releases resources.
	Close() error
}
