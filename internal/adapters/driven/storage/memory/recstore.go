package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/kadolab/kado-cli/internal/core/domain"
	"github.com/kadolab/kado-cli/internal/core/ports/driven"
)

// Ensure RecommendationStore implements the interface.
var _ driven.RecommendationStore = (*RecommendationStore)(nil)

// RecommendationStore is an in-memory implementation of
// driven.RecommendationStore. History held here is lost when the process
// exits; it serves tests and runs where no data directory is writable.
type RecommendationStore struct {
	mu   sync.RWMutex
	recs map[string]domain.SavedRecommendation
}

// NewRecommendationStore creates a new in-memory recommendation store.
func NewRecommendationStore() *RecommendationStore {
	return &RecommendationStore{
		recs: make(map[string]domain.SavedRecommendation),
	}
}

// Save persists one completed recommendation.
func (s *RecommendationStore) Save(_ context.Context, rec domain.SavedRecommendation) error {
	if rec.ID == "" {
		return fmt.Errorf("%w: recommendation id is empty", domain.ErrInvalidInput)
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs[rec.ID] = rec
	return nil
}

// List returns all saved recommendations, most recent first.
func (s *RecommendationStore) List(_ context.Context) ([]domain.SavedRecommendation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := make([]domain.SavedRecommendation, 0, len(s.recs))
	for _, rec := range s.recs {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].Timestamp.Equal(recs[j].Timestamp) {
			return recs[i].Timestamp.After(recs[j].Timestamp)
		}
		return recs[i].ID < recs[j].ID
	})
	return recs, nil
}

// Close releases resources (no-op for memory store).
func (s *RecommendationStore) Close() error {
	return nil
}
