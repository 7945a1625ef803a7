// Package memory provides an in-memory vector index using brute-force
// cosine similarity. The catalog is small enough that exact search beats
// an approximate structure on both simplicity and recall.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/kadolab/kado-cli/internal/core/domain"
	"github.com/kadolab/kado-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// indexed is one normalised entry of a completed build.
type indexed struct {
	itemID int
	vector []float32
}

// Index is an in-memory similarity index over catalog item embeddings.
//
// Build constructs a fresh entry slice and swaps it in only on success, so
// readers never observe a partial index: a failed build leaves the previous
// build (or the unbuilt state) intact. Queries against a completed build
// share no mutable state and are safe to run concurrently.
type Index struct {
	mu      sync.RWMutex
	entries []indexed
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{}
}

// Build replaces the index contents with the given entries in one batch.
// All vectors must share one dimension; vectors are L2-normalised on entry
// so queries reduce to a dot product.
func (x *Index) Build(ctx context.Context, entries []domain.IndexEntry) error {
	fresh := make([]indexed, len(entries))
	dimension := 0

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if len(entry.Vector) == 0 {
			return fmt.Errorf("memory: entry %d has an empty vector", i)
		}
		if dimension == 0 {
			dimension = len(entry.Vector)
		}
		if len(entry.Vector) != dimension {
			return fmt.Errorf("memory: entry %d has dimension %d, want %d", i, len(entry.Vector), dimension)
		}
		fresh[i] = indexed{itemID: entry.ItemID, vector: normalise(entry.Vector)}
	}

	x.mu.Lock()
	x.entries = fresh
	x.mu.Unlock()
	return nil
}

// Query returns the k nearest entries to the query vector, most similar
// first. Ties keep insertion order. k larger than the index clamps; an
// unbuilt index returns an empty result.
func (x *Index) Query(_ context.Context, vector []float32, k int) ([]driven.VectorHit, error) {
	x.mu.RLock()
	entries := x.entries
	x.mu.RUnlock()

	if len(entries) == 0 || k <= 0 {
		return []driven.VectorHit{}, nil
	}
	if k > len(entries) {
		k = len(entries)
	}

	query := normalise(vector)
	hits := make([]driven.VectorHit, len(entries))
	for i, entry := range entries {
		hits[i] = driven.VectorHit{
			ItemID:     entry.itemID,
			Similarity: dot(entry.vector, query),
		}
	}

	// Stable sort keeps insertion order for equal similarities.
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Similarity > hits[j].Similarity
	})

	return hits[:k], nil
}

// Size returns the number of indexed entries.
func (x *Index) Size() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.entries)
}

// Close releases resources.
func (x *Index) Close() error {
	x.mu.Lock()
	x.entries = nil
	x.mu.Unlock()
	return nil
}

// normalise returns an L2-normalised copy of the vector.
func normalise(v []float32) []float32 {
	var sum float64
	for _, f := range v {
		sum += float64(f) * float64(f)
	}
	norm := math.Sqrt(sum)
	out := make([]float32, len(v))
	if norm == 0 {
		return out
	}
	for i, f := range v {
		out[i] = float32(float64(f) / norm)
	}
	return out
}

// dot computes the dot product of two equal-length vectors. With both
// sides normalised this is the cosine similarity.
func dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
