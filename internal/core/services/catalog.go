package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/time/rate"

	"github.com/kadolab/kado-cli/internal/core/domain"
	"github.com/kadolab/kado-cli/internal/core/ports/driven"
	"github.com/kadolab/kado-cli/internal/core/ports/driving"
	"github.com/kadolab/kado-cli/internal/logger"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

const (
	// embedBatchSize is the number of search documents embedded per
	// request during an index build.
	embedBatchSize = 32

	// embedBatchRate throttles embedding requests during a build so a
	// large catalog does not trip provider rate limits.
	embedBatchRate = 2 // requests per second

	// defaultTopK is the number of candidates returned when the caller
	// does not specify k.
	defaultTopK = 4
)

// CatalogService owns the loaded product catalog and its similarity index.
// Loading and index building run once at startup; conversation turns only
// read from the service.
type CatalogService struct {
	source           driven.CatalogSource
	embeddingService driven.EmbeddingService
	vectorIndex      driven.VectorIndex
	limiter          *rate.Limiter

	mu    sync.RWMutex
	items []domain.CatalogItem
	byID  map[int]domain.CatalogItem
}

// NewCatalogService creates a catalog service. The embeddingService and
// vectorIndex parameters are optional (can be nil); without them the
// service still serves category and price summaries, and Search returns
// no candidates.
func NewCatalogService(
	source driven.CatalogSource,
	embeddingService driven.EmbeddingService,
	vectorIndex driven.VectorIndex,
) *CatalogService {
	return &CatalogService{
		source:           source,
		embeddingService: embeddingService,
		vectorIndex:      vectorIndex,
		limiter:          rate.NewLimiter(rate.Limit(embedBatchRate), 1),
	}
}

// Load reads the catalog from its source. On failure the previously loaded
// catalog, if any, is left intact.
func (s *CatalogService) Load(ctx context.Context) error {
	if s.source == nil {
		return domain.ErrCatalogLoad
	}

	items, err := s.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	byID := make(map[int]domain.CatalogItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	s.mu.Lock()
	s.items = items
	s.byID = byID
	s.mu.Unlock()

	logger.Info("Catalog loaded: %d items", len(items))
	return nil
}

// BuildIndex composes each item's search document, embeds the documents in
// throttled batches and hands the full entry set to the vector index in one
// batch. A failure anywhere leaves the index in its prior state.
func (s *CatalogService) BuildIndex(ctx context.Context) error {
	if s.embeddingService == nil {
		return domain.ErrEmbeddingUnavailable
	}
	if s.vectorIndex == nil {
		return domain.ErrVectorIndexUnavailable
	}

	s.mu.RLock()
	items := s.items
	s.mu.RUnlock()

	if len(items) == 0 {
		return domain.ErrCatalogNotLoaded
	}

	logger.Section("Index Build")
	logger.Info("Embedding %d search documents", len(items))

	entries := make([]domain.IndexEntry, 0, len(items))
	for start := 0; start < len(items); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(items) {
			end = len(items)
		}
		batch := items[start:end]

		if err := s.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrIndexBuild, err)
		}

		texts := make([]string, len(batch))
		for i, item := range batch {
			texts[i] = item.SearchDocument()
		}

		vectors, err := s.embeddingService.EmbedBatch(ctx, texts)
		if err != nil {
			return fmt.Errorf("%w: embed batch at %d: %w", domain.ErrIndexBuild, start, err)
		}
		if len(vectors) != len(batch) {
			return fmt.Errorf("%w: got %d vectors for %d documents", domain.ErrIndexBuild, len(vectors), len(batch))
		}

		for i, vec := range vectors {
			entries = append(entries, domain.IndexEntry{ItemID: batch[i].ID, Vector: vec})
		}
		logger.Debug("Embedded %d/%d documents", len(entries), len(items))
	}

	if err := s.vectorIndex.Build(ctx, entries); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrIndexBuild, err)
	}

	logger.Info("Index built: %d entries", len(entries))
	return nil
}

// Search embeds the free-text query and returns the k most similar catalog
// items, most similar first. An unbuilt or empty index yields an empty,
// non-error result; k defaults to 4 and clamps to the catalog size.
func (s *CatalogService) Search(ctx context.Context, query string, k int) ([]domain.RecommendationCandidate, error) {
	if s.embeddingService == nil || s.vectorIndex == nil {
		return []domain.RecommendationCandidate{}, nil
	}
	if s.vectorIndex.Size() == 0 {
		logger.Debug("Similarity search skipped: index is empty")
		return []domain.RecommendationCandidate{}, nil
	}

	if k <= 0 {
		k = defaultTopK
	}

	vector, err := s.embeddingService.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := s.vectorIndex.Query(ctx, vector, k)
	if err != nil {
		return nil, fmt.Errorf("vector query: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	candidates := make([]domain.RecommendationCandidate, 0, len(hits))
	for _, hit := range hits {
		item, ok := s.byID[hit.ItemID]
		if !ok {
			// Index refers to an item the catalog no longer has; skip.
			continue
		}
		candidates = append(candidates, domain.RecommendationCandidate{
			Name:        item.Name,
			Price:       item.PriceDiscounted,
			Rating:      item.Rating,
			Category:    item.GiftCategory,
			Description: item.RichDescription,
			Similarity:  hit.Similarity,
		})
	}

	logger.Debug("Similarity search: %d candidates for %q", len(candidates), query)
	return candidates, nil
}

// Items returns the loaded catalog.
func (s *CatalogService) Items() []domain.CatalogItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.CatalogItem, len(s.items))
	copy(out, s.items)
	return out
}

// Categories returns the sorted unique main and gift categories of the
// loaded catalog.
func (s *CatalogService) Categories() (domain.Categories, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.items) == 0 {
		return domain.Categories{}, domain.ErrCatalogNotLoaded
	}

	mainSet := make(map[string]struct{})
	giftSet := make(map[string]struct{})
	for _, item := range s.items {
		if item.MainCategory != "" {
			mainSet[item.MainCategory] = struct{}{}
		}
		if item.GiftCategory != "" {
			giftSet[item.GiftCategory] = struct{}{}
		}
	}

	return domain.Categories{
		Main: sortedKeys(mainSet),
		Gift: sortedKeys(giftSet),
	}, nil
}

// PriceRange returns the min and max discounted price of the loaded catalog.
func (s *CatalogService) PriceRange() (domain.PriceRange, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.items) == 0 {
		return domain.PriceRange{}, domain.ErrCatalogNotLoaded
	}

	pr := domain.PriceRange{Min: s.items[0].PriceDiscounted, Max: s.items[0].PriceDiscounted}
	for _, item := range s.items[1:] {
		if item.PriceDiscounted < pr.Min {
			pr.Min = item.PriceDiscounted
		}
		if item.PriceDiscounted > pr.Max {
			pr.Max = item.PriceDiscounted
		}
	}
	return pr, nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
