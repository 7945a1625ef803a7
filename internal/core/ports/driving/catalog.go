package driving

import (
	"context"

	"github.com/kadolab/kado-cli/internal/core/domain"
)

// CatalogService exposes the loaded catalog and its similarity index.
type CatalogService interface {
	// Load reads the catalog from its source. Runs once at startup;
	// ordinary conversation turns never trigger a reload.
	Load(ctx context.Context) error

	// BuildIndex embeds every item's search document and builds the
	// similarity index in one batch.
	BuildIndex(ctx context.Context) error

	// Search retrieves the k most similar items for a free-text query.
	// An unbuilt index yields an empty, non-error result.
	Search(ctx context.Context, query string, k int) ([]domain.RecommendationCandidate, error)

	// Items returns the loaded catalog.
	Items() []domain.CatalogItem

	// Categories summarises the main and gift categories of the catalog.
	Categories() (domain.Categories, error)

	// PriceRange returns the min and max discounted price of the catalog.
	PriceRange() (domain.PriceRange, error)
}
