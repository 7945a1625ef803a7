package driven

import (
	"context"

	"github.com/kadolab/kado-cli/internal/core/domain"
)

// CatalogSource loads the product catalog from its backing store.
//
// Implementations resolve column-name synonyms, tolerate a small known set
// of text encodings, clean currency-formatted price cells and derive the
// optional fields (rich description, gift category) before returning items.
type CatalogSource interface {
	// Load reads and validates the full catalog. It fails with
	// domain.ErrCatalogSchema when a required column is structurally
	// absent and with domain.ErrCatalogData when a cell cannot be
	// coerced; either way no partial catalog is returned.
	Load(ctx context.Context) ([]domain.CatalogItem, error)
}
