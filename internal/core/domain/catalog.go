package domain

import "fmt"

// CatalogItem represents a single product in the gift catalog.
// Items are created in bulk at catalog-load time and never mutated.
type CatalogItem struct {
	// ID is the stable identifier of the item (its row position in the source).
	ID int

	// Name is the product name. Always non-empty after a successful load.
	Name string

	// MainCategory is the top-level catalog category.
	MainCategory string

	// SubCategory is the second-level catalog category.
	SubCategory string

	// GiftCategory is the gift-facing category. Derived from MainCategory
	// when the source does not provide one.
	GiftCategory string

	// PriceDiscounted is the current selling price. Non-negative.
	PriceDiscounted float64

	// PriceOriginal is the pre-discount price. At least PriceDiscounted.
	PriceOriginal float64

	// Rating is the average customer rating, 0.0 to 5.0.
	Rating float64

	// RatingCount is the number of ratings behind Rating.
	RatingCount int

	// RichDescription is the free-text product description used for retrieval.
	RichDescription string
}

// SearchDocument composes the single text used to embed this item.
// Regenerated from the item on every index build, never stored.
func (i CatalogItem) SearchDocument() string {
	return fmt.Sprintf("%s - %s - %s - %s - Price: %.2f - Rating: %.1f/5 - %s",
		i.Name, i.GiftCategory, i.MainCategory, i.SubCategory,
		i.PriceDiscounted, i.Rating, i.RichDescription)
}

// Categories summarises the category sets present in a loaded catalog.
type Categories struct {
	// Main contains the sorted unique main categories.
	Main []string

	// Gift contains the sorted unique gift categories.
	Gift []string
}

// PriceRange is the minimum and maximum discounted price over a catalog.
type PriceRange struct {
	Min float64
	Max float64
}

// RecommendationCandidate is a retrieved product held for the duration of
// one orchestration turn. It is surfaced both to the generation request and
// to the caller's display layer.
type RecommendationCandidate struct {
	// Name is the product name.
	Name string

	// Price is the discounted price.
	Price float64

	// Rating is the average customer rating.
	Rating float64

	// Category is the gift category.
	Category string

	// Description is the product's rich description.
	Description string

	// Similarity is the retrieval score (higher is more similar).
	Similarity float64
}

// IndexEntry pairs a catalog item ID with its embedding vector.
// Entry order defines the identifier-to-vector correspondence and must
// remain stable for the lifetime of a built index.
type IndexEntry struct {
	// ItemID is the catalog item identifier.
	ItemID int

	// Vector is the fixed-length embedding of the item's search document.
	Vector []float32
}
