package domain

import (
	"fmt"
	"strings"
	"time"
)

// TurnResult is the outcome of one orchestration turn.
type TurnResult struct {
	// Reply is the assistant's natural-language response. Always non-empty,
	// even when the generation service failed (a friendly notice is
	// substituted so the conversation stays usable).
	Reply string

	// Candidates holds the retrieved products behind a recommendation.
	// Empty when no retrieval took place this turn.
	Candidates []RecommendationCandidate

	// Preferences is the record extracted from the transcript this turn.
	Preferences PreferenceRecord

	// Recommended reports whether this turn produced a retrieval-backed
	// recommendation rather than a clarifying question.
	Recommended bool
}

// SearchFilters carries the user's optional filter selections from the
// display layer. Zero values mean "no filter".
type SearchFilters struct {
	// PriceMin and PriceMax bound the acceptable price, when both are set.
	PriceMin float64
	PriceMax float64

	// GiftType is a free-text preferred product type.
	GiftType string

	// Categories restricts retrieval to the named main categories.
	Categories []string
}

// IsZero reports whether no filter is active.
func (f SearchFilters) IsZero() bool {
	return f.PriceMin == 0 && f.PriceMax == 0 && f.GiftType == "" && len(f.Categories) == 0
}

// QueryText renders the active filters as free text appended to a
// retrieval query.
func (f SearchFilters) QueryText() string {
	var parts []string
	if f.PriceMax > 0 {
		parts = append(parts, fmt.Sprintf("price between %.0f and %.0f", f.PriceMin, f.PriceMax))
	}
	if f.GiftType != "" {
		parts = append(parts, "gift type "+f.GiftType)
	}
	if len(f.Categories) > 0 {
		parts = append(parts, "category "+strings.Join(f.Categories, " or "))
	}
	return strings.Join(parts, ", ")
}

// SavedRecommendation is the flat record persisted once a recommendation
// turn completes. The core never reads this store back during a turn.
type SavedRecommendation struct {
	// ID uniquely identifies the saved record.
	ID string

	// Timestamp is when the recommendation was made.
	Timestamp time.Time

	// UserID identifies the chat session that received the recommendation.
	UserID string

	// Description, PriceRange, GiftType, Interests and Context mirror the
	// PreferenceRecord that produced the recommendation.
	Description string
	PriceRange  string
	GiftType    string
	Interests   string
	Context     string
}

// WishlistItem is a product the user chose to keep during a session.
type WishlistItem struct {
	Name        string
	Price       float64
	Category    string
	Description string
}

// Wishlist is a session-owned collection of kept products. It is owned by
// the display layer and passed explicitly to anything that reads or writes
// it; core services never touch it.
type Wishlist struct {
	items []WishlistItem
}

// Add appends an item to the wishlist.
func (w *Wishlist) Add(item WishlistItem) {
	w.items = append(w.items, item)
}

// Items returns a copy of the wishlist contents.
func (w *Wishlist) Items() []WishlistItem {
	out := make([]WishlistItem, len(w.items))
	copy(out, w.items)
	return out
}

// Len returns the number of kept items.
func (w *Wishlist) Len() int {
	return len(w.items)
}
