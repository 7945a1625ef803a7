package domain

import (
	"fmt"
	"strings"
)

// PreferenceRecord is the structured distillation of a conversation into
// named gift-recommendation attributes. Every field is optional; the empty
// string means "not yet known". A missing preference is indistinguishable
// from a not-yet-provided one and callers must treat both identically.
//
// The record is recomputed from the full transcript on every turn rather
// than merged incrementally, so a later-stated preference silently
// overwrites an earlier one.
type PreferenceRecord struct {
	// Description describes the gift recipient ("my mother, 50").
	Description string `json:"description"`

	// PriceRange is the stated budget ("under 100 euros").
	PriceRange string `json:"price_range"`

	// Interests lists the recipient's interests ("cooking, reading").
	Interests string `json:"interests"`

	// Context is the gifting occasion ("birthday", "Christmas").
	Context string `json:"context"`

	// GiftType is the preferred kind of product ("book", "experience").
	GiftType string `json:"gift_type"`
}

// Complete reports whether the record carries the minimum information
// required to recommend: a recipient description and their interests.
func (p PreferenceRecord) Complete() bool {
	return strings.TrimSpace(p.Description) != "" && strings.TrimSpace(p.Interests) != ""
}

// IsEmpty reports whether no preference has been captured at all.
func (p PreferenceRecord) IsEmpty() bool {
	return p == PreferenceRecord{}
}

// RetrievalQuery builds the free-text similarity query for this record.
// Only meaningful when Complete() is true.
func (p PreferenceRecord) RetrievalQuery() string {
	return fmt.Sprintf("Gift for %s who likes %s", p.Description, p.Interests)
}

// Summary renders the known fields as a short, human-readable block used
// when composing an augmented generation request. Unknown fields are
// reported as unspecified so the model does not invent them.
func (p PreferenceRecord) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "- Recipient: %s\n", orUnspecified(p.Description))
	fmt.Fprintf(&b, "- Interests: %s\n", orUnspecified(p.Interests))
	fmt.Fprintf(&b, "- Budget: %s\n", orUnspecified(p.PriceRange))
	fmt.Fprintf(&b, "- Occasion: %s\n", orUnspecified(p.Context))
	fmt.Fprintf(&b, "- Preferred gift type: %s", orUnspecified(p.GiftType))
	return b.String()
}

func orUnspecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return "not specified"
	}
	return s
}
