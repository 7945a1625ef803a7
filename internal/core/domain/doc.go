// Package domain holds the core types of the gift assistant: the product
// catalog (CatalogItem, RecommendationCandidate), the chat transcript
// (Conversation), the preferences distilled from it (PreferenceRecord) and
// the per-turn outcome (TurnResult).
//
// The package sits at the centre of the hexagon and imports only the
// standard library; everything else depends on it, never the reverse.
package domain
