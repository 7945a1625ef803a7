package driving

import (
	"context"

	"github.com/kadolab/kado-cli/internal/core/domain"
)

// RecommenderService drives one conversation turn: it decides whether
// enough preference information exists to recommend and produces the next
// assistant reply either way.
type RecommenderService interface {
	// Reply processes the conversation's latest state and returns the next
	// assistant message plus any retrieved candidates. The reply is
	// appended to conv by the caller, not by Reply itself.
	Reply(ctx context.Context, conv *domain.Conversation, filters domain.SearchFilters) domain.TurnResult
}

// PreferenceExtractor distils a conversation into a structured preference
// record. Extraction is stateless: the record is recomputed from the full
// transcript on every call.
type PreferenceExtractor interface {
	// Extract returns the preference record for the conversation so far.
	// Failures degrade to an empty or partial record, never an error.
	Extract(ctx context.Context, conv *domain.Conversation) domain.PreferenceRecord
}
