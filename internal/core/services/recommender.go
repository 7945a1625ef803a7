package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kadolab/kado-cli/internal/core/domain"
	"github.com/kadolab/kado-cli/internal/core/ports/driven"
	"github.com/kadolab/kado-cli/internal/core/ports/driving"
	"github.com/kadolab/kado-cli/internal/logger"
)

// Ensure RecommenderService implements the interface.
var _ driving.RecommenderService = (*RecommenderService)(nil)

// defaultRecommendPrompt is the fallback prompt when no PromptStore is
// configured. It expects the preference summary and the candidate list.
const defaultRecommendPrompt = `Based on this information about the gift recipient:
%s

And these available products:
%s

Recommend the most suitable gifts, explaining why each one fits the person.
Only recommend products from the list above.`

// generationNotice is shown in-conversation when the completion call fails.
// The turn completes and the user can simply send another message.
const generationNotice = "Sorry, I could not reach the recommendation service just now. Please try again in a moment."

// RecommenderService is the per-turn orchestrator. The conceptual state
// (ask another question vs. recommend) is re-derived on every turn from a
// fresh preference extraction; there is no persistent "already recommended"
// flag, so a user who adds more specific preferences later receives a
// fresh recommendation.
type RecommenderService struct {
	llmService  driven.LLMService
	catalog     driving.CatalogService
	extractor   driving.PreferenceExtractor
	recStore    driven.RecommendationStore
	promptStore driven.PromptStore
	userID      string
	topK        int
}

// NewRecommenderService creates the orchestrator. The recStore and
// promptStore parameters are optional (can be nil); catalog may also be nil,
// in which case every turn takes the clarifying-question path.
func NewRecommenderService(
	llmService driven.LLMService,
	catalog driving.CatalogService,
	extractor driving.PreferenceExtractor,
	recStore driven.RecommendationStore,
	promptStore driven.PromptStore,
) *RecommenderService {
	return &RecommenderService{
		llmService:  llmService,
		catalog:     catalog,
		extractor:   extractor,
		recStore:    recStore,
		promptStore: promptStore,
		userID:      uuid.NewString(),
		topK:        4,
	}
}

// SetTopK overrides the number of candidates retrieved per recommendation.
func (s *RecommenderService) SetTopK(k int) {
	if k > 0 {
		s.topK = k
	}
}

// UserID returns the session identifier stamped onto saved recommendations.
func (s *RecommenderService) UserID() string {
	return s.userID
}

// Reply processes one conversation turn.
//
// With an incomplete preference record the unmodified conversation is
// forwarded to the model, which asks its next clarifying question. Once
// description and interests are present, candidates are retrieved and the
// conversation is augmented with one system message enumerating them. Zero
// candidates, an unavailable index or a retrieval failure all degrade to
// the clarifying-question path; a generation failure becomes an
// in-conversation notice. Reply never returns an error.
func (s *RecommenderService) Reply(ctx context.Context, conv *domain.Conversation, filters domain.SearchFilters) domain.TurnResult {
	logger.Section("Conversation Turn")

	prefs := s.extractor.Extract(ctx, conv)
	result := domain.TurnResult{Preferences: prefs}

	if prefs.Complete() && s.catalog != nil {
		query := prefs.RetrievalQuery()
		if extra := filters.QueryText(); extra != "" {
			query += ", " + extra
		}
		logger.Debug("Retrieval query: %q", query)

		candidates, err := s.catalog.Search(ctx, query, s.topK)
		if err != nil {
			logger.Warn("Retrieval failed: %v (degrading to clarifying question)", err)
		}

		if len(candidates) > 0 {
			reply, err := s.recommend(ctx, conv, prefs, candidates)
			if err != nil {
				logger.Warn("Recommendation generation failed: %v", err)
				result.Reply = generationNotice
				return result
			}
			result.Reply = reply
			result.Candidates = candidates
			result.Recommended = true
			s.saveRecommendation(ctx, prefs)
			return result
		}
		logger.Debug("No candidates retrieved, degrading to clarifying question")
	}

	reply, err := s.llmService.Chat(ctx, toChatMessages(conv.Messages()), driven.ChatOptions{})
	if err != nil {
		logger.Warn("Chat generation failed: %v", err)
		result.Reply = generationNotice
		return result
	}
	result.Reply = reply
	return result
}

// recommend submits the augmented generation request: the conversation plus
// one system message summarising the preferences and enumerating the
// retrieved candidates.
func (s *RecommenderService) recommend(
	ctx context.Context,
	conv *domain.Conversation,
	prefs domain.PreferenceRecord,
	candidates []domain.RecommendationCandidate,
) (string, error) {
	promptTemplate := loadPrompt(s.promptStore, driven.PromptRecommend, defaultRecommendPrompt)
	prompt := fmt.Sprintf(promptTemplate, prefs.Summary(), formatCandidates(candidates))

	messages := append(toChatMessages(conv.Messages()), driven.ChatMessage{
		Role:    domain.RoleSystem,
		Content: prompt,
	})

	reply, err := s.llmService.Chat(ctx, messages, driven.ChatOptions{})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrGeneration, err)
	}
	return reply, nil
}

// saveRecommendation records the completed recommendation. Persistence
// failures are logged and never fail the turn.
func (s *RecommenderService) saveRecommendation(ctx context.Context, prefs domain.PreferenceRecord) {
	if s.recStore == nil {
		return
	}

	rec := domain.SavedRecommendation{
		ID:          uuid.NewString(),
		Timestamp:   time.Now().UTC(),
		UserID:      s.userID,
		Description: prefs.Description,
		PriceRange:  prefs.PriceRange,
		GiftType:    prefs.GiftType,
		Interests:   prefs.Interests,
		Context:     prefs.Context,
	}

	if err := s.recStore.Save(ctx, rec); err != nil {
		logger.Warn("Saving recommendation failed: %v", err)
	}
}

// formatCandidates enumerates retrieved products for the generation request.
func formatCandidates(candidates []domain.RecommendationCandidate) string {
	var b strings.Builder
	for i, c := range candidates {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- %s (%s) - Price: %.2f - Rating: %.1f/5", c.Name, c.Category, c.Price, c.Rating)
		if c.Description != "" {
			fmt.Fprintf(&b, "\n  %s", c.Description)
		}
	}
	return b.String()
}

// toChatMessages converts domain messages to the LLM port's wire type.
func toChatMessages(messages []domain.ConversationMessage) []driven.ChatMessage {
	out := make([]driven.ChatMessage, len(messages))
	for i, m := range messages {
		out[i] = driven.ChatMessage{Role: m.Role, Content: m.Content}
	}
	return out
}
