package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/kadolab/kado-cli/internal/core/domain"
	"github.com/kadolab/kado-cli/internal/core/ports/driven"
	"github.com/kadolab/kado-cli/internal/core/ports/driving"
	"github.com/kadolab/kado-cli/internal/logger"
)

// Ensure PreferenceExtractor implements the interface.
var _ driving.PreferenceExtractor = (*PreferenceExtractor)(nil)

// defaultExtractPrompt is the fallback prompt when no PromptStore is configured.
const defaultExtractPrompt = `Analyse the conversation and extract the following information as JSON:
{
    "description": "description of the gift recipient",
    "price_range": "budget or price range",
    "interests": "the recipient's interests",
    "context": "the gifting occasion",
    "gift_type": "preferred kind of gift"
}
Use an empty string for anything the user has not said. Return ONLY the JSON object.`

// PreferenceExtractor turns the running conversation into a structured
// preference record with one generation call over the user-authored
// transcript. It is stateless: every call recomputes the record from
// scratch, so a later-stated preference overwrites an earlier one.
type PreferenceExtractor struct {
	llmService  driven.LLMService
	promptStore driven.PromptStore
}

// NewPreferenceExtractor creates a preference extractor. The promptStore
// parameter is optional (can be nil).
func NewPreferenceExtractor(llmService driven.LLMService, promptStore driven.PromptStore) *PreferenceExtractor {
	return &PreferenceExtractor{
		llmService:  llmService,
		promptStore: promptStore,
	}
}

// Extract returns the preference record for the conversation so far.
// Malformed or partial model output degrades to an empty or partial record;
// Extract never returns an error and never surfaces one to the user.
func (e *PreferenceExtractor) Extract(ctx context.Context, conv *domain.Conversation) domain.PreferenceRecord {
	if e.llmService == nil || conv == nil {
		return domain.PreferenceRecord{}
	}

	userText := conv.UserText()
	if strings.TrimSpace(userText) == "" {
		return domain.PreferenceRecord{}
	}

	prompt := loadPrompt(e.promptStore, driven.PromptExtractPreferences, defaultExtractPrompt)

	raw, err := e.llmService.Chat(ctx, []driven.ChatMessage{
		{Role: domain.RoleSystem, Content: prompt},
		{Role: domain.RoleUser, Content: userText},
	}, driven.ChatOptions{
		MaxTokens:   300,
		Temperature: 0.1,
	})
	if err != nil {
		logger.Warn("Preference extraction failed: %v (using empty record)", err)
		return domain.PreferenceRecord{}
	}

	record, ok := parsePreferenceJSON(raw)
	if !ok {
		logger.Warn("Preference extraction returned unparseable output (using empty record)")
		return domain.PreferenceRecord{}
	}

	logger.Debug("Extracted preferences: complete=%t", record.Complete())
	return record
}

// parsePreferenceJSON parses model output into a PreferenceRecord. It
// tolerates markdown code fences and leading prose around the JSON object.
func parsePreferenceJSON(raw string) (domain.PreferenceRecord, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return domain.PreferenceRecord{}, false
	}

	var record domain.PreferenceRecord
	if err := json.Unmarshal([]byte(raw[start:end+1]), &record); err != nil {
		return domain.PreferenceRecord{}, false
	}
	return record, true
}

// loadPrompt loads a prompt from the store, falling back to the default
// if no store is configured or the prompt is missing.
func loadPrompt(store driven.PromptStore, name, fallback string) string {
	if store == nil {
		return fallback
	}
	prompt, err := store.Load(name)
	if err != nil || prompt == "" {
		return fallback
	}
	return prompt
}
