package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadolab/kado-cli/internal/core/domain"
	"github.com/kadolab/kado-cli/internal/core/ports/driven"
)

// TestPreferenceExtractor_Extract tests the happy path over the user transcript
func TestPreferenceExtractor_Extract(t *testing.T) {
	llm := &mockLLMService{replies: []string{
		`{"description": "mother, 50", "price_range": "100 euros", "interests": "cooking, reading", "context": "birthday", "gift_type": ""}`,
	}}
	extractor := NewPreferenceExtractor(llm, nil)

	conv := domain.NewConversation("you are a gift assistant")
	conv.Append(domain.RoleUser, "Gift for my mother, 50, who loves cooking and reading")
	conv.Append(domain.RoleAssistant, "What is your budget?")
	conv.Append(domain.RoleUser, "Around 100 euros, it is for her birthday")

	record := extractor.Extract(context.Background(), conv)

	assert.Equal(t, "mother, 50", record.Description)
	assert.Equal(t, "cooking, reading", record.Interests)
	assert.Equal(t, "100 euros", record.PriceRange)
	assert.Equal(t, "birthday", record.Context)
	assert.True(t, record.Complete())

	// Only user-authored content goes to the model.
	require.Len(t, llm.calls, 1)
	require.Len(t, llm.calls[0], 2)
	assert.Equal(t, domain.RoleSystem, llm.calls[0][0].Role)
	assert.NotContains(t, llm.calls[0][1].Content, "What is your budget?")
	assert.Contains(t, llm.calls[0][1].Content, "Gift for my mother")
}

// TestPreferenceExtractor_CodeFences tests tolerance of fenced JSON output
func TestPreferenceExtractor_CodeFences(t *testing.T) {
	llm := &mockLLMService{replies: []string{
		"```json\n{\"description\": \"my brother\", \"interests\": \"chess\"}\n```",
	}}
	extractor := NewPreferenceExtractor(llm, nil)

	conv := domain.NewConversation("")
	conv.Append(domain.RoleUser, "gift for my brother who plays chess")

	record := extractor.Extract(context.Background(), conv)
	assert.Equal(t, "my brother", record.Description)
	assert.Equal(t, "chess", record.Interests)
}

// TestPreferenceExtractor_UnparseableOutput tests degradation to an empty record
func TestPreferenceExtractor_UnparseableOutput(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{name: "prose", reply: "I could not find any preferences in this conversation."},
		{name: "truncated json", reply: `{"description": "moth`},
		{name: "empty", reply: ""},
		{name: "wrong types", reply: `{"description": 42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := &mockLLMService{replies: []string{tt.reply}}
			extractor := NewPreferenceExtractor(llm, nil)

			conv := domain.NewConversation("")
			conv.Append(domain.RoleUser, "hello")

			record := extractor.Extract(context.Background(), conv)
			assert.True(t, record.IsEmpty())
		})
	}
}

// TestPreferenceExtractor_GenerationFailure tests that call errors never propagate
func TestPreferenceExtractor_GenerationFailure(t *testing.T) {
	llm := &mockLLMService{chatErr: errors.New("network unreachable")}
	extractor := NewPreferenceExtractor(llm, nil)

	conv := domain.NewConversation("")
	conv.Append(domain.RoleUser, "gift for my mother")

	record := extractor.Extract(context.Background(), conv)
	assert.True(t, record.IsEmpty())
}

// TestPreferenceExtractor_NoUserMessages tests the no-call short circuit
func TestPreferenceExtractor_NoUserMessages(t *testing.T) {
	llm := &mockLLMService{}
	extractor := NewPreferenceExtractor(llm, nil)

	conv := domain.NewConversation("system prompt only")

	record := extractor.Extract(context.Background(), conv)
	assert.True(t, record.IsEmpty())
	assert.Empty(t, llm.calls)
}

// TestPreferenceExtractor_PartialRecord tests that partial output is kept as-is
func TestPreferenceExtractor_PartialRecord(t *testing.T) {
	llm := &mockLLMService{replies: []string{`{"context": "Christmas"}`}}
	extractor := NewPreferenceExtractor(llm, nil)

	conv := domain.NewConversation("")
	conv.Append(domain.RoleUser, "a Christmas present")

	record := extractor.Extract(context.Background(), conv)
	assert.Equal(t, "Christmas", record.Context)
	assert.False(t, record.Complete())
}

// TestPreferenceExtractor_CustomPrompt tests PromptStore usage
func TestPreferenceExtractor_CustomPrompt(t *testing.T) {
	llm := &mockLLMService{replies: []string{`{}`}}
	prompts := &stubPromptStore{prompts: map[string]string{
		driven.PromptExtractPreferences: "custom extraction prompt",
	}}
	extractor := NewPreferenceExtractor(llm, prompts)

	conv := domain.NewConversation("")
	conv.Append(domain.RoleUser, "hello")

	extractor.Extract(context.Background(), conv)

	require.Len(t, llm.calls, 1)
	assert.Equal(t, "custom extraction prompt", llm.calls[0][0].Content)
}

// stubPromptStore implements driven.PromptStore for testing.
type stubPromptStore struct {
	prompts map[string]string
}

func (s *stubPromptStore) Load(name string) (string, error) {
	if p, ok := s.prompts[name]; ok {
		return p, nil
	}
	return "", domain.ErrNotFound
}

func (s *stubPromptStore) Reload() {}
