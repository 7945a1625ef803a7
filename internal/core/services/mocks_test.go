package services

import (
	"context"

	"github.com/kadolab/kado-cli/internal/core/domain"
	"github.com/kadolab/kado-cli/internal/core/ports/driven"
)

// --- Mock implementations of driven ports ---

// mockCatalogSource implements driven.CatalogSource for testing.
type mockCatalogSource struct {
	items   []domain.CatalogItem
	loadErr error
	loads   int
}

func (m *mockCatalogSource) Load(_ context.Context) ([]domain.CatalogItem, error) {
	m.loads++
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.items, nil
}

// mockEmbeddingService implements driven.EmbeddingService for testing.
// It embeds each text as a fixed vector unless vectorFor overrides it.
type mockEmbeddingService struct {
	embedding []float32
	vectorFor map[string][]float32
	embedErr  error
	batches   [][]string
}

func (m *mockEmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	if v, ok := m.vectorFor[text]; ok {
		return v, nil
	}
	return m.embedding, nil
}

func (m *mockEmbeddingService) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	m.batches = append(m.batches, texts)
	result := make([][]float32, len(texts))
	for i, text := range texts {
		if v, ok := m.vectorFor[text]; ok {
			result[i] = v
			continue
		}
		result[i] = m.embedding
	}
	return result, nil
}

func (m *mockEmbeddingService) Dimensions() int              { return 3 }
func (m *mockEmbeddingService) ModelName() string            { return "mock-embed" }
func (m *mockEmbeddingService) Ping(_ context.Context) error { return nil }
func (m *mockEmbeddingService) Close() error                 { return nil }

// mockVectorIndex implements driven.VectorIndex for testing.
type mockVectorIndex struct {
	entries  []domain.IndexEntry
	hits     []driven.VectorHit
	buildErr error
	queryErr error
	queries  int
}

func (m *mockVectorIndex) Build(_ context.Context, entries []domain.IndexEntry) error {
	if m.buildErr != nil {
		return m.buildErr
	}
	m.entries = entries
	return nil
}

func (m *mockVectorIndex) Query(_ context.Context, _ []float32, k int) ([]driven.VectorHit, error) {
	m.queries++
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	if k > len(m.hits) {
		return m.hits, nil
	}
	return m.hits[:k], nil
}

func (m *mockVectorIndex) Size() int    { return len(m.entries) }
func (m *mockVectorIndex) Close() error { return nil }

// mockLLMService implements driven.LLMService for testing.
// Replies are consumed in order; chatFn takes precedence when set.
type mockLLMService struct {
	replies []string
	chatErr error
	chatFn  func(messages []driven.ChatMessage) (string, error)
	calls   [][]driven.ChatMessage
}

func (m *mockLLMService) Chat(_ context.Context, messages []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	m.calls = append(m.calls, messages)
	if m.chatFn != nil {
		return m.chatFn(messages)
	}
	if m.chatErr != nil {
		return "", m.chatErr
	}
	if len(m.replies) == 0 {
		return "", nil
	}
	reply := m.replies[0]
	if len(m.replies) > 1 {
		m.replies = m.replies[1:]
	}
	return reply, nil
}

func (m *mockLLMService) Generate(ctx context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	return m.Chat(ctx, []driven.ChatMessage{{Role: domain.RoleUser, Content: prompt}}, driven.ChatOptions{})
}

func (m *mockLLMService) ModelName() string            { return "mock-llm" }
func (m *mockLLMService) Ping(_ context.Context) error { return nil }
func (m *mockLLMService) Close() error                 { return nil }

// mockRecommendationStore implements driven.RecommendationStore for testing.
type mockRecommendationStore struct {
	saved   []domain.SavedRecommendation
	saveErr error
}

func (m *mockRecommendationStore) Save(_ context.Context, rec domain.SavedRecommendation) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, rec)
	return nil
}

func (m *mockRecommendationStore) List(_ context.Context) ([]domain.SavedRecommendation, error) {
	return m.saved, nil
}

func (m *mockRecommendationStore) Close() error { return nil }

// mockExtractor implements driving.PreferenceExtractor for testing.
type mockExtractor struct {
	record domain.PreferenceRecord
}

func (m *mockExtractor) Extract(_ context.Context, _ *domain.Conversation) domain.PreferenceRecord {
	return m.record
}

// testCatalog returns a small catalog used across tests.
func testCatalog() []domain.CatalogItem {
	return []domain.CatalogItem{
		{
			ID:              0,
			Name:            "Mediterranean Cookbook",
			MainCategory:    "Books",
			SubCategory:     "Cooking",
			GiftCategory:    "Cooking",
			PriceDiscounted: 25,
			PriceOriginal:   35,
			Rating:          4.7,
			RichDescription: "300 recipes from the Mediterranean coast",
		},
		{
			ID:              1,
			Name:            "E-reader",
			MainCategory:    "Electronics",
			SubCategory:     "Readers",
			GiftCategory:    "Reading",
			PriceDiscounted: 90,
			PriceOriginal:   120,
			Rating:          4.5,
			RichDescription: "Glare-free 6 inch reader with backlight",
		},
		{
			ID:              2,
			Name:            "Trail Running Shoes",
			MainCategory:    "Sports",
			SubCategory:     "Running",
			GiftCategory:    "Sports",
			PriceDiscounted: 75,
			PriceOriginal:   110,
			Rating:          4.2,
			RichDescription: "Lightweight shoes with aggressive grip",
		},
	}
}
