package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadolab/kado-cli/internal/core/domain"
)

func TestCreateEmbeddingService_NotConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings domain.EmbeddingSettings
	}{
		{name: "empty settings", settings: domain.EmbeddingSettings{}},
		{name: "missing key", settings: domain.EmbeddingSettings{Provider: domain.AIProviderMistral}},
		{name: "unknown provider", settings: domain.EmbeddingSettings{Provider: "groq", APIKey: "k"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateEmbeddingService(tt.settings)
			require.NoError(t, err)
			assert.Nil(t, svc)
		})
	}
}

func TestCreateEmbeddingService_Mistral(t *testing.T) {
	svc, err := CreateEmbeddingService(domain.EmbeddingSettings{
		Provider: domain.AIProviderMistral,
		APIKey:   "test-key",
	})

	require.NoError(t, err)
	require.NotNil(t, svc)
	defer svc.Close()

	assert.Equal(t, "mistral-embed", svc.ModelName())
	assert.Equal(t, 1024, svc.Dimensions())
}

func TestCreateEmbeddingService_OpenAI(t *testing.T) {
	svc, err := CreateEmbeddingService(domain.EmbeddingSettings{
		Provider: domain.AIProviderOpenAI,
		APIKey:   "test-key",
		Model:    "text-embedding-3-large",
	})

	require.NoError(t, err)
	require.NotNil(t, svc)
	defer svc.Close()

	assert.Equal(t, "text-embedding-3-large", svc.ModelName())
	assert.Equal(t, 3072, svc.Dimensions())
}

func TestCreateLLMService_NotConfigured(t *testing.T) {
	svc, err := CreateLLMService(domain.LLMSettings{Provider: domain.AIProviderOpenAI})
	require.NoError(t, err)
	assert.Nil(t, svc)
}

func TestCreateLLMService_Mistral(t *testing.T) {
	svc, err := CreateLLMService(domain.LLMSettings{
		Provider: domain.AIProviderMistral,
		APIKey:   "test-key",
	})

	require.NoError(t, err)
	require.NotNil(t, svc)
	defer svc.Close()

	assert.Equal(t, "mistral-small-latest", svc.ModelName())
}

func TestCreateLLMService_OpenAI(t *testing.T) {
	svc, err := CreateLLMService(domain.LLMSettings{
		Provider: domain.AIProviderOpenAI,
		APIKey:   "test-key",
		Model:    "gpt-4o",
	})

	require.NoError(t, err)
	require.NotNil(t, svc)
	defer svc.Close()

	assert.Equal(t, "gpt-4o", svc.ModelName())
}

func TestCreateAndValidate_SkipsUnconfigured(t *testing.T) {
	embed, err := CreateAndValidateEmbeddingService(domain.EmbeddingSettings{})
	require.NoError(t, err)
	assert.Nil(t, embed)

	llm, err := CreateAndValidateLLMService(domain.LLMSettings{})
	require.NoError(t, err)
	assert.Nil(t, llm)
}
