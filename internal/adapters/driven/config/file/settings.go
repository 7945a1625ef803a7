package file

import (
	"os"

	"github.com/kadolab/kado-cli/internal/core/domain"
	"github.com/kadolab/kado-cli/internal/core/ports/driven"
)

// Configuration keys used in config.toml.
const (
	KeyCatalogPath = "catalog.path"
	KeyCatalogTopK = "catalog.top_k"

	KeyEmbeddingProvider = "embedding.provider"
	KeyEmbeddingModel    = "embedding.model"
	KeyEmbeddingBaseURL  = "embedding.base_url"
	KeyEmbeddingAPIKey   = "embedding.api_key"

	KeyLLMProvider = "llm.provider"
	KeyLLMModel    = "llm.model"
	KeyLLMBaseURL  = "llm.base_url"
	KeyLLMAPIKey   = "llm.api_key"
)

// Environment variables recognised as API key sources. The config file
// wins; the environment fills gaps so a .env file is enough to get going.
const (
	EnvMistralAPIKey = "MISTRAL_API_KEY"
	EnvOpenAIAPIKey  = "OPENAI_API_KEY"
	EnvCatalogPath   = "KADO_CATALOG"
)

// LoadAppSettings assembles application settings from the config store,
// starting from defaults and applying environment fallbacks for API keys
// and the catalog path.
func LoadAppSettings(store driven.ConfigStore) domain.AppSettings {
	settings := domain.DefaultAppSettings()

	if path := store.GetString(KeyCatalogPath); path != "" {
		settings.Catalog.Path = path
	}
	if path := os.Getenv(EnvCatalogPath); path != "" {
		settings.Catalog.Path = path
	}
	if topK := store.GetInt(KeyCatalogTopK); topK > 0 {
		settings.Catalog.TopK = topK
	}

	if provider := store.GetString(KeyEmbeddingProvider); provider != "" {
		settings.Embedding.Provider = domain.AIProvider(provider)
	}
	settings.Embedding.Model = store.GetString(KeyEmbeddingModel)
	settings.Embedding.BaseURL = store.GetString(KeyEmbeddingBaseURL)
	settings.Embedding.APIKey = store.GetString(KeyEmbeddingAPIKey)
	if settings.Embedding.APIKey == "" {
		settings.Embedding.APIKey = apiKeyFromEnv(settings.Embedding.Provider)
	}

	if provider := store.GetString(KeyLLMProvider); provider != "" {
		settings.LLM.Provider = domain.AIProvider(provider)
	}
	settings.LLM.Model = store.GetString(KeyLLMModel)
	settings.LLM.BaseURL = store.GetString(KeyLLMBaseURL)
	settings.LLM.APIKey = store.GetString(KeyLLMAPIKey)
	if settings.LLM.APIKey == "" {
		settings.LLM.APIKey = apiKeyFromEnv(settings.LLM.Provider)
	}

	return settings
}

// SaveAppSettings writes the given settings back to the config store.
// API keys sourced from the environment are not written to disk.
func SaveAppSettings(store driven.ConfigStore, settings domain.AppSettings) error {
	pairs := []struct {
		key   string
		value any
	}{
		{KeyCatalogPath, settings.Catalog.Path},
		{KeyCatalogTopK, int64(settings.Catalog.TopK)},
		{KeyEmbeddingProvider, settings.Embedding.Provider.String()},
		{KeyEmbeddingModel, settings.Embedding.Model},
		{KeyEmbeddingBaseURL, settings.Embedding.BaseURL},
		{KeyLLMProvider, settings.LLM.Provider.String()},
		{KeyLLMModel, settings.LLM.Model},
		{KeyLLMBaseURL, settings.LLM.BaseURL},
	}

	for _, pair := range pairs {
		if err := store.Set(pair.key, pair.value); err != nil {
			return err
		}
	}
	return nil
}

// apiKeyFromEnv returns the conventional environment variable for the
// provider, or empty when none is set.
func apiKeyFromEnv(provider domain.AIProvider) string {
	switch provider {
	case domain.AIProviderMistral:
		return os.Getenv(EnvMistralAPIKey)
	case domain.AIProviderOpenAI:
		return os.Getenv(EnvOpenAIAPIKey)
	default:
		return ""
	}
}
