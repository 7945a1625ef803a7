package domain

// AIProvider names a hosted AI service usable for chat or embeddings.
type AIProvider string

const (
	AIProviderMistral AIProvider = "mistral"
	AIProviderOpenAI  AIProvider = "openai"
)

// IsValid reports whether the provider is one kado knows how to talk to.
func (p AIProvider) IsValid() bool {
	return p == AIProviderMistral || p == AIProviderOpenAI
}

func (p AIProvider) String() string {
	return string(p)
}

// Description is the label shown in settings listings and prompts.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderMistral:
		return "Mistral (cloud)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	default:
		return "Unknown"
	}
}

// EmbeddingSettings configures the embedding provider. BaseURL is an
// optional endpoint override for compatible gateways and tests.
type EmbeddingSettings struct {
	Provider AIProvider
	Model    string
	BaseURL  string
	APIKey   string
}

// IsConfigured reports whether the embedding provider can be used.
func (e EmbeddingSettings) IsConfigured() bool {
	return e.Provider.IsValid() && e.APIKey != ""
}

// LLMSettings configures the chat model provider. BaseURL is an optional
// endpoint override for compatible gateways and tests.
type LLMSettings struct {
	Provider AIProvider
	Model    string
	BaseURL  string
	APIKey   string
}

// IsConfigured reports whether the LLM provider can be used.
func (l LLMSettings) IsConfigured() bool {
	return l.Provider.IsValid() && l.APIKey != ""
}

// CatalogSettings locates the product catalogue and sizes retrieval.
type CatalogSettings struct {
	// Path is the catalogue CSV file.
	Path string

	// TopK is how many candidates each recommendation retrieves.
	TopK int
}

// AppSettings gathers every user-facing setting.
type AppSettings struct {
	Catalog   CatalogSettings
	Embedding EmbeddingSettings
	LLM       LLMSettings
}

// DefaultAppSettings returns the out-of-the-box configuration. Providers
// default to Mistral but remain unusable until an API key is supplied via
// the settings command or the environment.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Catalog: CatalogSettings{
			Path: "data/data_gifts.csv",
			TopK: 4,
		},
		Embedding: EmbeddingSettings{
			Provider: AIProviderMistral,
		},
		LLM: LLMSettings{
			Provider: AIProviderMistral,
		},
	}
}
