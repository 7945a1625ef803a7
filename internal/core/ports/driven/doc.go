// Package driven declares the interfaces core services call out through:
// CatalogSource, EmbeddingService, LLMService, VectorIndex, ConfigStore,
// PromptStore and RecommendationStore. Adapters under
// internal/adapters/driven implement them.
//
// RecommendationStore and PromptStore may be nil; the services treat a
// missing store as "do not persist" and a missing prompt store as "use the
// embedded defaults". The package imports domain only.
package driven
