package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Catalog ingestion errors. All three are non-fatal to the process and
	// leave any previously loaded catalog intact.

	// ErrCatalogLoad indicates the catalog source could not be read at all.
	ErrCatalogLoad = errors.New("catalog load failed")

	// ErrCatalogSchema indicates a required column is structurally absent
	// after synonym resolution.
	ErrCatalogSchema = errors.New("catalog schema invalid")

	// ErrCatalogData indicates a cell could not be coerced to its type.
	// A single bad price cell rejects the whole load.
	ErrCatalogData = errors.New("catalog data invalid")

	// ErrCatalogNotLoaded indicates an operation requires a loaded catalog.
	ErrCatalogNotLoaded = errors.New("catalog not loaded")

	// ErrIndexBuild indicates an embedding or index-build failure. The
	// index keeps its previous valid state, possibly unbuilt.
	ErrIndexBuild = errors.New("index build failed")

	// ErrGeneration indicates the conversational completion call failed.
	// Surfaced to the user as an in-conversation notice, never a crash.
	ErrGeneration = errors.New("generation failed")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Similarity retrieval is disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrVectorIndexUnavailable indicates the vector index is not configured.
	ErrVectorIndexUnavailable = errors.New("vector index unavailable")
)
