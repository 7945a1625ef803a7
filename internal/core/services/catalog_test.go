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

// TestCatalogService_Load tests loading and idempotency
func TestCatalogService_Load(t *testing.T) {
	source := &mockCatalogSource{items: testCatalog()}
	svc := NewCatalogService(source, nil, nil)

	require.NoError(t, svc.Load(context.Background()))
	first := svc.Items()

	require.NoError(t, svc.Load(context.Background()))
	second := svc.Items()

	assert.Equal(t, first, second)
	assert.Len(t, second, 3)
}

// TestCatalogService_LoadFailureKeepsPriorState tests that a failed reload
// leaves the previously loaded catalog intact
func TestCatalogService_LoadFailureKeepsPriorState(t *testing.T) {
	source := &mockCatalogSource{items: testCatalog()}
	svc := NewCatalogService(source, nil, nil)
	require.NoError(t, svc.Load(context.Background()))

	source.loadErr = domain.ErrCatalogData
	err := svc.Load(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCatalogData)
	assert.Len(t, svc.Items(), 3)
}

// TestCatalogService_Categories tests category derivation without re-reading
// the source
func TestCatalogService_Categories(t *testing.T) {
	source := &mockCatalogSource{items: testCatalog()}
	svc := NewCatalogService(source, nil, nil)
	require.NoError(t, svc.Load(context.Background()))

	cats, err := svc.Categories()
	require.NoError(t, err)
	assert.Equal(t, []string{"Books", "Electronics", "Sports"}, cats.Main)
	assert.Equal(t, []string{"Cooking", "Reading", "Sports"}, cats.Gift)
	assert.Equal(t, 1, source.loads, "categories must not re-read the source")
}

// TestCatalogService_CategoriesUnloaded tests the not-loaded error
func TestCatalogService_CategoriesUnloaded(t *testing.T) {
	svc := NewCatalogService(&mockCatalogSource{}, nil, nil)

	_, err := svc.Categories()
	assert.ErrorIs(t, err, domain.ErrCatalogNotLoaded)
}

// TestCatalogService_PriceRange tests min/max over the loaded set
func TestCatalogService_PriceRange(t *testing.T) {
	source := &mockCatalogSource{items: testCatalog()}
	svc := NewCatalogService(source, nil, nil)
	require.NoError(t, svc.Load(context.Background()))

	pr, err := svc.PriceRange()
	require.NoError(t, err)
	assert.Equal(t, 25.0, pr.Min)
	assert.Equal(t, 90.0, pr.Max)
	assert.Equal(t, 1, source.loads, "price range must not re-read the source")
}

// TestCatalogService_BuildIndex tests the batch embed and single index build
func TestCatalogService_BuildIndex(t *testing.T) {
	embed := &mockEmbeddingService{embedding: []float32{1, 0, 0}}
	index := &mockVectorIndex{}
	svc := NewCatalogService(&mockCatalogSource{items: testCatalog()}, embed, index)
	require.NoError(t, svc.Load(context.Background()))

	require.NoError(t, svc.BuildIndex(context.Background()))

	require.Len(t, index.entries, 3)
	assert.Equal(t, 0, index.entries[0].ItemID)
	assert.Equal(t, 2, index.entries[2].ItemID)
	require.Len(t, embed.batches, 1)
	assert.Contains(t, embed.batches[0][0], "Mediterranean Cookbook")
}

// TestCatalogService_BuildIndexEmbedFailure tests that an embedding failure
// reports an index-build error and builds nothing
func TestCatalogService_BuildIndexEmbedFailure(t *testing.T) {
	embed := &mockEmbeddingService{embedErr: errors.New("quota exceeded")}
	index := &mockVectorIndex{}
	svc := NewCatalogService(&mockCatalogSource{items: testCatalog()}, embed, index)
	require.NoError(t, svc.Load(context.Background()))

	err := svc.BuildIndex(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIndexBuild)
	assert.Empty(t, index.entries)
}

// TestCatalogService_BuildIndexWithoutCatalog tests the not-loaded guard
func TestCatalogService_BuildIndexWithoutCatalog(t *testing.T) {
	svc := NewCatalogService(&mockCatalogSource{}, &mockEmbeddingService{}, &mockVectorIndex{})

	err := svc.BuildIndex(context.Background())
	assert.ErrorIs(t, err, domain.ErrCatalogNotLoaded)
}

// TestCatalogService_SearchEmptyIndex tests the empty, non-error result
func TestCatalogService_SearchEmptyIndex(t *testing.T) {
	svc := NewCatalogService(&mockCatalogSource{items: testCatalog()}, &mockEmbeddingService{}, &mockVectorIndex{})
	require.NoError(t, svc.Load(context.Background()))

	candidates, err := svc.Search(context.Background(), "cooking gift", 4)

	require.NoError(t, err)
	assert.Empty(t, candidates)
}

// TestCatalogService_Search tests hit-to-candidate hydration and ordering
func TestCatalogService_Search(t *testing.T) {
	embed := &mockEmbeddingService{embedding: []float32{1, 0, 0}}
	index := &mockVectorIndex{
		entries: []domain.IndexEntry{{ItemID: 0}, {ItemID: 1}, {ItemID: 2}},
		hits: []driven.VectorHit{
			{ItemID: 1, Similarity: 0.92},
			{ItemID: 0, Similarity: 0.88},
		},
	}
	svc := NewCatalogService(&mockCatalogSource{items: testCatalog()}, embed, index)
	require.NoError(t, svc.Load(context.Background()))

	candidates, err := svc.Search(context.Background(), "reading gift for my mother", 2)

	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "E-reader", candidates[0].Name)
	assert.Equal(t, "Mediterranean Cookbook", candidates[1].Name)
	assert.Equal(t, 0.92, candidates[0].Similarity)
	assert.Equal(t, "Reading", candidates[0].Category)
}

// TestCatalogService_SearchWithoutServices tests graceful degradation when
// embedding or index are not configured
func TestCatalogService_SearchWithoutServices(t *testing.T) {
	svc := NewCatalogService(&mockCatalogSource{items: testCatalog()}, nil, nil)
	require.NoError(t, svc.Load(context.Background()))

	candidates, err := svc.Search(context.Background(), "anything", 4)

	require.NoError(t, err)
	assert.Empty(t, candidates)
}
