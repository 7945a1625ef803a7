package mistral

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, handler http.HandlerFunc) (*EmbeddingService, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	service, err := NewEmbeddingService(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})
	require.NoError(t, err)
	return service, server
}

func writeEmbeddings(w http.ResponseWriter, vectors map[int][]float64) {
	resp := map[string]any{"data": []map[string]any{}}
	data := make([]map[string]any, 0, len(vectors))
	for index, vector := range vectors {
		data = append(data, map[string]any{"index": index, "embedding": vector})
	}
	resp["data"] = data
	_ = json.NewEncoder(w).Encode(resp)
}

func TestNewEmbeddingService_RequiresAPIKey(t *testing.T) {
	_, err := NewEmbeddingService(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestEmbeddingService_Defaults(t *testing.T) {
	service, err := NewEmbeddingService(Config{APIKey: "k"})
	require.NoError(t, err)

	assert.Equal(t, "mistral-embed", service.ModelName())
	assert.Equal(t, 1024, service.Dimensions())
}

func TestEmbedBatch_OrdersByIndex(t *testing.T) {
	service, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req embeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"first", "second"}, req.Input)

		// Return the vectors out of order: the index field wins.
		writeEmbeddings(w, map[int][]float64{
			1: {0, 1},
			0: {1, 0},
		})
	})

	vectors, err := service.EmbedBatch(context.Background(), []string{"first", "second"})

	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, []float32{1, 0}, vectors[0])
	assert.Equal(t, []float32{0, 1}, vectors[1])
}

func TestEmbedBatch_EmptyInput(t *testing.T) {
	service, err := NewEmbeddingService(Config{APIKey: "k"})
	require.NoError(t, err)

	vectors, err := service.EmbedBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, vectors)
}

func TestEmbedBatch_RetriesRateLimit(t *testing.T) {
	attempts := 0
	service, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"message":"rate limited"}`))
			return
		}
		writeEmbeddings(w, map[int][]float64{0: {0.5, 0.5}})
	})

	vectors, err := service.EmbedBatch(context.Background(), []string{"gift"})

	require.NoError(t, err)
	require.Len(t, vectors, 1)
	assert.Equal(t, 2, attempts)
}

func TestEmbedBatch_ErrorMessage(t *testing.T) {
	service, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid api key"}`))
	})

	_, err := service.EmbedBatch(context.Background(), []string{"gift"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestEmbedBatch_MissingVector(t *testing.T) {
	service, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		// Two inputs, one embedding back.
		writeEmbeddings(w, map[int][]float64{0: {1, 0}})
	})

	_, err := service.EmbedBatch(context.Background(), []string{"a", "b"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing embedding")
}

func TestEmbed_ReturnsFirstVector(t *testing.T) {
	service, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		writeEmbeddings(w, map[int][]float64{0: {0.1, 0.2, 0.3}})
	})

	vector, err := service.Embed(context.Background(), "a teapot for a tea lover")

	require.NoError(t, err)
	assert.Len(t, vector, 3)
}

func TestPing(t *testing.T) {
	service, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})

	assert.NoError(t, service.Ping(context.Background()))
}

func TestPing_BadKey(t *testing.T) {
	service, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	assert.Error(t, service.Ping(context.Background()))
}
