package embedder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/ingestkit/codeingest/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeOllama(t *testing.T, embedding []float64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/embeddings", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var req struct {
			Model  string `json:"model"`
			Prompt string `json:"prompt"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req.Model)

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"embedding": embedding,
		})
	}))
}

func TestOllamaProvider_EmbedBatch(t *testing.T) {
	srv := newFakeOllama(t, []float64{3, 4, 0})
	defer srv.Close()

	p, err := NewOllamaProvider(srv.URL, "", 3, nil)
	require.NoError(t, err)
	defer func() { _ = p.Close() }()

	assert.Equal(t, 3, p.Dimension())
	assert.Equal(t, ProviderOllama, p.Provider())

	vectors, err := p.EmbedBatch(context.Background(), []string{"some code"})
	require.NoError(t, err)
	require.Len(t, vectors, 1)

	// Response is normalized before being returned
	assert.InDelta(t, 1.0, vectors[0].Norm(), 1e-9)
	assert.InDelta(t, 0.6, vectors[0][0], 1e-9)
	assert.InDelta(t, 0.8, vectors[0][1], 1e-9)
}

func TestOllamaProvider_DimensionMismatchFails(t *testing.T) {
	srv := newFakeOllama(t, []float64{1, 2})
	defer srv.Close()

	p, err := NewOllamaProvider(srv.URL, "", 3, nil)
	require.NoError(t, err)

	_, err = p.EmbedBatch(context.Background(), []string{"text"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProviderFailed)
}

func TestOllamaProvider_RetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"embedding": []float64{1, 0},
		})
	}))
	defer srv.Close()

	p, err := NewOllamaProvider(srv.URL, "", 2, nil)
	require.NoError(t, err)

	vectors, err := p.EmbedBatch(context.Background(), []string{"flaky"})
	require.NoError(t, err)
	assert.Equal(t, types.Vector{1, 0}, vectors[0])
	assert.GreaterOrEqual(t, calls.Load(), int32(2))
}

func TestOllamaProvider_CacheSkipsAPI(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"embedding": []float64{0, 1},
		})
	}))
	defer srv.Close()

	p, err := NewOllamaProvider(srv.URL, "", 2, NewCache(8))
	require.NoError(t, err)

	ctx := context.Background()
	_, err = p.EmbedBatch(ctx, []string{"cached"})
	require.NoError(t, err)
	_, err = p.EmbedBatch(ctx, []string{"cached"})
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load())
}

func TestNewOllamaProvider_InvalidDimension(t *testing.T) {
	_, err := NewOllamaProvider("", "", 0, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}
