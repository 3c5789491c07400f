package embedder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ingestkit/codeingest/pkg/types"
)

const (
	// ProviderOllama embeds through a local Ollama server
	ProviderOllama = "ollama"

	// DefaultOllamaBaseURL is the standard local Ollama address
	DefaultOllamaBaseURL = "http://127.0.0.1:11434"

	// DefaultOllamaModel is the embedding model requested by default
	DefaultOllamaModel = "nomic-embed-text"

	ollamaRequestTimeout = 30 * time.Second
)

// OllamaProvider implements Embedder against Ollama's /api/embeddings
// endpoint. Vectors are normalized to unit L2 norm before being returned
// so the provider honors the same output contract as the hash provider.
type OllamaProvider struct {
	baseURL    string
	model      string
	dim        int
	httpClient *http.Client
	cache      *Cache
}

// NewOllamaProvider creates an Ollama embedder. dim must match the
// dimension of the configured model; a response of a different length is
// reported as a provider failure.
func NewOllamaProvider(baseURL, model string, dim int, cache *Cache) (*OllamaProvider, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("%w: dim must be positive", types.ErrInvalidArgument)
	}
	if baseURL == "" {
		baseURL = DefaultOllamaBaseURL
	}
	if model == "" {
		model = DefaultOllamaModel
	}

	return &OllamaProvider{
		baseURL: baseURL,
		model:   model,
		dim:     dim,
		httpClient: &http.Client{
			Timeout: ollamaRequestTimeout,
		},
		cache: cache,
	}, nil
}

// EmbedBatch generates one vector per text. Ollama's embeddings endpoint
// accepts a single prompt per call, so the batch is issued sequentially;
// any failure aborts the whole batch.
func (o *OllamaProvider) EmbedBatch(ctx context.Context, texts []string) ([]types.Vector, error) {
	vectors := make([]types.Vector, len(texts))
	for i, text := range texts {
		key := CacheKey(text, o.dim)
		if o.cache != nil {
			if v, ok := o.cache.Get(key); ok {
				vectors[i] = v
				continue
			}
		}

		config := DefaultRetryConfig()
		v, err := retryWithBackoff(ctx, config, func() (types.Vector, error) {
			return o.callAPI(ctx, text)
		})
		if err != nil {
			return nil, fmt.Errorf("%w: text %d: %v", ErrProviderFailed, i, err)
		}

		if o.cache != nil {
			o.cache.Set(key, v)
		}
		vectors[i] = v
	}
	return vectors, nil
}

func (o *OllamaProvider) callAPI(ctx context.Context, text string) (types.Vector, error) {
	reqBody := map[string]interface{}{
		"model":  o.model,
		"prompt": text,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api call: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("api error %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var apiResp struct {
		Embedding []float64 `json:"embedding"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(apiResp.Embedding) != o.dim {
		return nil, fmt.Errorf("model returned dimension %d, want %d", len(apiResp.Embedding), o.dim)
	}

	return types.Vector(apiResp.Embedding).Normalize(), nil
}

// Dimension returns the configured embedding dimension
func (o *OllamaProvider) Dimension() int {
	return o.dim
}

// Provider returns the provider name
func (o *OllamaProvider) Provider() string {
	return ProviderOllama
}

// Close releases idle HTTP connections
func (o *OllamaProvider) Close() error {
	o.httpClient.CloseIdleConnections()
	return nil
}
