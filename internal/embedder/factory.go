package embedder

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variables read by NewFromEnv
const (
	EnvProvider      = "CODE_INGEST_EMBEDDING_PROVIDER"
	EnvDimension     = "CODE_INGEST_EMBEDDING_DIM"
	EnvOllamaBaseURL = "CODE_INGEST_OLLAMA_URL"
)

// Config holds embedder configuration
type Config struct {
	Provider      string
	Dimension     int
	CacheSize     int
	OllamaBaseURL string
	OllamaModel   string
}

// New creates an embedder from explicit configuration. An empty provider
// selects the hash fingerprint; a zero dimension selects the default.
func New(cfg Config) (Embedder, error) {
	dim := cfg.Dimension
	if dim == 0 {
		dim = DefaultDimension
	}

	var cache *Cache
	if cfg.CacheSize >= 0 {
		cache = NewCache(cfg.CacheSize)
	}

	provider := strings.ToLower(cfg.Provider)
	switch provider {
	case "", ProviderHash:
		return NewHashProvider(dim, cache)
	case ProviderOllama:
		return NewOllamaProvider(cfg.OllamaBaseURL, cfg.OllamaModel, dim, cache)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, cfg.Provider)
	}
}

// NewFromEnv creates an embedder based on environment variables, falling
// back to the hash provider at the default dimension.
func NewFromEnv() (Embedder, error) {
	cfg := Config{
		Provider:      os.Getenv(EnvProvider),
		OllamaBaseURL: os.Getenv(EnvOllamaBaseURL),
	}

	if raw := os.Getenv(EnvDimension); raw != "" {
		dim, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", EnvDimension, err)
		}
		cfg.Dimension = dim
	}

	return New(cfg)
}

// DetectProvider returns the provider name that NewFromEnv would select
func DetectProvider() string {
	provider := strings.ToLower(os.Getenv(EnvProvider))
	if provider == "" {
		return ProviderHash
	}
	return provider
}
