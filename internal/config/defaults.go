package config

import (
	"github.com/ingestkit/codeingest/internal/chunker"
	"github.com/ingestkit/codeingest/internal/embedder"
	"github.com/ingestkit/codeingest/internal/searcher"
)

// ApplyDefaults sets default values for any zero values in cfg
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "127.0.0.1"
	}

	if cfg.Chunking.MaxLines == 0 {
		cfg.Chunking.MaxLines = chunker.DefaultMaxLines
	}
	if cfg.Chunking.OverlapLines == 0 {
		cfg.Chunking.OverlapLines = chunker.DefaultOverlapLines
	}

	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = embedder.ProviderHash
	}
	if cfg.Embedding.Dimension == 0 {
		cfg.Embedding.Dimension = embedder.DefaultDimension
	}
	if cfg.Embedding.CacheSize == 0 {
		cfg.Embedding.CacheSize = embedder.DefaultCacheSize
	}
	if cfg.Embedding.OllamaModel == "" {
		cfg.Embedding.OllamaModel = embedder.DefaultOllamaModel
	}

	if cfg.Search.DefaultLimit == 0 {
		cfg.Search.DefaultLimit = searcher.DefaultLimit
	}
	if cfg.Search.MaxLimit == 0 {
		cfg.Search.MaxLimit = 100
	}
	if cfg.Search.CacheTTLSeconds == 0 {
		cfg.Search.CacheTTLSeconds = int(searcher.DefaultCacheTTL.Seconds())
	}

	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = "http://127.0.0.1:11434"
	}
}
