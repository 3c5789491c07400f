// Package config provides configuration loading for the code-ingest server.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// EnvPort overrides the configured HTTP port. A non-numeric or
// out-of-range value falls back to 0, which selects a free port.
const EnvPort = "CODE_INGEST_PORT"

// Config holds all configuration for the application
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Chunking  ChunkingConfig  `yaml:"chunking"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Search    SearchConfig    `yaml:"search"`
	LLM       LLMConfig       `yaml:"llm"`
}

// ServerConfig holds HTTP server settings. Port 0 auto-selects a free
// port; the chosen port is logged at startup.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// ChunkingConfig holds the line-window settings
type ChunkingConfig struct {
	MaxLines     int `yaml:"max_lines"`
	OverlapLines int `yaml:"overlap_lines"`
}

// EmbeddingConfig holds embedder settings
type EmbeddingConfig struct {
	Provider    string `yaml:"provider"`
	Dimension   int    `yaml:"dimension"`
	CacheSize   int    `yaml:"cache_size"`
	OllamaModel string `yaml:"ollama_model"`
}

// SearchConfig holds query settings
type SearchConfig struct {
	DefaultLimit    int  `yaml:"default_limit"`
	MaxLimit        int  `yaml:"max_limit"`
	CacheEnabled    bool `yaml:"cache_enabled"`
	CacheTTLSeconds int  `yaml:"cache_ttl_seconds"`
}

// LLMConfig holds the Ollama connector settings
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
}

// Load reads and parses the config file at path, applies defaults, and
// applies environment overrides. Returns an error if the file cannot be
// read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	applyEnv(&cfg)
	return &cfg, nil
}

// Default returns the configuration used when no config file is given
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	applyEnv(cfg)
	return cfg
}

// applyEnv applies environment variable overrides
func applyEnv(cfg *Config) {
	if raw, ok := os.LookupEnv(EnvPort); ok {
		cfg.Server.Port = parsePort(raw)
	}
}

// parsePort parses a port value with the startup script's semantics:
// anything that is not an integer in [0, 65535] means "auto-select".
func parsePort(raw string) int {
	port, err := strconv.Atoi(raw)
	if err != nil || port < 0 || port > 65535 {
		return 0
	}
	return port
}
