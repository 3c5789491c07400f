// Package embedder converts text into fixed-dimension unit-norm vectors
// for similarity search.
//
// The package exposes two providers behind a common Embedder interface:
//
//   - hash (default): a deterministic SHA-256 fingerprint. Byte-identical
//     text always produces a byte-identical vector, so self-similarity is
//     exactly 1.0. No other statistical property is promised; this is an
//     explicit placeholder for a learned model, kept because it makes the
//     whole pipeline reproducible and dependency-free.
//   - ollama: a real embedding model served by a local Ollama instance,
//     with retry and exponential backoff on transient failures.
//
// # Basic Usage
//
//	emb, err := embedder.New(embedder.Config{Dimension: 64})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer emb.Close()
//
//	vectors, err := emb.EmbedBatch(ctx, []string{chunk.Text})
//
// The pure function form is available for callers that need the
// fingerprint without constructing a provider:
//
//	vectors, err := embedder.EmbedTexts(texts, 64)
//
// # Output Contract
//
// Every provider returns one vector per input text, in input order, of
// exactly Dimension() length, normalized to unit L2 norm. Replacing the
// hash fingerprint with a semantic model only requires honoring this
// contract; the chunker and the vector store are unaffected.
//
// # Caching
//
// Providers share an LRU cache keyed by (dimension, text) content hash:
//
//	cache := embedder.NewCache(10000)
//	emb, _ := embedder.NewHashProvider(64, cache)
//
// Cache reads and writes copy the vector, so callers may mutate results
// without polluting the cache.
package embedder
