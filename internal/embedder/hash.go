package embedder

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strconv"

	"github.com/ingestkit/codeingest/pkg/types"
)

const (
	// ProviderHash is the deterministic hash-fingerprint provider
	ProviderHash = "hash"

	// DefaultDimension is the default fingerprint dimension
	DefaultDimension = 64
)

// EmbedTexts returns one deterministic unit-norm vector of length dim per
// input text, in input order. Byte-identical text always yields a
// byte-identical vector; the function is pure.
//
// The construction expands a SHA-256 digest stream over the text: the
// digest of the text itself, then of "text:1", "text:2", and so on until
// dim bytes are available. Each byte maps to [0,1] by dividing by 255
// (equivalent to reading consecutive hex-digit pairs of the digest), and
// the resulting vector is normalized to unit L2 norm. The all-zero vector
// would stay zero, though SHA-256 output never produces one.
func EmbedTexts(texts []string, dim int) ([]types.Vector, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("%w: dim must be positive", types.ErrInvalidArgument)
	}

	vectors := make([]types.Vector, len(texts))
	for i, text := range texts {
		vectors[i] = hashVector(text, dim)
	}
	return vectors, nil
}

// hashVector builds the raw digest-stream vector for one text and
// normalizes it
func hashVector(text string, dim int) types.Vector {
	stream := make([]byte, 0, ((dim+sha256.Size-1)/sha256.Size)*sha256.Size)

	digest := sha256.Sum256([]byte(text))
	stream = append(stream, digest[:]...)
	for counter := 1; len(stream) < dim; counter++ {
		digest = sha256.Sum256([]byte(text + ":" + strconv.Itoa(counter)))
		stream = append(stream, digest[:]...)
	}

	v := make(types.Vector, dim)
	for i := 0; i < dim; i++ {
		v[i] = float64(stream[i]) / 255.0
	}
	return v.Normalize()
}

// HashProvider is the default embedder: a deterministic hash fingerprint,
// not a learned model. It preserves only the embedding contract
// (determinism, unit-norm output, fixed dimension) so a real semantic
// model can replace it behind the same interface without touching the
// chunker or the vector store.
type HashProvider struct {
	dim   int
	cache *Cache
}

// NewHashProvider creates a hash embedder producing vectors of length dim
func NewHashProvider(dim int, cache *Cache) (*HashProvider, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("%w: dim must be positive", types.ErrInvalidArgument)
	}
	return &HashProvider{dim: dim, cache: cache}, nil
}

// EmbedBatch generates one fingerprint per text. The computation is local
// and never fails after construction, so ctx is accepted only for
// interface symmetry.
func (h *HashProvider) EmbedBatch(_ context.Context, texts []string) ([]types.Vector, error) {
	vectors := make([]types.Vector, len(texts))
	for i, text := range texts {
		key := CacheKey(text, h.dim)
		if h.cache != nil {
			if v, ok := h.cache.Get(key); ok {
				vectors[i] = v
				continue
			}
		}

		v := hashVector(text, h.dim)
		if h.cache != nil {
			h.cache.Set(key, v)
		}
		vectors[i] = v
	}
	return vectors, nil
}

// Dimension returns the configured fingerprint dimension
func (h *HashProvider) Dimension() int {
	return h.dim
}

// Provider returns the provider name
func (h *HashProvider) Provider() string {
	return ProviderHash
}

// Close releases resources; the hash provider holds none
func (h *HashProvider) Close() error {
	return nil
}
