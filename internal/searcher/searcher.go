package searcher

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strconv"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/ingestkit/codeingest/internal/embedder"
	"github.com/ingestkit/codeingest/internal/vectorstore"
	"github.com/ingestkit/codeingest/pkg/types"
)

const (
	// DefaultLimit is the number of results returned when the request
	// does not specify one
	DefaultLimit = 10

	// DefaultCacheTTL bounds how long a cached response may be served
	DefaultCacheTTL = 5 * time.Minute

	queryCacheSize = 1000
)

// Request contains parameters for a query operation
type Request struct {
	RepoID   string
	Query    string
	Limit    int
	UseCache bool
	CacheTTL time.Duration
}

// Response contains ranked results and query metadata
type Response struct {
	Results      []vectorstore.Result
	TotalResults int
	Duration     time.Duration
	CacheHit     bool
}

// cacheEntry pins a cached response to the store generation it was
// computed against, so results are never served across an ingestion
type cacheEntry struct {
	response   *Response
	generation uint64
	expiresAt  time.Time
}

// Searcher answers free-text queries by embedding the query and ranking
// the repository's stored fingerprints by cosine similarity
type Searcher struct {
	store    *vectorstore.Store
	embedder embedder.Embedder
	logger   *zap.Logger
	cache    *lru.Cache[[32]byte, *cacheEntry]
}

// New creates a Searcher. A nil logger disables logging.
func New(store *vectorstore.Store, emb embedder.Embedder, logger *zap.Logger) *Searcher {
	if logger == nil {
		logger = zap.NewNop()
	}

	cache, err := lru.New[[32]byte, *cacheEntry](queryCacheSize)
	if err != nil {
		// Only possible with a non-positive size constant
		panic(fmt.Sprintf("create query cache: %v", err))
	}

	return &Searcher{
		store:    store,
		embedder: emb,
		logger:   logger,
		cache:    cache,
	}
}

// Search embeds the query text and returns the top results for the
// repository. An unknown repository yields an empty response, not an
// error; an empty repository id is ErrInvalidArgument.
func (s *Searcher) Search(ctx context.Context, req Request) (*Response, error) {
	startTime := time.Now()

	if req.RepoID == "" {
		return nil, fmt.Errorf("%w: repo id must be non-empty", types.ErrInvalidArgument)
	}
	if req.Limit <= 0 {
		req.Limit = DefaultLimit
	}
	if req.CacheTTL <= 0 {
		req.CacheTTL = DefaultCacheTTL
	}

	key := cacheKey(req)
	if req.UseCache {
		if cached, ok := s.lookupCache(key); ok {
			cached.CacheHit = true
			cached.Duration = time.Since(startTime)
			return cached, nil
		}
	}

	vectors, err := s.embedder.EmbedBatch(ctx, []string{req.Query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	generation := s.store.Generation()
	results, err := s.store.Search(req.RepoID, vectors[0], req.Limit)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", req.RepoID, err)
	}

	response := &Response{
		Results:      results,
		TotalResults: len(results),
		Duration:     time.Since(startTime),
	}

	if req.UseCache {
		s.cache.Add(key, &cacheEntry{
			response:   response,
			generation: generation,
			expiresAt:  time.Now().Add(req.CacheTTL),
		})
	}

	s.logger.Debug("query served",
		zap.String("repo_id", req.RepoID),
		zap.Int("results", len(results)),
		zap.Duration("duration", response.Duration))

	return response, nil
}

// lookupCache returns a shallow copy of a fresh cache entry, if any
func (s *Searcher) lookupCache(key [32]byte) (*Response, bool) {
	entry, ok := s.cache.Get(key)
	if !ok {
		return nil, false
	}

	if time.Now().After(entry.expiresAt) || entry.generation != s.store.Generation() {
		s.cache.Remove(key)
		return nil, false
	}

	copied := *entry.response
	return &copied, true
}

// cacheKey hashes the request parameters that determine the result set
func cacheKey(req Request) [32]byte {
	h := sha256.New()
	h.Write([]byte(req.RepoID))
	h.Write([]byte{0})
	h.Write([]byte(req.Query))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(req.Limit)))

	var key [32]byte
	copy(key[:], h.Sum(nil))
	return key
}
