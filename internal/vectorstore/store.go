package vectorstore

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ingestkit/codeingest/pkg/types"
)

// Item is one (chunk id, vector, metadata) triple submitted for storage
type Item struct {
	ID     string
	Vector types.Vector
	Meta   map[string]interface{}
}

// Result is one ranked search hit
type Result struct {
	ID    string
	Score float64
	Meta  map[string]interface{}
}

// storedItem is the store-owned normalized copy of an inserted item
type storedItem struct {
	id     string
	vector types.Vector
	meta   map[string]interface{}
}

// Store is an in-memory, multi-tenant vector index keyed by repository id.
// Each partition is an insertion-ordered sequence of stored items; the only
// mutation is append. Writers are serialized and readers share the lock, so
// a search observes either the state before or after a given Add, never a
// partially-appended partition.
type Store struct {
	mu         sync.RWMutex
	partitions map[string][]storedItem
	generation uint64
}

// New creates an empty store. Each store owns its own partition map, so
// independent stores (per test, per tenant) never share state.
func New() *Store {
	return &Store{
		partitions: make(map[string][]storedItem),
	}
}

// Add normalizes each item's vector to unit L2 norm (the all-zero vector
// stays zero) and appends the items, in input order, to the repository's
// partition, creating it on first use. The store keeps independent copies;
// callers may reuse or mutate their vectors afterwards.
//
// An empty repoID or an empty vector in items is ErrInvalidArgument, and
// nothing is appended. An empty items slice is a no-op, not an error.
func (s *Store) Add(repoID string, items []Item) error {
	if repoID == "" {
		return fmt.Errorf("%w: repo id must be non-empty", types.ErrInvalidArgument)
	}
	if len(items) == 0 {
		return nil
	}

	// Validate and normalize before taking the lock so a failure never
	// leaves a partial append behind
	normalized := make([]storedItem, len(items))
	for i, item := range items {
		if len(item.Vector) == 0 {
			return fmt.Errorf("%w: vector for item %q is empty", types.ErrInvalidArgument, item.ID)
		}
		normalized[i] = storedItem{
			id:     item.ID,
			vector: item.Vector.Normalize(),
			meta:   item.Meta,
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.partitions[repoID] = append(s.partitions[repoID], normalized...)
	s.generation++
	return nil
}

// Search returns the k stored items most similar to query by cosine
// similarity, sorted by descending score. Equal scores keep insertion
// order, so output is deterministic across runs. The scan is a linear
// pass over the partition; no auxiliary index is kept.
//
// k <= 0 and an unknown repoID both yield an empty result, not an error.
// A stored vector whose length differs from the query aborts the whole
// call with ErrDimensionMismatch before any result is returned.
func (s *Store) Search(repoID string, query types.Vector, k int) ([]Result, error) {
	if k <= 0 {
		return []Result{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.partitions[repoID]
	if len(items) == 0 {
		return []Result{}, nil
	}

	q := query.Normalize()
	results := make([]Result, 0, len(items))
	for _, item := range items {
		score, err := types.Cosine(q, item.vector)
		if err != nil {
			return nil, fmt.Errorf("stored item %q: %w", item.id, err)
		}
		results = append(results, Result{
			ID:    item.id,
			Score: score,
			Meta:  item.meta,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

// Count returns the number of items stored for a repository
func (s *Store) Count(repoID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.partitions[repoID])
}

// Repos returns the known repository ids, sorted for deterministic output
func (s *Store) Repos() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	repos := make([]string, 0, len(s.partitions))
	for repoID := range s.partitions {
		repos = append(repos, repoID)
	}
	sort.Strings(repos)
	return repos
}

// Generation returns a counter that increases on every successful Add.
// Result caches key on it to avoid serving stale hits after ingestion.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}
