// Package vectorstore implements the in-memory, multi-tenant vector index
// behind the retrieval pipeline.
//
// Fingerprint vectors are stored per repository id and queried by cosine
// similarity with a brute-force linear scan. The scan is a deliberate
// simplification: at larger scale an approximate nearest-neighbor index can
// replace it behind the same Search signature, as long as exact-duplicate
// self-similarity (1.0) and deterministic tie-breaking are preserved.
//
// # Usage
//
//	store := vectorstore.New()
//	err := store.Add("repo-A", []vectorstore.Item{
//	    {ID: "chunk-1-200", Vector: vec, Meta: map[string]interface{}{"start_line": 1}},
//	})
//	results, err := store.Search("repo-A", queryVec, 5)
//
// Stored vectors are normalized copies; items are never deleted, updated,
// or deduplicated — re-inserting an id appends a second entry. All methods
// are safe for concurrent use: Add takes the write lock, Search and the
// read-only helpers share the read lock.
package vectorstore
