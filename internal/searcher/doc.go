// Package searcher implements the query path of the retrieval pipeline:
// a free-text query is embedded with the same provider used at ingestion
// and matched against a repository's stored fingerprints by cosine
// similarity.
//
//	s := searcher.New(store, emb, logger)
//	resp, err := s.Search(ctx, searcher.Request{
//	    RepoID: "repo-A",
//	    Query:  "where is the retry logic",
//	    Limit:  5,
//	})
//
// Responses can optionally be cached in an LRU keyed by (repo, query,
// limit). Entries carry the store generation they were computed against
// and expire on TTL or on any subsequent ingestion, whichever comes first.
package searcher
