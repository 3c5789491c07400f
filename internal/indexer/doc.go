// Package indexer coordinates the ingestion pipeline: file text is split
// into line-ranged chunks, each chunk is embedded, and the resulting
// (id, vector, metadata) triples are appended to the vector store under a
// repository id.
//
// Single files are ingested synchronously with IngestText/IngestFile;
// IngestDir walks a tree and ingests matching source files concurrently
// through an errgroup with a bounded worker count. A per-repository
// non-blocking lock rejects overlapping directory ingestions of the same
// repository.
//
//	idx := indexer.New(chunker.New(), emb, store, logger)
//	chunks, err := idx.IngestText(ctx, "repo-A", "main.go", fileText)
package indexer
