// Package mcp exposes the ingestion and retrieval pipeline as an MCP
// (Model Context Protocol) server over stdio.
//
// Three tools are registered:
//
//   - ingest_codebase: walk a source tree and index it into a repository
//     partition
//   - search_code: top-k similarity search over an ingested partition
//   - repo_status: report ingested partitions and chunk counts
//
// The server is a thin protocol adapter. All behavior lives in the
// indexer, searcher, and vectorstore packages; tool handlers validate
// parameters, call the pipeline, and encode results as indented JSON
// text content.
package mcp
