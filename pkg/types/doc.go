// Package types provides shared type definitions for the code-ingest
// retrieval pipeline.
//
// This package defines the domain types used across multiple components:
// chunks, vectors, and the shared error sentinels.
//
// # Core Types
//
// Chunk represents a line-ranged fragment of one file's text:
//
//	chunk := types.Chunk{
//	    ID:        "chunk-1-200",
//	    Text:      fragment,
//	    StartLine: 1,
//	    EndLine:   200,
//	}
//
// Vector is a fixed-length numeric fingerprint used for cosine-similarity
// comparison. Vectors handed to the store are normalized to unit L2 norm;
// the all-zero vector is the single exception and stays zero:
//
//	unit := vec.Normalize()
//	score, err := types.Cosine(unit, other)
//
// # Errors
//
// Components wrap the sentinels with call-site detail so callers can branch
// with errors.Is:
//
//	if errors.Is(err, types.ErrInvalidArgument) {
//	    // reject the request
//	}
package types
