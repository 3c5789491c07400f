// Package chunker divides file text into overlapping line-ranged chunks for
// embedding and search.
//
// Chunks are cut by a sliding window of at most MaxLines lines that advances
// by MaxLines-OverlapLines lines per step, so consecutive chunks share
// OverlapLines lines of context. The overlap is clamped below the window
// size so the window always advances, even when callers ask for an overlap
// equal to or larger than the window.
//
// # Basic Usage
//
//	c := chunker.New()
//	chunks, err := c.Chunk(fileText)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, ch := range chunks {
//	    fmt.Printf("%s covers lines %d-%d\n", ch.ID, ch.StartLine, ch.EndLine)
//	}
//
// Chunk ids encode the 1-based line range ("chunk-181-380") and are unique
// and ordered by start line within one call. For a 450-line file with the
// default window (200 lines, 20 overlap) this produces three chunks:
// 1-200, 181-380, 361-450.
//
// The chunker is stateless and safe for concurrent use.
package chunker
