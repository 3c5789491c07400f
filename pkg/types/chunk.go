package types

import "errors"

// Chunk represents a contiguous, line-numbered slice of one file's text.
// Line numbers are 1-based and inclusive. Chunks are immutable once produced.
type Chunk struct {
	// ID is derived deterministically from the line range ("chunk-{start}-{end}")
	// and is unique within one chunking call.
	ID   string
	Text string

	StartLine int
	EndLine   int
}

// Validate checks the structural invariants of the chunk.
func (c *Chunk) Validate() error {
	if c.ID == "" {
		return errors.New("chunk id cannot be empty")
	}

	if c.StartLine < 1 {
		return errors.New("start line must be >= 1")
	}

	if c.EndLine < c.StartLine {
		return errors.New("end line must be >= start line")
	}

	return nil
}

// LineCount returns the number of lines covered by the chunk.
func (c *Chunk) LineCount() int {
	return c.EndLine - c.StartLine + 1
}
