package chunker

import (
	"fmt"
	"strings"

	"github.com/ingestkit/codeingest/pkg/types"
)

const (
	// DefaultMaxLines is the default maximum number of lines per chunk
	DefaultMaxLines = 200

	// DefaultOverlapLines is the default number of lines shared between
	// consecutive chunks
	DefaultOverlapLines = 20
)

// Chunker splits file text into overlapping line-ranged chunks
type Chunker struct {
	MaxLines     int
	OverlapLines int
}

// New creates a Chunker with the default window settings
func New() *Chunker {
	return &Chunker{
		MaxLines:     DefaultMaxLines,
		OverlapLines: DefaultOverlapLines,
	}
}

// Chunk splits text using the chunker's window settings
func (c *Chunker) Chunk(text string) ([]types.Chunk, error) {
	return Split(text, c.MaxLines, c.OverlapLines)
}

// Split divides text into chunks of at most maxLines lines, with
// overlapLines lines shared between consecutive chunks. Line ranges are
// 1-based and fully cover the input; the last chunk always ends on the
// final line. Empty text yields an empty slice.
//
// The effective overlap is clamped to maxLines-1 (0 when maxLines is 1) so
// the window always advances.
func Split(text string, maxLines, overlapLines int) ([]types.Chunk, error) {
	if maxLines <= 0 {
		return nil, fmt.Errorf("%w: max_lines must be greater than 0", types.ErrInvalidArgument)
	}
	if overlapLines < 0 {
		return nil, fmt.Errorf("%w: overlap_lines must be non-negative", types.ErrInvalidArgument)
	}

	lines := splitLines(text)
	total := len(lines)
	if total == 0 {
		return []types.Chunk{}, nil
	}

	overlap := 0
	if maxLines > 1 {
		overlap = overlapLines
		if overlap > maxLines-1 {
			overlap = maxLines - 1
		}
	}

	step := maxLines - overlap
	if step < 1 {
		step = 1
	}

	chunks := make([]types.Chunk, 0, (total+step-1)/step)
	for start := 0; start < total; start += step {
		end := start + maxLines
		if end > total {
			end = total
		}

		chunks = append(chunks, types.Chunk{
			ID:        ChunkID(start+1, end),
			Text:      strings.Join(lines[start:end], "\n"),
			StartLine: start + 1,
			EndLine:   end,
		})

		// The window reached the last line; no trailing empty window
		if end >= total {
			break
		}
	}

	return chunks, nil
}

// ChunkID returns the deterministic identifier for a 1-based line range
func ChunkID(startLine, endLine int) string {
	return fmt.Sprintf("chunk-%d-%d", startLine, endLine)
}

// splitLines splits text on newlines without producing a phantom empty
// line after a trailing newline. Carriage returns from CRLF endings are
// stripped.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return lines
}
