package chunker

import (
	"fmt"
	"strings"
	"testing"

	"github.com/ingestkit/codeingest/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syntheticFile builds a file of n numbered lines
func syntheticFile(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("Line %d", i+1)
	}
	return strings.Join(lines, "\n")
}

func TestNew(t *testing.T) {
	c := New()
	assert.Equal(t, DefaultMaxLines, c.MaxLines)
	assert.Equal(t, DefaultOverlapLines, c.OverlapLines)
}

func TestSplit_450LineFile(t *testing.T) {
	chunks, err := Split(syntheticFile(450), 200, 20)
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	expected := []struct {
		id    string
		start int
		end   int
	}{
		{"chunk-1-200", 1, 200},
		{"chunk-181-380", 181, 380},
		{"chunk-361-450", 361, 450},
	}

	for i, want := range expected {
		assert.Equal(t, want.id, chunks[i].ID)
		assert.Equal(t, want.start, chunks[i].StartLine)
		assert.Equal(t, want.end, chunks[i].EndLine)
	}

	// Chunk text carries exactly the covered lines
	assert.True(t, strings.HasPrefix(chunks[1].Text, "Line 181"))
	assert.True(t, strings.HasSuffix(chunks[1].Text, "Line 380"))
}

func TestSplit_EmptyText(t *testing.T) {
	chunks, err := Split("", 200, 20)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestSplit_SingleLine(t *testing.T) {
	chunks, err := Split("only line", 200, 20)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "chunk-1-1", chunks[0].ID)
	assert.Equal(t, "only line", chunks[0].Text)
}

func TestSplit_TrailingNewline(t *testing.T) {
	chunks, err := Split("a\nb\n", 10, 0)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, 2, chunks[0].EndLine)
	assert.Equal(t, "a\nb", chunks[0].Text)
}

func TestSplit_ExactMultipleOfStep(t *testing.T) {
	// 20 lines, window 10, no overlap: exactly two windows, no trailing
	// empty chunk
	chunks, err := Split(syntheticFile(20), 10, 0)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "chunk-1-10", chunks[0].ID)
	assert.Equal(t, "chunk-11-20", chunks[1].ID)
}

func TestSplit_OverlapClamped(t *testing.T) {
	// Overlap >= window would never advance; the clamp forces step 1
	chunks, err := Split(syntheticFile(5), 3, 10)
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	assert.Equal(t, "chunk-1-3", chunks[0].ID)
	assert.Equal(t, "chunk-2-4", chunks[1].ID)
	assert.Equal(t, "chunk-3-5", chunks[2].ID)
}

func TestSplit_MaxLinesOne(t *testing.T) {
	// Window of one line ignores overlap entirely
	chunks, err := Split(syntheticFile(3), 1, 5)
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	for i, ch := range chunks {
		assert.Equal(t, i+1, ch.StartLine)
		assert.Equal(t, i+1, ch.EndLine)
	}
}

func TestSplit_InvalidArguments(t *testing.T) {
	tests := []struct {
		name     string
		maxLines int
		overlap  int
	}{
		{name: "zero max lines", maxLines: 0, overlap: 0},
		{name: "negative max lines", maxLines: -1, overlap: 0},
		{name: "negative overlap", maxLines: 5, overlap: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks, err := Split("some text", tt.maxLines, tt.overlap)
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrInvalidArgument)
			assert.Nil(t, chunks)
		})
	}
}

func TestSplit_CoverageAndOrdering(t *testing.T) {
	cases := []struct {
		total    int
		maxLines int
		overlap  int
	}{
		{1, 1, 0},
		{7, 3, 1},
		{100, 10, 9},
		{450, 200, 20},
		{33, 8, 8},
	}

	for _, tc := range cases {
		name := fmt.Sprintf("%d lines window %d overlap %d", tc.total, tc.maxLines, tc.overlap)
		t.Run(name, func(t *testing.T) {
			chunks, err := Split(syntheticFile(tc.total), tc.maxLines, tc.overlap)
			require.NoError(t, err)
			require.NotEmpty(t, chunks)

			// First chunk starts at line 1, last ends at the final line
			assert.Equal(t, 1, chunks[0].StartLine)
			assert.Equal(t, tc.total, chunks[len(chunks)-1].EndLine)

			seen := make(map[string]bool, len(chunks))
			covered := make([]bool, tc.total+1)
			for i, ch := range chunks {
				require.NoError(t, ch.Validate())
				assert.False(t, seen[ch.ID], "duplicate id %s", ch.ID)
				seen[ch.ID] = true

				if i > 0 {
					assert.Greater(t, ch.StartLine, chunks[i-1].StartLine)
				}
				for line := ch.StartLine; line <= ch.EndLine; line++ {
					covered[line] = true
				}
			}

			for line := 1; line <= tc.total; line++ {
				assert.True(t, covered[line], "line %d not covered", line)
			}
		})
	}
}

func TestChunker_Chunk(t *testing.T) {
	c := &Chunker{MaxLines: 2, OverlapLines: 0}
	chunks, err := c.Chunk("a\nb\nc")
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "chunk-3-3", chunks[1].ID)
}
