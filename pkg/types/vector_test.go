package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_UnitNorm(t *testing.T) {
	v := Vector{3, 4}
	u := v.Normalize()

	assert.InDelta(t, 1.0, u.Norm(), 1e-9)
	assert.InDelta(t, 0.6, u[0], 1e-9)
	assert.InDelta(t, 0.8, u[1], 1e-9)

	// Original is untouched
	assert.Equal(t, Vector{3, 4}, v)
}

func TestNormalize_ZeroVectorStaysZero(t *testing.T) {
	v := Vector{0, 0, 0}
	u := v.Normalize()

	assert.Equal(t, Vector{0, 0, 0}, u)
}

func TestNormalize_ReturnsIndependentCopy(t *testing.T) {
	v := Vector{1, 2}
	u := v.Normalize()

	v[0] = 99
	assert.InDelta(t, 1.0, u.Norm(), 1e-9)
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a    Vector
		b    Vector
		want float64
	}{
		{name: "identical direction", a: Vector{1, 1}, b: Vector{2, 2}, want: 1.0},
		{name: "orthogonal", a: Vector{1, 0}, b: Vector{0, 1}, want: 0.0},
		{name: "opposite", a: Vector{1, 0}, b: Vector{-1, 0}, want: -1.0},
		{name: "zero vector", a: Vector{0, 0}, b: Vector{1, 1}, want: 0.0},
		{name: "both zero", a: Vector{0, 0}, b: Vector{0, 0}, want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Cosine(tt.a, tt.b)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCosine_DimensionMismatch(t *testing.T) {
	_, err := Cosine(Vector{1, 2}, Vector{1, 2, 3})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestChunkValidate(t *testing.T) {
	valid := Chunk{ID: "chunk-1-10", Text: "x", StartLine: 1, EndLine: 10}
	require.NoError(t, valid.Validate())
	assert.Equal(t, 10, valid.LineCount())

	noID := Chunk{StartLine: 1, EndLine: 2}
	assert.Error(t, noID.Validate())

	badStart := Chunk{ID: "chunk-0-2", StartLine: 0, EndLine: 2}
	assert.Error(t, badStart.Validate())

	inverted := Chunk{ID: "chunk-5-2", StartLine: 5, EndLine: 2}
	assert.Error(t, inverted.Validate())
}
