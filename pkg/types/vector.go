package types

import (
	"fmt"
	"math"
)

// Vector is an ordered, fixed-length sequence of floating-point values
// representing a text fingerprint for similarity comparison.
type Vector []float64

// Norm returns the L2 norm of the vector.
func (v Vector) Norm() float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Normalize returns a unit-L2-norm copy of the vector. The all-zero vector
// is returned as an all-zero copy, never divided. The receiver is not
// modified, so callers may reuse or mutate their original freely.
func (v Vector) Normalize() Vector {
	out := make(Vector, len(v))
	norm := v.Norm()
	if norm == 0 {
		copy(out, v)
		return out
	}
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}

// Clone returns an independent copy of the vector.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// Cosine computes the cosine similarity between a and b. The result is the
// dot product divided by the product of the norms, in [-1, 1]. Similarity
// involving a zero-norm vector is defined as exactly 0.0.
//
// Vectors of different lengths cannot be compared; that case returns
// ErrDimensionMismatch.
func Cosine(a, b Vector) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
