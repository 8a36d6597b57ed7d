package vector

import (
	"errors"
	"fmt"
	"math"
)

// ErrLengthMismatch is returned when two vectors of different lengths are
// compared. This is a programmer-contract violation, not a data condition.
var ErrLengthMismatch = errors.New("vector length mismatch")

// CosineSimilarity returns the normalized dot product of a and b, in [-1, 1]
// (practically [0, 1] for typical embeddings). A zero-magnitude input yields
// 0 rather than an error: a degenerate vector is simply similar to nothing.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(a), len(b))
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
