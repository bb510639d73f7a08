package store

import (
	"errors"
	"fmt"
	"math"
)

// ErrDimensionMismatch is returned when two vectors of different lengths are
// compared. Mixed dimensionality inside one index is a caller bug and is
// surfaced as a hard failure rather than a silent zero score.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// Cosine returns the cosine similarity of two equal-length vectors. A zero
// vector has no direction, so any comparison involving one scores 0.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
