package embedding

import (
	"context"
	"math"
	"strings"
)

// DefaultDimension is the vector size of the local embedder.
const DefaultDimension = 384

// Local is a deterministic hash-based embedder. It needs no network access
// and always produces the same vector for the same input, which makes it the
// fallback when a remote provider fails and the default for offline runs and
// tests.
type Local struct {
	dimension int
}

// NewLocal creates a local embedder with the given dimension.
func NewLocal(dimension int) *Local {
	if dimension <= 0 {
		dimension = DefaultDimension
	}
	return &Local{dimension: dimension}
}

// Embed maps each character of the lower-cased, trimmed input to one
// dimension (char code mod dimension) with a weight that decays with
// position, then normalizes the vector to unit length. Empty input yields
// the all-zero vector.
func (e *Local) Embed(_ context.Context, text string) ([]float32, error) {
	normalized := strings.ToLower(strings.TrimSpace(text))

	acc := make([]float64, e.dimension)
	pos := 0
	for _, r := range normalized {
		idx := int(r) % e.dimension
		acc[idx] += 1.0 / float64(pos+1)
		pos++
	}

	var sum float64
	for _, v := range acc {
		sum += v * v
	}

	vec := make([]float32, e.dimension)
	if sum == 0 {
		return vec, nil
	}

	magnitude := math.Sqrt(sum)
	for i, v := range acc {
		vec[i] = float32(v / magnitude)
	}
	return vec, nil
}

// Dimension returns the embedding vector dimension.
func (e *Local) Dimension() int {
	return e.dimension
}

// ModelName returns the name of the embedding model.
func (e *Local) ModelName() string {
	return "local-deterministic"
}
