package store

import (
	"errors"
	"math"
	"testing"
)

func TestCosine_SelfSimilarity(t *testing.T) {
	vectors := [][]float32{
		{1, 0, 0},
		{0.3, -0.7, 0.2},
		{5, 5, 5, 5},
	}

	for _, v := range vectors {
		score, err := Cosine(v, v)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if math.Abs(score-1.0) > 1e-9 {
			t.Errorf("expected self-similarity 1, got %f", score)
		}
	}
}

func TestCosine_ZeroVector(t *testing.T) {
	zero := []float32{0, 0, 0}
	other := []float32{1, 2, 3}

	score, err := Cosine(zero, other)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != 0 {
		t.Errorf("expected 0 for zero vector, got %f", score)
	}

	score, err = Cosine(zero, zero)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != 0 {
		t.Errorf("expected 0 for two zero vectors, got %f", score)
	}
}

func TestCosine_DimensionMismatch(t *testing.T) {
	_, err := Cosine([]float32{1, 2}, []float32{1, 2, 3})
	if err == nil {
		t.Fatal("expected error for mismatched dimensions")
	}
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestCosine_OppositeVectors(t *testing.T) {
	score, err := Cosine([]float32{1, 0}, []float32{-1, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(score+1.0) > 1e-9 {
		t.Errorf("expected -1 for opposite vectors, got %f", score)
	}
}

func TestCosine_Orthogonal(t *testing.T) {
	score, err := Cosine([]float32{1, 0}, []float32{0, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(score) > 1e-9 {
		t.Errorf("expected 0 for orthogonal vectors, got %f", score)
	}
}
