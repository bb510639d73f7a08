package embedding

import (
	"context"
	"math"
	"reflect"
	"testing"
)

func TestLocal_Deterministic(t *testing.T) {
	e := NewLocal(384)

	inputs := []string{
		"oil change every 5000 miles",
		"My brakes are squeaking",
		"  Mixed Case With Spaces  ",
		"ünïcödé input",
	}

	for _, input := range inputs {
		first, err := e.Embed(context.Background(), input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := e.Embed(context.Background(), input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("embedding of %q is not deterministic", input)
		}
	}
}

func TestLocal_UnitLength(t *testing.T) {
	e := NewLocal(384)

	vec, err := e.Embed(context.Background(), "brake pads need replacement")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vec) != 384 {
		t.Fatalf("expected dimension 384, got %d", len(vec))
	}

	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if math.Abs(math.Sqrt(sum)-1.0) > 1e-5 {
		t.Errorf("expected unit length vector, got magnitude %f", math.Sqrt(sum))
	}
}

func TestLocal_EmptyInput(t *testing.T) {
	e := NewLocal(64)

	vec, err := e.Embed(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vec) != 64 {
		t.Fatalf("expected dimension 64, got %d", len(vec))
	}
	for i, v := range vec {
		if v != 0 {
			t.Fatalf("expected all-zero vector for empty input, dim %d is %f", i, v)
		}
	}

	// Whitespace-only input trims down to empty as well.
	vec, err = e.Embed(context.Background(), "   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, v := range vec {
		if v != 0 {
			t.Fatal("expected all-zero vector for whitespace input")
		}
	}
}

func TestLocal_CaseInsensitive(t *testing.T) {
	e := NewLocal(128)

	lower, _ := e.Embed(context.Background(), "tire rotation")
	upper, _ := e.Embed(context.Background(), "TIRE ROTATION")
	if !reflect.DeepEqual(lower, upper) {
		t.Error("expected case-insensitive embeddings to match")
	}
}

func TestLocal_DefaultDimension(t *testing.T) {
	e := NewLocal(0)
	if e.Dimension() != DefaultDimension {
		t.Errorf("expected default dimension %d, got %d", DefaultDimension, e.Dimension())
	}
}
