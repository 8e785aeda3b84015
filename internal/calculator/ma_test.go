package calculator

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSMASeries_Length(t *testing.T) {
	values := make([]float64, 60)
	for i := range values {
		values[i] = float64(i + 1)
	}

	for _, window := range []int{5, 20, 50} {
		series, err := SMASeries(values, window)
		if err != nil {
			t.Fatalf("window %d: unexpected error: %v", window, err)
		}
		want := len(values) - window + 1
		if len(series) != want {
			t.Errorf("window %d: expected %d points, got %d", window, want, len(series))
		}
	}
}

func TestSMASeries_Values(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	series, err := SMASeries(values, 3)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{2, 3, 4}
	if len(series) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(series))
	}
	for i := range want {
		if !almostEqual(series[i], want[i]) {
			t.Errorf("point %d: expected %.4f, got %.4f", i, want[i], series[i])
		}
	}
}

func TestSMASeries_NotEnoughData(t *testing.T) {
	if _, err := SMASeries([]float64{1, 2, 3}, 5); err == nil {
		t.Error("expected error when len(values) < window")
	}
	if _, err := SMASeries([]float64{1, 2, 3}, 0); err == nil {
		t.Error("expected error for non-positive window")
	}
}

func TestSMA_TrailingWindow(t *testing.T) {
	values := []float64{10, 20, 30, 40}
	got, err := SMA(values, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(got, 35) {
		t.Errorf("expected 35, got %.4f", got)
	}
}

func TestNormalize_FirstPointZero(t *testing.T) {
	values := []float64{200, 210, 190, 200}
	out := Normalize(values)
	if out == nil {
		t.Fatal("expected non-nil series")
	}
	if out[0] != 0 {
		t.Errorf("first point must be exactly 0, got %v", out[0])
	}
	if !almostEqual(out[1], 5) {
		t.Errorf("expected +5%% at point 1, got %.4f", out[1])
	}
	if !almostEqual(out[2], -5) {
		t.Errorf("expected -5%% at point 2, got %.4f", out[2])
	}
	if !almostEqual(out[3], 0) {
		t.Errorf("expected 0%% at point 3, got %.4f", out[3])
	}
}

func TestNormalize_Degenerate(t *testing.T) {
	if out := Normalize(nil); out != nil {
		t.Errorf("expected nil for empty input, got %v", out)
	}
	if out := Normalize([]float64{0, 1, 2}); out != nil {
		t.Errorf("expected nil for zero first value, got %v", out)
	}
}
