package imaging

import (
	"math"
	"testing"
)

const tolerance = 1e-12

// TestNewConfigValidation verifies the construction-time checks.
func TestNewConfigValidation(t *testing.T) {
	if _, err := NewConfig([2]int{0, 8}, [2]int{}, 1.0); err == nil {
		t.Error("Zero shape succeeded, want error")
	}
	if _, err := NewConfig([2]int{8, 8}, [2]int{4, 8}, 1.0); err == nil {
		t.Error("Padded shape smaller than image shape succeeded, want error")
	}
	if _, err := NewConfig([2]int{8, 8}, [2]int{}, 0); err == nil {
		t.Error("Zero pixel size succeeded, want error")
	}

	cfg, err := NewConfig([2]int{8, 8}, [2]int{}, 1.0)
	if err != nil {
		t.Fatalf("Valid config failed: %v", err)
	}
	if cfg.PaddedShape() != cfg.Shape {
		t.Errorf("Zero PadTo should default to shape, got %v", cfg.PaddedShape())
	}
}

// TestFrequencyGridShape verifies the half-plane dimensions of the
// frequency grids.
func TestFrequencyGridShape(t *testing.T) {
	cfg, err := NewConfig([2]int{8, 8}, [2]int{16, 12}, 2.0)
	if err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}

	grid := cfg.FrequencyGrid()
	if grid.Rows != 8 || grid.Cols != 5 {
		t.Errorf("Frequency grid shape = %dx%d, want 8x5", grid.Rows, grid.Cols)
	}

	padded := cfg.PaddedFrequencyGrid()
	if padded.Rows != 16 || padded.Cols != 7 {
		t.Errorf("Padded frequency grid shape = %dx%d, want 16x7", padded.Rows, padded.Cols)
	}
	if padded.Len() != 16*7 {
		t.Errorf("Padded grid length = %d, want %d", padded.Len(), 16*7)
	}
}

// TestFrequencyGridValues verifies the standard discrete Fourier
// frequency ordering: non-negative row frequencies first, then the
// wrapped negative ones; columns carry only non-negative frequencies.
func TestFrequencyGridValues(t *testing.T) {
	cfg, err := NewConfig([2]int{4, 4}, [2]int{}, 1.0)
	if err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}
	grid := cfg.FrequencyGrid()

	wantRows := []float64{0, 0.25, -0.5, -0.25}
	for i, w := range wantRows {
		q1, _ := grid.At(i, 0)
		if math.Abs(q1-w) > tolerance {
			t.Errorf("Row frequency %d = %f, want %f", i, q1, w)
		}
	}

	wantCols := []float64{0, 0.25, 0.5}
	for j, w := range wantCols {
		_, q2 := grid.At(0, j)
		if math.Abs(q2-w) > tolerance {
			t.Errorf("Column frequency %d = %f, want %f", j, q2, w)
		}
	}
}

// TestFrequencyGridPixelSizeScaling verifies frequencies are in physical
// inverse angstroms.
func TestFrequencyGridPixelSizeScaling(t *testing.T) {
	cfg, err := NewConfig([2]int{4, 4}, [2]int{}, 2.0)
	if err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}
	grid := cfg.FrequencyGrid()

	// Nyquist of a 2 angstrom sampling is 0.25 per angstrom
	_, q2 := grid.At(0, 2)
	if math.Abs(q2-0.25) > tolerance {
		t.Errorf("Nyquist column frequency = %f, want 0.25", q2)
	}
}
