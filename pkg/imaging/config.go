// Package imaging provides the shared image configuration of the
// simulation: image and padded shapes, physical frequency grids, Fourier
// transforms between real images and half-plane spectra, and the Fourier
// operators applied to them.
package imaging

import (
	"fmt"
)

// Config is the immutable, shared image configuration. Projections are
// computed at the padded shape and cropped to the target shape after the
// Fourier-space operators are applied.
type Config struct {
	// Shape is the target image shape in pixels, rows by columns.
	Shape [2]int

	// PadTo is the padded shape at which projections are rendered.
	// The zero value means no padding.
	PadTo [2]int

	// PixelSize is the physical size of one pixel in angstroms.
	PixelSize float64
}

// NewConfig validates and creates an image configuration. PadTo must be
// at least Shape along both axes; a zero PadTo defaults to Shape.
func NewConfig(shape, padTo [2]int, pixelSize float64) (*Config, error) {
	if shape[0] <= 0 || shape[1] <= 0 {
		return nil, fmt.Errorf("image shape must be positive, got %v", shape)
	}
	if padTo == [2]int{} {
		padTo = shape
	}
	if padTo[0] < shape[0] || padTo[1] < shape[1] {
		return nil, fmt.Errorf("padded shape %v smaller than image shape %v", padTo, shape)
	}
	if pixelSize <= 0 {
		return nil, fmt.Errorf("pixel size must be positive, got %g", pixelSize)
	}
	return &Config{Shape: shape, PadTo: padTo, PixelSize: pixelSize}, nil
}

// PaddedShape returns the shape at which projections are rendered.
func (c *Config) PaddedShape() [2]int { return c.PadTo }

// FrequencyGrid returns the half-plane frequency grid of the target
// shape, in inverse angstroms.
func (c *Config) FrequencyGrid() *FrequencyGrid {
	return newFrequencyGrid(c.Shape, c.PixelSize)
}

// PaddedFrequencyGrid returns the half-plane frequency grid of the padded
// shape, in inverse angstroms.
func (c *Config) PaddedFrequencyGrid() *FrequencyGrid {
	return newFrequencyGrid(c.PadTo, c.PixelSize)
}

// FrequencyGrid holds the physical spatial frequency of every mode of a
// half-plane spectrum in corner-zero layout. Rows carry the full range of
// signed frequencies along the image row axis; columns carry only the
// non-negative frequencies of the non-redundant half plane.
type FrequencyGrid struct {
	// Rows and Cols are the half-plane spectrum dimensions.
	Rows, Cols int

	// Q1 and Q2 are the row-major per-mode frequencies along the image
	// row and column axes, in inverse angstroms.
	Q1, Q2 []float64
}

func newFrequencyGrid(shape [2]int, pixelSize float64) *FrequencyGrid {
	rows := shape[0]
	cols := shape[1]/2 + 1
	g := &FrequencyGrid{
		Rows: rows,
		Cols: cols,
		Q1:   make([]float64, rows*cols),
		Q2:   make([]float64, rows*cols),
	}
	for i := 0; i < rows; i++ {
		q1 := fftFrequency(i, shape[0], pixelSize)
		for j := 0; j < cols; j++ {
			idx := i*cols + j
			g.Q1[idx] = q1
			g.Q2[idx] = float64(j) / (float64(shape[1]) * pixelSize)
		}
	}
	return g
}

// At returns the frequency pair of mode (i, j).
func (g *FrequencyGrid) At(i, j int) (q1, q2 float64) {
	idx := i*g.Cols + j
	return g.Q1[idx], g.Q2[idx]
}

// Len returns the number of modes in the grid.
func (g *FrequencyGrid) Len() int { return g.Rows * g.Cols }

// fftFrequency maps a corner-zero index to its signed sample frequency,
// following the standard discrete Fourier transform ordering: indices
// below (n+1)/2 are non-negative frequencies, the rest wrap negative.
func fftFrequency(k, n int, pixelSize float64) float64 {
	if k < (n+1)/2 {
		return float64(k) / (float64(n) * pixelSize)
	}
	return float64(k-n) / (float64(n) * pixelSize)
}
