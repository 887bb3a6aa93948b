package imaging

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Image is a real-space image stored row-major.
type Image struct {
	Data       []float64
	Rows, Cols int
}

// NewImage allocates a zero image of the given shape.
func NewImage(rows, cols int) *Image {
	return &Image{Data: make([]float64, rows*cols), Rows: rows, Cols: cols}
}

// At returns the pixel value at row i, column j.
func (m *Image) At(i, j int) float64 { return m.Data[i*m.Cols+j] }

// Set assigns the pixel value at row i, column j.
func (m *Image) Set(i, j int, v float64) { m.Data[i*m.Cols+j] = v }

// Sum returns the total image weight.
func (m *Image) Sum() float64 { return floats.Sum(m.Data) }

// FFTShift returns a copy of the image with the corner-origin layout
// rolled so the zero pixel sits at the center, (Rows/2, Cols/2). An
// inverse transform of a corner-zero spectrum places the specimen across
// the image corners; shifting recenters it for display.
func FFTShift(m *Image) *Image {
	out := NewImage(m.Rows, m.Cols)
	for i := 0; i < m.Rows; i++ {
		di := (i + m.Rows/2) % m.Rows
		for j := 0; j < m.Cols; j++ {
			dj := (j + m.Cols/2) % m.Cols
			out.Data[di*m.Cols+dj] = m.Data[i*m.Cols+j]
		}
	}
	return out
}

// Normalize returns a copy of the image rescaled to zero mean and unit
// standard deviation. A flat image is returned unchanged apart from the
// mean shift, since its standard deviation is zero.
func Normalize(m *Image) *Image {
	mean, std := stat.MeanStdDev(m.Data, nil)
	out := NewImage(m.Rows, m.Cols)
	if std == 0 || math.IsNaN(std) {
		for i, v := range m.Data {
			out.Data[i] = v - mean
		}
		return out
	}
	for i, v := range m.Data {
		out.Data[i] = (v - mean) / std
	}
	return out
}

// Spectrum is a Fourier-space image holding the non-redundant half plane
// of a real signal's transform, stored row-major in corner-zero layout:
// the zero-frequency mode is at index (0, 0) and columns run over the
// non-negative frequencies only.
type Spectrum struct {
	Data       []complex128
	Rows, Cols int
}

// NewSpectrum allocates a zero spectrum of the given half-plane shape.
func NewSpectrum(rows, cols int) *Spectrum {
	return &Spectrum{Data: make([]complex128, rows*cols), Rows: rows, Cols: cols}
}

// HalfPlaneCols returns the number of non-redundant spectrum columns for
// a real image with the given column count.
func HalfPlaneCols(imageCols int) int { return imageCols/2 + 1 }

// At returns the mode value at row i, column j.
func (s *Spectrum) At(i, j int) complex128 { return s.Data[i*s.Cols+j] }

// Set assigns the mode value at row i, column j.
func (s *Spectrum) Set(i, j int, v complex128) { s.Data[i*s.Cols+j] = v }

// Clone returns a deep copy of the spectrum.
func (s *Spectrum) Clone() *Spectrum {
	out := NewSpectrum(s.Rows, s.Cols)
	copy(out.Data, s.Data)
	return out
}

// Add accumulates other into s elementwise.
func (s *Spectrum) Add(other *Spectrum) error {
	if s.Rows != other.Rows || s.Cols != other.Cols {
		return fmt.Errorf("spectrum shape %dx%d does not match %dx%d",
			s.Rows, s.Cols, other.Rows, other.Cols)
	}
	for i, v := range other.Data {
		s.Data[i] += v
	}
	return nil
}

// Sub subtracts other from s elementwise into a new spectrum.
func (s *Spectrum) Sub(other *Spectrum) (*Spectrum, error) {
	if s.Rows != other.Rows || s.Cols != other.Cols {
		return nil, fmt.Errorf("spectrum shape %dx%d does not match %dx%d",
			s.Rows, s.Cols, other.Rows, other.Cols)
	}
	out := NewSpectrum(s.Rows, s.Cols)
	for i := range s.Data {
		out.Data[i] = s.Data[i] - other.Data[i]
	}
	return out, nil
}
