package imaging

import (
	"fmt"
)

// CropSpectrum extracts the Fourier modes of a smaller target shape from
// a padded half-plane spectrum in corner-zero layout. The low-frequency
// rows at the top and the wrapped negative-frequency rows at the bottom
// are retained, matching the standard Fourier-space crop that resamples
// an image to a coarser grid.
func CropSpectrum(s *Spectrum, shape [2]int) (*Spectrum, error) {
	rows, cols := shape[0], shape[1]
	halfCols := HalfPlaneCols(cols)
	if rows > s.Rows || halfCols > s.Cols {
		return nil, fmt.Errorf("cannot crop %dx%d spectrum to shape %v", s.Rows, s.Cols, shape)
	}
	if rows == s.Rows && halfCols == s.Cols {
		return s.Clone(), nil
	}

	out := NewSpectrum(rows, halfCols)
	// Non-negative row frequencies come from the top of the padded
	// spectrum, negative row frequencies wrap from the bottom.
	topRows := (rows + 1) / 2
	for i := 0; i < rows; i++ {
		src := i
		if i >= topRows {
			src = s.Rows - rows + i
		}
		copy(out.Data[i*halfCols:(i+1)*halfCols], s.Data[src*s.Cols:src*s.Cols+halfCols])
	}
	return out, nil
}
