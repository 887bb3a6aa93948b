package imaging

import (
	"gonum.org/v1/gonum/dsp/fourier"
)

// RFFT2 computes the 2D Fourier transform of a real image, returning the
// non-redundant half plane in corner-zero layout.
//
// The transform is separable: a real FFT runs along each row, producing
// the half-plane columns directly, then a complex FFT runs down each
// retained column.
func RFFT2(img *Image) *Spectrum {
	rows, cols := img.Rows, img.Cols
	halfCols := HalfPlaneCols(cols)
	out := NewSpectrum(rows, halfCols)

	// Row-wise real FFT.
	rowFFT := fourier.NewFFT(cols)
	rowInput := make([]float64, cols)
	rowOutput := make([]complex128, halfCols)
	for i := 0; i < rows; i++ {
		copy(rowInput, img.Data[i*cols:(i+1)*cols])
		rowFFT.Coefficients(rowOutput, rowInput)
		copy(out.Data[i*halfCols:(i+1)*halfCols], rowOutput)
	}

	// Column-wise complex FFT over the retained half-plane columns.
	colFFT := fourier.NewCmplxFFT(rows)
	colInput := make([]complex128, rows)
	colOutput := make([]complex128, rows)
	for j := 0; j < halfCols; j++ {
		for i := 0; i < rows; i++ {
			colInput[i] = out.Data[i*halfCols+j]
		}
		colFFT.Coefficients(colOutput, colInput)
		for i := 0; i < rows; i++ {
			out.Data[i*halfCols+j] = colOutput[i]
		}
	}

	return out
}

// IRFFT2 inverts a half-plane spectrum back to a real image with the
// given column count. The gonum transforms are unnormalized, so the
// result is scaled by 1/(rows*cols).
func IRFFT2(s *Spectrum, cols int) *Image {
	rows := s.Rows
	halfCols := s.Cols
	out := NewImage(rows, cols)

	// Invert the column transform first, undoing the order of RFFT2.
	intermediate := make([]complex128, rows*halfCols)
	colFFT := fourier.NewCmplxFFT(rows)
	colInput := make([]complex128, rows)
	colOutput := make([]complex128, rows)
	for j := 0; j < halfCols; j++ {
		for i := 0; i < rows; i++ {
			colInput[i] = s.Data[i*halfCols+j]
		}
		colFFT.Sequence(colOutput, colInput)
		for i := 0; i < rows; i++ {
			intermediate[i*halfCols+j] = colOutput[i] / complex(float64(rows), 0)
		}
	}

	// Invert the row transform from the half-plane coefficients.
	rowFFT := fourier.NewFFT(cols)
	rowInput := make([]complex128, halfCols)
	rowOutput := make([]float64, cols)
	for i := 0; i < rows; i++ {
		copy(rowInput, intermediate[i*halfCols:(i+1)*halfCols])
		rowFFT.Sequence(rowOutput, rowInput)
		for j := 0; j < cols; j++ {
			out.Data[i*cols+j] = rowOutput[j] / float64(cols)
		}
	}

	return out
}
