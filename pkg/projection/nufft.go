package projection

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"cryosim/pkg/density"
	"cryosim/pkg/imaging"
)

// NUFFT projects a density with a type-1 non-uniform discrete Fourier
// transform: the transform of the weighted point set is evaluated on the
// dense padded frequency grid, giving the projection directly in Fourier
// space. Projecting along the depth axis in real space is free here,
// since discarding a coordinate before the transform is exactly the
// projection-slice theorem.
type NUFFT struct {
	config *imaging.Config

	// workers bounds the number of goroutines evaluating output rows.
	workers int
}

// NewNUFFT creates a NUFFT projection strategy over the given image
// configuration. workers <= 0 selects the number of CPUs.
func NewNUFFT(cfg *imaging.Config, workers int) (*NUFFT, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nufft requires an image configuration")
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &NUFFT{config: cfg, workers: workers}, nil
}

// Project evaluates the type-1 transform of the density's point set at
// the padded shape and returns the non-redundant half plane in
// corner-zero layout.
//
// The in-plane coordinates are normalized into the periodic domain
// [-pi, pi] by scaling with 2*pi/shape, so integer frequencies coincide
// with the DFT modes of the padded grid. For even image dimensions the
// Nyquist row and column are explicitly zeroed: the highest-frequency bin
// has no well-defined phase and must not leak numerical noise into the
// likelihood.
func (p *NUFFT) Project(rep density.Representation) (*imaging.Spectrum, error) {
	weights, coords, err := flattenSupported(rep)
	if err != nil {
		return nil, err
	}

	shape := p.config.PaddedShape()
	m1, m2 := shape[0], shape[1]
	halfCols := imaging.HalfPlaneCols(m2)
	out := imaging.NewSpectrum(m1, halfCols)

	// Normalized periodic coordinates of the in-plane axes.
	px := p.config.PixelSize
	n, _ := coords.Dims()
	u := make([]float64, n)
	v := make([]float64, n)
	for j := 0; j < n; j++ {
		u[j] = 2 * math.Pi * coords.At(j, 1) / (px * float64(m1))
		v[j] = 2 * math.Pi * coords.At(j, 2) / (px * float64(m2))
	}

	// Fan the output rows across workers. Rows are disjoint, so the
	// accumulation below never shares a write.
	workers := p.workers
	if workers > m1 {
		workers = m1
	}
	rowsPerWorker := (m1 + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		startRow := w * rowsPerWorker
		endRow := startRow + rowsPerWorker
		if endRow > m1 {
			endRow = m1
		}
		if startRow >= endRow {
			continue
		}

		wg.Add(1)
		go func(startRow, endRow int) {
			defer wg.Done()
			for a := startRow; a < endRow; a++ {
				// Signed integer frequency of this corner-layout row.
				k1 := float64(a)
				if a >= (m1+1)/2 {
					k1 = float64(a - m1)
				}
				for b := 0; b < halfCols; b++ {
					k2 := float64(b)
					var re, im float64
					for j := 0; j < n; j++ {
						phase := k1*u[j] + k2*v[j]
						sin, cos := math.Sincos(phase)
						re += weights[j] * cos
						im -= weights[j] * sin
					}
					out.Data[a*halfCols+b] = complex(re, im)
				}
			}
		}(startRow, endRow)
	}
	wg.Wait()

	// Zero the Nyquist bins of even dimensions.
	if m2%2 == 0 {
		for a := 0; a < m1; a++ {
			out.Data[a*halfCols+halfCols-1] = 0
		}
	}
	if m1%2 == 0 {
		for b := 0; b < halfCols; b++ {
			out.Data[(m1/2)*halfCols+b] = 0
		}
	}

	return out, nil
}
