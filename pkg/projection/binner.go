package projection

import (
	"fmt"
	"math"

	"cryosim/pkg/density"
	"cryosim/pkg/imaging"
)

// Binner projects a density by direct real-space binning: a weighted
// histogram of the in-plane coordinates over the output pixels. The
// projection is differentiable almost everywhere, failing only at the
// rounding boundaries.
type Binner struct {
	config *imaging.Config
}

// NewBinner creates a direct-binning projection strategy over the given
// image configuration.
func NewBinner(cfg *imaging.Config) (*Binner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("binner requires an image configuration")
	}
	return &Binner{config: cfg}, nil
}

// ProjectReal bins the density onto the padded image plane and returns
// the real-space projection.
//
// Each point's in-plane coordinates are converted to pixels, rounded to
// the nearest integer, and shifted so pixel (0, 0) is the array corner
// rather than the center. Out-of-range indices are clipped to the nearest
// valid pixel, never dropped, so the total image weight always equals the
// total input weight. The depth axis is discarded.
func (b *Binner) ProjectReal(rep density.Representation) (*imaging.Image, error) {
	weights, coords, err := flattenSupported(rep)
	if err != nil {
		return nil, err
	}

	shape := b.config.PaddedShape()
	n2, n3 := shape[0], shape[1]
	out := imaging.NewImage(n2, n3)

	px := b.config.PixelSize
	n, _ := coords.Dims()
	for j := 0; j < n; j++ {
		row := int(math.Round(coords.At(j, 1)/px)) + n2/2
		col := int(math.Round(coords.At(j, 2)/px)) + n3/2
		row = clip(row, n2-1)
		col = clip(col, n3-1)
		out.Data[row*n3+col] += weights[j]
	}
	return out, nil
}

// Project bins the density in real space and carries the projection into
// Fourier space, yielding the same half-plane layout as the NUFFT
// strategy.
func (b *Binner) Project(rep density.Representation) (*imaging.Spectrum, error) {
	img, err := b.ProjectReal(rep)
	if err != nil {
		return nil, err
	}
	return imaging.RFFT2(img), nil
}

// clip bounds an index to [0, max].
func clip(i, max int) int {
	if i < 0 {
		return 0
	}
	if i > max {
		return max
	}
	return i
}
