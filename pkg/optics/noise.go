package optics

import (
	"fmt"
	"math"

	"cryosim/pkg/imaging"
)

// GaussianDetector is a detector whose readout noise is an independent
// Gaussian per Fourier mode with the given variance spectrum.
type GaussianDetector struct {
	// Variance is the noise variance as a function of spatial
	// frequency. It must be non-negative everywhere.
	Variance imaging.Operator
}

// NewGaussianDetector creates a detector noise model with a flat (white)
// variance spectrum.
func NewGaussianDetector(variance float64) (*GaussianDetector, error) {
	if variance < 0 {
		return nil, fmt.Errorf("detector variance must be non-negative, got %g", variance)
	}
	return &GaussianDetector{Variance: imaging.Constant(variance)}, nil
}

// GaussianIce models the scattering of the solvent ice as an independent
// Gaussian per Fourier mode. Ice scatters predominantly at low frequency,
// so the default power spectrum decays exponentially with frequency
// radius.
type GaussianIce struct {
	// Variance is the ice scattering variance as a function of
	// spatial frequency. It must be non-negative everywhere.
	Variance imaging.Operator
}

// NewGaussianIce creates an ice noise model with an exponentially
// decaying power spectrum: amplitude * exp(-|q| * scale), where scale is
// the decay length in angstroms.
func NewGaussianIce(amplitude, scale float64) (*GaussianIce, error) {
	if amplitude < 0 {
		return nil, fmt.Errorf("ice variance amplitude must be non-negative, got %g", amplitude)
	}
	if scale < 0 {
		return nil, fmt.Errorf("ice decay length must be non-negative, got %g", scale)
	}
	variance := func(q1, q2 float64) float64 {
		return amplitude * math.Exp(-math.Hypot(q1, q2)*scale)
	}
	return &GaussianIce{Variance: variance}, nil
}
