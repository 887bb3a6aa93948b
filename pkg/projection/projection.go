// Package projection maps 3D density representations onto the 2D imaging
// plane. Two interchangeable strategies share the contract: direct
// coordinate binning in real space, and a type-1 non-uniform Fourier
// transform producing Fourier-space output directly.
//
// Both strategies project orthographically along the first coordinate
// axis: the in-plane axes are coordinate columns 1 and 2, mapped to image
// rows and columns. Input coordinates are in angstroms and are converted
// to pixel units with the configuration's pixel size.
package projection

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"cryosim/pkg/density"
	"cryosim/pkg/imaging"
)

// Method is one projection strategy over a shared image configuration.
// The output is a Fourier half-plane spectrum at the configuration's
// padded shape.
type Method interface {
	Project(rep density.Representation) (*imaging.Spectrum, error)
}

// flattenSupported extracts the weights and coordinates of a supported
// density representation. A grid is raveled exactly like the cloud case.
func flattenSupported(rep density.Representation) ([]float64, *mat.Dense, error) {
	switch rep.Kind() {
	case density.KindGrid, density.KindCloud:
		weights, coords := rep.Flatten()
		return weights, coords, nil
	default:
		return nil, nil, fmt.Errorf("unsupported density representation %v: supported representations are Grid and Cloud", rep.Kind())
	}
}
