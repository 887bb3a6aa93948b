package density

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// GaussianSource is one isotropic 3D Gaussian contribution to a density:
// a scattering center with an integrated weight and a width. Smooth test
// specimens and demo blobs are built from a handful of these.
type GaussianSource struct {
	// X, Y, Z is the center of the source in angstroms.
	X, Y, Z float64

	// Weight is the integrated density of the source.
	Weight float64

	// Sigma is the standard deviation of the source in angstroms.
	Sigma float64
}

// CoordinateGrid builds the centered physical coordinate set of a voxel
// grid: voxel (i, j, k) sits at ((i - n1/2), (j - n2/2), (k - n3/2)) times
// the voxel size, so the grid's center of mass is at the origin.
func CoordinateGrid(dims [3]int, voxelSize float64) *mat.Dense {
	n := dims[0] * dims[1] * dims[2]
	coords := mat.NewDense(n, 3, nil)

	row := 0
	for i := 0; i < dims[0]; i++ {
		x := float64(i-dims[0]/2) * voxelSize
		for j := 0; j < dims[1]; j++ {
			y := float64(j-dims[1]/2) * voxelSize
			for k := 0; k < dims[2]; k++ {
				z := float64(k-dims[2]/2) * voxelSize
				coords.Set(row, 0, x)
				coords.Set(row, 1, y)
				coords.Set(row, 2, z)
				row++
			}
		}
	}
	return coords
}

// BuildGridFromSources evaluates a sum of normalized 3D Gaussian sources
// on a centered coordinate grid and returns the resulting voxel-grid
// density. Each source integrates to its weight, so the total density
// approaches the total source weight as the grid extent grows.
func BuildGridFromSources(sources []GaussianSource, dims [3]int, voxelSize float64) (*Grid, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("at least one gaussian source is required")
	}
	if voxelSize <= 0 {
		return nil, fmt.Errorf("voxel size must be positive, got %g", voxelSize)
	}
	for i, s := range sources {
		if s.Sigma <= 0 {
			return nil, fmt.Errorf("source %d has non-positive sigma %g", i, s.Sigma)
		}
	}

	coords := CoordinateGrid(dims, voxelSize)
	n, _ := coords.Dims()
	values := make([]float64, n)

	// The voxel volume converts the continuous density to an integrated
	// per-voxel weight.
	voxelVolume := voxelSize * voxelSize * voxelSize

	for _, s := range sources {
		norm := s.Weight * voxelVolume / (math.Pow(2*math.Pi, 1.5) * s.Sigma * s.Sigma * s.Sigma)
		inv2s2 := 1 / (2 * s.Sigma * s.Sigma)
		for row := 0; row < n; row++ {
			dx := coords.At(row, 0) - s.X
			dy := coords.At(row, 1) - s.Y
			dz := coords.At(row, 2) - s.Z
			values[row] += norm * math.Exp(-(dx*dx+dy*dy+dz*dz)*inv2s2)
		}
	}

	return NewGrid(values, coords, dims)
}
