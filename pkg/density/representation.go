// Package density holds 3D electron-density samples of a specimen. A
// density is represented either as a voxel grid with an associated
// coordinate grid, or as a weighted point cloud with associated
// coordinates; both expose the same flattened view consumed by the
// projection strategies.
package density

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"cryosim/pkg/pose"
)

// Kind tags the closed set of density representations.
type Kind int

const (
	// KindGrid is a 3D array of scalar density values with a coordinate
	// grid of identical extent.
	KindGrid Kind = iota

	// KindCloud is a flat sequence of scalar weights with a matching
	// flat coordinate sequence.
	KindCloud
)

// String returns the representation name used in error messages.
func (k Kind) String() string {
	switch k {
	case KindGrid:
		return "Grid"
	case KindCloud:
		return "Cloud"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Representation is one variant of the closed density-representation set.
// Exactly one representation backs a given specimen at a time.
type Representation interface {
	// Kind reports which representation variant this is.
	Kind() Kind

	// Flatten returns the per-sample weights and the matching Nx3
	// coordinate set in angstroms. The returned slices share the
	// representation's backing storage and must not be modified.
	Flatten() (weights []float64, coords *mat.Dense)
}

// Grid is a voxel-grid density: a 3D array of scalar values together with
// the physical position of every voxel.
type Grid struct {
	values []float64
	coords *mat.Dense
	dims   [3]int
}

// NewGrid creates a voxel-grid density from row-major values and a
// coordinate set with one row per voxel.
func NewGrid(values []float64, coords *mat.Dense, dims [3]int) (*Grid, error) {
	n := dims[0] * dims[1] * dims[2]
	if dims[0] <= 0 || dims[1] <= 0 || dims[2] <= 0 {
		return nil, fmt.Errorf("grid dimensions must be positive, got %v", dims)
	}
	if len(values) != n {
		return nil, fmt.Errorf("grid has %d voxels but %d values", n, len(values))
	}
	rows, cols := coords.Dims()
	if rows != n || cols != 3 {
		return nil, fmt.Errorf("coordinate set must be %dx3, got %dx%d", n, rows, cols)
	}
	return &Grid{values: values, coords: coords, dims: dims}, nil
}

// Kind reports KindGrid.
func (g *Grid) Kind() Kind { return KindGrid }

// Dims returns the voxel counts along each axis.
func (g *Grid) Dims() [3]int { return g.dims }

// Flatten ravels the grid's values and coordinates exactly like the
// cloud case.
func (g *Grid) Flatten() ([]float64, *mat.Dense) {
	return g.values, g.coords
}

// Cloud is a point-cloud density: a flat sequence of weights at arbitrary
// coordinates.
type Cloud struct {
	weights []float64
	coords  *mat.Dense
}

// NewCloud creates a point-cloud density. The weight count must match the
// coordinate row count.
func NewCloud(weights []float64, coords *mat.Dense) (*Cloud, error) {
	rows, cols := coords.Dims()
	if cols != 3 {
		return nil, fmt.Errorf("coordinate set must have 3 columns, got %d", cols)
	}
	if len(weights) != rows {
		return nil, fmt.Errorf("cloud has %d weights but %d coordinates", len(weights), rows)
	}
	return &Cloud{weights: weights, coords: coords}, nil
}

// Kind reports KindCloud.
func (c *Cloud) Kind() Kind { return KindCloud }

// Flatten returns the cloud's weights and coordinates.
func (c *Cloud) Flatten() ([]float64, *mat.Dense) {
	return c.weights, c.coords
}

// Transformed returns a cloud holding rep's weights at pose-transformed
// coordinates: each coordinate is rotated by the pose rotation and shifted
// by the pose offset. The weights are shared with the input representation.
func Transformed(rep Representation, p pose.Pose) (*Cloud, error) {
	weights, coords := rep.Flatten()
	rotated := p.Rotate(coords)
	ox, oy, oz := p.Offset()

	n, _ := rotated.Dims()
	for i := 0; i < n; i++ {
		rotated.Set(i, 0, rotated.At(i, 0)+ox)
		rotated.Set(i, 1, rotated.At(i, 1)+oy)
		rotated.Set(i, 2, rotated.At(i, 2)+oz)
	}
	return NewCloud(weights, rotated)
}
