package lattice

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/mat"

	"cryosim/pkg/density"
	"cryosim/pkg/pose"
)

// HelixParams holds the lattice parameters of a helical assembly.
type HelixParams struct {
	// Rise is the helical rise in angstroms.
	Rise float64

	// Twist is the helical twist per subunit, in degrees when Degrees
	// is true and radians otherwise.
	Twist float64

	// NStart is the start number of the helix. Zero means 1.
	NStart int

	// NSubunits is the total number of subunits in the assembly.
	// Zero means 1. Must be an exact multiple of NStart.
	NSubunits int

	// Degrees indicates whether Twist is given in degrees.
	Degrees bool

	// Pose is the center-of-mass pose of the assembly. Nil means
	// identity.
	Pose pose.Pose

	// Conformations optionally assigns a conformation index to each
	// lattice site. It may only be set when the subunit template is
	// conformationally heterogeneous, and must have NSubunits entries.
	Conformations []int
}

// Helix assembles a helical specimen from a single subunit template. The
// template's own pose seeds the lattice: its offset is the displacement of
// the first subunit from the screw axis and its rotation the first
// subunit's orientation, both in the center-of-mass frame of the helix.
//
// A Helix is immutable after construction; the lattice geometry and the
// realized subunit ensemble are derived lazily and cached on first use.
// Reconfiguration means constructing a new Helix.
type Helix struct {
	subunit       density.Subunit
	params        HelixParams
	conformations []int

	once      sync.Once
	positions *mat.Dense
	rotations []*mat.Dense
	poses     []pose.Pose
	subunits  []density.Subunit
}

// NewHelix validates the lattice parameters and creates a helical
// assembly around the subunit template.
//
// It is a configuration error if the subunit count is not a multiple of
// the start number, and a capability error if a conformation assignment is
// given for a template that does not support per-instance conformation.
func NewHelix(subunit density.Subunit, params HelixParams) (*Helix, error) {
	if subunit == nil {
		return nil, fmt.Errorf("helix requires a subunit template")
	}
	if params.NStart == 0 {
		params.NStart = 1
	}
	if params.NSubunits == 0 {
		params.NSubunits = 1
	}
	if params.NStart < 1 || params.NSubunits < 1 {
		return nil, fmt.Errorf("start number and subunit count must be positive, got %d and %d",
			params.NStart, params.NSubunits)
	}
	if params.NSubunits%params.NStart != 0 {
		return nil, fmt.Errorf("subunit count %d must be a multiple of the start number %d",
			params.NSubunits, params.NStart)
	}
	if params.Pose == nil {
		params.Pose = pose.MatrixPose{}
	}

	if params.Conformations != nil {
		ensemble, ok := subunit.(density.ConformationalSubunit)
		if !ok {
			return nil, fmt.Errorf("conformations cannot be set: subunit template %T does not support per-instance conformation", subunit)
		}
		if len(params.Conformations) != params.NSubunits {
			return nil, fmt.Errorf("conformation assignment has %d entries for %d subunits",
				len(params.Conformations), params.NSubunits)
		}
		for i, c := range params.Conformations {
			if c < 0 || c >= ensemble.NumConformations() {
				return nil, fmt.Errorf("conformation %d at site %d out of range [0, %d)",
					c, i, ensemble.NumConformations())
			}
		}
	}

	return &Helix{
		subunit:       subunit,
		params:        params,
		conformations: params.Conformations,
	}, nil
}

// Subunit returns the subunit template.
func (h *Helix) Subunit() density.Subunit { return h.subunit }

// Params returns the lattice parameters.
func (h *Helix) Params() HelixParams { return h.params }

// NSubunits returns the total number of subunits in the assembly.
func (h *Helix) NSubunits() int { return h.params.NSubunits }

// Positions returns the lattice positions in the center-of-mass frame,
// seeded by the subunit template's own offset.
func (h *Helix) Positions() *mat.Dense {
	h.derive()
	return h.positions
}

// Rotations returns the relative rotation of every subunit from the
// initial subunit, seeded by the template's own rotation.
func (h *Helix) Rotations() []*mat.Dense {
	h.derive()
	return h.rotations
}

// Poses returns the lab-frame pose of every subunit: the lattice geometry
// transformed by the assembly's center-of-mass pose.
func (h *Helix) Poses() []pose.Pose {
	h.derive()
	return h.poses
}

// Subunits returns the realized ensemble of subunits. Every subunit
// shares the template's density representation but carries its own
// lab-frame pose and, for heterogeneous templates with a conformation
// assignment, its own conformation.
func (h *Helix) Subunits() []density.Subunit {
	h.derive()
	return h.subunits
}

// derive computes and caches the lattice geometry and the realized
// ensemble. Conformation indices were range-checked at construction, so
// realization cannot fail here.
func (h *Helix) derive() {
	h.once.Do(func() {
		ox, oy, oz := h.subunit.Pose().Offset()
		nPerStart := h.params.NSubunits / h.params.NStart

		h.positions = Positions(h.params.Rise, h.params.Twist, nPerStart,
			[3]float64{ox, oy, oz}, h.params.NStart, h.params.Degrees)
		h.rotations = Rotations(h.params.Twist, nPerStart,
			h.subunit.Pose().RotationMatrix(), h.params.NStart, h.params.Degrees)

		// Transform the lattice by the assembly pose: positions are
		// rotated into the lab frame and shifted by the assembly
		// offset, rotations are composed with the assembly rotation.
		asmRotation := h.params.Pose.RotationMatrix()
		transformed := h.params.Pose.Rotate(h.positions)
		ax, ay, az := h.params.Pose.Offset()

		n := h.params.NSubunits
		h.poses = make([]pose.Pose, n)
		for i := 0; i < n; i++ {
			r := mat.NewDense(3, 3, nil)
			r.Mul(h.rotations[i], asmRotation)
			h.poses[i] = pose.MatrixPose{
				OffsetX: transformed.At(i, 0) + ax,
				OffsetY: transformed.At(i, 1) + ay,
				OffsetZ: transformed.At(i, 2) + az,
				Matrix:  r,
			}
		}

		h.subunits = make([]density.Subunit, n)
		for i := 0; i < n; i++ {
			sub := h.subunit
			if h.conformations != nil {
				realized, err := sub.(density.ConformationalSubunit).WithConformation(h.conformations[i])
				if err != nil {
					panic(fmt.Sprintf("lattice: conformation validated at construction: %v", err))
				}
				sub = realized
			}
			h.subunits[i] = sub.WithPose(h.poses[i])
		}
	})
}
