package density

import (
	"fmt"

	"cryosim/pkg/pose"
)

// Subunit is one specimen instance: a density representation placed at a
// pose. Assemblies realize many subunits that share a template density
// but carry their own poses.
type Subunit interface {
	// Current returns the density representation realized by this
	// subunit's configuration.
	Current() Representation

	// Pose returns the subunit's pose.
	Pose() pose.Pose

	// WithPose returns a copy of the subunit placed at a new pose.
	// The density representation is shared, not copied.
	WithPose(p pose.Pose) Subunit
}

// ConformationalSubunit is a subunit whose template supports per-instance
// conformation. Only heterogeneous templates implement this; requesting a
// conformation on any other subunit is a capability error.
type ConformationalSubunit interface {
	Subunit

	// NumConformations returns the number of conformations the
	// template carries.
	NumConformations() int

	// WithConformation returns a copy of the subunit realized at the
	// given conformation index.
	WithConformation(c int) (Subunit, error)
}

// Specimen is a conformationally homogeneous subunit: one density
// representation and a pose.
type Specimen struct {
	density Representation
	pose    pose.Pose
}

// NewSpecimen creates a specimen from a density representation and a pose.
// A nil pose is treated as identity.
func NewSpecimen(rep Representation, p pose.Pose) (*Specimen, error) {
	if rep == nil {
		return nil, fmt.Errorf("specimen requires a density representation")
	}
	if p == nil {
		p = pose.MatrixPose{}
	}
	return &Specimen{density: rep, pose: p}, nil
}

// Current returns the specimen's density representation.
func (s *Specimen) Current() Representation { return s.density }

// Pose returns the specimen's pose.
func (s *Specimen) Pose() pose.Pose { return s.pose }

// WithPose returns a copy of the specimen placed at a new pose.
func (s *Specimen) WithPose(p pose.Pose) Subunit {
	return &Specimen{density: s.density, pose: p}
}

// Ensemble is a conformationally heterogeneous subunit: a set of density
// representations, one per conformation, with a pose and the index of the
// realized conformation.
type Ensemble struct {
	densities    []Representation
	pose         pose.Pose
	conformation int
}

// NewEnsemble creates an ensemble from one density representation per
// conformation. The realized conformation starts at index 0.
func NewEnsemble(reps []Representation, p pose.Pose) (*Ensemble, error) {
	if len(reps) == 0 {
		return nil, fmt.Errorf("ensemble requires at least one conformation")
	}
	for i, rep := range reps {
		if rep == nil {
			return nil, fmt.Errorf("ensemble conformation %d has no density representation", i)
		}
	}
	if p == nil {
		p = pose.MatrixPose{}
	}
	return &Ensemble{densities: reps, pose: p}, nil
}

// Current returns the density representation of the realized conformation.
func (e *Ensemble) Current() Representation { return e.densities[e.conformation] }

// Pose returns the ensemble's pose.
func (e *Ensemble) Pose() pose.Pose { return e.pose }

// Conformation returns the index of the realized conformation.
func (e *Ensemble) Conformation() int { return e.conformation }

// NumConformations returns the number of conformations in the ensemble.
func (e *Ensemble) NumConformations() int { return len(e.densities) }

// WithPose returns a copy of the ensemble placed at a new pose.
func (e *Ensemble) WithPose(p pose.Pose) Subunit {
	return &Ensemble{densities: e.densities, pose: p, conformation: e.conformation}
}

// WithConformation returns a copy of the ensemble realized at the given
// conformation index.
func (e *Ensemble) WithConformation(c int) (Subunit, error) {
	if c < 0 || c >= len(e.densities) {
		return nil, fmt.Errorf("conformation %d out of range [0, %d)", c, len(e.densities))
	}
	return &Ensemble{densities: e.densities, pose: e.pose, conformation: c}, nil
}
