// Package pose provides rigid-transform values used to place specimens in
// the simulation frame. A pose is a 3D offset together with an orthonormal
// rotation; coordinates are stored as Nx3 row vectors and rotations act on
// the rows.
package pose

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Pose describes a rigid transform of a specimen: a rotation about the
// center of mass followed by a translation. Implementations must return
// orthonormal rotation matrices with determinant +1.
type Pose interface {
	// Offset returns the translation component in angstroms.
	Offset() (x, y, z float64)

	// RotationMatrix returns the 3x3 rotation matrix of the pose.
	RotationMatrix() *mat.Dense

	// Rotate applies the pose rotation to an Nx3 coordinate set,
	// returning a new coordinate set. The translation is not applied.
	Rotate(coords *mat.Dense) *mat.Dense
}

// EulerPose parameterizes a pose by offsets and ZYZ Euler angles. This is
// the form used when configuring a simulation by hand: a view direction is
// naturally expressed as angles rather than a matrix.
type EulerPose struct {
	// OffsetX, OffsetY, OffsetZ are the in-plane and out-of-plane
	// translations in angstroms.
	OffsetX, OffsetY, OffsetZ float64

	// Phi, Theta, Psi are the ZYZ Euler angles of the view.
	Phi, Theta, Psi float64

	// Degrees indicates whether the angles are given in degrees
	// rather than radians.
	Degrees bool
}

// Offset returns the translation component of the pose.
func (p EulerPose) Offset() (x, y, z float64) {
	return p.OffsetX, p.OffsetY, p.OffsetZ
}

// RotationMatrix builds the rotation matrix R = Rz(phi) * Ry(theta) * Rz(psi).
// The composition of rotations about fixed axes guarantees orthonormality.
func (p EulerPose) RotationMatrix() *mat.Dense {
	phi, theta, psi := p.Phi, p.Theta, p.Psi
	if p.Degrees {
		phi *= math.Pi / 180
		theta *= math.Pi / 180
		psi *= math.Pi / 180
	}

	inner := mat.NewDense(3, 3, nil)
	inner.Mul(rotationAboutY(theta), RotationAboutZ(psi))
	out := mat.NewDense(3, 3, nil)
	out.Mul(RotationAboutZ(phi), inner)
	return out
}

// Rotate applies the pose rotation to an Nx3 coordinate set.
func (p EulerPose) Rotate(coords *mat.Dense) *mat.Dense {
	return rotateRows(coords, p.RotationMatrix())
}

// MatrixPose parameterizes a pose by offsets and an explicit rotation
// matrix. This is the form produced by geometry code that composes
// rotations, such as the assembly composer.
type MatrixPose struct {
	OffsetX, OffsetY, OffsetZ float64

	// Matrix is the 3x3 rotation. A nil matrix is treated as identity.
	Matrix *mat.Dense
}

// Offset returns the translation component of the pose.
func (p MatrixPose) Offset() (x, y, z float64) {
	return p.OffsetX, p.OffsetY, p.OffsetZ
}

// RotationMatrix returns a copy of the pose's rotation matrix.
func (p MatrixPose) RotationMatrix() *mat.Dense {
	if p.Matrix == nil {
		return Identity()
	}
	out := mat.NewDense(3, 3, nil)
	out.Copy(p.Matrix)
	return out
}

// Rotate applies the pose rotation to an Nx3 coordinate set.
func (p MatrixPose) Rotate(coords *mat.Dense) *mat.Dense {
	return rotateRows(coords, p.RotationMatrix())
}

// Identity returns the 3x3 identity matrix.
func Identity() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
}

// RotationAboutZ returns the rotation matrix for a counterclockwise
// rotation by theta radians about the z axis. The screw axis of helical
// assemblies points along z, so this rotation is the workhorse of the
// lattice geometry.
func RotationAboutZ(theta float64) *mat.Dense {
	c, s := math.Cos(theta), math.Sin(theta)
	return mat.NewDense(3, 3, []float64{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	})
}

// rotationAboutY returns the rotation matrix for a counterclockwise
// rotation by theta radians about the y axis.
func rotationAboutY(theta float64) *mat.Dense {
	c, s := math.Cos(theta), math.Sin(theta)
	return mat.NewDense(3, 3, []float64{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	})
}

// rotateRows applies rotation r to each row vector of the Nx3 coordinate
// set: out_i = r * coords_i. With row-vector storage this is coords * r^T.
func rotateRows(coords, r *mat.Dense) *mat.Dense {
	n, _ := coords.Dims()
	out := mat.NewDense(n, 3, nil)
	out.Mul(coords, r.T())
	return out
}
