// Package lattice generates the subunit geometry of helical and
// rotationally symmetric assemblies and composes it with an assembly-level
// pose into per-subunit lab-frame poses.
//
// The screw axis is taken to point along z in the center-of-mass frame of
// the assembly. A lattice is built in two stages: a single sub-helix is
// grown by repeated screw steps (twist about z, rise along z), then the
// sub-helix is replicated by the C_n symmetry rotations of the start
// number. Any cyclic or helical point-group lattice follows this pattern.
package lattice

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"cryosim/pkg/pose"
)

// Positions computes the helical lattice positions in the center-of-mass
// frame of the assembly.
//
// Subunit i of a sub-helix is obtained from the initial displacement by a
// rotation of i*twist about the screw axis and a translation of i*rise
// along it; the sub-helix is then re-centered so its mean z offset is
// zero. The full lattice replicates the sub-helix nStart times, rotated
// about the screw axis by 2*pi*k/nStart.
//
// The result has nStart*nPerStart rows ordered sub-helix by sub-helix.
// Twist is in degrees when degrees is true, radians otherwise.
func Positions(rise, twist float64, nPerStart int, initial [3]float64, nStart int, degrees bool) *mat.Dense {
	if degrees {
		twist *= math.Pi / 180
	}

	// Positions along a single sub-helix, centered in z.
	center := rise * float64(nPerStart-1) / 2
	subhelix := mat.NewDense(nPerStart, 3, nil)
	for i := 0; i < nPerStart; i++ {
		theta := float64(i) * twist
		c, s := math.Cos(theta), math.Sin(theta)
		x := c*initial[0] - s*initial[1]
		y := s*initial[0] + c*initial[1]
		z := initial[2] + float64(i)*rise - center
		subhelix.Set(i, 0, x)
		subhelix.Set(i, 1, y)
		subhelix.Set(i, 2, z)
	}

	// Replicate the sub-helix under the C_n symmetry rotations.
	out := mat.NewDense(nStart*nPerStart, 3, nil)
	for k := 0; k < nStart; k++ {
		angle := 2 * math.Pi * float64(k) / float64(nStart)
		c, s := math.Cos(angle), math.Sin(angle)
		for i := 0; i < nPerStart; i++ {
			x, y, z := subhelix.At(i, 0), subhelix.At(i, 1), subhelix.At(i, 2)
			row := k*nPerStart + i
			out.Set(row, 0, c*x-s*y)
			out.Set(row, 1, s*x+c*y)
			out.Set(row, 2, z)
		}
	}
	return out
}

// Rotations computes the relative rotation of every lattice subunit from
// the initial subunit, ordered like Positions. Subunit i of a sub-helix
// carries Rz(i*twist) composed with the initial rotation; sub-helix k is
// further rotated by the symmetry angle 2*pi*k/nStart.
//
// A nil initial rotation is treated as identity.
func Rotations(twist float64, nPerStart int, initial *mat.Dense, nStart int, degrees bool) []*mat.Dense {
	if degrees {
		twist *= math.Pi / 180
	}
	if initial == nil {
		initial = pose.Identity()
	}

	// Rotations along a single sub-helix.
	subhelix := make([]*mat.Dense, nPerStart)
	for i := 0; i < nPerStart; i++ {
		r := mat.NewDense(3, 3, nil)
		r.Mul(pose.RotationAboutZ(float64(i)*twist), initial)
		subhelix[i] = r
	}

	out := make([]*mat.Dense, nStart*nPerStart)
	for k := 0; k < nStart; k++ {
		symmetry := pose.RotationAboutZ(2 * math.Pi * float64(k) / float64(nStart))
		for i := 0; i < nPerStart; i++ {
			r := mat.NewDense(3, 3, nil)
			r.Mul(symmetry, subhelix[i])
			out[k*nPerStart+i] = r
		}
	}
	return out
}
