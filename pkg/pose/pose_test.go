package pose

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

const tolerance = 1e-12

// TestEulerPoseRotationIsOrthonormal verifies that the ZYZ Euler
// parameterization always produces a proper rotation: orthonormal with
// determinant +1.
func TestEulerPoseRotationIsOrthonormal(t *testing.T) {
	cases := []EulerPose{
		{},
		{Phi: 30, Theta: 60, Psi: 120, Degrees: true},
		{Phi: -45, Theta: 170, Psi: 10, Degrees: true},
		{Phi: math.Pi / 3, Theta: math.Pi / 7, Psi: -math.Pi / 5},
		{Phi: 1.234, Theta: 2.345, Psi: 3.456},
	}

	for _, p := range cases {
		r := p.RotationMatrix()

		// R^T * R must be the identity
		var product mat.Dense
		product.Mul(r.T(), r)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				want := 0.0
				if i == j {
					want = 1.0
				}
				if math.Abs(product.At(i, j)-want) > tolerance {
					t.Errorf("R^T*R at (%d,%d) = %f, want %f for pose %+v",
						i, j, product.At(i, j), want, p)
				}
			}
		}

		// Determinant must be +1 (proper rotation, no reflection)
		if det := mat.Det(r); math.Abs(det-1) > tolerance {
			t.Errorf("Determinant = %f, want 1 for pose %+v", det, p)
		}
	}
}

// TestRotatePreservesDistances verifies that rotating a coordinate set
// preserves all pairwise distances.
func TestRotatePreservesDistances(t *testing.T) {
	coords := mat.NewDense(4, 3, []float64{
		1, 0, 0,
		0, 2, 0,
		0, 0, 3,
		1, 1, 1,
	})
	p := EulerPose{Phi: 25, Theta: 110, Psi: -40, Degrees: true}
	rotated := p.Rotate(coords)

	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			before := rowDistance(coords, i, j)
			after := rowDistance(rotated, i, j)
			if math.Abs(before-after) > tolerance {
				t.Errorf("Distance between points %d and %d changed from %f to %f",
					i, j, before, after)
			}
		}
	}
}

// TestRotationAboutZ verifies the quarter-turn about the screw axis.
func TestRotationAboutZ(t *testing.T) {
	r := RotationAboutZ(math.Pi / 2)
	coords := mat.NewDense(1, 3, []float64{1, 0, 0})
	rotated := MatrixPose{Matrix: r}.Rotate(coords)

	want := []float64{0, 1, 0}
	for j, w := range want {
		if math.Abs(rotated.At(0, j)-w) > tolerance {
			t.Errorf("Rotated x-axis component %d = %f, want %f", j, rotated.At(0, j), w)
		}
	}
}

// TestMatrixPoseNilMatrixIsIdentity verifies the zero value of MatrixPose
// behaves as the identity transform.
func TestMatrixPoseNilMatrixIsIdentity(t *testing.T) {
	p := MatrixPose{OffsetX: 1, OffsetY: 2, OffsetZ: 3}

	r := p.RotationMatrix()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if r.At(i, j) != want {
				t.Errorf("Identity rotation at (%d,%d) = %f, want %f", i, j, r.At(i, j), want)
			}
		}
	}

	x, y, z := p.Offset()
	if x != 1 || y != 2 || z != 3 {
		t.Errorf("Offset = (%f, %f, %f), want (1, 2, 3)", x, y, z)
	}
}

// TestEulerDegreesMatchRadians verifies the degree flag converts before
// any trigonometry.
func TestEulerDegreesMatchRadians(t *testing.T) {
	deg := EulerPose{Phi: 90, Theta: 45, Psi: 30, Degrees: true}
	rad := EulerPose{Phi: math.Pi / 2, Theta: math.Pi / 4, Psi: math.Pi / 6}

	rd := deg.RotationMatrix()
	rr := rad.RotationMatrix()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(rd.At(i, j)-rr.At(i, j)) > tolerance {
				t.Errorf("Degree and radian rotations differ at (%d,%d): %f vs %f",
					i, j, rd.At(i, j), rr.At(i, j))
			}
		}
	}
}

// rowDistance computes the Euclidean distance between two rows of a
// coordinate set.
func rowDistance(coords *mat.Dense, i, j int) float64 {
	var sum float64
	for k := 0; k < 3; k++ {
		d := coords.At(i, k) - coords.At(j, k)
		sum += d * d
	}
	return math.Sqrt(sum)
}
