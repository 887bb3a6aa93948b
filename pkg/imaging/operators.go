package imaging

import (
	"math"
)

// Operator is a Fourier-space operator: a real-valued function of spatial
// frequency evaluated independently per mode. q1 and q2 are the
// frequencies along the image row and column axes in inverse angstroms.
//
// Operators compose by ordinary arithmetic, so variance models, filters
// and contrast transfer functions all share this shape.
type Operator func(q1, q2 float64) float64

// Constant returns an operator with the same value at every frequency.
func Constant(v float64) Operator {
	return func(q1, q2 float64) float64 { return v }
}

// Sum returns the pointwise sum of the given operators.
func Sum(ops ...Operator) Operator {
	return func(q1, q2 float64) float64 {
		var total float64
		for _, op := range ops {
			total += op(q1, q2)
		}
		return total
	}
}

// Product returns the pointwise product of the given operators.
func Product(ops ...Operator) Operator {
	return func(q1, q2 float64) float64 {
		total := 1.0
		for _, op := range ops {
			total *= op(q1, q2)
		}
		return total
	}
}

// Scale returns the operator multiplied by a constant factor.
func Scale(op Operator, s float64) Operator {
	return func(q1, q2 float64) float64 { return s * op(q1, q2) }
}

// Lowpass returns a radially symmetric low-pass filter that passes
// frequencies below cutoff, rejects frequencies above cutoff+rolloff, and
// decays smoothly in between with a cosine taper. Frequencies are in
// inverse angstroms.
func Lowpass(cutoff, rolloff float64) Operator {
	return func(q1, q2 float64) float64 {
		r := math.Hypot(q1, q2)
		if r <= cutoff {
			return 1
		}
		if rolloff <= 0 || r >= cutoff+rolloff {
			return 0
		}
		return math.Cos(math.Pi / 2 * smoothstep((r-cutoff)/rolloff))
	}
}

// CircularMask returns a radially symmetric mask that is one inside the
// given frequency radius and tapers to zero over the given smoothing
// width. A zero width gives a hard cutoff.
func CircularMask(radius, width float64) Operator {
	return func(q1, q2 float64) float64 {
		r := math.Hypot(q1, q2)
		if r <= radius {
			return 1
		}
		if width <= 0 || r >= radius+width {
			return 0
		}
		return 1 - smoothstep((r-radius)/width)
	}
}

// Evaluate computes the operator at every mode of a frequency grid,
// returning values in the grid's row-major order.
func Evaluate(op Operator, g *FrequencyGrid) []float64 {
	out := make([]float64, g.Len())
	for i := range out {
		out[i] = op(g.Q1[i], g.Q2[i])
	}
	return out
}

// Apply multiplies a spectrum in place by the operator evaluated on a
// matching frequency grid.
func Apply(s *Spectrum, g *FrequencyGrid, op Operator) {
	for i := range s.Data {
		s.Data[i] *= complex(op(g.Q1[i], g.Q2[i]), 0)
	}
}

// smoothstep is the cubic interpolant 3t^2 - 2t^3 clamped to [0, 1].
func smoothstep(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}
