// Package optics models the frequency-dependent response of the
// microscope: the contrast transfer function of the objective lens and
// the Gaussian noise contributed by the detector and the solvent ice.
// Only the operators these expose enter the imaging core.
package optics

import (
	"fmt"
	"math"

	"cryosim/pkg/imaging"
)

// CTF is the weak-phase contrast transfer function of the objective lens.
type CTF struct {
	// Defocus is the objective defocus in angstroms. Positive defocus
	// is underfocus, the usual imaging condition.
	Defocus float64

	// SphericalAberration is the Cs coefficient in millimeters.
	SphericalAberration float64

	// Voltage is the accelerating voltage in kilovolts.
	Voltage float64

	// AmplitudeContrast is the amplitude contrast ratio, in [0, 1).
	AmplitudeContrast float64

	// PhaseShift is an additional constant phase shift in radians,
	// as imparted by a phase plate.
	PhaseShift float64
}

// Validate checks the physical parameter ranges.
func (c *CTF) Validate() error {
	if c.Voltage <= 0 {
		return fmt.Errorf("accelerating voltage must be positive, got %g kV", c.Voltage)
	}
	if c.AmplitudeContrast < 0 || c.AmplitudeContrast >= 1 {
		return fmt.Errorf("amplitude contrast must be in [0, 1), got %g", c.AmplitudeContrast)
	}
	return nil
}

// Wavelength returns the relativistic electron wavelength in angstroms.
func (c *CTF) Wavelength() float64 {
	v := c.Voltage * 1e3
	return 12.2643 / math.Sqrt(v*(1+v*0.978466e-6))
}

// Operator returns the CTF as a radially symmetric Fourier operator,
//
//	CTF(q) = sqrt(1 - ac^2) * sin(chi(q)) - ac * cos(chi(q)),
//
// with the aberration phase chi(q) = pi*lambda*z*q^2 -
// pi/2*Cs*lambda^3*q^4 + phase shift. At zero frequency the operator
// equals the negated amplitude contrast.
func (c *CTF) Operator() imaging.Operator {
	lambda := c.Wavelength()
	cs := c.SphericalAberration * 1e7 // mm to angstroms
	ac := c.AmplitudeContrast
	phaseFactor := math.Sqrt(1 - ac*ac)

	return func(q1, q2 float64) float64 {
		q2sum := q1*q1 + q2*q2
		chi := math.Pi*lambda*c.Defocus*q2sum -
			math.Pi/2*cs*lambda*lambda*lambda*q2sum*q2sum +
			c.PhaseShift
		return phaseFactor*math.Sin(chi) - ac*math.Cos(chi)
	}
}
