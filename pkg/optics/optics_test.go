package optics

import (
	"math"
	"testing"

	"cryosim/pkg/imaging"
)

// TestWavelength verifies the relativistic electron wavelength at common
// accelerating voltages.
func TestWavelength(t *testing.T) {
	cases := []struct {
		voltage, want float64
	}{
		{300, 0.01969},
		{200, 0.02508},
		{100, 0.03701},
	}

	for _, tc := range cases {
		ctf := CTF{Voltage: tc.voltage}
		if got := ctf.Wavelength(); math.Abs(got-tc.want) > 1e-4 {
			t.Errorf("Wavelength at %g kV = %f, want %f", tc.voltage, got, tc.want)
		}
	}
}

// TestCTFZeroFrequency verifies that the transfer function at zero
// frequency equals the negated amplitude contrast.
func TestCTFZeroFrequency(t *testing.T) {
	ctf := CTF{
		Defocus:             15000,
		SphericalAberration: 2.7,
		Voltage:             300,
		AmplitudeContrast:   0.1,
	}
	op := ctf.Operator()

	if got := op(0, 0); math.Abs(got-(-0.1)) > 1e-12 {
		t.Errorf("CTF(0) = %f, want -0.1", got)
	}
}

// TestCTFOscillates verifies the transfer function crosses zero within
// the sampled frequency band at realistic defocus.
func TestCTFOscillates(t *testing.T) {
	ctf := CTF{
		Defocus:             20000,
		SphericalAberration: 2.7,
		Voltage:             300,
		AmplitudeContrast:   0.07,
	}
	op := ctf.Operator()

	signChanges := 0
	prev := op(0, 0)
	for q := 0.005; q < 0.3; q += 0.005 {
		v := op(q, 0)
		if v*prev < 0 {
			signChanges++
		}
		prev = v
	}
	if signChanges < 2 {
		t.Errorf("CTF sign changes = %d, want at least 2 oscillations", signChanges)
	}
}

// TestCTFValidation verifies the physical parameter checks.
func TestCTFValidation(t *testing.T) {
	if err := (&CTF{Voltage: 0}).Validate(); err == nil {
		t.Error("Zero voltage succeeded, want error")
	}
	if err := (&CTF{Voltage: 300, AmplitudeContrast: 1}).Validate(); err == nil {
		t.Error("Amplitude contrast of 1 succeeded, want error")
	}
	if err := (&CTF{Voltage: 300, AmplitudeContrast: 0.1}).Validate(); err != nil {
		t.Errorf("Valid CTF failed: %v", err)
	}
}

// TestDetectorVariance verifies the flat detector spectrum and its
// non-negativity check.
func TestDetectorVariance(t *testing.T) {
	if _, err := NewGaussianDetector(-1); err == nil {
		t.Error("Negative detector variance succeeded, want error")
	}

	detector, err := NewGaussianDetector(2.5)
	if err != nil {
		t.Fatalf("Failed to create detector: %v", err)
	}
	for _, q := range []float64{0, 0.1, 0.5} {
		if v := detector.Variance(q, q); v != 2.5 {
			t.Errorf("Detector variance at %g = %f, want 2.5", q, v)
		}
	}
}

// TestIceVariance verifies the exponential decay of the ice power
// spectrum and that it stays non-negative on a sampled grid.
func TestIceVariance(t *testing.T) {
	if _, err := NewGaussianIce(-1, 10); err == nil {
		t.Error("Negative ice amplitude succeeded, want error")
	}
	if _, err := NewGaussianIce(1, -10); err == nil {
		t.Error("Negative ice decay length succeeded, want error")
	}

	ice, err := NewGaussianIce(4, 10)
	if err != nil {
		t.Fatalf("Failed to create ice model: %v", err)
	}

	if v := ice.Variance(0, 0); math.Abs(v-4) > 1e-12 {
		t.Errorf("Ice variance at DC = %f, want 4", v)
	}

	// Monotone decay along a radial line
	prev := math.Inf(1)
	for q := 0.0; q < 1.0; q += 0.05 {
		v := ice.Variance(q, 0)
		if v < 0 {
			t.Errorf("Ice variance at %g is negative: %f", q, v)
		}
		if v > prev {
			t.Errorf("Ice variance at %g = %f increased from %f", q, v, prev)
		}
		prev = v
	}

	// Non-negative across a realistic frequency grid
	cfg, err := imaging.NewConfig([2]int{16, 16}, [2]int{}, 1.0)
	if err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}
	for _, v := range imaging.Evaluate(ice.Variance, cfg.FrequencyGrid()) {
		if v < 0 {
			t.Errorf("Ice variance on grid is negative: %f", v)
		}
	}
}
