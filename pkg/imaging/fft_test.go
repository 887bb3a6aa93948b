package imaging

import (
	"math"
	"math/cmplx"
	"testing"
)

// TestRFFT2CornerDelta verifies that a unit impulse at the array corner
// transforms to a flat spectrum.
func TestRFFT2CornerDelta(t *testing.T) {
	img := NewImage(8, 8)
	img.Set(0, 0, 1)

	spec := RFFT2(img)
	if spec.Rows != 8 || spec.Cols != 5 {
		t.Fatalf("Spectrum shape = %dx%d, want 8x5", spec.Rows, spec.Cols)
	}
	for i, v := range spec.Data {
		if cmplx.Abs(v-1) > 1e-10 {
			t.Errorf("Mode %d = %v, want 1", i, v)
		}
	}
}

// TestRFFT2Constant verifies that a constant image transforms to a pure
// DC component.
func TestRFFT2Constant(t *testing.T) {
	img := NewImage(8, 6)
	for i := range img.Data {
		img.Data[i] = 0.5
	}

	spec := RFFT2(img)
	dc := spec.At(0, 0)
	if cmplx.Abs(dc-complex(0.5*8*6, 0)) > 1e-9 {
		t.Errorf("DC mode = %v, want %f", dc, 0.5*8*6)
	}
	for i := 0; i < spec.Rows; i++ {
		for j := 0; j < spec.Cols; j++ {
			if i == 0 && j == 0 {
				continue
			}
			if cmplx.Abs(spec.At(i, j)) > 1e-9 {
				t.Errorf("Non-DC mode (%d,%d) = %v, want 0", i, j, spec.At(i, j))
			}
		}
	}
}

// TestRFFT2RoundTrip verifies IRFFT2 inverts RFFT2 on even and odd
// shapes.
func TestRFFT2RoundTrip(t *testing.T) {
	shapes := [][2]int{{8, 8}, {6, 10}, {8, 7}}

	for _, shape := range shapes {
		img := NewImage(shape[0], shape[1])
		for i := range img.Data {
			// Deterministic, structured fixture
			img.Data[i] = math.Sin(float64(i)*0.37) + 0.25*math.Cos(float64(i)*1.91)
		}

		recovered := IRFFT2(RFFT2(img), shape[1])
		if recovered.Rows != shape[0] || recovered.Cols != shape[1] {
			t.Fatalf("Recovered shape = %dx%d, want %dx%d",
				recovered.Rows, recovered.Cols, shape[0], shape[1])
		}
		for i := range img.Data {
			if math.Abs(recovered.Data[i]-img.Data[i]) > 1e-9 {
				t.Errorf("Shape %v pixel %d = %f, want %f",
					shape, i, recovered.Data[i], img.Data[i])
			}
		}
	}
}

// TestNormalize verifies zero-mean unit-variance rescaling and the flat
// image edge case.
func TestNormalize(t *testing.T) {
	img := NewImage(4, 4)
	for i := range img.Data {
		img.Data[i] = float64(i)
	}

	normalized := Normalize(img)
	var mean float64
	for _, v := range normalized.Data {
		mean += v
	}
	mean /= float64(len(normalized.Data))
	if math.Abs(mean) > 1e-12 {
		t.Errorf("Normalized mean = %g, want 0", mean)
	}

	var variance float64
	for _, v := range normalized.Data {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(normalized.Data) - 1)
	if math.Abs(variance-1) > 1e-12 {
		t.Errorf("Normalized variance = %g, want 1", variance)
	}

	// A flat image only loses its mean
	flat := NewImage(2, 2)
	for i := range flat.Data {
		flat.Data[i] = 3
	}
	normalized = Normalize(flat)
	for i, v := range normalized.Data {
		if v != 0 {
			t.Errorf("Flat image pixel %d = %f, want 0", i, v)
		}
	}
}

// TestFFTShift verifies the corner pixel rolls to the center and the roll
// preserves the total weight.
func TestFFTShift(t *testing.T) {
	img := NewImage(4, 6)
	img.Set(0, 0, 1)
	img.Set(1, 5, 2)

	shifted := FFTShift(img)
	if shifted.At(2, 3) != 1 {
		t.Errorf("Corner pixel shifted to %f at the center, want 1", shifted.At(2, 3))
	}
	if shifted.At(3, 2) != 2 {
		t.Errorf("Pixel (1,5) shifted to (3,2) = %f, want 2", shifted.At(3, 2))
	}
	if math.Abs(shifted.Sum()-img.Sum()) > 1e-12 {
		t.Errorf("Shift changed the total weight: %f vs %f", shifted.Sum(), img.Sum())
	}
}
