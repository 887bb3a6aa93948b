package visualization

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"cryosim/pkg/imaging"
)

// TestGrayImageRescaling verifies the extreme pixels map to black and
// white.
func TestGrayImageRescaling(t *testing.T) {
	m := imaging.NewImage(2, 2)
	m.Set(0, 0, -1)
	m.Set(0, 1, 0.5)
	m.Set(1, 0, 0)
	m.Set(1, 1, 3)

	img := GrayImage(m)
	if got := img.Gray16At(0, 0).Y; got != 0 {
		t.Errorf("Minimum pixel mapped to %d, want 0", got)
	}
	if got := img.Gray16At(1, 1).Y; got != 65535 {
		t.Errorf("Maximum pixel mapped to %d, want 65535", got)
	}
}

// TestGrayImageFlat verifies a constant image maps to mid gray.
func TestGrayImageFlat(t *testing.T) {
	m := imaging.NewImage(3, 3)
	for i := range m.Data {
		m.Data[i] = 7
	}

	img := GrayImage(m)
	if got := img.Gray16At(1, 1).Y; got != 32767 {
		t.Errorf("Flat pixel mapped to %d, want 32767", got)
	}
}

// TestSaveParticleImages verifies the files are written and decodable.
func TestSaveParticleImages(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "particles")

	images := []*imaging.Image{imaging.NewImage(4, 6), imaging.NewImage(4, 6)}
	images[0].Set(1, 2, 1)
	images[1].Set(2, 3, -1)

	if err := SaveParticleImages(images, dir); err != nil {
		t.Fatalf("Failed to save particle images: %v", err)
	}

	for i := 0; i < len(images); i++ {
		path := filepath.Join(dir, fmt.Sprintf("particle_%03d.png", i))
		file, err := os.Open(path)
		if err != nil {
			t.Fatalf("Missing output file: %v", err)
		}
		img, err := png.Decode(file)
		file.Close()
		if err != nil {
			t.Fatalf("Failed to decode %s: %v", path, err)
		}
		bounds := img.Bounds()
		if bounds.Dx() != 6 || bounds.Dy() != 4 {
			t.Errorf("Decoded image %d is %dx%d, want 6x4", i, bounds.Dx(), bounds.Dy())
		}
	}
}
