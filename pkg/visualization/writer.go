// Package visualization renders simulated particle images to grayscale
// image files for inspection.
package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"cryosim/pkg/imaging"
)

// GrayImage maps a real-space image to a 16-bit grayscale image. Pixel
// values are rescaled so the minimum maps to black and the maximum to
// white; a flat image maps to mid gray.
func GrayImage(m *imaging.Image) *image.Gray16 {
	lo, hi := m.Data[0], m.Data[0]
	for _, v := range m.Data {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	img := image.NewGray16(image.Rect(0, 0, m.Cols, m.Rows))
	scale := hi - lo
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			value := uint16(32767)
			if scale > 0 {
				value = uint16((m.At(i, j) - lo) / scale * 65535)
			}
			img.SetGray16(j, i, color.Gray16{Y: value})
		}
	}
	return img
}

// SaveImage writes a real-space image as a PNG file.
func SaveImage(m *imaging.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, GrayImage(m))
}

// SaveParticleImages writes one PNG per particle image into outputDir,
// creating the directory if needed. Files are named particle_NNN.png in
// stack order.
func SaveParticleImages(images []*imaging.Image, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	for i, m := range images {
		filename := filepath.Join(outputDir, fmt.Sprintf("particle_%03d.png", i))
		if err := SaveImage(m, filename); err != nil {
			return fmt.Errorf("saving particle %d: %w", i, err)
		}
	}
	return nil
}
