// Package sampler provides grayscale conversion and windowed background
// sampling over decoded images. All functions are pure and deterministic.
package sampler

import (
	"image"
	"image/color"
)

// Default sampling parameters.
const (
	// DefaultWindowRadius yields a 7x7 sampling window.
	DefaultWindowRadius = 3
	// DefaultTolerance is the maximum intensity distance from the reference
	// background value for a pixel to count as background (0-255 scale).
	DefaultTolerance = 30
)

// Grayscale converts an image to a single-channel intensity buffer using the
// ITU-R 601 luma weights.
func Grayscale(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	if src, ok := img.(*image.NRGBA); ok {
		// Fast path for the buffer type the imaging library produces.
		for y := 0; y < bounds.Dy(); y++ {
			si := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			di := gray.PixOffset(0, y)
			for x := 0; x < bounds.Dx(); x++ {
				r := float64(src.Pix[si])
				g := float64(src.Pix[si+1])
				b := float64(src.Pix[si+2])
				gray.Pix[di] = uint8(0.299*r + 0.587*g + 0.114*b + 0.5)
				si += 4
				di++
			}
		}
		return gray
	}

	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			c := color.GrayModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y))
			gray.SetGray(x, y, c.(color.Gray))
		}
	}
	return gray
}

// BackgroundRatio samples a (2*radius+1)^2 window centered at (cx, cy) and
// returns the fraction of pixels whose intensity lies within tolerance of
// bgIntensity. The window is clamped to the image bounds; no out-of-range
// reads occur. Returns 0 if the clamped window is empty.
func BackgroundRatio(gray *image.Gray, cx, cy, radius int, bgIntensity, tolerance uint8) float64 {
	w := gray.Rect.Dx()
	h := gray.Rect.Dy()

	x0 := maxInt(cx-radius, 0)
	y0 := maxInt(cy-radius, 0)
	x1 := minInt(cx+radius, w-1)
	y1 := minInt(cy+radius, h-1)
	if x1 < x0 || y1 < y0 {
		return 0
	}

	bg := int(bgIntensity)
	tol := int(tolerance)
	total := 0
	matched := 0
	for y := y0; y <= y1; y++ {
		i := y*gray.Stride + x0
		for x := x0; x <= x1; x++ {
			d := int(gray.Pix[i]) - bg
			if d < 0 {
				d = -d
			}
			if d <= tol {
				matched++
			}
			total++
			i++
		}
	}
	return float64(matched) / float64(total)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
