package sampler

import (
	"image"
	"image/color"
	"testing"
)

// grayImage builds a gray buffer filled with bg, with a fg rectangle painted
// over [x0,x1) x [y0,y1).
func grayImage(w, h int, bg, fg uint8, x0, y0, x1, y1 int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := bg
			if x >= x0 && x < x1 && y >= y0 && y < y1 {
				v = fg
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

func TestGrayscale(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{255, 255, 255, 255})
		}
	}
	img.Set(1, 1, color.RGBA{0, 0, 0, 255})

	gray := Grayscale(img)
	if gray.Rect.Dx() != 4 || gray.Rect.Dy() != 4 {
		t.Fatalf("expected 4x4 gray buffer, got %dx%d", gray.Rect.Dx(), gray.Rect.Dy())
	}
	if v := gray.GrayAt(0, 0).Y; v != 255 {
		t.Errorf("white pixel converted to %d", v)
	}
	if v := gray.GrayAt(1, 1).Y; v != 0 {
		t.Errorf("black pixel converted to %d", v)
	}
}

func TestGrayscaleNRGBAFastPath(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			img.Set(x, y, color.NRGBA{100, 150, 200, 255})
		}
	}

	gray := Grayscale(img)
	// 0.299*100 + 0.587*150 + 0.114*200 = 140.75
	if v := gray.GrayAt(1, 1).Y; v < 139 || v > 142 {
		t.Errorf("expected luma near 141, got %d", v)
	}
}

func TestBackgroundRatioUniform(t *testing.T) {
	img := grayImage(50, 50, 255, 255, 0, 0, 0, 0)

	if r := BackgroundRatio(img, 25, 25, DefaultWindowRadius, 255, DefaultTolerance); r != 1.0 {
		t.Errorf("uniform background should give ratio 1.0, got %f", r)
	}
	if r := BackgroundRatio(img, 25, 25, DefaultWindowRadius, 0, DefaultTolerance); r != 0.0 {
		t.Errorf("all pixels far from black reference, got %f", r)
	}
}

func TestBackgroundRatioTolerance(t *testing.T) {
	// All pixels exactly tolerance away from the reference count as background.
	img := grayImage(20, 20, 225, 225, 0, 0, 0, 0)
	if r := BackgroundRatio(img, 10, 10, 3, 255, 30); r != 1.0 {
		t.Errorf("intensity at the tolerance edge should count, got %f", r)
	}

	img = grayImage(20, 20, 224, 224, 0, 0, 0, 0)
	if r := BackgroundRatio(img, 10, 10, 3, 255, 30); r != 0.0 {
		t.Errorf("intensity past the tolerance should not count, got %f", r)
	}
}

func TestBackgroundRatioPartialWindow(t *testing.T) {
	// Foreground square occupies the right half of the window.
	img := grayImage(50, 50, 255, 0, 25, 0, 50, 50)

	r := BackgroundRatio(img, 24, 25, 3, 255, 30)
	// Window x in [21,27]: columns 21-24 background (4 of 7).
	want := 4.0 / 7.0
	if r < want-0.001 || r > want+0.001 {
		t.Errorf("expected ratio %f, got %f", want, r)
	}
}

func TestBackgroundRatioClampsToBounds(t *testing.T) {
	img := grayImage(10, 10, 255, 255, 0, 0, 0, 0)

	// Window centered at the corner only covers the in-bounds quadrant.
	if r := BackgroundRatio(img, 0, 0, 3, 255, 30); r != 1.0 {
		t.Errorf("corner window should clamp and still be all background, got %f", r)
	}
	if r := BackgroundRatio(img, 9, 9, 3, 255, 30); r != 1.0 {
		t.Errorf("far corner window should clamp, got %f", r)
	}
}

func TestBackgroundRatioEmptyWindow(t *testing.T) {
	img := grayImage(10, 10, 255, 255, 0, 0, 0, 0)
	if r := BackgroundRatio(img, 20, 20, 3, 255, 30); r != 0 {
		t.Errorf("window fully outside the image should give 0, got %f", r)
	}
}

func TestBackgroundRatioDeterministic(t *testing.T) {
	img := grayImage(40, 40, 255, 30, 10, 10, 30, 30)
	first := BackgroundRatio(img, 12, 12, 3, 255, 30)
	for i := 0; i < 10; i++ {
		if r := BackgroundRatio(img, 12, 12, 3, 255, 30); r != first {
			t.Fatalf("ratio changed across calls: %f vs %f", first, r)
		}
	}
}

func BenchmarkBackgroundRatio(b *testing.B) {
	img := grayImage(1000, 1000, 255, 30, 200, 200, 800, 800)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		BackgroundRatio(img, 500, 500, DefaultWindowRadius, 255, DefaultTolerance)
	}
}
