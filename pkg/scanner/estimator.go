package scanner

import "image"

// BackgroundEstimator guesses the background intensity of a scan. It backs
// the "auto" background mode; white and black are handled without it.
type BackgroundEstimator interface {
	EstimateBackground(gray *image.Gray) uint8
}

// BorderEstimator estimates the background from the mean intensity of thin
// bands along the four image edges. Scanned sheets keep their background
// visible at the borders, so the band mean is a usable reference even when
// the sheet is mostly covered by photos.
type BorderEstimator struct {
	// BandRatio is the band thickness as a fraction of the shorter image
	// side. Zero selects the default of 0.02.
	BandRatio float64
}

// EstimateBackground returns 255 when the border bands average light and 0
// when they average dark.
func (e BorderEstimator) EstimateBackground(gray *image.Gray) uint8 {
	ratio := e.BandRatio
	if ratio <= 0 {
		ratio = 0.02
	}

	w := gray.Rect.Dx()
	h := gray.Rect.Dy()
	if w == 0 || h == 0 {
		return 255
	}

	short := w
	if h < short {
		short = h
	}
	band := int(float64(short) * ratio)
	if band < 5 {
		band = 5
	}
	if band > short {
		band = short
	}

	var sum, count int64
	add := func(x0, y0, x1, y1 int) {
		for y := y0; y < y1; y++ {
			i := y*gray.Stride + x0
			for x := x0; x < x1; x++ {
				sum += int64(gray.Pix[i])
				count++
				i++
			}
		}
	}
	add(0, 0, w, band)           // top
	add(0, h-band, w, h)         // bottom
	add(0, band, band, h-band)   // left
	add(w-band, band, w, h-band) // right

	if count == 0 {
		return 255
	}
	if sum/count >= 128 {
		return 255
	}
	return 0
}
