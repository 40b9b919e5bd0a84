package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/scanview/scanview/pkg/geometry"
	"github.com/scanview/scanview/pkg/types"
)

// DrawOverlay renders detection diagnostics onto a copy of the source image:
// the frame box, the expanded straightening region, the boundary points, and
// the click position.
func DrawOverlay(src image.Image, frame types.ViewportFrame, points map[string]types.Point, clickX, clickY int) *image.NRGBA {
	nrgba := imaging.Clone(src)
	w := nrgba.Bounds().Dx()
	h := nrgba.Bounds().Dy()

	gold := color.NRGBA{255, 204, 0, 255} // frame box
	green := color.NRGBA{0, 255, 0, 255}  // expanded region
	red := color.NRGBA{255, 0, 0, 255}    // boundary points
	blue := color.NRGBA{0, 170, 255, 255} // click

	stroke := int(math.Max(2, 0.004*float64(minInt(w, h))))
	cross := int(math.Max(4, 0.01*float64(minInt(w, h))))

	expanded := geometry.ExpandedRegion(frame.BoundingBox, frame.Rotation, float64(w), float64(h))
	drawBox(nrgba, expanded, green, stroke)
	drawBox(nrgba, frame.BoundingBox, gold, stroke)

	for _, p := range points {
		px := int(p.X + 0.5)
		py := int(p.Y + 0.5)
		drawHLine(nrgba, py, px-cross, px+cross, red)
		drawVLine(nrgba, px, py-cross, py+cross, red)
	}

	drawHLine(nrgba, clickY, clickX-cross, clickX+cross, blue)
	drawVLine(nrgba, clickX, clickY-cross, clickY+cross, blue)

	return nrgba
}

func drawBox(img *image.NRGBA, box types.BoundingBox, c color.NRGBA, stroke int) {
	x0 := int(box.X + 0.5)
	y0 := int(box.Y + 0.5)
	x1 := int(box.X + box.Width + 0.5)
	y1 := int(box.Y + box.Height + 0.5)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	for s := 0; s < stroke; s++ {
		drawHLine(img, y0+s, x0, x1, c)
		drawHLine(img, y1-1-s, x0, x1, c)
		drawVLine(img, x0+s, y0, y1, c)
		drawVLine(img, x1-1-s, y0, y1, c)
	}
}

func drawHLine(img *image.NRGBA, y, x0, x1 int, c color.NRGBA) {
	if y < 0 || y >= img.Bounds().Dy() {
		return
	}
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if x1 <= 0 || x0 >= img.Bounds().Dx() {
		return
	}
	if x0 < 0 {
		x0 = 0
	}
	if x1 > img.Bounds().Dx() {
		x1 = img.Bounds().Dx()
	}
	i := y*img.Stride + x0*4
	for x := x0; x < x1; x++ {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
		i += 4
	}
}

func drawVLine(img *image.NRGBA, x, y0, y1 int, c color.NRGBA) {
	if x < 0 || x >= img.Bounds().Dx() {
		return
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	if y1 <= 0 || y0 >= img.Bounds().Dy() {
		return
	}
	if y0 < 0 {
		y0 = 0
	}
	if y1 > img.Bounds().Dy() {
		y1 = img.Bounds().Dy()
	}
	i := y0*img.Stride + x*4
	for y := y0; y < y1; y++ {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
		i += img.Stride
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
