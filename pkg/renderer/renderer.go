// Package renderer produces straightened, cropped, aspect-scaled previews of
// viewport frames.
package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/scanview/scanview/pkg/geometry"
	"github.com/scanview/scanview/pkg/imageio"
	"github.com/scanview/scanview/pkg/types"
)

// rotationEpsilon is the angle below which a frame renders as unrotated.
const rotationEpsilon = 1.0

// Config holds the preview output parameters.
type Config struct {
	// MaxDim is the target size of the preview's longer side.
	MaxDim int
	// Format is the preview encoding: jpg or png.
	Format string
	// Quality is the JPEG quality (1-100).
	Quality int
	// Fill is the color exposed by canvas growth when rotating.
	Fill color.Color
}

// PreviewRenderer renders viewport frames into encoded previews.
type PreviewRenderer struct {
	config Config
}

// New creates a PreviewRenderer with the default configuration.
func New() *PreviewRenderer {
	return &PreviewRenderer{
		config: Config{
			MaxDim:  200,
			Format:  "jpg",
			Quality: 85,
			Fill:    color.White,
		},
	}
}

// NewWithConfig creates a PreviewRenderer with a custom configuration.
func NewWithConfig(config Config) *PreviewRenderer {
	if config.MaxDim <= 0 {
		config.MaxDim = 200
	}
	if config.Quality <= 0 {
		config.Quality = 85
	}
	if config.Fill == nil {
		config.Fill = color.White
	}
	return &PreviewRenderer{config: config}
}

// Render crops the frame's region out of src, straightening first when the
// frame carries a rotation, and scales the result to the preview size. All
// geometry is clamped to the available canvas; failures are reported in the
// result, never panicked.
func (r *PreviewRenderer) Render(src image.Image, frame types.ViewportFrame) types.PreviewResult {
	var crop *image.NRGBA
	if math.Abs(frame.Rotation) < rotationEpsilon {
		crop = r.cropDirect(src, frame)
	} else {
		crop = r.cropStraightened(src, frame)
	}
	if crop == nil {
		return failure(frame, "crop region is empty")
	}

	pw, ph := previewSize(frame.BoundingBox, r.config.MaxDim)
	preview := imaging.Resize(crop, pw, ph, imaging.Lanczos)

	dataURL, err := imageio.DataURL(preview, r.config.Format, r.config.Quality)
	if err != nil {
		return failure(frame, err.Error())
	}

	return types.PreviewResult{
		Success: true,
		DataURL: dataURL,
		Width:   pw,
		Height:  ph,
		Frame:   frame,
	}
}

// cropDirect cuts the bounding box straight out of the source.
func (r *PreviewRenderer) cropDirect(src image.Image, frame types.ViewportFrame) *image.NRGBA {
	box := frame.BoundingBox
	rect := image.Rect(
		int(math.Round(box.X)),
		int(math.Round(box.Y)),
		int(math.Round(box.X+box.Width)),
		int(math.Round(box.Y+box.Height)),
	).Intersect(src.Bounds())
	if rect.Empty() {
		return nil
	}
	return imaging.Crop(src, rect)
}

// cropStraightened rotates the whole source by the frame rotation so the
// framed content becomes axis-aligned, then cuts the box around its mapped
// center on the grown canvas.
//
// imaging.Rotate turns content counter-clockwise on screen, which in the
// y-down pixel convention moves a center offset v to RotatePoint(v, O, -deg);
// the recentering below uses the same angle so the two stay in lockstep.
func (r *PreviewRenderer) cropStraightened(src image.Image, frame types.ViewportFrame) *image.NRGBA {
	bounds := src.Bounds()
	srcCenter := types.Point{X: float64(bounds.Dx()) / 2, Y: float64(bounds.Dy()) / 2}

	rotated := imaging.Rotate(src, frame.Rotation, r.config.Fill)
	// Canvas growth: the rotated bounds are larger than the source's.
	canvasCenter := types.Point{
		X: float64(rotated.Bounds().Dx()) / 2,
		Y: float64(rotated.Bounds().Dy()) / 2,
	}

	boxCenter := frame.BoundingBox.Center()
	vector := types.Point{X: boxCenter.X - srcCenter.X, Y: boxCenter.Y - srcCenter.Y}
	mapped := geometry.RotatePoint(vector, types.Point{}, -frame.Rotation)
	center := types.Point{X: canvasCenter.X + mapped.X, Y: canvasCenter.Y + mapped.Y}

	// Clamp by shrinking at the overflowing edge, keeping the center fixed
	// where possible so no skew is reintroduced.
	cw := float64(rotated.Bounds().Dx())
	ch := float64(rotated.Bounds().Dy())
	x0 := clamp(center.X-frame.BoundingBox.Width/2, 0, cw)
	x1 := clamp(center.X+frame.BoundingBox.Width/2, 0, cw)
	y0 := clamp(center.Y-frame.BoundingBox.Height/2, 0, ch)
	y1 := clamp(center.Y+frame.BoundingBox.Height/2, 0, ch)

	rect := image.Rect(
		int(math.Round(x0)), int(math.Round(y0)),
		int(math.Round(x1)), int(math.Round(y1)),
	)
	if rect.Empty() {
		return nil
	}
	return imaging.Crop(rotated, rect)
}

// previewSize applies the aspect-preserving sizing rule: the longer box side
// maps to maxDim, the shorter scales to match.
func previewSize(box types.BoundingBox, maxDim int) (int, int) {
	if box.Width <= 0 || box.Height <= 0 {
		return maxDim, maxDim
	}
	aspect := box.Width / box.Height
	if aspect > 1 {
		return maxDim, atLeastOne(math.Round(float64(maxDim) / aspect))
	}
	return atLeastOne(math.Round(float64(maxDim) * aspect)), maxDim
}

func atLeastOne(v float64) int {
	if v < 1 {
		return 1
	}
	return int(v)
}

func failure(frame types.ViewportFrame, msg string) types.PreviewResult {
	return types.PreviewResult{
		Success: false,
		Frame:   frame,
		Error:   msg,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
