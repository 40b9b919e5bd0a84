// Package scanner locates the edges of a sub-image around a click point by
// walking outward through uniform background in 8 fixed directions.
package scanner

import (
	"image"

	"github.com/scanview/scanview/pkg/sampler"
	"github.com/scanview/scanview/pkg/types"
)

// Config holds the tunable parameters of the boundary scan.
type Config struct {
	// StepSize is the outward walk increment in pixels.
	StepSize int
	// WindowRadius is the sampling window radius passed to the sampler.
	WindowRadius int
	// Tolerance is the background intensity tolerance (0-255 scale).
	Tolerance uint8
	// BackgroundRatio is the window fraction above which a step is
	// classified as background and the walk stops.
	BackgroundRatio float64
}

// BoundaryScanner walks outward from a click point to find, per direction,
// the first point where the surrounding window is mostly background.
type BoundaryScanner struct {
	config Config
}

// New creates a BoundaryScanner with the default configuration.
func New() *BoundaryScanner {
	return &BoundaryScanner{
		config: Config{
			StepSize:        2,
			WindowRadius:    sampler.DefaultWindowRadius,
			Tolerance:       sampler.DefaultTolerance,
			BackgroundRatio: 0.7,
		},
	}
}

// NewWithConfig creates a BoundaryScanner with a custom configuration.
func NewWithConfig(config Config) *BoundaryScanner {
	return &BoundaryScanner{config: config}
}

// DetectBoundaryPoints walks outward from (clickX, clickY) along each of the
// 8 directions and returns one boundary point per direction, keyed by the
// direction name. Directions that reach the image edge without crossing the
// background threshold fall back to the edge coordinate: axis directions keep
// the click's orthogonal coordinate, diagonals land on the image corner.
//
// The click point must lie strictly inside [0,w)x[0,h); callers validate this
// before scanning (see the engine facade). The result is a pure function of
// the gray buffer and the inputs.
func (s *BoundaryScanner) DetectBoundaryPoints(gray *image.Gray, clickX, clickY int, bgIntensity uint8) map[string]types.Point {
	w := gray.Rect.Dx()
	h := gray.Rect.Dy()

	points := make(map[string]types.Point, 8)
	for _, dir := range types.Directions() {
		points[dir.Name] = s.scanDirection(gray, clickX, clickY, dir, bgIntensity, w, h)
	}
	return points
}

func (s *BoundaryScanner) scanDirection(gray *image.Gray, clickX, clickY int, dir types.Direction, bgIntensity uint8, w, h int) types.Point {
	x, y := clickX, clickY
	for {
		x += dir.DX * s.config.StepSize
		y += dir.DY * s.config.StepSize
		if x < 0 || x >= w || y < 0 || y >= h {
			return edgeFallback(clickX, clickY, dir, w, h)
		}
		ratio := sampler.BackgroundRatio(gray, x, y, s.config.WindowRadius, bgIntensity, s.config.Tolerance)
		if ratio > s.config.BackgroundRatio {
			return types.Point{X: float64(x), Y: float64(y)}
		}
	}
}

// edgeFallback maps a direction to the image-edge coordinate used when the
// walk exits the image without finding background.
func edgeFallback(clickX, clickY int, dir types.Direction, w, h int) types.Point {
	x := float64(clickX)
	y := float64(clickY)
	switch dir.DX {
	case -1:
		x = 0
	case 1:
		x = float64(w - 1)
	}
	switch dir.DY {
	case -1:
		y = 0
	case 1:
		y = float64(h - 1)
	}
	return types.Point{X: x, Y: y}
}

// ResolveBackground maps an AnalysisOptions background selection to a
// reference intensity. The auto mode consults the estimator when one is
// supplied and otherwise falls back to white.
func ResolveBackground(gray *image.Gray, bg types.BackgroundColor, estimator BackgroundEstimator) uint8 {
	switch bg {
	case types.BackgroundBlack:
		return 0
	case types.BackgroundAuto:
		if estimator != nil {
			return estimator.EstimateBackground(gray)
		}
		return 255
	default:
		return 255
	}
}
