package types

import "fmt"

// Point is a 2D coordinate in source-image pixel space. Coordinates may be
// sub-pixel after geometric transforms.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Direction is one of the 8 fixed unit step vectors used by the boundary scan.
type Direction struct {
	Name string
	DX   int
	DY   int
}

// The fixed scan direction set. Axis directions first, then diagonals.
var (
	North     = Direction{"north", 0, -1}
	South     = Direction{"south", 0, 1}
	East      = Direction{"east", 1, 0}
	West      = Direction{"west", -1, 0}
	NorthEast = Direction{"northeast", 1, -1}
	NorthWest = Direction{"northwest", -1, -1}
	SouthEast = Direction{"southeast", 1, 1}
	SouthWest = Direction{"southwest", -1, 1}
)

// Directions returns the full 8-direction scan set.
func Directions() []Direction {
	return []Direction{North, South, East, West, NorthEast, NorthWest, SouthEast, SouthWest}
}

// BoundingBox is an axis-aligned rectangle in source-image pixel space.
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center returns the box midpoint.
func (b BoundingBox) Center() Point {
	return Point{X: b.X + b.Width/2, Y: b.Y + b.Height/2}
}

// Area returns width*height.
func (b BoundingBox) Area() float64 {
	return b.Width * b.Height
}

// BackgroundColor selects the reference background intensity for scanning.
type BackgroundColor string

const (
	BackgroundWhite BackgroundColor = "white"
	BackgroundBlack BackgroundColor = "black"
	BackgroundAuto  BackgroundColor = "auto"
)

// AnalysisOptions configures a single detection request.
type AnalysisOptions struct {
	BackgroundColor BackgroundColor `json:"background_color"`
	MinArea         float64         `json:"min_area_threshold"`
	MinDimension    float64         `json:"min_dimension_threshold"`
}

// DefaultAnalysisOptions returns the standard detection thresholds.
func DefaultAnalysisOptions() AnalysisOptions {
	return AnalysisOptions{
		BackgroundColor: BackgroundWhite,
		MinArea:         2500,
		MinDimension:    30,
	}
}

// ViewportFrame is a detected (or user-adjusted) region of interest.
// BoundingBox and Area are fixed at detection time; Rotation is the only
// field that changes afterward, via WithRotation.
type ViewportFrame struct {
	ID          string      `json:"id"`
	BoundingBox BoundingBox `json:"bounding_box"`
	Rotation    float64     `json:"rotation"`
	Area        float64     `json:"area"`
}

// WithRotation returns a copy of the frame with the rotation replaced,
// normalized to (-180, 180]. Area is deliberately not recomputed.
func (f ViewportFrame) WithRotation(degrees float64) ViewportFrame {
	for degrees > 180 {
		degrees -= 360
	}
	for degrees <= -180 {
		degrees += 360
	}
	f.Rotation = degrees
	return f
}

// PreviewResult is the outcome of a single render call.
type PreviewResult struct {
	Success bool          `json:"success"`
	DataURL string        `json:"data_url,omitempty"`
	Width   int           `json:"width,omitempty"`
	Height  int           `json:"height,omitempty"`
	Frame   ViewportFrame `json:"frame"`
	Error   string        `json:"error,omitempty"`
}

// OutOfBoundsError reports a click coordinate outside the image.
type OutOfBoundsError struct {
	X, Y          int
	Width, Height int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("click (%d,%d) outside image bounds %dx%d", e.X, e.Y, e.Width, e.Height)
}
