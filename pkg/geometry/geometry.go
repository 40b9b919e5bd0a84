// Package geometry provides the 2D rotation helpers used to straighten and
// bound viewport frames. All functions are pure; coordinates are clamped,
// never rejected.
//
// Angles are in degrees. In the y-down pixel coordinate system a positive
// angle rotates clockwise on screen.
package geometry

import (
	"math"

	"github.com/scanview/scanview/pkg/types"
)

// RotatePoint rotates p about center by the given angle.
func RotatePoint(p, center types.Point, degrees float64) types.Point {
	rad := degrees * math.Pi / 180
	sin, cos := math.Sincos(rad)
	dx := p.X - center.X
	dy := p.Y - center.Y
	return types.Point{
		X: center.X + dx*cos - dy*sin,
		Y: center.Y + dx*sin + dy*cos,
	}
}

// RotatedCorners returns the four corners of box rotated about its own
// center, in TL, TR, BR, BL order.
func RotatedCorners(box types.BoundingBox, degrees float64) [4]types.Point {
	center := box.Center()
	return [4]types.Point{
		RotatePoint(types.Point{X: box.X, Y: box.Y}, center, degrees),
		RotatePoint(types.Point{X: box.X + box.Width, Y: box.Y}, center, degrees),
		RotatePoint(types.Point{X: box.X + box.Width, Y: box.Y + box.Height}, center, degrees),
		RotatePoint(types.Point{X: box.X, Y: box.Y + box.Height}, center, degrees),
	}
}

// ExpandedRegion returns the axis-aligned bounds of the rotated box, clamped
// to the image, padded outward so a straightening crop has source material on
// every side, and clamped again. The padding grows from 20% of the larger box
// side toward 40% as the rotation approaches 90 degrees.
func ExpandedRegion(box types.BoundingBox, degrees float64, imageWidth, imageHeight float64) types.BoundingBox {
	corners := RotatedCorners(box, degrees)

	minX, maxX := corners[0].X, corners[0].X
	minY, maxY := corners[0].Y, corners[0].Y
	for _, c := range corners[1:] {
		minX = math.Min(minX, c.X)
		maxX = math.Max(maxX, c.X)
		minY = math.Min(minY, c.Y)
		maxY = math.Max(maxY, c.Y)
	}

	minX = clamp(minX, 0, imageWidth)
	maxX = clamp(maxX, 0, imageWidth)
	minY = clamp(minY, 0, imageHeight)
	maxY = clamp(maxY, 0, imageHeight)

	angle := math.Abs(degrees)
	if angle > 90 {
		angle = 90
	}
	padRatio := 0.2 + 0.2*(angle/90)
	pad := math.Max(box.Width, box.Height) * padRatio

	minX = clamp(minX-pad, 0, imageWidth)
	maxX = clamp(maxX+pad, 0, imageWidth)
	minY = clamp(minY-pad, 0, imageHeight)
	maxY = clamp(maxY+pad, 0, imageHeight)

	return types.BoundingBox{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX,
		Height: maxY - minY,
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
