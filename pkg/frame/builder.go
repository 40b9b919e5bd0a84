// Package frame assembles viewport frames from boundary points and enforces
// the minimum-size policy on detections.
package frame

import (
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/scanview/scanview/pkg/types"
)

// Builder converts boundary points into validated viewport frames.
type Builder struct{}

// NewBuilder creates a frame builder.
func NewBuilder() *Builder {
	return &Builder{}
}

var frameSeq atomic.Uint64

// newFrameID returns an opaque identifier unique within the process.
func newFrameID() string {
	return fmt.Sprintf("frame-%s-%d", strconv.FormatInt(time.Now().UnixNano(), 36), frameSeq.Add(1))
}

// Build assembles an axis-aligned bounding box from the boundary points and
// returns a new frame, or nil when the detection is too small to be a photo.
//
// Any direction missing from the map contributes the click coordinate
// instead, so a partial scan still produces a box. Dimensions below
// opts.MinDimension are floored up to it; only the floored area is checked
// against opts.MinArea. A nil return is a normal "no photo here" outcome,
// not an error.
func (b *Builder) Build(points map[string]types.Point, clickX, clickY int, opts types.AnalysisOptions) *types.ViewportFrame {
	cx := float64(clickX)
	cy := float64(clickY)

	minX := min3(coordX(points, types.West, cx), coordX(points, types.NorthWest, cx), coordX(points, types.SouthWest, cx))
	maxX := max3(coordX(points, types.East, cx), coordX(points, types.NorthEast, cx), coordX(points, types.SouthEast, cx))
	minY := min3(coordY(points, types.North, cy), coordY(points, types.NorthWest, cy), coordY(points, types.NorthEast, cy))
	maxY := max3(coordY(points, types.South, cy), coordY(points, types.SouthWest, cy), coordY(points, types.SouthEast, cy))

	width := maxX - minX
	height := maxY - minY

	if width < opts.MinDimension {
		width = opts.MinDimension
	}
	if height < opts.MinDimension {
		height = opts.MinDimension
	}

	area := width * height
	if area < opts.MinArea {
		return nil
	}

	return &types.ViewportFrame{
		ID: newFrameID(),
		BoundingBox: types.BoundingBox{
			X:      minX,
			Y:      minY,
			Width:  width,
			Height: height,
		},
		Rotation: 0,
		Area:     area,
	}
}

func coordX(points map[string]types.Point, dir types.Direction, fallback float64) float64 {
	if p, ok := points[dir.Name]; ok {
		return p.X
	}
	return fallback
}

func coordY(points map[string]types.Point, dir types.Direction, fallback float64) float64 {
	if p, ok := points[dir.Name]; ok {
		return p.Y
	}
	return fallback
}

func min3(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func max3(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
