package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scanview/scanview/pkg/types"
)

const eps = 1e-9

func TestRotatePointIdentity(t *testing.T) {
	points := []types.Point{
		{X: 0, Y: 0},
		{X: 10, Y: -3},
		{X: -7.5, Y: 42.25},
	}
	centers := []types.Point{
		{X: 0, Y: 0},
		{X: 100, Y: 100},
		{X: -5, Y: 3},
	}
	for _, p := range points {
		for _, c := range centers {
			got := RotatePoint(p, c, 0)
			require.InDelta(t, p.X, got.X, eps)
			require.InDelta(t, p.Y, got.Y, eps)
		}
	}
}

func TestRotatePointQuarterTurn(t *testing.T) {
	// Positive angles rotate clockwise on screen (y-down): right goes down.
	got := RotatePoint(types.Point{X: 1, Y: 0}, types.Point{}, 90)
	require.InDelta(t, 0, got.X, eps)
	require.InDelta(t, 1, got.Y, eps)

	got = RotatePoint(types.Point{X: 0, Y: 1}, types.Point{}, 90)
	require.InDelta(t, -1, got.X, eps)
	require.InDelta(t, 0, got.Y, eps)
}

func TestRotatePointRoundTrip(t *testing.T) {
	p := types.Point{X: 37.2, Y: -14.9}
	c := types.Point{X: 5, Y: 8}
	for _, deg := range []float64{1, 15, 45, 89.9, 90, 137, 180, -30, -179} {
		back := RotatePoint(RotatePoint(p, c, deg), c, -deg)
		require.InDelta(t, p.X, back.X, 1e-9, "deg=%f", deg)
		require.InDelta(t, p.Y, back.Y, 1e-9, "deg=%f", deg)
	}
}

func TestRotatedCornersZero(t *testing.T) {
	box := types.BoundingBox{X: 10, Y: 20, Width: 100, Height: 60}
	corners := RotatedCorners(box, 0)

	require.InDelta(t, 10, corners[0].X, eps) // TL
	require.InDelta(t, 20, corners[0].Y, eps)
	require.InDelta(t, 110, corners[1].X, eps) // TR
	require.InDelta(t, 20, corners[1].Y, eps)
	require.InDelta(t, 110, corners[2].X, eps) // BR
	require.InDelta(t, 80, corners[2].Y, eps)
	require.InDelta(t, 10, corners[3].X, eps) // BL
	require.InDelta(t, 80, corners[3].Y, eps)
}

func TestRotatedCornersPreserveCenter(t *testing.T) {
	box := types.BoundingBox{X: 40, Y: 60, Width: 80, Height: 50}
	for _, deg := range []float64{15, 45, 90, 123} {
		corners := RotatedCorners(box, deg)
		var cx, cy float64
		for _, c := range corners {
			cx += c.X
			cy += c.Y
		}
		cx /= 4
		cy /= 4
		center := box.Center()
		require.InDelta(t, center.X, cx, 1e-9, "deg=%f", deg)
		require.InDelta(t, center.Y, cy, 1e-9, "deg=%f", deg)
	}
}

func TestExpandedRegionWithinImage(t *testing.T) {
	box := types.BoundingBox{X: 50, Y: 50, Width: 100, Height: 80}
	for _, deg := range []float64{0, 10, 30, 45, 60, 89, 90, -45, 180} {
		region := ExpandedRegion(box, deg, 300, 300)
		require.GreaterOrEqual(t, region.X, 0.0, "deg=%f", deg)
		require.GreaterOrEqual(t, region.Y, 0.0, "deg=%f", deg)
		require.LessOrEqual(t, region.X+region.Width, 300.0, "deg=%f", deg)
		require.LessOrEqual(t, region.Y+region.Height, 300.0, "deg=%f", deg)
		require.GreaterOrEqual(t, region.Width, 0.0, "deg=%f", deg)
		require.GreaterOrEqual(t, region.Height, 0.0, "deg=%f", deg)
	}
}

func TestExpandedRegionCoversBox(t *testing.T) {
	box := types.BoundingBox{X: 100, Y: 100, Width: 60, Height: 40}
	region := ExpandedRegion(box, 30, 400, 400)

	// Every rotated corner that lies inside the image is inside the region.
	for _, c := range RotatedCorners(box, 30) {
		if c.X < 0 || c.X > 400 || c.Y < 0 || c.Y > 400 {
			continue
		}
		require.LessOrEqual(t, region.X, c.X)
		require.LessOrEqual(t, region.Y, c.Y)
		require.GreaterOrEqual(t, region.X+region.Width, c.X)
		require.GreaterOrEqual(t, region.Y+region.Height, c.Y)
	}
}

func TestExpandedRegionPaddingGrowsWithAngle(t *testing.T) {
	// On an unconstrained canvas the padding, and therefore the region,
	// grows as the rotation approaches 90 degrees.
	box := types.BoundingBox{X: 500, Y: 500, Width: 100, Height: 100}
	small := ExpandedRegion(box, 5, 2000, 2000)
	large := ExpandedRegion(box, 85, 2000, 2000)
	require.Greater(t, large.Width, small.Width)
	require.Greater(t, large.Height, small.Height)

	// A square at 0 degrees pads by exactly 20% of its side on each edge.
	zero := ExpandedRegion(box, 0, 2000, 2000)
	require.InDelta(t, 100+2*20, zero.Width, eps)
	require.InDelta(t, 100+2*20, zero.Height, eps)
}

func TestExpandedRegionClampsPadding(t *testing.T) {
	// Box flush against the origin: padding cannot push past the image.
	box := types.BoundingBox{X: 0, Y: 0, Width: 100, Height: 100}
	region := ExpandedRegion(box, 45, 120, 120)
	require.Equal(t, 0.0, region.X)
	require.Equal(t, 0.0, region.Y)
	require.LessOrEqual(t, region.Width, 120.0)
	require.LessOrEqual(t, region.Height, 120.0)
}

func BenchmarkRotatePoint(b *testing.B) {
	p := types.Point{X: 123.4, Y: 567.8}
	c := types.Point{X: 400, Y: 300}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		RotatePoint(p, c, float64(i%360))
	}
}

func TestRotatePointRadiansConversion(t *testing.T) {
	// 180 degrees mirrors the offset through the center.
	got := RotatePoint(types.Point{X: 3, Y: 4}, types.Point{}, 180)
	require.InDelta(t, -3, got.X, 1e-9)
	require.InDelta(t, -4, got.Y, 1e-9)

	// Magnitude is preserved under any angle.
	rot := RotatePoint(types.Point{X: 3, Y: 4}, types.Point{}, 57.3)
	require.InDelta(t, 5, math.Hypot(rot.X, rot.Y), 1e-9)
}
