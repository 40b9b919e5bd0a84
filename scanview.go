// Package scanview detects and previews individual photos inside scanned
// composite images.
//
// A scanned sheet often carries several photographs on a uniform background.
// Given a click on one of them, the engine walks outward through the
// background in 8 directions to find the photo's edges, builds an
// axis-aligned viewport frame around it, and renders a straightened,
// scaled-down preview of the framed region.
//
// Basic usage:
//
//	package main
//
//	import (
//		"fmt"
//		"log"
//
//		"github.com/scanview/scanview"
//		"github.com/scanview/scanview/pkg/imageio"
//		"github.com/scanview/scanview/pkg/types"
//	)
//
//	func main() {
//		engine := scanview.New()
//
//		img, err := imageio.Load("sheet.jpg")
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		frame, err := engine.DetectFrame(img, 150, 150, types.DefaultAnalysisOptions())
//		if err != nil {
//			log.Fatal(err)
//		}
//		if frame == nil {
//			log.Fatal("no photo under the click")
//		}
//
//		result := engine.RenderPreview(img, *frame)
//		if !result.Success {
//			log.Fatal(result.Error)
//		}
//		fmt.Printf("preview %dx%d for frame %s\n", result.Width, result.Height, frame.ID)
//	}
//
// The engine consists of four components:
//
// 1. Sampler (pkg/sampler): grayscale conversion and windowed background sampling
// 2. Scanner (pkg/scanner): the 8-direction boundary walk
// 3. Frame (pkg/frame): bounding-box assembly and size validation
// 4. Renderer (pkg/renderer): the rotation-aware crop/straighten/scale pipeline
//
// All operations are pure computations over the decoded image passed in;
// the engine holds no state between calls and is safe for concurrent use.
package scanview

import (
	"image"

	"github.com/scanview/scanview/pkg/frame"
	"github.com/scanview/scanview/pkg/renderer"
	"github.com/scanview/scanview/pkg/scanner"
	"github.com/scanview/scanview/pkg/sampler"
	"github.com/scanview/scanview/pkg/types"
)

// Version of the scanview library
const Version = "1.0.0"

// Engine bundles the detection and rendering pipeline behind a single
// interface. The zero-cost way to straighten a skewed detection afterward is
// frame.WithRotation followed by another RenderPreview call.
type Engine struct {
	scanner   *scanner.BoundaryScanner
	builder   *frame.Builder
	renderer  *renderer.PreviewRenderer
	estimator scanner.BackgroundEstimator
}

// New creates an Engine with default configuration.
func New() *Engine {
	return &Engine{
		scanner:  scanner.New(),
		builder:  frame.NewBuilder(),
		renderer: renderer.New(),
	}
}

// NewWithConfig creates an Engine with custom scan and render configuration.
func NewWithConfig(scanConfig scanner.Config, renderConfig renderer.Config) *Engine {
	return &Engine{
		scanner:  scanner.NewWithConfig(scanConfig),
		builder:  frame.NewBuilder(),
		renderer: renderer.NewWithConfig(renderConfig),
	}
}

// SetBackgroundEstimator installs the estimator consulted by the "auto"
// background mode. Without one, auto falls back to white.
func (e *Engine) SetBackgroundEstimator(est scanner.BackgroundEstimator) {
	e.estimator = est
}

// DetectFrame locates the photo under the click and returns its viewport
// frame. A nil frame with a nil error means the detection fell below the
// size thresholds; a click outside [0,w)x[0,h) returns *types.OutOfBoundsError.
func (e *Engine) DetectFrame(img image.Image, clickX, clickY int, opts types.AnalysisOptions) (*types.ViewportFrame, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if clickX < 0 || clickX >= w || clickY < 0 || clickY >= h {
		return nil, &types.OutOfBoundsError{X: clickX, Y: clickY, Width: w, Height: h}
	}

	gray := sampler.Grayscale(img)
	bg := scanner.ResolveBackground(gray, opts.BackgroundColor, e.estimator)
	points := e.scanner.DetectBoundaryPoints(gray, clickX, clickY, bg)
	return e.builder.Build(points, clickX, clickY, opts), nil
}

// DetectBoundaryPoints exposes the raw 8-direction scan result, mainly for
// diagnostics and overlays.
func (e *Engine) DetectBoundaryPoints(img image.Image, clickX, clickY int, opts types.AnalysisOptions) (map[string]types.Point, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if clickX < 0 || clickX >= w || clickY < 0 || clickY >= h {
		return nil, &types.OutOfBoundsError{X: clickX, Y: clickY, Width: w, Height: h}
	}

	gray := sampler.Grayscale(img)
	bg := scanner.ResolveBackground(gray, opts.BackgroundColor, e.estimator)
	return e.scanner.DetectBoundaryPoints(gray, clickX, clickY, bg), nil
}

// RenderPreview produces a straightened, scaled preview of the frame's
// region. Failures are reported in the result, not returned as errors.
func (e *Engine) RenderPreview(img image.Image, f types.ViewportFrame) types.PreviewResult {
	return e.renderer.Render(img, f)
}

// GetVersion returns the library version.
func GetVersion() string {
	return Version
}
