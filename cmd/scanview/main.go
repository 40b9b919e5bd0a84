package main

import (
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/scanview/scanview"
	"github.com/scanview/scanview/internal/config"
	"github.com/scanview/scanview/internal/logger"
	"github.com/scanview/scanview/internal/utils"
	"github.com/scanview/scanview/pkg/imageio"
	"github.com/scanview/scanview/pkg/renderer"
	"github.com/scanview/scanview/pkg/scanner"
	"github.com/scanview/scanview/pkg/types"
)

func main() {
	var in, outDir, click, bg, ext, cfgPath, logLevel string
	var rotation float64
	var maxDim, quality int
	var lossless, debug, autoEstimate bool

	flag.StringVar(&in, "in", "", "input image path, URL or directory (jpg/png/webp)")
	flag.StringVar(&outDir, "out", "out", "output directory")
	flag.StringVar(&click, "click", "", "click coordinate as x,y (defaults to the image center)")
	flag.Float64Var(&rotation, "rotation", 0, "rotation to apply to the detected frame (degrees)")
	flag.StringVar(&bg, "bg", "white", "background color: white|black|auto")
	flag.IntVar(&maxDim, "maxdim", 200, "preview long-side size in pixels")
	flag.StringVar(&ext, "ext", "jpg", "output format for previews: jpg|png|webp")
	flag.IntVar(&quality, "quality", 90, "JPEG/WebP output quality (1-100)")
	flag.BoolVar(&lossless, "lossless", false, "WebP output lossless mode")
	flag.BoolVar(&debug, "debug", false, "write detection overlay images")
	flag.BoolVar(&autoEstimate, "estimate", false, "use the border estimator for -bg auto")
	flag.StringVar(&cfgPath, "config", "", "JSON config file (overrides flag defaults)")
	flag.StringVar(&logLevel, "log", "info", "log level: debug|info|warn|error|silent")

	flag.Parse()
	if in == "" {
		fmt.Fprintf(os.Stderr, "usage: %s -in sheet.jpg|URL|dir [-click x,y] [-rotation deg] [-bg white|black|auto] [-out outdir]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
		os.Exit(1)
	}

	level, err := logger.ParseLevel(logLevel)
	if err != nil {
		level = logger.INFO
	}
	logger.Init(level, os.Stderr, true)

	cfg := config.Default()
	if cfgPath != "" {
		cfg, err = config.LoadFromFile(cfgPath)
		if err != nil {
			logger.Error("main", "config: %v", err)
			os.Exit(1)
		}
		if err := cfg.Validate(); err != nil {
			logger.Error("main", "config: %v", err)
			os.Exit(1)
		}
	} else {
		cfg.Preview.MaxDim = maxDim
	}

	engine := scanview.NewWithConfig(
		scanner.Config{
			StepSize:        cfg.Detection.StepSize,
			WindowRadius:    cfg.Detection.WindowRadius,
			Tolerance:       uint8(cfg.Detection.Tolerance),
			BackgroundRatio: cfg.Detection.BackgroundRatio,
		},
		renderer.Config{
			MaxDim:  cfg.Preview.MaxDim,
			Format:  cfg.Preview.Format,
			Quality: cfg.Preview.Quality,
		},
	)
	if autoEstimate {
		engine.SetBackgroundEstimator(scanner.BorderEstimator{})
	}

	opts := types.AnalysisOptions{
		BackgroundColor: types.BackgroundColor(bg),
		MinArea:         cfg.Detection.MinArea,
		MinDimension:    cfg.Detection.MinDimension,
	}

	if err := utils.EnsureDir(outDir); err != nil {
		logger.Error("main", "output dir: %v", err)
		os.Exit(1)
	}

	inputs := []string{in}
	if utils.DirExists(in) {
		inputs, err = utils.ListImageFiles(in)
		if err != nil {
			logger.Error("main", "list %s: %v", in, err)
			os.Exit(1)
		}
		if len(inputs) == 0 {
			logger.Warn("main", "no image files under %s", in)
		}
	}

	failed := 0
	for i, source := range inputs {
		logger.Info("main", "[%d/%d] %s", i+1, len(inputs), source)
		if err := processOne(engine, source, click, rotation, opts, outDir, ext, quality, lossless, debug); err != nil {
			logger.Error("main", "%s: %v", source, err)
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func processOne(engine *scanview.Engine, source, click string, rotation float64, opts types.AnalysisOptions, outDir, ext string, quality int, lossless, debug bool) error {
	img, err := imageio.LoadSmart(source)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	bounds := img.Bounds()

	clickX, clickY := bounds.Dx()/2, bounds.Dy()/2
	if click != "" {
		if _, err := fmt.Sscanf(click, "%d,%d", &clickX, &clickY); err != nil {
			return fmt.Errorf("invalid -click %q: %w", click, err)
		}
	}

	frame, err := engine.DetectFrame(img, clickX, clickY, opts)
	if err != nil {
		return err
	}
	if frame == nil {
		logger.Warn("detect", "no photo found at (%d,%d)", clickX, clickY)
		return nil
	}
	if rotation != 0 {
		updated := frame.WithRotation(rotation)
		frame = &updated
	}

	logger.Info("detect", "frame %s box=%.0fx%.0f@%.0f,%.0f rotation=%.1f",
		frame.ID, frame.BoundingBox.Width, frame.BoundingBox.Height,
		frame.BoundingBox.X, frame.BoundingBox.Y, frame.Rotation)

	result := engine.RenderPreview(img, *frame)
	if !result.Success {
		return fmt.Errorf("render: %s", result.Error)
	}

	preview, err := decodeDataURL(result.DataURL)
	if err != nil {
		return fmt.Errorf("decode preview: %w", err)
	}

	outPath := utils.GenerateOutputFilename(sourceName(source), outDir, "", "_preview", ext)
	if err := imageio.Save(preview, outPath, ext, quality, lossless); err != nil {
		return fmt.Errorf("save %s: %w", outPath, err)
	}
	logger.Info("main", "wrote %s (%dx%d)", outPath, result.Width, result.Height)

	if debug {
		points, err := engine.DetectBoundaryPoints(img, clickX, clickY, opts)
		if err != nil {
			return err
		}
		overlay := renderer.DrawOverlay(img, *frame, points, clickX, clickY)
		dbgPath := utils.GenerateOutputFilename(sourceName(source), outDir, "", "_debug", "png")
		if err := imageio.Save(overlay, dbgPath, "png", quality, false); err != nil {
			return fmt.Errorf("save %s: %w", dbgPath, err)
		}
		logger.Info("main", "wrote %s", dbgPath)

		framePath := utils.GenerateOutputFilename(sourceName(source), outDir, "", "_frame", "json")
		js, _ := json.MarshalIndent(frame, "", "  ")
		if err := os.WriteFile(framePath, js, 0o644); err != nil {
			return fmt.Errorf("save %s: %w", framePath, err)
		}
	}

	return nil
}

// decodeDataURL turns the renderer's transport encoding back into an image
// for on-disk output.
func decodeDataURL(dataURL string) (image.Image, error) {
	idx := strings.Index(dataURL, ",")
	if idx < 0 {
		return nil, fmt.Errorf("malformed data URL")
	}
	raw, err := base64.StdEncoding.DecodeString(dataURL[idx+1:])
	if err != nil {
		return nil, err
	}
	return imageio.DecodeBytes(raw)
}

// sourceName maps a URL to a usable base filename; file paths pass through.
func sourceName(source string) string {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		name := filepath.Base(strings.Split(source, "?")[0])
		if name == "" || name == "." || name == "/" {
			return "download.jpg"
		}
		return name
	}
	return source
}
