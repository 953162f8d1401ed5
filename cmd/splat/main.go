// Headless SPH renderer: interpolates particle fields onto a pixel grid and
// writes a PNG plus optional CSV telemetry.
//
// Usage: splat -config render.yaml -out disc.png
package main

import (
	"flag"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/pthm-cable/splat/config"
	"github.com/pthm-cable/splat/interp"
	"github.com/pthm-cable/splat/render"
	"github.com/pthm-cable/splat/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "", "Output PNG path (overrides config)")
	outputDir := flag.String("output-dir", "", "Telemetry directory (overrides config)")
	field := flag.String("field", "", "Scalar field to render (overrides config)")
	snapshot := flag.String("snapshot", "", "Particle snapshot CSV (overrides config)")
	writeConfig := flag.Bool("write-config", false, "Write the effective config next to the telemetry output")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// CLI overrides
	if *outPath != "" {
		cfg.Output.Image = *outPath
	}
	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}
	if *field != "" {
		cfg.Interpolation.Field = *field
		cfg.Interpolation.VectorField = ""
	}
	if *snapshot != "" {
		cfg.Source.Snapshot = *snapshot
	}

	if err := run(cfg, *writeConfig); err != nil {
		slog.Error("render failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, writeConfig bool) error {
	rec, err := telemetry.NewRecorder(cfg.Output.Dir)
	if err != nil {
		return err
	}
	defer rec.Close()

	if writeConfig && rec.Dir() != "" {
		if err := cfg.WriteYAML(rec.Dir() + "/config.yaml"); err != nil {
			return err
		}
	}

	scene, err := render.NewScene(cfg)
	if err != nil {
		return err
	}
	ext, err := scene.Extent()
	if err != nil {
		return err
	}

	slog.Info("starting render",
		"field", cfg.Interpolation.Field,
		"vector_field", cfg.Interpolation.VectorField,
		"particles", scene.Particles().N(),
		"extent", ext,
		"pixels_x", cfg.Interpolation.NumPixelsX,
		"pixels_y", cfg.Interpolation.NumPixelsY,
		"cross_section", cfg.Interpolation.CrossSection,
	)

	var grid *interp.PixelGrid
	fieldName := cfg.Interpolation.Field

	start := time.Now()
	if cfg.Interpolation.VectorField != "" {
		fieldName = cfg.Interpolation.VectorField
		gx, gy, err := scene.RenderVector(fieldName, ext)
		if err != nil {
			return err
		}
		arrows, err := render.Subsample(gx, gy, cfg.Vector.Stride)
		if err != nil {
			return err
		}
		slog.Info("vector field sampled",
			"arrows", len(arrows),
			"max_magnitude", render.MaxMagnitude(arrows),
		)
		// Image output shows the magnitude of the interpolated field.
		grid = magnitudeGrid(gx, gy)
	} else {
		g, err := scene.RenderScalar(fieldName, ext)
		if err != nil {
			return err
		}
		grid = g
	}
	elapsed := time.Since(start)

	if cfg.Polar.Enabled {
		polar, err := interp.ToPolar(grid, cfg.Polar.NumRadial, cfg.Polar.NumTheta)
		if err != nil {
			return err
		}
		grid = polar
	}

	set := scene.Particles()
	nActive := 0
	for _, ok := range set.Active() {
		if ok {
			nActive++
		}
	}
	stats := telemetry.NewRenderStats(fieldName, grid, cfg.Derived.Options, set.N(), nActive, elapsed)
	stats.Log(slog.Default())
	if err := rec.WriteRender(stats); err != nil {
		return err
	}

	cmap, err := render.ColormapByName(cfg.Render.Colormap)
	if err != nil {
		return err
	}
	rng := render.Range{
		Min:         cfg.Render.VMin,
		Max:         cfg.Render.VMax,
		FractionMax: cfg.Render.FractionMax,
		Log:         cfg.Render.Log,
	}
	if err := render.WritePNG(cfg.Output.Image, grid, cmap, rng); err != nil {
		return err
	}
	slog.Info("image written", "path", cfg.Output.Image)
	return nil
}

// magnitudeGrid combines vector component grids into a magnitude grid.
func magnitudeGrid(gx, gy *interp.PixelGrid) *interp.PixelGrid {
	out := interp.NewPixelGrid(gx.NX, gx.NY, gx.Extent)
	for i := range out.Data {
		out.Data[i] = math.Hypot(gx.Data[i], gy.Data[i])
	}
	return out
}
