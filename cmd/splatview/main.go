// Interactive render preview - explore interpolation settings with sliders.
//
// Usage: go run ./cmd/splatview [-config render.yaml]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/splat/config"
	"github.com/pthm-cable/splat/interp"
	"github.com/pthm-cable/splat/render"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
)

// ViewParams holds the interactively tunable render parameters.
type ViewParams struct {
	CrossSection  bool
	SlicePosition float32
	Normalize     bool
	Accelerate    bool
	Inclination   float32
	FractionMax   float32
	LogScale      bool
	Colormap      int
}

var colormapNames = []string{"heat", "ice", "gray"}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	// Preview at the texture resolution regardless of the configured output.
	gridSize := 256
	cfg.Interpolation.NumPixelsX = gridSize
	cfg.Interpolation.NumPixelsY = gridSize
	cfg.Derived.Options.NPixX = gridSize
	cfg.Derived.Options.NPixY = gridSize

	rl.InitWindow(windowWidth, windowHeight, "SPH Render Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := ViewParams{
		SlicePosition: float32(cfg.Interpolation.SlicePosition),
		Normalize:     cfg.Interpolation.Normalize,
		Accelerate:    cfg.Interpolation.Accelerate,
		Inclination:   float32(cfg.Render.Inclination),
		FractionMax:   1.0,
		LogScale:      cfg.Render.Log,
	}

	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	grid := interp.NewPixelGrid(gridSize, gridSize, cfg.ExplicitExtent())
	needsRender := true

	var renderErr error
	var gridMax float64

	for !rl.WindowShouldClose() {
		if needsRender {
			grid, renderErr = renderGrid(cfg, params)
			if renderErr == nil {
				gridMax = gridMaxValue(grid)
				updateTexture(texture, grid, params)
			}
			needsRender = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(gridSize), Height: float32(gridSize)},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		statsY := int32(previewSize + 25)
		if renderErr != nil {
			rl.DrawText(fmt.Sprintf("Error: %v", renderErr), 15, statsY, 16, rl.Red)
		} else {
			rl.DrawText(fmt.Sprintf("Field: %s  Max: %.4g", cfg.Interpolation.Field, gridMax), 15, statsY, 16, rl.DarkGray)
			mode := "projection"
			if params.CrossSection {
				mode = fmt.Sprintf("cross-section z=%.1f", params.SlicePosition)
			}
			rl.DrawText(mode, 15, statsY+20, 16, rl.DarkGray)
		}

		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Interpolation", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		// Slice position slider
		rl.DrawText("Slice position (cross-section depth)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		zRange := float32(cfg.Source.OuterRadius * 0.2)
		newSlice := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			fmt.Sprintf("%.0f", -zRange), fmt.Sprintf("%.0f", zRange),
			params.SlicePosition, -zRange, zRange,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.SlicePosition), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newSlice != params.SlicePosition {
			params.SlicePosition = newSlice
			if params.CrossSection {
				needsRender = true
			}
		}
		panelY += 35

		// Inclination slider
		rl.DrawText("Inclination (radians)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newIncl := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "1.57",
			params.Inclination, 0, float32(math.Pi/2),
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.Inclination), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newIncl != params.Inclination {
			params.Inclination = newIncl
			needsRender = true
		}
		panelY += 35

		// Brightness ceiling slider
		rl.DrawText("Fraction of maximum (brightness ceiling)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newFrac := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.01", "1.0",
			params.FractionMax, 0.01, 1.0,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.FractionMax), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newFrac != params.FractionMax {
			params.FractionMax = newFrac
			updateTexture(texture, grid, params)
		}
		panelY += 45

		// Mode buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(params.CrossSection, "Projection", "Cross-section")) {
			params.CrossSection = !params.CrossSection
			needsRender = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, toggleText(params.Normalize, "Raw", "Normalize")) {
			params.Normalize = !params.Normalize
			needsRender = true
		}
		panelY += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(params.Accelerate, "Exact", "Accelerate")) {
			params.Accelerate = !params.Accelerate
			needsRender = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, toggleText(params.LogScale, "Linear", "Log scale")) {
			params.LogScale = !params.LogScale
			updateTexture(texture, grid, params)
		}
		panelY += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Colormap: "+colormapNames[params.Colormap]) {
			params.Colormap = (params.Colormap + 1) % len(colormapNames)
			updateTexture(texture, grid, params)
		}
		panelY += 55

		// Effective YAML fragment
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		yamlLines := []string{
			"interpolation:",
			fmt.Sprintf("  cross_section: %v", params.CrossSection),
			fmt.Sprintf("  slice_position: %.2f", params.SlicePosition),
			fmt.Sprintf("  normalize: %v", params.Normalize),
			fmt.Sprintf("  accelerate: %v", params.Accelerate),
			"render:",
			fmt.Sprintf("  colormap: %q", colormapNames[params.Colormap]),
			fmt.Sprintf("  log: %v", params.LogScale),
			fmt.Sprintf("  fraction_max: %.2f", params.FractionMax),
			fmt.Sprintf("  inclination: %.2f", params.Inclination),
		}
		for _, line := range yamlLines {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			yaml := ""
			for _, line := range yamlLines {
				yaml += line + "\n"
			}
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// renderGrid runs one interpolation pass with the current parameters.
func renderGrid(cfg *config.Config, params ViewParams) (*interp.PixelGrid, error) {
	cfg.Interpolation.CrossSection = params.CrossSection
	cfg.Interpolation.SlicePosition = float64(params.SlicePosition)
	cfg.Interpolation.Normalize = params.Normalize
	cfg.Interpolation.Accelerate = params.Accelerate
	cfg.Render.Inclination = float64(params.Inclination)

	opts := cfg.Derived.Options
	opts.CrossSection = params.CrossSection
	opts.SlicePosition = float64(params.SlicePosition)
	opts.Normalize = params.Normalize
	opts.Accelerate = params.Accelerate
	cfg.Derived.Options = opts
	cfg.Derived.Rotated = params.Inclination != 0 || cfg.Render.PositionAngle != 0

	scene, err := render.NewScene(cfg)
	if err != nil {
		return nil, err
	}
	ext, err := scene.Extent()
	if err != nil {
		return nil, err
	}
	return scene.RenderScalar(cfg.Interpolation.Field, ext)
}

func gridMaxValue(g *interp.PixelGrid) float64 {
	max := 0.0
	for _, v := range g.Data {
		if v > max {
			max = v
		}
	}
	return max
}

// updateTexture maps the grid through the active colormap and uploads it.
func updateTexture(texture rl.Texture2D, g *interp.PixelGrid, params ViewParams) {
	cmap, err := render.ColormapByName(colormapNames[params.Colormap])
	if err != nil {
		return
	}
	rng := render.Range{FractionMax: float64(params.FractionMax), Log: params.LogScale}
	norm := rng.Normalizer(g.Data)

	pixels := make([]color.RGBA, g.NX*g.NY)
	for iy := 0; iy < g.NY; iy++ {
		row := g.NY - 1 - iy
		for ix := 0; ix < g.NX; ix++ {
			pixels[row*g.NX+ix] = cmap(norm(g.At(ix, iy)))
		}
	}
	rl.UpdateTexture(texture, pixels)
}
