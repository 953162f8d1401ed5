package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/splat/interp"
)

// Range controls how grid values map to the [0, 1] colormap domain.
//
// A zero Range autoscales linearly between the grid minimum and maximum.
// FractionMax, when set, overrides Max with that fraction of the grid
// maximum. Log switches to a log10 mapping; non-positive values then clamp
// to the bottom of the scale.
type Range struct {
	Min         float64
	Max         float64
	FractionMax float64
	Log         bool
}

// resolve fills in the unset bounds from the grid data.
func (r Range) resolve(data []float64) (lo, hi float64) {
	lo, hi = r.Min, r.Max
	gmax := floats.Max(data)
	if r.FractionMax > 0 {
		hi = gmax * r.FractionMax
	} else if hi == 0 {
		hi = gmax
	}
	if lo == 0 && !r.Log {
		lo = floats.Min(data)
	}
	if r.Log {
		if lo <= 0 {
			// Pick a floor three decades below the ceiling so empty pixels
			// render dark instead of collapsing the scale.
			lo = hi * 1e-3
		}
		lo, hi = math.Log10(lo), math.Log10(hi)
	}
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

// Normalizer returns the value-to-intensity mapping for data under r.
func (r Range) Normalizer(data []float64) func(float64) float64 {
	lo, hi := r.resolve(data)
	inv := 1 / (hi - lo)
	if r.Log {
		return func(v float64) float64 {
			if v <= 0 {
				return 0
			}
			return clamp01((math.Log10(v) - lo) * inv)
		}
	}
	return func(v float64) float64 {
		return clamp01((v - lo) * inv)
	}
}

// Image renders a pixel grid to an image with the given colormap and range.
// Grid row 0 is the bottom of the physical window, so rows are flipped into
// the image's top-left origin.
func Image(g *interp.PixelGrid, cmap Colormap, rng Range) *image.NRGBA {
	norm := rng.Normalizer(g.Data)
	img := image.NewNRGBA(image.Rect(0, 0, g.NX, g.NY))
	for iy := 0; iy < g.NY; iy++ {
		row := g.NY - 1 - iy
		for ix := 0; ix < g.NX; ix++ {
			c := cmap(norm(g.At(ix, iy)))
			img.SetNRGBA(ix, row, color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A})
		}
	}
	return img
}

// WritePNG renders the grid and writes it to path.
func WritePNG(path string, g *interp.PixelGrid, cmap Colormap, rng Range) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, Image(g, cmap, rng)); err != nil {
		return fmt.Errorf("render: encode %s: %w", path, err)
	}
	return f.Close()
}
