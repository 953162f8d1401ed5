package render

import (
	"fmt"
	"image/color"
	"math"
)

// Colormap maps a normalised intensity in [0, 1] to a colour. Inputs
// outside the range are clamped.
type Colormap func(t float64) color.RGBA

// gradient interpolates linearly through evenly spaced stops.
func gradient(stops ...color.RGBA) Colormap {
	n := len(stops)
	return func(t float64) color.RGBA {
		t = clamp01(t)
		f := t * float64(n-1)
		i := int(f)
		if i >= n-1 {
			return stops[n-1]
		}
		frac := f - float64(i)
		a, b := stops[i], stops[i+1]
		return color.RGBA{
			R: lerpByte(a.R, b.R, frac),
			G: lerpByte(a.G, b.G, frac),
			B: lerpByte(a.B, b.B, frac),
			A: 255,
		}
	}
}

// Heat runs black, red, yellow, white.
var Heat = gradient(
	color.RGBA{0, 0, 0, 255},
	color.RGBA{200, 30, 0, 255},
	color.RGBA{255, 210, 40, 255},
	color.RGBA{255, 255, 255, 255},
)

// Ice runs black, deep blue, cyan, white.
var Ice = gradient(
	color.RGBA{0, 0, 0, 255},
	color.RGBA{20, 40, 140, 255},
	color.RGBA{60, 190, 230, 255},
	color.RGBA{255, 255, 255, 255},
)

// Gray is a plain linear grayscale ramp.
var Gray = gradient(
	color.RGBA{0, 0, 0, 255},
	color.RGBA{255, 255, 255, 255},
)

// ColormapByName resolves a colormap by its config name.
func ColormapByName(name string) (Colormap, error) {
	switch name {
	case "heat":
		return Heat, nil
	case "ice":
		return Ice, nil
	case "gray", "grey":
		return Gray, nil
	default:
		return nil, fmt.Errorf("render: unknown colormap %q", name)
	}
}

func lerpByte(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func clamp01(t float64) float64 {
	if t < 0 || math.IsNaN(t) {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
