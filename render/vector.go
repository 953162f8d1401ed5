package render

import (
	"fmt"
	"math"

	"github.com/pthm-cable/splat/interp"
)

// Arrow is one quiver-plot sample: an anchor position in physical
// coordinates and the vector components there.
type Arrow struct {
	X, Y float64
	U, V float64
}

// Subsample picks every stride-th pixel from a pair of component grids and
// returns the arrows at those pixel centres. Pixels where both components
// are zero are skipped. The two grids must share resolution and extent.
func Subsample(gx, gy *interp.PixelGrid, stride int) ([]Arrow, error) {
	if stride < 1 {
		return nil, fmt.Errorf("render: vector stride %d < 1", stride)
	}
	if gx.NX != gy.NX || gx.NY != gy.NY || gx.Extent != gy.Extent {
		return nil, fmt.Errorf("render: component grids differ: %dx%d vs %dx%d",
			gx.NX, gx.NY, gy.NX, gy.NY)
	}
	// Offset so arrows sit centred within the grid rather than hugging the
	// low edges.
	off := stride / 2
	arrows := make([]Arrow, 0, (gx.NX/stride+1)*(gx.NY/stride+1))
	for iy := off; iy < gx.NY; iy += stride {
		for ix := off; ix < gx.NX; ix += stride {
			u, v := gx.At(ix, iy), gy.At(ix, iy)
			if u == 0 && v == 0 {
				continue
			}
			arrows = append(arrows, Arrow{X: gx.X(ix), Y: gx.Y(iy), U: u, V: v})
		}
	}
	return arrows, nil
}

// MaxMagnitude returns the largest arrow length, for scaling quiver glyphs.
func MaxMagnitude(arrows []Arrow) float64 {
	var max float64
	for _, a := range arrows {
		if m := math.Hypot(a.U, a.V); m > max {
			max = m
		}
	}
	return max
}
