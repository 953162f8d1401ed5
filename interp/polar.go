package interp

import (
	"fmt"
	"math"
)

// ToPolar resamples a Cartesian grid onto a polar grid centred on the
// extent's midpoint, with radius on the x axis (0 to half the extent width)
// and azimuth on the y axis (-pi to pi). This is a plain bilinear image
// warp applied after interpolation, not part of the accumulation itself.
//
// The source extent must be square; otherwise radius and azimuth would not
// share a length scale and the call fails with ErrAsymmetricExtent.
func ToPolar(g *PixelGrid, nr, ntheta int) (*PixelGrid, error) {
	if nr <= 0 || ntheta <= 0 {
		return nil, fmt.Errorf("%w: (%d, %d)", ErrInvalidResolution, nr, ntheta)
	}
	if !g.Extent.Square() {
		return nil, fmt.Errorf("%w: %g x %g",
			ErrAsymmetricExtent, g.Extent.Width(), g.Extent.Height())
	}

	rMax := g.Extent.Width() / 2
	xc := (g.Extent.XMin + g.Extent.XMax) / 2
	yc := (g.Extent.YMin + g.Extent.YMax) / 2

	polar := NewPixelGrid(nr, ntheta, Extent{
		XMin: 0, XMax: rMax,
		YMin: -math.Pi, YMax: math.Pi,
	})
	for it := 0; it < ntheta; it++ {
		theta := polar.Y(it)
		sin, cos := math.Sincos(theta)
		for ir := 0; ir < nr; ir++ {
			r := polar.X(ir)
			v := g.sampleBilinear(xc+r*cos, yc+r*sin)
			polar.Set(ir, it, v)
		}
	}
	return polar, nil
}

// sampleBilinear interpolates the grid at a world-space point between the
// four surrounding pixel centres, clamping at the grid border.
func (g *PixelGrid) sampleBilinear(x, y float64) float64 {
	fx := (x-g.Extent.XMin)/g.PixelWidth() - 0.5
	fy := (y-g.Extent.YMin)/g.PixelHeight() - 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	x0 = clampIndex(x0, g.NX)
	y0 = clampIndex(y0, g.NY)
	x1 := clampIndex(x0+1, g.NX)
	y1 := clampIndex(y0+1, g.NY)

	a := g.At(x0, y0) + (g.At(x1, y0)-g.At(x0, y0))*tx
	b := g.At(x0, y1) + (g.At(x1, y1)-g.At(x0, y1))*tx
	return a + (b-a)*ty
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
