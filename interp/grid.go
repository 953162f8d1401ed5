// Package interp rasterises fields carried by SPH particles onto uniform
// pixel grids.
//
// Two entry points cover the two field kinds: Scalar produces one grid,
// Vector produces one grid per component. Both support column-integrated
// projection and cross-section slices, optional normalisation, and an
// accelerated approximate path. The interpolation itself is a pure batch
// computation: inputs are never mutated and the returned grids are owned by
// the caller.
package interp

import (
	"fmt"
)

// Extent is the axis-aligned world-space rectangle covered by a pixel grid.
type Extent struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Validate reports ErrInvalidExtent for degenerate or inverted ranges.
func (e Extent) Validate() error {
	if e.XMin >= e.XMax || e.YMin >= e.YMax {
		return fmt.Errorf("%w: (%g, %g, %g, %g)",
			ErrInvalidExtent, e.XMin, e.XMax, e.YMin, e.YMax)
	}
	return nil
}

// Width returns the x range of the extent.
func (e Extent) Width() float64 { return e.XMax - e.XMin }

// Height returns the y range of the extent.
func (e Extent) Height() float64 { return e.YMax - e.YMin }

// Square reports whether the extent covers equal x and y ranges.
func (e Extent) Square() bool {
	const rel = 1e-12
	w, h := e.Width(), e.Height()
	d := w - h
	if d < 0 {
		d = -d
	}
	return d <= rel*w
}

// PixelGrid is a dense row-major grid of interpolated values over an extent.
// Data[iy*NX+ix] holds the value at pixel column ix, row iy. Pixel centres
// sit at the midpoint of each cell.
type PixelGrid struct {
	NX, NY int
	Extent Extent
	Data   []float64
}

// NewPixelGrid allocates a zeroed grid of nx by ny pixels over ext.
func NewPixelGrid(nx, ny int, ext Extent) *PixelGrid {
	return &PixelGrid{
		NX:     nx,
		NY:     ny,
		Extent: ext,
		Data:   make([]float64, nx*ny),
	}
}

// At returns the value at pixel (ix, iy).
func (g *PixelGrid) At(ix, iy int) float64 { return g.Data[iy*g.NX+ix] }

// Set stores v at pixel (ix, iy).
func (g *PixelGrid) Set(ix, iy int, v float64) { g.Data[iy*g.NX+ix] = v }

// PixelWidth returns the world-space width of one pixel.
func (g *PixelGrid) PixelWidth() float64 { return g.Extent.Width() / float64(g.NX) }

// PixelHeight returns the world-space height of one pixel.
func (g *PixelGrid) PixelHeight() float64 { return g.Extent.Height() / float64(g.NY) }

// X returns the world-space x coordinate of the centre of pixel column ix.
func (g *PixelGrid) X(ix int) float64 {
	return g.Extent.XMin + (float64(ix)+0.5)*g.PixelWidth()
}

// Y returns the world-space y coordinate of the centre of pixel row iy.
func (g *PixelGrid) Y(iy int) float64 {
	return g.Extent.YMin + (float64(iy)+0.5)*g.PixelHeight()
}
