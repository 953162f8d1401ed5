package interp

import (
	"fmt"
	"math"

	"github.com/pthm-cable/splat/kernel"
)

// Scalar interpolates a scalar field carried by particles onto a pixel grid
// over ext. In projection mode each pixel accumulates the column-integrated
// kernel contribution of every overlapping particle; with
// Options.CrossSection the field is instead sliced at Options.SlicePosition
// using the full 3D kernel. The mass slice is only consulted when fallback
// weights are derived (see Data.Weight); it may be nil otherwise.
func Scalar(d Data, field []float64, ext Extent, opts Options) (*PixelGrid, error) {
	if field == nil {
		return nil, fmt.Errorf("%w: scalar field is nil", ErrAmbiguousField)
	}
	if len(field) != d.N() {
		return nil, fmt.Errorf("interp: len(field) = %d, want %d", len(field), d.N())
	}
	grids, err := run(d, [][]float64{field}, ext, opts)
	if err != nil {
		return nil, err
	}
	return grids[0], nil
}

// Vector interpolates a 2-component vector field carried by particles onto
// two pixel grids (x and y components) over ext. The modes and weighting
// match Scalar; both components share one accumulation pass.
func Vector(d Data, fieldX, fieldY []float64, ext Extent, opts Options) (*PixelGrid, *PixelGrid, error) {
	if fieldX == nil || fieldY == nil {
		return nil, nil, fmt.Errorf("%w: vector components are nil", ErrAmbiguousField)
	}
	if len(fieldX) != d.N() || len(fieldY) != d.N() {
		return nil, nil, fmt.Errorf("interp: vector component lengths (%d, %d), want %d",
			len(fieldX), len(fieldY), d.N())
	}
	grids, err := run(d, [][]float64{fieldX, fieldY}, ext, opts)
	if err != nil {
		return nil, nil, err
	}
	return grids[0], grids[1], nil
}

// run validates inputs, dispatches the accumulation, and applies
// normalisation. fields holds one slice per output component.
func run(d Data, fields [][]float64, ext Extent, opts Options) ([]*PixelGrid, error) {
	if err := ext.Validate(); err != nil {
		return nil, err
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if err := d.validate(opts); err != nil {
		return nil, err
	}

	grids := make([]*PixelGrid, len(fields))
	out := make([][]float64, len(fields))
	for c := range fields {
		grids[c] = NewPixelGrid(opts.NPixX, opts.NPixY, ext)
		out[c] = grids[c].Data
	}
	var norm []float64
	if opts.Normalize {
		norm = make([]float64, opts.NPixX*opts.NPixY)
	}

	acc := &accumulator{
		d:       d,
		weights: d.weights(opts),
		fields:  fields,
		opts:    opts,
		ext:     ext,
		nx:      opts.NPixX,
		ny:      opts.NPixY,
		dx:      ext.Width() / float64(opts.NPixX),
		dy:      ext.Height() / float64(opts.NPixY),
		col:     kernel.DefaultColumn(),
		out:     out,
		norm:    norm,
	}
	accumulate(acc, d.N())

	if opts.Normalize {
		for c := range out {
			for i, w := range norm {
				if w > 0 {
					out[c][i] /= w
				}
			}
		}
	}
	return grids, nil
}

// accumulator holds the per-render state shared by the accumulation loops.
// Workers operate on copies with private out/norm buffers, so add never
// races on shared memory.
type accumulator struct {
	d       Data
	weights []float64
	fields  [][]float64
	opts    Options
	ext     Extent
	nx, ny  int
	dx, dy  float64
	col     *kernel.ColumnTable

	out  [][]float64
	norm []float64
}

// add accumulates the contribution of particle i into the output buffers.
// Particles with non-positive smoothing length carry no kernel support and
// are skipped silently.
func (a *accumulator) add(i int) {
	h := a.d.H[i]
	if h <= 0 {
		return
	}

	support := kernel.Radius * h
	var dz2 float64
	if a.opts.CrossSection {
		dz := a.d.Z[i] - a.opts.SlicePosition
		dz2 = dz * dz
		if dz2 >= support*support {
			return
		}
	}

	x, y := a.d.X[i], a.d.Y[i]
	ixMin := int(math.Floor((x - support - a.ext.XMin) / a.dx))
	ixMax := int(math.Floor((x + support - a.ext.XMin) / a.dx))
	iyMin := int(math.Floor((y - support - a.ext.YMin) / a.dy))
	iyMax := int(math.Floor((y + support - a.ext.YMin) / a.dy))
	if ixMax < 0 || iyMax < 0 || ixMin >= a.nx || iyMin >= a.ny {
		return
	}

	if a.opts.Accelerate {
		a.addSnapped(i, h, dz2)
		return
	}

	ixMin = max(ixMin, 0)
	iyMin = max(iyMin, 0)
	ixMax = min(ixMax, a.nx-1)
	iyMax = min(iyMax, a.ny-1)

	invH2 := 1 / (h * h)
	wPart := a.weights[i]
	for iy := iyMin; iy <= iyMax; iy++ {
		py := a.ext.YMin + (float64(iy)+0.5)*a.dy
		ddy := py - y
		rowBase := iy * a.nx
		for ix := ixMin; ix <= ixMax; ix++ {
			px := a.ext.XMin + (float64(ix)+0.5)*a.dx
			ddx := px - x
			w := a.kernelWeight(ddx*ddx+ddy*ddy, dz2, h, invH2)
			if w == 0 {
				continue
			}
			a.deposit(rowBase+ix, i, w*wPart)
		}
	}
}

// kernelWeight evaluates the kernel factor for a squared in-plane distance
// r2 and squared depth offset dz2: the column-integrated kernel over h^2 in
// projection mode, the full 3D kernel over h^3 for cross-sections.
func (a *accumulator) kernelWeight(r2, dz2, h, invH2 float64) float64 {
	if a.opts.CrossSection {
		q2 := (r2 + dz2) * invH2
		if q2 >= kernel.Radius*kernel.Radius {
			return 0
		}
		return kernel.W(math.Sqrt(q2)) * invH2 / h
	}
	return a.col.Eval(r2*invH2) * invH2
}

// deposit adds one kernel-weighted contribution to every output component
// and to the normalisation buffer.
func (a *accumulator) deposit(idx, i int, wk float64) {
	for c := range a.out {
		a.out[c][idx] += wk * a.fields[c][i]
	}
	if a.norm != nil {
		a.norm[idx] += wk
	}
}

// addSnapped is the accelerated footprint: the particle is treated as if it
// sat exactly on its nearest pixel centre, so kernel values depend only on
// whole-pixel offsets and each evaluation is mirrored across the particle's
// row and column. The approximation shifts each particle by at most half a
// pixel.
func (a *accumulator) addSnapped(i int, h, dz2 float64) {
	cx := int(math.Floor((a.d.X[i] - a.ext.XMin) / a.dx))
	cy := int(math.Floor((a.d.Y[i] - a.ext.YMin) / a.dy))

	support := kernel.Radius * h
	nCols := int(support/a.dx) + 1
	nRows := int(support/a.dy) + 1

	invH2 := 1 / (h * h)
	wPart := a.weights[i]
	for dyi := 0; dyi <= nRows; dyi++ {
		offY := float64(dyi) * a.dy
		anyInRow := false
		for dxi := 0; dxi <= nCols; dxi++ {
			offX := float64(dxi) * a.dx
			w := a.kernelWeight(offX*offX+offY*offY, dz2, h, invH2)
			if w == 0 {
				break // offsets only grow within a row
			}
			anyInRow = true
			wk := w * wPart
			a.depositMirrored(cx, cy, dxi, dyi, i, wk)
		}
		if !anyInRow {
			break
		}
	}
}

// depositMirrored writes one kernel evaluation to the up-to-four pixels at
// (cx +- dxi, cy +- dyi), skipping duplicate axes and out-of-grid pixels.
func (a *accumulator) depositMirrored(cx, cy, dxi, dyi, i int, wk float64) {
	xs := [2]int{cx - dxi, cx + dxi}
	ys := [2]int{cy - dyi, cy + dyi}
	nxs, nys := 2, 2
	if dxi == 0 {
		nxs = 1
	}
	if dyi == 0 {
		nys = 1
	}
	for yi := 0; yi < nys; yi++ {
		iy := ys[yi]
		if iy < 0 || iy >= a.ny {
			continue
		}
		for xi := 0; xi < nxs; xi++ {
			ix := xs[xi]
			if ix < 0 || ix >= a.nx {
				continue
			}
			a.deposit(iy*a.nx+ix, i, wk)
		}
	}
}
