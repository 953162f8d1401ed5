package render

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/splat/interp"
)

// ExtentFromPercentile derives a plot window that contains the central
// `percentile` percent of particles on each axis, padded by edgeFactor times
// the resulting width on every side. A percentile of 99 with edgeFactor 0.05
// gives a window tightly framing the bulk of the particles while keeping a
// 5% margin.
func ExtentFromPercentile(x, y []float64, percentile, edgeFactor float64) (interp.Extent, error) {
	if percentile <= 0 || percentile > 100 {
		return interp.Extent{}, fmt.Errorf("render: percentile %v outside (0, 100]", percentile)
	}
	if len(x) == 0 || len(x) != len(y) {
		return interp.Extent{}, fmt.Errorf("render: extent from %d x and %d y positions", len(x), len(y))
	}
	lo := (100 - percentile) / 2 / 100
	hi := 1 - lo

	xmin, xmax := quantilePair(x, lo, hi)
	ymin, ymax := quantilePair(y, lo, hi)

	if edgeFactor > 0 {
		dx := (xmax - xmin) * edgeFactor
		dy := (ymax - ymin) * edgeFactor
		xmin, xmax = xmin-dx, xmax+dx
		ymin, ymax = ymin-dy, ymax+dy
	}
	ext := interp.Extent{XMin: xmin, XMax: xmax, YMin: ymin, YMax: ymax}
	if err := ext.Validate(); err != nil {
		return interp.Extent{}, err
	}
	return ext, nil
}

func quantilePair(v []float64, lo, hi float64) (float64, float64) {
	sorted := make([]float64, len(v))
	copy(sorted, v)
	sort.Float64s(sorted)
	return stat.Quantile(lo, stat.Empirical, sorted, nil),
		stat.Quantile(hi, stat.Empirical, sorted, nil)
}

// CenterExtent shifts ext so that its midpoint lands on (xc, yc), keeping
// the width and height unchanged. Pass NaN for an axis to leave it alone.
func CenterExtent(ext interp.Extent, xc, yc float64) interp.Extent {
	if !math.IsNaN(xc) {
		half := ext.Width() / 2
		ext.XMin, ext.XMax = xc-half, xc+half
	}
	if !math.IsNaN(yc) {
		half := ext.Height() / 2
		ext.YMin, ext.YMax = yc-half, yc+half
	}
	return ext
}

// SquareExtent grows the shorter axis of ext about its midpoint until the
// window is square, as required by the polar remap.
func SquareExtent(ext interp.Extent) interp.Extent {
	w, h := ext.Width(), ext.Height()
	if w == h {
		return ext
	}
	if w > h {
		mid := (ext.YMin + ext.YMax) / 2
		ext.YMin, ext.YMax = mid-w/2, mid+w/2
	} else {
		mid := (ext.XMin + ext.XMax) / 2
		ext.XMin, ext.XMax = mid-h/2, mid+h/2
	}
	return ext
}
