package kernel

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/integrate/quad"
)

// ColumnSamples is the number of lookup table entries for the
// column-integrated kernel. The table is indexed by q^2 so the projection
// inner loop avoids a square root per pixel.
const ColumnSamples = 1000

// ColumnTable caches the kernel integrated along the line of sight,
// F(q) = integral of W(sqrt(q^2 + u^2)) du over the support, as a uniform
// lookup table in q^2 over [0, Radius^2]. The full column weight at
// projected distance rxy is Eval((rxy/h)^2) / h^2.
type ColumnTable struct {
	dq2  float64
	vals []float64
}

// NewColumnTable builds a column-integral table with n samples using
// fixed-order Gauss-Legendre quadrature for each entry.
func NewColumnTable(n int) *ColumnTable {
	if n < 2 {
		n = 2
	}
	t := &ColumnTable{
		dq2:  Radius * Radius / float64(n-1),
		vals: make([]float64, n),
	}
	for i := range t.vals {
		q2 := float64(i) * t.dq2
		t.vals[i] = columnIntegral(q2)
	}
	// Exact zero at the support edge so lookups never extrapolate upward.
	t.vals[n-1] = 0
	return t
}

// columnIntegral evaluates F(q) = 2 * int_0^zmax W(sqrt(q^2+u^2)) du with
// zmax^2 = Radius^2 - q^2.
func columnIntegral(q2 float64) float64 {
	zmax2 := Radius*Radius - q2
	if zmax2 <= 0 {
		return 0
	}
	zmax := math.Sqrt(zmax2)
	f := func(u float64) float64 {
		return W(math.Sqrt(q2 + u*u))
	}
	return 2 * quad.Fixed(f, 0, zmax, 64, quad.Legendre{}, 1)
}

// Eval returns the dimensionless column-integrated kernel at squared
// normalised distance q2 = (rxy/h)^2, interpolating linearly between table
// samples. It returns 0 outside the kernel support.
func (t *ColumnTable) Eval(q2 float64) float64 {
	if q2 < 0 || q2 >= Radius*Radius {
		return 0
	}
	p := q2 / t.dq2
	i := int(p)
	if i >= len(t.vals)-1 {
		return 0
	}
	frac := p - float64(i)
	return t.vals[i] + (t.vals[i+1]-t.vals[i])*frac
}

var (
	defaultColumn     *ColumnTable
	defaultColumnOnce sync.Once
)

// DefaultColumn returns the process-wide column table, building it on first
// use. The table depends only on the kernel shape, so one instance serves
// every render.
func DefaultColumn() *ColumnTable {
	defaultColumnOnce.Do(func() {
		defaultColumn = NewColumnTable(ColumnSamples)
	})
	return defaultColumn
}
