package render

import (
	"math"
	"testing"

	"github.com/pthm-cable/splat/interp"
	"github.com/pthm-cable/splat/particles"
)

func testSet() *particles.Set {
	return &particles.Set{
		X:  []float64{1, 2, 3},
		Y:  []float64{0, 1, -1},
		Z:  []float64{0, 0, 2},
		VX: []float64{0, 1, 0},
		VY: []float64{1, 0, 0},
		VZ: []float64{0, 0, -1},
		M:  []float64{0.5, 0.5, 0.5},
		H:  []float64{0.1, 0.1, 0},
	}
}

func TestMask(t *testing.T) {
	s := testSet()
	out := Mask([]bool{true, false, true})(s)
	if out.N() != 2 {
		t.Fatalf("masked set has %d particles, want 2", out.N())
	}
	if out.X[1] != 3 || out.Y[1] != -1 {
		t.Errorf("second kept particle = (%v, %v), want (3, -1)", out.X[1], out.Y[1])
	}
	if s.N() != 3 {
		t.Error("mask mutated its input")
	}
}

func TestMaskActive(t *testing.T) {
	out := MaskActive()(testSet())
	if out.N() != 2 {
		t.Fatalf("active set has %d particles, want 2", out.N())
	}
	for _, h := range out.H {
		if h <= 0 {
			t.Errorf("inactive particle with h=%v survived", h)
		}
	}
}

func TestRotateAboutZ(t *testing.T) {
	s := &particles.Set{
		X: []float64{1}, Y: []float64{0}, Z: []float64{0},
		VX: []float64{0}, VY: []float64{1}, VZ: []float64{0},
	}
	out := Rotate([3]float64{0, 0, 1}, math.Pi/2)(s)
	if math.Abs(out.X[0]) > 1e-12 || math.Abs(out.Y[0]-1) > 1e-12 {
		t.Errorf("rotated position = (%v, %v), want (0, 1)", out.X[0], out.Y[0])
	}
	if math.Abs(out.VX[0]+1) > 1e-12 || math.Abs(out.VY[0]) > 1e-12 {
		t.Errorf("rotated velocity = (%v, %v), want (-1, 0)", out.VX[0], out.VY[0])
	}
	if s.X[0] != 1 {
		t.Error("rotate mutated its input")
	}
}

func TestRotatePreservesNorm(t *testing.T) {
	s := testSet()
	out := Rotate([3]float64{1, 2, 3}, 0.7)(s)
	for i := range s.X {
		before := s.X[i]*s.X[i] + s.Y[i]*s.Y[i] + s.Z[i]*s.Z[i]
		after := out.X[i]*out.X[i] + out.Y[i]*out.Y[i] + out.Z[i]*out.Z[i]
		if math.Abs(before-after) > 1e-12 {
			t.Errorf("particle %d: |r|^2 changed from %v to %v", i, before, after)
		}
	}
}

func TestInclineFaceOnIsIdentity(t *testing.T) {
	s := testSet()
	out := Incline(0.3, 0)(s)
	for i := range s.X {
		if out.X[i] != s.X[i] || out.Y[i] != s.Y[i] || out.Z[i] != s.Z[i] {
			t.Fatalf("zero inclination moved particle %d", i)
		}
	}
}

func TestConvertUnits(t *testing.T) {
	s := testSet()
	out := ConvertUnits(10, 2, 0.5)(s)
	if out.X[0] != 10 || out.H[0] != 1 {
		t.Errorf("length scaling: X[0]=%v H[0]=%v, want 10, 1", out.X[0], out.H[0])
	}
	if out.VY[0] != 2 {
		t.Errorf("velocity scaling: VY[0]=%v, want 2", out.VY[0])
	}
	if out.M[0] != 0.25 {
		t.Errorf("mass scaling: M[0]=%v, want 0.25", out.M[0])
	}
	if s.X[0] != 1 {
		t.Error("convert mutated its input")
	}
}

func TestPipelineOrder(t *testing.T) {
	s := testSet()
	p := Pipeline(Mask([]bool{true, true, false}), ConvertUnits(2, 1, 1))
	out := p(s)
	if out.N() != 2 {
		t.Fatalf("pipeline output has %d particles, want 2", out.N())
	}
	if out.X[0] != 2 || out.X[1] != 4 {
		t.Errorf("pipeline X = %v, want [2 4]", out.X)
	}
}

func TestExtentFromPercentile(t *testing.T) {
	n := 1001
	x := make([]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = float64(i) / float64(n-1) * 100 // 0..100
		y[i] = x[i] - 50                       // -50..50
	}
	ext, err := ExtentFromPercentile(x, y, 90, 0)
	if err != nil {
		t.Fatal(err)
	}
	if ext.XMin < 4 || ext.XMin > 6 || ext.XMax < 94 || ext.XMax > 96 {
		t.Errorf("x extent [%v, %v], want about [5, 95]", ext.XMin, ext.XMax)
	}
	if ext.YMin < -46 || ext.YMin > -44 {
		t.Errorf("YMin = %v, want about -45", ext.YMin)
	}

	padded, err := ExtentFromPercentile(x, y, 90, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if padded.Width() <= ext.Width() {
		t.Errorf("edge factor did not widen extent: %v <= %v", padded.Width(), ext.Width())
	}
}

func TestExtentFromPercentileErrors(t *testing.T) {
	if _, err := ExtentFromPercentile([]float64{1}, []float64{1}, 0, 0); err == nil {
		t.Error("percentile 0 accepted")
	}
	if _, err := ExtentFromPercentile(nil, nil, 99, 0); err == nil {
		t.Error("empty input accepted")
	}
}

func TestCenterExtent(t *testing.T) {
	ext := interp.Extent{XMin: 0, XMax: 10, YMin: 0, YMax: 4}
	got := CenterExtent(ext, 0, math.NaN())
	if got.XMin != -5 || got.XMax != 5 {
		t.Errorf("x centered = [%v, %v], want [-5, 5]", got.XMin, got.XMax)
	}
	if got.YMin != 0 || got.YMax != 4 {
		t.Errorf("y changed despite NaN center: [%v, %v]", got.YMin, got.YMax)
	}
}

func TestSquareExtent(t *testing.T) {
	ext := SquareExtent(interp.Extent{XMin: -10, XMax: 10, YMin: -2, YMax: 2})
	if ext.Width() != ext.Height() {
		t.Fatalf("not square: %v x %v", ext.Width(), ext.Height())
	}
	if ext.YMin != -10 || ext.YMax != 10 {
		t.Errorf("y grown to [%v, %v], want [-10, 10]", ext.YMin, ext.YMax)
	}
}
