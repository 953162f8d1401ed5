package interp

import (
	"errors"
	"math"
	"testing"
)

func TestToPolarConstant(t *testing.T) {
	g := NewPixelGrid(64, 64, Extent{-1, 1, -1, 1})
	for i := range g.Data {
		g.Data[i] = 3.7
	}

	polar, err := ToPolar(g, 32, 48)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if polar.NX != 32 || polar.NY != 48 {
		t.Fatalf("polar grid is %dx%d, want 32x48", polar.NX, polar.NY)
	}
	for i, v := range polar.Data {
		if math.Abs(v-3.7) > 1e-12 {
			t.Fatalf("polar pixel %d = %v, want 3.7", i, v)
		}
	}
}

func TestToPolarExtent(t *testing.T) {
	g := NewPixelGrid(16, 16, Extent{-2, 2, -2, 2})
	polar, err := ToPolar(g, 8, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Extent{0, 2, -math.Pi, math.Pi}
	if polar.Extent != want {
		t.Errorf("polar extent = %+v, want %+v", polar.Extent, want)
	}
}

func TestToPolarRadialProfile(t *testing.T) {
	// Fill the Cartesian grid with the distance from the centre; the
	// polar grid's radial axis should then recover that distance for
	// every azimuth.
	g := NewPixelGrid(256, 256, Extent{-1, 1, -1, 1})
	for iy := 0; iy < g.NY; iy++ {
		for ix := 0; ix < g.NX; ix++ {
			g.Set(ix, iy, math.Hypot(g.X(ix), g.Y(iy)))
		}
	}

	polar, err := ToPolar(g, 64, 64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for it := 0; it < polar.NY; it++ {
		for ir := 0; ir < polar.NX; ir++ {
			r := polar.X(ir)
			got := polar.At(ir, it)
			// Bilinear sampling smears by about a source pixel.
			if math.Abs(got-r) > 0.02 {
				t.Fatalf("polar(%d,%d) = %v, want ~%v", ir, it, got, r)
			}
		}
	}
}

func TestToPolarAsymmetricExtent(t *testing.T) {
	g := NewPixelGrid(16, 16, Extent{-2, 2, -1, 1})
	if _, err := ToPolar(g, 8, 8); !errors.Is(err, ErrAsymmetricExtent) {
		t.Errorf("error = %v, want ErrAsymmetricExtent", err)
	}
}

func TestToPolarInvalidResolution(t *testing.T) {
	g := NewPixelGrid(16, 16, Extent{-1, 1, -1, 1})
	for _, dims := range [][2]int{{0, 8}, {8, 0}, {-1, 8}} {
		if _, err := ToPolar(g, dims[0], dims[1]); !errors.Is(err, ErrInvalidResolution) {
			t.Errorf("ToPolar(%v) error = %v, want ErrInvalidResolution", dims, err)
		}
	}
}
