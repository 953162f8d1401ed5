package particles

import (
	"math"
	"testing"
)

func TestDensityFromSmoothingLength(t *testing.T) {
	tests := []struct {
		name  string
		h     float64
		mass  float64
		hfact float64
		want  float64
	}{
		{"unit everything", 1, 1, 1, 1},
		{"hfact cubed", 1, 1, 1.2, 1.2 * 1.2 * 1.2},
		{"scales with inverse h cubed", 2, 1, 1, 0.125},
		{"negative h uses magnitude", -2, 1, 1, 0.125},
		{"zero h is inactive", 0, 1, 1.2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DensityFromSmoothingLength(tt.h, tt.mass, tt.hfact)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("DensityFromSmoothingLength(%v, %v, %v) = %v, want %v",
					tt.h, tt.mass, tt.hfact, got, tt.want)
			}
		})
	}
}

func TestWeights(t *testing.T) {
	s := &Set{
		X: []float64{0, 0}, Y: []float64{0, 0}, Z: []float64{0, 0},
		M: []float64{2, 4},
		H: []float64{0.5, 2},
	}

	w := s.Weights(1.2, false)
	for i, got := range w {
		if math.Abs(got-1/1.2) > 1e-12 {
			t.Errorf("uniform weight[%d] = %v, want %v", i, got, 1/1.2)
		}
	}

	w = s.Weights(1.2, true)
	want := []float64{2 / 0.25, 4 / 4.0}
	for i, got := range w {
		if math.Abs(got-want[i]) > 1e-12 {
			t.Errorf("density weight[%d] = %v, want %v", i, got, want[i])
		}
	}
}

func TestActive(t *testing.T) {
	s := &Set{
		X: []float64{0, 0, 0}, Y: []float64{0, 0, 0}, Z: []float64{0, 0, 0},
		H: []float64{1, 0, -3},
	}
	got := s.Active()
	want := []bool{true, false, false}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Active()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestOrbitalQuantities(t *testing.T) {
	// One particle on the x axis moving in +y: pure circular motion.
	s := &Set{
		X: []float64{3}, Y: []float64{0}, Z: []float64{0},
		VX: []float64{0}, VY: []float64{2}, VZ: []float64{0},
		M: []float64{1.5}, H: []float64{1},
	}

	if r := s.RadialDistance()[0]; math.Abs(r-3) > 1e-12 {
		t.Errorf("radial distance = %v, want 3", r)
	}
	if phi := s.AzimuthalAngle()[0]; math.Abs(phi) > 1e-12 {
		t.Errorf("azimuthal angle = %v, want 0", phi)
	}
	if vr := s.RadialVelocity()[0]; math.Abs(vr) > 1e-12 {
		t.Errorf("radial velocity = %v, want 0", vr)
	}
	if om := s.AngularVelocity()[0]; math.Abs(om-2.0/3.0) > 1e-12 {
		t.Errorf("angular velocity = %v, want %v", om, 2.0/3.0)
	}

	_, _, lz := s.AngularMomentum()
	if math.Abs(lz-1.5*3*2) > 1e-12 {
		t.Errorf("Lz = %v, want 9", lz)
	}
	if e := s.KineticEnergy(); math.Abs(e-0.5*1.5*4) > 1e-12 {
		t.Errorf("kinetic energy = %v, want 3", e)
	}
}

func TestNewDisc(t *testing.T) {
	cfg := DefaultDiscConfig()
	cfg.N = 5000
	s := NewDisc(cfg)

	if s.N() != cfg.N {
		t.Fatalf("N = %d, want %d", s.N(), cfg.N)
	}

	if m := s.TotalMass(); math.Abs(m-cfg.DiscMass) > 1e-9 {
		t.Errorf("total mass = %v, want %v", m, cfg.DiscMass)
	}

	radii := s.RadialDistance()
	for i, r := range radii {
		if r < cfg.RIn-1e-9 || r > cfg.ROut+1e-9 {
			t.Fatalf("particle %d at radius %v outside [%v, %v]", i, r, cfg.RIn, cfg.ROut)
		}
		if s.H[i] <= 0 {
			t.Fatalf("particle %d has non-positive smoothing length %v", i, s.H[i])
		}
	}

	// The disc rotates in +z: total angular momentum must be dominated by
	// a positive z component.
	lx, ly, lz := s.AngularMomentum()
	if lz <= 0 {
		t.Errorf("Lz = %v, want > 0 for a prograde disc", lz)
	}
	if math.Abs(lx) > lz/10 || math.Abs(ly) > lz/10 {
		t.Errorf("in-plane angular momentum too large: (%v, %v) vs Lz %v", lx, ly, lz)
	}

	// Deterministic for a fixed seed.
	again := NewDisc(cfg)
	for i := 0; i < 10; i++ {
		if s.X[i] != again.X[i] || s.VY[i] != again.VY[i] {
			t.Fatal("NewDisc is not deterministic for a fixed seed")
		}
	}
}
