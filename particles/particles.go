// Package particles holds SPH particle quantities as plain parallel slices
// and derives secondary quantities from them: densities, interpolation
// weights, and the orbital diagnostics used when inspecting discs.
//
// The package owns no file format; callers fill a Set from whatever source
// they have and hand slices on to the interpolation engine.
package particles

import (
	"math"
)

// Set is a collection of particles as parallel slices. X, Y, Z, H and M must
// share a length; VX, VY, VZ are optional and, when present, share it too.
type Set struct {
	X, Y, Z    []float64
	VX, VY, VZ []float64
	M          []float64
	H          []float64
}

// N returns the particle count.
func (s *Set) N() int { return len(s.X) }

// Active reports which particles carry kernel support. Particles with
// non-positive smoothing length are accreted or sink-like and take no part
// in interpolation.
func (s *Set) Active() []bool {
	active := make([]bool, s.N())
	for i, h := range s.H {
		active[i] = h > 0
	}
	return active
}

// Density computes per-particle densities from mass and smoothing length:
// rho = m (hfact/|h|)^3, the standard SPH relation between resolution scale
// and mass density.
func (s *Set) Density(hfact float64) []float64 {
	rho := make([]float64, s.N())
	for i := range rho {
		h := math.Abs(s.H[i])
		if h == 0 {
			continue
		}
		f := hfact / h
		rho[i] = s.M[i] * f * f * f
	}
	return rho
}

// Weights derives the interpolation weights handed to the engine:
// m/h^2 for density-weighted rendering, uniform 1/hfact otherwise.
func (s *Set) Weights(hfact float64, densityWeighted bool) []float64 {
	w := make([]float64, s.N())
	if !densityWeighted {
		for i := range w {
			w[i] = 1 / hfact
		}
		return w
	}
	for i := range w {
		h := s.H[i]
		if h > 0 {
			w[i] = s.M[i] / (h * h)
		}
	}
	return w
}

// RadialDistance returns the cylindrical radius of each particle.
func (s *Set) RadialDistance() []float64 {
	r := make([]float64, s.N())
	for i := range r {
		r[i] = math.Hypot(s.X[i], s.Y[i])
	}
	return r
}

// AzimuthalAngle returns the azimuthal angle of each particle in (-pi, pi].
func (s *Set) AzimuthalAngle() []float64 {
	phi := make([]float64, s.N())
	for i := range phi {
		phi[i] = math.Atan2(s.Y[i], s.X[i])
	}
	return phi
}

// RadialVelocity returns the cylindrical radial velocity of each particle.
// Particles at the origin have no defined radial direction and get zero.
func (s *Set) RadialVelocity() []float64 {
	vr := make([]float64, s.N())
	for i := range vr {
		r := math.Hypot(s.X[i], s.Y[i])
		if r == 0 {
			continue
		}
		vr[i] = (s.X[i]*s.VX[i] + s.Y[i]*s.VY[i]) / r
	}
	return vr
}

// AngularVelocity returns the angular velocity dphi/dt of each particle
// about the z axis.
func (s *Set) AngularVelocity() []float64 {
	om := make([]float64, s.N())
	for i := range om {
		r2 := s.X[i]*s.X[i] + s.Y[i]*s.Y[i]
		if r2 == 0 {
			continue
		}
		om[i] = (s.X[i]*s.VY[i] - s.Y[i]*s.VX[i]) / r2
	}
	return om
}

// Momentum returns the total linear momentum of the set.
func (s *Set) Momentum() (px, py, pz float64) {
	for i := range s.X {
		px += s.M[i] * s.VX[i]
		py += s.M[i] * s.VY[i]
		pz += s.M[i] * s.VZ[i]
	}
	return px, py, pz
}

// AngularMomentum returns the total angular momentum of the set about the
// origin.
func (s *Set) AngularMomentum() (lx, ly, lz float64) {
	for i := range s.X {
		m := s.M[i]
		lx += m * (s.Y[i]*s.VZ[i] - s.Z[i]*s.VY[i])
		ly += m * (s.Z[i]*s.VX[i] - s.X[i]*s.VZ[i])
		lz += m * (s.X[i]*s.VY[i] - s.Y[i]*s.VX[i])
	}
	return lx, ly, lz
}

// KineticEnergy returns the total kinetic energy of the set.
func (s *Set) KineticEnergy() float64 {
	var e float64
	for i := range s.X {
		v2 := s.VX[i]*s.VX[i] + s.VY[i]*s.VY[i] + s.VZ[i]*s.VZ[i]
		e += 0.5 * s.M[i] * v2
	}
	return e
}

// TotalMass returns the summed particle mass.
func (s *Set) TotalMass() float64 {
	var m float64
	for _, mi := range s.M {
		m += mi
	}
	return m
}

// DensityFromSmoothingLength is the scalar form of Set.Density.
func DensityFromSmoothingLength(h, mass, hfact float64) float64 {
	h = math.Abs(h)
	if h == 0 {
		return 0
	}
	f := hfact / h
	return mass * f * f * f
}
