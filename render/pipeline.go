// Package render is the thin presentation layer on top of the interpolation
// engine: particle-side transforms (masking, frame rotation, unit scaling),
// extent selection, colormaps, image encoding, and vector-field subsampling.
//
// The authoritative result of a render is always the full-resolution pixel
// grid produced by the interp package; everything here either prepares its
// inputs or reshapes its output for display.
package render

import (
	"math"

	"github.com/pthm-cable/splat/particles"
)

// Stage is one particle-side transform. Stages never mutate their input;
// they return a new Set (or the input unchanged when they have nothing to
// do).
type Stage func(*particles.Set) *particles.Set

// Pipeline composes stages in the order given. The conventional render
// pipeline is Mask, then Rotate, then ConvertUnits, applied as plain
// function composition so each stage can be tested on its own.
func Pipeline(stages ...Stage) Stage {
	return func(s *particles.Set) *particles.Set {
		for _, stage := range stages {
			s = stage(s)
		}
		return s
	}
}

// Mask keeps only the particles where keep[i] is true.
func Mask(keep []bool) Stage {
	return func(s *particles.Set) *particles.Set {
		out := &particles.Set{}
		filter := func(src []float64) []float64 {
			if src == nil {
				return nil
			}
			dst := make([]float64, 0, len(src))
			for i, v := range src {
				if keep[i] {
					dst = append(dst, v)
				}
			}
			return dst
		}
		out.X, out.Y, out.Z = filter(s.X), filter(s.Y), filter(s.Z)
		out.VX, out.VY, out.VZ = filter(s.VX), filter(s.VY), filter(s.VZ)
		out.M, out.H = filter(s.M), filter(s.H)
		return out
	}
}

// MaskActive drops particles without kernel support (h <= 0).
func MaskActive() Stage {
	return func(s *particles.Set) *particles.Set {
		return Mask(s.Active())(s)
	}
}

// Rotate rotates particle positions and velocities about an arbitrary axis
// through the origin by angle radians, using the Rodrigues rotation formula.
// The axis need not be normalised.
func Rotate(axis [3]float64, angle float64) Stage {
	norm := math.Sqrt(axis[0]*axis[0] + axis[1]*axis[1] + axis[2]*axis[2])
	kx, ky, kz := axis[0]/norm, axis[1]/norm, axis[2]/norm
	sin, cos := math.Sincos(angle)

	rot := func(x, y, z float64) (float64, float64, float64) {
		// v' = v cos + (k x v) sin + k (k.v)(1 - cos)
		dot := kx*x + ky*y + kz*z
		cx := ky*z - kz*y
		cy := kz*x - kx*z
		cz := kx*y - ky*x
		return x*cos + cx*sin + kx*dot*(1-cos),
			y*cos + cy*sin + ky*dot*(1-cos),
			z*cos + cz*sin + kz*dot*(1-cos)
	}

	return func(s *particles.Set) *particles.Set {
		out := cloneSet(s)
		for i := range out.X {
			out.X[i], out.Y[i], out.Z[i] = rot(s.X[i], s.Y[i], s.Z[i])
		}
		if out.VX != nil {
			for i := range out.VX {
				out.VX[i], out.VY[i], out.VZ[i] = rot(s.VX[i], s.VY[i], s.VZ[i])
			}
		}
		return out
	}
}

// Incline builds the rotation for a disc viewed at an inclination, with the
// line of nodes at positionAngle east of north: the rotation axis is
// (cos pa, sin pa, 0) and the rotation angle is the inclination.
func Incline(positionAngle, inclination float64) Stage {
	sin, cos := math.Sincos(positionAngle)
	return Rotate([3]float64{cos, sin, 0}, inclination)
}

// ConvertUnits scales positions, velocities and masses by constant factors,
// for rendering in different unit systems. Factors of 1 leave the slice
// untouched.
func ConvertUnits(length, velocity, mass float64) Stage {
	return func(s *particles.Set) *particles.Set {
		out := cloneSet(s)
		scale := func(dst []float64, f float64) {
			if f == 1 || dst == nil {
				return
			}
			for i := range dst {
				dst[i] *= f
			}
		}
		scale(out.X, length)
		scale(out.Y, length)
		scale(out.Z, length)
		scale(out.H, length)
		scale(out.VX, velocity)
		scale(out.VY, velocity)
		scale(out.VZ, velocity)
		scale(out.M, mass)
		return out
	}
}

func cloneSet(s *particles.Set) *particles.Set {
	cp := func(src []float64) []float64 {
		if src == nil {
			return nil
		}
		dst := make([]float64, len(src))
		copy(dst, src)
		return dst
	}
	return &particles.Set{
		X: cp(s.X), Y: cp(s.Y), Z: cp(s.Z),
		VX: cp(s.VX), VY: cp(s.VY), VZ: cp(s.VZ),
		M: cp(s.M), H: cp(s.H),
	}
}
