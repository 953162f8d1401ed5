// Package kernel evaluates the SPH smoothing kernel and its
// column-integrated form.
//
// The kernel is the M4 cubic spline with compact support of radius 2h,
// normalised so that its volume integral in 3D equals one. W is continuous
// with continuous first derivative at q=1 and goes to zero with zero slope
// at q=2.
package kernel

import (
	"errors"
	"math"
)

// Radius is the kernel support radius in units of the smoothing length.
// Particles contribute nothing beyond Radius*h from their centre.
const Radius = 2.0

// ErrInvalidSmoothingLength reports a non-positive smoothing length.
// Interpolation loops filter such particles before evaluating the kernel;
// this error exists for callers that evaluate the kernel directly.
var ErrInvalidSmoothingLength = errors.New("kernel: smoothing length must be positive")

// sigma3 is the 3D normalisation constant of the M4 cubic spline.
const sigma3 = 1.0 / math.Pi

// W returns the dimensionless cubic spline weight w(q) for the normalised
// distance q = r/h, including the 3D normalisation constant. The full kernel
// value is W(q)/h^3.
func W(q float64) float64 {
	switch {
	case q < 0:
		return 0
	case q < 1:
		return sigma3 * (1 - 1.5*q*q + 0.75*q*q*q)
	case q < Radius:
		s := Radius - q
		return sigma3 * 0.25 * s * s * s
	default:
		return 0
	}
}

// Value returns the kernel value W(r/h)/h^3 at distance r from a particle
// with smoothing length h. It returns ErrInvalidSmoothingLength for h <= 0.
func Value(r, h float64) (float64, error) {
	if h <= 0 {
		return 0, ErrInvalidSmoothingLength
	}
	return W(r/h) / (h * h * h), nil
}
