package particles

import (
	"math"
	"math/rand"
)

// DiscConfig parameterises the synthetic accretion disc used by the demo
// binaries and benchmarks: a power-law surface density profile in Keplerian
// rotation around a unit central mass, vertically Gaussian with a constant
// aspect ratio.
type DiscConfig struct {
	N           int     // particle count
	Seed        int64   // RNG seed
	RIn, ROut   float64 // inner and outer disc radius
	AspectRatio float64 // scale height over radius
	DiscMass    float64 // total disc mass
	HFact       float64 // smoothing length in units of mean spacing
}

// DefaultDiscConfig returns a modest disc suitable for interactive preview.
func DefaultDiscConfig() DiscConfig {
	return DiscConfig{
		N:           50000,
		Seed:        42,
		RIn:         10,
		ROut:        150,
		AspectRatio: 0.05,
		DiscMass:    0.01,
		HFact:       1.2,
	}
}

// NewDisc samples a particle set from cfg. Surface density falls off as 1/R
// (so the sampled radius is uniform in R over [RIn, ROut]), velocities are
// Keplerian for a unit central mass with G=1, and smoothing lengths follow
// the local density through the usual h = hfact (m/rho)^(1/3) relation.
func NewDisc(cfg DiscConfig) *Set {
	rng := rand.New(rand.NewSource(cfg.Seed))
	n := cfg.N
	s := &Set{
		X: make([]float64, n), Y: make([]float64, n), Z: make([]float64, n),
		VX: make([]float64, n), VY: make([]float64, n), VZ: make([]float64, n),
		M: make([]float64, n), H: make([]float64, n),
	}

	mass := cfg.DiscMass / float64(n)
	// Sigma(R) ~ 1/R normalisation so that the surface integral is DiscMass.
	sigma0 := cfg.DiscMass / (2 * math.Pi * (cfg.ROut - cfg.RIn))

	for i := 0; i < n; i++ {
		r := cfg.RIn + rng.Float64()*(cfg.ROut-cfg.RIn)
		phi := 2 * math.Pi * rng.Float64()
		hScale := cfg.AspectRatio * r
		z := rng.NormFloat64() * hScale

		sin, cos := math.Sincos(phi)
		s.X[i] = r * cos
		s.Y[i] = r * sin
		s.Z[i] = z

		vKep := 1 / math.Sqrt(r)
		s.VX[i] = -vKep * sin
		s.VY[i] = vKep * cos
		s.VZ[i] = 0

		s.M[i] = mass

		// Midplane density of a vertically Gaussian disc.
		sigma := sigma0 / r
		rho := sigma / (math.Sqrt(2*math.Pi) * hScale)
		s.H[i] = cfg.HFact * math.Cbrt(mass/rho)
	}
	return s
}
