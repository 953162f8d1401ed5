package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/splat/interp"
)

// RenderStats holds one row of per-render telemetry.
type RenderStats struct {
	Timestamp string `csv:"timestamp"`
	Field     string `csv:"field"`

	NParticles int `csv:"n_particles"`
	NActive    int `csv:"n_active"`
	NPixX      int `csv:"npix_x"`
	NPixY      int `csv:"npix_y"`

	CrossSection bool `csv:"cross_section"`
	Normalize    bool `csv:"normalize"`
	Accelerate   bool `csv:"accelerate"`

	ElapsedMS float64 `csv:"elapsed_ms"`

	// Grid value distribution at render end
	GridSum  float64 `csv:"grid_sum"`
	GridMin  float64 `csv:"grid_min"`
	GridMax  float64 `csv:"grid_max"`
	GridMean float64 `csv:"grid_mean"`
	GridP10  float64 `csv:"grid_p10"`
	GridP50  float64 `csv:"grid_p50"`
	GridP90  float64 `csv:"grid_p90"`

	NonZeroFrac float64 `csv:"nonzero_frac"`
}

// NewRenderStats summarises a finished render. The grid distribution
// columns are computed over every pixel, including empty ones.
func NewRenderStats(field string, g *interp.PixelGrid, opts interp.Options, nParticles, nActive int, elapsed time.Duration) RenderStats {
	sorted := make([]float64, len(g.Data))
	copy(sorted, g.Data)
	sort.Float64s(sorted)

	nonzero := 0
	for _, v := range g.Data {
		if v != 0 {
			nonzero++
		}
	}

	return RenderStats{
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		Field:        field,
		NParticles:   nParticles,
		NActive:      nActive,
		NPixX:        g.NX,
		NPixY:        g.NY,
		CrossSection: opts.CrossSection,
		Normalize:    opts.Normalize,
		Accelerate:   opts.Accelerate,
		ElapsedMS:    float64(elapsed.Microseconds()) / 1000,
		GridSum:      floats.Sum(g.Data),
		GridMin:      floats.Min(g.Data),
		GridMax:      floats.Max(g.Data),
		GridMean:     stat.Mean(g.Data, nil),
		GridP10:      stat.Quantile(0.1, stat.Empirical, sorted, nil),
		GridP50:      stat.Quantile(0.5, stat.Empirical, sorted, nil),
		GridP90:      stat.Quantile(0.9, stat.Empirical, sorted, nil),
		NonZeroFrac:  float64(nonzero) / float64(len(g.Data)),
	}
}

// Log emits the stats through the structured logger.
func (s RenderStats) Log(log *slog.Logger) {
	log.Info("render complete",
		"field", s.Field,
		"particles", s.NParticles,
		"active", s.NActive,
		"pixels", s.NPixX*s.NPixY,
		"elapsed_ms", s.ElapsedMS,
		"grid_sum", s.GridSum,
		"grid_max", s.GridMax,
		"nonzero_frac", s.NonZeroFrac,
	)
}
