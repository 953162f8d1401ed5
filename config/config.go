// Package config provides configuration loading and access for the renderer.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/splat/interp"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all renderer configuration parameters.
type Config struct {
	Source        SourceConfig        `yaml:"source"`
	Interpolation InterpolationConfig `yaml:"interpolation"`
	Extent        ExtentConfig        `yaml:"extent"`
	Render        RenderConfig        `yaml:"render"`
	Vector        VectorConfig        `yaml:"vector"`
	Polar         PolarConfig         `yaml:"polar"`
	Output        OutputConfig        `yaml:"output"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// SourceConfig selects the particle source. The built-in disc generator is
// used when no snapshot path is given.
type SourceConfig struct {
	Snapshot    string  `yaml:"snapshot"`     // CSV snapshot path ("" = generate a disc)
	Number      int     `yaml:"number"`       // generated particle count
	Seed        int64   `yaml:"seed"`         // generator seed
	InnerRadius float64 `yaml:"inner_radius"` // disc inner edge
	OuterRadius float64 `yaml:"outer_radius"` // disc outer edge
	AspectRatio float64 `yaml:"aspect_ratio"` // H/R at the reference radius
	DiscMass    float64 `yaml:"disc_mass"`    // total disc mass
	HFact       float64 `yaml:"hfact"`        // smoothing length factor
}

// InterpolationConfig holds the core interpolation switches.
type InterpolationConfig struct {
	Field         string  `yaml:"field"`          // scalar field name ("" allowed when vector field set)
	VectorField   string  `yaml:"vector_field"`   // vector field name ("" = scalar render)
	NumPixelsX    int     `yaml:"num_pixels_x"`
	NumPixelsY    int     `yaml:"num_pixels_y"`
	CrossSection  bool    `yaml:"cross_section"`  // slice instead of column projection
	SlicePosition float64 `yaml:"slice_position"` // z of the cross-section plane
	Normalize     bool    `yaml:"normalize"`      // divide by interpolated weight field
	Accelerate    bool    `yaml:"accelerate"`     // pixel-snapped approximate kernel
	DensityWeight bool    `yaml:"density_weight"` // weight by mass/h^2 instead of 1/hfact
}

// ExtentConfig selects the plot window. When Percentile is non-zero the
// window is derived from the particle distribution and the explicit bounds
// are ignored.
type ExtentConfig struct {
	XMin       float64 `yaml:"x_min"`
	XMax       float64 `yaml:"x_max"`
	YMin       float64 `yaml:"y_min"`
	YMax       float64 `yaml:"y_max"`
	Percentile float64 `yaml:"percentile"`  // 0 = use explicit bounds
	EdgeFactor float64 `yaml:"edge_factor"` // fractional padding for percentile extents
}

// RenderConfig holds presentation parameters.
type RenderConfig struct {
	Colormap      string  `yaml:"colormap"`
	Log           bool    `yaml:"log"`
	VMin          float64 `yaml:"vmin"`
	VMax          float64 `yaml:"vmax"`
	FractionMax   float64 `yaml:"fraction_max"`
	PositionAngle float64 `yaml:"position_angle"` // radians
	Inclination   float64 `yaml:"inclination"`    // radians
	UnitLength    float64 `yaml:"unit_length"`
	UnitVelocity  float64 `yaml:"unit_velocity"`
	UnitMass      float64 `yaml:"unit_mass"`
}

// VectorConfig holds quiver overlay parameters.
type VectorConfig struct {
	Stride int `yaml:"stride"` // sample every n-th pixel
}

// PolarConfig holds polar remap parameters.
type PolarConfig struct {
	Enabled   bool `yaml:"enabled"`
	NumRadial int  `yaml:"num_radial"`
	NumTheta  int  `yaml:"num_theta"`
}

// OutputConfig holds output destinations.
type OutputConfig struct {
	Dir   string `yaml:"dir"`   // telemetry directory ("" = disabled)
	Image string `yaml:"image"` // PNG path
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Options interp.Options // interpolation options assembled from the groups
	Rotated bool           // true when a viewing rotation is configured
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects selections the render pipeline cannot resolve.
func (c *Config) validate() error {
	i := c.Interpolation
	if i.Field != "" && i.VectorField != "" {
		return fmt.Errorf("config: field %q and vector_field %q both set: %w",
			i.Field, i.VectorField, interp.ErrAmbiguousField)
	}
	if i.Field == "" && i.VectorField == "" {
		return fmt.Errorf("config: neither field nor vector_field set: %w",
			interp.ErrAmbiguousField)
	}
	if i.NumPixelsX < 1 || i.NumPixelsY < 1 {
		return fmt.Errorf("config: %dx%d pixels: %w",
			i.NumPixelsX, i.NumPixelsY, interp.ErrInvalidResolution)
	}
	if c.Vector.Stride < 1 {
		return fmt.Errorf("config: vector stride %d < 1", c.Vector.Stride)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Options = interp.Options{
		NPixX:           c.Interpolation.NumPixelsX,
		NPixY:           c.Interpolation.NumPixelsY,
		CrossSection:    c.Interpolation.CrossSection,
		SlicePosition:   c.Interpolation.SlicePosition,
		Normalize:       c.Interpolation.Normalize,
		Accelerate:      c.Interpolation.Accelerate,
		DensityWeighted: c.Interpolation.DensityWeight,
	}
	c.Derived.Rotated = c.Render.Inclination != 0 || c.Render.PositionAngle != 0
}

// ExplicitExtent returns the configured fixed window.
func (c *Config) ExplicitExtent() interp.Extent {
	return interp.Extent{
		XMin: c.Extent.XMin, XMax: c.Extent.XMax,
		YMin: c.Extent.YMin, YMax: c.Extent.YMax,
	}
}

// UsePercentileExtent reports whether the window should be derived from the
// particle distribution.
func (c *Config) UsePercentileExtent() bool {
	return c.Extent.Percentile > 0 && !math.IsNaN(c.Extent.Percentile)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
