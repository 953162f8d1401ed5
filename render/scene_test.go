package render

import (
	"errors"
	"testing"

	"github.com/pthm-cable/splat/config"
	"github.com/pthm-cable/splat/interp"
)

func sceneConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Source.Number = 2000
	cfg.Interpolation.NumPixelsX = 64
	cfg.Interpolation.NumPixelsY = 64
	cfg.Derived.Options.NPixX = 64
	cfg.Derived.Options.NPixY = 64
	return cfg
}

func TestSceneRenderScalar(t *testing.T) {
	s, err := NewScene(sceneConfig(t))
	if err != nil {
		t.Fatal(err)
	}
	ext, err := s.Extent()
	if err != nil {
		t.Fatal(err)
	}
	g, err := s.RenderScalar("density", ext)
	if err != nil {
		t.Fatal(err)
	}
	var sum float64
	for _, v := range g.Data {
		sum += v
	}
	if sum <= 0 {
		t.Error("density render produced an empty grid")
	}
}

func TestSceneRenderVector(t *testing.T) {
	s, err := NewScene(sceneConfig(t))
	if err != nil {
		t.Fatal(err)
	}
	ext, err := s.Extent()
	if err != nil {
		t.Fatal(err)
	}
	gx, gy, err := s.RenderVector("velocity", ext)
	if err != nil {
		t.Fatal(err)
	}
	if gx.NX != 64 || gy.NX != 64 {
		t.Errorf("component resolution %d/%d, want 64", gx.NX, gy.NX)
	}
}

func TestSceneUnknownField(t *testing.T) {
	s, err := NewScene(sceneConfig(t))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Field("entropy"); err == nil {
		t.Error("unknown field accepted")
	}
	if _, _, err := s.VectorField("magnetic"); err == nil {
		t.Error("unknown vector field accepted")
	}
}

func TestScenePercentileExtent(t *testing.T) {
	cfg := sceneConfig(t)
	cfg.Extent.Percentile = 99
	s, err := NewScene(cfg)
	if err != nil {
		t.Fatal(err)
	}
	ext, err := s.Extent()
	if err != nil {
		t.Fatal(err)
	}
	// The 99th-percentile window must sit inside the full disc bounds.
	if ext.XMax > cfg.Source.OuterRadius*1.2 || ext.XMin < -cfg.Source.OuterRadius*1.2 {
		t.Errorf("percentile extent %+v wider than the disc", ext)
	}
	if ext.Width() <= 0 {
		t.Errorf("degenerate percentile extent %+v", ext)
	}
}

func TestScenePolarForcesSquare(t *testing.T) {
	cfg := sceneConfig(t)
	cfg.Extent.XMin, cfg.Extent.XMax = -100, 100
	cfg.Extent.YMin, cfg.Extent.YMax = -50, 50
	cfg.Polar.Enabled = true
	s, err := NewScene(cfg)
	if err != nil {
		t.Fatal(err)
	}
	ext, err := s.Extent()
	if err != nil {
		t.Fatal(err)
	}
	if ext.Width() != ext.Height() {
		t.Errorf("polar extent not square: %v x %v", ext.Width(), ext.Height())
	}
}

func TestSceneCrossSectionWithoutDepthFails(t *testing.T) {
	cfg := sceneConfig(t)
	cfg.Derived.Options.CrossSection = true
	s, err := NewScene(cfg)
	if err != nil {
		t.Fatal(err)
	}
	s.set.Z = nil
	ext := interp.Extent{XMin: -10, XMax: 10, YMin: -10, YMax: 10}
	_, err = s.RenderScalar("density", ext)
	if !errors.Is(err, interp.ErrMissingDepth) {
		t.Errorf("got %v, want ErrMissingDepth", err)
	}
}
