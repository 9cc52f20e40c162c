package config

import (
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/floats"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/shgcav/internal/cavity"
)

const (
	DefaultAngleDeg          = 10.0
	DefaultRadiusMM          = 100.0
	DefaultCrystalDistanceMM = 55.0
	DefaultFocusDistanceMM   = 150.0
	DefaultCrystalLengthMM   = 10.0
	DefaultIndex             = 1.6
	DefaultWavelengthNM      = 1064.0
	DefaultSweepSteps        = 50
)

// Config holds one cavity in lab units: millimetres, degrees, nanometres
// and milliradians.
type Config struct {
	Crystal           string      `yaml:"crystal"`
	AngleDeg          float64     `yaml:"angle_deg"`
	RadiusMM          float64     `yaml:"radius_mm"`
	CrystalDistanceMM float64     `yaml:"crystal_distance_mm"`
	FocusDistanceMM   float64     `yaml:"focus_distance_mm"`
	CrystalLengthMM   float64     `yaml:"crystal_length_mm"`
	Index             float64     `yaml:"index"`
	WavelengthNM      float64     `yaml:"wavelength_nm"`
	WalkOffMrad       float64     `yaml:"walk_off_mrad"`
	Sweep             SweepConfig `yaml:"sweep"`
}

// SweepConfig selects the swept field and its range. A zero range on the
// crystal distance means the full stability range.
type SweepConfig struct {
	Field  string  `yaml:"field"`
	FromMM float64 `yaml:"from_mm"`
	ToMM   float64 `yaml:"to_mm"`
	Steps  int     `yaml:"steps"`
}

func DefaultConfig() *Config {
	return &Config{
		Crystal:           cavity.CutPlane.String(),
		AngleDeg:          DefaultAngleDeg,
		RadiusMM:          DefaultRadiusMM,
		CrystalDistanceMM: DefaultCrystalDistanceMM,
		FocusDistanceMM:   DefaultFocusDistanceMM,
		CrystalLengthMM:   DefaultCrystalLengthMM,
		Index:             DefaultIndex,
		WavelengthNM:      DefaultWavelengthNM,
		Sweep: SweepConfig{
			Field: cavity.FieldCrystalDistance.String(),
			Steps: DefaultSweepSteps,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// ToParameters converts to SI units.
func (c *Config) ToParameters() (cavity.Parameters, error) {
	cut, err := cavity.ParseCut(c.Crystal)
	if err != nil {
		return cavity.Parameters{}, err
	}
	return cavity.Parameters{
		Cut:             cut,
		Alpha:           c.AngleDeg * math.Pi / 180,
		Radius:          c.RadiusMM * 1e-3,
		CrystalDistance: c.CrystalDistanceMM * 1e-3,
		FocusDistance:   c.FocusDistanceMM * 1e-3,
		CrystalLength:   c.CrystalLengthMM * 1e-3,
		Index:           c.Index,
		Wavelength:      c.WavelengthNM * 1e-9,
		WalkOff:         c.WalkOffMrad * 1e-3,
	}, nil
}

// Values returns the swept field and its values in metres.
func (s SweepConfig) Values(p cavity.Parameters) (cavity.Field, []float64, error) {
	field, err := cavity.ParseField(s.Field)
	if err != nil {
		return field, nil, err
	}

	steps := s.Steps
	if steps == 0 {
		steps = DefaultSweepSteps
	}
	if steps < 2 {
		return field, nil, fmt.Errorf("sweep needs at least 2 steps, got %d", steps)
	}

	if s.FromMM == 0 && s.ToMM == 0 {
		if field != cavity.FieldCrystalDistance {
			return field, nil, fmt.Errorf("sweep over %s needs an explicit range", field)
		}
		values, err := cavity.DefaultSweepValues(p, steps)
		return field, values, err
	}

	if !(s.ToMM > s.FromMM) {
		return field, nil, fmt.Errorf("sweep range [%g, %g] mm is empty", s.FromMM, s.ToMM)
	}
	return field, floats.Span(make([]float64, steps), s.FromMM*1e-3, s.ToMM*1e-3), nil
}
