package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/shgcav/internal/cavity"
	"github.com/san-kum/shgcav/internal/config"
)

func addCavityFlags(cmd *cobra.Command) {
	d := config.DefaultConfig()
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration (crystal/name)")
	f.StringVar(&crystal, "crystal", d.Crystal, "crystal cut (plane, brewster)")
	f.Float64Var(&angleDeg, "angle", d.AngleDeg, "incidence angle on the focusing mirrors in degrees")
	f.Float64Var(&radiusMM, "radius", d.RadiusMM, "focusing mirror radius of curvature in mm")
	f.Float64Var(&sMM, "s", d.CrystalDistanceMM, "focusing mirror to crystal surface in mm")
	f.Float64Var(&vMM, "v", d.FocusDistanceMM, "focusing mirror to collimated focus in mm")
	f.Float64Var(&lengthMM, "length", d.CrystalLengthMM, "crystal length in mm")
	f.Float64Var(&index, "index", d.Index, "crystal refractive index")
	f.Float64Var(&lambdaNM, "wavelength", d.WavelengthNM, "fundamental wavelength in nm")
	f.Float64Var(&walkOff, "walkoff", d.WalkOffMrad, "walk-off angle in mrad")
}

func lookupPreset(name string) (*config.Config, error) {
	crystal, presetName, ok := strings.Cut(name, "/")
	if !ok {
		crystal, presetName = "plane", name
	}
	cfg := config.GetPreset(crystal, presetName)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %s)", name, strings.Join(presetNames(), ", "))
	}
	return cfg, nil
}

func presetNames() []string {
	var names []string
	for _, crystal := range config.Crystals() {
		for _, name := range config.ListPresets(crystal) {
			names = append(names, crystal+"/"+name)
		}
	}
	return names
}

// loadConfig layers defaults, preset, config file and explicitly set flags,
// in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p, err := lookupPreset(preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("crystal") {
		cfg.Crystal = crystal
	}
	if flags.Changed("angle") {
		cfg.AngleDeg = angleDeg
	}
	if flags.Changed("radius") {
		cfg.RadiusMM = radiusMM
	}
	if flags.Changed("s") {
		cfg.CrystalDistanceMM = sMM
	}
	if flags.Changed("v") {
		cfg.FocusDistanceMM = vMM
	}
	if flags.Changed("length") {
		cfg.CrystalLengthMM = lengthMM
	}
	if flags.Changed("index") {
		cfg.Index = index
	}
	if flags.Changed("wavelength") {
		cfg.WavelengthNM = lambdaNM
	}
	if flags.Changed("walkoff") {
		cfg.WalkOffMrad = walkOff
	}

	if flags.Changed("field") {
		cfg.Sweep.Field = field
	}
	if flags.Changed("from") {
		cfg.Sweep.FromMM = fromMM
	}
	if flags.Changed("to") {
		cfg.Sweep.ToMM = toMM
	}
	if flags.Changed("steps") {
		cfg.Sweep.Steps = steps
	}

	return cfg, nil
}

func loadParameters(cmd *cobra.Command) (*config.Config, cavity.Parameters, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, cavity.Parameters{}, err
	}
	p, err := cfg.ToParameters()
	if err != nil {
		return nil, cavity.Parameters{}, err
	}
	logger.Debug("parameters", "crystal", p.Cut, "alpha", p.Alpha, "R", p.Radius,
		"s", p.CrystalDistance, "v", p.FocusDistance, "l", p.CrystalLength,
		"index", p.Index, "lambda", p.Wavelength)
	return cfg, p, nil
}
