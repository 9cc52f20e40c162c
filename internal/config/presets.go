package config

import "sort"

// Presets are grouped by crystal cut.
var Presets = map[string]map[string]*Config{
	"plane": {
		"reference": {
			Crystal: "plane", AngleDeg: 10, RadiusMM: 100, CrystalDistanceMM: 55, FocusDistanceMM: 150,
			CrystalLengthMM: 10, Index: 1.6, WavelengthNM: 1064,
			Sweep: SweepConfig{Field: "s", Steps: DefaultSweepSteps},
		},
		"ppktp-1550": {
			Crystal: "plane", AngleDeg: 8, RadiusMM: 150, CrystalDistanceMM: 80, FocusDistanceMM: 200,
			CrystalLengthMM: 20, Index: 1.816, WavelengthNM: 1550,
			Sweep: SweepConfig{Field: "s", Steps: DefaultSweepSteps},
		},
	},
	"brewster": {
		"reference": {
			Crystal: "brewster", AngleDeg: 10, RadiusMM: 100, CrystalDistanceMM: 55, FocusDistanceMM: 150,
			CrystalLengthMM: 10, Index: 1.6, WavelengthNM: 1064,
			Sweep: SweepConfig{Field: "s", Steps: DefaultSweepSteps},
		},
		"lbo-532": {
			Crystal: "brewster", AngleDeg: 12, RadiusMM: 100, CrystalDistanceMM: 55, FocusDistanceMM: 150,
			CrystalLengthMM: 15, Index: 1.6065, WavelengthNM: 1064, WalkOffMrad: 7.1,
			Sweep: SweepConfig{Field: "s", Steps: DefaultSweepSteps},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(crystal, preset string) *Config {
	cutPresets, ok := Presets[crystal]
	if !ok {
		return nil
	}
	cfg, ok := cutPresets[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(crystal string) []string {
	cutPresets, ok := Presets[crystal]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(cutPresets))
	for name := range cutPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Crystals lists the cuts that have presets.
func Crystals() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
