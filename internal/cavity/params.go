package cavity

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/shgcav/internal/optics"
)

// SpeedOfLight in vacuum, m/s.
const SpeedOfLight = 299792458.0

// Cut selects how the crystal end faces are polished.
type Cut int

const (
	CutPlane Cut = iota
	CutBrewster
)

func (c Cut) String() string {
	switch c {
	case CutPlane:
		return "plane"
	case CutBrewster:
		return "brewster"
	default:
		return fmt.Sprintf("cut(%d)", int(c))
	}
}

func ParseCut(s string) (Cut, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plane", "normal", "":
		return CutPlane, nil
	case "brewster", "brewster-cut":
		return CutBrewster, nil
	default:
		return CutPlane, fmt.Errorf("unknown crystal cut: %s", s)
	}
}

// Parameters describes one bow-tie configuration. Lengths in metres,
// angles in radians.
type Parameters struct {
	Cut             Cut
	Alpha           float64 // incidence angle on the focusing mirrors; zero is normal incidence
	Radius          float64 // radius of curvature of the focusing mirrors
	CrystalDistance float64 // focusing mirror to crystal surface
	FocusDistance   float64 // focusing mirror to the collimated-arm focus
	CrystalLength   float64
	Index           float64 // crystal refractive index at the fundamental
	Wavelength      float64 // vacuum wavelength of the fundamental
	WalkOff         float64 // birefringent walk-off angle, only used by BParameter
}

func (p Parameters) FocalLength() float64 {
	return p.Radius / 2
}

// Wavenumber is k1 = 2πn/λ of the fundamental inside the crystal.
func (p Parameters) Wavenumber() float64 {
	return 2 * math.Pi * p.Index / p.Wavelength
}

// RoundTripPath is the optical length of one loop of the ring.
func (p Parameters) RoundTripPath() float64 {
	return 2 * halfChain(p, optics.Sagittal, true).OpticalPath()
}

func (p Parameters) Validate() error {
	lengths := []struct {
		name  string
		value float64
	}{
		{"radius", p.Radius},
		{"crystal distance", p.CrystalDistance},
		{"focus distance", p.FocusDistance},
		{"crystal length", p.CrystalLength},
		{"wavelength", p.Wavelength},
	}
	for _, l := range lengths {
		if !(l.value > 0) || math.IsInf(l.value, 0) {
			return &GeometryError{Field: l.name, Value: l.value, Reason: "must be positive and finite"}
		}
	}

	if !(p.Index >= 1) || math.IsInf(p.Index, 0) {
		return &GeometryError{Field: "index", Value: p.Index, Reason: "refractive index must be finite and at least 1"}
	}
	if !(p.Alpha >= 0 && p.Alpha < math.Pi/2) {
		return &GeometryError{Field: "alpha", Value: p.Alpha, Reason: "incidence angle must lie in [0, pi/2)"}
	}
	if math.IsNaN(p.WalkOff) || math.IsInf(p.WalkOff, 0) {
		return &GeometryError{Field: "walk-off", Value: p.WalkOff, Reason: "must be finite"}
	}
	if p.Cut != CutPlane && p.Cut != CutBrewster {
		return &GeometryError{Field: "cut", Value: float64(p.Cut), Reason: "unknown crystal cut"}
	}

	// The crystal focus sits l/2 behind the crystal surface and must stay
	// inside the mirror's radius of curvature.
	if p.CrystalDistance+p.CrystalLength/2 >= p.Radius {
		return &GeometryError{
			Field:  "crystal distance",
			Value:  p.CrystalDistance,
			Reason: fmt.Sprintf("crystal focus at %g m lies beyond the mirror radius %g m", p.CrystalDistance+p.CrystalLength/2, p.Radius),
		}
	}
	return nil
}
