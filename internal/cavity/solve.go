package cavity

import (
	"math"

	"github.com/san-kum/shgcav/internal/optics"
)

// Focus is the beam at one reference plane.
type Focus struct {
	WaistT      float64 `json:"waist_t"`
	WaistS      float64 `json:"waist_s"`
	ConfocalT   float64 `json:"confocal_t"`
	ConfocalS   float64 `json:"confocal_s"`
	XiT         float64 `json:"xi_t"`
	XiS         float64 `json:"xi_s"`
	Ellipticity float64 `json:"ellipticity"`
}

func newFocus(qt, qs complex128, index, wavelength, length float64) Focus {
	f := Focus{
		WaistT:    optics.SpotSize(qt, wavelength),
		WaistS:    optics.SpotSize(qs, wavelength),
		ConfocalT: optics.Confocal(qt, index),
		ConfocalS: optics.Confocal(qs, index),
	}
	f.XiT = length / f.ConfocalT
	f.XiS = length / f.ConfocalS
	f.Ellipticity = f.WaistS / f.WaistT
	return f
}

func (f Focus) valid() bool {
	for _, v := range [4]float64{f.WaistT, f.WaistS, f.ConfocalT, f.ConfocalS} {
		if !(v > 0) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Mode is the cavity eigenmode at the crystal focus and at the
// collimated-arm focus.
type Mode struct {
	Crystal    Focus   `json:"crystal"`
	Collimated Focus   `json:"collimated"`
	FSR        float64 `json:"fsr_hz"`
	B          float64 `json:"b_parameter"`
	StabilityT float64 `json:"stability_t"`
	StabilityS float64 `json:"stability_s"`
}

type planeMode struct {
	crystal    complex128
	collimated complex128
	halfTrace  float64
	err        error
}

func solvePlane(p Parameters, plane optics.Plane, correction bool) planeMode {
	half := halfChain(p, plane, correction)
	round := roundTrip(half)

	pm := planeMode{halfTrace: round.HalfTrace()}
	q, err := optics.Eigenmode(round)
	if err != nil {
		pm.err = err
		return pm
	}
	pm.crystal = q
	pm.collimated = optics.Propagate(q, half.Matrix())
	return pm
}

// Solve computes the eigenmode for p. It returns a *GeometryError or a
// *StabilityError instead of a mode with NaN or non-positive values.
func Solve(p Parameters) (Mode, error) {
	return solve(p, true)
}

func solve(p Parameters, correction bool) (Mode, error) {
	if err := p.Validate(); err != nil {
		return Mode{}, err
	}

	t := solvePlane(p, optics.Tangential, correction)
	s := solvePlane(p, optics.Sagittal, correction)
	if err := stabilityError(t, s); err != nil {
		return Mode{}, err
	}

	mode := Mode{
		Crystal:    newFocus(t.crystal, s.crystal, p.Index, p.Wavelength, p.CrystalLength),
		Collimated: newFocus(t.collimated, s.collimated, 1, p.Wavelength, p.CrystalLength),
		FSR:        FreeSpectralRange(p),
		B:          BParameter(p),
		StabilityT: t.halfTrace,
		StabilityS: s.halfTrace,
	}

	if !mode.Crystal.valid() || !mode.Collimated.valid() {
		return Mode{}, &StabilityError{Plane: "both", HalfTraceT: t.halfTrace, HalfTraceS: s.halfTrace}
	}
	return mode, nil
}

func stabilityError(t, s planeMode) error {
	var plane string
	switch {
	case t.err != nil && s.err != nil:
		plane = "both"
	case t.err != nil:
		plane = optics.Tangential.String()
	case s.err != nil:
		plane = optics.Sagittal.String()
	default:
		return nil
	}
	return &StabilityError{Plane: plane, HalfTraceT: t.halfTrace, HalfTraceS: s.halfTrace}
}

// FreeSpectralRange is c divided by the optical round-trip length, in Hz.
func FreeSpectralRange(p Parameters) float64 {
	return SpeedOfLight / p.RoundTripPath()
}

// BParameter is the Boyd-Kleinman walk-off parameter B = ρ·sqrt(l·k1)/2.
// It does not depend on the mode and is reported for a later efficiency
// calculation.
func BParameter(p Parameters) float64 {
	return p.WalkOff * math.Sqrt(p.CrystalLength*p.Wavenumber()) / 2
}
