package cavity

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	// sweepMargin keeps default sweeps this far inside the stability edges.
	sweepMargin = 100e-6
	// minSweepSpan is the narrowest stable interval worth sweeping.
	minSweepSpan = 1e-3
)

// StabilityRange returns the interval of CrystalDistance for which both
// planes are stable, with all other parameters of p held fixed.
//
// The half trace of either round trip is linear in the crystal distance, so
// each plane is stable on one interval whose ends are the distances at which
// A+D = ±2. A Brewster crystal shortens the tangential crystal length by a
// further factor η².
//
// The interval is clamped to [0, R - l/2].
func StabilityRange(p Parameters) (lo, hi float64, err error) {
	lo, hi, err = closedFormRange(p)
	if err != nil {
		return 0, 0, err
	}

	lo = math.Max(lo, 0)
	hi = math.Min(hi, p.Radius-p.CrystalLength/2)

	if !(hi > lo) {
		return lo, hi, rangeError(p)
	}
	return lo, hi, nil
}

// closedFormRange is the unclamped intersection of the two plane intervals.
func closedFormRange(p Parameters) (lo, hi float64, err error) {
	q := p
	q.CrystalDistance = math.SmallestNonzeroFloat64
	if err := q.Validate(); err != nil {
		return 0, 0, err
	}

	f := p.FocalLength()
	v := p.FocusDistance
	cos := math.Cos(p.Alpha)
	crystal := p.CrystalLength / (2 * p.Index)

	crystalT := crystal
	if p.Cut == CutBrewster {
		crystalT = crystal / (p.Index * p.Index)
	}

	tangential := []float64{
		-crystalT + f*cos,
		-crystalT + f*v/(v/cos-f),
	}
	sagittal := []float64{
		-crystal + f/cos,
		-crystal + f*v/(v*cos-f),
	}

	lo = math.Max(floats.Min(tangential), floats.Min(sagittal))
	hi = math.Min(floats.Max(tangential), floats.Max(sagittal))
	return lo, hi, nil
}

func rangeError(p Parameters) error {
	m, n := RoundTripMatrices(p)
	return &StabilityError{Plane: "both", HalfTraceT: m.HalfTrace(), HalfTraceS: n.HalfTrace()}
}

// DefaultSweepValues spreads n crystal distances evenly over the stability
// range, keeping 100 µm clear of either edge. A range whose closed-form lower
// end is negative is refused even though StabilityRange clamps it.
func DefaultSweepValues(p Parameters, n int) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 points, got %d", n)
	}

	raw, _, err := closedFormRange(p)
	if err != nil {
		return nil, err
	}
	if raw < 0 {
		return nil, fmt.Errorf("stable range starts at negative s = %g m: %w", raw, ErrCavityUnstable)
	}

	lo, hi, err := StabilityRange(p)
	if err != nil {
		return nil, err
	}
	if hi-lo < minSweepSpan {
		return nil, fmt.Errorf("stable range [%g, %g] m narrower than %g m: %w", lo, hi, minSweepSpan, ErrCavityUnstable)
	}

	return floats.Span(make([]float64, n), lo+sweepMargin, hi-sweepMargin), nil
}
