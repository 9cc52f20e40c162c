package cavity

import (
	"errors"
	"math"
	"testing"
)

func TestStabilityRange(t *testing.T) {
	tests := []struct {
		cut    Cut
		lo, hi float64
	}{
		{CutPlane, 0.04764633059428725, 0.07017875708453492},
		{CutBrewster, 0.0480196845256104, 0.07208305395953492},
	}

	for _, tt := range tests {
		t.Run(tt.cut.String(), func(t *testing.T) {
			p := reference(tt.cut)
			lo, hi, err := StabilityRange(p)
			if err != nil {
				t.Fatalf("range failed: %v", err)
			}
			if !near(lo, tt.lo, 1e-9) || !near(hi, tt.hi, 1e-9) {
				t.Fatalf("range = [%g, %g], want [%g, %g]", lo, hi, tt.lo, tt.hi)
			}

			for _, edge := range []struct {
				s      float64
				stable bool
			}{
				{lo - 1e-5, false},
				{lo + 1e-5, true},
				{hi - 1e-5, true},
				{hi + 1e-5, false},
			} {
				p.CrystalDistance = edge.s
				_, err := Solve(p)
				if edge.stable && err != nil {
					t.Errorf("s = %g should be stable: %v", edge.s, err)
				}
				if !edge.stable && !errors.Is(err, ErrCavityUnstable) {
					t.Errorf("s = %g should be unstable, got %v", edge.s, err)
				}
			}
		})
	}
}

func TestStabilityRangeIgnoresCrystalDistance(t *testing.T) {
	p := reference(CutPlane)
	lo, hi, _ := StabilityRange(p)

	p.CrystalDistance = 0.5
	lo2, hi2, err := StabilityRange(p)
	if err != nil {
		t.Fatal(err)
	}
	if lo != lo2 || hi != hi2 {
		t.Errorf("range moved with s: [%g, %g] vs [%g, %g]", lo, hi, lo2, hi2)
	}
}

func TestStabilityRangeInvalid(t *testing.T) {
	p := reference(CutPlane)
	p.Radius = -1
	if _, _, err := StabilityRange(p); !errors.Is(err, ErrGeometryInfeasible) {
		t.Errorf("expected geometry error, got %v", err)
	}
}

func TestDefaultSweepValues(t *testing.T) {
	p := reference(CutPlane)
	values, err := DefaultSweepValues(p, 50)
	if err != nil {
		t.Fatalf("default values failed: %v", err)
	}
	if len(values) != 50 {
		t.Fatalf("got %d values, want 50", len(values))
	}

	lo, hi, _ := StabilityRange(p)
	if math.Abs(values[0]-(lo+100e-6)) > 1e-12 || math.Abs(values[49]-(hi-100e-6)) > 1e-12 {
		t.Errorf("ends = %g, %g", values[0], values[49])
	}
	for i := 1; i < len(values); i++ {
		if values[i] <= values[i-1] {
			t.Fatalf("values not increasing at %d", i)
		}
	}

	for _, pt := range Sweep(p, FieldCrystalDistance, values) {
		if pt.Err != nil {
			t.Errorf("s = %g inside default range failed: %v", pt.Value, pt.Err)
		}
	}

	if _, err := DefaultSweepValues(p, 1); err == nil {
		t.Error("expected error for a single point")
	}
}

func TestNegativeLowerBound(t *testing.T) {
	p := reference(CutPlane)
	p.FocusDistance = 0.02

	lo, hi, err := StabilityRange(p)
	if err != nil {
		t.Fatalf("range failed: %v", err)
	}
	if lo != 0 || !near(hi, 0.0461153876506104, 1e-9) {
		t.Errorf("range = [%g, %g], want [0, 0.0461]", lo, hi)
	}

	p.CrystalDistance = 0.01
	if _, err := Solve(p); err != nil {
		t.Errorf("s inside the clamped range should be stable: %v", err)
	}

	if _, err := DefaultSweepValues(p, 20); !errors.Is(err, ErrCavityUnstable) {
		t.Errorf("expected ErrCavityUnstable for a negative lower bound, got %v", err)
	}
}
