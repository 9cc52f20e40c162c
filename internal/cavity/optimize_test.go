package cavity

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestNearest(t *testing.T) {
	p := reference(CutPlane)
	values, err := DefaultSweepValues(p, 30)
	if err != nil {
		t.Fatal(err)
	}
	points := Sweep(p, FieldCrystalDistance, values)

	pt, i, err := Nearest(points, 1)
	if err != nil {
		t.Fatal(err)
	}
	if points[i] != pt {
		t.Error("index does not match point")
	}
	for _, other := range Valid(points) {
		if math.Abs(other.Mode.MeanXi()-1) < math.Abs(pt.Mode.MeanXi()-1) {
			t.Errorf("s = %g is closer than the chosen %g", other.Value, pt.Value)
		}
	}

	unstable := Sweep(p, FieldCrystalDistance, []float64{0.01, 0.02})
	if _, _, err := Nearest(unstable, 1); !errors.Is(err, ErrCavityUnstable) {
		t.Errorf("expected ErrCavityUnstable, got %v", err)
	}
}

func TestFindXi(t *testing.T) {
	p := reference(CutPlane)
	values, err := DefaultSweepValues(p, 40)
	if err != nil {
		t.Fatal(err)
	}

	pt, err := FindXi(context.Background(), p, FieldCrystalDistance, values, 0.5, 4)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if xi := pt.Mode.MeanXi(); math.Abs(xi-0.5) > 1e-3 {
		t.Errorf("mean xi = %g, want 0.5", xi)
	}

	p.CrystalDistance = pt.Value
	mode, err := Solve(p)
	if err != nil || mode != pt.Mode {
		t.Errorf("result differs from a direct solve: %v", err)
	}
}

func TestFindXiUnreachable(t *testing.T) {
	p := reference(CutPlane)
	values, _ := DefaultSweepValues(p, 40)

	pt, err := FindXi(context.Background(), p, FieldCrystalDistance, values, 100, 2)
	if err != nil {
		t.Fatal(err)
	}
	points := Sweep(p, FieldCrystalDistance, values)
	var top float64
	for _, other := range Valid(points) {
		top = math.Max(top, other.Mode.MeanXi())
	}
	if pt.Mode.MeanXi() < top {
		t.Errorf("expected the tightest focus, got xi %g < %g", pt.Mode.MeanXi(), top)
	}
}

func TestFindXiErrors(t *testing.T) {
	p := reference(CutPlane)
	if _, err := FindXi(context.Background(), p, FieldCrystalDistance, []float64{0.05, 0.06}, 1, 1); err == nil {
		t.Error("expected error for too few values")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := FindXi(ctx, p, FieldCrystalDistance, []float64{0.05, 0.055, 0.06}, 1, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
