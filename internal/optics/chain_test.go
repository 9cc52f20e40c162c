package optics

import (
	"math"
	"testing"
)

func closeMatrix(a, b Matrix, tol float64) bool {
	return math.Abs(a.A-b.A) < tol && math.Abs(a.B-b.B) < tol &&
		math.Abs(a.C-b.C) < tol && math.Abs(a.D-b.D) < tol
}

func TestChainMatrixOrder(t *testing.T) {
	p := Propagation("p", 0.1, 1)
	l := ThinLens("l", 0.05)

	got := Chain{p, l}.Matrix()
	want := l.Matrix.Mul(p.Matrix)
	if !closeMatrix(got, want, 1e-15) {
		t.Errorf("expected lens after propagation %v, got %v", want, got)
	}

	if got := (Chain{}).Matrix(); got != Identity() {
		t.Errorf("empty chain should be identity, got %v", got)
	}
	if got := (Chain{l}).Matrix(); got != l.Matrix {
		t.Errorf("single element chain should be its matrix, got %v", got)
	}
}

func TestChainUnitDeterminant(t *testing.T) {
	c := Chain{
		Propagation("crystal", 0.005, 1.8),
		Interface("exit", 1.8, 1, Tangential, true),
		Propagation("s", 0.05, 1),
		CurvedMirror("m1", 0.1, 0.2, Tangential),
		Propagation("v", 0.2, 1),
	}
	round := c.Reverse().Matrix().Mul(c.Matrix())
	if math.Abs(round.Det()-1) > 1e-12 {
		t.Errorf("expected unit determinant, got %g", round.Det())
	}
	if math.Abs(round.A-round.D) > 1e-12 {
		t.Errorf("symmetric round trip should have A == D, got %v", round)
	}
}

func TestChainReverseInterface(t *testing.T) {
	exit := Interface("exit", 2, 1, Tangential, true)
	rev := Chain{exit}.Reverse()
	if got := rev.Matrix().Mul(exit.Matrix); !closeMatrix(got, Identity(), 1e-15) {
		t.Errorf("reversed interface should undo the original, got %v", got)
	}
}

func TestChainOpticalPath(t *testing.T) {
	c := Chain{
		Propagation("a", 0.1, 1),
		Propagation("b", 0.01, 1.5),
		ThinLens("l", 0.05),
	}
	if got, want := c.OpticalPath(), 0.1+0.015; math.Abs(got-want) > 1e-15 {
		t.Errorf("expected optical path %g, got %g", want, got)
	}
}

func TestCurvedMirrorAstigmatism(t *testing.T) {
	r, alpha := 0.1, 0.3
	ct := CurvedMirror("m", r, alpha, Tangential).Matrix.C
	cs := CurvedMirror("m", r, alpha, Sagittal).Matrix.C

	if want := -1 / (r / 2 * math.Cos(alpha)); math.Abs(ct-want) > 1e-12 {
		t.Errorf("tangential power: expected %g, got %g", want, ct)
	}
	if want := -math.Cos(alpha) / (r / 2); math.Abs(cs-want) > 1e-12 {
		t.Errorf("sagittal power: expected %g, got %g", want, cs)
	}
}

func TestInterface(t *testing.T) {
	if m := Interface("i", 1.8, 1, Tangential, false).Matrix; m != Identity() {
		t.Errorf("normal incidence should be identity, got %v", m)
	}
	if m := Interface("i", 1.8, 1, Sagittal, true).Matrix; m != Identity() {
		t.Errorf("sagittal brewster should be identity, got %v", m)
	}
	m := Interface("i", 1.8, 1, Tangential, true).Matrix
	if math.Abs(m.A-1/1.8) > 1e-15 || math.Abs(m.D-1.8) > 1e-15 {
		t.Errorf("unexpected tangential brewster matrix %v", m)
	}
}

func TestMatrixDenseRoundTrip(t *testing.T) {
	m := Matrix{A: 1, B: 2, C: 3, D: 4}
	if got := FromDense(m.Dense()); got != m {
		t.Errorf("expected %v, got %v", m, got)
	}
}
