package optics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a reduced ray-transfer matrix [[A B] [C D]].
type Matrix struct {
	A, B, C, D float64
}

func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// FromDense reads the top-left 2x2 block of a gonum matrix.
func FromDense(m mat.Matrix) Matrix {
	return Matrix{A: m.At(0, 0), B: m.At(0, 1), C: m.At(1, 0), D: m.At(1, 1)}
}

func (m Matrix) Dense() *mat.Dense {
	return mat.NewDense(2, 2, []float64{m.A, m.B, m.C, m.D})
}

// Mul returns m·o, i.e. o is traversed first.
func (m Matrix) Mul(o Matrix) Matrix {
	return Matrix{
		A: m.A*o.A + m.B*o.C,
		B: m.A*o.B + m.B*o.D,
		C: m.C*o.A + m.D*o.C,
		D: m.C*o.B + m.D*o.D,
	}
}

func (m Matrix) Trace() float64 {
	return m.A + m.D
}

func (m Matrix) Det() float64 {
	return m.A*m.D - m.B*m.C
}

// HalfTrace is the resonator stability parameter m = (A+D)/2.
func (m Matrix) HalfTrace() float64 {
	return m.Trace() / 2
}

// Stable reports whether a round trip described by m confines a
// real-valued Gaussian mode, |A+D| < 2.
func (m Matrix) Stable() bool {
	return math.Abs(m.Trace()) < 2
}

func (m Matrix) IsValid() bool {
	for _, v := range [4]float64{m.A, m.B, m.C, m.D} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (m Matrix) String() string {
	return fmt.Sprintf("[[%.6g %.6g] [%.6g %.6g]]", m.A, m.B, m.C, m.D)
}
