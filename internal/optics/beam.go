package optics

import (
	"errors"
	"math"
	"math/cmplx"
)

// ErrNoEigenmode indicates that a round-trip matrix has no self-consistent
// real-valued Gaussian mode.
var ErrNoEigenmode = errors.New("optics: no self-consistent gaussian mode (|A+D| >= 2)")

// Eigenmode returns the reduced beam parameter q/n that reproduces itself
// after one pass through m.
//
// 1/q solves B·u² - (D-A)·u - C = 0. Of the two conjugate roots only the one
// with Im(1/q) < 0 describes a beam with a real, positive spot size.
func Eigenmode(m Matrix) (complex128, error) {
	if !m.IsValid() || !m.Stable() || m.B == 0 {
		return 0, ErrNoEigenmode
	}
	disc := 4 - m.Trace()*m.Trace()
	u := complex((m.D-m.A)/(2*m.B), -math.Sqrt(disc)/(2*math.Abs(m.B)))
	return 1 / u, nil
}

// Propagate applies the ABCD law to a reduced beam parameter.
func Propagate(q complex128, m Matrix) complex128 {
	return (complex(m.A, 0)*q + complex(m.B, 0)) / (complex(m.C, 0)*q + complex(m.D, 0))
}

// SpotSize is the 1/e² beam radius for a reduced beam parameter and vacuum
// wavelength. It returns NaN for an unphysical q.
func SpotSize(q complex128, wavelength float64) float64 {
	im := imag(1 / q)
	if im >= 0 {
		return math.NaN()
	}
	return math.Sqrt(-wavelength / (math.Pi * im))
}

// Confocal is twice the Rayleigh range in a medium of index n.
func Confocal(q complex128, n float64) float64 {
	im := imag(1 / q)
	if im >= 0 {
		return math.NaN()
	}
	return -2 * n / im
}

// Curvature is the wavefront radius in a medium of index n; +Inf at a waist.
func Curvature(q complex128, n float64) float64 {
	re := real(1 / q)
	if re == 0 {
		return math.Inf(1)
	}
	return n / re
}

// IsPhysical reports whether q is finite with Im(1/q) < 0.
func IsPhysical(q complex128) bool {
	if cmplx.IsNaN(q) || cmplx.IsInf(q) {
		return false
	}
	return imag(1/q) < 0
}
