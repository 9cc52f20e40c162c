package optics

import (
	"fmt"
	"math"
)

// Plane selects one of the two principal transverse planes of an off-axis
// system.
type Plane int

const (
	Tangential Plane = iota
	Sagittal
)

func (p Plane) String() string {
	switch p {
	case Tangential:
		return "tangential"
	case Sagittal:
		return "sagittal"
	default:
		return "unknown"
	}
}

// Element is a single optical element. Path is the optical path length
// (index times geometric length) the element contributes.
type Element struct {
	Name   string
	Matrix Matrix
	Path   float64
}

// Propagation through a homogeneous medium of index n over geometric
// length d.
func Propagation(name string, d, n float64) Element {
	return Element{
		Name:   name,
		Matrix: Matrix{A: 1, B: d / n, D: 1},
		Path:   n * d,
	}
}

func ThinLens(name string, f float64) Element {
	return Element{
		Name:   name,
		Matrix: Matrix{A: 1, C: -1 / f, D: 1},
	}
}

// CurvedMirror is a spherical mirror of radius r hit at incidence angle
// alpha. The effective focal length is f·cos(alpha) in the tangential plane
// and f/cos(alpha) in the sagittal plane, f = r/2.
func CurvedMirror(name string, r, alpha float64, plane Plane) Element {
	f := r / 2
	switch plane {
	case Tangential:
		f *= math.Cos(alpha)
	case Sagittal:
		f /= math.Cos(alpha)
	}
	return ThinLens(name, f)
}

// Interface is a flat surface from index n1 into index n2. At normal
// incidence it is the identity in reduced form. A Brewster surface
// additionally rescales the tangential beam by n2/n1.
func Interface(name string, n1, n2 float64, plane Plane, brewster bool) Element {
	if !brewster || plane == Sagittal {
		return Element{Name: name, Matrix: Identity()}
	}
	return Element{
		Name:   name,
		Matrix: Matrix{A: n2 / n1, D: n1 / n2},
	}
}

func (e Element) String() string {
	return fmt.Sprintf("%s %s", e.Name, e.Matrix)
}
