package cavity

import (
	"github.com/san-kum/shgcav/internal/optics"
)

// halfChain runs from the crystal centre to the collimated-arm focus. The
// ring is symmetric, so the return half is its reverse.
//
// With correction false a Brewster crystal is built with plain interfaces,
// which makes it identical to a plane-cut crystal.
func halfChain(p Parameters, plane optics.Plane, correction bool) optics.Chain {
	brewster := p.Cut == CutBrewster && correction
	return optics.Chain{
		optics.Propagation("crystal", p.CrystalLength/2, p.Index),
		optics.Interface("crystal exit", p.Index, 1, plane, brewster),
		optics.Propagation("crystal arm", p.CrystalDistance, 1),
		optics.CurvedMirror("focusing mirror", p.Radius, p.Alpha, plane),
		optics.Propagation("collimated arm", p.FocusDistance, 1),
	}
}

func roundTrip(half optics.Chain) optics.Matrix {
	return half.Reverse().Matrix().Mul(half.Matrix())
}

// RoundTripMatrices returns the round-trip matrices referenced to the
// crystal centre for the tangential and sagittal planes.
func RoundTripMatrices(p Parameters) (t, s optics.Matrix) {
	return roundTrip(halfChain(p, optics.Tangential, true)),
		roundTrip(halfChain(p, optics.Sagittal, true))
}

// HalfMatrices returns the crystal-centre to collimated-focus matrices.
func HalfMatrices(p Parameters) (t, s optics.Matrix) {
	return halfChain(p, optics.Tangential, true).Matrix(),
		halfChain(p, optics.Sagittal, true).Matrix()
}
