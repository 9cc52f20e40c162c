package cavity

import (
	"errors"
	"fmt"
)

var (
	// ErrGeometryInfeasible indicates parameters that cannot form the ring.
	ErrGeometryInfeasible = errors.New("cavity: geometry infeasible")

	// ErrCavityUnstable indicates |A+D| >= 2 in at least one transverse plane.
	ErrCavityUnstable = errors.New("cavity: no self-consistent real-valued gaussian mode exists for these parameters")
)

// GeometryError names the offending parameter.
type GeometryError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("%v: %s = %g: %s", ErrGeometryInfeasible, e.Field, e.Value, e.Reason)
}

func (e *GeometryError) Unwrap() error {
	return ErrGeometryInfeasible
}

// StabilityError carries the round-trip half traces m = (A+D)/2 of both
// planes. Plane is "tangential", "sagittal" or "both".
type StabilityError struct {
	Plane      string
	HalfTraceT float64
	HalfTraceS float64
}

func (e *StabilityError) Error() string {
	return fmt.Sprintf("%v (%s plane, m_t=%.4f, m_s=%.4f)", ErrCavityUnstable, e.Plane, e.HalfTraceT, e.HalfTraceS)
}

func (e *StabilityError) Unwrap() error {
	return ErrCavityUnstable
}
