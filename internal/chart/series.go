// Package chart renders cavity sweeps as terminal plots, HTML pages and
// image files.
package chart

import (
	"fmt"

	"github.com/san-kum/shgcav/internal/cavity"
)

// Quantity is a sweep result that can be plotted against the swept field.
type Quantity int

const (
	CrystalWaist Quantity = iota
	CollimatedWaist
	FocusingParameter
	Ellipticity
)

var quantities = []Quantity{CrystalWaist, CollimatedWaist, FocusingParameter, Ellipticity}

// Quantities lists everything that can be plotted, in display order.
func Quantities() []Quantity {
	return quantities
}

func (q Quantity) String() string {
	switch q {
	case CrystalWaist:
		return "crystal waist"
	case CollimatedWaist:
		return "collimated waist"
	case FocusingParameter:
		return "focusing parameter"
	case Ellipticity:
		return "ellipticity"
	default:
		return fmt.Sprintf("quantity(%d)", int(q))
	}
}

func (q Quantity) Unit() string {
	switch q {
	case CrystalWaist, CollimatedWaist:
		return "µm"
	default:
		return ""
	}
}

// Label is the axis title including the unit.
func (q Quantity) Label() string {
	if u := q.Unit(); u != "" {
		return fmt.Sprintf("%s (%s)", q, u)
	}
	return q.String()
}

func ParseQuantity(name string) (Quantity, error) {
	switch name {
	case "waist", "crystal", "crystal-waist", "w":
		return CrystalWaist, nil
	case "collimated", "collimated-waist", "w2":
		return CollimatedWaist, nil
	case "xi", "focusing":
		return FocusingParameter, nil
	case "ellipticity", "e":
		return Ellipticity, nil
	default:
		return CrystalWaist, fmt.Errorf("unknown quantity: %s", name)
	}
}

// Series is one curve. X is in millimetres.
type Series struct {
	Name string
	X    []float64
	Y    []float64
}

func (s Series) Len() int {
	return len(s.X)
}

// XY implements plotter.XYer.
func (s Series) XY(i int) (float64, float64) {
	return s.X[i], s.Y[i]
}

// Extract builds the tangential and sagittal curves of q from the stable
// points of a sweep. For Ellipticity the two curves are the crystal and
// collimated foci instead.
func Extract(points []cavity.Point, q Quantity) []Series {
	first, second := names(q)
	a := Series{Name: first}
	b := Series{Name: second}

	for _, pt := range cavity.Valid(points) {
		x := pt.Value * 1e3
		ya, yb := values(pt.Mode, q)
		a.X = append(a.X, x)
		a.Y = append(a.Y, ya)
		b.X = append(b.X, x)
		b.Y = append(b.Y, yb)
	}
	return []Series{a, b}
}

func names(q Quantity) (string, string) {
	if q == Ellipticity {
		return "crystal", "collimated"
	}
	return "tangential", "sagittal"
}

func values(m cavity.Mode, q Quantity) (float64, float64) {
	switch q {
	case CollimatedWaist:
		return m.Collimated.WaistT * 1e6, m.Collimated.WaistS * 1e6
	case FocusingParameter:
		return m.Crystal.XiT, m.Crystal.XiS
	case Ellipticity:
		return m.Crystal.Ellipticity, m.Collimated.Ellipticity
	default:
		return m.Crystal.WaistT * 1e6, m.Crystal.WaistS * 1e6
	}
}
