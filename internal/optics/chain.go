package optics

import (
	"gonum.org/v1/gonum/mat"
)

// Chain is a sequence of elements in the order the beam meets them.
type Chain []Element

// Then returns a new chain with more elements appended after c.
func (c Chain) Then(elems ...Element) Chain {
	out := make(Chain, 0, len(c)+len(elems))
	out = append(out, c...)
	return append(out, elems...)
}

// Reverse is the same elements traversed backwards. Every element used
// here is its own reverse except interfaces, whose reverse is the inverse.
func (c Chain) Reverse() Chain {
	out := make(Chain, len(c))
	for i, e := range c {
		m := e.Matrix
		if m.B == 0 && m.C == 0 {
			m = Matrix{A: 1 / m.A, D: 1 / m.D}
		}
		e.Matrix = m
		out[len(c)-1-i] = e
	}
	return out
}

// Matrix composes the chain. The first element is the right-most factor.
func (c Chain) Matrix() Matrix {
	switch len(c) {
	case 0:
		return Identity()
	case 1:
		return c[0].Matrix
	}
	factors := make([]mat.Matrix, len(c))
	for i, e := range c {
		factors[len(c)-1-i] = e.Matrix.Dense()
	}
	var product mat.Dense
	product.Product(factors...)
	return FromDense(&product)
}

func (c Chain) OpticalPath() float64 {
	total := 0.0
	for _, e := range c {
		total += e.Path
	}
	return total
}
