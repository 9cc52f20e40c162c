// Package optics provides paraxial ray-transfer (ABCD) primitives and
// Gaussian beam helpers.
//
// Matrices are kept in reduced form: distances inside a medium of index n
// enter as d/n, so every element has unit determinant and the complex beam
// parameter is carried as the reduced value q/n across interfaces.
//
//   - [Matrix]: 2x2 ray-transfer matrix
//   - [Element]: a named optical element with its matrix and optical path
//   - [Chain]: ordered elements in beam order, composed with gonum
//   - [Eigenmode]: self-consistent beam parameter of a round trip
//
// # Sign convention
//
// The beam travels along +z and the complex beam parameter obeys
//
//	1/q = 1/R - i*lambda/(pi*n*w^2)
//
// so a physical beam always has Im(1/q) < 0. [Eigenmode] only ever returns
// that branch.
package optics
