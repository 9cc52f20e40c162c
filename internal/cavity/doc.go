// Package cavity computes the Gaussian eigenmode of a symmetric bow-tie ring
// resonator used for second-harmonic generation.
//
// The ring has two curved focusing mirrors and two flat folding mirrors. The
// nonlinear crystal sits centred on the focus between the curved mirrors; a
// second focus lies in the collimated arm between the folding mirrors.
//
//   - [Parameters]: geometry, crystal and wavelength of one configuration
//   - [Solve]: eigenmode at both foci, tangential and sagittal
//   - [Sweep], [SweepParallel]: one solve per value of a distance-like field
//   - [StabilityRange]: interval of mirror-to-crystal distances with a mode
//   - [BParameter]: Boyd-Kleinman walk-off parameter, independent of the mode
//
// # Example
//
//	p := cavity.Parameters{
//	    Cut: cavity.CutPlane, Alpha: 10 * math.Pi / 180, Radius: 0.1,
//	    CrystalDistance: 0.055, FocusDistance: 0.15, CrystalLength: 0.01,
//	    Index: 1.6, Wavelength: 1064e-9,
//	}
//	mode, err := cavity.Solve(p)
//	if errors.Is(err, cavity.ErrCavityUnstable) {
//	    // no mode for this distance
//	}
//
// All lengths are in metres and angles in radians. Every function is pure;
// values can be solved from any number of goroutines.
package cavity
