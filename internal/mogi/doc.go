// Package mogi implements the Mogi (1958) point-source solution for
// surface deformation of an elastic half-space.
//
// A buried source of volume change dV at depth d displaces the free
// surface radially and vertically:
//
//	ur = C * rho / R^3
//	uz = C * z' / R^3
//	C  = ((1 - nu) / pi) * dV
//
// where rho is the horizontal distance from the source axis, z' the
// vertical offset of the observation point above the source, and
// R = sqrt(rho^2 + z'^2) the slant distance. Dimensionless source
// strengths scale by [VolumeFactor] to give dV in cubic meters.
//
// Multiple sources superpose linearly; [Compute] sums their
// contributions in source order so results are reproducible bit for
// bit.
//
// The functions here are pure and perform no validation beyond the
// source/strength pairing: an observation point placed exactly on a
// source yields R = 0 and the IEEE Inf/NaN values propagate to the
// output. That is the analytic singularity of the model, not an error.
// Poisson's ratio is likewise not range-checked.
package mogi
