// Package geo provides the shared numeric primitives for deformation
// computations:
//
//   - [Grid]: flat observation coordinate arrays with an explicit shape
//   - [Field]: three-component displacement output matching a grid
//   - [Source] and [SourceSet]: point sources with associated strengths
//
// Grids and fields store their samples as flat float64 slices so scalar
// probes, line profiles and map-view planes share one representation.
// For plane grids Shape is {rows, cols} in row-major order, rows following
// y and columns following x.
//
// # Thread Safety
//
// Values are plain data. Concurrent readers are safe; concurrent writers
// must synchronize externally.
package geo
