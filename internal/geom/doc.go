// Package geom provides the plate boundary shapes of the simulation.
//
// Every shape implements [Shape] in plate-centred coordinates (metres, origin
// at the centre of the bounding box):
//
//   - [Rectangle]: axis-aligned plate
//   - [Annulus]: ring between an inner and an outer radius; a disc when the
//     inner radius is zero
//   - [Polygon]: free-form outline scaled from unit-space vertices
//
// The physics only relies on Contains, Clamp and RandomPoint. Outline is for
// renderers.
//
// # Rejection Sampling
//
// Annulus and Polygon sample by rejection inside their bounding box. Callers
// keep the region-to-box area ratio bounded (the annulus radius gap, the
// polygon presets), so the loop terminates after a handful of draws.
package geom
