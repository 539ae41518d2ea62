// Package sand visualizes a displacement field with a population of grains.
//
// Each step moves every grain in a random direction by a distance proportional
// to the local displacement magnitude. Grains on a strongly vibrating region
// jump far and often, grains near a nodal line barely move, so the population
// drifts onto the nodal lines and draws the Chladni figure.
//
// # Boundary Policy
//
// After moving, a grain outside the plate is either clamped back onto the
// plate ([PolicyClamp]) or removed until the next regeneration
// ([PolicyRemove]). The population never exceeds the target count.
//
// An [Ensemble] is not safe for concurrent use; Step is meant to be called
// once per frame from the host loop.
package sand
