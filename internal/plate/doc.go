// Package plate is the session layer of the Chladni simulation.
//
// A [Simulator] owns the plate parameters, the active boundary shape, the
// modal displacement field and the grain ensemble, and keeps them consistent:
//
//   - geometry setters resize the shape, push its bounding box to the field,
//     re-clamp the excitation point and re-apply the boundary to the grains
//   - excitation, damping and size changes drop the field's coefficient cache
//   - Step advances the grains by one frame and notifies the metrics
//
// # Example
//
//	s, _ := plate.New(plate.DefaultParameters())
//	s.SetFrequency(1200)
//	for range frames {
//	    s.Step(1.0 / 60)
//	}
//	grains := s.Positions()
//
// # Thread Safety
//
// A Simulator is NOT safe for concurrent use. It is driven from a single
// host loop (one Step per frame) and the same goroutine applies UI writes.
package plate
