// Package orbital owns the state of an orbital simulation: the catalog of
// major bodies, the generated field of minor bodies, the optional player
// ship and the simulated clock.
//
// A host constructs a [Sim] once, then calls [Sim.Step] one or more times per
// rendered frame with the force model to use:
//
//	s, err := orbital.New(14400, orbital.WithFieldBodies(1000))
//	if err != nil {
//		return err
//	}
//	defer s.Close()
//	for i := 0; i < subSteps; i++ {
//		if err := s.Step(orbital.Gravity); err != nil {
//			return err
//		}
//	}
//
// Body indices are stable: index 0 is the first catalog entry (the anchor),
// [0, Primary()) is the catalog in order, and the rest is the field.
//
// # Thread Safety
//
// A Sim is NOT safe for concurrent use. Readers must not overlap a Step.
package orbital
