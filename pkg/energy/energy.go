// Package energy computes the conserved-quantity diagnostics used to
// validate the integrator: kinetic energy, potential energy and their
// sum. It is purely a diagnostic probe, nothing in the step itself
// depends on its output.
package energy

import (
	"github.com/nbody2d/core/pkg/bodystore"
	"github.com/nbody2d/core/pkg/nbconfig"
)

// Report holds one energy measurement.
type Report struct {
	Kinetic   float64
	Potential float64
	Total     float64
}

// Measure computes KE, PE and total energy for bodies under the given
// gravitational constant. Pairs closer than nbconfig.EpsMinPair are
// skipped to avoid a singular potential.
func Measure(bodies []*bodystore.Body, cfg nbconfig.Config) Report {
	var ke, pe float64

	for _, b := range bodies {
		ke += 0.5 * b.Mass() * b.Velocity.LengthSquared()
	}

	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			dist := bodies[j].Position.Sub(bodies[i].Position).Length()
			if dist <= nbconfig.EpsMinPair {
				continue
			}
			pe -= cfg.GravitationalConstant * bodies[i].Mass() * bodies[j].Mass() / dist
		}
	}

	return Report{Kinetic: ke, Potential: pe, Total: ke + pe}
}
