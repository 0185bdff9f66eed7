// Package integrator advances body state forward in time given the
// per-body forces already written by pkg/force. The default scheme is
// kick-drift-kick leapfrog; Euler and position-Verlet are provided for
// diagnostics and comparison (spec section 4.5).
//
// Every variant reads Body.Force as an acceleration contribution (see
// pkg/force's package doc for the chosen force/acceleration
// convention) and applies it directly as `a`, without dividing by
// mass again.
package integrator

import (
	"github.com/nbody2d/core/pkg/bodystore"
	"github.com/nbody2d/core/pkg/nbconfig"
	"github.com/nbody2d/core/pkg/vec2"
)

// clampSpeed caps v's magnitude at nbconfig.VMax, preserving direction.
func clampSpeed(v vec2.Vector2) vec2.Vector2 {
	if l := v.Length(); l > nbconfig.VMax {
		return v.Scale(nbconfig.VMax / l)
	}
	return v
}

// RecomputeForces is supplied by the engine facade so Leapfrog can
// perform the textbook two-half-kick update (spec 4.5 step 4): it must
// refresh every body's Force in place for the bodies' current
// positions.
type RecomputeForces func()

// Integrate dispatches to the configured integrator kind. State is a
// persistent struct (currently only needed by PositionVerlet, which
// must remember each body's prior position across calls); callers
// should keep one State per engine instance.
type State struct {
	verlet *PositionVerlet
}

// NewState creates integrator state for one engine instance.
func NewState() *State {
	return &State{verlet: newPositionVerlet()}
}

// Integrate advances every non-fixed, non-dragged body by h using the
// scheme named in cfg.IntegratorKind. Fixed or dragged bodies have
// their velocity forced to zero and are otherwise left untouched
// (property 9, fixed-body invariance).
func (s *State) Integrate(bodies []*bodystore.Body, h float64, cfg nbconfig.Config, recompute RecomputeForces) {
	for _, b := range bodies {
		if b.Fixed || b.Dragged {
			b.Velocity = vec2.Vector2{}
			continue
		}
	}

	switch cfg.IntegratorKind {
	case nbconfig.IntegratorEuler:
		euler(bodies, h, cfg)
	case nbconfig.IntegratorPositionVerlet:
		s.verlet.integrate(bodies, h, cfg)
	default:
		leapfrog(bodies, h, cfg, recompute)
	}
}
