package integrator

import (
	"github.com/nbody2d/core/pkg/bodystore"
	"github.com/nbody2d/core/pkg/nbconfig"
	"github.com/nbody2d/core/pkg/vec2"
)

// PositionVerlet implements the velocity-free Verlet scheme. Unlike
// leapfrog and Euler it needs each body's previous position across
// calls, so it carries that state keyed by handle rather than being a
// pure function of the current Body.
type PositionVerlet struct {
	prev map[bodystore.Handle]vec2.Vector2
}

func newPositionVerlet() *PositionVerlet {
	return &PositionVerlet{prev: make(map[bodystore.Handle]vec2.Vector2)}
}

func (pv *PositionVerlet) integrate(bodies []*bodystore.Body, h float64, cfg nbconfig.Config) {
	for _, b := range bodies {
		if b.Fixed || b.Dragged {
			delete(pv.prev, b.Handle())
			continue
		}

		a := b.Force
		old, seen := pv.prev[b.Handle()]
		if !seen {
			// Bootstrap: synthesize a previous position consistent
			// with the body's current velocity so the first step
			// behaves like a single Euler kick rather than a jump.
			old = b.Position.Sub(b.Velocity.Scale(h))
		}

		newPos := b.Position.Scale(2).Sub(old).Add(a.Scale(h * h))
		v := clampSpeed(newPos.Sub(old).Scale(1 / (2 * h)))

		pv.prev[b.Handle()] = b.Position
		b.Position = newPos
		b.Velocity = v
		b.Acceleration = a
	}
}
