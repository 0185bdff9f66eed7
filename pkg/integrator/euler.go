package integrator

import (
	"github.com/nbody2d/core/pkg/bodystore"
	"github.com/nbody2d/core/pkg/nbconfig"
)

// euler is semi-implicit (symplectic) Euler: velocity is updated from
// the current acceleration, then position from the *updated* velocity.
// It is first-order and provided only for diagnostics; unlike
// leapfrog it is not expected to bound long-run energy drift (spec
// property 7 explicitly expects it to fail that bound).
func euler(bodies []*bodystore.Body, h float64, cfg nbconfig.Config) {
	for _, b := range bodies {
		if b.Fixed || b.Dragged {
			continue
		}
		a := b.Force
		b.Acceleration = a
		b.Velocity = clampSpeed(b.Velocity.Scale(cfg.DampingFactor).Add(a.Scale(h)))
		b.Position = b.Position.Add(b.Velocity.Scale(h))
	}
}
