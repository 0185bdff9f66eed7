// Package collision implements the all-pairs broad+narrow phase
// collision resolver: overlap detection, positional separation and
// impulse-based elastic/inelastic response (spec section 4.6).
package collision

import (
	"math"

	"github.com/nbody2d/core/pkg/bodystore"
	"github.com/nbody2d/core/pkg/nbconfig"
	"github.com/nbody2d/core/pkg/vec2"
)

// Stats reports how many overlapping pairs a Resolve call found.
type Stats struct {
	Collisions int
}

// Resolve runs naive O(N²) broad+narrow phase detection over bodies,
// applying positional correction and impulse response to every
// overlapping pair in deterministic (i<j) index order (spec: sequential,
// ordered, not parallelised).
func Resolve(bodies []*bodystore.Body, cfg nbconfig.Config) Stats {
	stats := Stats{}
	n := len(bodies)
	for i := 0; i < n; i++ {
		bi := bodies[i]
		for j := i + 1; j < n; j++ {
			bj := bodies[j]
			delta := bj.Position.Sub(bi.Position)
			dist := delta.Length()
			minDist := bi.Radius() + bj.Radius()
			if dist > minDist {
				continue
			}

			var n2 vec2.Vector2
			if dist > 1e-9 {
				n2 = delta.Scale(1 / dist)
			} else {
				// Coincident centers: pick an arbitrary separation axis.
				n2 = vec2.Vector2{X: 1}
			}

			overlap := minDist - dist
			separate(bi, bj, n2, overlap)
			impulse(bi, bj, n2, cfg.Restitution)
			stats.Collisions++
		}
	}
	return stats
}

// separate pushes an overlapping pair apart along n (pointing from bi
// toward bj) by overlap. Fixed/dragged bodies do not move; if both are
// immovable neither does and the pair is left interpenetrating.
func separate(bi, bj *bodystore.Body, n vec2.Vector2, overlap float64) {
	iMovable := !bi.Fixed && !bi.Dragged
	jMovable := !bj.Fixed && !bj.Dragged

	switch {
	case iMovable && jMovable:
		half := overlap / 2
		bi.Position = bi.Position.Sub(n.Scale(half))
		bj.Position = bj.Position.Add(n.Scale(half))
	case iMovable:
		bi.Position = bi.Position.Sub(n.Scale(overlap))
	case jMovable:
		bj.Position = bj.Position.Add(n.Scale(overlap))
	}
}

// impulse applies the elastic-with-restitution impulse law along n.
// Fixed/dragged bodies act as infinite mass: only the other body's
// velocity changes.
func impulse(bi, bj *bodystore.Body, n vec2.Vector2, e float64) {
	vRel := bj.Velocity.Sub(bi.Velocity)
	vn := vRel.Dot(n)
	if vn >= 0 {
		return
	}

	invMassI := inverseMass(bi)
	invMassJ := inverseMass(bj)
	denom := invMassI + invMassJ
	if denom <= 0 {
		return
	}

	j := -(1 + e) * vn / denom
	if invMassI > 0 {
		bi.Velocity = bi.Velocity.Sub(n.Scale(j * invMassI))
	}
	if invMassJ > 0 {
		bj.Velocity = bj.Velocity.Add(n.Scale(j * invMassJ))
	}
}

func inverseMass(b *bodystore.Body) float64 {
	if b.Fixed || b.Dragged {
		return 0
	}
	m := b.Mass()
	if m <= 0 || math.IsInf(m, 0) {
		return 0
	}
	return 1 / m
}
