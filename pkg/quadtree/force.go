package quadtree

import (
	"math"

	"github.com/nbody2d/core/pkg/bodystore"
	"github.com/nbody2d/core/pkg/vec2"
)

// traversalStack is the explicit LIFO worklist that lets Force walk the
// tree depth-first without recursion. It starts empty and grows by
// append.
type traversalStack struct {
	nodes []*Node
}

func (s *traversalStack) push(n *Node) {
	s.nodes = append(s.nodes, n)
}

func (s *traversalStack) pop() (*Node, bool) {
	if len(s.nodes) == 0 {
		return nil, false
	}
	n := s.nodes[len(s.nodes)-1]
	s.nodes = s.nodes[:len(s.nodes)-1]
	return n, true
}

// Force computes the softened gravitational attraction on body from
// every other body aggregated in the tree, using the Barnes-Hut
// opening criterion w < theta*d (w = full node width = 2*HalfExtent).
// The returned vector is force-per-unit-target-mass: the integrator
// divides by nothing further, it IS the acceleration contribution
// scaled by G and the source masses only (see package force's
// convention note). epsilon is the softening length; callers pass the
// engine's configured softening_length so tree and direct paths agree.
func (t *Tree) Force(body *bodystore.Body, theta, g, epsilon float64) vec2.Vector2 {
	if t.Root == nil || t.Root.Mass == 0 {
		return vec2.Vector2{}
	}

	var out vec2.Vector2
	var stack traversalStack
	stack.push(t.Root)
	eps2 := epsilon * epsilon

	for {
		node, ok := stack.pop()
		if !ok {
			break
		}
		if node.Mass == 0 {
			continue
		}

		if node.isLeaf {
			if node.body == body {
				continue
			}
			out = out.Add(contribution(node.COM, node.Mass, body.Position, g, eps2))
			continue
		}

		delta := node.COM.Sub(body.Position)
		d2 := delta.LengthSquared()
		w := 2 * node.HalfExtent
		if w*w < theta*theta*d2 {
			out = out.Add(contribution(node.COM, node.Mass, body.Position, g, eps2))
			continue
		}

		for _, c := range node.children {
			stack.push(c)
		}
	}

	return out
}

func contribution(com vec2.Vector2, mass float64, at vec2.Vector2, g float64, eps2 float64) vec2.Vector2 {
	delta := com.Sub(at)
	d2 := delta.LengthSquared()
	if d2 < 1e-10 {
		return vec2.Vector2{}
	}
	denom := math.Pow(d2+eps2, 1.5)
	return delta.Scale(g * mass / denom)
}
