// Package quadtree implements the axis-aligned recursive spatial
// partition used by the Barnes-Hut force evaluator. A Tree is transient:
// it is rebuilt every step from the current body positions and holds
// non-owning references into the bodystore for the duration of one
// traversal pass.
package quadtree

import (
	"math"

	"github.com/nbody2d/core/pkg/applog"
	"github.com/nbody2d/core/pkg/bodystore"
	"github.com/nbody2d/core/pkg/vec2"
)

const (
	// MinNodeSize floors the root's half-extent in Build, so a population
	// with zero spatial extent still gets a box of non-zero size.
	// Subdivided children are not floored.
	MinNodeSize = 0.1
	// NodePadding inflates the root box beyond the tight bounding box
	// of the bodies so bodies sitting exactly on the boundary are
	// unambiguously interior.
	NodePadding = 1.05
	// SofteningLength is the package's node-local softening length.
	// Force does not read it; it always softens with its epsilon
	// argument.
	SofteningLength = 1e-2
	// coincidentEpsilon2 is the squared-separation threshold below
	// which two positions are treated as co-located.
	coincidentEpsilon2 = 1e-12
)

// Node is one box of the partition. Empty nodes have Mass == 0 and
// COM == Center. Leaf nodes hold at most one body; internal nodes hold
// none directly and aggregate their four children's mass and COM.
type Node struct {
	Center     vec2.Vector2
	HalfExtent float64

	Mass float64
	COM  vec2.Vector2

	children [4]*Node
	body     *bodystore.Body
	isLeaf   bool
}

// IsLeaf reports whether n has no children (it may still be empty).
func (n *Node) IsLeaf() bool {
	return n.isLeaf
}

// Body returns the single body occupying a leaf, or nil for an empty
// leaf or an internal node.
func (n *Node) Body() *bodystore.Body {
	return n.body
}

// Tree is the root of a quadtree built over one step's body positions.
type Tree struct {
	Root    *Node
	Outside int // bodies skipped because they fell outside the root box
}

// Option configures a Build call.
type Option func(*buildOpts)

type buildOpts struct {
	log *applog.Logger
}

// WithLogger attaches a component logger for build diagnostics.
func WithLogger(l *applog.Logger) Option {
	return func(o *buildOpts) { o.log = l }
}

// Build constructs a tree over the given bodies. An empty input
// produces an empty tree (Root == nil). Bodies outside the computed
// root box are skipped and counted in Outside, per the
// OutsideRootBox error mode: they stay in the store, just absent from
// this step's tree.
func Build(bodies []*bodystore.Body, opts ...Option) *Tree {
	o := buildOpts{log: applog.Discard()}
	for _, opt := range opts {
		opt(&o)
	}

	t := &Tree{}
	if len(bodies) == 0 {
		return t
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, b := range bodies {
		minX = math.Min(minX, b.Position.X)
		minY = math.Min(minY, b.Position.Y)
		maxX = math.Max(maxX, b.Position.X)
		maxY = math.Max(maxY, b.Position.Y)
	}

	center := vec2.Vector2{X: (minX + maxX) / 2, Y: (minY + maxY) / 2}
	extentX := maxX - minX
	extentY := maxY - minY
	half := NodePadding * math.Max(extentX, extentY) / 2
	if half < MinNodeSize {
		half = MinNodeSize
	}

	t.Root = &Node{Center: center, HalfExtent: half, isLeaf: true}

	for _, b := range bodies {
		if !contains(t.Root, b.Position) {
			t.Outside++
			continue
		}
		insert(t.Root, b)
	}

	computeMassAndCOM(t.Root)
	o.log.Debug("quadtree built", "bodies", len(bodies), "outside", t.Outside, "half_extent", half)
	return t
}

// contains tests the half-open box [c-s, c+s) on each axis, so
// quadrants partition the box without overlap.
func contains(n *Node, p vec2.Vector2) bool {
	return p.X >= n.Center.X-n.HalfExtent && p.X < n.Center.X+n.HalfExtent &&
		p.Y >= n.Center.Y-n.HalfExtent && p.Y < n.Center.Y+n.HalfExtent
}

// quadrant returns 0..3 for the child of n that p belongs to, encoded
// as the low two bits of (x>center.x, y>center.y).
func quadrant(n *Node, p vec2.Vector2) int {
	idx := 0
	if p.X > n.Center.X {
		idx |= 1
	}
	if p.Y > n.Center.Y {
		idx |= 2
	}
	return idx
}

func childCenter(parent *Node, q int) vec2.Vector2 {
	half := parent.HalfExtent / 2
	c := parent.Center
	if q&1 != 0 {
		c.X += half
	} else {
		c.X -= half
	}
	if q&2 != 0 {
		c.Y += half
	} else {
		c.Y -= half
	}
	return c
}

// insert is iterative: it descends until it finds a home for body,
// subdividing occupied leaves as needed.
func insert(root *Node, body *bodystore.Body) {
	node := root
	for {
		if node.isLeaf && node.body == nil {
			node.body = body
			return
		}

		if node.isLeaf {
			other := node.body
			if other.Position.Sub(body.Position).LengthSquared() < coincidentEpsilon2 {
				// Co-located: accept as single leaf occupancy rather
				// than subdividing forever.
				return
			}

			node.isLeaf = false
			node.body = nil
			half := node.HalfExtent / 2
			for q := 0; q < 4; q++ {
				node.children[q] = &Node{
					Center:     childCenter(node, q),
					HalfExtent: half,
					isLeaf:     true,
				}
			}
			insert(node.children[quadrant(node, other.Position)], other)
			node = node.children[quadrant(node, body.Position)]
			continue
		}

		node = node.children[quadrant(node, body.Position)]
	}
}

// computeMassAndCOM is a post-order traversal establishing the mass/COM
// recurrence invariant.
func computeMassAndCOM(n *Node) {
	if n.isLeaf {
		if n.body != nil {
			n.Mass = n.body.Mass()
			n.COM = n.body.Position
		} else {
			n.Mass = 0
			n.COM = n.Center
		}
		return
	}

	var mass float64
	var com vec2.Vector2
	for _, c := range n.children {
		computeMassAndCOM(c)
		mass += c.Mass
		com = com.Add(c.COM.Scale(c.Mass))
	}
	if mass > 0 {
		com = com.Scale(1 / mass)
	} else {
		com = n.Center
	}
	n.Mass = mass
	n.COM = com
}
