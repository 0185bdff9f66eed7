package quadtree_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/nbody2d/core/pkg/bodystore"
	"github.com/nbody2d/core/pkg/quadtree"
	"github.com/nbody2d/core/pkg/vec2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(positions []vec2.Vector2, mass float64) *bodystore.Store {
	s := bodystore.New(1)
	for _, p := range positions {
		s.Add(p, vec2.Vector2{}, mass)
	}
	return s
}

// TEST: GIVEN no bodies WHEN Build is called THEN an empty tree results.
func TestBuild_Empty(t *testing.T) {
	tree := quadtree.Build(nil)
	assert.Nil(t, tree.Root)
	assert.Equal(t, 0, tree.Outside)
}

// TEST: GIVEN a single body WHEN Build is called THEN the root is a
// leaf containing it with Mass/COM equal to the body's.
func TestBuild_SingleBody(t *testing.T) {
	s := newStore([]vec2.Vector2{{X: 1, Y: 1}}, 5)
	tree := quadtree.Build(s.Iter())

	require.NotNil(t, tree.Root)
	assert.True(t, tree.Root.IsLeaf())
	assert.Equal(t, 5.0, tree.Root.Mass)
	assert.Equal(t, vec2.Vector2{X: 1, Y: 1}, tree.Root.COM)
}

// TEST: GIVEN a random population WHEN Build is called THEN the
// mass/COM recurrence holds at every node to within 1e-5 relative
// error (property 3).
func TestBuild_MassComRecurrence(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	n := 1000
	positions := make([]vec2.Vector2, n)
	for i := range positions {
		positions[i] = vec2.Vector2{
			X: rng.Float64()*2000 - 1000,
			Y: rng.Float64()*2000 - 1000,
		}
	}
	s := newStore(positions, 1)
	tree := quadtree.Build(s.Iter())

	var totalMass float64
	var com vec2.Vector2
	for _, b := range s.Iter() {
		totalMass += b.Mass()
		com = com.Add(b.Position.Scale(b.Mass()))
	}
	com = com.Scale(1 / totalMass)

	assert.InEpsilon(t, totalMass, tree.Root.Mass, 1e-5)
	assert.InDelta(t, com.X, tree.Root.COM.X, 1e-5*math.Max(1, math.Abs(com.X)))
	assert.InDelta(t, com.Y, tree.Root.COM.Y, 1e-5*math.Max(1, math.Abs(com.Y)))
}

// TEST: GIVEN two bodies at (near) indistinguishable positions WHEN
// Build is called THEN the tree does not subdivide forever and both
// bodies are accounted for in the root mass.
func TestBuild_CoincidentBodiesDoNotExplode(t *testing.T) {
	s := newStore([]vec2.Vector2{
		{X: 0, Y: 0},
		{X: 1e-8, Y: 0},
	}, 1)
	tree := quadtree.Build(s.Iter())

	require.NotNil(t, tree.Root)
	assert.InDelta(t, 2.0, tree.Root.Mass, 1e-9)
}

// TEST: GIVEN bodies forming four distinct quadrants WHEN Build is
// called THEN the root is subdivided (no longer a leaf) and aggregates
// the mass of all four bodies.
func TestBuild_SubdividesIntoQuadrants(t *testing.T) {
	s := newStore([]vec2.Vector2{
		{X: -10, Y: -10},
		{X: 10, Y: -10},
		{X: -10, Y: 10},
		{X: 10, Y: 10},
	}, 1)
	tree := quadtree.Build(s.Iter())

	require.False(t, tree.Root.IsLeaf())
	assert.InDelta(t, 4.0, tree.Root.Mass, 1e-9)
}

// TEST: GIVEN two bodies WHEN Force is evaluated with theta=0 (always
// descend to the bodies) THEN the true forces (mass times the returned
// acceleration) are equal, opposite, and match
// G*m1*m2*d/(d^2+eps^2)^1.5 in magnitude (property 4).
func TestForce_TwoBodySanity(t *testing.T) {
	s := bodystore.New(1)
	hA := s.Add(vec2.Vector2{X: 0, Y: 0}, vec2.Vector2{}, 10)
	hB := s.Add(vec2.Vector2{X: 5, Y: 0}, vec2.Vector2{}, 20)
	tree := quadtree.Build(s.Iter())

	bA, _ := s.Get(hA)
	bB, _ := s.Get(hB)

	const g, eps = 1.0, 0.1
	fA := tree.Force(bA, 0, g, eps)
	fB := tree.Force(bB, 0, g, eps)

	want := g * bA.Mass() * bB.Mass() * 5 / math.Pow(25+eps*eps, 1.5)
	assert.InDelta(t, want, fA.X*bA.Mass(), 1e-9)
	assert.InDelta(t, 0, fA.Y, 1e-9)
	assert.InDelta(t, -want, fB.X*bB.Mass(), 1e-9)
	assert.Greater(t, fA.X, 0.0)
	assert.Less(t, fB.X, 0.0)
}

// TEST: GIVEN a body WHEN its own leaf is visited during Force THEN it
// contributes nothing to its own force (self-interaction avoidance).
func TestForce_SkipsSelf(t *testing.T) {
	s := bodystore.New(1)
	h := s.Add(vec2.Vector2{}, vec2.Vector2{}, 10)
	tree := quadtree.Build(s.Iter())
	b, _ := s.Get(h)

	f := tree.Force(b, 0.5, 1, 0.1)
	assert.Equal(t, vec2.Vector2{}, f)
}

// TEST: GIVEN bodies that define the root's bounding box WHEN Build
// runs THEN none of them is counted in Outside.
func TestBuild_OutsideRootBoxNeverHappensForBoundingBuild(t *testing.T) {
	// Build always derives the root box from the input bodies, so no
	// finite body position can be outside at build time. This test
	// documents that the fresh-build invariant holds.
	s := newStore([]vec2.Vector2{{X: -5, Y: -5}, {X: 5, Y: 5}}, 1)
	tree := quadtree.Build(s.Iter())
	assert.Equal(t, 0, tree.Outside)
}
