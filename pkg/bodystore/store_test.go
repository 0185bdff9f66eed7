package bodystore_test

import (
	"math"
	"testing"

	"github.com/nbody2d/core/pkg/bodystore"
	"github.com/nbody2d/core/pkg/vec2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TEST: GIVEN an empty store WHEN Add is called THEN Len increments and
// a usable handle is returned.
func TestStore_Add(t *testing.T) {
	s := bodystore.New(10)
	h := s.Add(vec2.Vector2{X: 1, Y: 2}, vec2.Vector2{}, 5)
	require.Equal(t, 1, s.Len())

	b, err := s.Get(h)
	require.NoError(t, err)
	assert.Equal(t, 5.0, b.Mass())
	assert.Equal(t, vec2.Vector2{X: 1, Y: 2}, b.Position)
}

// TEST: GIVEN a mass/density change WHEN radius is read THEN it matches
// the clamp(sqrt(m/(pi*rho)), r_min, r_max) invariant (property 1).
func TestBody_DerivedRadius(t *testing.T) {
	s := bodystore.New(1)
	h := s.AddWithDensity(vec2.Vector2{}, vec2.Vector2{}, 100, 1, bodystore.Colour{})
	b, _ := s.Get(h)

	want := math.Sqrt(100 / (math.Pi * 1))
	assert.InDelta(t, want, b.Radius(), 1e-9)

	b.SetMass(1e6)
	assert.Equal(t, bodystore.MaxRadius, b.Radius())

	b.SetDensity(1e9)
	assert.Equal(t, bodystore.MinRadius, b.Radius())
}

// TEST: GIVEN mass/density writes below the floor WHEN set THEN they
// clamp instead of going non-positive.
func TestBody_MassDensityClamp(t *testing.T) {
	s := bodystore.New(1)
	h := s.AddWithDensity(vec2.Vector2{}, vec2.Vector2{}, -5, -1, bodystore.Colour{})
	b, _ := s.Get(h)
	assert.Equal(t, bodystore.MinMass, b.Mass())
	assert.Equal(t, bodystore.MinDensity, b.Density())
}

// TEST: GIVEN several bodies WHEN one is removed THEN its handle no
// longer resolves but the others remain addressable by handle.
func TestStore_RemoveKeepsOtherHandlesValid(t *testing.T) {
	s := bodystore.New(1)
	h1 := s.Add(vec2.Vector2{X: 1}, vec2.Vector2{}, 1)
	h2 := s.Add(vec2.Vector2{X: 2}, vec2.Vector2{}, 1)
	h3 := s.Add(vec2.Vector2{X: 3}, vec2.Vector2{}, 1)

	require.True(t, s.Remove(h1))
	require.Equal(t, 2, s.Len())

	_, err := s.Get(h1)
	assert.Error(t, err)

	b2, err := s.Get(h2)
	require.NoError(t, err)
	assert.Equal(t, 2.0, b2.Position.X)

	b3, err := s.Get(h3)
	require.NoError(t, err)
	assert.Equal(t, 3.0, b3.Position.X)
}

// TEST: GIVEN a removed handle WHEN Remove is called again THEN it
// reports false without panicking.
func TestStore_RemoveUnknownHandle(t *testing.T) {
	s := bodystore.New(1)
	h := s.Add(vec2.Vector2{}, vec2.Vector2{}, 1)
	require.True(t, s.Remove(h))
	assert.False(t, s.Remove(h))
}

// TEST: GIVEN a populated store WHEN Clear is called THEN it becomes
// empty and old handles resolve to nothing.
func TestStore_Clear(t *testing.T) {
	s := bodystore.New(1)
	h := s.Add(vec2.Vector2{}, vec2.Vector2{}, 1)
	s.Clear()
	assert.Equal(t, 0, s.Len())
	_, err := s.Get(h)
	assert.Error(t, err)
}

// TEST: GIVEN a body near a query point WHEN FindByPosition is called
// with a tolerance THEN it is found; otherwise it is not.
func TestStore_FindByPosition(t *testing.T) {
	s := bodystore.New(1)
	s.Add(vec2.Vector2{X: 10, Y: 10}, vec2.Vector2{}, 1)

	b, ok := s.FindByPosition(vec2.Vector2{X: 10.5, Y: 10}, 1)
	require.True(t, ok)
	assert.Equal(t, 10.0, b.Position.X)

	_, ok = s.FindByPosition(vec2.Vector2{X: 100, Y: 100}, 1)
	assert.False(t, ok)
}

// TEST: GIVEN a body WHEN AddForce is called multiple times THEN Force
// accumulates, and ClearForce resets it.
func TestBody_ForceAccumulation(t *testing.T) {
	s := bodystore.New(1)
	h := s.Add(vec2.Vector2{}, vec2.Vector2{}, 1)
	b, _ := s.Get(h)

	b.AddForce(vec2.Vector2{X: 1, Y: 0})
	b.AddForce(vec2.Vector2{X: 0, Y: 2})
	assert.Equal(t, vec2.Vector2{X: 1, Y: 2}, b.Force)

	b.ClearForce()
	assert.Equal(t, vec2.Vector2{}, b.Force)
}

// TEST: GIVEN a selected body WHEN it is removed THEN the cached
// selection clears instead of dangling.
func TestStore_RemoveClearsSelection(t *testing.T) {
	s := bodystore.New(1)
	h := s.Add(vec2.Vector2{}, vec2.Vector2{}, 1)
	s.SetSelected(h)

	_, ok := s.Selected()
	require.True(t, ok)

	s.Remove(h)
	_, ok = s.Selected()
	assert.False(t, ok)
}
