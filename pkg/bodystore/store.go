package bodystore

import (
	"fmt"

	"github.com/EngoEngine/ecs"
	"github.com/nbody2d/core/pkg/nberrors"
	"github.com/nbody2d/core/pkg/trail"
	"github.com/nbody2d/core/pkg/vec2"
)

// Store is the ordered, owned collection of Bodies. It is the sole
// owner of its Bodies; external holders refer to them by Handle.
// Indices are not stable across Remove; Handles are, for the lifetime
// of the body's presence in the store.
//
// Add/Remove/Find are not safe for concurrent use; callers serialise
// mutation to step boundaries as described in the engine facade.
type Store struct {
	bodies       []*Body
	index        map[Handle]int
	trailCap     int
	lastSelected Handle
	hasSelected  bool
	lastDragged  Handle
	hasDragged   bool
}

// New creates an empty store. trailCapacity configures the ring-buffer
// size given to every body created via Add.
func New(trailCapacity int) *Store {
	if trailCapacity < 1 {
		trailCapacity = trail.DefaultCapacity
	}
	return &Store{
		index:    make(map[Handle]int),
		trailCap: trailCapacity,
	}
}

// Add creates a body with default density and colour and appends it to
// the store, returning its handle.
func (s *Store) Add(p, v vec2.Vector2, mass float64) Handle {
	return s.AddWithDensity(p, v, mass, DefaultDensity, Colour{R: 1, G: 1, B: 1})
}

// AddWithDensity creates a body with explicit density and colour.
func (s *Store) AddWithDensity(p, v vec2.Vector2, mass, density float64, colour Colour) Handle {
	h := Handle{ecs.NewBasic()}
	b := &Body{
		handle:   h,
		Position: p,
		Velocity: v,
		Colour:   colour,
		Trail:    trail.New(s.trailCap),
	}
	b.SetMass(mass)
	b.SetDensity(density)

	s.index[h] = len(s.bodies)
	s.bodies = append(s.bodies, b)
	return h
}

// Remove deletes the body identified by h, if present. The last body
// is swapped into the removed slot to keep the backing slice dense, so
// removal is O(1); index order is not observable by the force pipeline,
// so this reordering is safe. Any cached selected/dragged handle
// referencing h is cleared.
func (s *Store) Remove(h Handle) bool {
	idx, ok := s.index[h]
	if !ok {
		return false
	}

	last := len(s.bodies) - 1
	if idx != last {
		s.bodies[idx] = s.bodies[last]
		s.index[s.bodies[idx].handle] = idx
	}
	s.bodies[last] = nil
	s.bodies = s.bodies[:last]
	delete(s.index, h)

	if s.hasSelected && s.lastSelected == h {
		s.hasSelected = false
	}
	if s.hasDragged && s.lastDragged == h {
		s.hasDragged = false
	}
	return true
}

// Clear removes every body from the store.
func (s *Store) Clear() {
	s.bodies = s.bodies[:0]
	s.index = make(map[Handle]int)
	s.hasSelected = false
	s.hasDragged = false
}

// Len returns the number of bodies currently in the store.
func (s *Store) Len() int {
	return len(s.bodies)
}

// Iter returns the store's bodies in storage order. The slice shares
// the store's backing array and its Body pointers are live, so the
// force, collision and integration passes mutate bodies through it.
// Index order is not observable by the force pipeline beyond
// float-rounding tie-breaks in pairwise sums.
func (s *Store) Iter() []*Body {
	return s.bodies
}

// Get returns the body identified by h.
func (s *Store) Get(h Handle) (*Body, error) {
	idx, ok := s.index[h]
	if !ok {
		return nil, fmt.Errorf("bodystore: get: %w", nberrors.ErrUnknownHandle)
	}
	return s.bodies[idx], nil
}

// FindByPosition returns the first body within tolerance of p, or
// (nil, false). If tolerance <= 0, it defaults to 2x the candidate
// body's radius (per-body, so a large body is easier to pick than a
// small one at the same screen distance).
func (s *Store) FindByPosition(p vec2.Vector2, tolerance float64) (*Body, bool) {
	for _, b := range s.bodies {
		tol := tolerance
		if tol <= 0 {
			tol = 2 * b.Radius()
		}
		if p.Sub(b.Position).Length() <= tol {
			return b, true
		}
	}
	return nil, false
}

// SetSelected records h as the selected body, for single-selection
// collaborators; clearing on Remove is automatic.
func (s *Store) SetSelected(h Handle) {
	s.lastSelected = h
	s.hasSelected = true
}

// ClearSelected drops the cached selection.
func (s *Store) ClearSelected() {
	s.hasSelected = false
}

// Selected returns the cached selection, if any body still holds it.
func (s *Store) Selected() (*Body, bool) {
	if !s.hasSelected {
		return nil, false
	}
	b, err := s.Get(s.lastSelected)
	if err != nil {
		s.hasSelected = false
		return nil, false
	}
	return b, true
}
