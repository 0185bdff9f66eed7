// Package soa implements the structure-of-arrays scratch mirror used by
// the force evaluator's vectorised inner loops. It is a derived view
// refreshed from a bodystore.Store before each step; it is never a
// source of truth.
package soa

import (
	"github.com/nbody2d/core/pkg/bodystore"
	"github.com/nbody2d/core/pkg/vec2"
)

// Arrays holds one parallel slice per physical quantity, indexed
// identically to the Store's Iter order at the time of the last Refresh.
type Arrays struct {
	Positions     []vec2.Vector2
	Velocities    []vec2.Vector2
	Accelerations []vec2.Vector2
	Forces        []vec2.Vector2
	Masses        []float64
	Radii         []float64
	Fixed         []bool

	handles []bodystore.Handle
}

// New allocates an empty Arrays ready for Refresh.
func New() *Arrays {
	return &Arrays{}
}

// Refresh resizes and repopulates every slice from the store's current
// bodies, in the store's iteration order. Call once per step before
// any vectorised kernel reads from it.
func (a *Arrays) Refresh(store *bodystore.Store) {
	bodies := store.Iter()
	n := len(bodies)

	a.Positions = growVec2(a.Positions, n)
	a.Velocities = growVec2(a.Velocities, n)
	a.Accelerations = growVec2(a.Accelerations, n)
	a.Forces = growVec2(a.Forces, n)
	a.Masses = growFloat(a.Masses, n)
	a.Radii = growFloat(a.Radii, n)
	a.Fixed = growBool(a.Fixed, n)
	a.handles = make([]bodystore.Handle, n)

	for i, b := range bodies {
		a.Positions[i] = b.Position
		a.Velocities[i] = b.Velocity
		a.Accelerations[i] = b.Acceleration
		a.Forces[i] = vec2.Vector2{}
		a.Masses[i] = b.Mass()
		a.Radii[i] = b.Radius()
		a.Fixed[i] = b.Fixed
		a.handles[i] = b.Handle()
	}
}

// Len returns the number of bodies mirrored.
func (a *Arrays) Len() int {
	return len(a.Positions)
}

// Handle returns the body handle originally at slice index i, for
// writing results back through bodystore.Store.Get.
func (a *Arrays) Handle(i int) bodystore.Handle {
	return a.handles[i]
}

// WriteBack copies accumulated forces back onto the store's bodies.
// The integrator and collision resolver instead work directly against
// Body pointers for simplicity; WriteBack exists for kernels (e.g. the
// blocked/Morton direct variants) that operate purely on the SoA
// mirror and need to publish results.
func (a *Arrays) WriteBack(store *bodystore.Store) {
	for i, h := range a.handles {
		b, err := store.Get(h)
		if err != nil {
			continue
		}
		b.Force = a.Forces[i]
	}
}

func growVec2(s []vec2.Vector2, n int) []vec2.Vector2 {
	if cap(s) >= n {
		return s[:n]
	}
	return make([]vec2.Vector2, n)
}

func growFloat(s []float64, n int) []float64 {
	if cap(s) >= n {
		return s[:n]
	}
	return make([]float64, n)
}

func growBool(s []bool, n int) []bool {
	if cap(s) >= n {
		return s[:n]
	}
	return make([]bool, n)
}
