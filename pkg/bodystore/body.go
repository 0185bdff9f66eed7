// Package bodystore holds the owned, index-addressable collection of
// simulated bodies: their physical state, visual metadata, and
// interaction flags.
package bodystore

import (
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/nbody2d/core/pkg/trail"
	"github.com/nbody2d/core/pkg/vec2"
)

const (
	// MinMass is the smallest mass a body may carry; writes below this
	// are clamped.
	MinMass = 0.1
	// MinDensity is the smallest density a body may carry; writes below
	// this are clamped.
	MinDensity = 1e-3
	// MinRadius and MaxRadius bound the derived radius.
	MinRadius = 2.0
	MaxRadius = 100.0
	// DefaultDensity is used by Add when no density is supplied.
	DefaultDensity = 0.1
)

// Colour is an RGB triple in [0,1]^3.
type Colour struct {
	R, G, B float64
}

// Handle identifies a body for the lifetime of its presence in a
// BodyStore. Handles remain valid across deletions of other bodies;
// indices into the store do not. Backed by an EngoEngine/ecs
// BasicEntity so identity comparisons are cheap integer comparisons.
type Handle struct {
	ecs.BasicEntity
}

// Body is a point mass with physical state, visual metadata, and
// interaction flags.
type Body struct {
	handle Handle

	Position     vec2.Vector2
	Velocity     vec2.Vector2
	Acceleration vec2.Vector2
	Force        vec2.Vector2

	mass    float64
	density float64
	radius  float64

	Colour Colour

	Selected bool
	Dragged  bool
	Fixed    bool

	Trail *trail.Trail
}

// Handle returns the body's stable identity.
func (b *Body) Handle() Handle {
	return b.handle
}

// Mass returns the body's current mass.
func (b *Body) Mass() float64 {
	return b.mass
}

// Density returns the body's current density.
func (b *Body) Density() float64 {
	return b.density
}

// Radius returns the body's derived radius.
func (b *Body) Radius() float64 {
	return b.radius
}

// SetMass updates the body's mass, clamping to MinMass, and recomputes
// the derived radius.
func (b *Body) SetMass(m float64) {
	if m < MinMass {
		m = MinMass
	}
	b.mass = m
	b.refreshRadius()
}

// SetDensity updates the body's density, clamping to MinDensity, and
// recomputes the derived radius.
func (b *Body) SetDensity(rho float64) {
	if rho < MinDensity {
		rho = MinDensity
	}
	b.density = rho
	b.refreshRadius()
}

func (b *Body) refreshRadius() {
	r := math.Sqrt(b.mass / (math.Pi * b.density))
	if r < MinRadius {
		r = MinRadius
	}
	if r > MaxRadius {
		r = MaxRadius
	}
	b.radius = r
}

// AddForce accumulates a force contribution onto the body for the
// current step.
func (b *Body) AddForce(f vec2.Vector2) {
	b.Force = b.Force.Add(f)
}

// ClearForce zeroes the body's accumulated force, called once per step
// before force evaluation.
func (b *Body) ClearForce() {
	b.Force = vec2.Vector2{}
}
