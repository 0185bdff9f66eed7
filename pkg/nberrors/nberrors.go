// Package nberrors enumerates the error taxonomy of the physics core.
package nberrors

import "errors"

// Sentinel errors. Wrap with fmt.Errorf("...: %w", ErrX) at call sites so
// callers can errors.Is/errors.As against these.
var (
	// ErrInvalidParameter is returned when a setter receives a value
	// outside its valid domain (mass <= 0, density <= 0, time_step <= 0,
	// negative trail capacity). Most setters clamp instead of erroring;
	// this is reserved for callers that need to distinguish the event.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrIndexOutOfRange is returned by Trail.Get for i outside [0, size).
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrOutsideRootBox marks a body position that fell outside the
	// quadtree's root bounding box at build time; the body is retained
	// in the store but excluded from the tree for that step.
	ErrOutsideRootBox = errors.New("position outside quadtree root box")

	// ErrDegenerateGeometry marks coincident-position handling: two
	// bodies whose separation squared is below the co-location
	// threshold. Not fatal; informational for callers that want to
	// detect the event.
	ErrDegenerateGeometry = errors.New("degenerate geometry: coincident bodies")

	// ErrStepInProgress is returned when Step is called while a prior
	// Step on the same engine has not returned.
	ErrStepInProgress = errors.New("physics engine: step already in progress")

	// ErrUnknownHandle is returned by BodyStore operations given a
	// handle that does not (or no longer) identifies a body.
	ErrUnknownHandle = errors.New("unknown body handle")
)
