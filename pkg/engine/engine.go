// Package engine sequences force evaluation, collision resolution and
// integration into one physics step (spec section 4.8), guarded by an
// Idle/Stepping state machine so a step can never be re-entered while
// in progress.
package engine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/looplab/fsm"

	"github.com/nbody2d/core/pkg/applog"
	"github.com/nbody2d/core/pkg/bodystore"
	"github.com/nbody2d/core/pkg/collision"
	"github.com/nbody2d/core/pkg/force"
	"github.com/nbody2d/core/pkg/integrator"
	"github.com/nbody2d/core/pkg/nbconfig"
	"github.com/nbody2d/core/pkg/nberrors"
	"github.com/nbody2d/core/pkg/soa"
)

const (
	stateIdle     = "idle"
	stateStepping = "stepping"

	eventBeginStep = "begin_step"
	eventEndStep   = "end_step"
)

// Stats is the per-step diagnostic record the facade exposes.
type Stats struct {
	Method     force.Method
	TotalMs    float64
	ForceMs    float64
	IntegrateMs float64
	CollideMs  float64
	TreeMs     float64
	BodyCount  int
	ForceOps   int64
	Collisions int
}

// Engine is the physics core facade: one BodyStore plus the
// collaborators needed to advance it (spec section 2).
type Engine struct {
	store     *bodystore.Store
	arrays    *soa.Arrays
	intState  *integrator.State
	log       *applog.Logger
	cfg       nbconfig.Config
	fsm       *fsm.FSM
	stats     Stats
	stepCount int64
}

// New creates an engine bound to store, configured per cfg, logging
// hot-path detail through log (pass applog.Discard() to silence it).
func New(store *bodystore.Store, cfg nbconfig.Config, log *applog.Logger) *Engine {
	if log == nil {
		log = applog.Discard()
	}
	e := &Engine{
		store:    store,
		arrays:   soa.New(),
		intState: integrator.NewState(),
		log:      log,
		cfg:      cfg,
	}
	e.fsm = fsm.NewFSM(
		stateIdle,
		fsm.Events{
			{Name: eventBeginStep, Src: []string{stateIdle}, Dst: stateStepping},
			{Name: eventEndStep, Src: []string{stateStepping}, Dst: stateIdle},
		},
		fsm.Callbacks{},
	)
	return e
}

// Config returns the engine's current configuration snapshot.
func (e *Engine) Config() nbconfig.Config {
	return e.cfg
}

// SetConfig replaces the engine's configuration. The new value takes
// effect at the next step boundary (spec: config changes apply at
// step boundaries); this is safe to call between Step calls.
func (e *Engine) SetConfig(cfg nbconfig.Config) {
	e.cfg = cfg
}

// Store exposes the body store the engine operates on.
func (e *Engine) Store() *bodystore.Store {
	return e.store
}

// Stats returns the record from the most recently completed step.
func (e *Engine) Stats() Stats {
	return e.stats
}

// Step advances the simulation by one Δt, following the strict
// force -> collision -> integration order (spec 4.8, 5). Re-entering
// Step while a prior call is still in progress returns
// nberrors.ErrStepInProgress via the FSM transition failing; since
// Step is not itself re-entrant (no goroutines call it concurrently
// for the same engine), this primarily guards against a callback
// invoked from RecomputeForces calling Step again.
func (e *Engine) Step(ctx context.Context, deltaT float64) error {
	if len(e.store.Iter()) == 0 {
		return nil
	}

	if err := e.fsm.Event(ctx, eventBeginStep); err != nil {
		return fmt.Errorf("engine: step: %w", nberrors.ErrStepInProgress)
	}
	defer e.fsm.Event(ctx, eventEndStep)

	cfg := e.cfg.Snapshot()
	h := deltaT * cfg.TimeScale
	if cfg.AdaptiveTimeStep {
		h = e.adaptiveStep(cfg, h)
	}

	total := time.Now()

	forceStats := force.Evaluate(e.store, e.arrays, cfg, e.log)

	var collideStats collision.Stats
	collideStart := time.Now()
	if cfg.EnableCollisions {
		collideStats = collision.Resolve(e.store.Iter(), cfg)
	}
	collideMs := time.Since(collideStart).Seconds() * 1000

	integrateStart := time.Now()
	recompute := func() {
		force.Evaluate(e.store, e.arrays, cfg, e.log)
	}
	e.intState.Integrate(e.store.Iter(), h, cfg, recompute)
	integrateMs := time.Since(integrateStart).Seconds() * 1000

	e.stepCount++
	if e.stepCount%nbconfig.TrailSamplePeriod == 0 {
		e.sampleTrails()
	}

	e.stats = Stats{
		Method:      forceStats.Method,
		TotalMs:     time.Since(total).Seconds() * 1000,
		ForceMs:     forceStats.ForceMs,
		IntegrateMs: integrateMs,
		CollideMs:   collideMs,
		TreeMs:      forceStats.TreeMs,
		BodyCount:   e.store.Len(),
		ForceOps:    forceStats.ForceOps,
		Collisions:  collideStats.Collisions,
	}

	e.log.Debug("step complete",
		"method", e.stats.Method,
		"total_ms", e.stats.TotalMs,
		"bodies", e.stats.BodyCount,
		"collisions", e.stats.Collisions,
	)
	return nil
}

// adaptiveStep implements h_adapt = sqrt(eps / a_max), clamped to
// [MinTimeStep, MaxTimeStep], where a_max is the largest current
// acceleration magnitude across bodies.
func (e *Engine) adaptiveStep(cfg nbconfig.Config, fallback float64) float64 {
	var aMax float64
	for _, b := range e.store.Iter() {
		if l := b.Acceleration.Length(); l > aMax {
			aMax = l
		}
	}
	if aMax <= 0 {
		return clampStep(fallback, cfg)
	}
	h := math.Sqrt(cfg.AdaptiveEpsilon / aMax)
	return clampStep(h, cfg)
}

func clampStep(h float64, cfg nbconfig.Config) float64 {
	if h < cfg.MinTimeStep {
		return cfg.MinTimeStep
	}
	if h > cfg.MaxTimeStep {
		return cfg.MaxTimeStep
	}
	return h
}

// sampleTrails pushes each body's current position onto its trail at
// the configured sampling ratio (spec: trails appended at ~5:1 ratio
// to physics steps).
func (e *Engine) sampleTrails() {
	for _, b := range e.store.Iter() {
		if b.Trail != nil {
			b.Trail.Push(b.Position)
		}
	}
}

// State returns the FSM's current state name ("idle" or "stepping"),
// mainly useful for tests and diagnostics.
func (e *Engine) State() string {
	return e.fsm.Current()
}
