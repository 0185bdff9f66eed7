package force_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/nbody2d/core/pkg/applog"
	"github.com/nbody2d/core/pkg/bodystore"
	"github.com/nbody2d/core/pkg/force"
	"github.com/nbody2d/core/pkg/nbconfig"
	"github.com/nbody2d/core/pkg/soa"
	"github.com/nbody2d/core/pkg/vec2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TEST: GIVEN two bodies A and B WHEN naive direct evaluation runs
// THEN the force on A points +x, on B points -x, and A's returned
// acceleration matches G*mB*d/(d^2+eps^2)^1.5 (property 4, direct path).
func TestEvaluate_TwoBodySanity_NaiveDirect(t *testing.T) {
	store := bodystore.New(1)
	hA := store.Add(vec2.Vector2{}, vec2.Vector2{}, 5)
	hB := store.Add(vec2.Vector2{X: 10}, vec2.Vector2{}, 7)

	cfg := nbconfig.Default()
	cfg.SofteningLength = 0.1
	arrays := soa.New()
	force.Evaluate(store, arrays, cfg, applog.Discard())

	bA, _ := store.Get(hA)
	bB, _ := store.Get(hB)

	want := cfg.GravitationalConstant * bB.Mass() * 10 / math.Pow(100+cfg.SofteningLength*cfg.SofteningLength, 1.5)
	assert.InDelta(t, want, bA.Force.X, 1e-9)
	assert.Greater(t, bA.Force.X, 0.0)
	assert.Less(t, bB.Force.X, 0.0)
}

// TEST: GIVEN a closed system with no external forces WHEN naive
// direct evaluation runs THEN the sum of TRUE forces (mass * returned
// acceleration contribution) is approximately zero (property 6).
func TestEvaluate_NewtonThirdLaw(t *testing.T) {
	store := bodystore.New(1)
	store.Add(vec2.Vector2{X: -1}, vec2.Vector2{}, 2)
	store.Add(vec2.Vector2{X: 0}, vec2.Vector2{}, 3)
	store.Add(vec2.Vector2{X: 2}, vec2.Vector2{}, 1)

	cfg := nbconfig.Default()
	arrays := soa.New()
	force.Evaluate(store, arrays, cfg, applog.Discard())

	var sum vec2.Vector2
	for _, b := range store.Iter() {
		sum = sum.Add(b.Force.Scale(b.Mass()))
	}
	assert.InDelta(t, 0, sum.X, 1e-9)
	assert.InDelta(t, 0, sum.Y, 1e-9)
}

// TEST: GIVEN a population large enough to trigger Barnes-Hut and
// theta=0.3 WHEN compared against naive direct on an identical layout
// THEN per-body forces agree within the spec's S3 relative tolerance.
func TestEvaluate_DirectVsBarnesHut(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	n := 500

	build := func() *bodystore.Store {
		s := bodystore.New(1)
		for i := 0; i < n; i++ {
			p := vec2.Vector2{X: rng.Float64()*20 - 10, Y: rng.Float64()*20 - 10}
			s.AddWithDensity(p, vec2.Vector2{}, 1+rng.Float64()*5, 1, bodystore.Colour{})
		}
		return s
	}

	directStore := build()
	rng = rand.New(rand.NewSource(7))
	treeStore := build()

	cfgDirect := nbconfig.Default()
	cfgDirect.UseBarnesHut = false
	arrays := soa.New()
	force.Evaluate(directStore, arrays, cfgDirect, applog.Discard())

	cfgTree := nbconfig.Default()
	cfgTree.UseBarnesHut = true
	cfgTree.MaxBodiesForDirect = 0
	cfgTree.BarnesHutTheta = 0.3
	force.Evaluate(treeStore, arrays, cfgTree, applog.Discard())

	directBodies := directStore.Iter()
	treeBodies := treeStore.Iter()
	require.Len(t, treeBodies, len(directBodies))

	var worstRelErr float64
	for i := range directBodies {
		d := directBodies[i].Force
		tr := treeBodies[i].Force
		diff := d.Sub(tr).Length()
		denom := d.Length()
		if denom < 1e-9 {
			continue
		}
		relErr := diff / denom
		if relErr > worstRelErr {
			worstRelErr = relErr
		}
	}
	assert.Less(t, worstRelErr, 0.5, "worst per-body relative error should be bounded for theta=0.3")
}

// TEST: GIVEN a fixed body WHEN Evaluate runs THEN it receives no
// force but still contributes as a source to other bodies.
func TestEvaluate_FixedBodySkippedAsReceiver(t *testing.T) {
	store := bodystore.New(1)
	hFixed := store.Add(vec2.Vector2{}, vec2.Vector2{}, 100)
	bFixed, _ := store.Get(hFixed)
	bFixed.Fixed = true
	hOrbit := store.Add(vec2.Vector2{X: 5}, vec2.Vector2{}, 1)

	cfg := nbconfig.Default()
	arrays := soa.New()
	force.Evaluate(store, arrays, cfg, applog.Discard())

	bFixed, _ = store.Get(hFixed)
	bOrbit, _ := store.Get(hOrbit)
	assert.Equal(t, vec2.Vector2{}, bFixed.Force)
	assert.NotEqual(t, vec2.Vector2{}, bOrbit.Force)
}

// TEST: GIVEN zero bodies WHEN Evaluate runs THEN it returns cleanly
// with no panic (EmptyInput).
func TestEvaluate_EmptyInput(t *testing.T) {
	store := bodystore.New(1)
	arrays := soa.New()
	stats := force.Evaluate(store, arrays, nbconfig.Default(), applog.Discard())
	assert.Equal(t, int64(0), stats.ForceOps)
}
