// Package force implements the per-step force evaluation pipeline:
// selection among {naive direct, blocked direct, Morton-ordered direct,
// Barnes-Hut} and the shared softening/clamp conventions they obey.
//
// Every variant returns, per receiving body, the gravitational
// attraction "per unit target mass", meaning the quantity already
// equals the acceleration contributed by the sources, without
// multiplying by the receiver's own mass. This mirrors the Barnes-Hut
// node contribution formula, which never reads the receiver's mass.
// pkg/integrator treats Body.Force as already-an-acceleration
// accordingly and does not divide by mass again.
package force

import "github.com/nbody2d/core/pkg/nbconfig"

// Method names the force evaluation strategy used for a given step.
type Method string

const (
	MethodNaiveDirect   Method = "naive_direct"
	MethodBlockedDirect Method = "blocked_direct"
	MethodMortonDirect  Method = "morton_direct"
	MethodBarnesHut     Method = "barnes_hut"
)

// blockSize is the i-index chunk width used by the blocked direct
// kernel for cache locality.
const blockSize = 32

// Select picks the force method for a population of n bodies per the
// exact, ordered rule in the specification. GPU is out of scope for
// this core; when UseGPU is set and no GPU path exists, selection
// falls through to the same rule as if UseGPU were false.
func Select(n int, cfg nbconfig.Config) Method {
	if cfg.UseBarnesHut && n > cfg.MaxBodiesForDirect {
		return MethodBarnesHut
	}
	if n > 100 {
		return MethodMortonDirect
	}
	if n > 50 {
		return MethodBlockedDirect
	}
	return MethodNaiveDirect
}
