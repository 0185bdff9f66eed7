package force

import (
	"time"

	"github.com/nbody2d/core/pkg/applog"
	"github.com/nbody2d/core/pkg/bodystore"
	"github.com/nbody2d/core/pkg/nbconfig"
	"github.com/nbody2d/core/pkg/soa"
)

// Stats reports what happened during one Evaluate call, for the
// engine facade to fold into its aggregate per-step stats record.
type Stats struct {
	Method   Method
	ForceMs  float64
	TreeMs   float64
	ForceOps int64
	Outside  int
}

// Evaluate clears every body's accumulated force and writes new values
// per the method selection rule in Select. Fixed bodies are skipped as
// receivers but still participate as sources.
func Evaluate(store *bodystore.Store, arrays *soa.Arrays, cfg nbconfig.Config, log *applog.Logger) Stats {
	bodies := store.Iter()
	n := len(bodies)
	if n == 0 {
		return Stats{Method: MethodNaiveDirect}
	}

	method := Select(n, cfg)
	start := time.Now()
	stats := Stats{Method: method}

	switch method {
	case MethodBarnesHut:
		treeStart := time.Now()
		tree := barnesHut(bodies, cfg, log)
		stats.TreeMs = time.Since(treeStart).Seconds() * 1000
		stats.Outside = tree.Outside
		stats.ForceOps = int64(n) // one tree traversal per receiver

	case MethodBlockedDirect:
		arrays.Refresh(store)
		blockedDirect(arrays, cfg)
		arrays.WriteBack(store)
		stats.ForceOps = int64(n) * int64(n-1)

	case MethodMortonDirect:
		arrays.Refresh(store)
		mortonDirect(arrays, cfg)
		arrays.WriteBack(store)
		stats.ForceOps = int64(n) * int64(n-1)

	default:
		naiveDirect(bodies, cfg)
		stats.ForceOps = int64(n) * int64(n-1)
	}

	stats.ForceMs = time.Since(start).Seconds() * 1000
	log.Debug("force evaluated", "method", method, "bodies", n, "ms", stats.ForceMs)
	return stats
}
