package force

import (
	"runtime"
	"sync"

	"github.com/nbody2d/core/pkg/applog"
	"github.com/nbody2d/core/pkg/bodystore"
	"github.com/nbody2d/core/pkg/nbconfig"
	"github.com/nbody2d/core/pkg/quadtree"
)

// barnesHut builds a tree once and evaluates every receiver's force
// against it in parallel. Workers share only the read-only tree; each
// receiver writes to its own Body, so no locking is needed across the
// fan-out (mirrors the disjoint-write argument in the concurrency
// model).
func barnesHut(bodies []*bodystore.Body, cfg nbconfig.Config, log *applog.Logger) *quadtree.Tree {
	tree := quadtree.Build(bodies, quadtree.WithLogger(log))
	if tree.Root == nil {
		return tree
	}

	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}
	if workers > len(bodies) {
		workers = len(bodies)
	}

	chunk := (len(bodies) + workers - 1) / workers
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > len(bodies) {
			end = len(bodies)
		}
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				b := bodies[i]
				b.ClearForce()
				if b.Fixed {
					continue
				}
				b.Force = tree.Force(b, cfg.BarnesHutTheta, cfg.GravitationalConstant, cfg.SofteningLength)
			}
		}(start, end)
	}
	wg.Wait()

	return tree
}
