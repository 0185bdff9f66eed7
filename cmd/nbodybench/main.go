// Command nbodybench compares the wall-clock cost of the direct and
// Barnes-Hut force evaluation paths across a range of body counts,
// printing a summary table. For the direct path, force.Select still
// picks the variant (naive, blocked or Morton-ordered) from the body
// count; the table reports the method actually used.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"

	oplog "github.com/nbody2d/core/internal/applog"
	"github.com/nbody2d/core/pkg/applog"
	"github.com/nbody2d/core/pkg/bodystore"
	"github.com/nbody2d/core/pkg/force"
	"github.com/nbody2d/core/pkg/nbconfig"
	"github.com/nbody2d/core/pkg/soa"
	"github.com/nbody2d/core/pkg/vec2"
)

// methodCase adjusts the config so that Select takes either the direct
// path (Barnes-Hut disabled) or the Barnes-Hut path (threshold 0) at
// every size. Select's direct-variant thresholds still apply, so the
// "naive_direct" case runs blocked direct at 100 bodies and
// Morton-ordered direct above that.
type methodCase struct {
	name    string
	prepare func(cfg nbconfig.Config) nbconfig.Config
}

var cases = []methodCase{
	{"naive_direct", func(cfg nbconfig.Config) nbconfig.Config {
		cfg.UseBarnesHut = false
		cfg.MaxBodiesForDirect = 1 << 30
		return cfg
	}},
	{"barnes_hut", func(cfg nbconfig.Config) nbconfig.Config {
		cfg.UseBarnesHut = true
		cfg.MaxBodiesForDirect = 0
		return cfg
	}},
}

func randomStore(n int, seed int64) *bodystore.Store {
	r := rand.New(rand.NewSource(seed))
	store := bodystore.New(1)
	for i := 0; i < n; i++ {
		p := vec2.Vector2{X: r.Float64()*2000 - 1000, Y: r.Float64()*2000 - 1000}
		v := vec2.Vector2{X: r.Float64()*2 - 1, Y: r.Float64()*2 - 1}
		mass := 0.5 + r.Float64()*10
		store.Add(p, v, mass)
	}
	return store
}

func runCase(c methodCase, n int) (time.Duration, force.Method) {
	store := randomStore(n, int64(n))
	arrays := soa.New()
	cfg := c.prepare(nbconfig.Default())

	start := time.Now()
	stats := force.Evaluate(store, arrays, cfg, applog.Discard())
	return time.Since(start), stats.Method
}

func main() {
	lg := oplog.GetLogger("info")
	lg.Info("starting nbody2d force benchmark")

	sizes := []int{100, 500, 2000, 8000}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Bodies", "Method requested", "Method used", "Elapsed"})

	for _, n := range sizes {
		for _, c := range cases {
			elapsed, used := runCase(c, n)
			_ = table.Append([]string{
				fmt.Sprintf("%d", n),
				c.name,
				string(used),
				elapsed.String(),
			})
		}
	}
	_ = table.Render()

	lg.Info("benchmark complete")
}
