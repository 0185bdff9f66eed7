// Command nbodysim runs a headless simulation from a config.yaml,
// printing a one-line stats summary and writing an HTML report with
// an energy-vs-time plot at the end of the run.
package main

import (
	"context"
	"fmt"
	"os"

	oplog "github.com/nbody2d/core/internal/applog"
	appconfig "github.com/nbody2d/core/internal/config"
	"github.com/nbody2d/core/internal/reporting"
	"github.com/nbody2d/core/pkg/applog"
	"github.com/nbody2d/core/pkg/bodystore"
	"github.com/nbody2d/core/pkg/energy"
	"github.com/nbody2d/core/pkg/engine"
	"github.com/nbody2d/core/pkg/nbconfig"
	"github.com/nbody2d/core/pkg/vec2"
)

// seedBodies populates store with a simple Sun-and-planets style
// configuration. The physics core itself is agnostic to how bodies
// are populated; this CLI is a minimal standalone driver for it.
func seedBodies(store *bodystore.Store) {
	hSun := store.Add(vec2.Vector2{}, vec2.Vector2{}, 1000)
	if b, err := store.Get(hSun); err == nil {
		b.Fixed = true
	}
	store.Add(vec2.Vector2{X: 150}, vec2.Vector2{Y: 2.6}, 1)
	store.Add(vec2.Vector2{X: 300}, vec2.Vector2{Y: 1.8}, 3)
}

func main() {
	lg := oplog.GetLogger("info")

	physicsCfg := nbconfig.Default()
	if appCfg, err := appconfig.GetConfig(); err != nil {
		lg.Warn("no usable config.yaml found, using built-in physics defaults", "error", err)
	} else {
		physicsCfg = appCfg.Physics
	}

	store := bodystore.New(500)
	seedBodies(store)

	e := engine.New(store, physicsCfg, applog.Discard())

	const steps = 5000
	const dt = 0.016
	samples := make([]reporting.EnergySample, 0, steps/20)

	for i := 0; i < steps; i++ {
		if stepErr := e.Step(context.Background(), dt); stepErr != nil {
			lg.Error("step failed", "error", stepErr)
			os.Exit(1)
		}
		if i%20 == 0 {
			r := energy.Measure(store.Iter(), physicsCfg)
			samples = append(samples, reporting.EnergySample{
				TimeSeconds: float64(i) * dt,
				Kinetic:     r.Kinetic,
				Potential:   r.Potential,
				Total:       r.Total,
			})
		}
	}

	stats := e.Stats()
	fmt.Printf("ran %d steps, method=%s, bodies=%d\n", steps, stats.Method, stats.BodyCount)

	renderer, err := reporting.NewRenderer(lg, "./report_assets")
	if err != nil {
		lg.Error("failed to create renderer", "error", err)
		return
	}

	energyPlotPath, err := renderer.GenerateEnergyPlot(samples)
	if err != nil {
		lg.Warn("failed to generate energy plot", "error", err)
	}

	var driftPct float64
	if len(samples) > 1 && samples[0].Total != 0 {
		driftPct = 100 * (samples[len(samples)-1].Total - samples[0].Total) / samples[0].Total
	}

	summary := reporting.RunSummary{
		BodyCount:      store.Len(),
		Steps:          steps,
		FinalStats:     stats,
		EnergySamples:  samples,
		EnergyDriftPct: driftPct,
		EnergyPlotPath: energyPlotPath,
	}

	if err := renderer.WriteReport(context.Background(), "./report.html", summary); err != nil {
		lg.Error("failed to write report", "error", err)
		return
	}
	lg.Info("report written", "path", "./report.html")
}
