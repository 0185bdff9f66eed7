// Package reporting renders an HTML summary of one simulation run:
// final energy/drift figures, the force method used, and embedded SVG
// plots (energy-vs-time, per-body trajectories). It composes its HTML
// as a hand-written templ.Component rather than parsing *.tmpl files
// from disk, since no templ-generated Go sits in this tree.
package reporting

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"os"

	"github.com/a-h/templ"
	"github.com/zerodha/logf"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nbody2d/core/pkg/engine"
)

// Renderer owns the output assets directory and produces plots and
// the final report HTML.
type Renderer struct {
	log       *logf.Logger
	assetsDir string
}

// NewRenderer creates a Renderer, ensuring assetsDir exists.
func NewRenderer(log *logf.Logger, assetsDir string) (*Renderer, error) {
	if log == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if _, err := os.Stat(assetsDir); os.IsNotExist(err) {
		if err := os.MkdirAll(assetsDir, os.ModePerm); err != nil {
			return nil, fmt.Errorf("failed to create assets directory: %w", err)
		}
	}
	return &Renderer{log: log, assetsDir: assetsDir}, nil
}

// RunSummary is the data a caller assembles at the end of a run to
// feed the HTML report.
type RunSummary struct {
	BodyCount           int
	Steps               int64
	FinalStats          engine.Stats
	EnergySamples       []EnergySample
	EnergyDriftPct      float64
	EnergyPlotPath      string
	TrajectoryPlotPaths map[string]string
}

// titleCaser title-cases display labels (e.g. an integrator/method
// name) for the report.
var titleCaser = cases.Title(language.English)

// Report builds a templ.Component that renders summary as a
// self-contained HTML fragment. Callers can embed it in a page or
// write it directly to a file via templ.Component.Render.
func Report(summary RunSummary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return reportTemplate.Execute(w, summary)
	})
}

// WriteReport renders summary's report to path.
func (r *Renderer) WriteReport(ctx context.Context, path string, summary RunSummary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file '%s': %w", path, err)
	}
	defer f.Close()

	if err := Report(summary).Render(ctx, f); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	r.log.Info("wrote report", "path", path)
	return nil
}

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"title": func(s string) string { return titleCaser.String(s) },
	"formatFloat": func(value float64, precision int) string {
		return fmt.Sprintf(fmt.Sprintf("%%.%df", precision), value)
	},
	"embedSVG": func(path string) (template.HTML, error) {
		if path == "" {
			return template.HTML("<div class=\"placeholder\">no plot available</div>"), nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return template.HTML(fmt.Sprintf("<div class=\"placeholder\">plot unavailable: %s</div>", err)), nil
		}
		return template.HTML(content), nil
	},
}).Parse(reportHTML))

const reportHTML = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>nbody2d run report</title></head>
<body>
  <h1>Simulation report</h1>
  <table>
    <tr><td>Bodies</td><td>{{.BodyCount}}</td></tr>
    <tr><td>Steps</td><td>{{.Steps}}</td></tr>
    <tr><td>Force method</td><td>{{title (printf "%v" .FinalStats.Method)}}</td></tr>
    <tr><td>Last step total (ms)</td><td>{{formatFloat .FinalStats.TotalMs 3}}</td></tr>
    <tr><td>Collisions (last step)</td><td>{{.FinalStats.Collisions}}</td></tr>
    <tr><td>Energy drift</td><td>{{formatFloat .EnergyDriftPct 4}}%</td></tr>
  </table>
  <h2>Energy</h2>
  {{embedSVG .EnergyPlotPath}}
  <h2>Trajectories</h2>
  {{range $label, $path := .TrajectoryPlotPaths}}
    <h3>{{title $label}}</h3>
    {{embedSVG $path}}
  {{end}}
</body>
</html>
`
