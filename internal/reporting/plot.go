package reporting

import (
	"fmt"
	"image/color"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Axis and error-message constants shared by the plot generators.
const (
	labelTimeSeconds = "Time (s)"
	errCreateLine    = "failed to create line plotter: %w"
	errSavePlot      = "failed to save plot %s: %w"
)

// EnergySample is one point of the energy-vs-time history a caller
// accumulates across steps (typically by sampling pkg/energy.Measure
// every N engine.Step calls).
type EnergySample struct {
	TimeSeconds float64
	Kinetic     float64
	Potential   float64
	Total       float64
}

// GenerateEnergyPlot renders total/kinetic/potential energy against
// time as an SVG, for visualising conservation drift over a run.
func (r *Renderer) GenerateEnergyPlot(samples []EnergySample) (string, error) {
	if len(samples) == 0 {
		return "", fmt.Errorf("cannot generate energy plot: no samples")
	}

	total := make(plotter.XYs, len(samples))
	kinetic := make(plotter.XYs, len(samples))
	potential := make(plotter.XYs, len(samples))
	for i, s := range samples {
		total[i] = plotter.XY{X: s.TimeSeconds, Y: s.Total}
		kinetic[i] = plotter.XY{X: s.TimeSeconds, Y: s.Kinetic}
		potential[i] = plotter.XY{X: s.TimeSeconds, Y: s.Potential}
	}

	p := plot.New()
	p.Title.Text = "Energy vs. Time"
	p.X.Label.Text = labelTimeSeconds
	p.Y.Label.Text = "Energy"

	totalLine, err := plotter.NewLine(total)
	if err != nil {
		return "", fmt.Errorf(errCreateLine, err)
	}
	totalLine.Color = color.RGBA{R: 0, G: 0, B: 0, A: 255}

	kineticLine, err := plotter.NewLine(kinetic)
	if err != nil {
		return "", fmt.Errorf(errCreateLine, err)
	}
	kineticLine.Color = color.RGBA{B: 255, A: 255}

	potentialLine, err := plotter.NewLine(potential)
	if err != nil {
		return "", fmt.Errorf(errCreateLine, err)
	}
	potentialLine.Color = color.RGBA{R: 255, A: 255}

	p.Add(totalLine, kineticLine, potentialLine)
	p.Legend.Add("total", totalLine)
	p.Legend.Add("kinetic", kineticLine)
	p.Legend.Add("potential", potentialLine)

	plotPath := filepath.Join(r.assetsDir, "energy_vs_time.svg")
	if err := p.Save(5*vg.Inch, 4*vg.Inch, plotPath); err != nil {
		return "", fmt.Errorf(errSavePlot, plotPath, err)
	}
	r.log.Info("generated plot", "path", plotPath)
	return plotPath, nil
}

// TrailPoint is one sampled position of a body's trail, as captured
// by pkg/trail.Trail.Iter.
type TrailPoint struct {
	X, Y float64
}

// GenerateTrajectoryPlot renders a body's trail as an SVG scatter,
// one file per body name.
func (r *Renderer) GenerateTrajectoryPlot(bodyLabel string, points []TrailPoint) (string, error) {
	if len(points) == 0 {
		return "", fmt.Errorf("cannot generate trajectory plot for %s: no points", bodyLabel)
	}

	pts := make(plotter.XYs, len(points))
	for i, pt := range points {
		pts[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Trajectory: %s", bodyLabel)
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return "", fmt.Errorf("failed to create scatter plotter: %w", err)
	}
	scatter.Color = color.RGBA{G: 128, A: 255}
	p.Add(scatter)

	fileName := fmt.Sprintf("trajectory_%s.svg", sanitizeFileName(bodyLabel))
	plotPath := filepath.Join(r.assetsDir, fileName)
	if err := p.Save(4*vg.Inch, 4*vg.Inch, plotPath); err != nil {
		return "", fmt.Errorf(errSavePlot, plotPath, err)
	}
	r.log.Info("generated plot", "path", plotPath)
	return plotPath, nil
}

func sanitizeFileName(s string) string {
	out := make([]rune, 0, len(s))
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			out = append(out, c)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
