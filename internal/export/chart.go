package export

import (
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"sandpile/internal/batch"
)

// WriteChart plots sweeps and topples needed to settle against toppling
// probability and encodes the chart as PNG.
func WriteChart(w io.Writer, stats []batch.FrameStats) error {
	if len(stats) < 2 {
		return ErrNoFrames
	}
	probs := make([]float64, len(stats))
	sweeps := make([]float64, len(stats))
	topples := make([]float64, len(stats))
	for i, s := range stats {
		probs[i] = s.Probability
		sweeps[i] = float64(s.Sweeps)
		topples[i] = float64(s.Topples)
	}

	graph := chart.Chart{
		Width:  800,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  "probability",
			Style: chart.Style{FontSize: 10.0},
		},
		YAxis: chart.YAxis{
			Name:  "sweeps",
			Style: chart.Style{FontSize: 10.0},
		},
		YAxisSecondary: chart.YAxis{
			Name:  "topples",
			Style: chart.Style{FontSize: 10.0},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Sweeps to settle",
				XValues: probs,
				YValues: sweeps,
				Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 3.0},
			},
			chart.ContinuousSeries{
				Name:    "Topples",
				YAxis:   chart.YAxisSecondary,
				XValues: probs,
				YValues: topples,
				Style:   chart.Style{StrokeColor: drawing.Color{R: 255, G: 165, B: 0, A: 255}, StrokeWidth: 3.0},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(chart.PNG, w)
}

// SaveChart writes the sweep chart to path, creating parent directories.
func SaveChart(path string, stats []batch.FrameStats) error {
	return save(path, func(w io.Writer) error { return WriteChart(w, stats) })
}
