package report

import (
	"fmt"
	"image/color"

	"statlab/internal/analysis"
	"statlab/internal/stats"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	barColor  = color.RGBA{R: 70, G: 110, B: 220, A: 180}
	lineColor = color.RGBA{R: 220, G: 80, B: 40, A: 255}
	dotColor  = color.RGBA{R: 30, G: 90, B: 200, A: 110}
)

// Histogram draws one bar per distinct value of table, with the value's
// frequency as height.
func Histogram(path string, table []stats.FrequencyEntry) error {
	if len(table) == 0 {
		return errors.Wrap(stats.ErrEmptySample, "histogram")
	}
	values := make(plotter.Values, len(table))
	labels := make([]string, len(table))
	for i, e := range table {
		values[i] = float64(e.Frequency)
		labels[i] = formatNumber(e.Value)
	}

	p := plot.New()
	p.Title.Text = "Frequency histogram"
	p.X.Label.Text = "Value"
	p.Y.Label.Text = "Frequency"
	p.Add(plotter.NewGrid())

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return errors.Wrap(err, "histogram")
	}
	bars.Color = barColor
	p.Add(bars)
	p.NominalX(labels...)

	return save(p, 10*vg.Inch, 6*vg.Inch, path)
}

// BoxPlots draws the original and transformed samples side by side.
func BoxPlots(path string, original, transformed []float64) error {
	p := plot.New()
	p.Title.Text = "Box plot"
	p.Y.Label.Text = "Value"
	p.Add(plotter.NewGrid())

	for i, sample := range [][]float64{original, transformed} {
		if len(sample) == 0 {
			return errors.Wrap(stats.ErrEmptySample, "box plot")
		}
		box, err := plotter.NewBoxPlot(vg.Points(60), float64(i), plotter.Values(sample))
		if err != nil {
			return errors.Wrap(err, "box plot")
		}
		p.Add(box)
	}
	p.NominalX("Original", "Transformed")

	return save(p, 8*vg.Inch, 8*vg.Inch, path)
}

// Scatter draws the regression points together with the fitted line across
// the observed x range.
func Scatter(path string, r *analysis.RegressionReport) error {
	if len(r.X) == 0 {
		return errors.Wrap(stats.ErrEmptySample, "scatter plot")
	}
	points := make(plotter.XYs, len(r.X))
	for i := range r.X {
		points[i].X = r.X[i]
		points[i].Y = r.Y[i]
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Scatter plot and linear regression (%d points)", r.N)
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"
	p.Add(plotter.NewGrid())

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return errors.Wrap(err, "scatter plot")
	}
	scatter.GlyphStyle.Color = dotColor
	scatter.GlyphStyle.Radius = vg.Points(2)

	xMin, xMax := floats.Min(r.X), floats.Max(r.X)
	line, err := plotter.NewLine(plotter.XYs{
		{X: xMin, Y: r.Predict(xMin)},
		{X: xMax, Y: r.Predict(xMax)},
	})
	if err != nil {
		return errors.Wrap(err, "regression line")
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = lineColor

	p.Add(scatter, line)
	p.Legend.Add(fmt.Sprintf("%d points", r.N), scatter)
	p.Legend.Add(fmt.Sprintf("y = %.2f + %.2f·x", r.Intercept, r.Slope), line)

	return save(p, 6*vg.Inch, 4*vg.Inch, path)
}

func save(p *plot.Plot, w, h vg.Length, path string) error {
	if err := p.Save(w, h, path); err != nil {
		return errors.Wrapf(err, "save chart %s", path)
	}
	return nil
}
