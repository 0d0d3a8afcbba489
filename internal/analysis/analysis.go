// Package analysis composes the stats engine into the three statlab reports.
package analysis

import (
	"fmt"
	"strings"

	"statlab/internal/stats"

	"github.com/pkg/errors"
)

// Kind names one of the supported analyses.
type Kind string

const (
	KindFrequency   Kind = "frequency"
	KindDescriptive Kind = "descriptive"
	KindRegression  Kind = "regression"
)

// Kinds lists every supported analysis.
var Kinds = []Kind{KindFrequency, KindDescriptive, KindRegression}

// ParseKind converts s, case-insensitively, into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown analysis kind %q", s)
}

// FrequencyReport is the result of the frequency analysis.
type FrequencyReport struct {
	Summary      stats.Summary          `json:"summary"`
	Table        []stats.FrequencyEntry `json:"table"`
	MostFrequent stats.FrequencyEntry   `json:"most_frequent"`
	Modes        []float64              `json:"modes"`
	Median       float64                `json:"median"`
	Variance     float64                `json:"variance"`
	StdDev       float64                `json:"standard_deviation"`
}

// Frequency builds the frequency table of sample together with its modes,
// median and population dispersion.
func Frequency(sample []float64) (*FrequencyReport, error) {
	summary, err := stats.Summarize(sample)
	if err != nil {
		return nil, errors.Wrap(err, "frequency analysis")
	}
	table, err := stats.FrequencyTable(sample)
	if err != nil {
		return nil, errors.Wrap(err, "frequency analysis")
	}
	most, _ := stats.MostFrequent(table)
	variance, stddev, err := stats.VarianceAndStdDev(sample)
	if err != nil {
		return nil, errors.Wrap(err, "frequency analysis")
	}
	return &FrequencyReport{
		Summary:      summary,
		Table:        table,
		MostFrequent: most,
		Modes:        stats.Mode(table),
		Median:       summary.Median,
		Variance:     variance,
		StdDev:       stddev,
	}, nil
}

// Options tunes the descriptive analysis' linear transformation.
type Options struct {
	TargetMean float64 `json:"target_mean"`
	FixedValue float64 `json:"fixed_value"`
}

// DefaultOptions moves the mean to 95 while keeping 100 in place.
func DefaultOptions() Options {
	return Options{TargetMean: 95, FixedValue: 100}
}

// DescriptiveReport is the result of the descriptive analysis.
type DescriptiveReport struct {
	Options             Options               `json:"options"`
	Original            []float64             `json:"original"`
	Quartiles           stats.Quartiles       `json:"quartiles"`
	Mean                float64               `json:"mean"`
	StdDev              float64               `json:"standard_deviation"`
	Transform           stats.TransformResult `json:"transform"`
	TransformedMean     float64               `json:"transformed_mean"`
	TransformedStdDev   float64               `json:"transformed_standard_deviation"`
	StemLeaf            []stats.StemLeafRow   `json:"stem_leaf"`
	TransformedStemLeaf []stats.StemLeafRow   `json:"transformed_stem_leaf"`
	BoxPlot             stats.BoxPlot         `json:"box_plot"`
	TransformedBoxPlot  stats.BoxPlot         `json:"transformed_box_plot"`
}

// Descriptive computes quartiles, mean and dispersion of sample, rescales it
// according to opts and describes both the original and the rescaled values.
func Descriptive(sample []float64, opts Options) (*DescriptiveReport, error) {
	r := &DescriptiveReport{
		Options:  opts,
		Original: append([]float64(nil), sample...),
	}
	var err error
	if r.Quartiles, err = stats.FindQuartiles(sample); err != nil {
		return nil, errors.Wrap(err, "descriptive analysis")
	}
	if r.Mean, err = stats.Mean(sample); err != nil {
		return nil, errors.Wrap(err, "descriptive analysis")
	}
	if _, r.StdDev, err = stats.VarianceAndStdDev(sample); err != nil {
		return nil, errors.Wrap(err, "descriptive analysis")
	}
	if r.Transform, err = stats.Rescale(sample, opts.TargetMean, opts.FixedValue); err != nil {
		return nil, errors.Wrap(err, "descriptive analysis")
	}

	transformed := r.Transform.Transformed
	if r.TransformedMean, err = stats.Mean(transformed); err != nil {
		return nil, errors.Wrap(err, "descriptive analysis")
	}
	if _, r.TransformedStdDev, err = stats.VarianceAndStdDev(transformed); err != nil {
		return nil, errors.Wrap(err, "descriptive analysis")
	}
	if r.StemLeaf, err = stats.StemAndLeaf(sample); err != nil {
		return nil, errors.Wrap(err, "stem-and-leaf")
	}
	if r.TransformedStemLeaf, err = stats.StemAndLeaf(transformed); err != nil {
		return nil, errors.Wrap(err, "stem-and-leaf of transformed sample")
	}
	if r.BoxPlot, err = stats.BoxPlotSummary(sample); err != nil {
		return nil, errors.Wrap(err, "box plot")
	}
	if r.TransformedBoxPlot, err = stats.BoxPlotSummary(transformed); err != nil {
		return nil, errors.Wrap(err, "box plot of transformed sample")
	}
	return r, nil
}

// RegressionReport is the result of the regression analysis. X and Y are kept
// for the scatter chart.
type RegressionReport struct {
	stats.RegressionResult
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// Regression fits y against x.
func Regression(x, y []float64) (*RegressionReport, error) {
	res, err := stats.Regress(x, y)
	if err != nil {
		return nil, errors.Wrap(err, "regression analysis")
	}
	return &RegressionReport{
		RegressionResult: res,
		X:                append([]float64(nil), x...),
		Y:                append([]float64(nil), y...),
	}, nil
}
