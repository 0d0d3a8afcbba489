package main

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"statlab/internal/analysis"
	"statlab/internal/loader"
	"statlab/internal/report"
	"statlab/internal/store"

	"github.com/moby/sys/atomicwriter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// runner executes analyses and writes their reports, charts and, when a
// store is configured, database rows.
type runner struct {
	outputDir string
	noChart   bool
	options   analysis.Options
	store     *store.Store
}

// outcome describes the artifacts of one run.
type outcome struct {
	Kind       analysis.Kind
	Input      string
	ReportPath string
	ChartPath  string
	Cost       measurement
}

var chartSuffix = map[analysis.Kind]string{
	analysis.KindFrequency:   "_histogram.png",
	analysis.KindDescriptive: "_boxplot.png",
	analysis.KindRegression:  "_scatter.png",
}

// outputPaths derives report and chart paths from the input file name. An
// empty outputDir places them next to the input.
func outputPaths(input, outputDir string, kind analysis.Kind) (reportPath, chartPath string) {
	dir := outputDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(dir, base+"_output.txt"), filepath.Join(dir, base+chartSuffix[kind])
}

func (r *runner) run(ctx context.Context, kind analysis.Kind, input string) (*outcome, error) {
	return r.runJob(ctx, kind, input, true)
}

// runJob is run with control over memory tracking. Peak memory is process
// wide, so it is only meaningful when this is the only analysis in flight.
func (r *runner) runJob(ctx context.Context, kind analysis.Kind, input string, trackMemory bool) (*outcome, error) {
	var result any
	cost, err := measure(trackMemory, func() error {
		var err error
		result, err = compute(kind, input, r.options)
		return err
	})
	if err != nil {
		return nil, errors.Wrapf(err, "%s analysis of %s", kind, input)
	}

	out := &outcome{Kind: kind, Input: input, Cost: cost}
	out.ReportPath, out.ChartPath = outputPaths(input, r.outputDir, kind)
	if err := writeReport(out.ReportPath, result); err != nil {
		return nil, err
	}
	if r.noChart {
		out.ChartPath = ""
	} else if err := drawChart(out.ChartPath, result); err != nil {
		return nil, err
	}

	if r.store != nil {
		run, err := store.NewRun(string(kind), input, result, cost.DurationSeconds, cost.PeakRSSBytes)
		if err != nil {
			return nil, err
		}
		if err := r.store.SaveRun(ctx, run); err != nil {
			return nil, err
		}
	}

	logrus.WithFields(logrus.Fields{
		"kind":         kind,
		"input":        input,
		"report":       out.ReportPath,
		"chart":        out.ChartPath,
		"duration":     cost.DurationSeconds,
		"memory_bytes": cost.PeakRSSBytes,
	}).Info("analysis complete")
	return out, nil
}

// runAll analyses every input with at most jobs runs in flight and stops at
// the first failure. Peak memory is recorded only when runs are sequential.
func (r *runner) runAll(ctx context.Context, kind analysis.Kind, inputs []string, jobs int) error {
	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	trackMemory := jobs == 1 || len(inputs) == 1
	for _, input := range inputs {
		input := input
		g.Go(func() error {
			_, err := r.runJob(ctx, kind, input, trackMemory)
			return err
		})
	}
	return g.Wait()
}

func compute(kind analysis.Kind, input string, opts analysis.Options) (any, error) {
	switch kind {
	case analysis.KindFrequency:
		sample, err := loader.LoadSample(input)
		if err != nil {
			return nil, err
		}
		r, err := analysis.Frequency(sample)
		if err != nil {
			return nil, err
		}
		return r, nil
	case analysis.KindDescriptive:
		sample, err := loader.LoadSample(input)
		if err != nil {
			return nil, err
		}
		r, err := analysis.Descriptive(sample, opts)
		if err != nil {
			return nil, err
		}
		return r, nil
	case analysis.KindRegression:
		x, y, err := loader.LoadPairs(input)
		if err != nil {
			return nil, err
		}
		r, err := analysis.Regression(x, y)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, errors.Errorf("unknown analysis kind %q", kind)
	}
}

func writeReport(path string, result any) (retErr error) {
	var write func(io.Writer) error
	switch v := result.(type) {
	case *analysis.FrequencyReport:
		write = func(w io.Writer) error { return report.WriteFrequency(w, v) }
	case *analysis.DescriptiveReport:
		write = func(w io.Writer) error { return report.WriteDescriptive(w, v) }
	case *analysis.RegressionReport:
		write = func(w io.Writer) error { return report.WriteRegression(w, v) }
	default:
		return errors.Errorf("no report layout for %T", result)
	}

	w, err := atomicwriter.New(path, 0o644)
	if err != nil {
		return errors.Wrapf(err, "create report %s", path)
	}
	defer func() {
		if err := w.Close(); err != nil && retErr == nil {
			retErr = errors.Wrapf(err, "write report %s", path)
		}
	}()
	return write(w)
}

func drawChart(path string, result any) error {
	switch v := result.(type) {
	case *analysis.FrequencyReport:
		return report.Histogram(path, v.Table)
	case *analysis.DescriptiveReport:
		return report.BoxPlots(path, v.Original, v.Transform.Transformed)
	case *analysis.RegressionReport:
		return report.Scatter(path, v)
	default:
		return errors.Errorf("no chart for %T", result)
	}
}
