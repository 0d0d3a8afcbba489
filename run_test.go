package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"statlab/internal/analysis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestOutputPaths(t *testing.T) {
	rep, chart := outputPaths("data/views.txt", "", analysis.KindFrequency)
	assert.Equal(t, filepath.Join("data", "views_output.txt"), rep)
	assert.Equal(t, filepath.Join("data", "views_histogram.png"), chart)

	rep, chart = outputPaths("data/points.xlsx", "out", analysis.KindRegression)
	assert.Equal(t, filepath.Join("out", "points_output.txt"), rep)
	assert.Equal(t, filepath.Join("out", "points_scatter.png"), chart)

	_, chart = outputPaths("grades.txt", "", analysis.KindDescriptive)
	assert.Equal(t, "grades_boxplot.png", chart)
}

func TestRunEachKind(t *testing.T) {
	dir := t.TempDir()
	inputs := map[analysis.Kind]string{
		analysis.KindFrequency:   writeInput(t, dir, "views.txt", "5\n1\n2\n2\n3\n4\n"),
		analysis.KindDescriptive: writeInput(t, dir, "grades.txt", "5\n70\n80\n90\n60\n100\n"),
		analysis.KindRegression:  writeInput(t, dir, "points.txt", "M = 4\n1\t5\n2\t7\n3\t9\n4\t11\n"),
	}
	r := &runner{options: analysis.DefaultOptions()}

	for kind, input := range inputs {
		out, err := r.run(context.Background(), kind, input)
		require.NoError(t, err, kind)
		assert.Equal(t, kind, out.Kind)

		text, err := os.ReadFile(out.ReportPath)
		require.NoError(t, err)
		assert.NotEmpty(t, text)

		info, err := os.Stat(out.ChartPath)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}

	text, err := os.ReadFile(filepath.Join(dir, "points_output.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(text), "Trend: positive")
}

func TestRunWithoutChart(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(out, 0o755))
	input := writeInput(t, dir, "views.txt", "3\n1\n1\n2\n")

	r := &runner{outputDir: out, noChart: true}
	res, err := r.run(context.Background(), analysis.KindFrequency, input)
	require.NoError(t, err)
	assert.Empty(t, res.ChartPath)
	assert.FileExists(t, filepath.Join(out, "views_output.txt"))
	assert.NoFileExists(t, filepath.Join(out, "views_histogram.png"))
}

func TestRunFailures(t *testing.T) {
	dir := t.TempDir()
	r := &runner{noChart: true}

	short := writeInput(t, dir, "short.txt", "4\n1\n2\n")
	_, err := r.run(context.Background(), analysis.KindFrequency, short)
	assert.ErrorContains(t, err, "expected 4 values, read 2")

	flat := writeInput(t, dir, "flat.txt", "3\n1 2\n1 3\n1 4\n")
	_, err = r.run(context.Background(), analysis.KindRegression, flat)
	assert.ErrorContains(t, err, "division by zero")
	assert.NoFileExists(t, filepath.Join(dir, "flat_output.txt"))

	_, err = r.run(context.Background(), analysis.Kind("histogram"), short)
	assert.Error(t, err)
}

func TestRunAll(t *testing.T) {
	dir := t.TempDir()
	inputs := []string{
		writeInput(t, dir, "a.txt", "2\n1\n2\n"),
		writeInput(t, dir, "b.txt", "3\n4\n4\n5\n"),
		writeInput(t, dir, "c.txt", "1\n9\n"),
	}
	r := &runner{noChart: true}
	require.NoError(t, r.runAll(context.Background(), analysis.KindFrequency, inputs, 2))
	for _, name := range []string{"a_output.txt", "b_output.txt", "c_output.txt"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}

	inputs = append(inputs, filepath.Join(dir, "missing.txt"))
	assert.Error(t, r.runAll(context.Background(), analysis.KindFrequency, inputs, 2))
}

func TestWriteReportUnknownResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x_output.txt")
	err := writeReport(path, 42)
	assert.ErrorContains(t, err, "no report layout for int")
	assert.NoFileExists(t, path)
}

func TestRunJobMemoryTracking(t *testing.T) {
	rssBytesFunc = func() float64 { return 500 }
	t.Cleanup(func() { rssBytesFunc = rssBytes })

	dir := t.TempDir()
	input := writeInput(t, dir, "views.txt", "3\n1\n1\n2\n")
	r := &runner{noChart: true}

	out, err := r.runJob(context.Background(), analysis.KindFrequency, input, true)
	require.NoError(t, err)
	assert.Equal(t, 500.0, out.Cost.PeakRSSBytes)

	out, err = r.runJob(context.Background(), analysis.KindFrequency, input, false)
	require.NoError(t, err)
	assert.Zero(t, out.Cost.PeakRSSBytes)
	assert.Positive(t, out.Cost.DurationSeconds)
}
