package report

import (
	"bytes"
	"strings"
	"testing"

	"statlab/internal/analysis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFrequency(t *testing.T) {
	r, err := analysis.Frequency([]float64{1, 2, 2, 3, 4})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteFrequency(&buf, r))
	out := buf.String()

	assert.Contains(t, out, "| Value    | Frequency    | Cumulative   |\n")
	assert.Contains(t, out, "| 2        | 2            | 3            |\n")
	assert.Contains(t, out, "Most frequent value: 2 (occurs 2 times)")
	assert.Contains(t, out, "Mode: 2\n")
	assert.Contains(t, out, "Median: 2\n")
	assert.Contains(t, out, "Variance: 1.040000\n")
}

func TestWriteFrequencyModes(t *testing.T) {
	r, err := analysis.Frequency([]float64{1, 1, 2, 2, 3})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteFrequency(&buf, r))
	assert.Contains(t, buf.String(), "Modes: 1, 2\n")
}

func TestWriteDescriptive(t *testing.T) {
	r, err := analysis.Descriptive([]float64{70, 80, 90, 60, 100}, analysis.DefaultOptions())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteDescriptive(&buf, r))
	out := buf.String()

	assert.Contains(t, out, "Q1 : 65.00\n")
	assert.Contains(t, out, "Mean: 80.00\n")
	assert.Contains(t, out, "Transformation formula: y = 0.250x + 75.000\n")
	assert.Contains(t, out, "Original values: [70, 80, 90, 60, 100]\n")
	assert.Contains(t, out, "Transformed values: [92.5, 95.0, 97.5, 90.0, 100.0]\n")
	assert.Contains(t, out, "Original mean: 80.00 -> Transformed mean: 95.00\n")
	assert.Contains(t, out, "Stem | Leaf\n-----|-----\n   6 | 0\n")
	assert.Contains(t, out, "  10 | 0\n")
	assert.Contains(t, out, "Box Plot (Original): min=60.00 q1=65.00 median=80.00 q3=95.00 max=100.00 outliers=[]\n")
}

func TestWriteRegression(t *testing.T) {
	r, err := analysis.Regression([]float64{1, 2, 3, 4}, []float64{5, 7, 9, 11})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteRegression(&buf, r))
	want := strings.Join([]string{
		"Number of points M = 4",
		"Center of gravity (mean_x, mean_y): (2.500000, 8.000000)",
		"Covariance: 2.500000",
		"Regression equation: y = 3.000000 + 2.000000·x",
		"Correlation coefficient: 1.000000",
		"Trend: positive",
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}
