// Package report renders statlab analyses as plain-text reports and PNG
// charts.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"statlab/internal/analysis"
	"statlab/internal/stats"
)

// WriteFrequency writes the frequency table, central tendency and dispersion
// sections.
func WriteFrequency(w io.Writer, r *analysis.FrequencyReport) error {
	var b strings.Builder

	b.WriteString("1.\n\n")
	fmt.Fprintf(&b, "| %-8s | %-12s | %-12s |\n", "Value", "Frequency", "Cumulative")
	fmt.Fprintf(&b, "|%s|%s|%s|\n", strings.Repeat("-", 10), strings.Repeat("-", 14), strings.Repeat("-", 14))
	for _, e := range r.Table {
		fmt.Fprintf(&b, "| %-8s | %-12d | %-12d |\n", formatNumber(e.Value), e.Frequency, e.Cumulative)
	}
	fmt.Fprintf(&b, "\nMost frequent value: %s (occurs %d times)\n\n", formatNumber(r.MostFrequent.Value), r.MostFrequent.Frequency)

	b.WriteString("2.\n\n")
	if len(r.Modes) == 1 {
		fmt.Fprintf(&b, "Mode: %s\n", formatNumber(r.Modes[0]))
	} else {
		fmt.Fprintf(&b, "Modes: %s\n", joinNumbers(r.Modes, formatNumber))
	}
	fmt.Fprintf(&b, "Median: %s\n\n", formatNumber(r.Median))

	b.WriteString("3.\n\n")
	fmt.Fprintf(&b, "Variance: %.6f\n", r.Variance)
	fmt.Fprintf(&b, "Standard Deviation: %.6f\n", r.StdDev)

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteDescriptive writes quartiles, moments, the linear transformation,
// stem-and-leaf displays and box-plot summaries.
func WriteDescriptive(w io.Writer, r *analysis.DescriptiveReport) error {
	var b strings.Builder

	b.WriteString("1.\n\n")
	fmt.Fprintf(&b, "Q1 : %.2f\n", r.Quartiles.Q1)
	fmt.Fprintf(&b, "Q3 : %.2f\n", r.Quartiles.Q3)
	fmt.Fprintf(&b, "P90 : %.2f\n\n", r.Quartiles.P90)

	b.WriteString("2.\n\n")
	fmt.Fprintf(&b, "Mean: %.2f\n", r.Mean)
	fmt.Fprintf(&b, "Standard Deviation: %.2f\n\n", r.StdDev)

	b.WriteString("3.\n\n")
	fmt.Fprintf(&b, "Transformation formula: y = %.3fx + %.3f\n", r.Transform.Scale, r.Transform.Offset)
	fmt.Fprintf(&b, "Original values: [%s]\n", joinNumbers(r.Original, formatNumber))
	fmt.Fprintf(&b, "Transformed values: [%s]\n", joinNumbers(r.Transform.Transformed, formatOneDecimal))
	fmt.Fprintf(&b, "Original mean: %.2f -> Transformed mean: %.2f\n", r.Mean, r.TransformedMean)
	fmt.Fprintf(&b, "Original std dev: %.2f -> Transformed std dev: %.2f\n\n", r.StdDev, r.TransformedStdDev)

	b.WriteString("4.\n\n")
	b.WriteString("Stem-and-Leaf Plot (Original):\n")
	writeStemLeaf(&b, r.StemLeaf)
	b.WriteString("\nStem-and-Leaf Plot (Transformed):\n")
	writeStemLeaf(&b, r.TransformedStemLeaf)

	b.WriteString("\n5.\n\n")
	writeBoxPlot(&b, "Original", r.BoxPlot)
	writeBoxPlot(&b, "Transformed", r.TransformedBoxPlot)

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteRegression writes the regression summary.
func WriteRegression(w io.Writer, r *analysis.RegressionReport) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Number of points M = %d\n", r.N)
	fmt.Fprintf(&b, "Center of gravity (mean_x, mean_y): (%.6f, %.6f)\n", r.MeanX, r.MeanY)
	fmt.Fprintf(&b, "Covariance: %.6f\n", r.Covariance)
	fmt.Fprintf(&b, "Regression equation: y = %.6f + %.6f·x\n", r.Intercept, r.Slope)
	fmt.Fprintf(&b, "Correlation coefficient: %.6f\n", r.Correlation)
	fmt.Fprintf(&b, "Trend: %s\n", r.Trend)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeStemLeaf(b *strings.Builder, rows []stats.StemLeafRow) {
	b.WriteString("Stem | Leaf\n")
	b.WriteString("-----|-----\n")
	for _, row := range rows {
		leaves := make([]string, len(row.Leaves))
		for i, l := range row.Leaves {
			leaves[i] = strconv.Itoa(l)
		}
		fmt.Fprintf(b, "%4d | %s\n", row.Stem, strings.Join(leaves, " "))
	}
}

func writeBoxPlot(b *strings.Builder, label string, bp stats.BoxPlot) {
	fmt.Fprintf(b, "Box Plot (%s): min=%.2f q1=%.2f median=%.2f q3=%.2f max=%.2f outliers=[%s]\n",
		label, bp.Min, bp.Q1, bp.Median, bp.Q3, bp.Max, joinNumbers(bp.Outliers, formatNumber))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOneDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func joinNumbers(vs []float64, format func(float64) string) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = format(v)
	}
	return strings.Join(parts, ", ")
}
