package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptiveExample(t *testing.T) {
	sample := []float64{1, 2, 2, 3, 4}

	mean, err := Mean(sample)
	require.NoError(t, err)
	assert.InDelta(t, 2.4, mean, 1e-12)

	table, err := FrequencyTable(sample)
	require.NoError(t, err)
	assert.Equal(t, []FrequencyEntry{
		{Value: 1, Frequency: 1, Cumulative: 1},
		{Value: 2, Frequency: 2, Cumulative: 3},
		{Value: 3, Frequency: 1, Cumulative: 4},
		{Value: 4, Frequency: 1, Cumulative: 5},
	}, table)

	assert.Equal(t, []float64{2}, Mode(table))

	median, err := Median(sample)
	require.NoError(t, err)
	assert.Equal(t, 2.0, median)
}

func TestFrequencyTableKeepsInputIntact(t *testing.T) {
	sample := []float64{5, 3, 5, 1}
	_, err := FrequencyTable(sample)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 3, 5, 1}, sample)
}

func TestModeTies(t *testing.T) {
	table, err := FrequencyTable([]float64{7, 3, 3, 7, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 7}, Mode(table))

	most, ok := MostFrequent(table)
	require.True(t, ok)
	assert.Equal(t, FrequencyEntry{Value: 3, Frequency: 2, Cumulative: 3}, most)
}

func TestMostFrequentEmpty(t *testing.T) {
	_, ok := MostFrequent(nil)
	assert.False(t, ok)
	assert.Empty(t, Mode(nil))
}

func TestMedianEven(t *testing.T) {
	m, err := Median([]float64{4, 1, 3, 2})
	require.NoError(t, err)
	assert.Equal(t, 2.5, m)
}

func TestVarianceAndStdDev(t *testing.T) {
	samples := [][]float64{
		{1, 2, 2, 3, 4},
		{10},
		{5, 5, 5, 5},
		{-3.5, 0.25, 1e6, 42},
		{0.1, 0.2, 0.3},
	}
	for _, s := range samples {
		v, sd, err := VarianceAndStdDev(s)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Equal(t, math.Sqrt(v), sd)
	}

	v, sd, err := VarianceAndStdDev([]float64{1, 2, 2, 3, 4})
	require.NoError(t, err)
	assert.InDelta(t, 1.04, v, 1e-12)
	assert.InDelta(t, math.Sqrt(1.04), sd, 1e-12)
}

func TestEmptySampleErrors(t *testing.T) {
	_, err := Mean(nil)
	assert.ErrorIs(t, err, ErrEmptySample)
	_, _, err = VarianceAndStdDev(nil)
	assert.ErrorIs(t, err, ErrEmptySample)
	_, err = Median([]float64{})
	assert.ErrorIs(t, err, ErrEmptySample)
	_, err = FrequencyTable(nil)
	assert.ErrorIs(t, err, ErrEmptySample)
	_, err = StemAndLeaf(nil)
	assert.ErrorIs(t, err, ErrEmptySample)
}

func TestIdempotent(t *testing.T) {
	sample := []float64{12, 7.5, 3, 3, 99, 41, 18}
	first, err := Summarize(sample)
	require.NoError(t, err)
	firstBox, err := BoxPlotSummary(sample)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := Summarize(sample)
		require.NoError(t, err)
		assert.Equal(t, first, again)
		box, err := BoxPlotSummary(sample)
		require.NoError(t, err)
		assert.Equal(t, firstBox, box)
	}
}
