package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oneToTen() []float64 {
	return []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
}

func TestPercentileInterpolates(t *testing.T) {
	tests := []struct {
		name   string
		sample []float64
		p      float64
		want   float64
	}{
		{name: "q1 of 1..10", sample: oneToTen(), p: 0.25, want: 2.75},
		{name: "q3 of 1..10", sample: oneToTen(), p: 0.75, want: 8.25},
		{name: "p90 of 1..10", sample: oneToTen(), p: 0.90, want: 9.9},
		{name: "exact middle rank", sample: []float64{1, 3, 5, 7, 9}, p: 0.5, want: 5},
		{name: "upper rank clamps to last", sample: []float64{1, 3, 5, 7, 9}, p: 0.9, want: 9},
		{name: "rank below one wraps from last", sample: []float64{4, 8}, p: 0.25, want: 5},
		{name: "rank below one of 0 and 10", sample: []float64{10, 0}, p: 0.25, want: 2.5},
		{name: "single value", sample: []float64{42}, p: 0.75, want: 42},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Percentile(tc.sample, tc.p)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestPercentileOddMedianIsMiddleElement(t *testing.T) {
	for n := 1; n < 40; n += 2 {
		sample := make([]float64, n)
		for i := range sample {
			sample[i] = float64(i*i) + 0.5
		}
		got, err := Percentile(sample, 0.5)
		require.NoError(t, err)
		assert.Equal(t, sample[n/2], got, "n=%d", n)
	}
}

func TestPercentileRejectsBadInput(t *testing.T) {
	_, err := Percentile(nil, 0.5)
	assert.ErrorIs(t, err, ErrEmptySample)

	for _, p := range []float64{0, 1, -0.1, 1.5, math.NaN()} {
		_, err := Percentile([]float64{1, 2, 3}, p)
		assert.ErrorIs(t, err, ErrPercentileRange, "p=%v", p)
	}
}

func TestFindQuartiles(t *testing.T) {
	q, err := FindQuartiles(oneToTen())
	require.NoError(t, err)
	assert.InDelta(t, 2.75, q.Q1, 1e-12)
	assert.InDelta(t, 8.25, q.Q3, 1e-12)
	assert.InDelta(t, 9.9, q.P90, 1e-9)

	_, err = FindQuartiles(nil)
	assert.ErrorIs(t, err, ErrEmptySample)
}
