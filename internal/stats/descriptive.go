// Package stats implements the descriptive, percentile, box-plot, rescaling
// and regression computations used by the statlab reports.
//
// Every function is pure: inputs are never modified and sorting always
// happens on a private copy.
package stats

import (
	"math"
	"sort"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// FrequencyEntry is one row of a frequency table.
type FrequencyEntry struct {
	Value      float64 `json:"value"`
	Frequency  int     `json:"frequency"`
	Cumulative int     `json:"cumulative"`
}

func sortedCopy(sample []float64) []float64 {
	s := append([]float64(nil), sample...)
	sort.Float64s(s)
	return s
}

// Mean returns the arithmetic average of sample.
func Mean(sample []float64) (float64, error) {
	if len(sample) == 0 {
		return 0, ErrEmptySample
	}
	return stat.Mean(sample, nil), nil
}

// VarianceAndStdDev returns the population variance (denominator n) and its
// square root.
func VarianceAndStdDev(sample []float64) (variance, stdDev float64, err error) {
	if len(sample) == 0 {
		return 0, 0, ErrEmptySample
	}
	_, variance = stat.PopMeanVariance(sample, nil)
	// the compensated sum can land a hair below zero for constant input
	variance = math.Max(variance, 0)
	return variance, math.Sqrt(variance), nil
}

// Median returns the middle element of the sorted sample, or the average of
// the two middle elements when the length is even.
func Median(sample []float64) (float64, error) {
	if len(sample) == 0 {
		return 0, ErrEmptySample
	}
	return mstats.Median(sample)
}

// FrequencyTable groups sample by exact value and returns the groups in
// ascending value order with running cumulative counts.
func FrequencyTable(sample []float64) ([]FrequencyEntry, error) {
	if len(sample) == 0 {
		return nil, ErrEmptySample
	}
	s := sortedCopy(sample)

	table := make([]FrequencyEntry, 0, len(s))
	cumulative := 0
	for i := 0; i < len(s); {
		j := i
		for j < len(s) && s[j] == s[i] {
			j++
		}
		cumulative += j - i
		table = append(table, FrequencyEntry{Value: s[i], Frequency: j - i, Cumulative: cumulative})
		i = j
	}
	return table, nil
}

// Mode returns every value of table that reaches the maximum frequency, in
// ascending order.
func Mode(table []FrequencyEntry) []float64 {
	best := 0
	for _, e := range table {
		if e.Frequency > best {
			best = e.Frequency
		}
	}
	var modes []float64
	for _, e := range table {
		if e.Frequency == best {
			modes = append(modes, e.Value)
		}
	}
	return modes
}

// MostFrequent returns the first entry, in ascending value order, that reaches
// the maximum frequency. It reports false for an empty table.
func MostFrequent(table []FrequencyEntry) (FrequencyEntry, bool) {
	var most FrequencyEntry
	found := false
	for _, e := range table {
		if e.Frequency > most.Frequency {
			most = e
			found = true
		}
	}
	return most, found
}
