package stats

import (
	"math"

	"github.com/pkg/errors"
)

// Quartiles holds the interpolated 25th, 75th and 90th percentiles of a sample.
type Quartiles struct {
	Q1  float64 `json:"q1"`
	Q3  float64 `json:"q3"`
	P90 float64 `json:"p90"`
}

// Percentile estimates the p-th quantile (0 < p < 1) by linear interpolation
// between the closest ranks, with the rank taken as (n+1)*p.
//
// Ranks above n clamp to the largest value. A rank below 1, reachable only
// for very small samples, interpolates from the largest value towards the
// smallest, as if the sorted values wrapped around.
func Percentile(sample []float64, p float64) (float64, error) {
	if len(sample) == 0 {
		return 0, ErrEmptySample
	}
	if !(p > 0 && p < 1) {
		return 0, errors.Wrapf(ErrPercentileRange, "got %v", p)
	}
	return percentileSorted(sortedCopy(sample), p), nil
}

func percentileSorted(s []float64, p float64) float64 {
	n := len(s)
	pos := float64(n+1) * p
	whole := math.Floor(pos)
	if whole < 1 {
		return s[n-1] + (pos-whole)*(s[0]-s[n-1])
	}
	if pos == whole {
		return s[min(int(whole), n)-1]
	}
	lower := min(int(whole)-1, n-1)
	upper := min(lower+1, n-1)
	fraction := pos - whole
	return s[lower] + fraction*(s[upper]-s[lower])
}

// FindQuartiles returns the 25th, 75th and 90th percentiles of sample.
func FindQuartiles(sample []float64) (Quartiles, error) {
	if len(sample) == 0 {
		return Quartiles{}, ErrEmptySample
	}
	s := sortedCopy(sample)
	return Quartiles{
		Q1:  percentileSorted(s, 0.25),
		Q3:  percentileSorted(s, 0.75),
		P90: percentileSorted(s, 0.90),
	}, nil
}
