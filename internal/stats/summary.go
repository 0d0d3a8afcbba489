package stats

// Summary is the five-number-plus summary recorded for every univariate run.
type Summary struct {
	N      int     `json:"n"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Q1     float64 `json:"q1"`
	Q3     float64 `json:"q3"`
	StdDev float64 `json:"standard_deviation"`
}

// Summarize computes a Summary for sample. Quartiles use the same
// interpolation as Percentile.
func Summarize(sample []float64) (Summary, error) {
	if len(sample) == 0 {
		return Summary{}, ErrEmptySample
	}
	s := sortedCopy(sample)
	n := len(s)

	median, err := Median(s)
	if err != nil {
		return Summary{}, err
	}
	mean, err := Mean(s)
	if err != nil {
		return Summary{}, err
	}
	_, stddev, err := VarianceAndStdDev(s)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		N:      n,
		Min:    s[0],
		Max:    s[n-1],
		Mean:   mean,
		Median: median,
		Q1:     percentileSorted(s, 0.25),
		Q3:     percentileSorted(s, 0.75),
		StdDev: stddev,
	}, nil
}
