package stats

import "github.com/pkg/errors"

// BoxPlot summarizes a sample for a box-and-whisker chart. Min and Max are
// the whiskers: the most extreme values still inside the fences.
type BoxPlot struct {
	Min        float64   `json:"min"`
	Q1         float64   `json:"q1"`
	Median     float64   `json:"median"`
	Q3         float64   `json:"q3"`
	Max        float64   `json:"max"`
	IQR        float64   `json:"iqr"`
	LowerFence float64   `json:"lower_fence"`
	UpperFence float64   `json:"upper_fence"`
	Outliers   []float64 `json:"outliers"`
}

// BoxPlotSummary computes quartiles, the 1.5*IQR fences, whiskers and
// outliers of sample. The median uses the order-statistic rule and can differ
// from Percentile(sample, 0.5).
func BoxPlotSummary(sample []float64) (BoxPlot, error) {
	if len(sample) == 0 {
		return BoxPlot{}, ErrEmptySample
	}
	s := sortedCopy(sample)
	n := len(s)

	bp := BoxPlot{
		Q1: percentileSorted(s, 0.25),
		Q3: percentileSorted(s, 0.75),
	}
	if n%2 == 0 {
		bp.Median = (s[n/2-1] + s[n/2]) / 2
	} else {
		bp.Median = s[n/2]
	}
	bp.IQR = bp.Q3 - bp.Q1
	bp.LowerFence = bp.Q1 - 1.5*bp.IQR
	bp.UpperFence = bp.Q3 + 1.5*bp.IQR

	// NaN fences leave nothing inside.
	inside := 0
	for _, v := range s {
		if !(v >= bp.LowerFence && v <= bp.UpperFence) {
			bp.Outliers = append(bp.Outliers, v)
			continue
		}
		if inside == 0 {
			bp.Min = v
		}
		bp.Max = v
		inside++
	}
	if inside == 0 {
		return BoxPlot{}, errors.Wrapf(ErrDegenerateResult, "no value within fences [%v, %v]", bp.LowerFence, bp.UpperFence)
	}
	if bp.Outliers == nil {
		bp.Outliers = []float64{}
	}
	return bp, nil
}
