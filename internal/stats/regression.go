package stats

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// Trend classifies the sign of a regression slope.
type Trend string

const (
	TrendPositive Trend = "positive"
	TrendNegative Trend = "negative"
	TrendAbsent   Trend = "absent"
)

// RegressionResult holds a least-squares fit y = Intercept + Slope*x together
// with the population moments it was derived from.
type RegressionResult struct {
	N           int     `json:"n"`
	MeanX       float64 `json:"mean_x"`
	MeanY       float64 `json:"mean_y"`
	Covariance  float64 `json:"covariance"`
	Slope       float64 `json:"slope"`
	Intercept   float64 `json:"intercept"`
	Correlation float64 `json:"correlation"`
	Trend       Trend   `json:"trend"`
}

// Predict evaluates the fitted line at x.
func (r RegressionResult) Predict(x float64) float64 {
	return r.Intercept + r.Slope*x
}

// Regress fits y against x by ordinary least squares using population
// (denominator M) covariance and variances.
func Regress(x, y []float64) (RegressionResult, error) {
	if len(x) != len(y) {
		return RegressionResult{}, errors.Wrapf(ErrLengthMismatch, "len(x)=%d len(y)=%d", len(x), len(y))
	}
	if len(x) == 0 {
		return RegressionResult{}, ErrEmptySample
	}

	m := float64(len(x))
	meanX := stat.Mean(x, nil)
	meanY := stat.Mean(y, nil)

	var sxy, sxx, syy float64
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	cov := sxy / m
	varX := sxx / m
	varY := syy / m

	if varX == 0 {
		return RegressionResult{}, errors.Wrap(ErrDivisionByZero, "x has zero variance")
	}
	if varY == 0 {
		return RegressionResult{}, errors.Wrap(ErrDivisionByZero, "y has zero variance")
	}

	slope := cov / varX
	res := RegressionResult{
		N:           len(x),
		MeanX:       meanX,
		MeanY:       meanY,
		Covariance:  cov,
		Slope:       slope,
		Intercept:   meanY - slope*meanX,
		Correlation: cov / math.Sqrt(varX*varY),
		Trend:       TrendAbsent,
	}
	switch {
	case slope > 0:
		res.Trend = TrendPositive
	case slope < 0:
		res.Trend = TrendNegative
	}
	return res, nil
}
