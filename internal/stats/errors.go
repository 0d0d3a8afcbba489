package stats

import "github.com/pkg/errors"

// Input errors.
var (
	ErrEmptySample     = errors.New("empty sample")
	ErrLengthMismatch  = errors.New("paired samples differ in length")
	ErrPercentileRange = errors.New("percentile rank must be in (0, 1)")
)

// ErrDivisionByZero is returned when a regression denominator vanishes.
var ErrDivisionByZero = errors.New("division by zero")

// ErrDegenerateResult is returned when a computation has no meaningful result,
// such as box-plot fences that exclude every sample value.
var ErrDegenerateResult = errors.New("degenerate result")
