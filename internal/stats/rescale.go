package stats

// TransformResult is the outcome of an affine rescaling y = Scale*x + Offset.
type TransformResult struct {
	Transformed []float64 `json:"transformed"`
	Scale       float64   `json:"scale"`
	Offset      float64   `json:"offset"`
}

// Apply maps a single value through the transform.
func (t TransformResult) Apply(x float64) float64 {
	return t.Scale*x + t.Offset
}

// Rescale finds the affine map that keeps fixedValue in place and moves the
// sample mean onto targetMean, and applies it to every value. When the mean
// already equals fixedValue the identity map is used.
func Rescale(sample []float64, targetMean, fixedValue float64) (TransformResult, error) {
	mean, err := Mean(sample)
	if err != nil {
		return TransformResult{}, err
	}

	t := TransformResult{Scale: 1, Offset: 0}
	if mean != fixedValue {
		t.Scale = (targetMean - fixedValue) / (mean - fixedValue)
		t.Offset = fixedValue - t.Scale*fixedValue
	}

	t.Transformed = make([]float64, len(sample))
	for i, x := range sample {
		t.Transformed[i] = t.Apply(x)
	}
	return t, nil
}
