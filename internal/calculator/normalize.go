package calculator

// Normalize rescales a price series to percentage change relative to its
// first value: pct[t] = (v[t]/v[0] - 1) * 100. The first point is always
// exactly 0, which makes series with different absolute prices directly
// comparable. Returns nil for an empty series or a zero first value.
func Normalize(values []float64) []float64 {
	if len(values) == 0 || values[0] == 0 {
		return nil
	}
	first := values[0]
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = (v/first - 1) * 100
	}
	out[0] = 0
	return out
}
