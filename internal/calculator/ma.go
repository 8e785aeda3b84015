package calculator

import "errors"

// SMASeries computes the rolling simple moving average of values over the
// given window. The returned series has exactly len(values)-window+1 points:
// the first window-1 positions of the input have no defined average and are
// omitted rather than zero-filled.
func SMASeries(values []float64, window int) ([]float64, error) {
	if window <= 0 {
		return nil, errors.New("window must be positive")
	}
	if len(values) < window {
		return nil, errors.New("not enough data for SMA calculation")
	}

	out := make([]float64, 0, len(values)-window+1)
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out = append(out, sum/float64(window))
		}
	}
	return out, nil
}

// SMA returns the simple moving average of the trailing window, i.e. the last
// point of SMASeries.
func SMA(values []float64, window int) (float64, error) {
	series, err := SMASeries(values, window)
	if err != nil {
		return 0, err
	}
	return series[len(series)-1], nil
}
