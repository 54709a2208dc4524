package indicators

import (
	"math"
	"sort"
)

// VolatilityService computes realized volatility from daily returns and the
// rolling median used as its one-year threshold.
type VolatilityService struct {
	annualizationDays int
}

// NewVolatilityService creates a volatility service annualizing by the
// standard 252 trading days.
func NewVolatilityService() *VolatilityService {
	return &VolatilityService{annualizationDays: 252}
}

// Calculate computes annualized realized volatility: the sample standard
// deviation of returns over the trailing window, scaled by sqrt(252). Rows
// with fewer than two observations are NaN, so the first row of any series
// carries no volatility value.
func (s *VolatilityService) Calculate(returns []float64, window int) []float64 {
	if len(returns) == 0 || window <= 0 {
		return nil
	}

	factor := math.Sqrt(float64(s.annualizationDays))
	out := make([]float64, len(returns))
	for i := range returns {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		n := i - start + 1
		if n < 2 {
			out[i] = math.NaN()
			continue
		}

		mean := 0.0
		for j := start; j <= i; j++ {
			mean += returns[j]
		}
		mean /= float64(n)

		variance := 0.0
		for j := start; j <= i; j++ {
			d := returns[j] - mean
			variance += d * d
		}
		variance /= float64(n - 1)

		out[i] = math.Sqrt(variance) * factor
	}
	return out
}

// RollingMedian computes the trailing median of values over the window,
// skipping NaN entries. A row whose trailing window holds no valid values is
// NaN. This mirrors how the volatility threshold column is built: the leading
// NaN of the volatility series must not poison a year of medians.
func (s *VolatilityService) RollingMedian(values []float64, window int) []float64 {
	if len(values) == 0 || window <= 0 {
		return nil
	}

	out := make([]float64, len(values))
	buf := make([]float64, 0, window)
	for i := range values {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		buf = buf[:0]
		for j := start; j <= i; j++ {
			if !math.IsNaN(values[j]) {
				buf = append(buf, values[j])
			}
		}
		out[i] = median(buf)
	}
	return out
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	vals := append([]float64(nil), values...)
	sort.Float64s(vals)
	mid := len(vals) / 2
	if len(vals)%2 == 1 {
		return vals[mid]
	}
	return (vals[mid-1] + vals[mid]) / 2
}
