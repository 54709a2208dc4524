package backtest

import "math"

const tradingDaysPerYear = 252

// Metrics computes the standard metric set from a simulation result:
// cagr, max_drawdown, sharpe, and num_trades.
func (r *Result) Metrics() map[string]float64 {
	return map[string]float64{
		"cagr":         CAGR(r.EquityCurve),
		"max_drawdown": MaxDrawdown(r.EquityCurve),
		"sharpe":       SharpeRatio(r.StrategyReturn),
		"num_trades":   float64(TradeCount(r.Position)),
	}
}

// CAGR annualizes the growth of the equity curve over its length, treating
// every row as one trading day. Degenerate inputs return 0.
func CAGR(equity []float64) float64 {
	if len(equity) == 0 {
		return 0
	}
	start := equity[0]
	end := equity[len(equity)-1]
	if start <= 0 || end <= 0 {
		return 0
	}
	years := float64(len(equity)) / tradingDaysPerYear
	if years <= 0 {
		return 0
	}
	return math.Pow(end/start, 1/years) - 1
}

// MaxDrawdown returns the most negative peak-to-trough ratio of the equity
// curve, as a value <= 0.
func MaxDrawdown(equity []float64) float64 {
	if len(equity) == 0 {
		return 0
	}
	peak := equity[0]
	worst := 0.0
	for _, v := range equity {
		if v > peak {
			peak = v
		}
		dd := v/peak - 1
		if dd < worst {
			worst = dd
		}
	}
	return worst
}

// SharpeRatio annualizes mean over sample standard deviation of the daily
// strategy returns. Returns 0 when the deviation is 0 or there are fewer
// than two observations.
func SharpeRatio(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(returns) - 1)
	std := math.Sqrt(variance)
	if std == 0 {
		return 0
	}
	return mean / std * math.Sqrt(tradingDaysPerYear)
}

// TradeCount counts FLAT -> LONG transitions in the position timeline.
func TradeCount(position []float64) int {
	count := 0
	for i := 1; i < len(position); i++ {
		if position[i] == 1 && position[i-1] == 0 {
			count++
		}
	}
	return count
}
