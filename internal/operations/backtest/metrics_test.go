package backtest

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCAGR(t *testing.T) {
	// A 10% gain over exactly one trading year.
	equity := make([]float64, tradingDaysPerYear)
	for i := range equity {
		equity[i] = 1
	}
	equity[len(equity)-1] = 1.1
	assert.InDelta(t, 0.1, CAGR(equity), 1e-9)

	assert.Zero(t, CAGR(nil))
	assert.Zero(t, CAGR([]float64{0, 1.1}))
}

func TestMaxDrawdown(t *testing.T) {
	equity := []float64{1, 1.2, 0.9, 1.3}
	assert.InDelta(t, 0.9/1.2-1, MaxDrawdown(equity), 1e-9)

	// Monotonic curve never draws down.
	assert.Zero(t, MaxDrawdown([]float64{1, 1.1, 1.2}))
	assert.Zero(t, MaxDrawdown(nil))
}

func TestSharpeRatio(t *testing.T) {
	// Zero variance yields zero, not a division blow-up.
	assert.Zero(t, SharpeRatio([]float64{0.01, 0.01, 0.01}))
	assert.Zero(t, SharpeRatio([]float64{0.01}))

	returns := []float64{0.01, -0.01, 0.02, 0.0}
	mean := 0.005
	variance := (math.Pow(0.01-mean, 2) + math.Pow(-0.01-mean, 2) + math.Pow(0.02-mean, 2) + math.Pow(0.0-mean, 2)) / 3
	want := mean / math.Sqrt(variance) * math.Sqrt(252)
	assert.InDelta(t, want, SharpeRatio(returns), 1e-9)
}

func TestTradeCount(t *testing.T) {
	assert.Equal(t, 2, TradeCount([]float64{0, 1, 1, 0, 1}))
	assert.Equal(t, 0, TradeCount([]float64{0, 0, 0}))
	assert.Equal(t, 0, TradeCount(nil))
}

func TestResultMetrics(t *testing.T) {
	spec, table := crossoverScenario()
	result := NewSimulator(spec).Run(table)

	metrics := result.Metrics()
	assert.Contains(t, metrics, "cagr")
	assert.Contains(t, metrics, "max_drawdown")
	assert.Contains(t, metrics, "sharpe")
	assert.Equal(t, 1.0, metrics["num_trades"])
}
