package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVolatilityCalculate(t *testing.T) {
	vol := NewVolatilityService()
	returns := []float64{0, 1.0, 0.5}
	out := vol.Calculate(returns, 3)
	require.Len(t, out, 3)

	// One observation never yields a standard deviation.
	assert.True(t, math.IsNaN(out[0]))

	// Two observations {0, 1}: sample variance 0.5.
	assert.InDelta(t, math.Sqrt(0.5)*math.Sqrt(252), out[1], 1e-12)

	// Three observations {0, 1, 0.5}: mean 0.5, sample variance 0.25.
	assert.InDelta(t, 0.5*math.Sqrt(252), out[2], 1e-12)
}

func TestVolatilityCalculateTrailingWindow(t *testing.T) {
	vol := NewVolatilityService()
	returns := []float64{5, 5, 0.1, -0.1}

	// Window 2 must drop the early outliers: {0.1, -0.1} has mean 0 and
	// sample variance 0.02.
	out := vol.Calculate(returns, 2)
	assert.InDelta(t, math.Sqrt(0.02)*math.Sqrt(252), out[3], 1e-12)
}

func TestRollingMedianSkipsNaN(t *testing.T) {
	vol := NewVolatilityService()
	values := []float64{math.NaN(), 1, 3}
	out := vol.RollingMedian(values, 3)
	require.Len(t, out, 3)

	assert.True(t, math.IsNaN(out[0]))
	assert.Equal(t, 1.0, out[1])
	assert.Equal(t, 2.0, out[2]) // even count averages the middle pair
}

func TestRollingMedianTrailingWindow(t *testing.T) {
	vol := NewVolatilityService()
	values := []float64{100, 1, 2, 3}
	out := vol.RollingMedian(values, 3)

	// The leading spike falls out of the window by index 3.
	assert.Equal(t, 2.0, out[3])
	assert.Equal(t, 2.0, out[2]) // {100, 1, 2} -> 2
}

func TestVolatilityDegenerate(t *testing.T) {
	vol := NewVolatilityService()
	assert.Nil(t, vol.Calculate(nil, 20))
	assert.Nil(t, vol.Calculate([]float64{0.1}, 0))
	assert.Nil(t, vol.RollingMedian(nil, 252))
}
