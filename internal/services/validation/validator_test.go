package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StrategyLab/internal/services/strategy"
)

func baseSpec() *strategy.StrategySpec {
	return &strategy.StrategySpec{
		Ticker:    "SPY",
		StartDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		EntryRules: []strategy.Rule{
			strategy.CrossoverRule{FastMA: 10, SlowMA: 50, Direction: strategy.DirectionAbove},
		},
		ExitRules: []strategy.Rule{
			strategy.CrossoverRule{FastMA: 10, SlowMA: 50, Direction: strategy.DirectionBelow},
		},
		Metrics: []string{"cagr"},
	}
}

func TestValidateSpecOK(t *testing.T) {
	result := ValidateSpec(baseSpec())
	assert.True(t, result.OK)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidateSpecContradictoryEntry(t *testing.T) {
	spec := baseSpec()
	spec.EntryRules = []strategy.Rule{
		strategy.CrossoverRule{FastMA: 10, SlowMA: 50, Direction: strategy.DirectionAbove},
		strategy.CrossoverRule{FastMA: 10, SlowMA: 50, Direction: strategy.DirectionBelow},
	}

	result := ValidateSpec(spec)
	assert.False(t, result.OK)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "both above and below")
}

func TestValidateSpecContradictoryVolEntry(t *testing.T) {
	spec := baseSpec()
	spec.EntryRules = []strategy.Rule{
		strategy.VolFilterRule{Window: 20, Threshold: strategy.ThresholdMedian1Y, Relation: strategy.RelationAbove},
		strategy.VolFilterRule{Window: 20, Threshold: strategy.ThresholdMedian1Y, Relation: strategy.RelationBelow},
	}

	result := ValidateSpec(spec)
	assert.False(t, result.OK)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "volatility")
}

func TestValidateSpecOppositeDirectionsAcrossLists(t *testing.T) {
	// Entry above with exit below on the same pair is the normal shape of a
	// strategy, not a contradiction.
	result := ValidateSpec(baseSpec())
	assert.True(t, result.OK)
}

func TestValidateSpecDateOrder(t *testing.T) {
	spec := baseSpec()
	spec.StartDate, spec.EndDate = spec.EndDate, spec.StartDate

	result := ValidateSpec(spec)
	assert.False(t, result.OK)
	assert.Contains(t, result.Errors, "Start date must be before end date.")
}

func TestValidateSpecWindowErrors(t *testing.T) {
	spec := baseSpec()
	spec.EntryRules = []strategy.Rule{
		strategy.CrossoverRule{FastMA: 20, SlowMA: 20, Direction: strategy.DirectionAbove},
		strategy.CrossoverRule{FastMA: -1, SlowMA: 50, Direction: strategy.DirectionAbove},
		strategy.VolFilterRule{Window: 1, Threshold: strategy.ThresholdMedian1Y, Relation: strategy.RelationBelow},
	}

	result := ValidateSpec(spec)
	assert.False(t, result.OK)
	assert.Contains(t, result.Errors, "Fast and slow moving averages must differ.")
	assert.Contains(t, result.Errors, "Moving average windows must be positive integers.")
	assert.Contains(t, result.Errors, "Volatility window must be greater than 1.")
}

func TestValidateSpecWarnings(t *testing.T) {
	spec := baseSpec()
	spec.Metrics = nil
	spec.EntryRules = []strategy.Rule{
		strategy.CrossoverRule{FastMA: 3, SlowMA: 250, Direction: strategy.DirectionAbove},
		strategy.VolFilterRule{Window: 252 * 6, Threshold: strategy.ThresholdMedian1Y, Relation: strategy.RelationBelow},
	}

	result := ValidateSpec(spec)
	assert.True(t, result.OK)
	assert.Contains(t, result.Warnings, "No metrics specified; default metrics will be used.")
	assert.Contains(t, result.Warnings, "Very small moving average windows (under 5 days) may be unstable or overly reactive.")
	assert.Contains(t, result.Warnings, "Very large moving average windows (over 200 days) may make the strategy slow and unresponsive.")
	assert.Contains(t, result.Warnings, "Very large volatility windows may dilute signal responsiveness.")
}

func TestValidateSpecDeduplicatesFindings(t *testing.T) {
	spec := baseSpec()
	spec.EntryRules = []strategy.Rule{
		strategy.CrossoverRule{FastMA: 3, SlowMA: 50, Direction: strategy.DirectionAbove},
	}
	spec.ExitRules = []strategy.Rule{
		strategy.CrossoverRule{FastMA: 3, SlowMA: 50, Direction: strategy.DirectionBelow},
	}

	result := ValidateSpec(spec)
	count := 0
	for _, w := range result.Warnings {
		if w == "Very small moving average windows (under 5 days) may be unstable or overly reactive." {
			count++
		}
	}
	assert.Equal(t, 1, count)
}
