package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StrategyLab/internal/services/features"
	"StrategyLab/internal/services/strategy"
)

// sequentialTable sets up the canonical sequential scenario: the crossover
// first holds on day 5 and the volatility filter first holds on day 7.
func sequentialTable(t *testing.T) *features.Table {
	t.Helper()
	n := 12
	fast := make([]float64, n)
	slow := make([]float64, n)
	rv := make([]float64, n)
	med := make([]float64, n)
	for i := 0; i < n; i++ {
		slow[i] = 100
		med[i] = 0.20
		if i >= 5 {
			fast[i] = 101
		} else {
			fast[i] = 99
		}
		if i >= 7 {
			rv[i] = 0.10
		} else {
			rv[i] = 0.30
		}
	}

	table := makeTable(flatCloses(n))
	table.SetColumn(features.MAColumn(10), fast)
	table.SetColumn(features.MAColumn(50), slow)
	table.SetColumn(features.RVColumn(20), rv)
	table.SetColumn(features.RVMedianColumn(20), med)
	return table
}

func sequentialRules() []strategy.Rule {
	return []strategy.Rule{
		strategy.CrossoverRule{FastMA: 10, SlowMA: 50, Direction: strategy.DirectionAbove},
		strategy.VolFilterRule{
			Window:    20,
			Threshold: strategy.ThresholdMedian1Y,
			Relation:  strategy.RelationBelow,
			Lookahead: 3,
		},
	}
}

func TestSequentialEntryAnchorsOnFirstRule(t *testing.T) {
	table := sequentialTable(t)
	rls := sequentialRules()

	// First rule not true before day 5.
	assert.False(t, SequentialEntry(rls, 4, table))
	// Anchor day 5: crossover holds now, vol filter fires at day 7, inside
	// its 3-day window. The entry belongs to day 5, not day 7.
	assert.True(t, SequentialEntry(rls, 5, table))
}

func TestSequentialLaggingRuleOutsideWindow(t *testing.T) {
	table := sequentialTable(t)
	rls := []strategy.Rule{
		sequentialRules()[0],
		strategy.VolFilterRule{
			Window:    20,
			Threshold: strategy.ThresholdMedian1Y,
			Relation:  strategy.RelationBelow,
			Lookahead: 1, // window [5, 6], vol filter first true on day 7
		},
	}
	assert.False(t, SequentialEntry(rls, 5, table))
}

func TestSequentialNoLookaheadMustHoldAtAnchor(t *testing.T) {
	table := sequentialTable(t)
	rls := []strategy.Rule{
		sequentialRules()[0],
		strategy.VolFilterRule{Window: 20, Threshold: strategy.ThresholdMedian1Y, Relation: strategy.RelationBelow},
	}

	// Without a lookahead the second rule must hold on the anchor day itself.
	assert.False(t, SequentialEntry(rls, 5, table))
	assert.True(t, SequentialEntry(rls, 7, table))
}

func TestSequentialFirstRuleModifiersIgnored(t *testing.T) {
	table := sequentialTable(t)
	rls := []strategy.Rule{
		strategy.CrossoverRule{FastMA: 10, SlowMA: 50, Direction: strategy.DirectionAbove, Lookahead: 5},
	}

	// The first rule's own lookahead would register at day 2 (true by day
	// 5), but the anchor check is strictly instantaneous.
	assert.False(t, SequentialEntry(rls, 2, table))
	assert.True(t, SequentialEntry(rls, 5, table))
}

func TestFireDayLocatesLaggingRule(t *testing.T) {
	table := sequentialTable(t)
	vol := sequentialRules()[1]

	day, ok := FireDay(vol, 5, table)
	require.True(t, ok)
	assert.Equal(t, 7, day)

	// Nothing fires inside [0, 3].
	_, ok = FireDay(vol, 0, table)
	assert.False(t, ok)
}

func TestEntryReasonsSequentialUsesFireDayValues(t *testing.T) {
	table := sequentialTable(t)
	spec := &strategy.StrategySpec{
		EntryRules:      sequentialRules(),
		ExitRules:       sequentialRules()[:1],
		EntrySequential: true,
	}

	reasons := EntryReasons(spec, 5, table)
	require.Len(t, reasons, 2)
	assert.Equal(t, "Entry: 10-day MA (101.00) crossed above 50-day MA (100.00)", reasons[0])
	// The lagging rule is narrated with day 7's values.
	assert.Equal(t, "Entry: 20-day RV (10.00%) below 1Y median (20.00%)", reasons[1])
}
