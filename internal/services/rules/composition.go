package rules

import (
	"StrategyLab/internal/services/features"
	"StrategyLab/internal/services/strategy"
)

// EntryHolds reports whether the spec's entry condition is satisfied at day
// i: a logical AND across all entry rules, or the sequential evaluation when
// the spec requests it.
func EntryHolds(spec *strategy.StrategySpec, i int, t *features.Table) bool {
	if spec.EntrySequential {
		return SequentialEntry(spec.EntryRules, i, t)
	}
	for _, r := range spec.EntryRules {
		if !Evaluate(r, i, t) {
			return false
		}
	}
	return true
}

// FirstExit returns the first exit rule, in declared order, that fires at
// day i. Later exit rules are not evaluated once one fires; the declared
// order is the tie-break policy for the exit reason.
func FirstExit(spec *strategy.StrategySpec, i int, t *features.Table) (strategy.Rule, bool) {
	for _, r := range spec.ExitRules {
		if Evaluate(r, i, t) {
			return r, true
		}
	}
	return nil, false
}
