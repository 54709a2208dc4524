package rules

import (
	"fmt"

	"StrategyLab/internal/services/features"
	"StrategyLab/internal/services/strategy"
)

// Reason renders a one-line explanation of a rule firing at day i, using the
// two compared values from that day.
func Reason(r strategy.Rule, i int, t *features.Table, isEntry bool) string {
	action := "Exit"
	if isEntry {
		action = "Entry"
	}

	switch rule := r.(type) {
	case strategy.CrossoverRule:
		fast := t.Value(features.MAColumn(rule.FastMA), i)
		slow := t.Value(features.MAColumn(rule.SlowMA), i)
		return fmt.Sprintf("%s: %d-day MA (%.2f) crossed %s %d-day MA (%.2f)",
			action, rule.FastMA, fast, rule.Direction, rule.SlowMA, slow)

	case strategy.VolFilterRule:
		rv := t.Value(features.RVColumn(rule.Window), i)
		med := t.Value(features.RVMedianColumn(rule.Window), i)
		return fmt.Sprintf("%s: %d-day RV (%.2f%%) %s 1Y median (%.2f%%)",
			action, rule.Window, rv*100, rule.Relation, med*100)
	}
	return action + ": rule satisfied"
}

// EntryReasons collects one rendered reason per entry rule for an entry at
// day i. For sequential entries the first rule is narrated with the anchor
// day's values and each lagging rule with the values of the day it actually
// fired inside its lookahead window.
func EntryReasons(spec *strategy.StrategySpec, i int, t *features.Table) []string {
	reasons := make([]string, 0, len(spec.EntryRules))

	if !spec.EntrySequential {
		for _, r := range spec.EntryRules {
			if Evaluate(r, i, t) {
				reasons = append(reasons, Reason(r, i, t, true))
			}
		}
		return reasons
	}

	if len(spec.EntryRules) == 0 {
		return reasons
	}
	reasons = append(reasons, Reason(spec.EntryRules[0], i, t, true))
	for _, r := range spec.EntryRules[1:] {
		if day, ok := FireDay(r, i, t); ok {
			reasons = append(reasons, Reason(r, day, t, true))
		}
	}
	return reasons
}
