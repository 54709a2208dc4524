package rules

import (
	"StrategyLab/internal/services/features"
	"StrategyLab/internal/services/strategy"
)

// SequentialEntry evaluates an ordered entry rule list anchored at a single
// day: the first rule must hold instantaneously at the anchor (its own
// modifiers are ignored for this check), and every later rule must hold
// instantaneously either at the anchor (no lookahead declared) or on some day
// within its lookahead window starting at the anchor.
//
// The entry is attributed to the anchor day regardless of which later offset
// satisfied a lagging rule. A position can therefore open on a day when not
// every condition is individually true yet; that is the meaning of
// "first A, then B within N days".
func SequentialEntry(rls []strategy.Rule, anchor int, t *features.Table) bool {
	if len(rls) == 0 {
		return false
	}

	if !EvaluateAt(rls[0], anchor, t) {
		return false
	}

	for _, r := range rls[1:] {
		if r.LookaheadDays() == 0 {
			if !EvaluateAt(r, anchor, t) {
				return false
			}
			continue
		}
		if _, ok := FireDay(r, anchor, t); !ok {
			return false
		}
	}
	return true
}

// FireDay locates the first day in [anchor, anchor+lookahead] on which the
// rule holds instantaneously. The reconstructor uses it to narrate lagging
// sequential rules with the values of the day they actually fired.
func FireDay(r strategy.Rule, anchor int, t *features.Table) (int, bool) {
	for offset := 0; offset <= r.LookaheadDays(); offset++ {
		idx := anchor + offset
		if idx >= t.Len() {
			break
		}
		if EvaluateAt(r, idx, t) {
			return idx, true
		}
	}
	return 0, false
}
