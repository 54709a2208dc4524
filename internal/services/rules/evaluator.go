// Package rules holds the single shared implementation of rule evaluation.
// Both the position simulator and the trade reconstructor call into this
// package, so the two can only agree or fail together.
package rules

import (
	"math"

	"StrategyLab/internal/services/features"
	"StrategyLab/internal/services/strategy"
)

// Mode selects how a rule's underlying condition is applied around an
// evaluation day. It is always passed explicitly; rules are never rewritten
// to force a different mode.
type Mode int

const (
	// ModeInstant checks the condition on the evaluation day only.
	ModeInstant Mode = iota
	// ModeDuration requires the condition on every day of the trailing
	// window ending at the evaluation day. Fails closed: a window running off
	// the start of history, or any missing value inside it, is a miss.
	ModeDuration
	// ModeLookahead requires the condition on at least one day of the
	// forward window starting at the evaluation day. Fails open: days past
	// the end of history and days with missing values are skipped.
	ModeLookahead
)

// modeOf derives the evaluation mode from a rule's temporal modifiers.
func modeOf(r strategy.Rule) Mode {
	if r.DurationDays() > 0 {
		return ModeDuration
	}
	if r.LookaheadDays() > 0 {
		return ModeLookahead
	}
	return ModeInstant
}

// Evaluate reports whether the rule holds at day i under the mode implied by
// its own temporal modifiers. Pure: no side effects, no rule mutation.
func Evaluate(r strategy.Rule, i int, t *features.Table) bool {
	return EvaluateMode(r, i, t, modeOf(r))
}

// EvaluateAt applies the rule instantaneously at day i, ignoring any
// lookahead or duration it declares. Sequential entries and reason rendering
// need this exact-day check.
func EvaluateAt(r strategy.Rule, i int, t *features.Table) bool {
	return EvaluateMode(r, i, t, ModeInstant)
}

// EvaluateMode applies the rule at day i under an explicit temporal mode.
func EvaluateMode(r strategy.Rule, i int, t *features.Table, mode Mode) bool {
	if !columnsPresent(r, t) {
		// A rule referencing an indicator the table never built is a
		// spec/table mismatch. It degrades to false rather than raising.
		return false
	}

	switch mode {
	case ModeDuration:
		duration := r.DurationDays()
		if i < duration-1 {
			return false
		}
		for offset := 0; offset < duration; offset++ {
			met, ok := conditionAt(r, i-offset, t)
			if !ok || !met {
				return false
			}
		}
		return true

	case ModeLookahead:
		for offset := 0; offset <= r.LookaheadDays(); offset++ {
			idx := i + offset
			if idx >= t.Len() {
				continue
			}
			met, ok := conditionAt(r, idx, t)
			if ok && met {
				return true
			}
		}
		return false

	default:
		met, ok := conditionAt(r, i, t)
		return ok && met
	}
}

// columnsPresent checks that every indicator column the rule reads exists.
func columnsPresent(r strategy.Rule, t *features.Table) bool {
	switch rule := r.(type) {
	case strategy.CrossoverRule:
		return t.HasColumn(features.MAColumn(rule.FastMA)) &&
			t.HasColumn(features.MAColumn(rule.SlowMA))
	case strategy.VolFilterRule:
		return t.HasColumn(features.RVColumn(rule.Window)) &&
			t.HasColumn(features.RVMedianColumn(rule.Window))
	}
	return false
}

// conditionAt evaluates the raw comparison on a single day. ok is false when
// either side is NaN; what that means depends on the caller's mode.
func conditionAt(r strategy.Rule, i int, t *features.Table) (met, ok bool) {
	switch rule := r.(type) {
	case strategy.CrossoverRule:
		fast := t.Value(features.MAColumn(rule.FastMA), i)
		slow := t.Value(features.MAColumn(rule.SlowMA), i)
		if math.IsNaN(fast) || math.IsNaN(slow) {
			return false, false
		}
		if rule.Direction == strategy.DirectionAbove {
			return fast > slow, true
		}
		return fast < slow, true

	case strategy.VolFilterRule:
		rv := t.Value(features.RVColumn(rule.Window), i)
		med := t.Value(features.RVMedianColumn(rule.Window), i)
		if math.IsNaN(rv) || math.IsNaN(med) {
			return false, false
		}
		if rule.Relation == strategy.RelationBelow {
			return rv < med, true
		}
		return rv > med, true
	}
	return false, false
}
