package validation

import (
	"fmt"

	"StrategyLab/internal/services/features"
	"StrategyLab/internal/services/rules"
	"StrategyLab/internal/services/strategy"
)

// ValidateWithData performs the data-dependent validation pass: history
// length against the spec's largest windows, then a full dry run over every
// day with the same rule primitives the simulator uses, looking for entry
// conditions that never fire and exit conditions that never follow them.
func ValidateWithData(spec *strategy.StrategySpec, t *features.Table) Result {
	var errors, warnings []string

	if t == nil || t.Len() == 0 {
		errors = append(errors, "No price data is available for the requested period.")
		return Result{OK: false, Errors: errors}
	}

	n := t.Len()
	if required := requiredHistory(spec); required > 0 && n < required {
		warnings = append(warnings, fmt.Sprintf(
			"Strategy uses long lookback windows (up to %d days) but only %d data points are available. Early signal values may be unreliable.",
			required, n))
	}

	anyEntry := false
	anyExit := false
	for i := 0; i < n; i++ {
		if !anyEntry && rules.EntryHolds(spec, i, t) {
			anyEntry = true
		}
		if !anyExit {
			if _, fired := rules.FirstExit(spec, i, t); fired {
				anyExit = true
			}
		}
		if anyEntry && anyExit {
			break
		}
	}

	if !anyEntry {
		warnings = append(warnings, "Given the historical data and rules, this strategy is unlikely to generate any entries. It may produce zero trades.")
	}
	if anyEntry && !anyExit {
		warnings = append(warnings, "Entry conditions can occur, but exit conditions never trigger on this data. Positions may never close once opened.")
	}

	return Result{OK: true, Errors: nil, Warnings: dedupe(warnings)}
}

// requiredHistory estimates the minimum bar count the spec's largest
// window, lookahead, or duration implies. 0 means no requirement.
func requiredHistory(spec *strategy.StrategySpec) int {
	maxMA, maxVol, maxLookahead, maxDuration := 0, 0, 0, 0
	for _, rule := range spec.AllRules() {
		switch r := rule.(type) {
		case strategy.CrossoverRule:
			if r.FastMA > maxMA {
				maxMA = r.FastMA
			}
			if r.SlowMA > maxMA {
				maxMA = r.SlowMA
			}
		case strategy.VolFilterRule:
			if r.Window > maxVol {
				maxVol = r.Window
			}
		}
		if l := rule.LookaheadDays(); l > maxLookahead {
			maxLookahead = l
		}
		if d := rule.DurationDays(); d > maxDuration {
			maxDuration = d
		}
	}

	required := 0
	if maxMA > 0 && maxMA+10 > required {
		required = maxMA + 10
	}
	if maxVol > 0 && maxVol+252 > required {
		required = maxVol + 252
	}
	if maxLookahead > 0 && maxLookahead+10 > required {
		required = maxLookahead + 10
	}
	if maxDuration > 0 && maxDuration+10 > required {
		required = maxDuration + 10
	}
	return required
}
