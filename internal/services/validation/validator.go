// Package validation checks strategy specs for internal contradictions
// before data is fetched, and for degenerate behavior once it is.
package validation

import (
	"StrategyLab/internal/services/strategy"
)

// Result aggregates validation findings. Errors block the pipeline;
// warnings are accumulated and returned alongside results, never thrown.
type Result struct {
	OK       bool
	Errors   []string
	Warnings []string
}

type crossoverKey struct {
	fast, slow int
}

type volKey struct {
	window    int
	threshold string
}

// ValidateSpec performs the structural (data-free) validation pass.
func ValidateSpec(spec *strategy.StrategySpec) Result {
	var errors, warnings []string

	if !spec.StartDate.Before(spec.EndDate) {
		errors = append(errors, "Start date must be before end date.")
	}
	if len(spec.EntryRules) == 0 {
		errors = append(errors, "At least one entry rule is required.")
	}
	if len(spec.ExitRules) == 0 {
		errors = append(errors, "At least one exit rule is required.")
	}
	if len(spec.Metrics) == 0 {
		warnings = append(warnings, "No metrics specified; default metrics will be used.")
	}

	crossoverDirections := make(map[crossoverKey]map[strategy.Direction]bool)
	volRelations := make(map[volKey]map[strategy.Relation]bool)

	checkRule := func(rule strategy.Rule, isEntry bool) {
		switch r := rule.(type) {
		case strategy.CrossoverRule:
			if r.FastMA <= 0 || r.SlowMA <= 0 {
				errors = append(errors, "Moving average windows must be positive integers.")
			}
			if r.FastMA == r.SlowMA {
				errors = append(errors, "Fast and slow moving averages must differ.")
			}
			if r.FastMA < 5 || r.SlowMA < 5 {
				warnings = append(warnings, "Very small moving average windows (under 5 days) may be unstable or overly reactive.")
			}
			if r.FastMA > 200 || r.SlowMA > 200 {
				warnings = append(warnings, "Very large moving average windows (over 200 days) may make the strategy slow and unresponsive.")
			}
			if isEntry {
				key := crossoverKey{r.FastMA, r.SlowMA}
				if crossoverDirections[key] == nil {
					crossoverDirections[key] = make(map[strategy.Direction]bool)
				}
				crossoverDirections[key][r.Direction] = true
			}
		case strategy.VolFilterRule:
			if r.Window <= 1 {
				errors = append(errors, "Volatility window must be greater than 1.")
			}
			if r.Window > 252*5 {
				warnings = append(warnings, "Very large volatility windows may dilute signal responsiveness.")
			}
			if isEntry {
				key := volKey{r.Window, r.Threshold}
				if volRelations[key] == nil {
					volRelations[key] = make(map[strategy.Relation]bool)
				}
				volRelations[key][r.Relation] = true
			}
		}
	}

	for _, rule := range spec.EntryRules {
		checkRule(rule, true)
	}
	for _, rule := range spec.ExitRules {
		checkRule(rule, false)
	}

	// An entry AND requiring both sides of the same comparison can never hold.
	for _, directions := range crossoverDirections {
		if directions[strategy.DirectionAbove] && directions[strategy.DirectionBelow] {
			errors = append(errors, "Entry rules require the same moving averages to be both above and below each other, which is impossible.")
		}
	}
	for _, relations := range volRelations {
		if relations[strategy.RelationAbove] && relations[strategy.RelationBelow] {
			errors = append(errors, "Entry rules require volatility to be both above and below the same threshold, which is impossible.")
		}
	}

	errors = dedupe(errors)
	warnings = dedupe(warnings)
	return Result{OK: len(errors) == 0, Errors: errors, Warnings: warnings}
}

// dedupe removes duplicate messages preserving first-seen order.
func dedupe(messages []string) []string {
	seen := make(map[string]bool, len(messages))
	out := messages[:0]
	for _, m := range messages {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}
