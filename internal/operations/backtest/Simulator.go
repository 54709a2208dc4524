package backtest

import (
	"StrategyLab/internal/services/features"
	"StrategyLab/internal/services/rules"
	"StrategyLab/internal/services/strategy"
)

// Simulator walks the feature table once, day by day, through a two-state
// FLAT/LONG machine. It is a pure function of the spec and the table: no
// I/O, no hidden state, safe to run repeatedly and concurrently.
type Simulator struct {
	spec *strategy.StrategySpec
}

// NewSimulator creates a simulator for one strategy spec.
func NewSimulator(spec *strategy.StrategySpec) *Simulator {
	return &Simulator{spec: spec}
}

// Run produces the position timeline and derived return/equity series.
//
// Transitions: FLAT -> LONG when the entry condition holds, LONG -> FLAT when
// an exit rule fires. On a day where both would apply the state machine only
// consults the condition matching the current state.
func (s *Simulator) Run(t *features.Table) *Result {
	n := t.Len()
	result := &Result{
		Position:       make([]float64, n),
		StrategyReturn: make([]float64, n),
		EquityCurve:    make([]float64, n),
	}

	position := 0.0
	for i := 0; i < n; i++ {
		if position == 0 {
			if rules.EntryHolds(s.spec, i, t) {
				position = 1
			}
		} else if _, exit := rules.FirstExit(s.spec, i, t); exit {
			position = 0
		}
		result.Position[i] = position
	}

	equity := 1.0
	for i := 0; i < n; i++ {
		if i > 0 {
			result.StrategyReturn[i] = result.Position[i-1] * t.Return(i)
		}
		equity *= 1 + result.StrategyReturn[i]
		result.EquityCurve[i] = equity
	}

	return result
}
