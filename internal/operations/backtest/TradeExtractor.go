package backtest

import (
	"strings"

	"StrategyLab/internal/services/features"
	"StrategyLab/internal/services/rules"
	"StrategyLab/internal/services/strategy"
)

// stillHoldingReason closes a trade that is still open at the last bar.
const stillHoldingReason = "End of backtest period (still holding)"

// TradeExtractor replays the FLAT/LONG state machine independently of the
// Simulator to build the narrated trade ledger. Both walk the same shared
// rule primitives, so their position transitions agree by construction; the
// redundancy is what lets entry and exit reasons be attached per trade
// without threading a reason channel through the simulator.
type TradeExtractor struct {
	spec *strategy.StrategySpec
}

// NewTradeExtractor creates a trade reconstructor for one strategy spec.
func NewTradeExtractor(spec *strategy.StrategySpec) *TradeExtractor {
	return &TradeExtractor{spec: spec}
}

// Extract walks the table and returns the completed trade ledger, in the
// order positions were opened. Exactly one trade is open at a time; a trade
// open at the final bar is closed synthetically at the final close.
func (e *TradeExtractor) Extract(t *features.Table) []Trade {
	var trades []Trade
	var open *Trade

	long := false
	for i := 0; i < t.Len(); i++ {
		if !long {
			if rules.EntryHolds(e.spec, i, t) {
				reason := strings.Join(rules.EntryReasons(e.spec, i, t), " | ")
				if reason == "" {
					reason = "All entry rules satisfied"
				}
				open = &Trade{
					EntryDate:   t.Date(i),
					EntryPrice:  t.Close(i),
					EntryReason: reason,
				}
				long = true
			}
			continue
		}

		exitRule, fired := rules.FirstExit(e.spec, i, t)
		if !fired || open == nil {
			continue
		}
		open.ExitDate = t.Date(i)
		open.ExitPrice = t.Close(i)
		open.ExitReason = rules.Reason(exitRule, i, t, false)
		open.PnLPct = (open.ExitPrice/open.EntryPrice - 1) * 100
		trades = append(trades, *open)
		open = nil
		long = false
	}

	if open != nil && long {
		last := t.Len() - 1
		open.ExitDate = t.Date(last)
		open.ExitPrice = t.Close(last)
		open.ExitReason = stillHoldingReason
		open.PnLPct = (open.ExitPrice/open.EntryPrice - 1) * 100
		trades = append(trades, *open)
	}

	return trades
}
