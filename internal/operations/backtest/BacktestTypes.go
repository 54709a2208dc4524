package backtest

import "time"

// Trade is one entry/exit round trip in the reconstructed ledger. The
// reconstructor always closes a trade still open at the final bar, so a
// finished ledger never contains a trade with zero exit fields.
type Trade struct {
	EntryDate   time.Time `json:"entry_date"`
	EntryPrice  float64   `json:"entry_price"`
	EntryReason string    `json:"entry_reason"`
	ExitDate    time.Time `json:"exit_date"`
	ExitPrice   float64   `json:"exit_price"`
	ExitReason  string    `json:"exit_reason"`
	PnLPct      float64   `json:"pnl_pct"`
}

// Result holds the simulated position timeline and the series derived from
// it, aligned row-for-row with the feature table.
type Result struct {
	// Position is 0 or 1 per day and only transitions when the entry or exit
	// condition newly holds.
	Position []float64
	// StrategyReturn is yesterday's position times today's raw return:
	// positions taken at a close affect only the following day.
	StrategyReturn []float64
	// EquityCurve is the cumulative product of 1 + StrategyReturn.
	EquityCurve []float64
}
