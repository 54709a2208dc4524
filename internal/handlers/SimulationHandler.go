package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"StrategyLab/internal/operations/backtest"
	"StrategyLab/internal/services/features"
	"StrategyLab/internal/services/strategy"
	"StrategyLab/internal/services/validation"

	"github.com/rs/zerolog/log"
)

// ErrNoData blocks simulation when no price history exists for the
// requested ticker and period.
var ErrNoData = errors.New("no price data available for the requested period")

// SpecValidationError carries the structural findings that stopped a run
// before any data was fetched.
type SpecValidationError struct {
	Result validation.Result
}

func (e *SpecValidationError) Error() string {
	return fmt.Sprintf("strategy spec failed validation: %s", strings.Join(e.Result.Errors, "; "))
}

// SimulationResult is everything a single run returns to the caller. Nothing
// in it is persisted.
type SimulationResult struct {
	Spec     *strategy.StrategySpec
	Result   *backtest.Result
	Metrics  map[string]float64
	Trades   []backtest.Trade
	Warnings []string
}

// SimulationHandler runs the full pipeline around the pure engine:
// parse -> validate -> acquire data -> build features -> validate with data
// -> simulate -> reconstruct trades -> metrics. Warnings accumulate across
// stages; errors stop the pipeline before simulation runs.
type SimulationHandler struct {
	prices  *PriceHandler
	builder *features.Builder
}

func NewSimulationHandler(prices *PriceHandler) *SimulationHandler {
	return &SimulationHandler{
		prices:  prices,
		builder: features.NewBuilder(),
	}
}

// Run simulates the strategy described by the interchange JSON document.
func (h *SimulationHandler) Run(ctx context.Context, specData []byte) (*SimulationResult, error) {
	spec, err := strategy.ParseSpec(specData)
	if err != nil {
		return nil, err
	}

	structural := validation.ValidateSpec(spec)
	if !structural.OK {
		return nil, &SpecValidationError{Result: structural}
	}
	warnings := append([]string(nil), structural.Warnings...)

	bars, err := h.prices.EnsureHistory(ctx, spec.Ticker, spec.StartDate, spec.EndDate)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, spec.Ticker)
	}

	table := h.builder.Build(bars, spec)

	dataResult := validation.ValidateWithData(spec, table)
	if !dataResult.OK {
		return nil, fmt.Errorf("%w: %s", ErrNoData, strings.Join(dataResult.Errors, "; "))
	}
	warnings = append(warnings, dataResult.Warnings...)

	result := backtest.NewSimulator(spec).Run(table)
	trades := backtest.NewTradeExtractor(spec).Extract(table)
	metrics := result.Metrics()

	log.Info().
		Str("ticker", spec.Ticker).
		Int("days", table.Len()).
		Int("trades", len(trades)).
		Int("warnings", len(warnings)).
		Msg("simulation complete")

	return &SimulationResult{
		Spec:     spec,
		Result:   result,
		Metrics:  metrics,
		Trades:   trades,
		Warnings: warnings,
	}, nil
}

// Validate parses the spec and runs the structural pass only; data-dependent
// findings surface later as warnings on Run.
func (h *SimulationHandler) Validate(specData []byte) (*strategy.StrategySpec, validation.Result, error) {
	spec, err := strategy.ParseSpec(specData)
	if err != nil {
		return nil, validation.Result{}, err
	}
	return spec, validation.ValidateSpec(spec), nil
}
