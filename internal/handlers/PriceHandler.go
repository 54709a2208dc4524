package handlers

import (
	"context"
	"time"

	"StrategyLab/internal/models"
	binanceops "StrategyLab/internal/operations/binance"
	"StrategyLab/internal/operations/price"
	"StrategyLab/internal/repositories"

	"github.com/rs/zerolog/log"
)

// PriceHandler owns daily price acquisition: the stored history is the
// source of record, and the exchange is consulted only when a requested
// range has no coverage.
type PriceHandler struct {
	priceRepo *repositories.PriceRepository
	fetcher   *price.Fetcher
	recorder  *price.Recorder
}

func NewPriceHandler(client *binanceops.Client, priceRepo *repositories.PriceRepository) *PriceHandler {
	return &PriceHandler{
		priceRepo: priceRepo,
		fetcher:   price.NewFetcher(client),
		recorder:  price.NewRecorder(priceRepo),
	}
}

// EnsureHistory returns the daily bars for a ticker and date range, fetching
// and recording them first when the store is empty for that range.
func (h *PriceHandler) EnsureHistory(ctx context.Context, ticker string, start, end time.Time) ([]models.Price, error) {
	bars, err := h.priceRepo.GetDailyHistory(ticker, start, end)
	if err != nil {
		return nil, err
	}
	if len(bars) > 0 {
		log.Debug().Str("ticker", ticker).Int("bars", len(bars)).Msg("price history served from store")
		return bars, nil
	}

	log.Info().Str("ticker", ticker).Msg("no stored history, fetching from exchange")
	fetched, err := h.fetcher.FetchDailyBars(ctx, ticker, start, end)
	if err != nil {
		return nil, err
	}
	if err := h.recorder.Record(fetched); err != nil {
		return nil, err
	}
	return fetched, nil
}
