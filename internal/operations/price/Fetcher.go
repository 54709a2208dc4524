package price

import (
	"context"
	"strconv"
	"time"

	"StrategyLab/internal/models"
	binanceops "StrategyLab/internal/operations/binance"

	"github.com/rs/zerolog/log"
)

// Fetcher pulls daily bars from the exchange and converts them to the
// stored price model.
type Fetcher struct {
	client *binanceops.Client
}

func NewFetcher(client *binanceops.Client) *Fetcher {
	return &Fetcher{client: client}
}

// FetchDailyBars downloads daily bars for a ticker over a date range.
func (f *Fetcher) FetchDailyBars(ctx context.Context, ticker string, start, end time.Time) ([]models.Price, error) {
	klines, err := f.client.GetDailyHistory(ctx, ticker, start, end)
	if err != nil {
		return nil, err
	}

	bars := make([]models.Price, 0, len(klines))
	for _, k := range klines {
		bars = append(bars, models.Price{
			Ticker: ticker,
			Date:   time.Unix(k.OpenTime/1000, 0).UTC().Truncate(24 * time.Hour),
			Open:   parseFloat(k.Open),
			High:   parseFloat(k.High),
			Low:    parseFloat(k.Low),
			Close:  parseFloat(k.Close),
			Volume: parseFloat(k.Volume),
		})
	}

	log.Info().
		Str("ticker", ticker).
		Int("bars", len(bars)).
		Time("start", start).
		Time("end", end).
		Msg("fetched daily bars")

	return bars, nil
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		log.Warn().Str("value", s).Msg("error parsing kline float")
		return 0
	}
	return f
}
