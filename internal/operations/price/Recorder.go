package price

import (
	"StrategyLab/internal/models"
	"StrategyLab/internal/repositories"

	"github.com/rs/zerolog/log"
)

// Recorder persists fetched daily bars into the price store so repeated
// simulations over the same range skip the exchange.
type Recorder struct {
	priceRepo *repositories.PriceRepository
}

func NewRecorder(priceRepo *repositories.PriceRepository) *Recorder {
	return &Recorder{priceRepo: priceRepo}
}

// Record upserts the bars, ignoring dates already stored.
func (r *Recorder) Record(bars []models.Price) error {
	if len(bars) == 0 {
		return nil
	}
	if err := r.priceRepo.SaveBars(bars); err != nil {
		return err
	}

	log.Info().
		Str("ticker", bars[0].Ticker).
		Int("bars", len(bars)).
		Msg("recorded daily bars")
	return nil
}
