package repositories

import (
	"errors"
	"time"

	"StrategyLab/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PriceRepository struct {
	db *gorm.DB
}

// NewPriceRepository creates a new instance of PriceRepository
func NewPriceRepository(db *gorm.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// Create adds a new Price record to the database
func (r *PriceRepository) Create(price *models.Price) error {
	if price == nil {
		return errors.New("price cannot be nil")
	}
	return r.db.Create(price).Error
}

// SaveBars upserts a batch of daily bars, ignoring bars already present for
// the same ticker and date.
func (r *PriceRepository) SaveBars(bars []models.Price) error {
	if len(bars) == 0 {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ticker"}, {Name: "date"}},
		DoNothing: true,
	}).CreateInBatches(bars, 500).Error
}

// GetDailyHistory gets the daily bars for a ticker within a date range,
// in ascending date order.
func (r *PriceRepository) GetDailyHistory(ticker string, start, end time.Time) ([]models.Price, error) {
	if ticker == "" {
		return nil, errors.New("invalid ticker")
	}

	var prices []models.Price
	err := r.db.Where("ticker = ? AND date BETWEEN ? AND ?", ticker, start, end).
		Order("date ASC").
		Find(&prices).Error
	return prices, err
}

// GetLatestBar gets the most recent stored bar for a ticker
func (r *PriceRepository) GetLatestBar(ticker string) (*models.Price, error) {
	if ticker == "" {
		return nil, errors.New("invalid ticker")
	}

	var price models.Price
	err := r.db.Where("ticker = ?", ticker).
		Order("date DESC").
		First(&price).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &price, err
}

// CountBars counts the stored daily bars for a ticker within a date range
func (r *PriceRepository) CountBars(ticker string, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Price{}).
		Where("ticker = ? AND date BETWEEN ? AND ?", ticker, start, end).
		Count(&count).Error
	return count, err
}
