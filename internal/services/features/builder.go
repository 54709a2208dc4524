package features

import (
	"sort"
	"time"

	"StrategyLab/internal/models"
	"StrategyLab/internal/services/indicators"
	"StrategyLab/internal/services/strategy"
)

const medianWindow = 252

// Builder derives the indicator columns a strategy spec requires. Column
// presence is determined entirely by the rules referenced in the spec.
type Builder struct {
	sma *indicators.SMAService
	vol *indicators.VolatilityService
}

// NewBuilder creates a feature table builder.
func NewBuilder() *Builder {
	return &Builder{
		sma: indicators.NewSMAService(),
		vol: indicators.NewVolatilityService(),
	}
}

// Build converts daily bars into a feature table carrying every moving
// average and volatility column the spec's rules reference.
func (b *Builder) Build(prices []models.Price, spec *strategy.StrategySpec) *Table {
	sorted := append([]models.Price(nil), prices...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	dates := make([]time.Time, len(sorted))
	closes := make([]float64, len(sorted))
	for i, p := range sorted {
		dates[i] = p.Date
		closes[i] = p.Close
	}

	table := NewTable(dates, closes)
	if table.Len() == 0 {
		return table
	}

	returns := make([]float64, table.Len())
	for i := range returns {
		returns[i] = table.Return(i)
	}

	for _, w := range maWindows(spec) {
		table.SetColumn(MAColumn(w), b.sma.Calculate(closes, w))
	}
	for _, w := range volWindows(spec) {
		rv := b.vol.Calculate(returns, w)
		table.SetColumn(RVColumn(w), rv)
		table.SetColumn(RVMedianColumn(w), b.vol.RollingMedian(rv, medianWindow))
	}

	return table
}

func maWindows(spec *strategy.StrategySpec) []int {
	seen := make(map[int]bool)
	var windows []int
	for _, rule := range spec.AllRules() {
		cross, ok := rule.(strategy.CrossoverRule)
		if !ok {
			continue
		}
		for _, w := range []int{cross.FastMA, cross.SlowMA} {
			if !seen[w] {
				seen[w] = true
				windows = append(windows, w)
			}
		}
	}
	return windows
}

func volWindows(spec *strategy.StrategySpec) []int {
	seen := make(map[int]bool)
	var windows []int
	for _, rule := range spec.AllRules() {
		vol, ok := rule.(strategy.VolFilterRule)
		if !ok {
			continue
		}
		if !seen[vol.Window] {
			seen[vol.Window] = true
			windows = append(windows, vol.Window)
		}
	}
	return windows
}
