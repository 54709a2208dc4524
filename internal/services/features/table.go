package features

import (
	"fmt"
	"math"
	"time"
)

// Bar is one trading day in the feature table.
type Bar struct {
	Date   time.Time
	Close  float64
	Return float64 // close-to-close percent change, 0 on the first row
}

// Table is the per-day feature table the engine runs against: an ordered,
// date-indexed sequence of bars plus indicator columns keyed by name. The
// table is read-only to the simulator and reconstructor; missing values are
// NaN, and an entirely absent column is a configuration mismatch the rule
// evaluator treats separately.
type Table struct {
	bars    []Bar
	columns map[string][]float64
}

// MAColumn names the simple moving average column for a window.
func MAColumn(window int) string { return fmt.Sprintf("ma_%d", window) }

// RVColumn names the realized volatility column for a window.
func RVColumn(window int) string { return fmt.Sprintf("rv_%d", window) }

// RVMedianColumn names the trailing 252-day median of a volatility column.
func RVMedianColumn(window int) string { return fmt.Sprintf("rv_%d_med_252", window) }

// NewTable builds a table from dated closes, deriving the return series.
func NewTable(dates []time.Time, closes []float64) *Table {
	bars := make([]Bar, len(closes))
	for i := range closes {
		ret := 0.0
		if i > 0 && closes[i-1] != 0 {
			ret = closes[i]/closes[i-1] - 1
		}
		bars[i] = Bar{Date: dates[i], Close: closes[i], Return: ret}
	}
	return &Table{bars: bars, columns: make(map[string][]float64)}
}

// Len returns the number of trading days.
func (t *Table) Len() int { return len(t.bars) }

// Date returns the date of day i.
func (t *Table) Date(i int) time.Time { return t.bars[i].Date }

// Close returns the closing price of day i.
func (t *Table) Close(i int) float64 { return t.bars[i].Close }

// Return returns the close-to-close return of day i.
func (t *Table) Return(i int) float64 { return t.bars[i].Return }

// SetColumn attaches an indicator column. The column length must match the
// number of bars.
func (t *Table) SetColumn(name string, values []float64) {
	if len(values) != len(t.bars) {
		panic(fmt.Sprintf("features: column %s has %d values for %d bars", name, len(values), len(t.bars)))
	}
	t.columns[name] = values
}

// HasColumn reports whether an indicator column is present.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.columns[name]
	return ok
}

// Value returns the column value at day i, or NaN when the column is absent.
func (t *Table) Value(name string, i int) float64 {
	col, ok := t.columns[name]
	if !ok {
		return math.NaN()
	}
	return col[i]
}

// Columns returns the names of all attached indicator columns.
func (t *Table) Columns() []string {
	names := make([]string, 0, len(t.columns))
	for name := range t.columns {
		names = append(names, name)
	}
	return names
}
