package analytics

import (
	"TradeLens/internal/domain/models"
	domsvc "TradeLens/internal/domain/service"
	"TradeLens/pkg/date"
)

// SeriesReconciler stitches a price history and its forecast into a single
// chart series whose forecast line starts exactly on the last known price.
type SeriesReconciler struct{}

func NewSeriesReconciler() *SeriesReconciler { return &SeriesReconciler{} }

// Reconcile returns history rows followed by forecast rows, strictly ordered by date.
//
// With a non-empty history the last historical row is the anchor: forecast
// day offsets are counted from its date and the row itself gets forecast
// fields equal to its own close and volume. With an empty history the
// forecast is placed relative to fallbackAnchor; a zero fallbackAnchor
// drops the forecast since there is nothing to align it to.
func (SeriesReconciler) Reconcile(history []models.PricePoint, forecast []models.ForecastPoint, fallbackAnchor date.Date) []models.ChartPoint {
	out := make([]models.ChartPoint, 0, len(history)+len(forecast))
	for _, p := range history {
		out = append(out, models.ChartPoint{
			Date:             p.Date,
			HistoricalClose:  p.Close,
			HistoricalVolume: p.Volume,
		})
	}
	if len(forecast) == 0 {
		return out
	}

	anchor := fallbackAnchor
	if len(history) > 0 {
		last := &out[len(out)-1]
		anchor = last.Date
		last.ForecastClose = last.HistoricalClose
		last.ForecastVolume = last.HistoricalVolume
	}
	if anchor.IsZero() {
		return out
	}

	prev := anchor
	for _, f := range forecast {
		if f.Day <= 0 {
			continue
		}
		d := anchor.Add(f.Day)
		// offsets must increase; anything else would break date order
		if !d.After(prev) {
			continue
		}
		out = append(out, models.ChartPoint{
			Date:           d,
			ForecastClose:  f.Price,
			ForecastVolume: f.Volume,
		})
		prev = d
	}
	return out
}

// Change compares the last close with the one before it. A missing or zero
// previous close falls back to the last close, giving a flat move.
func (SeriesReconciler) Change(history []models.PricePoint) models.QuoteChange {
	n := len(history)
	if n == 0 {
		return models.QuoteChange{}
	}
	last := history[n-1].Close.ValueOrZero()
	prev := last
	if n > 1 {
		if c := history[n-2].Close; c.Valid && c.Float64 != 0 {
			prev = c.Float64
		}
	}
	q := models.QuoteChange{Last: last, Previous: prev, Change: last - prev}
	if prev != 0 {
		q.ChangePercent = q.Change / prev * 100
	}
	return q
}

var _ domsvc.SeriesReconciler = (*SeriesReconciler)(nil)
