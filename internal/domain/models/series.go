package models

import (
	"TradeLens/pkg/date"

	"github.com/guregu/null/v6"
)

// PricePoint is one day of history as delivered by the backend.
// Close and Volume are invalid when the backend sent null or garbage.
type PricePoint struct {
	Date   date.Date  `json:"date"`
	Close  null.Float `json:"close"`
	Volume null.Int   `json:"volume"`
}

// ForecastPoint is one forecast day. Day is the offset from the last
// historical date; Day 1 is the following calendar day.
type ForecastPoint struct {
	Day    int        `json:"day"`
	Price  null.Float `json:"price"`
	Volume null.Int   `json:"volume"`
}

// ChartPoint is a single plot-ready row merging history and forecast.
// Only the anchor row carries both field sets.
type ChartPoint struct {
	Date             date.Date  `json:"date"`
	HistoricalClose  null.Float `json:"close"`
	HistoricalVolume null.Int   `json:"volume"`
	ForecastClose    null.Float `json:"predicted"`
	ForecastVolume   null.Int   `json:"predicted_volume"`
}

// HasHistory reports whether any historical field is set.
func (p ChartPoint) HasHistory() bool {
	return p.HistoricalClose.Valid || p.HistoricalVolume.Valid
}

// HasForecast reports whether any forecast field is set.
func (p ChartPoint) HasForecast() bool {
	return p.ForecastClose.Valid || p.ForecastVolume.Valid
}

// QuoteChange is the day-over-day move shown on a stock header.
type QuoteChange struct {
	Last          float64 `json:"last"`
	Previous      float64 `json:"previous"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
}

// ErrorMetrics are the fit errors reported for one forecast model.
type ErrorMetrics struct {
	RMSE float64 `json:"rmse"`
	MAE  float64 `json:"mae"`
}

// ForecastMetrics holds model accuracy as reported by the backend.
type ForecastMetrics struct {
	Price  *ErrorMetrics `json:"price,omitempty"`
	Volume *ErrorMetrics `json:"volume,omitempty"`
}

// Forecast is the decoded predict endpoint payload.
type Forecast struct {
	Points  []ForecastPoint `json:"forecast"`
	Metrics ForecastMetrics `json:"metrics"`
}
