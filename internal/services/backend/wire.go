package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"TradeLens/internal/domain/models"
	"TradeLens/pkg/date"

	"github.com/guregu/null/v6"
	"github.com/shopspring/decimal"
)

// flexFloat decodes numbers, numeric strings and null. Anything unusable,
// including NaN and ±Inf, decodes as absent instead of failing the payload.
type flexFloat struct{ null.Float }

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	f.Float = null.Float{}
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	f.Float = null.FloatFrom(v)
	return nil
}

// Int rounds to the nearest integer. The forecast endpoint sends volumes as 1234.0.
func (f flexFloat) Int() null.Int {
	if !f.Valid || math.Abs(f.Float64) > math.MaxInt64 {
		return null.Int{}
	}
	return null.IntFrom(int64(math.Round(f.Float64)))
}

func (f flexFloat) Decimal() decimal.Decimal {
	if !f.Valid {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f.Float64)
}

// historyRow is one record of /stocks/{symbol}/history. Extra columns are ignored.
type historyRow struct {
	Date   *string   `json:"Date"`
	Close  flexFloat `json:"Close"`
	Volume flexFloat `json:"Volume"`
}

// toPricePoints drops rows without a usable date, sorts ascending and keeps
// the last row for any duplicated day so dates strictly increase.
func toPricePoints(rows []historyRow) []models.PricePoint {
	out := make([]models.PricePoint, 0, len(rows))
	for _, r := range rows {
		if r.Date == nil {
			continue
		}
		d, err := date.Parse(*r.Date)
		if err != nil {
			continue
		}
		out = append(out, models.PricePoint{Date: d, Close: r.Close.Float, Volume: r.Volume.Int()})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	dedup := out[:0]
	for _, p := range out {
		if n := len(dedup); n > 0 && dedup[n-1].Date.Equal(p.Date) {
			dedup[n-1] = p
			continue
		}
		dedup = append(dedup, p)
	}
	return dedup
}

type forecastRow struct {
	Day    flexFloat `json:"day"`
	Price  flexFloat `json:"price"`
	Volume flexFloat `json:"volume"`
}

type forecastPayload struct {
	Forecast []forecastRow          `json:"forecast"`
	Metrics  models.ForecastMetrics `json:"metrics"`
}

func (p forecastPayload) toModel() models.Forecast {
	points := make([]models.ForecastPoint, 0, len(p.Forecast))
	for _, r := range p.Forecast {
		day := r.Day.Int()
		if !day.Valid {
			continue
		}
		points = append(points, models.ForecastPoint{Day: int(day.Int64), Price: r.Price.Float, Volume: r.Volume.Int()})
	}
	return models.Forecast{Points: points, Metrics: p.Metrics}
}

type holdingRow struct {
	Symbol       string    `json:"symbol"`
	Quantity     flexFloat `json:"quantity"`
	AvgCost      flexFloat `json:"avg_cost"`
	CurrentPrice flexFloat `json:"current_price"`
}

type transactionRow struct {
	Type       string    `json:"type"`
	Symbol     string    `json:"symbol"`
	Quantity   flexFloat `json:"quantity"`
	Price      flexFloat `json:"price"`
	Total      flexFloat `json:"total"`
	RealizedPL flexFloat `json:"realized_pl"`
	Date       string    `json:"date"`
}

func (r transactionRow) toModel() models.Transaction {
	tx := models.Transaction{
		Type:     strings.ToUpper(r.Type),
		Symbol:   r.Symbol,
		Quantity: r.Quantity.Int().ValueOrZero(),
		Price:    r.Price.Decimal(),
		Total:    r.Total.Decimal(),
		Date:     parseTimestamp(r.Date),
	}
	if r.RealizedPL.Valid {
		v := r.RealizedPL.Float64
		tx.RealizedPL = &v
	}
	return tx
}

type portfolioPayload struct {
	Holdings     []holdingRow     `json:"holdings"`
	ROI          flexFloat        `json:"roi"`
	SharpeRatio  flexFloat        `json:"sharpe_ratio"`
	MaxDrawdown  flexFloat        `json:"max_drawdown"`
	Transactions []transactionRow `json:"transactions"`
}

func (p portfolioPayload) toModel() models.Portfolio {
	out := models.Portfolio{
		Holdings:     make([]models.Holding, 0, len(p.Holdings)),
		Transactions: make([]models.Transaction, 0, len(p.Transactions)),
		Performance: models.PerformanceMetrics{
			ROI:         p.ROI.ValueOrZero(),
			SharpeRatio: p.SharpeRatio.ValueOrZero(),
			MaxDrawdown: p.MaxDrawdown.ValueOrZero(),
		},
	}
	for _, h := range p.Holdings {
		out.Holdings = append(out.Holdings, models.Holding{
			Symbol:       h.Symbol,
			Quantity:     h.Quantity.Int().ValueOrZero(),
			AvgCost:      h.AvgCost.Decimal(),
			CurrentPrice: h.CurrentPrice.Decimal(),
		})
	}
	for _, t := range p.Transactions {
		out.Transactions = append(out.Transactions, t.toModel())
	}
	return out
}

// summaryAnomaly is the condensed anomaly shape embedded in /market-summary.
type summaryAnomaly struct {
	Symbol   string `json:"symbol"`
	Type     string `json:"type"`
	Detail   string `json:"detail"`
	Severity string `json:"severity"`
	Time     string `json:"time"`
}

type summaryPayload struct {
	IndexValue      flexFloat           `json:"index_value"`
	IndexChange     flexFloat           `json:"index_change"`
	VolumeValue     json.RawMessage     `json:"volume_value"`
	VolumeChange    flexFloat           `json:"volume_change"`
	GainersCount    flexFloat           `json:"gainers_count"`
	LosersCount     flexFloat           `json:"losers_count"`
	TopGainers      []models.SymbolMove `json:"top_gainers"`
	TopLosers       []models.SymbolMove `json:"top_losers"`
	MarketTrends    []models.TrendPoint `json:"market_trends"`
	RecentAnomalies []summaryAnomaly    `json:"recent_anomalies"`
}

func (p summaryPayload) toModel() models.MarketSummary {
	s := models.MarketSummary{
		IndexValue:   p.IndexValue.ValueOrZero(),
		IndexChange:  p.IndexChange.ValueOrZero(),
		VolumeValue:  rawText(p.VolumeValue),
		VolumeChange: p.VolumeChange.ValueOrZero(),
		GainersCount: int(p.GainersCount.Int().ValueOrZero()),
		LosersCount:  int(p.LosersCount.Int().ValueOrZero()),
		TopGainers:   nonNil(p.TopGainers),
		TopLosers:    nonNil(p.TopLosers),
		MarketTrends: nonNil(p.MarketTrends),
	}
	s.RecentAnomalies = make([]models.Anomaly, 0, len(p.RecentAnomalies))
	for _, a := range p.RecentAnomalies {
		s.RecentAnomalies = append(s.RecentAnomalies, models.Anomaly{
			Symbol:   a.Symbol,
			Date:     a.Time,
			Reason:   a.Type,
			Details:  a.Detail,
			Severity: a.Severity,
		})
	}
	return s
}

// rawText renders a JSON string or number as display text.
func rawText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	date.Layout,
}

// parseTimestamp reads the backend's ISO timestamps, which usually carry no zone.
// Unparseable input yields the zero time.
func parseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func decodeJSON(b []byte, dest interface{}) error {
	if err := json.Unmarshal(b, dest); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
