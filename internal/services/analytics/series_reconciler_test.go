package analytics

import (
	"testing"

	"TradeLens/internal/domain/models"
	"TradeLens/pkg/date"

	"github.com/guregu/null/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hist(day string, close float64, vol int64) models.PricePoint {
	return models.PricePoint{Date: date.MustParse(day), Close: null.FloatFrom(close), Volume: null.IntFrom(vol)}
}

func fc(day int, price float64, vol int64) models.ForecastPoint {
	return models.ForecastPoint{Day: day, Price: null.FloatFrom(price), Volume: null.IntFrom(vol)}
}

func sampleHistory() []models.PricePoint {
	return []models.PricePoint{
		hist("2024-01-29", 10.1, 1200),
		hist("2024-01-30", 10.4, 900),
		hist("2024-01-31", 10.2, 1500),
	}
}

func TestReconcile_StitchesAnchor(t *testing.T) {
	h := sampleHistory()
	f := []models.ForecastPoint{fc(1, 10.3, 1000), fc(2, 10.5, 1100)}

	got := NewSeriesReconciler().Reconcile(h, f, date.Date{})
	require.Len(t, got, 5)

	anchor := got[len(h)-1]
	assert.Equal(t, "2024-01-31", anchor.Date.String())
	assert.Equal(t, anchor.HistoricalClose, anchor.ForecastClose)
	assert.Equal(t, anchor.HistoricalVolume, anchor.ForecastVolume)
	assert.Equal(t, 10.2, anchor.ForecastClose.Float64)

	assert.Equal(t, "2024-02-01", got[3].Date.String())
	assert.Equal(t, "2024-02-02", got[4].Date.String())
	for _, p := range got[3:] {
		assert.False(t, p.HasHistory())
		assert.True(t, p.HasForecast())
	}
	for _, p := range got[:len(h)-1] {
		assert.True(t, p.HasHistory())
		assert.False(t, p.HasForecast())
	}
}

func TestReconcile_DatesStrictlyIncrease(t *testing.T) {
	h := sampleHistory()
	f := []models.ForecastPoint{fc(1, 1, 1), fc(3, 1, 1), fc(3, 2, 2), fc(2, 1, 1), fc(0, 1, 1), fc(-2, 1, 1), fc(7, 1, 1)}

	got := NewSeriesReconciler().Reconcile(h, f, date.Date{})
	for i := 1; i < len(got); i++ {
		assert.Truef(t, got[i].Date.After(got[i-1].Date), "index %d: %s not after %s", i, got[i].Date, got[i-1].Date)
	}
	// offsets 1, 3 and 7 survive
	assert.Len(t, got, len(h)+3)
}

func TestReconcile_EmptyInputs(t *testing.T) {
	r := NewSeriesReconciler()

	got := r.Reconcile(nil, nil, date.Date{})
	assert.NotNil(t, got)
	assert.Empty(t, got)

	h := sampleHistory()
	got = r.Reconcile(h, nil, date.Date{})
	require.Len(t, got, len(h))
	for _, p := range got {
		assert.False(t, p.HasForecast(), "no forecast must be invented")
	}
}

func TestReconcile_EmptyHistoryUsesCallerAnchor(t *testing.T) {
	r := NewSeriesReconciler()
	f := []models.ForecastPoint{fc(1, 5, 10), fc(2, 6, 11)}

	got := r.Reconcile(nil, f, date.MustParse("2024-06-30"))
	require.Len(t, got, 2)
	assert.Equal(t, "2024-07-01", got[0].Date.String())
	assert.Equal(t, "2024-07-02", got[1].Date.String())
	assert.False(t, got[0].HasHistory())

	// without an anchor there is nowhere to put the forecast
	assert.Empty(t, r.Reconcile(nil, f, date.Date{}))
}

func TestReconcile_MissingFieldsStayAbsent(t *testing.T) {
	h := []models.PricePoint{
		{Date: date.MustParse("2024-01-01"), Close: null.FloatFrom(3)},
		{Date: date.MustParse("2024-01-02")},
	}
	f := []models.ForecastPoint{{Day: 1, Price: null.FloatFrom(4)}}

	got := NewSeriesReconciler().Reconcile(h, f, date.Date{})
	require.Len(t, got, 3)
	assert.False(t, got[0].HistoricalVolume.Valid)
	assert.False(t, got[1].HistoricalClose.Valid)
	assert.False(t, got[1].ForecastClose.Valid)
	assert.True(t, got[2].ForecastClose.Valid)
	assert.False(t, got[2].ForecastVolume.Valid)
}

func TestReconcile_DoesNotMutateInputsAndIsIdempotent(t *testing.T) {
	h := sampleHistory()
	f := []models.ForecastPoint{fc(1, 10.3, 1000)}
	before := append([]models.PricePoint(nil), h...)

	r := NewSeriesReconciler()
	a := r.Reconcile(h, f, date.Date{})
	b := r.Reconcile(h, f, date.Date{})

	assert.Equal(t, a, b)
	assert.Equal(t, before, h)
}

func TestChange(t *testing.T) {
	r := NewSeriesReconciler()

	q := r.Change(sampleHistory())
	assert.InDelta(t, 10.2, q.Last, 1e-9)
	assert.InDelta(t, 10.4, q.Previous, 1e-9)
	assert.InDelta(t, -0.2, q.Change, 1e-9)
	assert.InDelta(t, -0.2/10.4*100, q.ChangePercent, 1e-9)

	assert.Equal(t, models.QuoteChange{}, r.Change(nil))

	single := r.Change([]models.PricePoint{hist("2024-01-01", 7, 1)})
	assert.Equal(t, 7.0, single.Previous)
	assert.Zero(t, single.Change)

	missingPrev := r.Change([]models.PricePoint{{Date: date.MustParse("2024-01-01")}, hist("2024-01-02", 8, 1)})
	assert.Equal(t, 8.0, missingPrev.Previous)
	assert.Zero(t, missingPrev.ChangePercent)
}
