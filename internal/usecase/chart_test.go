package usecase

import (
	"context"
	"testing"

	"TradeLens/internal/domain/models"
	"TradeLens/internal/services/analytics"
	"TradeLens/pkg/date"
	"TradeLens/pkg/logger"

	"github.com/guregu/null/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChartUseCase(b *fakeBackend) *ChartUseCase {
	uc := NewChartUseCase(b, analytics.NewSeriesReconciler(), logger.NewNop())
	uc.today = func() date.Date { return date.New(2024, 6, 30) }
	return uc
}

func TestChart_StitchesHistoryAndForecast(t *testing.T) {
	b := &fakeBackend{
		history: []models.PricePoint{
			{Date: date.MustParse("2024-01-30"), Close: null.FloatFrom(10), Volume: null.IntFrom(100)},
			{Date: date.MustParse("2024-01-31"), Close: null.FloatFrom(11), Volume: null.IntFrom(200)},
		},
		forecast: models.Forecast{
			Points:  []models.ForecastPoint{{Day: 1, Price: null.FloatFrom(11.5), Volume: null.IntFrom(150)}},
			Metrics: models.ForecastMetrics{Price: &models.ErrorMetrics{RMSE: 0.4, MAE: 0.3}},
		},
	}

	view, err := newChartUseCase(b).Chart(context.Background(), " sfbt ", 7)
	require.NoError(t, err)

	assert.Equal(t, "SFBT", view.Symbol)
	assert.Equal(t, 7, b.gotDays)
	require.Len(t, view.Points, 3)
	assert.Equal(t, "2024-02-01", view.Points[2].Date.String())
	assert.Equal(t, 11.0, view.Quote.Last)
	assert.InDelta(t, 10.0, view.Quote.ChangePercent, 1e-9)
	require.NotNil(t, view.ForecastMetrics.Price)
	assert.Empty(t, view.ForecastError)
}

func TestChart_ForecastFailureKeepsHistory(t *testing.T) {
	b := &fakeBackend{
		history:     []models.PricePoint{{Date: date.MustParse("2024-01-31"), Close: null.FloatFrom(11)}},
		forecastErr: errBackend,
	}

	view, err := newChartUseCase(b).Chart(context.Background(), "SFBT", 7)
	require.NoError(t, err)
	require.Len(t, view.Points, 1)
	assert.False(t, view.Points[0].HasForecast())
	assert.Contains(t, view.ForecastError, "backend unavailable")
}

func TestChart_HistoryFailureFails(t *testing.T) {
	b := &fakeBackend{historyErr: errBackend}

	_, err := newChartUseCase(b).Chart(context.Background(), "SFBT", 7)
	assert.ErrorIs(t, err, errBackend)
}

func TestChart_EmptyHistoryAnchorsOnToday(t *testing.T) {
	b := &fakeBackend{
		forecast: models.Forecast{Points: []models.ForecastPoint{
			{Day: 1, Price: null.FloatFrom(5)},
			{Day: 2, Price: null.FloatFrom(6)},
		}},
	}

	view, err := newChartUseCase(b).Chart(context.Background(), "SFBT", 2)
	require.NoError(t, err)
	require.Len(t, view.Points, 2)
	assert.Equal(t, "2024-07-01", view.Points[0].Date.String())
	assert.Equal(t, "2024-07-02", view.Points[1].Date.String())
}

func TestChart_RequiresSymbol(t *testing.T) {
	_, err := newChartUseCase(&fakeBackend{}).Chart(context.Background(), "  ", 7)
	var invalid *models.InvalidInputError
	assert.ErrorAs(t, err, &invalid)
}
