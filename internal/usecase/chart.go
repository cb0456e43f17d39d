package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"TradeLens/internal/domain/models"
	domsvc "TradeLens/internal/domain/service"
	"TradeLens/pkg/date"
	"TradeLens/pkg/logger"
	"TradeLens/pkg/util"
)

// ChartView is a stock detail page: the stitched series plus its header.
type ChartView struct {
	Symbol          string                 `json:"symbol"`
	Points          []models.ChartPoint    `json:"points"`
	Quote           models.QuoteChange     `json:"quote"`
	ForecastMetrics models.ForecastMetrics `json:"forecast_metrics"`
	// ForecastError is set when the forecast could not be fetched; the
	// series then holds history only.
	ForecastError string `json:"forecast_error,omitempty"`
}

// ChartUseCase fetches history and forecast concurrently and stitches them.
type ChartUseCase struct {
	backend    domsvc.Backend
	reconciler domsvc.SeriesReconciler
	log        *logger.Logger
	timeout    time.Duration
	today      func() date.Date
}

func NewChartUseCase(backend domsvc.Backend, reconciler domsvc.SeriesReconciler, log *logger.Logger) *ChartUseCase {
	return &ChartUseCase{
		backend:    backend,
		reconciler: reconciler,
		log:        log,
		timeout:    15 * time.Second,
		today:      date.Today,
	}
}

// Chart returns the series for symbol with a days-long forecast. A history
// failure fails the view; a forecast failure only drops the forecast.
func (uc *ChartUseCase) Chart(ctx context.Context, symbol string, days int) (*ChartView, error) {
	symbol = util.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, &models.InvalidInputError{Field: "symbol", Reason: "required"}
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	var (
		wg       sync.WaitGroup
		history  []models.PricePoint
		forecast models.Forecast
		histErr  error
		foreErr  error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		history, histErr = uc.backend.History(ctx, symbol)
	}()
	go func() {
		defer wg.Done()
		forecast, foreErr = uc.backend.Forecast(ctx, symbol, days)
	}()
	wg.Wait()

	if histErr != nil {
		return nil, fmt.Errorf("chart %s: %w", symbol, histErr)
	}

	view := &ChartView{Symbol: symbol, Quote: uc.reconciler.Change(history)}
	if foreErr != nil {
		uc.log.Warn("forecast unavailable", logger.String("symbol", symbol), logger.Error(foreErr))
		view.ForecastError = foreErr.Error()
		forecast = models.Forecast{}
	}
	view.ForecastMetrics = forecast.Metrics
	view.Points = uc.reconciler.Reconcile(history, forecast.Points, uc.today())
	return view, nil
}
