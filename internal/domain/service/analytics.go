package service

import (
	"context"

	"TradeLens/internal/domain/models"
	"TradeLens/pkg/date"
)

// SeriesReconciler stitches history and forecast into one plottable series.
type SeriesReconciler interface {
	Reconcile(history []models.PricePoint, forecast []models.ForecastPoint, fallbackAnchor date.Date) []models.ChartPoint
	Change(history []models.PricePoint) models.QuoteChange
}

// PortfolioAnalyzer values holdings.
type PortfolioAnalyzer interface {
	Analyze(holdings []models.Holding) models.PortfolioSnapshot
}

// RiskProfiler scores a completed questionnaire.
type RiskProfiler interface {
	Score(answers []int) (models.RiskProfile, error)
	Evaluate(answers []int) (models.RiskProfile, int, error)
	Questions() []models.Question
}

// SentimentClassifier maps scores to display bands.
type SentimentClassifier interface {
	Classify(score float64) models.Sentiment
	SeverityBand(severity string) models.SentimentBand
}

// Backend is the external market/portfolio API.
type Backend interface {
	Stocks(ctx context.Context) ([]string, error)
	History(ctx context.Context, symbol string) ([]models.PricePoint, error)
	Forecast(ctx context.Context, symbol string, days int) (models.Forecast, error)
	StockSentiment(ctx context.Context, symbol string) (models.StockSentiment, error)
	MarketMood(ctx context.Context) (models.MarketMood, error)
	MarketSummary(ctx context.Context) (models.MarketSummary, error)
	Anomalies(ctx context.Context) ([]models.Anomaly, error)
	Portfolio(ctx context.Context) (models.Portfolio, error)
	SubmitTransaction(ctx context.Context, req models.TransactionRequest) (models.Transaction, error)
	Analysis(ctx context.Context, symbol string, profile models.RiskProfile) (map[string]any, error)
	// Optimization returns advice for the profile; amount > 0 asks about investing that much more.
	Optimization(ctx context.Context, profile models.RiskProfile, amount float64) ([]string, error)
}
