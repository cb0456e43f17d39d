package usecase

import (
	"context"
	"fmt"
	"time"

	"TradeLens/internal/domain/models"
	domsvc "TradeLens/internal/domain/service"
	"TradeLens/pkg/logger"
	"TradeLens/pkg/util"
)

// DashboardView is the landing page: summary and mood arrive independently.
type DashboardView struct {
	Summary Result[models.MarketSummary] `json:"summary"`
	Mood    Result[models.MarketMood]    `json:"mood"`
}

// MarketUseCase serves market-wide data with sentiment classification applied.
type MarketUseCase struct {
	backend    domsvc.Backend
	classifier domsvc.SentimentClassifier
	log        *logger.Logger
	// wait bounds how long the dashboard waits before reporting a panel pending.
	wait time.Duration
}

func NewMarketUseCase(backend domsvc.Backend, classifier domsvc.SentimentClassifier, log *logger.Logger) *MarketUseCase {
	return &MarketUseCase{backend: backend, classifier: classifier, log: log, wait: 10 * time.Second}
}

func (uc *MarketUseCase) Stocks(ctx context.Context) ([]string, error) {
	return uc.backend.Stocks(ctx)
}

func (uc *MarketUseCase) Mood(ctx context.Context) (models.MarketMood, error) {
	mood, err := uc.backend.MarketMood(ctx)
	if err != nil {
		return models.MarketMood{}, fmt.Errorf("market mood: %w", err)
	}
	mood.Sentiment = uc.classifier.Classify(mood.Score)
	return mood, nil
}

func (uc *MarketUseCase) Summary(ctx context.Context) (models.MarketSummary, error) {
	s, err := uc.backend.MarketSummary(ctx)
	if err != nil {
		return models.MarketSummary{}, fmt.Errorf("market summary: %w", err)
	}
	s.RecentAnomalies = uc.bandAnomalies(s.RecentAnomalies)
	return s, nil
}

func (uc *MarketUseCase) StockSentiment(ctx context.Context, symbol string) (models.StockSentiment, error) {
	symbol = util.NormalizeSymbol(symbol)
	s, err := uc.backend.StockSentiment(ctx, symbol)
	if err != nil {
		return models.StockSentiment{}, fmt.Errorf("sentiment %s: %w", symbol, err)
	}
	s.Sentiment = uc.classifier.Classify(s.Score)
	return s, nil
}

func (uc *MarketUseCase) Anomalies(ctx context.Context) ([]models.Anomaly, error) {
	list, err := uc.backend.Anomalies(ctx)
	if err != nil {
		return nil, fmt.Errorf("anomalies: %w", err)
	}
	return uc.bandAnomalies(list), nil
}

func (uc *MarketUseCase) bandAnomalies(list []models.Anomaly) []models.Anomaly {
	out := make([]models.Anomaly, len(list))
	for i, a := range list {
		a.Band = uc.classifier.SeverityBand(a.Severity)
		a.Color = a.Band.Color()
		out[i] = a
	}
	return out
}

// Dashboard fetches summary and mood concurrently. Each panel is ready,
// failed, or pending when it did not arrive within the wait budget.
func (uc *MarketUseCase) Dashboard(ctx context.Context) DashboardView {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type summaryRes struct {
		v   models.MarketSummary
		err error
	}
	type moodRes struct {
		v   models.MarketMood
		err error
	}
	summaryCh := make(chan summaryRes, 1)
	moodCh := make(chan moodRes, 1)
	go func() {
		v, err := uc.Summary(ctx)
		summaryCh <- summaryRes{v, err}
	}()
	go func() {
		v, err := uc.Mood(ctx)
		moodCh <- moodRes{v, err}
	}()

	view := DashboardView{
		Summary: Pending[models.MarketSummary](),
		Mood:    Pending[models.MarketMood](),
	}
	timer := time.NewTimer(uc.wait)
	defer timer.Stop()

	for remaining := 2; remaining > 0; remaining-- {
		select {
		case r := <-summaryCh:
			view.Summary = settle(r.v, r.err)
			summaryCh = nil
		case r := <-moodCh:
			view.Mood = settle(r.v, r.err)
			moodCh = nil
		case <-timer.C:
			uc.log.Warn("dashboard panels still pending",
				logger.Bool("summary", view.Summary.State == StatePending),
				logger.Bool("mood", view.Mood.State == StatePending))
			return view
		case <-ctx.Done():
			return view
		}
	}
	if view.Summary.State == StateFailed || view.Mood.State == StateFailed {
		uc.log.Warn("dashboard partially failed",
			logger.String("summary", view.Summary.Error),
			logger.String("mood", view.Mood.Error))
	}
	return view
}

func settle[T any](v T, err error) Result[T] {
	if err != nil {
		return Failed[T](err)
	}
	return Ready(v)
}
