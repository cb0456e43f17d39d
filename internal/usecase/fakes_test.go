package usecase

import (
	"context"
	"errors"
	"sync"

	"TradeLens/internal/domain/models"
	domsvc "TradeLens/internal/domain/service"
	"TradeLens/internal/repository"
	pkgcache "TradeLens/pkg/cache"
	"TradeLens/pkg/logger"
)

var errBackend = errors.New("backend unavailable")

// fakeBackend answers from fields; a non-nil err field fails that call.
type fakeBackend struct {
	history     []models.PricePoint
	historyErr  error
	forecast    models.Forecast
	forecastErr error
	mood        models.MarketMood
	moodErr     error
	moodBlock   chan struct{}
	summary     models.MarketSummary
	summaryErr  error
	sentiment   models.StockSentiment
	anomalies   []models.Anomaly
	portfolio   models.Portfolio
	portErr     error

	mu         sync.Mutex
	gotProfile models.RiskProfile
	gotAmount  float64
	gotDays    int
	submitted  []models.TransactionRequest
}

var _ domsvc.Backend = (*fakeBackend)(nil)

func (f *fakeBackend) Stocks(context.Context) ([]string, error) { return []string{"SFBT", "BIAT"}, nil }

func (f *fakeBackend) History(context.Context, string) ([]models.PricePoint, error) {
	return f.history, f.historyErr
}

func (f *fakeBackend) Forecast(_ context.Context, _ string, days int) (models.Forecast, error) {
	f.mu.Lock()
	f.gotDays = days
	f.mu.Unlock()
	return f.forecast, f.forecastErr
}

func (f *fakeBackend) StockSentiment(_ context.Context, symbol string) (models.StockSentiment, error) {
	s := f.sentiment
	s.Symbol = symbol
	return s, nil
}

func (f *fakeBackend) MarketMood(ctx context.Context) (models.MarketMood, error) {
	if f.moodBlock != nil {
		select {
		case <-f.moodBlock:
		case <-ctx.Done():
			return models.MarketMood{}, ctx.Err()
		}
	}
	return f.mood, f.moodErr
}

func (f *fakeBackend) MarketSummary(context.Context) (models.MarketSummary, error) {
	return f.summary, f.summaryErr
}

func (f *fakeBackend) Anomalies(context.Context) ([]models.Anomaly, error) { return f.anomalies, nil }

func (f *fakeBackend) Portfolio(context.Context) (models.Portfolio, error) {
	return f.portfolio, f.portErr
}

func (f *fakeBackend) SubmitTransaction(_ context.Context, req models.TransactionRequest) (models.Transaction, error) {
	f.mu.Lock()
	f.submitted = append(f.submitted, req)
	f.mu.Unlock()
	return models.Transaction{Type: req.Type, Symbol: req.Symbol, Quantity: req.Quantity}, nil
}

func (f *fakeBackend) Analysis(_ context.Context, symbol string, profile models.RiskProfile) (map[string]any, error) {
	f.mu.Lock()
	f.gotProfile = profile
	f.mu.Unlock()
	return map[string]any{"recommendation": "HOLD", "symbol": symbol}, nil
}

func (f *fakeBackend) Optimization(_ context.Context, profile models.RiskProfile, amount float64) ([]string, error) {
	f.mu.Lock()
	f.gotProfile = profile
	f.gotAmount = amount
	f.mu.Unlock()
	return []string{"rebalance"}, nil
}

type recordedEvent struct {
	key   string
	event any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, recordedEvent{key, event})
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func newPrefs() (*PreferenceUseCase, *recordingPublisher) {
	pub := &recordingPublisher{}
	store := repository.NewCachePreferences(pkgcache.NewMemoryCache())
	return NewPreferenceUseCase(store, pub, logger.NewNop()), pub
}
