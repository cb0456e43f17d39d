package usecase

import (
	"context"
	"fmt"

	"TradeLens/internal/domain/models"
	domsvc "TradeLens/internal/domain/service"
	"TradeLens/pkg/logger"
	"TradeLens/pkg/util"
)

// PortfolioUseCase values the backend portfolio and relays trades and advice.
type PortfolioUseCase struct {
	backend  domsvc.Backend
	analyzer domsvc.PortfolioAnalyzer
	prefs    *PreferenceUseCase
	log      *logger.Logger
}

func NewPortfolioUseCase(backend domsvc.Backend, analyzer domsvc.PortfolioAnalyzer, prefs *PreferenceUseCase, log *logger.Logger) *PortfolioUseCase {
	return &PortfolioUseCase{backend: backend, analyzer: analyzer, prefs: prefs, log: log}
}

// View runs the analyzer once over the fetched holdings.
func (uc *PortfolioUseCase) View(ctx context.Context) (*models.PortfolioView, error) {
	p, err := uc.backend.Portfolio(ctx)
	if err != nil {
		return nil, fmt.Errorf("portfolio: %w", err)
	}
	snapshot := uc.analyzer.Analyze(p.Holdings)
	txs := p.Transactions
	if txs == nil {
		txs = []models.Transaction{}
	}
	return &models.PortfolioView{
		PortfolioSnapshot: snapshot,
		HasAllocation:     snapshot.HasAllocation(),
		Performance:       p.Performance,
		Transactions:      txs,
	}, nil
}

// Submit forwards a validated trade to the backend.
func (uc *PortfolioUseCase) Submit(ctx context.Context, req models.TransactionRequest) (models.Transaction, error) {
	req.Normalize()
	tx, err := uc.backend.SubmitTransaction(ctx, req)
	if err != nil {
		return models.Transaction{}, err
	}
	uc.log.Info("transaction submitted",
		logger.String("type", req.Type),
		logger.String("symbol", req.Symbol),
		logger.Int64("quantity", req.Quantity))
	return tx, nil
}

// Advice is backend guidance computed for the stored risk profile.
type Advice struct {
	Profile     models.RiskProfile `json:"profile"`
	Suggestions []string           `json:"suggestions"`
}

// Optimization asks for rebalancing advice; amount > 0 asks about adding that much cash.
func (uc *PortfolioUseCase) Optimization(ctx context.Context, amount float64) (Advice, error) {
	profile := uc.prefs.Profile(ctx)
	s, err := uc.backend.Optimization(ctx, profile, amount)
	if err != nil {
		return Advice{}, fmt.Errorf("optimization: %w", err)
	}
	return Advice{Profile: profile, Suggestions: s}, nil
}

// Analysis is the agent recommendation for symbol under the stored profile.
type Analysis struct {
	Symbol   string             `json:"symbol"`
	Profile  models.RiskProfile `json:"profile"`
	Analysis map[string]any     `json:"analysis"`
}

func (uc *PortfolioUseCase) Analysis(ctx context.Context, symbol string) (Analysis, error) {
	symbol = util.NormalizeSymbol(symbol)
	profile := uc.prefs.Profile(ctx)
	doc, err := uc.backend.Analysis(ctx, symbol, profile)
	if err != nil {
		return Analysis{}, fmt.Errorf("analysis %s: %w", symbol, err)
	}
	return Analysis{Symbol: symbol, Profile: profile, Analysis: doc}, nil
}
