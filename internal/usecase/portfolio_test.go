package usecase

import (
	"context"
	"testing"

	"TradeLens/internal/domain/models"
	"TradeLens/internal/services/analytics"
	"TradeLens/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPortfolioUseCase(b *fakeBackend) (*PortfolioUseCase, *PreferenceUseCase) {
	prefs, _ := newPrefs()
	return NewPortfolioUseCase(b, analytics.NewPortfolioAnalyzer(), prefs, logger.NewNop()), prefs
}

func TestPortfolio_View(t *testing.T) {
	b := &fakeBackend{portfolio: models.Portfolio{
		Holdings: []models.Holding{
			{Symbol: "SFBT", Quantity: 100, AvgCost: decimal.RequireFromString("12.5"), CurrentPrice: decimal.RequireFromString("13")},
		},
		Performance: models.PerformanceMetrics{ROI: 4, SharpeRatio: 1.2},
	}}
	uc, _ := newPortfolioUseCase(b)

	view, err := uc.View(context.Background())
	require.NoError(t, err)
	assert.True(t, view.HasAllocation)
	assert.True(t, view.TotalValue.Equal(decimal.NewFromInt(1300)))
	assert.True(t, view.TotalPL.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, 4.0, view.Performance.ROI)
	assert.NotNil(t, view.Transactions)
}

func TestPortfolio_EmptyHasNoAllocation(t *testing.T) {
	uc, _ := newPortfolioUseCase(&fakeBackend{})

	view, err := uc.View(context.Background())
	require.NoError(t, err)
	assert.False(t, view.HasAllocation)
	assert.Empty(t, view.Holdings)
}

func TestPortfolio_ViewError(t *testing.T) {
	uc, _ := newPortfolioUseCase(&fakeBackend{portErr: errBackend})
	_, err := uc.View(context.Background())
	assert.ErrorIs(t, err, errBackend)
}

func TestPortfolio_SubmitNormalizes(t *testing.T) {
	b := &fakeBackend{}
	uc, _ := newPortfolioUseCase(b)

	tx, err := uc.Submit(context.Background(), models.TransactionRequest{Type: "buy", Symbol: " sfbt", Quantity: 5, Price: 12})
	require.NoError(t, err)
	assert.Equal(t, "BUY", tx.Type)
	require.Len(t, b.submitted, 1)
	assert.Equal(t, "SFBT", b.submitted[0].Symbol)
}

func TestPortfolio_AdviceUsesStoredProfile(t *testing.T) {
	ctx := context.Background()
	b := &fakeBackend{}
	uc, prefs := newPortfolioUseCase(b)

	advice, err := uc.Optimization(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, models.Moderate, advice.Profile)
	assert.Equal(t, []string{"rebalance"}, advice.Suggestions)

	require.NoError(t, prefs.SetProfile(ctx, models.Aggressive))
	a, err := uc.Analysis(ctx, "sfbt")
	require.NoError(t, err)
	assert.Equal(t, "SFBT", a.Symbol)
	assert.Equal(t, models.Aggressive, a.Profile)
	assert.Equal(t, models.Aggressive, b.gotProfile)

	_, err = uc.Optimization(ctx, 2500)
	require.NoError(t, err)
	assert.Equal(t, 2500.0, b.gotAmount)
}
