package usecase

import (
	"context"
	"testing"

	"TradeLens/internal/domain/models"
	"TradeLens/internal/services/analytics"
	"TradeLens/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRisk_SubmitStoresProfile(t *testing.T) {
	ctx := context.Background()
	prefs, pub := newPrefs()
	uc := NewRiskUseCase(analytics.NewRiskProfiler(), prefs, logger.NewNop())

	res, err := uc.Submit(ctx, []int{3, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, models.Aggressive, res.Profile)
	assert.Equal(t, 8, res.Score)
	assert.Equal(t, models.Aggressive, uc.Current(ctx))
	assert.Len(t, pub.events, 1)
}

func TestRisk_InvalidAnswersStoreNothing(t *testing.T) {
	ctx := context.Background()
	prefs, pub := newPrefs()
	uc := NewRiskUseCase(analytics.NewRiskProfiler(), prefs, logger.NewNop())
	require.NoError(t, prefs.SetProfile(ctx, models.Conservative))

	_, err := uc.Submit(ctx, []int{3, 4, 1})
	var invalid *models.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, models.Conservative, uc.Current(ctx))
	assert.Len(t, pub.events, 1)
}

func TestRisk_Questions(t *testing.T) {
	uc := NewRiskUseCase(analytics.NewRiskProfiler(), nil, logger.NewNop())
	qs := uc.Questions()
	require.Len(t, qs, 3)
	for _, q := range qs {
		assert.Len(t, q.Options, 3)
	}
}
