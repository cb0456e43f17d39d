package usecase

import (
	"context"
	"fmt"

	"TradeLens/internal/domain/models"
	domsvc "TradeLens/internal/domain/service"
	"TradeLens/pkg/logger"
)

// RiskUseCase scores the questionnaire and remembers the outcome.
type RiskUseCase struct {
	profiler domsvc.RiskProfiler
	prefs    *PreferenceUseCase
	log      *logger.Logger
}

func NewRiskUseCase(profiler domsvc.RiskProfiler, prefs *PreferenceUseCase, log *logger.Logger) *RiskUseCase {
	return &RiskUseCase{profiler: profiler, prefs: prefs, log: log}
}

func (uc *RiskUseCase) Questions() []models.Question {
	return uc.profiler.Questions()
}

// Submit scores answers and stores the profile as the userProfile preference.
// Invalid answers return *models.InvalidInputError and store nothing.
func (uc *RiskUseCase) Submit(ctx context.Context, answers []int) (models.RiskProfileResponse, error) {
	profile, total, err := uc.profiler.Evaluate(answers)
	if err != nil {
		return models.RiskProfileResponse{}, err
	}
	if err := uc.prefs.SetProfile(ctx, profile); err != nil {
		return models.RiskProfileResponse{}, fmt.Errorf("store risk profile: %w", err)
	}
	uc.log.Info("risk profile scored", logger.String("profile", profile.String()), logger.Int("score", total))
	return models.RiskProfileResponse{Profile: profile, Score: total}, nil
}

// Current returns the stored profile.
func (uc *RiskUseCase) Current(ctx context.Context) models.RiskProfile {
	return uc.prefs.Profile(ctx)
}
