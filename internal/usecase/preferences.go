package usecase

import (
	"context"
	"fmt"
	"time"

	"TradeLens/internal/domain/models"
	domrepo "TradeLens/internal/domain/repository"
	"TradeLens/pkg/logger"
)

// EventPreferenceChanged is the event type published on every write.
const EventPreferenceChanged = "preference.changed"

// PreferenceEvent is the envelope published for preference changes.
type PreferenceEvent struct {
	Type string `json:"type"`
	models.PreferenceChanged
}

// PreferenceUseCase validates and persists user preferences.
type PreferenceUseCase struct {
	store     domrepo.Preferences
	publisher domrepo.EventPublisher
	log       *logger.Logger
	now       func() time.Time
}

func NewPreferenceUseCase(store domrepo.Preferences, publisher domrepo.EventPublisher, log *logger.Logger) *PreferenceUseCase {
	return &PreferenceUseCase{store: store, publisher: publisher, log: log, now: time.Now}
}

// Get returns the stored value for key or its default.
func (uc *PreferenceUseCase) Get(ctx context.Context, key string) (string, error) {
	if !models.IsPreferenceKey(key) {
		return "", fmt.Errorf("%w: %s", domrepo.ErrUnknownPreference, key)
	}
	v, ok, err := uc.store.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if !ok {
		return models.PreferenceDefaults[key], nil
	}
	return v, nil
}

// All returns every known preference, defaults filled in.
func (uc *PreferenceUseCase) All(ctx context.Context) (map[string]string, error) {
	stored, err := uc.store.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(models.PreferenceDefaults))
	for k, def := range models.PreferenceDefaults {
		out[k] = def
		if v, ok := stored[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

// Set validates value, stores its canonical form and publishes a change
// event. Publishing is best effort: a broker outage never fails the write.
func (uc *PreferenceUseCase) Set(ctx context.Context, key, value string) (string, error) {
	if !models.IsPreferenceKey(key) {
		return "", fmt.Errorf("%w: %s", domrepo.ErrUnknownPreference, key)
	}
	v, err := models.NormalizePreference(key, value)
	if err != nil {
		return "", err
	}
	if err := uc.store.Set(ctx, key, v); err != nil {
		return "", err
	}

	event := PreferenceEvent{
		Type:              EventPreferenceChanged,
		PreferenceChanged: models.PreferenceChanged{Key: key, Value: v, At: uc.now().Unix()},
	}
	if err := uc.publisher.Publish(ctx, key, event); err != nil {
		uc.log.Warn("publish preference event failed", logger.String("key", key), logger.Error(err))
	}
	return v, nil
}

// Profile returns the stored risk profile, Moderate when none is stored.
func (uc *PreferenceUseCase) Profile(ctx context.Context) models.RiskProfile {
	v, err := uc.Get(ctx, models.PrefRiskProfile)
	if err != nil {
		uc.log.Warn("read risk profile failed", logger.Error(err))
		return models.DefaultRiskProfile
	}
	return models.ParseRiskProfile(v)
}

// SetProfile stores a profile produced by the risk profiler.
func (uc *PreferenceUseCase) SetProfile(ctx context.Context, p models.RiskProfile) error {
	if !p.Valid() {
		return &models.InvalidInputError{Field: "profile", Reason: "unknown risk profile " + string(p)}
	}
	_, err := uc.Set(ctx, models.PrefRiskProfile, string(p))
	return err
}
