package usecase

import (
	"context"
	"testing"

	"TradeLens/internal/domain/models"
	domrepo "TradeLens/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferences_DefaultsAndOverrides(t *testing.T) {
	ctx := context.Background()
	uc, _ := newPrefs()

	all, err := uc.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"userProfile": "Moderate", "darkMode": "false", "language": "en"}, all)

	v, err := uc.Set(ctx, "language", "FR")
	require.NoError(t, err)
	assert.Equal(t, "fr", v)

	got, err := uc.Get(ctx, "language")
	require.NoError(t, err)
	assert.Equal(t, "fr", got)

	all, err = uc.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fr", all["language"])
	assert.Equal(t, "false", all["darkMode"])
}

func TestPreferences_Validation(t *testing.T) {
	ctx := context.Background()
	uc, pub := newPrefs()

	_, err := uc.Set(ctx, "fontSize", "12")
	assert.ErrorIs(t, err, domrepo.ErrUnknownPreference)

	_, err = uc.Get(ctx, "fontSize")
	assert.ErrorIs(t, err, domrepo.ErrUnknownPreference)

	var invalid *models.InvalidInputError
	_, err = uc.Set(ctx, "darkMode", "maybe")
	assert.ErrorAs(t, err, &invalid)
	_, err = uc.Set(ctx, "userProfile", "Reckless")
	assert.ErrorAs(t, err, &invalid)
	_, err = uc.Set(ctx, "language", "de")
	assert.ErrorAs(t, err, &invalid)

	assert.Empty(t, pub.events)
	assert.Equal(t, models.Moderate, uc.Profile(ctx))
}

func TestPreferences_PublishesChanges(t *testing.T) {
	ctx := context.Background()
	uc, pub := newPrefs()

	_, err := uc.Set(ctx, "userProfile", "aggressive")
	require.NoError(t, err)

	require.Len(t, pub.events, 1)
	assert.Equal(t, "userProfile", pub.events[0].key)
	ev, ok := pub.events[0].event.(PreferenceEvent)
	require.True(t, ok)
	assert.Equal(t, EventPreferenceChanged, ev.Type)
	assert.Equal(t, "Aggressive", ev.Value)
	assert.Equal(t, models.Aggressive, uc.Profile(ctx))
}

func TestPreferences_PublishFailureDoesNotFailWrite(t *testing.T) {
	ctx := context.Background()
	uc, pub := newPrefs()
	pub.err = errBackend

	_, err := uc.Set(ctx, "darkMode", "true")
	require.NoError(t, err)
	v, err := uc.Get(ctx, "darkMode")
	require.NoError(t, err)
	assert.Equal(t, "true", v)
}
