package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePreference(t *testing.T) {
	tests := []struct {
		key, value string
		want       string
		wantErr    bool
	}{
		{PrefRiskProfile, "conservative", "Conservative", false},
		{PrefRiskProfile, " Aggressive ", "Aggressive", false},
		{PrefRiskProfile, "yolo", "", true},
		{PrefDarkMode, "TRUE", "true", false},
		{PrefDarkMode, "1", "", true},
		{PrefLanguage, "Ar", "ar", false},
		{PrefLanguage, "de", "", true},
		{"fontSize", "12", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			got, err := NormalizePreference(tt.key, tt.value)
			if tt.wantErr {
				var invalid *InvalidInputError
				require.ErrorAs(t, err, &invalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPreferenceDefaultsAreValid(t *testing.T) {
	for k, v := range PreferenceDefaults {
		assert.True(t, IsPreferenceKey(k))
		got, err := NormalizePreference(k, v)
		require.NoError(t, err, k)
		assert.Equal(t, v, got)
	}
}
