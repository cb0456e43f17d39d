package models

import (
	"strings"
)

// Preference keys shared with the browser.
const (
	PrefRiskProfile = "userProfile"
	PrefDarkMode    = "darkMode"
	PrefLanguage    = "language"
)

// PreferenceDefaults are served for keys that were never written.
var PreferenceDefaults = map[string]string{
	PrefRiskProfile: string(DefaultRiskProfile),
	PrefDarkMode:    "false",
	PrefLanguage:    "en",
}

var languages = map[string]bool{"en": true, "fr": true, "ar": true}

// IsPreferenceKey reports whether key is one of the known preferences.
func IsPreferenceKey(key string) bool {
	_, ok := PreferenceDefaults[key]
	return ok
}

// NormalizePreference validates value for key and returns its canonical form.
func NormalizePreference(key, value string) (string, error) {
	v := strings.TrimSpace(value)
	switch key {
	case PrefRiskProfile:
		for _, p := range []RiskProfile{Conservative, Moderate, Aggressive} {
			if strings.EqualFold(v, string(p)) {
				return string(p), nil
			}
		}
		return "", &InvalidInputError{Field: "value", Reason: "must be Conservative, Moderate or Aggressive"}
	case PrefDarkMode:
		switch strings.ToLower(v) {
		case "true", "false":
			return strings.ToLower(v), nil
		}
		return "", &InvalidInputError{Field: "value", Reason: "must be true or false"}
	case PrefLanguage:
		if l := strings.ToLower(v); languages[l] {
			return l, nil
		}
		return "", &InvalidInputError{Field: "value", Reason: "unsupported language"}
	default:
		return "", &InvalidInputError{Field: "key", Reason: "unknown preference " + key}
	}
}

// PreferenceChanged is published whenever a preference is written.
type PreferenceChanged struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	At    int64  `json:"at"`
}
