package models

import (
	"fmt"
	"strings"
)

// RiskProfile is the coarse investor category derived from the questionnaire.
type RiskProfile string

const (
	Conservative RiskProfile = "Conservative"
	Moderate     RiskProfile = "Moderate"
	Aggressive   RiskProfile = "Aggressive"
)

// DefaultRiskProfile is assumed when none has been stored yet.
const DefaultRiskProfile = Moderate

func (p RiskProfile) String() string { return string(p) }

// Valid reports whether p is one of the known categories.
func (p RiskProfile) Valid() bool {
	switch p {
	case Conservative, Moderate, Aggressive:
		return true
	}
	return false
}

// AnswerOption is one selectable answer of a question.
type AnswerOption struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

// Question is one step of the risk questionnaire.
type Question struct {
	ID      int            `json:"id"`
	Text    string         `json:"text"`
	Options []AnswerOption `json:"options"`
}

// InvalidInputError reports answers that cannot be scored.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Field == "" {
		return "invalid input: " + e.Reason
	}
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

// ParseRiskProfile reads a stored profile string, case-insensitively.
// Unknown or empty values fall back to DefaultRiskProfile.
func ParseRiskProfile(s string) RiskProfile {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "conservative":
		return Conservative
	case "moderate":
		return Moderate
	case "aggressive":
		return Aggressive
	}
	return DefaultRiskProfile
}
