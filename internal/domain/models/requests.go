package models

import "strings"

// Requests for the dashboard HTTP API. Path parameters carry json:"-" so a
// request body can never override them.

type ChartRequest struct {
	Symbol string `param:"symbol" json:"-" validate:"required,ticker"`
	Days   int    `query:"days" json:"days" default:"7" validate:"gte=1,lte=90"`
}

type SymbolRequest struct {
	Symbol string `param:"symbol" json:"-" validate:"required,ticker"`
}

type TransactionRequest struct {
	Type     string  `json:"type" validate:"required,oneof=BUY SELL"`
	Symbol   string  `json:"symbol" validate:"required,ticker"`
	Quantity int64   `json:"quantity" validate:"gt=0"`
	Price    float64 `json:"price" validate:"gt=0"`
}

// Normalize upper-cases the trade side and symbol so "buy" is accepted.
func (r *TransactionRequest) Normalize() {
	r.Type = strings.ToUpper(strings.TrimSpace(r.Type))
	r.Symbol = strings.ToUpper(strings.TrimSpace(r.Symbol))
}

type RiskProfileRequest struct {
	Answers []int `json:"answers" validate:"required"`
}

type PreferenceRequest struct {
	Key   string `param:"key" json:"-" validate:"required,oneof=userProfile darkMode language"`
	Value string `json:"value" validate:"required,max=64"`
}

// RiskProfileResponse is returned after scoring a questionnaire.
type RiskProfileResponse struct {
	Profile RiskProfile `json:"profile"`
	Score   int         `json:"score"`
}

type OptimizationRequest struct {
	Amount float64 `query:"amount" json:"amount" validate:"gte=0"`
}
