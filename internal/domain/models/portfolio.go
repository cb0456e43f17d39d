package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Holding is a raw position. The analyzer never mutates it.
type Holding struct {
	Symbol       string          `json:"symbol"`
	Quantity     int64           `json:"quantity"`
	AvgCost      decimal.Decimal `json:"avg_cost"`
	CurrentPrice decimal.Decimal `json:"current_price"`
}

// HoldingMetrics is a holding enriched with valuation and allocation.
type HoldingMetrics struct {
	Symbol            string          `json:"symbol"`
	Quantity          int64           `json:"quantity"`
	AvgCost           decimal.Decimal `json:"avg_cost"`
	CurrentPrice      decimal.Decimal `json:"current_price"`
	MarketValue       decimal.Decimal `json:"market_value"`
	CostBasis         decimal.Decimal `json:"cost_basis"`
	UnrealizedPL      decimal.Decimal `json:"unrealized_pl"`
	PLPercent         decimal.Decimal `json:"pl_percent"`
	AllocationPercent decimal.Decimal `json:"allocation_percent"`
}

// PortfolioSnapshot aggregates a portfolio. Holdings keep input order.
type PortfolioSnapshot struct {
	TotalValue decimal.Decimal  `json:"total_value"`
	TotalCost  decimal.Decimal  `json:"total_cost"`
	TotalPL    decimal.Decimal  `json:"total_pl"`
	Holdings   []HoldingMetrics `json:"holdings"`
}

// HasAllocation reports whether an allocation chart has anything to draw.
// When false the chart must show a "no data" state.
func (s PortfolioSnapshot) HasAllocation() bool {
	return s.TotalValue.IsPositive()
}

// PerformanceMetrics are the backend's portfolio-level ratios, passed through.
type PerformanceMetrics struct {
	ROI         float64 `json:"roi"`
	SharpeRatio float64 `json:"sharpe_ratio"`
	MaxDrawdown float64 `json:"max_drawdown"`
}

// Transaction is a backend-recorded buy or sell.
type Transaction struct {
	Type       string          `json:"type"`
	Symbol     string          `json:"symbol"`
	Quantity   int64           `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Total      decimal.Decimal `json:"total"`
	RealizedPL *float64        `json:"realized_pl,omitempty"`
	Date       time.Time       `json:"date"`
}

// Portfolio is the decoded backend portfolio payload.
type Portfolio struct {
	Holdings     []Holding
	Performance  PerformanceMetrics
	Transactions []Transaction
}

// PortfolioView is what the portfolio page renders.
type PortfolioView struct {
	PortfolioSnapshot
	HasAllocation bool               `json:"has_allocation"`
	Performance   PerformanceMetrics `json:"performance"`
	Transactions  []Transaction      `json:"transactions"`
}
