package analytics

import (
	"TradeLens/internal/domain/models"
	domsvc "TradeLens/internal/domain/service"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PortfolioAnalyzer values holdings at their current price.
type PortfolioAnalyzer struct{}

func NewPortfolioAnalyzer() *PortfolioAnalyzer { return &PortfolioAnalyzer{} }

// Analyze computes per-holding valuation, P/L and allocation plus totals.
// Holdings are reported in input order. Negative inputs are not rejected.
func (PortfolioAnalyzer) Analyze(holdings []models.Holding) models.PortfolioSnapshot {
	snap := models.PortfolioSnapshot{
		TotalValue: decimal.Zero,
		TotalCost:  decimal.Zero,
		TotalPL:    decimal.Zero,
		Holdings:   make([]models.HoldingMetrics, 0, len(holdings)),
	}

	for _, h := range holdings {
		qty := decimal.NewFromInt(h.Quantity)
		value := qty.Mul(h.CurrentPrice)
		cost := qty.Mul(h.AvgCost)
		pl := value.Sub(cost)

		// a zero-cost position has no percentage basis
		plPct := decimal.Zero
		if cost.IsPositive() {
			plPct = pl.Mul(hundred).Div(cost)
		}

		snap.Holdings = append(snap.Holdings, models.HoldingMetrics{
			Symbol:            h.Symbol,
			Quantity:          h.Quantity,
			AvgCost:           h.AvgCost,
			CurrentPrice:      h.CurrentPrice,
			MarketValue:       value,
			CostBasis:         cost,
			UnrealizedPL:      pl,
			PLPercent:         plPct,
			AllocationPercent: decimal.Zero,
		})
		snap.TotalValue = snap.TotalValue.Add(value)
		snap.TotalCost = snap.TotalCost.Add(cost)
	}
	snap.TotalPL = snap.TotalValue.Sub(snap.TotalCost)

	if snap.TotalValue.IsPositive() {
		for i := range snap.Holdings {
			snap.Holdings[i].AllocationPercent = snap.Holdings[i].MarketValue.Mul(hundred).Div(snap.TotalValue)
		}
	}
	return snap
}

var _ domsvc.PortfolioAnalyzer = (*PortfolioAnalyzer)(nil)
