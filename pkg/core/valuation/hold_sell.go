package valuation

import (
	"math"

	"hospitality_proforma/pkg/core/assumption"
	"hospitality_proforma/pkg/core/calc"
	"hospitality_proforma/pkg/core/projection"
)

// IndifferenceBand is the share of market value inside which holding and
// selling are treated as equivalent
const IndifferenceBand = 0.02

// Hold-versus-sell recommendations
const (
	Hold        = "hold"
	Sell        = "sell"
	Indifferent = "indifferent"
)

// HoldSellDecision compares selling at the end of a model year with holding
// to the planned exit
type HoldSellDecision struct {
	Year       int `json:"year"`
	FiscalYear int `json:"fiscal_year"`

	// Sell now
	MarketValue     float64 `json:"market_value"` // year NOI / exit cap rate
	Commission      float64 `json:"commission"`
	DebtRepayment   float64 `json:"debt_repayment"`
	AdjustedBasis   float64 `json:"adjusted_basis"`
	CapitalGainsTax float64 `json:"capital_gains_tax"`
	RecaptureTax    float64 `json:"recapture_tax"`
	SellProceeds    float64 `json:"sell_proceeds"` // after commission, debt and tax

	// Hold to exit
	HoldNPV float64 `json:"hold_npv"` // remaining net cash flows and exit, discounted to the decision date

	Advantage      float64 `json:"advantage"` // HoldNPV - SellProceeds
	Recommendation string  `json:"recommendation"`
}

// HoldVsSell evaluates every year-end before the terminal year at which the
// property is owned and earns positive NOI. Holding uses the projected
// waterfall; selling uses the year's NOI at the exit cap rate with capital
// gains and depreciation recapture taxed on the sale.
func HoldVsSell(pp *projection.PropertyProjection, years []calc.YearlyFinancials, flows []CashFlowYearly, terms assumption.InvestmentTerms) []HoldSellDecision {
	p := pp.Property
	last := min(len(years), len(flows)) - 1
	var out []HoldSellDecision

	for d := 0; d < last; d++ {
		y := years[d]
		if p.AcquisitionMonth >= (d+1)*calc.MonthsPerYear || y.NOI <= 0 || p.ExitCapRate <= 0 {
			continue
		}
		h := HoldSellDecision{Year: y.Year, FiscalYear: y.FiscalYear}

		// 1. Sell at year end
		h.MarketValue = y.NOI / p.ExitCapRate
		h.Commission = h.MarketValue * p.SalesCommissionRate
		h.DebtRepayment = y.DebtOutstanding
		h.AdjustedBasis = y.Land + y.BuildingBasis - y.AccumulatedDepreciation
		gain := math.Max(0, h.MarketValue-h.Commission-h.AdjustedBasis)
		h.RecaptureTax = math.Min(gain, y.AccumulatedDepreciation) * terms.DepreciationRecaptureRate
		h.CapitalGainsTax = math.Max(0, gain-y.AccumulatedDepreciation) * terms.CapitalGainsRate
		h.SellProceeds = h.MarketValue - h.Commission - h.DebtRepayment - h.RecaptureTax - h.CapitalGainsTax

		// 2. Hold to the planned exit
		for t := 1; d+t <= last; t++ {
			h.HoldNPV += flows[d+t].NetCashFlow / math.Pow(1+terms.DiscountRate, float64(t))
		}

		// 3. Compare
		h.Advantage = h.HoldNPV - h.SellProceeds
		band := h.MarketValue * IndifferenceBand
		switch {
		case h.Advantage > band:
			h.Recommendation = Hold
		case h.Advantage < -band:
			h.Recommendation = Sell
		default:
			h.Recommendation = Indifferent
		}
		out = append(out, h)
	}
	return out
}
