package debt

import "math"

// =============================================================================
// TWO-PASS REFINANCE
// =============================================================================

// AppraisalContext carries what pass 1 (no refinance) learned about the
// refinance month into pass 2
type AppraisalContext struct {
	RefinanceMonth     int     `json:"refinance_month"`
	TrailingNOI        float64 `json:"trailing_noi"`     // annualised
	OperatingMonths    int     `json:"operating_months"` // operating months inside the trailing window
	OutstandingBalance float64 `json:"outstanding_balance"`
}

// NewAppraisalContext reads the 12 months before refiMonth from a pass-1 NOI
// series whose first entry is model month first. When fewer than 12 of those
// months are operating the operating months are annualised.
func NewAppraisalContext(noi []float64, operating []bool, first, refiMonth int, outstanding float64) AppraisalContext {
	ctx := AppraisalContext{RefinanceMonth: refiMonth, OutstandingBalance: outstanding}
	var sum float64
	for m := refiMonth - 12; m < refiMonth; m++ {
		i := m - first
		if i < 0 || i >= len(noi) || i >= len(operating) || !operating[i] {
			continue
		}
		sum += noi[i]
		ctx.OperatingMonths++
	}
	if ctx.OperatingMonths > 0 {
		ctx.TrailingNOI = sum * 12 / float64(ctx.OperatingMonths)
	}
	return ctx
}

// RefinanceTerms are the resolved parameters of the new loan
type RefinanceTerms struct {
	LTV             float64 `json:"ltv"`
	CapRate         float64 `json:"cap_rate"`
	AnnualRate      float64 `json:"annual_rate"`
	TermYears       int     `json:"term_years"`
	ClosingCostRate float64 `json:"closing_cost_rate"`
	DSCRMin         float64 `json:"dscr_min,omitempty"` // 0 disables DSCR sizing
}

// RefinanceResult is the sized new loan and its cash effect
type RefinanceResult struct {
	Appraisal      AppraisalContext `json:"appraisal"`
	AppraisedValue float64          `json:"appraised_value"`
	LTVLoan        float64          `json:"ltv_loan"`
	DSCRLoan       float64          `json:"dscr_loan,omitempty"`
	SizedBy        string           `json:"sized_by"` // "ltv" or "dscr"
	NewLoan        LoanState        `json:"new_loan"`
	ClosingCosts   float64          `json:"closing_costs"`
	NetProceeds    float64          `json:"net_proceeds"` // negative = cash paid in to retire the old loan
}

// SizeRefinance values the property at T12 NOI / cap rate and originates the
// new loan in the refinance month. Net proceeds are not clamped.
func SizeRefinance(ctx AppraisalContext, terms RefinanceTerms) RefinanceResult {
	res := RefinanceResult{Appraisal: ctx, SizedBy: "ltv"}
	if terms.CapRate > 0 && ctx.TrailingNOI > 0 {
		res.AppraisedValue = ctx.TrailingNOI / terms.CapRate
	}
	res.LTVLoan = res.AppraisedValue * terms.LTV
	amount := res.LTVLoan

	if terms.DSCRMin > 0 && ctx.TrailingNOI > 0 {
		monthlyDS := ctx.TrailingNOI / terms.DSCRMin / 12
		res.DSCRLoan = PresentValue(monthlyDS, terms.AnnualRate, terms.TermYears*12)
		if res.DSCRLoan < amount {
			amount = res.DSCRLoan
			res.SizedBy = "dscr"
		}
	}
	amount = math.Max(0, amount)

	res.NewLoan = NewLoan(amount, terms.AnnualRate, terms.TermYears, ctx.RefinanceMonth)
	res.ClosingCosts = amount * terms.ClosingCostRate
	res.NetProceeds = amount - ctx.OutstandingBalance - res.ClosingCosts
	return res
}
