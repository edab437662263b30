package valuation

// ReturnsSummary is derived from a set of cash-flow vectors. It is never
// stored apart from the inputs that produced it.
type ReturnsSummary struct {
	InitialEquity            float64   `json:"initial_equity"`
	TotalATCF                float64   `json:"total_atcf"`
	TotalRefinancingProceeds float64   `json:"total_refinancing_proceeds"`
	ExitValue                float64   `json:"exit_value"`
	TotalDistributions       float64   `json:"total_distributions"`
	EquityMultiple           float64   `json:"equity_multiple"`
	CashOnCash               float64   `json:"cash_on_cash"` // mean annual ATCF / equity
	IRR                      *float64  `json:"irr"`          // nil when undefined
	IRRDetail                IRRResult `json:"irr_detail"`
	CashFlows                []float64 `json:"cash_flows"` // net cash flow to investors per year
}

// ConsolidateCashFlows sums per-property waterfalls year by year
func ConsolidateCashFlows(flows [][]CashFlowYearly) []CashFlowYearly {
	years := 0
	for _, f := range flows {
		years = max(years, len(f))
	}
	out := make([]CashFlowYearly, years)
	for y := range out {
		row := &out[y]
		row.Year = y
		for _, f := range flows {
			if y >= len(f) {
				continue
			}
			c := f[y]
			row.FiscalYear = c.FiscalYear
			row.NOI += c.NOI
			row.Interest += c.Interest
			row.Principal += c.Principal
			row.DebtService += c.DebtService
			row.IncomeTax += c.IncomeTax
			row.BTCF += c.BTCF
			row.ATCF += c.ATCF
			row.FCF += c.FCF
			row.FCFE += c.FCFE
			row.RefinancingProceeds += c.RefinancingProceeds
			row.EquityInvestment += c.EquityInvestment
			row.GrossSaleValue += c.GrossSaleValue
			row.SalesCommission += c.SalesCommission
			row.DebtAtExit += c.DebtAtExit
			row.ExitValue += c.ExitValue
			row.NetCashFlow += c.NetCashFlow
		}
		if y > 0 {
			row.CumulativeCashFlow = out[y-1].CumulativeCashFlow
		}
		row.CumulativeCashFlow += row.NetCashFlow
	}
	return out
}

// Summarize computes portfolio returns over the consolidated waterfall
func Summarize(flows [][]CashFlowYearly) ReturnsSummary {
	consolidated := ConsolidateCashFlows(flows)
	s := ReturnsSummary{CashFlows: make([]float64, len(consolidated))}

	for i, c := range consolidated {
		s.InitialEquity += c.EquityInvestment
		s.TotalATCF += c.ATCF
		s.TotalRefinancingProceeds += c.RefinancingProceeds
		s.ExitValue += c.ExitValue
		s.CashFlows[i] = c.NetCashFlow
	}
	s.TotalDistributions = s.TotalATCF + s.TotalRefinancingProceeds + s.ExitValue

	if s.InitialEquity > 0 && len(consolidated) > 0 {
		s.EquityMultiple = s.TotalDistributions / s.InitialEquity
		s.CashOnCash = s.TotalATCF / float64(len(consolidated)) / s.InitialEquity
	}

	s.IRRDetail = SolveIRR(s.CashFlows)
	s.IRR = s.IRRDetail.Value()
	return s
}
