package valuation

import (
	"hospitality_proforma/pkg/core/calc"
	"hospitality_proforma/pkg/core/projection"
)

// CashFlowYearly is one year of the investor waterfall for a property
type CashFlowYearly struct {
	Year       int `json:"year"`
	FiscalYear int `json:"fiscal_year"`

	NOI                 float64 `json:"noi"`
	Interest            float64 `json:"interest"`
	Principal           float64 `json:"principal"`
	DebtService         float64 `json:"debt_service"`
	IncomeTax           float64 `json:"income_tax"`
	BTCF                float64 `json:"btcf"` // NOI - debt service
	ATCF                float64 `json:"atcf"` // BTCF - income tax
	FCF                 float64 `json:"fcf"`  // NOI - income tax
	FCFE                float64 `json:"fcfe"` // ATCF + refinancing proceeds
	RefinancingProceeds float64 `json:"refinancing_proceeds"`

	EquityInvestment float64 `json:"equity_investment"` // acquisition year only, positive amount

	// Terminal year only
	GrossSaleValue  float64 `json:"gross_sale_value"`
	SalesCommission float64 `json:"sales_commission"`
	DebtAtExit      float64 `json:"debt_at_exit"`
	ExitValue       float64 `json:"exit_value"`

	NetCashFlow        float64 `json:"net_cash_flow"` // to investors
	CumulativeCashFlow float64 `json:"cumulative_cash_flow"`
}

// ExitValuation is the disposition at the end of the horizon. Net proceeds
// are not clamped at zero.
type ExitValuation struct {
	FinalYearNOI    float64 `json:"final_year_noi"`
	CapRate         float64 `json:"cap_rate"`
	GrossValue      float64 `json:"gross_value"`
	Commission      float64 `json:"commission"`
	OutstandingDebt float64 `json:"outstanding_debt"`
	NetProceeds     float64 `json:"net_proceeds"`
}

// DebtCovered reports whether sale proceeds net of commission repay the debt
func (x ExitValuation) DebtCovered() bool {
	return x.GrossValue-x.Commission >= x.OutstandingDebt
}

// Exit capitalises final-year NOI and repays the outstanding balance
func Exit(finalYearNOI, capRate, commissionRate, outstandingDebt float64) ExitValuation {
	x := ExitValuation{
		FinalYearNOI:    finalYearNOI,
		CapRate:         capRate,
		OutstandingDebt: outstandingDebt,
	}
	if capRate > 0 {
		x.GrossValue = finalYearNOI / capRate
	}
	x.Commission = x.GrossValue * commissionRate
	x.NetProceeds = x.GrossValue - x.Commission - outstandingDebt
	return x
}

// BuildCashFlows derives the yearly waterfall of one property from its yearly
// statements. Equity is called in the acquisition year (clamped to year 0)
// and the exit is booked in the terminal year. A property acquired after the
// horizon calls no equity.
func BuildCashFlows(pp *projection.PropertyProjection, years []calc.YearlyFinancials) ([]CashFlowYearly, ExitValuation) {
	out := make([]CashFlowYearly, len(years))
	if len(years) == 0 {
		return out, ExitValuation{}
	}
	p := pp.Property

	equityYear := p.AcquisitionMonth / calc.MonthsPerYear
	if p.AcquisitionMonth < 0 {
		equityYear = 0
	}

	last := len(years) - 1
	exit := Exit(years[last].NOI, p.ExitCapRate, p.SalesCommissionRate, pp.TerminalDebt())

	var cumulative float64
	for i, y := range years {
		cf := CashFlowYearly{
			Year:                y.Year,
			FiscalYear:          y.FiscalYear,
			NOI:                 y.NOI,
			Interest:            y.Interest,
			Principal:           y.Principal,
			DebtService:         y.DebtService,
			IncomeTax:           y.IncomeTax,
			RefinancingProceeds: y.RefinancingProceeds,
		}
		cf.BTCF = cf.NOI - cf.DebtService
		cf.ATCF = cf.BTCF - cf.IncomeTax
		cf.FCF = cf.NOI - cf.IncomeTax
		cf.FCFE = cf.ATCF + cf.RefinancingProceeds

		cf.NetCashFlow = cf.ATCF + cf.RefinancingProceeds
		if i == equityYear {
			cf.EquityInvestment = p.InitialEquity()
			cf.NetCashFlow -= cf.EquityInvestment
		}
		if i == last {
			cf.GrossSaleValue = exit.GrossValue
			cf.SalesCommission = exit.Commission
			cf.DebtAtExit = exit.OutstandingDebt
			cf.ExitValue = exit.NetProceeds
			cf.NetCashFlow += cf.ExitValue
		}
		cumulative += cf.NetCashFlow
		cf.CumulativeCashFlow = cumulative
		out[i] = cf
	}
	return out, exit
}
