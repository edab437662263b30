package projection

import (
	"hospitality_proforma/pkg/core/assumption"
	"hospitality_proforma/pkg/core/debt"
)

// Engine projects properties month by month over the scenario horizon.
// It holds no mutable state, so one Engine may project many properties
// concurrently; each property's chain is strictly sequential.
type Engine struct {
	global *assumption.ResolvedGlobal
}

// NewEngine creates a projection engine for one scenario
func NewEngine(global *assumption.ResolvedGlobal) *Engine {
	return &Engine{global: global}
}

// Global returns the resolved scenario parameters
func (e *Engine) Global() *assumption.ResolvedGlobal {
	return e.global
}

// PropertyProjection is the full monthly output of one property
type PropertyProjection struct {
	Property     *assumption.ResolvedProperty `json:"property"`
	Months       []MonthlyFinancials          `json:"months"`
	Depreciation Depreciation                 `json:"depreciation"`
	InitialLoan  debt.LoanState               `json:"initial_loan"`
	Refinance    *debt.RefinanceResult        `json:"refinance,omitempty"`
}

// TerminalDebt is the balance outstanding after the final month
func (pp *PropertyProjection) TerminalDebt() float64 {
	if len(pp.Months) == 0 {
		return 0
	}
	return pp.Months[len(pp.Months)-1].DebtOutstanding
}

// AcquiredInHorizon reports whether the property is owned in any modelled month
func (pp *PropertyProjection) AcquiredInHorizon() bool {
	return pp.Property.AcquisitionMonth < len(pp.Months)
}

// ProjectProperty runs the monthly chain. With a refinance inside the horizon
// it runs twice: pass 1 without refinancing to appraise the property, pass 2
// from scratch with the new loan replacing the old one at the refinance month.
func (e *Engine) ProjectProperty(p *assumption.ResolvedProperty) *PropertyProjection {
	out := &PropertyProjection{
		Property:     p,
		Depreciation: NewDepreciation(p),
		InitialLoan:  initialLoan(p),
	}

	// -------------------------------------------------------------------------
	// Pass 1: no refinance
	// -------------------------------------------------------------------------
	first := e.run(p, nil)
	if !e.refinanceInHorizon(p) {
		out.Months = first.emitted()
		return out
	}

	// -------------------------------------------------------------------------
	// Appraisal and sizing
	// -------------------------------------------------------------------------
	noi := make([]float64, len(first.records))
	operating := make([]bool, len(first.records))
	for i := range first.records {
		noi[i] = first.records[i].NOI
		operating[i] = first.records[i].Operating
	}
	ctx := debt.NewAppraisalContext(noi, operating, first.first, p.RefinanceMonth, out.InitialLoan.BalanceAfter(p.RefinanceMonth-1))
	res := debt.SizeRefinance(ctx, debt.RefinanceTerms{
		LTV:             p.RefinanceLTV,
		CapRate:         p.RefinanceCapRate,
		AnnualRate:      p.RefinanceInterestRate,
		TermYears:       p.RefinanceTermYears,
		ClosingCostRate: p.RefinanceClosingCostRate,
		DSCRMin:         p.RefinanceDSCRMin,
	})

	// -------------------------------------------------------------------------
	// Pass 2: full re-projection with the new loan
	// -------------------------------------------------------------------------
	second := e.run(p, &res)
	out.Refinance = &res
	out.Months = second.emitted()
	return out
}

func (e *Engine) refinanceInHorizon(p *assumption.ResolvedProperty) bool {
	if !p.WillRefinance {
		return false
	}
	m := p.RefinanceMonth
	return m >= 0 && m >= p.AcquisitionMonth && m < e.global.Months
}

func initialLoan(p *assumption.ResolvedProperty) debt.LoanState {
	return debt.NewLoan(p.InitialLoan(), p.AcquisitionInterestRate, p.AcquisitionTermYears, p.AcquisitionMonth)
}

// pass is one sequential sub-run. records[0] is model month first, which is
// negative when the property was acquired before the model start.
type pass struct {
	first   int
	records []MonthlyFinancials
}

// emitted drops the months before the model start
func (ps pass) emitted() []MonthlyFinancials {
	return ps.records[-ps.first:]
}

func (e *Engine) run(p *assumption.ResolvedProperty, refi *debt.RefinanceResult) pass {
	g := e.global
	first := 0
	if p.AcquisitionMonth < 0 {
		first = p.AcquisitionMonth
	}
	records := make([]MonthlyFinancials, 0, g.Months-first)

	dep := NewDepreciation(p)
	loan := initialLoan(p)
	land := p.PurchasePrice * p.LandValuePercent
	paidIn := p.InitialEquity()

	var balance, accumulated, cash, retained, deferred float64

	for m := first; m < g.Months; m++ {
		rec := MonthlyFinancials{Month: m, Date: assumption.MonthDate(g.ModelStart, m)}

		// Nothing exists before acquisition
		if m < p.AcquisitionMonth {
			records = append(records, rec)
			continue
		}
		rec.Acquired = true
		if m == p.AcquisitionMonth {
			balance = loan.Principal
			deferred = p.AcquisitionClosingCosts() + p.PreOpeningCosts
			rec.ReserveFunding = p.OperatingReserve
			rec.EquityContribution = paidIn
		}
		rec.OpeningCash = cash

		// 1. Operations
		if m >= p.OperationsStartMonth {
			k := m - p.OperationsStartMonth
			rev := ProjectRevenue(p, k)
			applyOperations(&rec, p, rev, ProjectExpenses(p, rev, k))
		}

		// 2. Debt: a refinance retires the old loan at the start of its month
		if refi != nil && m == refi.Appraisal.RefinanceMonth {
			rec.Refinanced = true
			rec.DebtRetired = balance
			rec.RefinancingProceeds = refi.NetProceeds
			rec.RefinanceClosingCosts = refi.ClosingCosts
			deferred += refi.ClosingCosts
			loan = refi.NewLoan
			balance = loan.Principal
		}
		inst := loan.Step(m, balance)
		balance = inst.EndingBalance
		rec.Interest = inst.Interest
		rec.Principal = inst.Principal
		rec.DebtService = inst.Payment
		rec.DebtOutstanding = balance

		// 3. Depreciation and tax
		rec.Depreciation = dep.Charge(m, accumulated)
		accumulated += rec.Depreciation
		rec.AccumulatedDepreciation = accumulated
		rec.TaxableIncome, rec.IncomeTax = IncomeTax(rec.NOI, rec.Interest, rec.Depreciation, p.TaxRate)
		rec.NetIncome = rec.NOI - rec.Interest - rec.Depreciation - rec.IncomeTax

		// 4. Cash (principal is a financing outflow, never an expense)
		rec.OperatingCashFlow = rec.NetIncome + rec.Depreciation
		rec.FinancingCashFlow = rec.RefinancingProceeds - rec.Principal
		rec.NetCashFlow = rec.NOI - rec.DebtService - rec.IncomeTax + rec.RefinancingProceeds
		cash += rec.ReserveFunding + rec.NetCashFlow
		rec.EndingCash = cash

		// 5. Balance sheet
		retained += rec.NetIncome
		rec.Land = land
		rec.BuildingBasis = dep.Basis
		rec.DeferredCosts = deferred
		rec.TotalAssets = cash + land + dep.Basis - accumulated + deferred
		rec.TotalLiabilities = balance
		rec.PaidInCapital = paidIn
		rec.RetainedEarnings = retained
		rec.TotalEquity = paidIn + retained

		records = append(records, rec)
	}
	return pass{first: first, records: records}
}

func applyOperations(rec *MonthlyFinancials, p *assumption.ResolvedProperty, rev Revenue, exp Expenses) {
	rec.Operating = true
	rec.AvailableRoomNights = rev.AvailableRoomNights
	rec.SoldRoomNights = rev.SoldRoomNights
	rec.Occupancy = rev.Occupancy
	rec.ADR = rev.ADR
	rec.RevenueRooms = rev.Rooms
	rec.RevenueFB = rev.FB
	rec.RevenueEvents = rev.Events
	rec.RevenueOther = rev.Other
	rec.RevenueTotal = rev.Total

	rec.ExpenseRooms = exp.Rooms
	rec.ExpenseFB = exp.FB
	rec.ExpenseEvents = exp.Events
	rec.ExpenseOther = exp.Other
	rec.ExpenseMarketing = exp.Marketing
	rec.ExpenseUtilitiesVariable = exp.UtilitiesVariable
	rec.ExpenseAdmin = exp.Admin
	rec.ExpensePropertyOps = exp.PropertyOps
	rec.ExpenseIT = exp.IT
	rec.ExpenseUtilitiesFixed = exp.UtilitiesFixed
	rec.ExpenseOtherCosts = exp.OtherCosts
	rec.ExpenseInsurance = exp.Insurance
	rec.ExpensePropertyTaxes = exp.PropertyTaxes
	rec.TotalOperatingExpenses = exp.Operating()
	rec.GOP = rev.Total - rec.TotalOperatingExpenses

	fees := ComputeFees(p, rev.Total, rec.GOP)
	rec.FeeBase = fees.Base
	rec.FeeIncentive = fees.Incentive
	rec.FeesByCategory = fees.ByCategory
	rec.ExpenseFFE = exp.FFE
	rec.NOI = rec.GOP - rec.FeeBase - rec.FeeIncentive - rec.ExpenseFFE
}
