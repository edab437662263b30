package calc

import "math"

// =============================================================================
// BREAK-EVEN OCCUPANCY
// =============================================================================

// Break-even sensitivities
const (
	ADRShock       = 0.10
	FixedCostShock = 0.10
)

// BreakEven is the occupancy at which one year covers its costs, holding the
// year's ADR, revenue mix and cost structure. Variable lines, management fees
// and the FF&E reserve are treated as rates of revenue; the remaining
// undistributed lines are fixed.
type BreakEven struct {
	Year       int  `json:"year"`
	FiscalYear int  `json:"fiscal_year"`
	Defined    bool `json:"defined"` // false without sold room-nights

	Occupancy          float64 `json:"occupancy"`
	RevenueAtFull      float64 `json:"revenue_at_full"` // revenue at 100% occupancy
	ContributionMargin float64 `json:"contribution_margin"`
	FixedCosts         float64 `json:"fixed_costs"`

	OperatingOccupancy float64 `json:"operating_occupancy"` // NOI = 0
	CashFlowOccupancy  float64 `json:"cash_flow_occupancy"` // NOI covers debt service and income tax
	OperatingRevPAR    float64 `json:"operating_revpar"`
	CashFlowRevPAR     float64 `json:"cash_flow_revpar"`

	OccupancyCushion float64 `json:"occupancy_cushion"` // actual minus cash-flow break-even
	RevenueCushion   float64 `json:"revenue_cushion"`   // share of revenue that can be lost before cash break-even

	ADRDown      float64 `json:"adr_down"`       // cash-flow break-even with ADR lowered by ADRShock
	FixedCostsUp float64 `json:"fixed_costs_up"` // cash-flow break-even with fixed costs raised by FixedCostShock
}

// CalculateBreakEven solves NOI(o) = 0 and NOI(o) = debt service + tax for
// occupancy o. A year whose contribution margin is not positive can never
// break even and reports 100%.
func CalculateBreakEven(y YearlyFinancials) BreakEven {
	be := BreakEven{Year: y.Year, FiscalYear: y.FiscalYear, Occupancy: y.Occupancy}
	rev := y.RevenueTotal
	if y.SoldRoomNights <= 0 || y.Occupancy <= 0 || rev <= 0 {
		return be
	}
	be.Defined = true

	variable := y.ExpenseRooms + y.ExpenseFB + y.ExpenseEvents + y.ExpenseOther +
		y.ExpenseMarketing + y.ExpenseUtilitiesVariable +
		y.FeeBase + y.FeeIncentive + y.ExpenseFFE
	be.FixedCosts = y.ExpenseAdmin + y.ExpensePropertyOps + y.ExpenseIT + y.ExpenseUtilitiesFixed +
		y.ExpenseOtherCosts + y.ExpenseInsurance + y.ExpensePropertyTaxes
	be.RevenueAtFull = rev / y.Occupancy
	be.ContributionMargin = 1 - variable/rev

	below := y.DebtService + y.IncomeTax
	be.OperatingOccupancy = solveOccupancy(be.RevenueAtFull, be.ContributionMargin, be.FixedCosts)
	be.CashFlowOccupancy = solveOccupancy(be.RevenueAtFull, be.ContributionMargin, be.FixedCosts+below)
	be.OperatingRevPAR = y.ADR * be.OperatingOccupancy
	be.CashFlowRevPAR = y.ADR * be.CashFlowOccupancy

	be.OccupancyCushion = y.Occupancy - be.CashFlowOccupancy
	be.RevenueCushion = 1 - be.CashFlowOccupancy/y.Occupancy

	be.ADRDown = solveOccupancy(be.RevenueAtFull*(1-ADRShock), be.ContributionMargin, be.FixedCosts+below)
	be.FixedCostsUp = solveOccupancy(be.RevenueAtFull, be.ContributionMargin, be.FixedCosts*(1+FixedCostShock)+below)
	return be
}

// BreakEvenSeries maps CalculateBreakEven over a yearly series
func BreakEvenSeries(years []YearlyFinancials) []BreakEven {
	out := make([]BreakEven, len(years))
	for i, y := range years {
		out[i] = CalculateBreakEven(y)
	}
	return out
}

func solveOccupancy(revenueAtFull, margin, fixed float64) float64 {
	denom := revenueAtFull * margin
	if margin <= 0 || denom <= 0 {
		return 1
	}
	return math.Min(math.Max(fixed/denom, 0), 1)
}
