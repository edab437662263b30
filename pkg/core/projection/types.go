package projection

import "time"

// Aggregation tags read by calc:
//   (none)       additive flow, summed
//   agg:"last"   stock, taken from the last month of the period
//   agg:"first"  opening stock, taken from the first month
//   agg:"-"      not aggregated (derived again after aggregation)

// MonthlyFinancials is one property-month. Records are immutable once the
// engine returns them.
type MonthlyFinancials struct {
	Month     int       `json:"month" agg:"-"`
	Date      time.Time `json:"date" agg:"-"`
	Acquired  bool      `json:"acquired" agg:"-"`
	Operating bool      `json:"operating" agg:"-"`

	// Revenue
	AvailableRoomNights float64 `json:"available_room_nights"`
	SoldRoomNights      float64 `json:"sold_room_nights"`
	Occupancy           float64 `json:"occupancy" agg:"-"`
	ADR                 float64 `json:"adr" agg:"-"`
	RevenueRooms        float64 `json:"revenue_rooms"`
	RevenueFB           float64 `json:"revenue_fb"`
	RevenueEvents       float64 `json:"revenue_events"`
	RevenueOther        float64 `json:"revenue_other"`
	RevenueTotal        float64 `json:"revenue_total"`

	// Operating expenses (USALI departments and undistributed)
	ExpenseRooms             float64 `json:"expense_rooms"`
	ExpenseFB                float64 `json:"expense_fb"`
	ExpenseEvents            float64 `json:"expense_events"`
	ExpenseOther             float64 `json:"expense_other"`
	ExpenseMarketing         float64 `json:"expense_marketing"`
	ExpenseUtilitiesVariable float64 `json:"expense_utilities_variable"`
	ExpenseAdmin             float64 `json:"expense_admin"`
	ExpensePropertyOps       float64 `json:"expense_property_ops"`
	ExpenseIT                float64 `json:"expense_it"`
	ExpenseUtilitiesFixed    float64 `json:"expense_utilities_fixed"`
	ExpenseOtherCosts        float64 `json:"expense_other_costs"`
	ExpenseInsurance         float64 `json:"expense_insurance"`
	ExpensePropertyTaxes     float64 `json:"expense_property_taxes"`
	TotalOperatingExpenses   float64 `json:"total_operating_expenses"`
	GOP                      float64 `json:"gop"`

	// Below GOP
	FeeBase        float64            `json:"fee_base"`
	FeeIncentive   float64            `json:"fee_incentive"`
	FeesByCategory map[string]float64 `json:"fees_by_category,omitempty"`
	ExpenseFFE     float64            `json:"expense_ffe"`
	NOI            float64            `json:"noi"`

	// Debt
	Interest              float64 `json:"interest"`
	Principal             float64 `json:"principal"`
	DebtService           float64 `json:"debt_service"`
	DebtOutstanding       float64 `json:"debt_outstanding" agg:"last"`
	Refinanced            bool    `json:"refinanced" agg:"-"`
	RefinancingProceeds   float64 `json:"refinancing_proceeds"`
	RefinanceClosingCosts float64 `json:"refinance_closing_costs"`
	DebtRetired           float64 `json:"debt_retired"`

	// Depreciation, tax, net income
	Depreciation            float64 `json:"depreciation"`
	AccumulatedDepreciation float64 `json:"accumulated_depreciation" agg:"last"`
	TaxableIncome           float64 `json:"taxable_income"`
	IncomeTax               float64 `json:"income_tax"`
	NetIncome               float64 `json:"net_income"`

	// Cash flow
	OperatingCashFlow  float64 `json:"operating_cash_flow"`
	FinancingCashFlow  float64 `json:"financing_cash_flow"`
	NetCashFlow        float64 `json:"net_cash_flow"`
	ReserveFunding     float64 `json:"reserve_funding"`
	EquityContribution float64 `json:"equity_contribution"`
	OpeningCash        float64 `json:"opening_cash" agg:"first"`
	EndingCash         float64 `json:"ending_cash" agg:"last"`

	// Balance sheet
	Land             float64 `json:"land" agg:"last"`
	BuildingBasis    float64 `json:"building_basis" agg:"last"`
	DeferredCosts    float64 `json:"deferred_costs" agg:"last"`
	TotalAssets      float64 `json:"total_assets" agg:"last"`
	TotalLiabilities float64 `json:"total_liabilities" agg:"last"`
	PaidInCapital    float64 `json:"paid_in_capital" agg:"last"`
	RetainedEarnings float64 `json:"retained_earnings" agg:"last"`
	TotalEquity      float64 `json:"total_equity" agg:"last"`
}

// ManagementFees is the fee expense of the month
func (m *MonthlyFinancials) ManagementFees() float64 {
	return m.FeeBase + m.FeeIncentive
}

// Derive recomputes the ratio fields from the additive ones. Safe on zero
// room-nights.
func (m *MonthlyFinancials) Derive() {
	m.Occupancy = 0
	m.ADR = 0
	if m.AvailableRoomNights > 0 {
		m.Occupancy = m.SoldRoomNights / m.AvailableRoomNights
	}
	if m.SoldRoomNights > 0 {
		m.ADR = m.RevenueRooms / m.SoldRoomNights
	}
}

// RevPAR is room revenue per available room-night
func (m *MonthlyFinancials) RevPAR() float64 {
	if m.AvailableRoomNights <= 0 {
		return 0
	}
	return m.RevenueRooms / m.AvailableRoomNights
}
