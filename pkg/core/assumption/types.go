// Package assumption holds the input records of a pro forma scenario and the
// three-tier resolver that turns them into fully populated values.
// Precedence for every optional field: property value, then global value,
// then the injected DefaultAssumptions.
package assumption

// =============================================================================
// FINANCING
// =============================================================================

// FinancingType is the capital structure of a property SPV
type FinancingType string

const (
	FullEquity FinancingType = "full_equity"
	Financed   FinancingType = "financed"
)

// =============================================================================
// COST RATES (USALI departmental table)
// =============================================================================

// CostRates are optional rate overrides, each a share of its revenue base.
// Nil means "not provided" and falls through to the next tier.
type CostRates struct {
	Rooms       *float64 `json:"rooms,omitempty" yaml:"rooms,omitempty" validate:"omitnil,gte=0,lte=1"`
	FB          *float64 `json:"fb,omitempty" yaml:"fb,omitempty" validate:"omitnil,gte=0,lte=1"`
	Admin       *float64 `json:"admin,omitempty" yaml:"admin,omitempty" validate:"omitnil,gte=0,lte=1"`
	Marketing   *float64 `json:"marketing,omitempty" yaml:"marketing,omitempty" validate:"omitnil,gte=0,lte=1"`
	PropertyOps *float64 `json:"property_ops,omitempty" yaml:"property_ops,omitempty" validate:"omitnil,gte=0,lte=1"`
	Utilities   *float64 `json:"utilities,omitempty" yaml:"utilities,omitempty" validate:"omitnil,gte=0,lte=1"`
	Insurance   *float64 `json:"insurance,omitempty" yaml:"insurance,omitempty" validate:"omitnil,gte=0,lte=1"`
	Taxes       *float64 `json:"taxes,omitempty" yaml:"taxes,omitempty" validate:"omitnil,gte=0,lte=1"`
	IT          *float64 `json:"it,omitempty" yaml:"it,omitempty" validate:"omitnil,gte=0,lte=1"`
	FFE         *float64 `json:"ffe,omitempty" yaml:"ffe,omitempty" validate:"omitnil,gte=0,lte=1"`
	Other       *float64 `json:"other,omitempty" yaml:"other,omitempty" validate:"omitnil,gte=0,lte=1"`
}

// Rates is the resolved cost-rate table
type Rates struct {
	Rooms       float64 `json:"rooms"`
	FB          float64 `json:"fb"`
	Admin       float64 `json:"admin"`
	Marketing   float64 `json:"marketing"`
	PropertyOps float64 `json:"property_ops"`
	Utilities   float64 `json:"utilities"`
	Insurance   float64 `json:"insurance"`
	Taxes       float64 `json:"taxes"`
	IT          float64 `json:"it"`
	FFE         float64 `json:"ffe"`
	Other       float64 `json:"other"`
}

// FeeCategory is one service-fee line charged by the management company
type FeeCategory struct {
	Name   string  `json:"name" yaml:"name" validate:"required"`
	Rate   float64 `json:"rate" yaml:"rate" validate:"gte=0,lte=1"` // share of total revenue
	Active bool    `json:"active" yaml:"active"`
}

// =============================================================================
// GLOBAL ASSUMPTIONS
// =============================================================================

// DebtTerms are portfolio-wide loan defaults
type DebtTerms struct {
	AcquisitionLTV                *float64 `json:"acquisition_ltv,omitempty" yaml:"acquisition_ltv,omitempty" validate:"omitnil,gte=0,lte=1"`
	InterestRate                  *float64 `json:"interest_rate,omitempty" yaml:"interest_rate,omitempty" validate:"omitnil,gte=0,lte=1"`
	TermYears                     *int     `json:"term_years,omitempty" yaml:"term_years,omitempty" validate:"omitnil,gt=0,lte=50"`
	AcquisitionClosingCostRate    *float64 `json:"acquisition_closing_cost_rate,omitempty" yaml:"acquisition_closing_cost_rate,omitempty" validate:"omitnil,gte=0,lte=1"`
	RefinanceLTV                  *float64 `json:"refinance_ltv,omitempty" yaml:"refinance_ltv,omitempty" validate:"omitnil,gte=0,lte=1"`
	RefinanceInterestRate         *float64 `json:"refinance_interest_rate,omitempty" yaml:"refinance_interest_rate,omitempty" validate:"omitnil,gte=0,lte=1"`
	RefinanceTermYears            *int     `json:"refinance_term_years,omitempty" yaml:"refinance_term_years,omitempty" validate:"omitnil,gt=0,lte=50"`
	RefinanceClosingCostRate      *float64 `json:"refinance_closing_cost_rate,omitempty" yaml:"refinance_closing_cost_rate,omitempty" validate:"omitnil,gte=0,lte=1"`
	RefinanceYearsAfterOperations *int     `json:"refinance_years_after_operations,omitempty" yaml:"refinance_years_after_operations,omitempty" validate:"omitnil,gte=0,lte=50"`
}

// SafeTranche is one SAFE funding inflow to the management company
type SafeTranche struct {
	Date   string   `json:"date" yaml:"date" validate:"required,isodate"`
	Amount *float64 `json:"amount,omitempty" yaml:"amount,omitempty" validate:"omitnil,gte=0"`
}

// StaffingTier maps portfolio size to management-company headcount
type StaffingTier struct {
	MaxProperties int     `json:"max_properties" yaml:"max_properties" validate:"gte=0"` // 0 = unbounded
	FTE           float64 `json:"fte" yaml:"fte" validate:"gte=0"`
}

// CompanyAssumptions are management-company overhead inputs (annual amounts)
type CompanyAssumptions struct {
	PartnerCompByYear    []float64      `json:"partner_comp_by_year,omitempty" yaml:"partner_comp_by_year,omitempty" validate:"dive,gte=0"`
	StaffSalary          *float64       `json:"staff_salary,omitempty" yaml:"staff_salary,omitempty" validate:"omitnil,gte=0"`
	StaffingTiers        []StaffingTier `json:"staffing_tiers,omitempty" yaml:"staffing_tiers,omitempty" validate:"dive"`
	OfficeLease          *float64       `json:"office_lease,omitempty" yaml:"office_lease,omitempty" validate:"omitnil,gte=0"`
	ProfessionalServices *float64       `json:"professional_services,omitempty" yaml:"professional_services,omitempty" validate:"omitnil,gte=0"`
	TechInfrastructure   *float64       `json:"tech_infrastructure,omitempty" yaml:"tech_infrastructure,omitempty" validate:"omitnil,gte=0"`
	BusinessInsurance    *float64       `json:"business_insurance,omitempty" yaml:"business_insurance,omitempty" validate:"omitnil,gte=0"`
	TravelPerClient      *float64       `json:"travel_per_client,omitempty" yaml:"travel_per_client,omitempty" validate:"omitnil,gte=0"`
	ITLicensePerClient   *float64       `json:"it_license_per_client,omitempty" yaml:"it_license_per_client,omitempty" validate:"omitnil,gte=0"`
	MarketingRate        *float64       `json:"marketing_rate,omitempty" yaml:"marketing_rate,omitempty" validate:"omitnil,gte=0,lte=1"`
	MiscOpsRate          *float64       `json:"misc_ops_rate,omitempty" yaml:"misc_ops_rate,omitempty" validate:"omitnil,gte=0,lte=1"`
}

// PromoteTier is one LP/GP split above a return hurdle
type PromoteTier struct {
	Label     string  `json:"label" yaml:"label" validate:"required"`
	HurdleIRR float64 `json:"hurdle_irr" yaml:"hurdle_irr" validate:"gte=0,lte=1"`
	LPSplit   float64 `json:"lp_split" yaml:"lp_split" validate:"gte=0,lte=1"`
	GPSplit   float64 `json:"gp_split" yaml:"gp_split" validate:"gte=0,lte=1"`
}

// InvestmentAssumptions drive the investor analyses: discounting, the LP/GP
// distribution and the hold-versus-sell comparison
type InvestmentAssumptions struct {
	DiscountRate              *float64      `json:"discount_rate,omitempty" yaml:"discount_rate,omitempty" validate:"omitnil,gte=0,lte=1"`
	PreferredReturn           *float64      `json:"preferred_return,omitempty" yaml:"preferred_return,omitempty" validate:"omitnil,gte=0,lte=1"`
	GPEquityShare             *float64      `json:"gp_equity_share,omitempty" yaml:"gp_equity_share,omitempty" validate:"omitnil,gte=0,lte=1"`
	CatchUpRate               *float64      `json:"catch_up_rate,omitempty" yaml:"catch_up_rate,omitempty" validate:"omitnil,gte=0,lte=1"`
	CatchUpToGPShare          *float64      `json:"catch_up_to_gp_share,omitempty" yaml:"catch_up_to_gp_share,omitempty" validate:"omitnil,gte=0,lt=1"`
	PromoteTiers              []PromoteTier `json:"promote_tiers,omitempty" yaml:"promote_tiers,omitempty" validate:"dive"`
	CapitalGainsRate          *float64      `json:"capital_gains_rate,omitempty" yaml:"capital_gains_rate,omitempty" validate:"omitnil,gte=0,lte=1"`
	DepreciationRecaptureRate *float64      `json:"depreciation_recapture_rate,omitempty" yaml:"depreciation_recapture_rate,omitempty" validate:"omitnil,gte=0,lte=1"`
}

// GlobalAssumptions are loaded once per scenario and never mutated by a run
type GlobalAssumptions struct {
	ModelStartDate       string `json:"model_start_date" yaml:"model_start_date" validate:"required,isodate"`
	ProjectionYears      int    `json:"projection_years" yaml:"projection_years" validate:"gte=1,lte=50"`
	FiscalYearStartMonth int    `json:"fiscal_year_start_month,omitempty" yaml:"fiscal_year_start_month,omitempty" validate:"omitempty,gte=1,lte=12"`
	CompanyOpsStartDate  string `json:"company_ops_start_date,omitempty" yaml:"company_ops_start_date,omitempty" validate:"omitempty,isodate"`

	InflationRate           float64  `json:"inflation_rate" yaml:"inflation_rate" validate:"gte=0,lte=1"`
	FixedCostEscalationRate *float64 `json:"fixed_cost_escalation_rate,omitempty" yaml:"fixed_cost_escalation_rate,omitempty" validate:"omitnil,gte=0,lte=1"`

	BaseManagementFeeRate      *float64 `json:"base_management_fee_rate,omitempty" yaml:"base_management_fee_rate,omitempty" validate:"omitnil,gte=0,lte=1"`
	IncentiveManagementFeeRate *float64 `json:"incentive_management_fee_rate,omitempty" yaml:"incentive_management_fee_rate,omitempty" validate:"omitnil,gte=0,lte=1"`

	SafeTranches []SafeTranche `json:"safe_tranches,omitempty" yaml:"safe_tranches,omitempty" validate:"dive"`
	Debt         DebtTerms     `json:"debt" yaml:"debt"`

	ExitCapRate         *float64 `json:"exit_cap_rate,omitempty" yaml:"exit_cap_rate,omitempty" validate:"omitnil,gt=0,lte=1"`
	SalesCommissionRate *float64 `json:"sales_commission_rate,omitempty" yaml:"sales_commission_rate,omitempty" validate:"omitnil,gte=0,lte=1"`
	TaxRate             *float64 `json:"tax_rate,omitempty" yaml:"tax_rate,omitempty" validate:"omitnil,gte=0,lte=1"`

	EventExpenseRate       *float64  `json:"event_expense_rate,omitempty" yaml:"event_expense_rate,omitempty" validate:"omitnil,gte=0,lte=1"`
	OtherExpenseRate       *float64  `json:"other_expense_rate,omitempty" yaml:"other_expense_rate,omitempty" validate:"omitnil,gte=0,lte=1"`
	UtilitiesVariableSplit *float64  `json:"utilities_variable_split,omitempty" yaml:"utilities_variable_split,omitempty" validate:"omitnil,gte=0,lte=1"`
	CostRates              CostRates `json:"cost_rates" yaml:"cost_rates"`

	Company    CompanyAssumptions    `json:"company" yaml:"company"`
	Investment InvestmentAssumptions `json:"investment" yaml:"investment"`
}

// =============================================================================
// PROPERTY ASSUMPTIONS
// =============================================================================

// PropertyAssumptions is the per-SPV input record
type PropertyAssumptions struct {
	// Identity
	ID        string `json:"id" yaml:"id" validate:"required"`
	Name      string `json:"name" yaml:"name" validate:"required"`
	Market    string `json:"market,omitempty" yaml:"market,omitempty"`
	RoomCount int    `json:"room_count" yaml:"room_count" validate:"gt=0"`

	// Timing
	AcquisitionDate     string `json:"acquisition_date,omitempty" yaml:"acquisition_date,omitempty" validate:"omitempty,isodate"`
	OperationsStartDate string `json:"operations_start_date" yaml:"operations_start_date" validate:"required,isodate"`

	// Capital structure
	PurchasePrice              float64       `json:"purchase_price" yaml:"purchase_price" validate:"gt=0"`
	BuildingImprovements       float64       `json:"building_improvements,omitempty" yaml:"building_improvements,omitempty" validate:"gte=0"`
	PreOpeningCosts            float64       `json:"pre_opening_costs,omitempty" yaml:"pre_opening_costs,omitempty" validate:"gte=0"`
	OperatingReserve           float64       `json:"operating_reserve,omitempty" yaml:"operating_reserve,omitempty" validate:"gte=0"`
	LandValuePercent           *float64      `json:"land_value_percent,omitempty" yaml:"land_value_percent,omitempty" validate:"omitnil,gte=0,lte=1"`
	Financing                  FinancingType `json:"financing" yaml:"financing" validate:"required,oneof=full_equity financed"`
	AcquisitionLTV             *float64      `json:"acquisition_ltv,omitempty" yaml:"acquisition_ltv,omitempty" validate:"omitnil,gte=0,lte=1"`
	AcquisitionInterestRate    *float64      `json:"acquisition_interest_rate,omitempty" yaml:"acquisition_interest_rate,omitempty" validate:"omitnil,gte=0,lte=1"`
	AcquisitionTermYears       *int          `json:"acquisition_term_years,omitempty" yaml:"acquisition_term_years,omitempty" validate:"omitnil,gt=0,lte=50"`
	AcquisitionClosingCostRate *float64      `json:"acquisition_closing_cost_rate,omitempty" yaml:"acquisition_closing_cost_rate,omitempty" validate:"omitnil,gte=0,lte=1"`

	// Revenue drivers
	StartADR            float64  `json:"start_adr" yaml:"start_adr" validate:"gt=0"`
	ADRGrowthRate       float64  `json:"adr_growth_rate" yaml:"adr_growth_rate" validate:"gte=0,lte=1"`
	StartOccupancy      float64  `json:"start_occupancy" yaml:"start_occupancy" validate:"gte=0,lte=1"`
	MaxOccupancy        float64  `json:"max_occupancy" yaml:"max_occupancy" validate:"gte=0,lte=1"`
	OccupancyGrowthStep float64  `json:"occupancy_growth_step" yaml:"occupancy_growth_step" validate:"gte=0,lte=1"`
	OccupancyRampMonths *int     `json:"occupancy_ramp_months,omitempty" yaml:"occupancy_ramp_months,omitempty" validate:"omitnil,gt=0"`
	RevShareEvents      *float64 `json:"rev_share_events,omitempty" yaml:"rev_share_events,omitempty" validate:"omitnil,gte=0,lte=1"`
	RevShareFB          *float64 `json:"rev_share_fb,omitempty" yaml:"rev_share_fb,omitempty" validate:"omitnil,gte=0,lte=1"`
	RevShareOther       *float64 `json:"rev_share_other,omitempty" yaml:"rev_share_other,omitempty" validate:"omitnil,gte=0,lte=1"`
	CateringBoostPct    *float64 `json:"catering_boost_pct,omitempty" yaml:"catering_boost_pct,omitempty" validate:"omitnil,gte=0,lte=1"`

	// Expense overrides
	CostRates              CostRates `json:"cost_rates" yaml:"cost_rates"`
	EventExpenseRate       *float64  `json:"event_expense_rate,omitempty" yaml:"event_expense_rate,omitempty" validate:"omitnil,gte=0,lte=1"`
	OtherExpenseRate       *float64  `json:"other_expense_rate,omitempty" yaml:"other_expense_rate,omitempty" validate:"omitnil,gte=0,lte=1"`
	UtilitiesVariableSplit *float64  `json:"utilities_variable_split,omitempty" yaml:"utilities_variable_split,omitempty" validate:"omitnil,gte=0,lte=1"`

	// Management fees
	BaseManagementFeeRate      *float64      `json:"base_management_fee_rate,omitempty" yaml:"base_management_fee_rate,omitempty" validate:"omitnil,gte=0,lte=1"`
	IncentiveManagementFeeRate *float64      `json:"incentive_management_fee_rate,omitempty" yaml:"incentive_management_fee_rate,omitempty" validate:"omitnil,gte=0,lte=1"`
	FeeCategories              []FeeCategory `json:"fee_categories,omitempty" yaml:"fee_categories,omitempty" validate:"dive"`

	// Refinance (optional)
	WillRefinance                 bool     `json:"will_refinance,omitempty" yaml:"will_refinance,omitempty"`
	RefinanceDate                 string   `json:"refinance_date,omitempty" yaml:"refinance_date,omitempty" validate:"omitempty,isodate"`
	RefinanceYearsAfterOperations *int     `json:"refinance_years_after_operations,omitempty" yaml:"refinance_years_after_operations,omitempty" validate:"omitnil,gte=0,lte=50"`
	RefinanceLTV                  *float64 `json:"refinance_ltv,omitempty" yaml:"refinance_ltv,omitempty" validate:"omitnil,gte=0,lte=1"`
	RefinanceInterestRate         *float64 `json:"refinance_interest_rate,omitempty" yaml:"refinance_interest_rate,omitempty" validate:"omitnil,gte=0,lte=1"`
	RefinanceTermYears            *int     `json:"refinance_term_years,omitempty" yaml:"refinance_term_years,omitempty" validate:"omitnil,gt=0,lte=50"`
	RefinanceClosingCostRate      *float64 `json:"refinance_closing_cost_rate,omitempty" yaml:"refinance_closing_cost_rate,omitempty" validate:"omitnil,gte=0,lte=1"`
	RefinanceCapRate              *float64 `json:"refinance_cap_rate,omitempty" yaml:"refinance_cap_rate,omitempty" validate:"omitnil,gt=0,lte=1"`
	RefinanceDSCRMin              *float64 `json:"refinance_dscr_min,omitempty" yaml:"refinance_dscr_min,omitempty" validate:"omitnil,gt=0"` // multiplier

	// Exit and tax
	ExitCapRate         *float64 `json:"exit_cap_rate,omitempty" yaml:"exit_cap_rate,omitempty" validate:"omitnil,gt=0,lte=1"`
	SalesCommissionRate *float64 `json:"sales_commission_rate,omitempty" yaml:"sales_commission_rate,omitempty" validate:"omitnil,gte=0,lte=1"`
	TaxRate             *float64 `json:"tax_rate,omitempty" yaml:"tax_rate,omitempty" validate:"omitnil,gte=0,lte=1"`
}

// Float and Int build optional values for literals and tests
func Float(v float64) *float64 { return &v }
func Int(v int) *int           { return &v }
