package assumption

import (
	"sort"
	"time"
)

// =============================================================================
// RESOLVED VIEWS (what the engine consumes)
// =============================================================================

// ResolvedTranche is a SAFE inflow placed on the model timeline
type ResolvedTranche struct {
	Month  int     `json:"month"`
	Amount float64 `json:"amount"`
}

// CompanyOverhead is the resolved management-company cost base (annual amounts)
type CompanyOverhead struct {
	PartnerCompByYear    []float64      `json:"partner_comp_by_year"`
	StaffSalary          float64        `json:"staff_salary"`
	StaffingTiers        []StaffingTier `json:"staffing_tiers"`
	OfficeLease          float64        `json:"office_lease"`
	ProfessionalServices float64        `json:"professional_services"`
	TechInfrastructure   float64        `json:"tech_infrastructure"`
	BusinessInsurance    float64        `json:"business_insurance"`
	TravelPerClient      float64        `json:"travel_per_client"`
	ITLicensePerClient   float64        `json:"it_license_per_client"`
	MarketingRate        float64        `json:"marketing_rate"`
	MiscOpsRate          float64        `json:"misc_ops_rate"`
}

// StaffFTE returns the headcount for the given number of active properties
func (c CompanyOverhead) StaffFTE(activeProperties int) float64 {
	if len(c.StaffingTiers) == 0 {
		return 0
	}
	for _, t := range c.StaffingTiers {
		if t.MaxProperties == 0 || activeProperties <= t.MaxProperties {
			return t.FTE
		}
	}
	return c.StaffingTiers[len(c.StaffingTiers)-1].FTE
}

// PartnerComp returns annual partner compensation for model year y (0-based).
// Years past the schedule repeat its last entry.
func (c CompanyOverhead) PartnerComp(y int) float64 {
	if len(c.PartnerCompByYear) == 0 {
		return 0
	}
	if y >= len(c.PartnerCompByYear) {
		y = len(c.PartnerCompByYear) - 1
	}
	return c.PartnerCompByYear[y]
}

// InvestmentTerms are the resolved investor-analysis inputs
type InvestmentTerms struct {
	DiscountRate              float64       `json:"discount_rate"`
	PreferredReturn           float64       `json:"preferred_return"`
	GPEquityShare             float64       `json:"gp_equity_share"`
	CatchUpRate               float64       `json:"catch_up_rate"`
	CatchUpToGPShare          float64       `json:"catch_up_to_gp_share"`
	PromoteTiers              []PromoteTier `json:"promote_tiers"`
	CapitalGainsRate          float64       `json:"capital_gains_rate"`
	DepreciationRecaptureRate float64       `json:"depreciation_recapture_rate"`
}

// ResolvedGlobal is GlobalAssumptions with every default applied
type ResolvedGlobal struct {
	ModelStart              time.Time         `json:"model_start"`
	ProjectionYears         int               `json:"projection_years"`
	Months                  int               `json:"months"`
	FiscalYearStartMonth    int               `json:"fiscal_year_start_month"`
	InflationRate           float64           `json:"inflation_rate"`
	FixedCostEscalationRate float64           `json:"fixed_cost_escalation_rate"`
	CompanyOpsStartMonth    int               `json:"company_ops_start_month"`
	SafeTranches            []ResolvedTranche `json:"safe_tranches"`
	Company                 CompanyOverhead   `json:"company"`
	Investment              InvestmentTerms   `json:"investment"`
}

// FirstSafeMonth is the month of the earliest tranche, or the model start
// when no tranche is scheduled
func (g *ResolvedGlobal) FirstSafeMonth() int {
	if len(g.SafeTranches) == 0 {
		return 0
	}
	return g.SafeTranches[0].Month
}

// ResolvedProperty is PropertyAssumptions with every default applied and all
// dates placed on the model's month index
type ResolvedProperty struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Market    string        `json:"market,omitempty"`
	RoomCount int           `json:"room_count"`
	Financing FinancingType `json:"financing"`

	AcquisitionMonth     int  `json:"acquisition_month"`
	AcquisitionOnFirst   bool `json:"acquisition_on_first"` // acquired on the 1st: first full month is the acquisition month
	OperationsStartMonth int  `json:"operations_start_month"`

	PurchasePrice              float64 `json:"purchase_price"`
	BuildingImprovements       float64 `json:"building_improvements"`
	PreOpeningCosts            float64 `json:"pre_opening_costs"`
	OperatingReserve           float64 `json:"operating_reserve"`
	LandValuePercent           float64 `json:"land_value_percent"`
	AcquisitionLTV             float64 `json:"acquisition_ltv"`
	AcquisitionInterestRate    float64 `json:"acquisition_interest_rate"`
	AcquisitionTermYears       int     `json:"acquisition_term_years"`
	AcquisitionClosingCostRate float64 `json:"acquisition_closing_cost_rate"`

	StartADR            float64 `json:"start_adr"`
	ADRGrowthRate       float64 `json:"adr_growth_rate"`
	StartOccupancy      float64 `json:"start_occupancy"`
	MaxOccupancy        float64 `json:"max_occupancy"`
	OccupancyGrowthStep float64 `json:"occupancy_growth_step"`
	OccupancyRampMonths int     `json:"occupancy_ramp_months"`
	RevShareEvents      float64 `json:"rev_share_events"`
	RevShareFB          float64 `json:"rev_share_fb"`
	RevShareOther       float64 `json:"rev_share_other"`
	CateringBoostPct    float64 `json:"catering_boost_pct"`

	CostRates               Rates   `json:"cost_rates"`
	EventExpenseRate        float64 `json:"event_expense_rate"`
	OtherExpenseRate        float64 `json:"other_expense_rate"`
	UtilitiesVariableSplit  float64 `json:"utilities_variable_split"`
	FixedCostEscalationRate float64 `json:"fixed_cost_escalation_rate"`

	BaseManagementFeeRate      float64       `json:"base_management_fee_rate"`
	IncentiveManagementFeeRate float64       `json:"incentive_management_fee_rate"`
	FeeCategories              []FeeCategory `json:"fee_categories,omitempty"` // active only

	WillRefinance            bool    `json:"will_refinance"`
	RefinanceMonth           int     `json:"refinance_month"`
	RefinanceLTV             float64 `json:"refinance_ltv"`
	RefinanceInterestRate    float64 `json:"refinance_interest_rate"`
	RefinanceTermYears       int     `json:"refinance_term_years"`
	RefinanceClosingCostRate float64 `json:"refinance_closing_cost_rate"`
	RefinanceCapRate         float64 `json:"refinance_cap_rate"`
	RefinanceDSCRMin         float64 `json:"refinance_dscr_min,omitempty"` // 0 = LTV sizing only

	ExitCapRate         float64 `json:"exit_cap_rate"`
	SalesCommissionRate float64 `json:"sales_commission_rate"`
	TaxRate             float64 `json:"tax_rate"`
}

// IsFinanced reports whether an acquisition loan is originated
func (p *ResolvedProperty) IsFinanced() bool {
	return p.Financing == Financed && p.AcquisitionLTV > 0
}

// InitialLoan is PurchasePrice × LTV for financed properties
func (p *ResolvedProperty) InitialLoan() float64 {
	if !p.IsFinanced() {
		return 0
	}
	return p.PurchasePrice * p.AcquisitionLTV
}

// AcquisitionClosingCosts are capitalised at acquisition
func (p *ResolvedProperty) AcquisitionClosingCosts() float64 {
	return p.PurchasePrice * p.AcquisitionClosingCostRate
}

// TotalProjectCost is everything funded at acquisition
func (p *ResolvedProperty) TotalProjectCost() float64 {
	return p.PurchasePrice + p.BuildingImprovements + p.AcquisitionClosingCosts() + p.PreOpeningCosts + p.OperatingReserve
}

// InitialEquity is the equity call at acquisition
func (p *ResolvedProperty) InitialEquity() float64 {
	return p.TotalProjectCost() - p.InitialLoan()
}

// =============================================================================
// RESOLUTION
// =============================================================================

// ResolveGlobal validates g and applies the default tier
func (r *Resolver) ResolveGlobal(g *GlobalAssumptions) (*ResolvedGlobal, error) {
	if err := ValidateGlobal(g); err != nil {
		return nil, err
	}
	start, _ := ParseDate(g.ModelStartDate)
	start = MonthStart(start)
	d := r.defaults

	out := &ResolvedGlobal{
		ModelStart:              start,
		ProjectionYears:         g.ProjectionYears,
		Months:                  g.ProjectionYears * 12,
		FiscalYearStartMonth:    g.FiscalYearStartMonth,
		InflationRate:           g.InflationRate,
		FixedCostEscalationRate: Resolve(r, FixedCostEscalationRate, nil, g),
		Company: CompanyOverhead{
			PartnerCompByYear:    g.Company.PartnerCompByYear,
			StaffSalary:          Resolve(r, StaffSalary, nil, g),
			StaffingTiers:        g.Company.StaffingTiers,
			OfficeLease:          Resolve(r, OfficeLease, nil, g),
			ProfessionalServices: Resolve(r, ProfessionalServices, nil, g),
			TechInfrastructure:   Resolve(r, TechInfrastructure, nil, g),
			BusinessInsurance:    Resolve(r, BusinessInsurance, nil, g),
			TravelPerClient:      Resolve(r, TravelPerClient, nil, g),
			ITLicensePerClient:   Resolve(r, ITLicensePerClient, nil, g),
			MarketingRate:        Resolve(r, CompanyMarketingRate, nil, g),
			MiscOpsRate:          Resolve(r, MiscOpsRate, nil, g),
		},
		Investment: InvestmentTerms{
			DiscountRate:              Resolve(r, DiscountRate, nil, g),
			PreferredReturn:           Resolve(r, PreferredReturn, nil, g),
			GPEquityShare:             Resolve(r, GPEquityShare, nil, g),
			CatchUpRate:               Resolve(r, CatchUpRate, nil, g),
			CatchUpToGPShare:          Resolve(r, CatchUpToGPShare, nil, g),
			PromoteTiers:              g.Investment.PromoteTiers,
			CapitalGainsRate:          Resolve(r, CapitalGainsRate, nil, g),
			DepreciationRecaptureRate: Resolve(r, DepreciationRecaptureRate, nil, g),
		},
	}
	if out.FiscalYearStartMonth == 0 {
		out.FiscalYearStartMonth = d.FiscalYearStartMonth
	}
	if len(out.Company.PartnerCompByYear) == 0 {
		out.Company.PartnerCompByYear = append([]float64(nil), d.PartnerCompByYear...)
	}
	if len(out.Company.StaffingTiers) == 0 {
		out.Company.StaffingTiers = append([]StaffingTier(nil), d.StaffingTiers...)
	}
	if len(out.Investment.PromoteTiers) == 0 {
		out.Investment.PromoteTiers = append([]PromoteTier(nil), d.PromoteTiers...)
	}
	if g.CompanyOpsStartDate != "" {
		ops, _ := ParseDate(g.CompanyOpsStartDate)
		out.CompanyOpsStartMonth = MonthIndex(start, ops)
	}
	for _, t := range g.SafeTranches {
		date, _ := ParseDate(t.Date)
		amount := d.SafeTrancheAmount
		if t.Amount != nil {
			amount = *t.Amount
		}
		out.SafeTranches = append(out.SafeTranches, ResolvedTranche{Month: MonthIndex(start, date), Amount: amount})
	}
	sort.SliceStable(out.SafeTranches, func(i, j int) bool {
		return out.SafeTranches[i].Month < out.SafeTranches[j].Month
	})
	return out, nil
}

// ResolveProperty validates p and resolves every field against g and the
// defaults. g must already have passed ResolveGlobal.
func (r *Resolver) ResolveProperty(p *PropertyAssumptions, g *GlobalAssumptions) (*ResolvedProperty, error) {
	if err := ValidateProperty(p); err != nil {
		return nil, err
	}
	start, err := ParseDate(g.ModelStartDate)
	if err != nil {
		return nil, ConfigErrors{{Field: "model_start_date", Value: g.ModelStartDate, Reason: "must be a YYYY-MM-DD date"}}
	}
	start = MonthStart(start)

	ops, _ := ParseDate(p.OperationsStartDate)
	acq := ops
	if p.AcquisitionDate != "" {
		acq, _ = ParseDate(p.AcquisitionDate)
	}

	out := &ResolvedProperty{
		ID:        p.ID,
		Name:      p.Name,
		Market:    p.Market,
		RoomCount: p.RoomCount,
		Financing: p.Financing,

		AcquisitionMonth:     MonthIndex(start, acq),
		AcquisitionOnFirst:   acq.Day() == 1,
		OperationsStartMonth: MonthIndex(start, ops),

		PurchasePrice:              p.PurchasePrice,
		BuildingImprovements:       p.BuildingImprovements,
		PreOpeningCosts:            p.PreOpeningCosts,
		OperatingReserve:           p.OperatingReserve,
		LandValuePercent:           Resolve(r, LandValuePercent, p, g),
		AcquisitionInterestRate:    Resolve(r, AcquisitionInterestRate, p, g),
		AcquisitionTermYears:       Resolve(r, AcquisitionTermYears, p, g),
		AcquisitionClosingCostRate: Resolve(r, AcquisitionClosingCostRate, p, g),

		StartADR:            p.StartADR,
		ADRGrowthRate:       p.ADRGrowthRate,
		StartOccupancy:      p.StartOccupancy,
		MaxOccupancy:        p.MaxOccupancy,
		OccupancyGrowthStep: p.OccupancyGrowthStep,
		OccupancyRampMonths: Resolve(r, OccupancyRampMonths, p, g),
		RevShareEvents:      Resolve(r, RevShareEvents, p, g),
		RevShareFB:          Resolve(r, RevShareFB, p, g),
		RevShareOther:       Resolve(r, RevShareOther, p, g),
		CateringBoostPct:    Resolve(r, CateringBoostPct, p, g),

		CostRates: Rates{
			Rooms:       Resolve(r, CostRooms, p, g),
			FB:          Resolve(r, CostFB, p, g),
			Admin:       Resolve(r, CostAdmin, p, g),
			Marketing:   Resolve(r, CostMarketing, p, g),
			PropertyOps: Resolve(r, CostPropertyOps, p, g),
			Utilities:   Resolve(r, CostUtilities, p, g),
			Insurance:   Resolve(r, CostInsurance, p, g),
			Taxes:       Resolve(r, CostTaxes, p, g),
			IT:          Resolve(r, CostIT, p, g),
			FFE:         Resolve(r, CostFFE, p, g),
			Other:       Resolve(r, CostOther, p, g),
		},
		EventExpenseRate:        Resolve(r, EventExpenseRate, p, g),
		OtherExpenseRate:        Resolve(r, OtherExpenseRate, p, g),
		UtilitiesVariableSplit:  Resolve(r, UtilitiesVariableSplit, p, g),
		FixedCostEscalationRate: Resolve(r, FixedCostEscalationRate, p, g),

		BaseManagementFeeRate:      Resolve(r, BaseManagementFeeRate, p, g),
		IncentiveManagementFeeRate: Resolve(r, IncentiveManagementFeeRate, p, g),

		ExitCapRate:         Resolve(r, ExitCapRate, p, g),
		SalesCommissionRate: Resolve(r, SalesCommissionRate, p, g),
		TaxRate:             Resolve(r, TaxRate, p, g),
	}

	if p.Financing == Financed {
		out.AcquisitionLTV = Resolve(r, AcquisitionLTV, p, g)
	}
	for _, c := range p.FeeCategories {
		if c.Active {
			out.FeeCategories = append(out.FeeCategories, c)
		}
	}

	if p.WillRefinance {
		out.WillRefinance = true
		if p.RefinanceDate != "" {
			d, _ := ParseDate(p.RefinanceDate)
			out.RefinanceMonth = MonthIndex(start, d)
		} else {
			out.RefinanceMonth = out.OperationsStartMonth + 12*Resolve(r, RefinanceYearsAfterOperations, p, g)
		}
		out.RefinanceLTV = Resolve(r, RefinanceLTV, p, g)
		out.RefinanceInterestRate = Resolve(r, RefinanceInterestRate, p, g)
		out.RefinanceTermYears = Resolve(r, RefinanceTermYears, p, g)
		out.RefinanceClosingCostRate = Resolve(r, RefinanceClosingCostRate, p, g)
		// Appraisal cap rate falls back to the property's exit cap rate
		out.RefinanceCapRate = out.ExitCapRate
		if p.RefinanceCapRate != nil {
			out.RefinanceCapRate = *p.RefinanceCapRate
		}
		if p.RefinanceDSCRMin != nil {
			out.RefinanceDSCRMin = *p.RefinanceDSCRMin
		}
	}
	return out, nil
}
