package assumption

// =============================================================================
// THREE-TIER RESOLUTION
// =============================================================================

// Tier identifies which layer supplied a resolved value
type Tier int

const (
	TierDefault Tier = iota
	TierGlobal
	TierProperty
)

func (t Tier) String() string {
	switch t {
	case TierProperty:
		return "property"
	case TierGlobal:
		return "global"
	default:
		return "default"
	}
}

// Field describes one resolvable parameter. Property or Global may be nil
// when that tier has no counterpart; Default is always required.
type Field[T any] struct {
	Name     string
	Property func(*PropertyAssumptions) *T
	Global   func(*GlobalAssumptions) *T
	Default  func(DefaultAssumptions) T
}

// Resolver applies the property → global → default chain using an injected
// DefaultAssumptions value.
type Resolver struct {
	defaults DefaultAssumptions
}

// NewResolver creates a resolver over the given defaults
func NewResolver(defaults DefaultAssumptions) *Resolver {
	return &Resolver{defaults: defaults}
}

// Defaults returns the resolver's default tier
func (r *Resolver) Defaults() DefaultAssumptions {
	return r.defaults
}

// Lookup resolves f and reports the tier that supplied the value
func Lookup[T any](r *Resolver, f Field[T], p *PropertyAssumptions, g *GlobalAssumptions) (T, Tier) {
	if p != nil && f.Property != nil {
		if v := f.Property(p); v != nil {
			return *v, TierProperty
		}
	}
	if g != nil && f.Global != nil {
		if v := f.Global(g); v != nil {
			return *v, TierGlobal
		}
	}
	return f.Default(r.defaults), TierDefault
}

// Resolve is Lookup without the tier
func Resolve[T any](r *Resolver, f Field[T], p *PropertyAssumptions, g *GlobalAssumptions) T {
	v, _ := Lookup(r, f, p, g)
	return v
}

// =============================================================================
// FIELD REGISTRY
// =============================================================================

var (
	AcquisitionLTV = Field[float64]{
		Name:     "acquisition_ltv",
		Property: func(p *PropertyAssumptions) *float64 { return p.AcquisitionLTV },
		Global:   func(g *GlobalAssumptions) *float64 { return g.Debt.AcquisitionLTV },
		Default:  func(d DefaultAssumptions) float64 { return d.AcquisitionLTV },
	}
	AcquisitionInterestRate = Field[float64]{
		Name:     "acquisition_interest_rate",
		Property: func(p *PropertyAssumptions) *float64 { return p.AcquisitionInterestRate },
		Global:   func(g *GlobalAssumptions) *float64 { return g.Debt.InterestRate },
		Default:  func(d DefaultAssumptions) float64 { return d.InterestRate },
	}
	AcquisitionTermYears = Field[int]{
		Name:     "acquisition_term_years",
		Property: func(p *PropertyAssumptions) *int { return p.AcquisitionTermYears },
		Global:   func(g *GlobalAssumptions) *int { return g.Debt.TermYears },
		Default:  func(d DefaultAssumptions) int { return d.TermYears },
	}
	AcquisitionClosingCostRate = Field[float64]{
		Name:     "acquisition_closing_cost_rate",
		Property: func(p *PropertyAssumptions) *float64 { return p.AcquisitionClosingCostRate },
		Global:   func(g *GlobalAssumptions) *float64 { return g.Debt.AcquisitionClosingCostRate },
		Default:  func(d DefaultAssumptions) float64 { return d.AcquisitionClosingCostRate },
	}
	LandValuePercent = Field[float64]{
		Name:     "land_value_percent",
		Property: func(p *PropertyAssumptions) *float64 { return p.LandValuePercent },
		Default:  func(d DefaultAssumptions) float64 { return d.LandValuePercent },
	}
	TaxRate = Field[float64]{
		Name:     "tax_rate",
		Property: func(p *PropertyAssumptions) *float64 { return p.TaxRate },
		Global:   func(g *GlobalAssumptions) *float64 { return g.TaxRate },
		Default:  func(d DefaultAssumptions) float64 { return d.TaxRate },
	}
	ExitCapRate = Field[float64]{
		Name:     "exit_cap_rate",
		Property: func(p *PropertyAssumptions) *float64 { return p.ExitCapRate },
		Global:   func(g *GlobalAssumptions) *float64 { return g.ExitCapRate },
		Default:  func(d DefaultAssumptions) float64 { return d.ExitCapRate },
	}
	SalesCommissionRate = Field[float64]{
		Name:     "sales_commission_rate",
		Property: func(p *PropertyAssumptions) *float64 { return p.SalesCommissionRate },
		Global:   func(g *GlobalAssumptions) *float64 { return g.SalesCommissionRate },
		Default:  func(d DefaultAssumptions) float64 { return d.SalesCommissionRate },
	}
	OccupancyRampMonths = Field[int]{
		Name:     "occupancy_ramp_months",
		Property: func(p *PropertyAssumptions) *int { return p.OccupancyRampMonths },
		Default:  func(d DefaultAssumptions) int { return d.OccupancyRampMonths },
	}
	RevShareEvents = Field[float64]{
		Name:     "rev_share_events",
		Property: func(p *PropertyAssumptions) *float64 { return p.RevShareEvents },
		Default:  func(d DefaultAssumptions) float64 { return d.RevShareEvents },
	}
	RevShareFB = Field[float64]{
		Name:     "rev_share_fb",
		Property: func(p *PropertyAssumptions) *float64 { return p.RevShareFB },
		Default:  func(d DefaultAssumptions) float64 { return d.RevShareFB },
	}
	RevShareOther = Field[float64]{
		Name:     "rev_share_other",
		Property: func(p *PropertyAssumptions) *float64 { return p.RevShareOther },
		Default:  func(d DefaultAssumptions) float64 { return d.RevShareOther },
	}
	CateringBoostPct = Field[float64]{
		Name:     "catering_boost_pct",
		Property: func(p *PropertyAssumptions) *float64 { return p.CateringBoostPct },
		Default:  func(d DefaultAssumptions) float64 { return d.CateringBoostPct },
	}
	EventExpenseRate = Field[float64]{
		Name:     "event_expense_rate",
		Property: func(p *PropertyAssumptions) *float64 { return p.EventExpenseRate },
		Global:   func(g *GlobalAssumptions) *float64 { return g.EventExpenseRate },
		Default:  func(d DefaultAssumptions) float64 { return d.EventExpenseRate },
	}
	OtherExpenseRate = Field[float64]{
		Name:     "other_expense_rate",
		Property: func(p *PropertyAssumptions) *float64 { return p.OtherExpenseRate },
		Global:   func(g *GlobalAssumptions) *float64 { return g.OtherExpenseRate },
		Default:  func(d DefaultAssumptions) float64 { return d.OtherExpenseRate },
	}
	UtilitiesVariableSplit = Field[float64]{
		Name:     "utilities_variable_split",
		Property: func(p *PropertyAssumptions) *float64 { return p.UtilitiesVariableSplit },
		Global:   func(g *GlobalAssumptions) *float64 { return g.UtilitiesVariableSplit },
		Default:  func(d DefaultAssumptions) float64 { return d.UtilitiesVariableSplit },
	}
	BaseManagementFeeRate = Field[float64]{
		Name:     "base_management_fee_rate",
		Property: func(p *PropertyAssumptions) *float64 { return p.BaseManagementFeeRate },
		Global:   func(g *GlobalAssumptions) *float64 { return g.BaseManagementFeeRate },
		Default:  func(d DefaultAssumptions) float64 { return d.BaseManagementFeeRate },
	}
	IncentiveManagementFeeRate = Field[float64]{
		Name:     "incentive_management_fee_rate",
		Property: func(p *PropertyAssumptions) *float64 { return p.IncentiveManagementFeeRate },
		Global:   func(g *GlobalAssumptions) *float64 { return g.IncentiveManagementFeeRate },
		Default:  func(d DefaultAssumptions) float64 { return d.IncentiveManagementFeeRate },
	}
	FixedCostEscalationRate = Field[float64]{
		Name:    "fixed_cost_escalation_rate",
		Global:  func(g *GlobalAssumptions) *float64 { return g.FixedCostEscalationRate },
		Default: func(d DefaultAssumptions) float64 { return d.FixedCostEscalationRate },
	}
	RefinanceLTV = Field[float64]{
		Name:     "refinance_ltv",
		Property: func(p *PropertyAssumptions) *float64 { return p.RefinanceLTV },
		Global:   func(g *GlobalAssumptions) *float64 { return g.Debt.RefinanceLTV },
		Default:  func(d DefaultAssumptions) float64 { return d.RefinanceLTV },
	}
	RefinanceInterestRate = Field[float64]{
		Name:     "refinance_interest_rate",
		Property: func(p *PropertyAssumptions) *float64 { return p.RefinanceInterestRate },
		Global:   func(g *GlobalAssumptions) *float64 { return g.Debt.RefinanceInterestRate },
		Default:  func(d DefaultAssumptions) float64 { return d.InterestRate },
	}
	RefinanceTermYears = Field[int]{
		Name:     "refinance_term_years",
		Property: func(p *PropertyAssumptions) *int { return p.RefinanceTermYears },
		Global:   func(g *GlobalAssumptions) *int { return g.Debt.RefinanceTermYears },
		Default:  func(d DefaultAssumptions) int { return d.TermYears },
	}
	RefinanceClosingCostRate = Field[float64]{
		Name:     "refinance_closing_cost_rate",
		Property: func(p *PropertyAssumptions) *float64 { return p.RefinanceClosingCostRate },
		Global:   func(g *GlobalAssumptions) *float64 { return g.Debt.RefinanceClosingCostRate },
		Default:  func(d DefaultAssumptions) float64 { return d.RefinanceClosingCostRate },
	}
	RefinanceYearsAfterOperations = Field[int]{
		Name:     "refinance_years_after_operations",
		Property: func(p *PropertyAssumptions) *int { return p.RefinanceYearsAfterOperations },
		Global:   func(g *GlobalAssumptions) *int { return g.Debt.RefinanceYearsAfterOperations },
		Default:  func(d DefaultAssumptions) int { return d.RefinanceYears },
	}
)

// Cost-rate fields share one shape: property table, global table, default table
func costRateField(name string, pick func(*CostRates) *float64, def func(Rates) float64) Field[float64] {
	return Field[float64]{
		Name:     "cost_rates." + name,
		Property: func(p *PropertyAssumptions) *float64 { return pick(&p.CostRates) },
		Global:   func(g *GlobalAssumptions) *float64 { return pick(&g.CostRates) },
		Default:  func(d DefaultAssumptions) float64 { return def(d.CostRates) },
	}
}

var (
	CostRooms       = costRateField("rooms", func(c *CostRates) *float64 { return c.Rooms }, func(r Rates) float64 { return r.Rooms })
	CostFB          = costRateField("fb", func(c *CostRates) *float64 { return c.FB }, func(r Rates) float64 { return r.FB })
	CostAdmin       = costRateField("admin", func(c *CostRates) *float64 { return c.Admin }, func(r Rates) float64 { return r.Admin })
	CostMarketing   = costRateField("marketing", func(c *CostRates) *float64 { return c.Marketing }, func(r Rates) float64 { return r.Marketing })
	CostPropertyOps = costRateField("property_ops", func(c *CostRates) *float64 { return c.PropertyOps }, func(r Rates) float64 { return r.PropertyOps })
	CostUtilities   = costRateField("utilities", func(c *CostRates) *float64 { return c.Utilities }, func(r Rates) float64 { return r.Utilities })
	CostInsurance   = costRateField("insurance", func(c *CostRates) *float64 { return c.Insurance }, func(r Rates) float64 { return r.Insurance })
	CostTaxes       = costRateField("taxes", func(c *CostRates) *float64 { return c.Taxes }, func(r Rates) float64 { return r.Taxes })
	CostIT          = costRateField("it", func(c *CostRates) *float64 { return c.IT }, func(r Rates) float64 { return r.IT })
	CostFFE         = costRateField("ffe", func(c *CostRates) *float64 { return c.FFE }, func(r Rates) float64 { return r.FFE })
	CostOther       = costRateField("other", func(c *CostRates) *float64 { return c.Other }, func(r Rates) float64 { return r.Other })
)

// Company overhead has no property tier
func companyField(name string, pick func(*CompanyAssumptions) *float64, def func(DefaultAssumptions) float64) Field[float64] {
	return Field[float64]{
		Name:    "company." + name,
		Global:  func(g *GlobalAssumptions) *float64 { return pick(&g.Company) },
		Default: def,
	}
}

var (
	StaffSalary          = companyField("staff_salary", func(c *CompanyAssumptions) *float64 { return c.StaffSalary }, func(d DefaultAssumptions) float64 { return d.StaffSalary })
	OfficeLease          = companyField("office_lease", func(c *CompanyAssumptions) *float64 { return c.OfficeLease }, func(d DefaultAssumptions) float64 { return d.OfficeLease })
	ProfessionalServices = companyField("professional_services", func(c *CompanyAssumptions) *float64 { return c.ProfessionalServices }, func(d DefaultAssumptions) float64 { return d.ProfessionalServices })
	TechInfrastructure   = companyField("tech_infrastructure", func(c *CompanyAssumptions) *float64 { return c.TechInfrastructure }, func(d DefaultAssumptions) float64 { return d.TechInfrastructure })
	BusinessInsurance    = companyField("business_insurance", func(c *CompanyAssumptions) *float64 { return c.BusinessInsurance }, func(d DefaultAssumptions) float64 { return d.BusinessInsurance })
	TravelPerClient      = companyField("travel_per_client", func(c *CompanyAssumptions) *float64 { return c.TravelPerClient }, func(d DefaultAssumptions) float64 { return d.TravelPerClient })
	ITLicensePerClient   = companyField("it_license_per_client", func(c *CompanyAssumptions) *float64 { return c.ITLicensePerClient }, func(d DefaultAssumptions) float64 { return d.ITLicensePerClient })
	CompanyMarketingRate = companyField("marketing_rate", func(c *CompanyAssumptions) *float64 { return c.MarketingRate }, func(d DefaultAssumptions) float64 { return d.MarketingRate })
	MiscOpsRate          = companyField("misc_ops_rate", func(c *CompanyAssumptions) *float64 { return c.MiscOpsRate }, func(d DefaultAssumptions) float64 { return d.MiscOpsRate })
)

// Investor-analysis inputs are portfolio-wide
func investmentField(name string, pick func(*InvestmentAssumptions) *float64, def func(DefaultAssumptions) float64) Field[float64] {
	return Field[float64]{
		Name:    "investment." + name,
		Global:  func(g *GlobalAssumptions) *float64 { return pick(&g.Investment) },
		Default: def,
	}
}

var (
	DiscountRate              = investmentField("discount_rate", func(i *InvestmentAssumptions) *float64 { return i.DiscountRate }, func(d DefaultAssumptions) float64 { return d.DiscountRate })
	PreferredReturn           = investmentField("preferred_return", func(i *InvestmentAssumptions) *float64 { return i.PreferredReturn }, func(d DefaultAssumptions) float64 { return d.PreferredReturn })
	GPEquityShare             = investmentField("gp_equity_share", func(i *InvestmentAssumptions) *float64 { return i.GPEquityShare }, func(d DefaultAssumptions) float64 { return d.GPEquityShare })
	CatchUpRate               = investmentField("catch_up_rate", func(i *InvestmentAssumptions) *float64 { return i.CatchUpRate }, func(d DefaultAssumptions) float64 { return d.CatchUpRate })
	CatchUpToGPShare          = investmentField("catch_up_to_gp_share", func(i *InvestmentAssumptions) *float64 { return i.CatchUpToGPShare }, func(d DefaultAssumptions) float64 { return d.CatchUpToGPShare })
	CapitalGainsRate          = investmentField("capital_gains_rate", func(i *InvestmentAssumptions) *float64 { return i.CapitalGainsRate }, func(d DefaultAssumptions) float64 { return d.CapitalGainsRate })
	DepreciationRecaptureRate = investmentField("depreciation_recapture_rate", func(i *InvestmentAssumptions) *float64 { return i.DepreciationRecaptureRate }, func(d DefaultAssumptions) float64 { return d.DepreciationRecaptureRate })
)
