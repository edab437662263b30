package assumption

// DefaultAssumptions is the last tier of the resolver. It is passed by value
// into NewResolver so resolution never reads package state.
type DefaultAssumptions struct {
	// Financing
	AcquisitionLTV             float64
	InterestRate               float64
	TermYears                  int
	AcquisitionClosingCostRate float64
	RefinanceLTV               float64
	RefinanceClosingCostRate   float64
	RefinanceYears             int // years after operations start

	// Property economics
	LandValuePercent       float64
	TaxRate                float64
	ExitCapRate            float64
	SalesCommissionRate    float64
	OccupancyRampMonths    int
	RevShareEvents         float64
	RevShareFB             float64
	RevShareOther          float64
	CateringBoostPct       float64
	EventExpenseRate       float64
	OtherExpenseRate       float64
	UtilitiesVariableSplit float64
	CostRates              Rates

	// Fees and escalation
	BaseManagementFeeRate      float64
	IncentiveManagementFeeRate float64
	FixedCostEscalationRate    float64

	// Management company
	PartnerCompByYear    []float64
	StaffSalary          float64
	StaffingTiers        []StaffingTier
	OfficeLease          float64
	ProfessionalServices float64
	TechInfrastructure   float64
	BusinessInsurance    float64
	TravelPerClient      float64
	ITLicensePerClient   float64
	MarketingRate        float64
	MiscOpsRate          float64
	SafeTrancheAmount    float64

	// Investor analyses
	DiscountRate              float64
	PreferredReturn           float64
	GPEquityShare             float64
	CatchUpRate               float64 // 0 = no catch-up
	CatchUpToGPShare          float64
	PromoteTiers              []PromoteTier
	CapitalGainsRate          float64
	DepreciationRecaptureRate float64

	FiscalYearStartMonth int
}

// Defaults returns the standard hospitality defaults
func Defaults() DefaultAssumptions {
	return DefaultAssumptions{
		AcquisitionLTV:             0.75,
		InterestRate:               0.09,
		TermYears:                  25,
		AcquisitionClosingCostRate: 0.02,
		RefinanceLTV:               0.65,
		RefinanceClosingCostRate:   0.03,
		RefinanceYears:             3,

		LandValuePercent:       0.25,
		TaxRate:                0.25,
		ExitCapRate:            0.085,
		SalesCommissionRate:    0.05,
		OccupancyRampMonths:    6,
		RevShareEvents:         0.30,
		RevShareFB:             0.18,
		RevShareOther:          0.05,
		CateringBoostPct:       0.22,
		EventExpenseRate:       0.65,
		OtherExpenseRate:       0.60,
		UtilitiesVariableSplit: 0.60,
		CostRates: Rates{
			Rooms:       0.20,
			FB:          0.09,
			Admin:       0.08,
			Marketing:   0.01,
			PropertyOps: 0.04,
			Utilities:   0.05,
			Insurance:   0.02,
			Taxes:       0.03,
			IT:          0.005,
			FFE:         0.04,
			Other:       0.05,
		},

		BaseManagementFeeRate:      0.085,
		IncentiveManagementFeeRate: 0.12,
		FixedCostEscalationRate:    0.03,

		PartnerCompByYear: []float64{540000, 540000, 540000, 600000, 600000, 700000, 700000, 800000, 800000, 900000},
		StaffSalary:       75000,
		StaffingTiers: []StaffingTier{
			{MaxProperties: 3, FTE: 2.5},
			{MaxProperties: 6, FTE: 4.5},
			{MaxProperties: 0, FTE: 7.0},
		},
		OfficeLease:          36000,
		ProfessionalServices: 24000,
		TechInfrastructure:   18000,
		BusinessInsurance:    12000,
		TravelPerClient:      12000,
		ITLicensePerClient:   3000,
		MarketingRate:        0.05,
		MiscOpsRate:          0.03,
		SafeTrancheAmount:    800000,

		DiscountRate:     0.10,
		PreferredReturn:  0.08,
		GPEquityShare:    0.10,
		CatchUpToGPShare: 0.20,
		PromoteTiers: []PromoteTier{
			{Label: "Tier 1", HurdleIRR: 0.08, LPSplit: 0.80, GPSplit: 0.20},
			{Label: "Tier 2", HurdleIRR: 0.12, LPSplit: 0.70, GPSplit: 0.30},
			{Label: "Tier 3", HurdleIRR: 0.18, LPSplit: 0.60, GPSplit: 0.40},
		},
		CapitalGainsRate:          0.20,
		DepreciationRecaptureRate: 0.25,

		FiscalYearStartMonth: 1,
	}
}
