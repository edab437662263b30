package projection

import (
	"math"
	"time"

	"hospitality_proforma/pkg/core/assumption"
)

// =============================================================================
// MANAGEMENT COMPANY
// =============================================================================

// CompanyMonthly is one month of the management company. Fee revenue is the
// exact sum of the fee expense booked by the properties in the same month.
type CompanyMonthly struct {
	Month            int       `json:"month" agg:"-"`
	Date             time.Time `json:"date" agg:"-"`
	Operating        bool      `json:"operating" agg:"-"`
	ActiveProperties int       `json:"active_properties" agg:"-"`

	// Revenue
	BaseFeeRevenue      float64            `json:"base_fee_revenue"`
	IncentiveFeeRevenue float64            `json:"incentive_fee_revenue"`
	TotalRevenue        float64            `json:"total_revenue"`
	FeesByProperty      map[string]float64 `json:"fees_by_property,omitempty"`
	FeesByCategory      map[string]float64 `json:"fees_by_category,omitempty"`

	// Overhead
	PartnerCompensation  float64 `json:"partner_compensation"`
	StaffCompensation    float64 `json:"staff_compensation"`
	OfficeLease          float64 `json:"office_lease"`
	ProfessionalServices float64 `json:"professional_services"`
	TechInfrastructure   float64 `json:"tech_infrastructure"`
	BusinessInsurance    float64 `json:"business_insurance"`
	TravelCosts          float64 `json:"travel_costs"`
	ITLicensing          float64 `json:"it_licensing"`
	Marketing            float64 `json:"marketing"`
	MiscOps              float64 `json:"misc_ops"`
	TotalExpenses        float64 `json:"total_expenses"`

	NetIncome   float64 `json:"net_income"`
	SafeFunding float64 `json:"safe_funding"` // financing inflow, not revenue
	CashFlow    float64 `json:"cash_flow"`
	OpeningCash float64 `json:"opening_cash" agg:"first"`
	EndingCash  float64 `json:"ending_cash" agg:"last"`
}

// CashShortfall reports a negative month-end cash balance
func (c *CompanyMonthly) CashShortfall() bool {
	return c.EndingCash < 0
}

// ProjectCompany builds the management company's pro forma from the property
// projections. Overhead starts once both the company operations start and the
// first SAFE tranche have been reached.
func (e *Engine) ProjectCompany(props []*PropertyProjection) []CompanyMonthly {
	g := e.global
	out := make([]CompanyMonthly, 0, g.Months)
	firstSafe := g.FirstSafeMonth()
	var cash float64

	for m := 0; m < g.Months; m++ {
		c := CompanyMonthly{
			Month:          m,
			Date:           assumption.MonthDate(g.ModelStart, m),
			FeesByProperty: make(map[string]float64),
			FeesByCategory: make(map[string]float64),
		}

		// 1. Revenue mirrored from the properties
		for _, pp := range props {
			if m >= len(pp.Months) {
				continue
			}
			rec := &pp.Months[m]
			c.BaseFeeRevenue += rec.FeeBase
			c.IncentiveFeeRevenue += rec.FeeIncentive
			if rec.ManagementFees() != 0 {
				c.FeesByProperty[pp.Property.ID] += rec.ManagementFees()
			}
			for name, amount := range rec.FeesByCategory {
				c.FeesByCategory[name] += amount
			}
			if rec.Operating {
				c.ActiveProperties++
			}
		}
		c.TotalRevenue = c.BaseFeeRevenue + c.IncentiveFeeRevenue

		// 2. Overhead, gated on operations start and funding
		c.Operating = m >= g.CompanyOpsStartMonth && m >= firstSafe
		if c.Operating {
			e.applyOverhead(&c, m)
		}
		c.NetIncome = c.TotalRevenue - c.TotalExpenses

		// 3. SAFE inflows and cash
		for _, t := range g.SafeTranches {
			if t.Month == m {
				c.SafeFunding += t.Amount
			}
		}
		c.CashFlow = c.NetIncome + c.SafeFunding
		c.OpeningCash = cash
		cash += c.CashFlow
		c.EndingCash = cash

		out = append(out, c)
	}
	return out
}

func (e *Engine) applyOverhead(c *CompanyMonthly, m int) {
	g := e.global
	o := g.Company

	// Escalation counts from company operations start, partner comp follows the model year
	opsYear := 0
	if since := m - g.CompanyOpsStartMonth; since > 0 {
		opsYear = since / 12
	}
	fixed := math.Pow(1+g.FixedCostEscalationRate, float64(opsYear))
	variable := math.Pow(1+g.InflationRate, float64(opsYear))
	active := float64(c.ActiveProperties)

	c.PartnerCompensation = o.PartnerComp(m/12) / 12
	c.StaffCompensation = o.StaffFTE(c.ActiveProperties) * o.StaffSalary * fixed / 12
	c.OfficeLease = o.OfficeLease * fixed / 12
	c.ProfessionalServices = o.ProfessionalServices * fixed / 12
	c.TechInfrastructure = o.TechInfrastructure * fixed / 12
	c.BusinessInsurance = o.BusinessInsurance * fixed / 12
	c.TravelCosts = active * o.TravelPerClient * variable / 12
	c.ITLicensing = active * o.ITLicensePerClient * variable / 12
	c.Marketing = c.TotalRevenue * o.MarketingRate
	c.MiscOps = c.TotalRevenue * o.MiscOpsRate

	c.TotalExpenses = c.PartnerCompensation + c.StaffCompensation + c.OfficeLease + c.ProfessionalServices +
		c.TechInfrastructure + c.BusinessInsurance + c.TravelCosts + c.ITLicensing + c.Marketing + c.MiscOps
}
