package validate

import (
	"math"

	"hospitality_proforma/pkg/core/projection"
)

// =============================================================================
// CROSS-ENTITY LINKAGE
// =============================================================================

// FeeLinkage compares fee expense booked by the properties with fee revenue
// booked by the management company for one month.
type FeeLinkage struct {
	Month            int     `json:"month"`
	PropertyExpense  float64 `json:"property_expense"`
	CompanyRevenue   float64 `json:"company_revenue"`
	Difference       float64 `json:"difference"`
	IsLinked         bool    `json:"is_linked"`
	Tolerance        float64 `json:"tolerance"`
	ByPropertyLinked bool    `json:"by_property_linked"`
}

// LinkFees builds the month-by-month fee linkage between the properties and
// the company.
func LinkFees(props []*projection.PropertyProjection, company []projection.CompanyMonthly, tolerance float64) []FeeLinkage {
	out := make([]FeeLinkage, 0, len(company))
	for _, c := range company {
		l := FeeLinkage{
			Month:            c.Month,
			CompanyRevenue:   c.BaseFeeRevenue + c.IncentiveFeeRevenue,
			Tolerance:        tolerance,
			ByPropertyLinked: true,
		}
		for _, pp := range props {
			if c.Month < 0 || c.Month >= len(pp.Months) {
				continue
			}
			fee := pp.Months[c.Month].ManagementFees()
			l.PropertyExpense += fee
			if math.Abs(c.FeesByProperty[pp.Property.ID]-fee) > tolerance {
				l.ByPropertyLinked = false
			}
		}
		l.Difference = l.CompanyRevenue - l.PropertyExpense
		l.IsLinked = math.Abs(l.Difference) <= tolerance && l.ByPropertyLinked
		out = append(out, l)
	}
	return out
}

// CheckCompany runs the fee dual-entry and company cash rules
func CheckCompany(props []*projection.PropertyProjection, company []projection.CompanyMonthly) []Finding {
	c := newCollector("")
	for _, l := range LinkFees(props, company, DollarTolerance) {
		if !l.IsLinked {
			c.add(FeeDualEntry, l.Month, l.Difference,
				"company fee revenue %.2f differs from property fee expense %.2f", l.CompanyRevenue, l.PropertyExpense)
		}
	}
	for i := range company {
		m := &company[i]
		if m.CashShortfall() {
			c.add(CompanyNegativeCash, m.Month, m.EndingCash,
				"company cash balance %.2f in %s", m.EndingCash, m.Date.Format("2006-01"))
		}
	}
	return c.findings()
}

// ByKind groups findings for reporting
func ByKind(findings []Finding) map[Kind][]Finding {
	out := make(map[Kind][]Finding)
	for _, f := range findings {
		out[f.Kind] = append(out[f.Kind], f)
	}
	return out
}
