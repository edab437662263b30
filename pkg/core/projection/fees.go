package projection

import (
	"math"

	"hospitality_proforma/pkg/core/assumption"
)

// DefaultFeeCategory labels the base fee when a property lists no categories
const DefaultFeeCategory = "Service Fee"

// Fees are the management fees a property owes for one month
type Fees struct {
	Base       float64
	Incentive  float64
	ByCategory map[string]float64
}

// ComputeFees charges the base fee on total revenue (per active category when
// the property lists any) and the incentive fee on positive GOP only.
func ComputeFees(p *assumption.ResolvedProperty, revenueTotal, gop float64) Fees {
	f := Fees{ByCategory: make(map[string]float64)}
	if len(p.FeeCategories) > 0 {
		for _, c := range p.FeeCategories {
			amount := revenueTotal * c.Rate
			f.ByCategory[c.Name] += amount
			f.Base += amount
		}
	} else {
		f.Base = revenueTotal * p.BaseManagementFeeRate
		f.ByCategory[DefaultFeeCategory] = f.Base
	}
	f.Incentive = math.Max(0, gop) * p.IncentiveManagementFeeRate
	return f
}
