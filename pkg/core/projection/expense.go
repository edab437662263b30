package projection

import (
	"math"

	"hospitality_proforma/pkg/core/assumption"
)

// Expenses is one operating month of cost lines
type Expenses struct {
	Rooms             float64
	FB                float64
	Events            float64
	Other             float64
	Marketing         float64
	UtilitiesVariable float64
	Admin             float64
	PropertyOps       float64
	IT                float64
	UtilitiesFixed    float64
	OtherCosts        float64
	Insurance         float64
	PropertyTaxes     float64
	FFE               float64 // reserve, below GOP
}

// Operating is the total of every line above GOP
func (e Expenses) Operating() float64 {
	return e.Rooms + e.FB + e.Events + e.Other + e.Marketing + e.UtilitiesVariable +
		e.Admin + e.PropertyOps + e.IT + e.UtilitiesFixed + e.OtherCosts + e.Insurance + e.PropertyTaxes
}

// ProjectExpenses applies the cost mapping:
//
//	variable lines  current revenue stream × rate, no escalation
//	fixed lines     stabilized revenue (or property value / 12) × rate × (1+esc)^years
//	FF&E reserve    total revenue × rate
//
// k is months since operations start; nothing is charged before operations.
func ProjectExpenses(p *assumption.ResolvedProperty, rev Revenue, k int) Expenses {
	if k < 0 {
		return Expenses{}
	}
	c := p.CostRates
	split := p.UtilitiesVariableSplit
	escalation := math.Pow(1+p.FixedCostEscalationRate, float64(k/12))
	base := stabilizedRevenue(p)
	propertyValue := (p.PurchasePrice + p.BuildingImprovements) / 12

	return Expenses{
		Rooms:             rev.Rooms * c.Rooms,
		FB:                rev.FB * c.FB,
		Events:            rev.Events * p.EventExpenseRate,
		Other:             rev.Other * p.OtherExpenseRate,
		Marketing:         rev.Total * c.Marketing,
		UtilitiesVariable: rev.Total * c.Utilities * split,

		Admin:          base * c.Admin * escalation,
		PropertyOps:    base * c.PropertyOps * escalation,
		IT:             base * c.IT * escalation,
		UtilitiesFixed: base * c.Utilities * (1 - split) * escalation,
		OtherCosts:     base * c.Other * escalation,
		Insurance:      propertyValue * c.Insurance * escalation,
		PropertyTaxes:  propertyValue * c.Taxes * escalation,

		FFE: rev.Total * c.FFE,
	}
}
