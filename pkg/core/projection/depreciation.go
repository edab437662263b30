package projection

import (
	"math"

	"hospitality_proforma/pkg/core/assumption"
)

// DepreciationYears is the residential rental recovery period
const DepreciationYears = 27.5

// Depreciation is the straight-line schedule of the building basis
type Depreciation struct {
	Basis      float64 `json:"basis"`
	Monthly    float64 `json:"monthly"`
	StartMonth int     `json:"start_month"`
}

// NewDepreciation starts in the first full month owned: the acquisition month
// when acquired on the 1st, otherwise the month after.
func NewDepreciation(p *assumption.ResolvedProperty) Depreciation {
	basis := p.PurchasePrice*(1-p.LandValuePercent) + p.BuildingImprovements
	start := p.AcquisitionMonth
	if !p.AcquisitionOnFirst {
		start++
	}
	return Depreciation{
		Basis:      basis,
		Monthly:    basis / DepreciationYears / 12,
		StartMonth: start,
	}
}

// Charge is the depreciation of month m. Accumulated never exceeds the basis.
func (d Depreciation) Charge(m int, accumulated float64) float64 {
	if m < d.StartMonth {
		return 0
	}
	return math.Max(0, math.Min(d.Monthly, d.Basis-accumulated))
}

// IncomeTax taxes NOI less interest and depreciation; losses are not carried
// forward.
func IncomeTax(noi, interest, depreciation, rate float64) (taxable, tax float64) {
	taxable = noi - interest - depreciation
	return taxable, math.Max(0, taxable) * rate
}
