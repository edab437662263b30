package valuation

import "math"

// DiscountedCashFlow is a cash-flow vector valued at a fixed rate
type DiscountedCashFlow struct {
	Rate          float64   `json:"rate"`
	NPV           float64   `json:"npv"`
	PresentValues []float64 `json:"present_values"`
	Undiscounted  float64   `json:"undiscounted"`
	IRRConsistent *bool     `json:"irr_consistent,omitempty"` // nil without an IRR
}

// Discount values cfs at rate with t = 0 undiscounted. Given an IRR it also
// confirms that NPV at that rate is zero within NPVTolerance.
func Discount(cfs []float64, rate float64, irr *float64) DiscountedCashFlow {
	d := DiscountedCashFlow{Rate: rate, PresentValues: make([]float64, len(cfs))}
	var gross float64
	for t, cf := range cfs {
		pv := cf / math.Pow(1+rate, float64(t))
		d.PresentValues[t] = pv
		d.NPV += pv
		d.Undiscounted += cf
		gross += math.Abs(cf)
	}
	if irr != nil {
		ok := math.Abs(NPV(*irr, cfs)) <= NPVTolerance(gross)
		d.IRRConsistent = &ok
	}
	return d
}

// NPVTolerance is a dollar, or a millionth of the gross flows when larger
func NPVTolerance(gross float64) float64 {
	return math.Max(1, gross*1e-6)
}
