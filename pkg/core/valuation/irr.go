package valuation

import "math"

// Solver constants. Identical inputs always take the same path.
const (
	IRRTolerance           = 1e-7
	IRRMaxIterations       = 100
	IRRBisectionIterations = 200
	IRRLowerBound          = -0.99
	IRRUpperBound          = 10.0
)

// IRRResult reports the solved rate, or why there is none
type IRRResult struct {
	Rate       float64 `json:"rate"`
	Converged  bool    `json:"converged"`
	Method     string  `json:"method,omitempty"` // "newton" or "bisection"
	Iterations int     `json:"iterations"`
	Reason     string  `json:"reason,omitempty"`
}

// Value returns the rate, or nil when the IRR is undefined
func (r IRRResult) Value() *float64 {
	if !r.Converged {
		return nil
	}
	v := r.Rate
	return &v
}

// NPV discounts cfs[t] at rate with t = 0 undiscounted
func NPV(rate float64, cfs []float64) float64 {
	var npv float64
	for t, cf := range cfs {
		npv += cf / math.Pow(1+rate, float64(t))
	}
	return npv
}

// dNPV is the analytic derivative of NPV with respect to rate
func dNPV(rate float64, cfs []float64) float64 {
	var d float64
	for t, cf := range cfs {
		if t == 0 {
			continue
		}
		d -= float64(t) * cf / math.Pow(1+rate, float64(t+1))
	}
	return d
}

// SolveIRR finds r with NPV(r) = 0. Newton-Raphson runs first from a
// ratio-based guess; bisection on [IRRLowerBound, IRRUpperBound] takes over
// when Newton fails. A stream without both signs has no IRR.
func SolveIRR(cfs []float64) IRRResult {
	if len(cfs) < 2 {
		return IRRResult{Reason: "need at least two cash flows"}
	}
	var pos, neg float64
	for _, cf := range cfs {
		if cf > 0 {
			pos += cf
		} else if cf < 0 {
			neg -= cf
		}
	}
	if pos == 0 || neg == 0 {
		return IRRResult{Reason: "cash flows never change sign"}
	}

	// 1. Newton-Raphson
	guess := math.Pow(pos/neg, 1/float64(len(cfs)-1)) - 1
	guess = math.Max(-0.9, math.Min(1, guess))
	if res, ok := newton(cfs, guess); ok {
		return res
	}

	// 2. Bisection fallback
	return bisect(cfs)
}

func newton(cfs []float64, rate float64) (IRRResult, bool) {
	for i := 1; i <= IRRMaxIterations; i++ {
		f := NPV(rate, cfs)
		if math.Abs(f) < IRRTolerance {
			return IRRResult{Rate: rate, Converged: true, Method: "newton", Iterations: i}, true
		}
		df := dNPV(rate, cfs)
		if df == 0 || math.IsNaN(df) || math.IsInf(df, 0) {
			return IRRResult{}, false
		}
		next := rate - f/df
		if math.IsNaN(next) || math.IsInf(next, 0) || next <= -1 {
			return IRRResult{}, false
		}
		if math.Abs(next-rate) < IRRTolerance {
			return IRRResult{Rate: next, Converged: true, Method: "newton", Iterations: i}, true
		}
		rate = next
	}
	return IRRResult{}, false
}

func bisect(cfs []float64) IRRResult {
	lo, hi := IRRLowerBound, IRRUpperBound
	flo, fhi := NPV(lo, cfs), NPV(hi, cfs)
	if flo*fhi > 0 {
		return IRRResult{Iterations: IRRMaxIterations, Reason: "no root in the search interval"}
	}
	for i := 1; i <= IRRBisectionIterations; i++ {
		mid := (lo + hi) / 2
		fmid := NPV(mid, cfs)
		if math.Abs(fmid) < IRRTolerance || (hi-lo)/2 < IRRTolerance {
			return IRRResult{Rate: mid, Converged: true, Method: "bisection", Iterations: IRRMaxIterations + i}
		}
		if flo*fmid < 0 {
			hi = mid
		} else {
			lo, flo = mid, fmid
		}
	}
	return IRRResult{Iterations: IRRMaxIterations + IRRBisectionIterations, Reason: "did not converge"}
}
