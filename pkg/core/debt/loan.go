// Package debt amortizes property loans and sizes refinancings.
//
// A property has at most one active LoanState. A refinance retires the old
// loan and originates a new one; schedules are never blended.
package debt

import "math"

// PMT is the level monthly payment on principal at annualRate over termMonths.
// Zero-rate loans amortize straight-line.
func PMT(principal, annualRate float64, termMonths int) float64 {
	if principal <= 0 || termMonths <= 0 {
		return 0
	}
	r := annualRate / 12
	if r == 0 {
		return principal / float64(termMonths)
	}
	f := math.Pow(1+r, float64(termMonths))
	return principal * r * f / (f - 1)
}

// PresentValue is the principal a level monthly payment supports (inverse of PMT)
func PresentValue(payment, annualRate float64, termMonths int) float64 {
	if payment <= 0 || termMonths <= 0 {
		return 0
	}
	r := annualRate / 12
	if r == 0 {
		return payment * float64(termMonths)
	}
	return payment * (1 - math.Pow(1+r, -float64(termMonths))) / r
}

// LoanState is the active loan of a property
type LoanState struct {
	Principal        float64 `json:"principal"`
	AnnualRate       float64 `json:"annual_rate"`
	TermMonths       int     `json:"term_months"`
	OriginationMonth int     `json:"origination_month"` // first payment falls in this month
	Payment          float64 `json:"payment"`
}

// NewLoan originates a fully amortizing loan
func NewLoan(principal, annualRate float64, termYears, originationMonth int) LoanState {
	n := termYears * 12
	return LoanState{
		Principal:        principal,
		AnnualRate:       annualRate,
		TermMonths:       n,
		OriginationMonth: originationMonth,
		Payment:          PMT(principal, annualRate, n),
	}
}

// Active reports whether the loan has a payment due in month m
func (l LoanState) Active(m int) bool {
	k := m - l.OriginationMonth
	return l.Principal > 0 && k >= 0 && k < l.TermMonths
}

// Installment is one month of debt service
type Installment struct {
	Month          int     `json:"month"`
	OpeningBalance float64 `json:"opening_balance"`
	Interest       float64 `json:"interest"`
	Principal      float64 `json:"principal"`
	Payment        float64 `json:"payment"`
	EndingBalance  float64 `json:"ending_balance"`
}

// Step splits the payment due in month m given the balance owed at the start
// of that month. Outside the loan's life, or once repaid, everything is zero.
func (l LoanState) Step(m int, opening float64) Installment {
	inst := Installment{Month: m, OpeningBalance: opening, EndingBalance: opening}
	if !l.Active(m) || opening <= 0 {
		return inst
	}

	inst.Interest = opening * l.AnnualRate / 12
	inst.Principal = l.Payment - inst.Interest
	// Final installment retires whatever rounding left behind
	if m-l.OriginationMonth == l.TermMonths-1 || inst.Principal > opening {
		inst.Principal = opening
	}
	if inst.Principal < 0 {
		inst.Principal = 0
	}
	inst.Payment = inst.Interest + inst.Principal
	inst.EndingBalance = opening - inst.Principal
	return inst
}

// Schedule is the full amortization table of the loan
func (l LoanState) Schedule() []Installment {
	out := make([]Installment, 0, l.TermMonths)
	balance := l.Principal
	for k := 0; k < l.TermMonths; k++ {
		inst := l.Step(l.OriginationMonth+k, balance)
		out = append(out, inst)
		balance = inst.EndingBalance
	}
	return out
}

// BalanceAfter is the outstanding balance after the installment of month m
func (l LoanState) BalanceAfter(m int) float64 {
	balance := l.Principal
	if m < l.OriginationMonth {
		return balance
	}
	last := m
	if end := l.OriginationMonth + l.TermMonths - 1; last > end {
		last = end
	}
	for k := l.OriginationMonth; k <= last; k++ {
		balance = l.Step(k, balance).EndingBalance
	}
	return balance
}
