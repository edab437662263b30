// Package validate checks projected statements against the accounting
// identities and business rules the engine must uphold. Violations are
// reported as findings next to the output; they never abort a run.
package validate

import (
	"fmt"
	"math"

	"hospitality_proforma/pkg/core/projection"
	"hospitality_proforma/pkg/core/valuation"
)

// DollarTolerance is the rounding slack allowed on identity checks
const DollarTolerance = 1.0

// Kind classifies a finding
type Kind string

const (
	NegativeCash               Kind = "negative_cash"
	OperatingBeforeAcquisition Kind = "operating_before_acquisition"
	DebtAtExit                 Kind = "debt_at_exit"
	BalanceSheetIdentity       Kind = "balance_sheet_identity"
	CashReconciliation         Kind = "cash_reconciliation"
	FeeDualEntry               Kind = "fee_dual_entry"
	RefinanceShortfall         Kind = "refinance_shortfall"
	CompanyNegativeCash        Kind = "company_negative_cash"
	AcquiredAfterHorizon       Kind = "acquired_after_horizon"
)

// Finding is one business-rule violation. Repeated violations of the same
// kind on the same entity are collapsed into the first offending month.
type Finding struct {
	Kind       Kind    `json:"kind"`
	PropertyID string  `json:"property_id,omitempty"` // empty for company and portfolio findings
	Month      int     `json:"month"`
	Amount     float64 `json:"amount"`
	Count      int     `json:"count"` // months affected
	Message    string  `json:"message"`
}

func (f Finding) String() string {
	who := f.PropertyID
	if who == "" {
		who = "company"
	}
	if f.Count > 1 {
		return fmt.Sprintf("[%s] %s: %s (month %d, %d months)", f.Kind, who, f.Message, f.Month, f.Count)
	}
	return fmt.Sprintf("[%s] %s: %s (month %d)", f.Kind, who, f.Message, f.Month)
}

// collector collapses per-month hits into one finding per kind
type collector struct {
	propertyID string
	order      []Kind
	byKind     map[Kind]*Finding
}

func newCollector(propertyID string) *collector {
	return &collector{propertyID: propertyID, byKind: make(map[Kind]*Finding)}
}

func (c *collector) add(kind Kind, month int, amount float64, format string, args ...any) {
	if f, ok := c.byKind[kind]; ok {
		f.Count++
		return
	}
	c.byKind[kind] = &Finding{
		Kind:       kind,
		PropertyID: c.propertyID,
		Month:      month,
		Amount:     amount,
		Count:      1,
		Message:    fmt.Sprintf(format, args...),
	}
	c.order = append(c.order, kind)
}

func (c *collector) findings() []Finding {
	out := make([]Finding, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, *c.byKind[k])
	}
	return out
}

// =============================================================================
// ACCOUNTING IDENTITIES
// =============================================================================

// BalanceCheck verifies Assets = Liabilities + Equity.
type BalanceCheck struct {
	TotalAssets      float64
	TotalLiabilities float64
	TotalEquity      float64
	ComputedAssets   float64 // L + E
	Difference       float64
	IsBalanced       bool
	Tolerance        float64
}

// CheckBalanceEquation validates A = L + E within tolerance.
func CheckBalanceEquation(assets, liabilities, equity, tolerance float64) *BalanceCheck {
	computed := liabilities + equity
	diff := assets - computed

	return &BalanceCheck{
		TotalAssets:      assets,
		TotalLiabilities: liabilities,
		TotalEquity:      equity,
		ComputedAssets:   computed,
		Difference:       diff,
		IsBalanced:       math.Abs(diff) <= tolerance,
		Tolerance:        tolerance,
	}
}

// CashCheck verifies Ending cash = Opening cash + Reserve funding + Net cash flow.
type CashCheck struct {
	OpeningCash    float64
	ReserveFunding float64
	NetCashFlow    float64
	ComputedEnding float64
	ReportedEnding float64
	Difference     float64
	IsBalanced     bool
	Tolerance      float64
}

// CheckCashReconciliation validates the month's cash roll-forward.
func CheckCashReconciliation(opening, reserve, net, reportedEnding, tolerance float64) *CashCheck {
	computed := opening + reserve + net
	diff := reportedEnding - computed

	return &CashCheck{
		OpeningCash:    opening,
		ReserveFunding: reserve,
		NetCashFlow:    net,
		ComputedEnding: computed,
		ReportedEnding: reportedEnding,
		Difference:     diff,
		IsBalanced:     math.Abs(diff) <= tolerance,
		Tolerance:      tolerance,
	}
}

// =============================================================================
// PROPERTY RULES
// =============================================================================

// CheckProperty runs every per-property rule over the projected months and
// the exit valuation.
func CheckProperty(pp *projection.PropertyProjection, exit valuation.ExitValuation) []Finding {
	c := newCollector(pp.Property.ID)
	if !pp.AcquiredInHorizon() {
		c.add(AcquiredAfterHorizon, pp.Property.AcquisitionMonth, pp.Property.InitialEquity(),
			"acquired in model month %d, after the %d-month horizon; excluded from portfolio returns",
			pp.Property.AcquisitionMonth, len(pp.Months))
		return c.findings()
	}
	prevEnding := 0.0

	for i := range pp.Months {
		rec := &pp.Months[i]

		if rec.Operating && !rec.Acquired {
			c.add(OperatingBeforeAcquisition, rec.Month, rec.RevenueTotal,
				"operating in %s before acquisition", rec.Date.Format("2006-01"))
		}
		if !rec.Acquired {
			continue
		}

		if rec.EndingCash < -DollarTolerance {
			c.add(NegativeCash, rec.Month, rec.EndingCash,
				"cash balance %.2f in %s", rec.EndingCash, rec.Date.Format("2006-01"))
		}

		bc := CheckBalanceEquation(rec.TotalAssets, rec.TotalLiabilities, rec.TotalEquity, DollarTolerance)
		if !bc.IsBalanced {
			c.add(BalanceSheetIdentity, rec.Month, bc.Difference,
				"assets %.2f differ from liabilities + equity %.2f by %.2f", bc.TotalAssets, bc.ComputedAssets, bc.Difference)
		}

		// Opening cash of the first emitted month carries pre-model history
		opening := rec.OpeningCash
		if i > 0 && pp.Months[i-1].Acquired {
			opening = prevEnding
		}
		cc := CheckCashReconciliation(opening, rec.ReserveFunding, rec.NetCashFlow, rec.EndingCash, DollarTolerance)
		if !cc.IsBalanced {
			c.add(CashReconciliation, rec.Month, cc.Difference,
				"ending cash %.2f does not roll forward from %.2f", cc.ReportedEnding, cc.OpeningCash)
		}
		prevEnding = rec.EndingCash

		if rec.Refinanced && rec.RefinancingProceeds < 0 {
			c.add(RefinanceShortfall, rec.Month, rec.RefinancingProceeds,
				"new loan does not cover the retired balance and closing costs, shortfall %.2f", -rec.RefinancingProceeds)
		}
	}

	if !exit.DebtCovered() {
		last := len(pp.Months) - 1
		c.add(DebtAtExit, last, exit.OutstandingDebt,
			"sale proceeds net of commission %.2f do not repay debt of %.2f", exit.GrossValue-exit.Commission, exit.OutstandingDebt)
	}
	return c.findings()
}
