package report

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the reporting currency
const Currency = money.USD

// Money formats an amount in whole dollars with accounting parentheses for
// negatives: 1234.5 → "$1,235", -80 → "($80)".
func Money(amount float64) string {
	cur := money.GetCurrency(Currency)
	d := decimal.NewFromFloat(amount).Round(0)
	factor, _ := decimal.NewFromInt(10).PowInt32(int32(cur.Fraction))
	m := money.New(d.Mul(factor).IntPart(), Currency)

	s := strings.TrimSuffix(m.Absolute().Display(), cur.Decimal+strings.Repeat("0", cur.Fraction))
	if m.IsNegative() {
		return "(" + s + ")"
	}
	return s
}

// Percent formats a ratio with half-up rounding: 0.12345 → "12.3%"
func Percent(ratio float64, places int32) string {
	return decimal.NewFromFloat(ratio).Mul(decimal.NewFromInt(100)).Round(places).StringFixed(places) + "%"
}

// Multiple formats an equity multiple: 1.8549 → "1.85x"
func Multiple(v float64) string {
	return decimal.NewFromFloat(v).Round(2).StringFixed(2) + "x"
}

// Rate formats an optional rate, "n/a" when undefined
func Rate(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return Percent(*v, 2)
}

// Plain formats a quantity with fixed decimals: room-nights, ADR
func Plain(v float64, places int32) string {
	return decimal.NewFromFloat(v).Round(places).StringFixed(places)
}
