package valuation_test

import (
	"math"
	"testing"

	"hospitality_proforma/pkg/core/assumption"
	"hospitality_proforma/pkg/core/calc"
	"hospitality_proforma/pkg/core/projection"
	"hospitality_proforma/pkg/core/valuation"
)

func TestDiscount(t *testing.T) {
	cfs := []float64{-1000, 100, 100, 1100}
	irr := 0.10

	d := valuation.Discount(cfs, 0.10, &irr)
	if math.Abs(d.NPV) > 1e-9 {
		t.Errorf("expected NPV 0 at the IRR, got %v", d.NPV)
	}
	if d.IRRConsistent == nil || !*d.IRRConsistent {
		t.Errorf("expected the IRR cross-check to pass")
	}
	if d.PresentValues[0] != -1000 || math.Abs(d.PresentValues[3]-1100/1.331) > 1e-9 {
		t.Errorf("unexpected present values %v", d.PresentValues)
	}

	flat := valuation.Discount(cfs, 0, nil)
	if flat.NPV != 300 || flat.Undiscounted != 300 || flat.IRRConsistent != nil {
		t.Errorf("expected undiscounted NPV 300 without a cross-check, got %+v", flat)
	}

	wrong := 0.2
	if d := valuation.Discount(cfs, 0.10, &wrong); *d.IRRConsistent {
		t.Error("expected the cross-check to fail at a wrong rate")
	}
}

func investmentTerms() assumption.InvestmentTerms {
	d := assumption.Defaults()
	return assumption.InvestmentTerms{
		DiscountRate:     d.DiscountRate,
		PreferredReturn:  0.08,
		GPEquityShare:    0.10,
		CatchUpToGPShare: 0.20,
		PromoteTiers:     d.PromoteTiers,
	}
}

func TestDistribute(t *testing.T) {
	s := valuation.ReturnsSummary{InitialEquity: 1000, TotalDistributions: 2000, CashFlows: make([]float64, 5)}
	d := valuation.Distribute(s, investmentTerms())

	// ROC 1000, pref 400 (8% x 5 years), tiers 200 / 300 / 100
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"ReturnOfCapital", d.ReturnOfCapital, 1000},
		{"PreferredReturn", d.PreferredReturn, 400},
		{"PreferredShortfall", d.PreferredShortfall, 0},
		{"Tier1", d.Tiers[0].Amount, 200},
		{"Tier2", d.Tiers[1].Amount, 300},
		{"Tier3", d.Tiers[2].Amount, 100},
		{"ToLP", d.ToLP, 1690},
		{"ToGP", d.ToGP, 310},
		{"LPMultiple", d.LPMultiple, 1690.0 / 900.0},
		{"GPMultiple", d.GPMultiple, 3.1},
		{"Residual", d.Residual, 0},
	}
	for _, tt := range tests {
		if math.Abs(tt.got-tt.want) > 1e-9 {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, tt.got)
		}
	}
}

func TestDistribute_CatchUp(t *testing.T) {
	terms := investmentTerms()
	terms.CatchUpRate = 1
	s := valuation.ReturnsSummary{InitialEquity: 1000, TotalDistributions: 2000, CashFlows: make([]float64, 5)}
	d := valuation.Distribute(s, terms)

	if math.Abs(d.CatchUp-50) > 1e-9 {
		t.Fatalf("expected a catch-up of 50, got %v", d.CatchUp)
	}
	gpProfit := d.PreferredReturn*terms.GPEquityShare + d.CatchUp
	if share := gpProfit / (d.PreferredReturn + d.CatchUp); math.Abs(share-0.20) > 1e-9 {
		t.Errorf("expected the GP to hold 20%% of profit after catch-up, got %v", share)
	}
	if math.Abs(d.ToLP+d.ToGP-2000) > 1e-9 {
		t.Errorf("expected every dollar distributed, got %v", d.ToLP+d.ToGP)
	}
}

func TestDistribute_PreferredShortfall(t *testing.T) {
	s := valuation.ReturnsSummary{InitialEquity: 1000, TotalDistributions: 1200, CashFlows: make([]float64, 5)}
	d := valuation.Distribute(s, investmentTerms())

	if math.Abs(d.PreferredReturn-200) > 1e-9 || math.Abs(d.PreferredShortfall-200) > 1e-9 {
		t.Errorf("expected pref 200 with a 200 shortfall, got %v / %v", d.PreferredReturn, d.PreferredShortfall)
	}
	for _, tier := range d.Tiers {
		if tier.Amount != 0 {
			t.Errorf("%s: expected nothing past the pref, got %v", tier.Label, tier.Amount)
		}
	}

	loss := valuation.Distribute(valuation.ReturnsSummary{InitialEquity: 1000, TotalDistributions: -50, CashFlows: make([]float64, 5)}, investmentTerms())
	if loss.ToLP != 0 || loss.ToGP != 0 || loss.ReturnOfCapital != 0 {
		t.Errorf("expected nothing to distribute, got %+v", loss)
	}
}

func holdSell(t *testing.T, p *assumption.PropertyAssumptions, g *assumption.GlobalAssumptions, terms assumption.InvestmentTerms) ([]valuation.HoldSellDecision, []valuation.CashFlowYearly, *projection.PropertyProjection) {
	t.Helper()
	flows, _, pp := waterfall(t, p, g)
	r := assumption.NewResolver(assumption.Defaults())
	rg, err := r.ResolveGlobal(g)
	if err != nil {
		t.Fatalf("resolve global: %v", err)
	}
	years := calc.AggregateYears(pp.Months, rg)
	return valuation.HoldVsSell(pp, years, flows, terms), flows, pp
}

func TestHoldVsSell_Untaxed(t *testing.T) {
	p, g := flatProperty()
	terms := assumption.InvestmentTerms{}
	decisions, flows, pp := holdSell(t, p, g, terms)

	if len(decisions) != 4 {
		t.Fatalf("expected a decision for each year before the exit, got %d", len(decisions))
	}
	first := decisions[0]
	var hold float64
	for _, f := range flows[1:] {
		hold += f.NetCashFlow
	}
	if math.Abs(first.HoldNPV-hold) > 1e-6 {
		t.Errorf("expected undiscounted hold value %v, got %v", hold, first.HoldNPV)
	}
	wantValue := flows[0].NOI / pp.Property.ExitCapRate
	if math.Abs(first.MarketValue-wantValue) > 1e-6 {
		t.Errorf("expected market value %v, got %v", wantValue, first.MarketValue)
	}
	if first.CapitalGainsTax != 0 || first.RecaptureTax != 0 {
		t.Errorf("expected no sale taxes at zero rates")
	}
	if first.Recommendation != valuation.Hold {
		t.Errorf("expected hold while cash flow remains, got %s (advantage %v)", first.Recommendation, first.Advantage)
	}
}

func TestHoldVsSell_SteepDiscountFavoursSale(t *testing.T) {
	p, g := flatProperty()
	terms := investmentTerms()
	terms.DiscountRate = 1
	terms.CapitalGainsRate = 0.20
	terms.DepreciationRecaptureRate = 0.25
	decisions, _, _ := holdSell(t, p, g, terms)

	first := decisions[0]
	if first.Recommendation != valuation.Sell {
		t.Errorf("expected sell at a 100%% discount rate, got %s", first.Recommendation)
	}
	want := first.MarketValue - first.Commission - first.DebtRepayment - first.RecaptureTax - first.CapitalGainsTax
	if math.Abs(first.SellProceeds-want) > 1e-6 {
		t.Errorf("sell proceeds %v do not tie to %v", first.SellProceeds, want)
	}
	if first.RecaptureTax <= 0 {
		t.Errorf("expected recapture on a year of depreciation, got %v", first.RecaptureTax)
	}
}

func TestHoldVsSell_SkipsYearsBeforeAcquisition(t *testing.T) {
	p, g := flatProperty()
	p.AcquisitionDate = "2027-03-01"
	p.OperationsStartDate = "2027-06-01"
	decisions, _, _ := holdSell(t, p, g, investmentTerms())
	if len(decisions) == 0 || decisions[0].Year != 1 {
		t.Errorf("expected the first decision in year 1, got %+v", decisions)
	}
}
