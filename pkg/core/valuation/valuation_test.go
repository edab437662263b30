package valuation_test

import (
	"math"
	"testing"

	"hospitality_proforma/pkg/core/assumption"
	"hospitality_proforma/pkg/core/calc"
	"hospitality_proforma/pkg/core/projection"
	"hospitality_proforma/pkg/core/valuation"
)

func flatProperty() (*assumption.PropertyAssumptions, *assumption.GlobalAssumptions) {
	g := &assumption.GlobalAssumptions{
		ModelStartDate:          "2026-01-01",
		ProjectionYears:         5,
		FixedCostEscalationRate: assumption.Float(0),
	}
	p := &assumption.PropertyAssumptions{
		ID:                  "flat",
		Name:                "Flat Lodge",
		RoomCount:           12,
		AcquisitionDate:     "2026-01-01",
		OperationsStartDate: "2026-01-01",
		PurchasePrice:       1_500_000,
		OperatingReserve:    100_000,
		Financing:           assumption.FullEquity,
		StartADR:            220,
		StartOccupancy:      0.75,
		MaxOccupancy:        0.75,
	}
	return p, g
}

func waterfall(t *testing.T, p *assumption.PropertyAssumptions, g *assumption.GlobalAssumptions) ([]valuation.CashFlowYearly, valuation.ExitValuation, *projection.PropertyProjection) {
	t.Helper()
	r := assumption.NewResolver(assumption.Defaults())
	rg, err := r.ResolveGlobal(g)
	if err != nil {
		t.Fatalf("resolve global: %v", err)
	}
	rp, err := r.ResolveProperty(p, g)
	if err != nil {
		t.Fatalf("resolve property: %v", err)
	}
	pp := projection.NewEngine(rg).ProjectProperty(rp)
	flows, exit := valuation.BuildCashFlows(pp, calc.AggregateYears(pp.Months, rg))
	return flows, exit, pp
}

func TestSolveIRR_KnownRate(t *testing.T) {
	res := valuation.SolveIRR([]float64{-1000, 100, 100, 1100})
	if !res.Converged {
		t.Fatalf("expected convergence, got %+v", res)
	}
	if math.Abs(res.Rate-0.10) > 1e-6 {
		t.Errorf("expected 10%%, got %v", res.Rate)
	}
}

func TestSolveIRR_Undefined(t *testing.T) {
	tests := []struct {
		name string
		cfs  []float64
	}{
		{"empty", nil},
		{"single", []float64{-100}},
		{"all positive", []float64{100, 50, 25}},
		{"all negative", []float64{-100, -50}},
		{"zeros", []float64{0, 0, 0}},
	}
	for _, tt := range tests {
		res := valuation.SolveIRR(tt.cfs)
		if res.Converged || res.Value() != nil || res.Reason == "" {
			t.Errorf("%s: expected undefined IRR with a reason, got %+v", tt.name, res)
		}
	}
}

func TestSolveIRR_NegativeRate(t *testing.T) {
	res := valuation.SolveIRR([]float64{-1000, 200, 200, 200})
	if !res.Converged {
		t.Fatalf("expected convergence, got %+v", res)
	}
	if res.Rate >= 0 {
		t.Errorf("expected a negative IRR, got %v", res.Rate)
	}
	if npv := valuation.NPV(res.Rate, []float64{-1000, 200, 200, 200}); math.Abs(npv) > 1e-4 {
		t.Errorf("expected NPV ~0 at the solved rate, got %v", npv)
	}
}

func TestSolveIRR_Deterministic(t *testing.T) {
	cfs := []float64{-2_500_000, 180_000, 195_000, 210_000, 900_000, 3_100_000}
	a, b := valuation.SolveIRR(cfs), valuation.SolveIRR(cfs)
	if a != b {
		t.Errorf("expected identical results, got %+v and %+v", a, b)
	}
}

func TestExit_NotClamped(t *testing.T) {
	x := valuation.Exit(50_000, 0.10, 0.05, 800_000)
	if x.GrossValue != 500_000 {
		t.Errorf("expected gross value 500000, got %v", x.GrossValue)
	}
	if math.Abs(x.NetProceeds-(500_000-25_000-800_000)) > 1e-9 {
		t.Errorf("expected negative net proceeds, got %v", x.NetProceeds)
	}
	if x.DebtCovered() {
		t.Error("expected uncovered debt")
	}
}

func TestBuildCashFlows_Waterfall(t *testing.T) {
	p, g := flatProperty()
	flows, exit, pp := waterfall(t, p, g)

	if len(flows) != 5 {
		t.Fatalf("expected 5 years, got %d", len(flows))
	}
	if flows[0].EquityInvestment != pp.Property.InitialEquity() {
		t.Errorf("expected equity %v in year 0, got %v", pp.Property.InitialEquity(), flows[0].EquityInvestment)
	}
	for i, cf := range flows {
		if math.Abs(cf.ATCF-(cf.NOI-cf.DebtService-cf.IncomeTax)) > 1e-6 {
			t.Errorf("year %d: ATCF does not tie", i)
		}
		if i > 0 && cf.EquityInvestment != 0 {
			t.Errorf("year %d: unexpected equity call", i)
		}
		if i < 4 && cf.ExitValue != 0 {
			t.Errorf("year %d: exit booked before the terminal year", i)
		}
	}
	last := flows[4]
	if last.ExitValue != exit.NetProceeds || last.DebtAtExit != 0 {
		t.Errorf("unexpected terminal year %+v", last)
	}
	if math.Abs(exit.GrossValue-last.NOI/0.085) > 1e-6 {
		t.Errorf("expected exit at the default cap rate, got %v", exit.GrossValue)
	}
	if math.Abs(last.CumulativeCashFlow-sum(flows)) > 1e-6 {
		t.Errorf("cumulative cash flow does not tie")
	}
}

func TestBuildCashFlows_AcquisitionYear(t *testing.T) {
	p, g := flatProperty()
	p.AcquisitionDate = "2027-03-01"
	p.OperationsStartDate = "2027-06-01"
	flows, _, _ := waterfall(t, p, g)
	if flows[0].EquityInvestment != 0 || flows[1].EquityInvestment == 0 {
		t.Errorf("expected equity in year 1, got %v / %v", flows[0].EquityInvestment, flows[1].EquityInvestment)
	}
}

func TestBuildCashFlows_AcquiredAfterHorizon(t *testing.T) {
	p, g := flatProperty()
	g.ProjectionYears = 3
	p.AcquisitionDate = "2035-01-01"
	p.OperationsStartDate = "2035-03-01"
	flows, exit, pp := waterfall(t, p, g)

	if pp.AcquiredInHorizon() {
		t.Fatal("expected the property to fall outside the horizon")
	}
	for _, f := range flows {
		if f.EquityInvestment != 0 || f.NetCashFlow != 0 {
			t.Errorf("year %d: expected no equity call, got equity %v net %v", f.Year, f.EquityInvestment, f.NetCashFlow)
		}
	}
	if exit.NetProceeds != 0 {
		t.Errorf("expected no exit proceeds, got %v", exit.NetProceeds)
	}
}

// One full-equity property with flat NOI: the solved rate zeroes
// -Equity + sum(ATCF_t/(1+r)^t) + Exit/(1+r)^T.
func TestSummarize_FlatFullEquity(t *testing.T) {
	p, g := flatProperty()
	flows, exit, pp := waterfall(t, p, g)

	for i := 1; i < len(flows); i++ {
		if math.Abs(flows[i].NOI-flows[0].NOI) > 1e-6 {
			t.Fatalf("expected flat NOI, year %d = %v vs %v", i, flows[i].NOI, flows[0].NOI)
		}
	}

	s := valuation.Summarize([][]valuation.CashFlowYearly{flows})
	if s.IRR == nil {
		t.Fatalf("expected a defined IRR, got %+v", s.IRRDetail)
	}
	r := *s.IRR
	equity := pp.Property.InitialEquity()
	npv := -equity
	for yr, cf := range flows {
		npv += cf.ATCF / math.Pow(1+r, float64(yr))
	}
	npv += exit.NetProceeds / math.Pow(1+r, float64(len(flows)-1))
	if math.Abs(npv) > 1e-3 {
		t.Errorf("expected NPV ~0 at IRR %v, got %v", r, npv)
	}

	wantMultiple := (s.TotalATCF + exit.NetProceeds) / equity
	if math.Abs(s.EquityMultiple-wantMultiple) > 1e-9 {
		t.Errorf("expected multiple %v, got %v", wantMultiple, s.EquityMultiple)
	}
	if math.Abs(s.CashOnCash-s.TotalATCF/5/equity) > 1e-9 {
		t.Errorf("unexpected cash-on-cash %v", s.CashOnCash)
	}
}

func TestSummarize_Portfolio(t *testing.T) {
	p, g := flatProperty()
	a, _, _ := waterfall(t, p, g)
	q, _ := flatProperty()
	q.ID, q.RoomCount, q.PurchasePrice = "second", 20, 2_400_000
	b, _, _ := waterfall(t, q, g)

	portfolio := valuation.Summarize([][]valuation.CashFlowYearly{a, b})
	single := valuation.Summarize([][]valuation.CashFlowYearly{a})
	if portfolio.InitialEquity <= single.InitialEquity {
		t.Errorf("expected portfolio equity to exceed a single property")
	}
	for y := range portfolio.CashFlows {
		if math.Abs(portfolio.CashFlows[y]-(a[y].NetCashFlow+b[y].NetCashFlow)) > 1e-6 {
			t.Errorf("year %d: consolidated cash flow does not tie", y)
		}
	}
}

func sum(flows []valuation.CashFlowYearly) float64 {
	var s float64
	for _, f := range flows {
		s += f.NetCashFlow
	}
	return s
}
