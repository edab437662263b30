package pipeline

import (
	"context"
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"

	"hospitality_proforma/pkg/core/assumption"
	"hospitality_proforma/pkg/core/scenario"
	"hospitality_proforma/pkg/core/validate"
)

func newTestEngine(opts ...Option) *Engine {
	return NewEngine(append([]Option{WithLogger(zap.NewNop().Sugar())}, opts...)...)
}

func TestRun_Example(t *testing.T) {
	s := scenario.Example()
	res, err := newTestEngine().Run(context.Background(), s)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if res.RunID == "" || len(res.Fingerprint) != 64 {
		t.Errorf("expected run id and fingerprint, got %q / %q", res.RunID, res.Fingerprint)
	}
	if len(res.Properties) != 2 || len(res.Rejected) != 0 {
		t.Fatalf("expected 2 accepted properties, got %d (rejected %v)", len(res.Properties), res.Rejected)
	}
	if res.Properties[0].ID != "harbor-inn" || res.Properties[1].ID != "ridge-lodge" {
		t.Errorf("expected input order, got %s, %s", res.Properties[0].ID, res.Properties[1].ID)
	}
	for _, pr := range res.Properties {
		if len(pr.Projection.Months) != 120 || len(pr.Yearly) != 10 || len(pr.CashFlows) != 10 {
			t.Errorf("%s: unexpected series lengths %d/%d/%d", pr.ID, len(pr.Projection.Months), len(pr.Yearly), len(pr.CashFlows))
		}
	}
	if len(res.PortfolioYearly) != 10 || len(res.PortfolioMonths) != 120 || len(res.Company) != 120 || len(res.CompanyYearly) != 10 {
		t.Errorf("unexpected portfolio lengths")
	}

	for y, row := range res.PortfolioYearly {
		want := res.Properties[0].Yearly[y].NOI + res.Properties[1].Yearly[y].NOI
		if math.Abs(row.NOI-want) > 1e-6 {
			t.Errorf("year %d: portfolio NOI %v, expected %v", y, row.NOI, want)
		}
	}

	for _, f := range res.Findings {
		switch f.Kind {
		case validate.BalanceSheetIdentity, validate.CashReconciliation, validate.FeeDualEntry, validate.OperatingBeforeAcquisition:
			t.Errorf("unexpected identity finding %s", f)
		}
	}
	if res.Returns.IRR == nil {
		t.Errorf("expected a defined portfolio IRR, got %+v", res.Returns.IRRDetail)
	}
}

func TestRun_PropertyRejectedAfterOperationsStart(t *testing.T) {
	s := scenario.Example()
	s.Properties[1].AcquisitionDate = "2027-05-01" // after its operations start

	res, err := newTestEngine().Run(context.Background(), s)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(res.Properties) != 1 || res.Properties[0].ID != "harbor-inn" {
		t.Fatalf("expected only harbor-inn accepted, got %d", len(res.Properties))
	}
	if len(res.Rejected) != 1 || res.Rejected[0].PropertyID != "ridge-lodge" {
		t.Fatalf("expected ridge-lodge rejected, got %+v", res.Rejected)
	}
	if len(res.Rejected[0].Errors) == 0 {
		t.Error("expected the rejection to carry field errors")
	}

	// The portfolio holds only the accepted property
	alone, err := newTestEngine().Run(context.Background(), &scenario.Scenario{
		Name:       "alone",
		Global:     s.Global,
		Properties: s.Properties[:1],
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for y := range res.PortfolioYearly {
		if res.PortfolioYearly[y].NOI != alone.PortfolioYearly[y].NOI {
			t.Errorf("year %d: rejected property leaked into the portfolio", y)
		}
	}
}

func TestRun_PropertyAcquiredAfterHorizon(t *testing.T) {
	base, err := newTestEngine().Run(context.Background(), scenario.Example())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	s := scenario.Example()
	late := s.Properties[1]
	late.ID, late.Name = "late-lodge", "Late Lodge"
	late.AcquisitionDate = "2040-01-01"
	late.OperationsStartDate = "2040-03-01"
	s.Properties = append(s.Properties, late)

	res, err := newTestEngine().Run(context.Background(), s)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(res.Properties) != 3 || len(res.Rejected) != 0 {
		t.Fatalf("expected 3 accepted properties, got %d (rejected %v)", len(res.Properties), res.Rejected)
	}
	if res.Returns.InitialEquity != base.Returns.InitialEquity {
		t.Errorf("expected portfolio equity %v, got %v", base.Returns.InitialEquity, res.Returns.InitialEquity)
	}
	if res.Returns.IRR == nil || *res.Returns.IRR != *base.Returns.IRR {
		t.Errorf("expected the portfolio IRR to ignore the late property, got %+v", res.Returns.IRRDetail)
	}
	for y := range base.PortfolioCashFlows {
		if res.PortfolioCashFlows[y].NetCashFlow != base.PortfolioCashFlows[y].NetCashFlow {
			t.Errorf("year %d: late property leaked into portfolio cash flow", y)
		}
	}

	var found bool
	for _, f := range res.Findings {
		if f.Kind == validate.AcquiredAfterHorizon && f.PropertyID == "late-lodge" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an acquired_after_horizon finding, got %v", res.Findings)
	}
}

func TestRun_InvestorAnalyses(t *testing.T) {
	res, err := newTestEngine().Run(context.Background(), scenario.Example())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if res.Discounted.Rate != 0.10 || len(res.Discounted.PresentValues) != len(res.Returns.CashFlows) {
		t.Errorf("unexpected portfolio discounting %+v", res.Discounted)
	}
	if res.Discounted.IRRConsistent == nil || !*res.Discounted.IRRConsistent {
		t.Errorf("expected NPV at the portfolio IRR to be zero")
	}
	if res.Returns.IRR != nil && *res.Returns.IRR > 0.10 && res.Discounted.NPV <= 0 {
		t.Errorf("expected positive NPV when the IRR clears the discount rate, got %v", res.Discounted.NPV)
	}

	d := res.Distribution
	if math.Abs(d.LPEquity+d.GPEquity-res.Returns.InitialEquity) > 1e-6 {
		t.Errorf("expected LP and GP equity to sum to %v, got %v", res.Returns.InitialEquity, d.LPEquity+d.GPEquity)
	}
	if res.Returns.TotalDistributions > 0 && math.Abs(d.ToLP+d.ToGP-res.Returns.TotalDistributions) > 1e-6 {
		t.Errorf("expected every distributed dollar allocated, got %v of %v", d.ToLP+d.ToGP, res.Returns.TotalDistributions)
	}
	if len(d.Tiers) != 3 {
		t.Errorf("expected the default three promote tiers, got %d", len(d.Tiers))
	}

	for _, pr := range res.Properties {
		if len(pr.BreakEven) != len(pr.Yearly) {
			t.Errorf("%s: expected a break-even per year, got %d", pr.ID, len(pr.BreakEven))
		}
		if len(pr.HoldSell) == 0 || len(pr.HoldSell) >= len(pr.Yearly) {
			t.Errorf("%s: expected hold-vs-sell decisions before the exit, got %d", pr.ID, len(pr.HoldSell))
		}
		if len(pr.Discounted.PresentValues) != len(pr.Returns.CashFlows) {
			t.Errorf("%s: unexpected discounted vector", pr.ID)
		}
	}
}

func TestRun_GlobalErrorAborts(t *testing.T) {
	s := scenario.Example()
	s.Global.ProjectionYears = 0

	res, err := newTestEngine().Run(context.Background(), s)
	if err == nil || res != nil {
		t.Fatalf("expected the run to abort, got %v", res)
	}
	var ces assumption.ConfigErrors
	if !errors.As(err, &ces) {
		t.Errorf("expected ConfigErrors, got %T", err)
	}
}

func TestRun_DuplicateIDRejected(t *testing.T) {
	s := scenario.Example()
	s.Properties[1].ID = s.Properties[0].ID

	res, err := newTestEngine().Run(context.Background(), s)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(res.Properties) != 1 || len(res.Rejected) != 1 || res.Rejected[0].Errors[0].Field != "id" {
		t.Errorf("expected the second property rejected on id, got %+v", res.Rejected)
	}
}

func TestRun_Memoization(t *testing.T) {
	e := newTestEngine(WithMemoization())
	a, err := e.Run(context.Background(), scenario.Example())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	b, err := e.Run(context.Background(), scenario.Example())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if a != b {
		t.Error("expected the cached result for identical inputs")
	}

	changed := scenario.Example()
	changed.Properties[0].StartADR = 300
	c, err := e.Run(context.Background(), changed)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if c == a || c.Fingerprint == a.Fingerprint {
		t.Error("expected a fresh run for different inputs")
	}
}

func TestRun_Deterministic(t *testing.T) {
	a, err := newTestEngine(WithParallelism(1)).Run(context.Background(), scenario.Example())
	if err != nil {
		t.Fatal(err)
	}
	b, err := newTestEngine(WithParallelism(4)).Run(context.Background(), scenario.Example())
	if err != nil {
		t.Fatal(err)
	}
	if a.Fingerprint != b.Fingerprint || *a.Returns.IRR != *b.Returns.IRR {
		t.Errorf("expected identical output regardless of parallelism")
	}
	for y := range a.PortfolioYearly {
		if a.PortfolioYearly[y].EndingCash != b.PortfolioYearly[y].EndingCash {
			t.Errorf("year %d: ending cash differs", y)
		}
	}
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newTestEngine().Run(ctx, scenario.Example()); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
