package projection_test

import (
	"math"
	"reflect"
	"testing"

	"hospitality_proforma/pkg/core/assumption"
	"hospitality_proforma/pkg/core/projection"
)

func testGlobal() *assumption.GlobalAssumptions {
	return &assumption.GlobalAssumptions{
		ModelStartDate:  "2026-01-01",
		ProjectionYears: 10,
		InflationRate:   0.03,
	}
}

func testProperty() *assumption.PropertyAssumptions {
	return &assumption.PropertyAssumptions{
		ID:                  "p1",
		Name:                "Harbor Inn",
		RoomCount:           10,
		AcquisitionDate:     "2026-01-01",
		OperationsStartDate: "2026-04-01",
		PurchasePrice:       1_600_000,
		OperatingReserve:    250_000,
		PreOpeningCosts:     40_000,
		Financing:           assumption.Financed,
		StartADR:            250,
		ADRGrowthRate:       0.03,
		StartOccupancy:      0.55,
		MaxOccupancy:        0.85,
		OccupancyGrowthStep: 0.05,
	}
}

func project(t *testing.T, p *assumption.PropertyAssumptions, g *assumption.GlobalAssumptions) (*projection.Engine, *projection.PropertyProjection) {
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
	e := projection.NewEngine(rg)
	return e, e.ProjectProperty(rp)
}

func TestProjectRevenue_RoomRevenue(t *testing.T) {
	p := &assumption.ResolvedProperty{
		RoomCount:           10,
		StartADR:            100,
		StartOccupancy:      0.70,
		MaxOccupancy:        0.70,
		OccupancyRampMonths: 6,
	}
	rev := projection.ProjectRevenue(p, 0)
	if math.Abs(rev.Rooms-21350) > 1e-9 {
		t.Errorf("expected room revenue 21350, got %v", rev.Rooms)
	}
}

func TestProjectRevenue_Streams(t *testing.T) {
	p := &assumption.ResolvedProperty{
		RoomCount:           10,
		StartADR:            100,
		StartOccupancy:      0.70,
		MaxOccupancy:        0.70,
		OccupancyRampMonths: 6,
		RevShareFB:          0.18,
		RevShareEvents:      0.30,
		RevShareOther:       0.05,
		CateringBoostPct:    0.22,
	}
	rev := projection.ProjectRevenue(p, 0)
	wantFB := 21350 * 0.18 * 1.22
	if math.Abs(rev.FB-wantFB) > 1e-9 {
		t.Errorf("expected F&B %v, got %v", wantFB, rev.FB)
	}
	if math.Abs(rev.Total-(rev.Rooms+rev.FB+rev.Events+rev.Other)) > 1e-9 {
		t.Errorf("total does not equal sum of streams")
	}
}

func TestOccupancy_MonotoneAndCapped(t *testing.T) {
	p := &assumption.ResolvedProperty{
		StartOccupancy:      0.55,
		MaxOccupancy:        0.85,
		OccupancyGrowthStep: 0.05,
		OccupancyRampMonths: 6,
	}
	prev := projection.Occupancy(p, 0)
	for k := 1; k < 120; k++ {
		occ := projection.Occupancy(p, k)
		if occ < prev {
			t.Fatalf("occupancy decreased at month %d: %v < %v", k, occ, prev)
		}
		if occ > p.MaxOccupancy {
			t.Fatalf("occupancy above max at month %d: %v", k, occ)
		}
		prev = occ
	}
	if got := projection.Occupancy(p, 6); math.Abs(got-0.60) > 1e-12 {
		t.Errorf("expected 0.60 after one ramp step, got %v", got)
	}
	if got := projection.Occupancy(p, 119); got != 0.85 {
		t.Errorf("expected cap 0.85, got %v", got)
	}
}

func TestADR_CompoundsAnnually(t *testing.T) {
	p := &assumption.ResolvedProperty{StartADR: 100, ADRGrowthRate: 0.03}
	if got := projection.ADR(p, 11); got != 100 {
		t.Errorf("expected 100 through month 11, got %v", got)
	}
	if got := projection.ADR(p, 12); math.Abs(got-103) > 1e-9 {
		t.Errorf("expected 103 at month 12, got %v", got)
	}
	if got := projection.ADR(p, 25); math.Abs(got-106.09) > 1e-9 {
		t.Errorf("expected 106.09 at month 25, got %v", got)
	}
}

func TestDepreciation_Monthly(t *testing.T) {
	p := &assumption.ResolvedProperty{PurchasePrice: 1_600_000, LandValuePercent: 0.25, AcquisitionMonth: 3, AcquisitionOnFirst: false}
	d := projection.NewDepreciation(p)
	if math.Abs(d.Basis-1_200_000) > 1e-9 {
		t.Errorf("expected basis 1,200,000, got %v", d.Basis)
	}
	if math.Abs(d.Monthly-3636.36) > 0.01 {
		t.Errorf("expected monthly 3636.36, got %v", d.Monthly)
	}
	if d.StartMonth != 4 {
		t.Errorf("expected mid-month acquisition to start depreciation next month, got %d", d.StartMonth)
	}
	if got := d.Charge(10, d.Basis-100); got != 100 {
		t.Errorf("expected final charge capped at remaining basis, got %v", got)
	}
}

func TestIncomeTax_NoLossCarryforward(t *testing.T) {
	taxable, tax := projection.IncomeTax(10000, 8000, 5000, 0.25)
	if taxable != -3000 || tax != 0 {
		t.Errorf("expected taxable -3000 and no tax, got %v / %v", taxable, tax)
	}
	_, tax = projection.IncomeTax(20000, 8000, 2000, 0.25)
	if tax != 2500 {
		t.Errorf("expected tax 2500, got %v", tax)
	}
}

func TestComputeFees(t *testing.T) {
	p := &assumption.ResolvedProperty{BaseManagementFeeRate: 0.085, IncentiveManagementFeeRate: 0.12}

	f := projection.ComputeFees(p, 100000, -5000)
	if f.Incentive != 0 {
		t.Errorf("expected no incentive fee on negative GOP, got %v", f.Incentive)
	}
	if math.Abs(f.Base-8500) > 1e-9 || f.ByCategory[projection.DefaultFeeCategory] != f.Base {
		t.Errorf("expected base fee 8500 under default category, got %+v", f)
	}

	p.FeeCategories = []assumption.FeeCategory{{Name: "Marketing", Rate: 0.02, Active: true}, {Name: "Ops", Rate: 0.05, Active: true}}
	f = projection.ComputeFees(p, 100000, 40000)
	if math.Abs(f.Base-7000) > 1e-9 || math.Abs(f.Incentive-4800) > 1e-9 {
		t.Errorf("expected category base 7000 and incentive 4800, got %+v", f)
	}
}

func TestProjectProperty_ActivationGating(t *testing.T) {
	p := testProperty()
	p.AcquisitionDate = "2026-03-01"
	p.OperationsStartDate = "2026-07-01"
	_, pp := project(t, p, testGlobal())

	if len(pp.Months) != 120 {
		t.Fatalf("expected 120 months, got %d", len(pp.Months))
	}
	for m, rec := range pp.Months[:6] {
		if rec.RevenueTotal != 0 || rec.TotalOperatingExpenses != 0 || rec.NOI != 0 {
			t.Errorf("month %d: expected no operations before start, got revenue %v", m, rec.RevenueTotal)
		}
		if m < 2 && (rec.Acquired || rec.TotalAssets != 0 || rec.DebtOutstanding != 0) {
			t.Errorf("month %d: expected no balance sheet before acquisition", m)
		}
		if m >= 2 && (!rec.Acquired || rec.TotalAssets == 0 || rec.DebtOutstanding == 0) {
			t.Errorf("month %d: expected balance sheet from acquisition", m)
		}
	}
	if !pp.Months[6].Operating || pp.Months[6].RevenueTotal <= 0 {
		t.Errorf("expected operations from month 6")
	}
}

func TestProjectProperty_Identities(t *testing.T) {
	p := testProperty()
	p.AcquisitionDate = "2026-01-15"
	p.BuildingImprovements = 200_000
	p.WillRefinance = true
	_, pp := project(t, p, testGlobal())

	if pp.Refinance == nil {
		t.Fatal("expected a refinance inside the horizon")
	}
	prevCash := 0.0
	for _, rec := range pp.Months {
		if !rec.Acquired {
			continue
		}
		if diff := rec.TotalAssets - rec.TotalLiabilities - rec.TotalEquity; math.Abs(diff) > 1e-4 {
			t.Fatalf("month %d: A - L - E = %v", rec.Month, diff)
		}
		if diff := rec.EndingCash - (prevCash + rec.ReserveFunding + rec.NetCashFlow); math.Abs(diff) > 1e-6 {
			t.Fatalf("month %d: cash does not reconcile by %v", rec.Month, diff)
		}
		if math.Abs(rec.OperatingCashFlow+rec.FinancingCashFlow-rec.NetCashFlow) > 1e-6 {
			t.Fatalf("month %d: operating + financing != net cash flow", rec.Month)
		}
		prevCash = rec.EndingCash
	}
	t.Log("✓ balance sheet and cash reconcile every month")
}

func TestProjectProperty_Refinance(t *testing.T) {
	p := testProperty()
	p.WillRefinance = true
	p.RefinanceInterestRate = assumption.Float(0.06)
	_, pp := project(t, p, testGlobal())

	refi := pp.Refinance
	if refi == nil {
		t.Fatal("expected refinance")
	}
	// Operations start month 3, default offset 3 years
	if refi.Appraisal.RefinanceMonth != 39 {
		t.Fatalf("expected refinance month 39, got %d", refi.Appraisal.RefinanceMonth)
	}
	before := pp.Months[38]
	at := pp.Months[39]
	if !at.Refinanced || math.Abs(at.DebtRetired-before.DebtOutstanding) > 1e-6 {
		t.Errorf("expected old balance %v retired, got %v", before.DebtOutstanding, at.DebtRetired)
	}
	if math.Abs(at.RefinancingProceeds-refi.NetProceeds) > 1e-9 {
		t.Errorf("expected proceeds %v, got %v", refi.NetProceeds, at.RefinancingProceeds)
	}
	if math.Abs(at.Interest-refi.NewLoan.Principal*0.06/12) > 1e-6 {
		t.Errorf("expected interest on the new loan at 6%%, got %v", at.Interest)
	}
	for _, rec := range pp.Months {
		if rec.Month != 39 && rec.RefinancingProceeds != 0 {
			t.Errorf("unexpected refinancing proceeds in month %d", rec.Month)
		}
	}
	// T12 NOI comes from the months before the refinance
	var t12 float64
	for _, rec := range pp.Months[27:39] {
		t12 += rec.NOI
	}
	if math.Abs(refi.Appraisal.TrailingNOI-t12) > 1e-6 {
		t.Errorf("expected T12 NOI %v, got %v", t12, refi.Appraisal.TrailingNOI)
	}
}

func TestProjectProperty_FullEquityNeverRefinances(t *testing.T) {
	p := testProperty()
	p.Financing = assumption.FullEquity
	_, pp := project(t, p, testGlobal())

	for _, rec := range pp.Months {
		if rec.RefinancingProceeds != 0 {
			t.Fatalf("month %d: unexpected refinancing proceeds", rec.Month)
		}
		if rec.DebtOutstanding != 0 || rec.Interest != 0 {
			t.Fatalf("month %d: full-equity property carries debt", rec.Month)
		}
	}
}

func TestProjectProperty_PrincipalIsNotAnExpense(t *testing.T) {
	_, pp := project(t, testProperty(), testGlobal())
	rec := pp.Months[24]
	want := rec.NOI - rec.Interest - rec.Depreciation - rec.IncomeTax
	if math.Abs(rec.NetIncome-want) > 1e-9 {
		t.Errorf("expected net income %v, got %v", want, rec.NetIncome)
	}
	if rec.Principal <= 0 {
		t.Errorf("expected principal amortization in month 24")
	}
}

func TestProjectProperty_Idempotent(t *testing.T) {
	p := testProperty()
	p.WillRefinance = true
	_, a := project(t, p, testGlobal())
	_, b := project(t, p, testGlobal())

	if !reflect.DeepEqual(a.Months, b.Months) {
		t.Error("expected identical output for identical input")
	}
}

func TestProjectProperty_AcquiredBeforeModelStart(t *testing.T) {
	p := testProperty()
	p.AcquisitionDate = "2025-01-01"
	p.OperationsStartDate = "2025-06-01"
	_, pp := project(t, p, testGlobal())

	first := pp.Months[0]
	if first.Month != 0 || !first.Operating {
		t.Fatalf("expected month 0 operating, got %+v", first)
	}
	if first.AccumulatedDepreciation <= first.Depreciation {
		t.Errorf("expected depreciation accumulated before the model start")
	}
	if diff := first.TotalAssets - first.TotalLiabilities - first.TotalEquity; math.Abs(diff) > 1e-4 {
		t.Errorf("A - L - E = %v in month 0", diff)
	}
}

func TestProjectCompany_FeeDualEntry(t *testing.T) {
	g := testGlobal()
	g.SafeTranches = []assumption.SafeTranche{{Date: "2026-01-01"}}
	r := assumption.NewResolver(assumption.Defaults())
	rg, err := r.ResolveGlobal(g)
	if err != nil {
		t.Fatalf("resolve global: %v", err)
	}
	e := projection.NewEngine(rg)

	var props []*projection.PropertyProjection
	for _, id := range []string{"a", "b"} {
		p := testProperty()
		p.ID = id
		rp, err := r.ResolveProperty(p, g)
		if err != nil {
			t.Fatalf("resolve property: %v", err)
		}
		props = append(props, e.ProjectProperty(rp))
	}

	company := e.ProjectCompany(props)
	if len(company) != 120 {
		t.Fatalf("expected 120 company months, got %d", len(company))
	}
	for m, c := range company {
		var fees float64
		for _, pp := range props {
			fees += pp.Months[m].FeeBase + pp.Months[m].FeeIncentive
		}
		if math.Abs(fees-c.TotalRevenue) > 1e-9 {
			t.Fatalf("month %d: property fees %v != company revenue %v", m, fees, c.TotalRevenue)
		}
	}
	if company[0].SafeFunding != 800000 {
		t.Errorf("expected default SAFE tranche in month 0, got %v", company[0].SafeFunding)
	}
	if !company[0].Operating || company[0].PartnerCompensation != 45000 {
		t.Errorf("expected partner comp 540000/12 in month 0, got %v", company[0].PartnerCompensation)
	}
	if company[5].ActiveProperties != 2 {
		t.Errorf("expected 2 active properties, got %d", company[5].ActiveProperties)
	}
}

func TestProjectCompany_GatedOnFunding(t *testing.T) {
	g := testGlobal()
	g.SafeTranches = []assumption.SafeTranche{{Date: "2026-06-01", Amount: assumption.Float(1_000_000)}}
	r := assumption.NewResolver(assumption.Defaults())
	rg, err := r.ResolveGlobal(g)
	if err != nil {
		t.Fatalf("resolve global: %v", err)
	}
	company := projection.NewEngine(rg).ProjectCompany(nil)

	for _, c := range company[:5] {
		if c.TotalExpenses != 0 {
			t.Errorf("month %d: expected no overhead before the first SAFE tranche", c.Month)
		}
	}
	if company[5].TotalExpenses == 0 || company[5].SafeFunding != 1_000_000 {
		t.Errorf("expected overhead and funding in month 5, got %+v", company[5])
	}
}

func TestProjectCompany_CountsOperatingPropertiesWithoutRevenue(t *testing.T) {
	g := testGlobal()
	r := assumption.NewResolver(assumption.Defaults())
	rg, err := r.ResolveGlobal(g)
	if err != nil {
		t.Fatalf("resolve global: %v", err)
	}
	e := projection.NewEngine(rg)

	p := testProperty()
	p.StartOccupancy = 0
	p.MaxOccupancy = 0
	rp, err := r.ResolveProperty(p, g)
	if err != nil {
		t.Fatalf("resolve property: %v", err)
	}
	pp := e.ProjectProperty(rp)
	if !pp.Months[5].Operating || pp.Months[5].RevenueTotal != 0 {
		t.Fatalf("expected an operating month without revenue, got %+v", pp.Months[5])
	}

	company := e.ProjectCompany([]*projection.PropertyProjection{pp})
	if company[2].ActiveProperties != 0 {
		t.Errorf("month 2: expected no active property before operations start, got %d", company[2].ActiveProperties)
	}
	if company[5].ActiveProperties != 1 {
		t.Errorf("month 5: expected the operating property to count, got %d", company[5].ActiveProperties)
	}
	if company[5].TravelCosts == 0 {
		t.Errorf("month 5: expected per-client travel for the operating property")
	}
}
