package report

import (
	"fmt"
	"slices"
	"time"

	"hospitality_proforma/pkg/core/calc"
	"hospitality_proforma/pkg/core/pipeline"
	"hospitality_proforma/pkg/core/validate"
	"hospitality_proforma/pkg/core/valuation"
)

// table is a statement laid out with years as columns
type table struct {
	Header []string
	Rows   [][]string
}

type returnsRow struct {
	Name           string
	Equity         string
	Distributions  string
	ExitValue      string
	EquityMultiple string
	CashOnCash     string
	IRR            string
}

type propertyView struct {
	ID        string
	Name      string
	Rooms     int
	Financing string
	Statement table
	CashFlows table
	BreakEven table
	HoldSell  table
}

type rejectedView struct {
	ID     string
	Errors []string
}

type findingGroup struct {
	Kind  validate.Kind
	Items []string
}

type reportView struct {
	Title      string
	RunID      string
	Generated  string
	Returns    []returnsRow
	Investors  table
	Portfolio  table
	Ratios     table
	CashFlows  table
	Company    table
	Properties []propertyView
	Rejected   []rejectedView
	Findings   []findingGroup
}

type line[T any] struct {
	label string
	value func(T) string
}

func yearHeader[T any](rows []T, fiscal func(T) int) []string {
	h := make([]string, 0, len(rows)+1)
	h = append(h, "")
	for _, r := range rows {
		h = append(h, fmt.Sprintf("FY%d", fiscal(r)))
	}
	return h
}

func buildTable[T any](rows []T, fiscal func(T) int, lines []line[T]) table {
	if len(rows) == 0 {
		return table{}
	}
	t := table{Header: yearHeader(rows, fiscal)}
	for _, l := range lines {
		row := make([]string, 0, len(rows)+1)
		row = append(row, l.label)
		for _, r := range rows {
			row = append(row, l.value(r))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func dollars(pick func(calc.YearlyFinancials) float64) func(calc.YearlyFinancials) string {
	return func(y calc.YearlyFinancials) string { return Money(pick(y)) }
}

var statementLines = []line[calc.YearlyFinancials]{
	{"Occupancy", func(y calc.YearlyFinancials) string { return Percent(y.Occupancy, 1) }},
	{"ADR", func(y calc.YearlyFinancials) string { return Money(y.ADR) }},
	{"RevPAR", func(y calc.YearlyFinancials) string { return Money(y.RevPAR()) }},
	{"Room revenue", dollars(func(y calc.YearlyFinancials) float64 { return y.RevenueRooms })},
	{"Total revenue", dollars(func(y calc.YearlyFinancials) float64 { return y.RevenueTotal })},
	{"Operating expenses", dollars(func(y calc.YearlyFinancials) float64 { return y.TotalOperatingExpenses })},
	{"GOP", dollars(func(y calc.YearlyFinancials) float64 { return y.GOP })},
	{"Management fees", dollars(func(y calc.YearlyFinancials) float64 { return y.ManagementFees() })},
	{"FF&E reserve", dollars(func(y calc.YearlyFinancials) float64 { return y.ExpenseFFE })},
	{"NOI", dollars(func(y calc.YearlyFinancials) float64 { return y.NOI })},
	{"Interest", dollars(func(y calc.YearlyFinancials) float64 { return y.Interest })},
	{"Depreciation", dollars(func(y calc.YearlyFinancials) float64 { return y.Depreciation })},
	{"Income tax", dollars(func(y calc.YearlyFinancials) float64 { return y.IncomeTax })},
	{"Net income", dollars(func(y calc.YearlyFinancials) float64 { return y.NetIncome })},
	{"Ending cash", dollars(func(y calc.YearlyFinancials) float64 { return y.EndingCash })},
	{"Debt outstanding", dollars(func(y calc.YearlyFinancials) float64 { return y.DebtOutstanding })},
	{"Total assets", dollars(func(y calc.YearlyFinancials) float64 { return y.TotalAssets })},
	{"Total equity", dollars(func(y calc.YearlyFinancials) float64 { return y.TotalEquity })},
}

// ratioYear pairs a common-size row with its fiscal year
type ratioYear struct {
	FiscalYear int
	calc.CommonSize
}

func ratioYears(years []calc.YearlyFinancials) []ratioYear {
	out := make([]ratioYear, len(years))
	for i, cs := range calc.CommonSizeSeries(years) {
		out[i] = ratioYear{FiscalYear: years[i].FiscalYear, CommonSize: cs}
	}
	return out
}

func ratio(pick func(calc.CommonSize) float64, asMultiple bool) func(ratioYear) string {
	return func(r ratioYear) string {
		v := pick(r.CommonSize)
		if asMultiple {
			return Multiple(v)
		}
		return Percent(v, 1)
	}
}

var ratioLines = []line[ratioYear]{
	{"Rooms share of revenue", ratio(func(c calc.CommonSize) float64 { return c.RoomsShare }, false)},
	{"Rooms cost", ratio(func(c calc.CommonSize) float64 { return c.RoomsCost }, false)},
	{"F&B cost", ratio(func(c calc.CommonSize) float64 { return c.FBCost }, false)},
	{"Undistributed", ratio(func(c calc.CommonSize) float64 { return c.Undist }, false)},
	{"GOP margin", ratio(func(c calc.CommonSize) float64 { return c.GOPMargin }, false)},
	{"Fee load", ratio(func(c calc.CommonSize) float64 { return c.FeeLoad }, false)},
	{"NOI margin", ratio(func(c calc.CommonSize) float64 { return c.NOIMargin }, false)},
	{"DSCR", ratio(func(c calc.CommonSize) float64 { return c.DSCR }, true)},
	{"Debt yield", ratio(func(c calc.CommonSize) float64 { return c.DebtYield }, false)},
}

var cashFlowLines = []line[valuation.CashFlowYearly]{
	{"NOI", func(c valuation.CashFlowYearly) string { return Money(c.NOI) }},
	{"Debt service", func(c valuation.CashFlowYearly) string { return Money(c.DebtService) }},
	{"BTCF", func(c valuation.CashFlowYearly) string { return Money(c.BTCF) }},
	{"Income tax", func(c valuation.CashFlowYearly) string { return Money(c.IncomeTax) }},
	{"ATCF", func(c valuation.CashFlowYearly) string { return Money(c.ATCF) }},
	{"Refinancing proceeds", func(c valuation.CashFlowYearly) string { return Money(c.RefinancingProceeds) }},
	{"Equity invested", func(c valuation.CashFlowYearly) string { return Money(-c.EquityInvestment) }},
	{"Exit value", func(c valuation.CashFlowYearly) string { return Money(c.ExitValue) }},
	{"Net cash flow", func(c valuation.CashFlowYearly) string { return Money(c.NetCashFlow) }},
	{"Cumulative", func(c valuation.CashFlowYearly) string { return Money(c.CumulativeCashFlow) }},
}

func breakEven(pick func(calc.BreakEven) float64) func(calc.BreakEven) string {
	return func(b calc.BreakEven) string {
		if !b.Defined {
			return "n/a"
		}
		return Percent(pick(b), 1)
	}
}

var breakEvenLines = []line[calc.BreakEven]{
	{"Occupancy", breakEven(func(b calc.BreakEven) float64 { return b.Occupancy })},
	{"Operating break-even", breakEven(func(b calc.BreakEven) float64 { return b.OperatingOccupancy })},
	{"Cash-flow break-even", breakEven(func(b calc.BreakEven) float64 { return b.CashFlowOccupancy })},
	{"Occupancy cushion", breakEven(func(b calc.BreakEven) float64 { return b.OccupancyCushion })},
	{"Break-even RevPAR", func(b calc.BreakEven) string { return Money(b.CashFlowRevPAR) }},
	{"ADR down 10%", breakEven(func(b calc.BreakEven) float64 { return b.ADRDown })},
	{"Fixed costs up 10%", breakEven(func(b calc.BreakEven) float64 { return b.FixedCostsUp })},
}

var holdSellLines = []line[valuation.HoldSellDecision]{
	{"Market value", func(h valuation.HoldSellDecision) string { return Money(h.MarketValue) }},
	{"Sale taxes", func(h valuation.HoldSellDecision) string { return Money(h.CapitalGainsTax + h.RecaptureTax) }},
	{"Sell proceeds", func(h valuation.HoldSellDecision) string { return Money(h.SellProceeds) }},
	{"Hold value", func(h valuation.HoldSellDecision) string { return Money(h.HoldNPV) }},
	{"Hold advantage", func(h valuation.HoldSellDecision) string { return Money(h.Advantage) }},
	{"Recommendation", func(h valuation.HoldSellDecision) string { return h.Recommendation }},
}

var companyLines = []line[calc.CompanyYearly]{
	{"Base fees", func(c calc.CompanyYearly) string { return Money(c.BaseFeeRevenue) }},
	{"Incentive fees", func(c calc.CompanyYearly) string { return Money(c.IncentiveFeeRevenue) }},
	{"Total revenue", func(c calc.CompanyYearly) string { return Money(c.TotalRevenue) }},
	{"Total expenses", func(c calc.CompanyYearly) string { return Money(c.TotalExpenses) }},
	{"Net income", func(c calc.CompanyYearly) string { return Money(c.NetIncome) }},
	{"SAFE funding", func(c calc.CompanyYearly) string { return Money(c.SafeFunding) }},
	{"Ending cash", func(c calc.CompanyYearly) string { return Money(c.EndingCash) }},
}

func yearlyFY(y calc.YearlyFinancials) int        { return y.FiscalYear }
func ratioFY(r ratioYear) int                     { return r.FiscalYear }
func cashFlowFY(c valuation.CashFlowYearly) int   { return c.FiscalYear }
func companyFY(c calc.CompanyYearly) int          { return c.FiscalYear }
func breakEvenFY(b calc.BreakEven) int            { return b.FiscalYear }
func holdSellFY(h valuation.HoldSellDecision) int { return h.FiscalYear }

func returnsRowFor(name string, s valuation.ReturnsSummary) returnsRow {
	return returnsRow{
		Name:           name,
		Equity:         Money(s.InitialEquity),
		Distributions:  Money(s.TotalDistributions),
		ExitValue:      Money(s.ExitValue),
		EquityMultiple: Multiple(s.EquityMultiple),
		CashOnCash:     Percent(s.CashOnCash, 1),
		IRR:            Rate(s.IRR),
	}
}

// investorTable lays out the discounted value and the LP/GP split
func investorTable(res *pipeline.Result) table {
	d := res.Distribution
	t := table{Header: []string{"", "Amount"}}
	add := func(label, value string) { t.Rows = append(t.Rows, []string{label, value}) }

	add(fmt.Sprintf("NPV at %s", Percent(res.Discounted.Rate, 1)), Money(res.Discounted.NPV))
	add("Return of capital", Money(d.ReturnOfCapital))
	add("Preferred return", Money(d.PreferredReturn))
	if d.PreferredShortfall > 0 {
		add("Preferred shortfall", Money(d.PreferredShortfall))
	}
	if d.CatchUp > 0 {
		add("GP catch-up", Money(d.CatchUp))
	}
	for _, tier := range d.Tiers {
		add(fmt.Sprintf("%s (%s LP / %s GP)", tier.Label, Percent(tier.LPSplit, 0), Percent(tier.GPSplit, 0)), Money(tier.Amount))
	}
	add("To limited partners", Money(d.ToLP))
	add("To general partner", Money(d.ToGP))
	add("LP multiple", Multiple(d.LPMultiple))
	add("GP multiple", Multiple(d.GPMultiple))
	return t
}

func groupFindings(findings []validate.Finding) []findingGroup {
	byKind := validate.ByKind(findings)
	out := make([]findingGroup, 0, len(byKind))
	kinds := make([]validate.Kind, 0, len(byKind))
	for kind := range byKind {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)
	for _, kind := range kinds {
		g := findingGroup{Kind: kind}
		for _, f := range byKind[kind] {
			g.Items = append(g.Items, f.String())
		}
		out = append(out, g)
	}
	return out
}

func buildView(res *pipeline.Result, opts Options) reportView {
	v := reportView{
		Title:     opts.Title,
		RunID:     res.RunID,
		Generated: res.CreatedAt.UTC().Format(time.RFC3339),
	}
	if v.Title == "" {
		v.Title = res.Scenario
	}

	for _, pr := range res.Properties {
		v.Returns = append(v.Returns, returnsRowFor(pr.Name, pr.Returns))
	}
	v.Returns = append(v.Returns, returnsRowFor("Portfolio", res.Returns))
	v.Investors = investorTable(res)

	v.Portfolio = buildTable(res.PortfolioYearly, yearlyFY, statementLines)
	v.Ratios = buildTable(ratioYears(res.PortfolioYearly), ratioFY, ratioLines)
	v.CashFlows = buildTable(res.PortfolioCashFlows, cashFlowFY, cashFlowLines)
	v.Company = buildTable(res.CompanyYearly, companyFY, companyLines)

	if !opts.SkipProperties {
		for _, pr := range res.Properties {
			p := pr.Projection.Property
			v.Properties = append(v.Properties, propertyView{
				ID:        pr.ID,
				Name:      pr.Name,
				Rooms:     p.RoomCount,
				Financing: string(p.Financing),
				Statement: buildTable(pr.Yearly, yearlyFY, statementLines),
				CashFlows: buildTable(pr.CashFlows, cashFlowFY, cashFlowLines),
				BreakEven: buildTable(pr.BreakEven, breakEvenFY, breakEvenLines),
				HoldSell:  buildTable(pr.HoldSell, holdSellFY, holdSellLines),
			})
		}
	}

	for _, rj := range res.Rejected {
		rv := rejectedView{ID: rj.PropertyID}
		for _, e := range rj.Errors {
			rv.Errors = append(rv.Errors, e.Error())
		}
		v.Rejected = append(v.Rejected, rv)
	}

	if !opts.SkipFindings {
		v.Findings = groupFindings(res.Findings)
	}
	return v
}
