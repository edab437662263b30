// Package pipeline runs a scenario end to end: resolve assumptions, project
// every property, build the management company, aggregate, value and check.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"hospitality_proforma/pkg/core/assumption"
	"hospitality_proforma/pkg/core/calc"
	"hospitality_proforma/pkg/core/logger"
	"hospitality_proforma/pkg/core/projection"
	"hospitality_proforma/pkg/core/scenario"
	"hospitality_proforma/pkg/core/validate"
	"hospitality_proforma/pkg/core/valuation"
)

// PropertyResult is everything computed for one accepted property
type PropertyResult struct {
	ID         string                         `json:"id"`
	Name       string                         `json:"name"`
	Projection *projection.PropertyProjection `json:"projection"`
	Yearly     []calc.YearlyFinancials        `json:"yearly"`
	CashFlows  []valuation.CashFlowYearly     `json:"cash_flows"`
	Exit       valuation.ExitValuation        `json:"exit"`
	Returns    valuation.ReturnsSummary       `json:"returns"`
	Discounted valuation.DiscountedCashFlow   `json:"discounted"`
	BreakEven  []calc.BreakEven               `json:"break_even"`
	HoldSell   []valuation.HoldSellDecision   `json:"hold_sell,omitempty"`
	Findings   []validate.Finding             `json:"findings,omitempty"`
}

// Rejection is a property excluded from the run by configuration errors
type Rejection struct {
	PropertyID string                  `json:"property_id"`
	Name       string                  `json:"name,omitempty"`
	Errors     assumption.ConfigErrors `json:"errors"`
}

// Result is one scenario run. It is never modified after Run returns.
type Result struct {
	RunID       string    `json:"run_id"`
	Scenario    string    `json:"scenario"`
	Fingerprint string    `json:"fingerprint"`
	CreatedAt   time.Time `json:"created_at"`

	Properties []PropertyResult `json:"properties"`
	Rejected   []Rejection      `json:"rejected,omitempty"`

	PortfolioMonths    []projection.MonthlyFinancials `json:"portfolio_months"`
	PortfolioYearly    []calc.YearlyFinancials        `json:"portfolio_yearly"`
	PortfolioCashFlows []valuation.CashFlowYearly     `json:"portfolio_cash_flows"`
	Returns            valuation.ReturnsSummary       `json:"returns"`
	Discounted         valuation.DiscountedCashFlow   `json:"discounted"`
	Distribution       valuation.Distribution         `json:"distribution"`

	Company       []projection.CompanyMonthly `json:"company"`
	CompanyYearly []calc.CompanyYearly        `json:"company_yearly"`

	Findings []validate.Finding `json:"findings,omitempty"`
}

// Property returns the result for one accepted property
func (r *Result) Property(id string) (*PropertyResult, bool) {
	for i := range r.Properties {
		if r.Properties[i].ID == id {
			return &r.Properties[i], true
		}
	}
	return nil, false
}

// Engine orchestrates scenario runs. It is safe for concurrent use.
type Engine struct {
	resolver    *assumption.Resolver
	log         *zap.SugaredLogger
	parallelism int
	memoize     bool

	mu    sync.Mutex
	cache map[string]*Result
}

// Option configures an Engine
type Option func(*Engine)

// WithDefaults replaces the standard default tier
func WithDefaults(d assumption.DefaultAssumptions) Option {
	return func(e *Engine) { e.resolver = assumption.NewResolver(d) }
}

// WithMemoization caches results by scenario fingerprint
func WithMemoization() Option {
	return func(e *Engine) { e.memoize = true }
}

// WithParallelism bounds the number of properties projected at once
func WithParallelism(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.parallelism = n
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.SugaredLogger) Option {
	return func(e *Engine) { e.log = l }
}

// NewEngine creates an engine with the standard defaults
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		resolver:    assumption.NewResolver(assumption.Defaults()),
		parallelism: runtime.GOMAXPROCS(0),
		cache:       make(map[string]*Result),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = logger.Named("pipeline")
	}
	return e
}

// Run executes the scenario. A global configuration error aborts the run and
// is returned as assumption.ConfigErrors; property configuration errors only
// exclude that property and are listed in Result.Rejected.
func (e *Engine) Run(ctx context.Context, s *scenario.Scenario) (*Result, error) {
	if s == nil {
		return nil, errors.New("nil scenario")
	}
	fingerprint, err := s.Fingerprint()
	if err != nil {
		return nil, err
	}
	if e.memoize {
		if cached := e.cached(fingerprint); cached != nil {
			e.log.Debugw("[PIPELINE] cache hit", "scenario", s.Name, "run_id", cached.RunID)
			return cached, nil
		}
	}
	start := time.Now()

	// 1. Global assumptions
	global, err := e.resolver.ResolveGlobal(&s.Global)
	if err != nil {
		e.log.Warnw("[PIPELINE] global assumptions rejected", "scenario", s.Name, "error", err)
		return nil, err
	}
	engine := projection.NewEngine(global)

	res := &Result{
		RunID:       uuid.NewString(),
		Scenario:    s.Name,
		Fingerprint: fingerprint,
		CreatedAt:   time.Now().UTC(),
	}

	// 2. Property assumptions, each isolated from the others
	resolved, rejected := e.resolveProperties(s)
	res.Rejected = rejected
	for _, rj := range rejected {
		e.log.Warnw("[PIPELINE] property rejected", "scenario", s.Name, "property", rj.PropertyID, "error", rj.Errors.Error())
	}

	// 3. Monthly projections, parallel across properties
	projections := make([]*projection.PropertyProjection, len(resolved))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism)
	for i, p := range resolved {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			projections[i] = engine.ProjectProperty(p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("project properties: %w", err)
	}

	// 4. Yearly statements, waterfalls, investor analyses and property checks
	terms := global.Investment
	res.Properties = make([]PropertyResult, len(projections))
	yearly := make([][]calc.YearlyFinancials, len(projections))
	var flows [][]valuation.CashFlowYearly
	for i, pp := range projections {
		years := calc.AggregateYears(pp.Months, global)
		cf, exit := valuation.BuildCashFlows(pp, years)
		returns := valuation.Summarize([][]valuation.CashFlowYearly{cf})
		pr := PropertyResult{
			ID:         pp.Property.ID,
			Name:       pp.Property.Name,
			Projection: pp,
			Yearly:     years,
			CashFlows:  cf,
			Exit:       exit,
			Returns:    returns,
			Discounted: valuation.Discount(returns.CashFlows, terms.DiscountRate, returns.IRR),
			BreakEven:  calc.BreakEvenSeries(years),
			HoldSell:   valuation.HoldVsSell(pp, years, cf, terms),
			Findings:   validate.CheckProperty(pp, exit),
		}
		res.Properties[i] = pr
		yearly[i] = years
		if pp.AcquiredInHorizon() {
			flows = append(flows, cf)
		} else {
			e.log.Warnw("[PIPELINE] property acquired after the horizon, excluded from portfolio returns",
				"scenario", s.Name, "property", pp.Property.ID)
		}
		res.Findings = append(res.Findings, pr.Findings...)
	}

	// 5. Management company
	res.Company = engine.ProjectCompany(projections)
	res.CompanyYearly = calc.AggregateCompanyYears(res.Company, global)
	res.Findings = append(res.Findings, validate.CheckCompany(projections, res.Company)...)

	// 6. Portfolio
	months := make([][]projection.MonthlyFinancials, len(projections))
	for i, pp := range projections {
		months[i] = pp.Months
	}
	res.PortfolioMonths = calc.ConsolidateMonths(months)
	res.PortfolioYearly = calc.Consolidate(yearly)
	res.PortfolioCashFlows = valuation.ConsolidateCashFlows(flows)
	res.Returns = valuation.Summarize(flows)
	res.Discounted = valuation.Discount(res.Returns.CashFlows, terms.DiscountRate, res.Returns.IRR)
	res.Distribution = valuation.Distribute(res.Returns, terms)

	e.log.Infow("[PIPELINE] run complete",
		"scenario", s.Name,
		"run_id", res.RunID,
		"properties", len(res.Properties),
		"rejected", len(res.Rejected),
		"findings", len(res.Findings),
		"elapsed", time.Since(start),
	)

	if e.memoize {
		e.store(fingerprint, res)
	}
	return res, nil
}

// resolveProperties splits the scenario into resolved and rejected
// properties, keeping input order. A repeated ID is rejected.
func (e *Engine) resolveProperties(s *scenario.Scenario) ([]*assumption.ResolvedProperty, []Rejection) {
	var resolved []*assumption.ResolvedProperty
	var rejected []Rejection
	seen := make(map[string]bool)

	for i := range s.Properties {
		p := &s.Properties[i]
		if p.ID != "" && seen[p.ID] {
			rejected = append(rejected, Rejection{
				PropertyID: p.ID,
				Name:       p.Name,
				Errors:     assumption.ConfigErrors{{PropertyID: p.ID, Field: "id", Value: p.ID, Reason: "is used by another property"}},
			})
			continue
		}
		seen[p.ID] = true

		rp, err := e.resolver.ResolveProperty(p, &s.Global)
		if err != nil {
			rejected = append(rejected, Rejection{PropertyID: p.ID, Name: p.Name, Errors: asConfigErrors(p.ID, err)})
			continue
		}
		resolved = append(resolved, rp)
	}
	return resolved, rejected
}

func asConfigErrors(propertyID string, err error) assumption.ConfigErrors {
	var ces assumption.ConfigErrors
	if errors.As(err, &ces) {
		return ces
	}
	var ce assumption.ConfigError
	if errors.As(err, &ce) {
		return assumption.ConfigErrors{ce}
	}
	return assumption.ConfigErrors{{PropertyID: propertyID, Reason: err.Error()}}
}

func (e *Engine) cached(fingerprint string) *Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cache[fingerprint]
}

func (e *Engine) store(fingerprint string, r *Result) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache[fingerprint] = r
}
