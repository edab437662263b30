// Package store persists scenarios and run results.
package store

import (
	"context"
	"errors"
	"time"

	"hospitality_proforma/pkg/core/pipeline"
	"hospitality_proforma/pkg/core/scenario"
)

// ErrNotFound is returned when a scenario or run does not exist
var ErrNotFound = errors.New("not found")

// Repository is implemented by the PostgreSQL and file backends
type Repository interface {
	SaveScenario(ctx context.Context, s *scenario.Scenario) (string, error)
	LoadScenario(ctx context.Context, id string) (*scenario.Scenario, error)
	SaveRun(ctx context.Context, r *pipeline.Result) error
	LoadRun(ctx context.Context, runID string) (*pipeline.Result, error)
	ListRuns(ctx context.Context, limit int) ([]RunSummary, error)
	Close()
}

// RunSummary is the listing view of a stored run
type RunSummary struct {
	RunID          string    `json:"run_id"`
	Scenario       string    `json:"scenario"`
	Fingerprint    string    `json:"fingerprint"`
	CreatedAt      time.Time `json:"created_at"`
	Properties     int       `json:"properties"`
	Rejected       int       `json:"rejected"`
	Findings       int       `json:"findings"`
	IRR            *float64  `json:"irr"`
	EquityMultiple float64   `json:"equity_multiple"`
}

// Summarize builds the listing view of a result
func Summarize(r *pipeline.Result) RunSummary {
	return RunSummary{
		RunID:          r.RunID,
		Scenario:       r.Scenario,
		Fingerprint:    r.Fingerprint,
		CreatedAt:      r.CreatedAt,
		Properties:     len(r.Properties),
		Rejected:       len(r.Rejected),
		Findings:       len(r.Findings),
		IRR:            r.Returns.IRR,
		EquityMultiple: r.Returns.EquityMultiple,
	}
}
