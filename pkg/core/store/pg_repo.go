package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hospitality_proforma/pkg/core/pipeline"
	"hospitality_proforma/pkg/core/scenario"
)

const schema = `
	CREATE TABLE IF NOT EXISTS proforma_scenarios (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		fingerprint   TEXT NOT NULL,
		scenario_json JSONB NOT NULL,
		saved_at      TIMESTAMPTZ NOT NULL
	);
	CREATE TABLE IF NOT EXISTS proforma_runs (
		run_id       TEXT PRIMARY KEY,
		scenario     TEXT NOT NULL,
		fingerprint  TEXT NOT NULL,
		summary_json JSONB NOT NULL,
		result_json  JSONB NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS proforma_runs_created_at_idx ON proforma_runs (created_at DESC);
`

// PGRepository stores scenarios and runs as JSONB documents
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewPGRepository wraps an open pool
func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// EnsureSchema creates the tables when missing
func (r *PGRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SaveScenario inserts a scenario under a new ID
func (r *PGRepository) SaveScenario(ctx context.Context, s *scenario.Scenario) (string, error) {
	fingerprint, err := s.Fingerprint()
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to marshal scenario: %w", err)
	}
	id := uuid.NewString()
	query := `
		INSERT INTO proforma_scenarios (id, name, fingerprint, scenario_json, saved_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.pool.Exec(ctx, query, id, s.Name, fingerprint, data, time.Now().UTC()); err != nil {
		return "", fmt.Errorf("failed to save scenario: %w", err)
	}
	return id, nil
}

// LoadScenario reads a scenario by ID
func (r *PGRepository) LoadScenario(ctx context.Context, id string) (*scenario.Scenario, error) {
	var data []byte
	err := r.pool.QueryRow(ctx, `SELECT scenario_json FROM proforma_scenarios WHERE id = $1`, id).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("scenario %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load scenario: %w", err)
	}
	var s scenario.Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scenario: %w", err)
	}
	return &s, nil
}

// SaveRun upserts a run by its ID
func (r *PGRepository) SaveRun(ctx context.Context, res *pipeline.Result) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}
	summary, err := json.Marshal(Summarize(res))
	if err != nil {
		return fmt.Errorf("failed to marshal run summary: %w", err)
	}
	query := `
		INSERT INTO proforma_runs (run_id, scenario, fingerprint, summary_json, result_json, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (run_id)
		DO UPDATE SET
			summary_json = EXCLUDED.summary_json,
			result_json = EXCLUDED.result_json;
	`
	if _, err := r.pool.Exec(ctx, query, res.RunID, res.Scenario, res.Fingerprint, summary, data, res.CreatedAt); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// LoadRun reads a full run by ID
func (r *PGRepository) LoadRun(ctx context.Context, runID string) (*pipeline.Result, error) {
	var data []byte
	err := r.pool.QueryRow(ctx, `SELECT result_json FROM proforma_runs WHERE run_id = $1`, runID).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("run %s: %w", runID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load run: %w", err)
	}
	var res pipeline.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run: %w", err)
	}
	return &res, nil
}

// ListRuns returns the newest runs first
func (r *PGRepository) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `SELECT summary_json FROM proforma_runs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		var s RunSummary
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to unmarshal run summary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Close releases the pool
func (r *PGRepository) Close() {
	r.pool.Close()
}
