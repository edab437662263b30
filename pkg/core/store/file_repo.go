package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"hospitality_proforma/pkg/core/pipeline"
	"hospitality_proforma/pkg/core/scenario"
)

// FileRepository keeps scenarios and runs as JSON files:
//
//	<dir>/scenarios/<id>.json
//	<dir>/runs/<run_id>.json
//	<dir>/runs/<run_id>.summary.json
type FileRepository struct {
	dir string
}

// NewFileRepository creates the directory layout when missing
func NewFileRepository(dir string) (*FileRepository, error) {
	for _, sub := range []string{"scenarios", "runs"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create cache dir: %w", err)
		}
	}
	return &FileRepository{dir: dir}, nil
}

// Dir is the repository root
func (r *FileRepository) Dir() string { return r.dir }

func (r *FileRepository) path(kind, name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid id %q: %w", name, ErrNotFound)
	}
	return filepath.Join(r.dir, kind, name+".json"), nil
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return os.Rename(tmp, path)
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", strings.TrimSuffix(filepath.Base(path), ".json"), ErrNotFound)
		}
		return fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", filepath.Base(path), err)
	}
	return nil
}

// SaveScenario writes a scenario under a new ID
func (r *FileRepository) SaveScenario(_ context.Context, s *scenario.Scenario) (string, error) {
	id := uuid.NewString()
	path, err := r.path("scenarios", id)
	if err != nil {
		return "", err
	}
	return id, writeJSON(path, s)
}

// LoadScenario reads a scenario by ID
func (r *FileRepository) LoadScenario(_ context.Context, id string) (*scenario.Scenario, error) {
	path, err := r.path("scenarios", id)
	if err != nil {
		return nil, err
	}
	var s scenario.Scenario
	if err := readJSON(path, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SaveRun writes the result and its summary, replacing an earlier copy
func (r *FileRepository) SaveRun(_ context.Context, res *pipeline.Result) error {
	path, err := r.path("runs", res.RunID)
	if err != nil {
		return err
	}
	if err := writeJSON(path, res); err != nil {
		return err
	}
	summaryPath, _ := r.path("runs", res.RunID+".summary")
	return writeJSON(summaryPath, Summarize(res))
}

// LoadRun reads a full run by ID
func (r *FileRepository) LoadRun(_ context.Context, runID string) (*pipeline.Result, error) {
	path, err := r.path("runs", runID)
	if err != nil {
		return nil, err
	}
	var res pipeline.Result
	if err := readJSON(path, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ListRuns returns the newest runs first
func (r *FileRepository) ListRuns(_ context.Context, limit int) ([]RunSummary, error) {
	matches, err := filepath.Glob(filepath.Join(r.dir, "runs", "*.summary.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	out := make([]RunSummary, 0, len(matches))
	for _, m := range matches {
		var s RunSummary
		if err := readJSON(m, &s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Close is a no-op for files
func (r *FileRepository) Close() {}
