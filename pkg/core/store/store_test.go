package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hospitality_proforma/pkg/core/pipeline"
	"hospitality_proforma/pkg/core/scenario"
)

func runExample(t *testing.T) *pipeline.Result {
	t.Helper()
	res, err := pipeline.NewEngine(pipeline.WithLogger(zap.NewNop().Sugar())).Run(context.Background(), scenario.Example())
	require.NoError(t, err)
	return res
}

func TestFileRepository_Scenario(t *testing.T) {
	ctx := context.Background()
	repo, err := NewFileRepository(t.TempDir())
	require.NoError(t, err)

	s := scenario.Example()
	id, err := repo.SaveScenario(ctx, s)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	loaded, err := repo.LoadScenario(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)

	_, err = repo.LoadScenario(ctx, "missing")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = repo.LoadScenario(ctx, "../escape")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestFileRepository_Runs(t *testing.T) {
	ctx := context.Background()
	repo, err := NewFileRepository(t.TempDir())
	require.NoError(t, err)

	first := runExample(t)
	second := runExample(t)
	second.CreatedAt = first.CreatedAt.Add(time.Minute)
	require.NoError(t, repo.SaveRun(ctx, first))
	require.NoError(t, repo.SaveRun(ctx, second))

	loaded, err := repo.LoadRun(ctx, first.RunID)
	require.NoError(t, err)
	assert.Equal(t, first.RunID, loaded.RunID)
	assert.Equal(t, first.Fingerprint, loaded.Fingerprint)
	require.Len(t, loaded.Properties, len(first.Properties))
	assert.InDelta(t, first.Properties[0].Yearly[3].NOI, loaded.Properties[0].Yearly[3].NOI, 1e-6)
	require.NotNil(t, loaded.Returns.IRR)
	assert.InDelta(t, *first.Returns.IRR, *loaded.Returns.IRR, 1e-12)

	runs, err := repo.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second.RunID, runs[0].RunID, "newest first")
	assert.Equal(t, 2, runs[1].Properties)

	limited, err := repo.ListRuns(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	_, err = repo.LoadRun(ctx, "nope")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestOpen_FallsBackToFiles(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PROFORMA_CACHE_DIR", dir)

	repo, err := Open(context.Background())
	require.NoError(t, err)
	defer repo.Close()

	fr, ok := repo.(*FileRepository)
	require.True(t, ok, "expected the file backend")
	assert.Equal(t, dir, fr.Dir())
}

func TestSummarize(t *testing.T) {
	res := runExample(t)
	s := Summarize(res)
	assert.Equal(t, res.RunID, s.RunID)
	assert.Equal(t, len(res.Findings), s.Findings)
	assert.Equal(t, res.Returns.EquityMultiple, s.EquityMultiple)
}
