package main

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
)

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })
	return &buf
}

func execute(t *testing.T, cmd subcommands.Command) subcommands.ExitStatus {
	t.Helper()
	return cmd.Execute(context.Background(), flag.NewFlagSet(cmd.Name(), flag.ContinueOnError))
}

func TestInitThenReturns(t *testing.T) {
	for _, name := range []string{"scenario.yaml", "scenario.json"} {
		t.Run(name, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), name)
			if status := execute(t, &initCmd{out: file}); status != subcommands.ExitSuccess {
				t.Fatalf("init failed with %v", status)
			}
			if status := execute(t, &initCmd{out: file}); status != subcommands.ExitFailure {
				t.Errorf("expected init to refuse overwriting, got %v", status)
			}

			out := captureStdout(t)
			if status := execute(t, &returnsCmd{scenarioFile: file, plain: true}); status != subcommands.ExitSuccess {
				t.Fatalf("returns failed with %v", status)
			}
			for _, want := range []string{"| Harbor Inn |", "| Ridge Lodge |", "| Portfolio |"} {
				if !strings.Contains(out.String(), want) {
					t.Errorf("expected %q in output:\n%s", want, out.String())
				}
			}
		})
	}
}

func TestReport_HTML(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "scenario.json")
	if status := execute(t, &initCmd{out: file}); status != subcommands.ExitSuccess {
		t.Fatalf("init failed with %v", status)
	}

	page := filepath.Join(dir, "report.html")
	if status := execute(t, &reportCmd{scenarioFile: file, html: true, out: page}); status != subcommands.ExitSuccess {
		t.Fatalf("report failed with %v", status)
	}
	data, err := os.ReadFile(page)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<table>") || !strings.Contains(string(data), "<title>example</title>") {
		t.Errorf("expected an HTML page with tables")
	}
}

func TestSaveThenShow(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PROFORMA_CACHE_DIR", filepath.Join(dir, "cache"))

	file := filepath.Join(dir, "scenario.json")
	if status := execute(t, &initCmd{out: file}); status != subcommands.ExitSuccess {
		t.Fatalf("init failed with %v", status)
	}

	out := captureStdout(t)
	if status := execute(t, &saveCmd{scenarioFile: file}); status != subcommands.ExitSuccess {
		t.Fatalf("save failed with %v", status)
	}
	var runID string
	for _, line := range strings.Split(out.String(), "\n") {
		if fields := strings.Fields(line); len(fields) == 2 && fields[0] == "run" {
			runID = fields[1]
		}
	}
	if runID == "" {
		t.Fatalf("expected a run id in %q", out.String())
	}

	out.Reset()
	if status := execute(t, &showCmd{runID: runID, plain: true}); status != subcommands.ExitSuccess {
		t.Fatalf("show failed with %v", status)
	}
	if !strings.Contains(out.String(), runID) {
		t.Errorf("expected the stored run in the report")
	}

	if status := execute(t, &showCmd{runID: "missing", plain: true}); status != subcommands.ExitFailure {
		t.Errorf("expected failure for an unknown run, got %v", status)
	}
}

func TestRun_MissingScenario(t *testing.T) {
	if status := execute(t, &runCmd{}); status != subcommands.ExitFailure {
		t.Errorf("expected failure without -scenario, got %v", status)
	}
}
