package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"hospitality_proforma/pkg/core/report"
	"hospitality_proforma/pkg/core/scenario"
	"hospitality_proforma/pkg/core/store"
)

// saveCmd persists a scenario and its run
type saveCmd struct {
	scenarioFile string
}

func (*saveCmd) Name() string     { return "save" }
func (*saveCmd) Synopsis() string { return "store a scenario and its run" }
func (*saveCmd) Usage() string {
	return `proforma save -scenario <file>

  Stores the scenario and the result of running it. Uses PostgreSQL when
  DATABASE_URL is set, JSON files under PROFORMA_CACHE_DIR otherwise.
`
}

func (c *saveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.scenarioFile, "scenario", "", "Scenario file (.yaml, .yml, .hjson or .json)")
}

func (c *saveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.scenarioFile == "" {
		fmt.Fprintln(os.Stderr, "Error: missing -scenario")
		return subcommands.ExitUsageError
	}
	s, err := scenario.Load(c.scenarioFile)
	if err != nil {
		return exit(err)
	}
	res, err := newEngine().Run(ctx, s)
	if err != nil {
		return exit(err)
	}
	warnRejected(res)

	repo, err := store.Open(ctx)
	if err != nil {
		return exit(err)
	}
	defer repo.Close()

	scenarioID, err := repo.SaveScenario(ctx, s)
	if err != nil {
		return exit(err)
	}
	if err := repo.SaveRun(ctx, res); err != nil {
		return exit(err)
	}
	fmt.Fprintf(stdout, "scenario %s\nrun      %s\n", scenarioID, res.RunID)
	return subcommands.ExitSuccess
}

// showCmd renders a stored run
type showCmd struct {
	runID string
	html  bool
	plain bool
	out   string
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "render a stored run" }
func (*showCmd) Usage() string {
	return `proforma show -run <id> [-html] [-plain] [-out <file>]
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.runID, "run", "", "Run ID, as printed by save or runs")
	f.BoolVar(&c.html, "html", false, "Render a standalone HTML page")
	f.BoolVar(&c.plain, "plain", false, "Print raw Markdown")
	f.StringVar(&c.out, "out", "", "Output file for -html or -plain. Defaults to stdout.")
}

func (c *showCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.runID == "" {
		fmt.Fprintln(os.Stderr, "Error: missing -run")
		return subcommands.ExitUsageError
	}
	repo, err := store.Open(ctx)
	if err != nil {
		return exit(err)
	}
	defer repo.Close()

	res, err := repo.LoadRun(ctx, c.runID)
	if err != nil {
		return exit(err)
	}
	return renderResult(res, report.Options{}, c.html, c.plain, c.out)
}

// runsCmd lists stored runs
type runsCmd struct {
	limit int
}

func (*runsCmd) Name() string     { return "runs" }
func (*runsCmd) Synopsis() string { return "list stored runs, newest first" }
func (*runsCmd) Usage() string {
	return `proforma runs [-n 20]
`
}

func (c *runsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 20, "Maximum number of runs to list")
}

func (c *runsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	repo, err := store.Open(ctx)
	if err != nil {
		return exit(err)
	}
	defer repo.Close()

	runs, err := repo.ListRuns(ctx, c.limit)
	if err != nil {
		return exit(err)
	}

	var b strings.Builder
	b.WriteString("| Run | Scenario | Created | Properties | Rejected | Findings | IRR | Multiple |\n")
	b.WriteString("|---|---|---|---:|---:|---:|---:|---:|\n")
	for _, r := range runs {
		fmt.Fprintf(&b, "| %s | %s | %s | %d | %d | %d | %s | %s |\n",
			r.RunID, r.Scenario, r.CreatedAt.Format("2006-01-02 15:04"),
			r.Properties, r.Rejected, r.Findings,
			report.Rate(r.IRR), report.Multiple(r.EquityMultiple))
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
