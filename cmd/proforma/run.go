package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"hospitality_proforma/pkg/core/store"
)

type runCmd struct {
	scenarioFile string
	out          string
	save         bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "project a scenario and write the full result as JSON" }
func (*runCmd) Usage() string {
	return `proforma run -scenario <file> [-out <file>] [-save]

  Projects every property month by month and writes the monthly, yearly,
  portfolio, company, cash-flow and returns series as JSON.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.scenarioFile, "scenario", "", "Scenario file (.yaml, .yml, .hjson or .json)")
	f.StringVar(&c.out, "out", "", "Output file. Defaults to stdout.")
	f.BoolVar(&c.save, "save", false, "Also persist the run to the store")
}

func (c *runCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	res, err := runScenario(ctx, c.scenarioFile)
	if err != nil {
		reportError(err)
		return subcommands.ExitFailure
	}
	warnRejected(res)

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		reportError(err)
		return subcommands.ExitFailure
	}
	if err := writeOutput(c.out, data); err != nil {
		reportError(err)
		return subcommands.ExitFailure
	}

	if c.save {
		repo, err := store.Open(ctx)
		if err != nil {
			reportError(err)
			return subcommands.ExitFailure
		}
		defer repo.Close()
		if err := repo.SaveRun(ctx, res); err != nil {
			reportError(err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "saved run %s\n", res.RunID)
	}
	return subcommands.ExitSuccess
}
