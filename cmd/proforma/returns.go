package main

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"hospitality_proforma/pkg/core/report"
)

type returnsCmd struct {
	scenarioFile string
	plain        bool
}

func (*returnsCmd) Name() string     { return "returns" }
func (*returnsCmd) Synopsis() string { return "display IRR, equity multiple and cash-on-cash" }
func (*returnsCmd) Usage() string {
	return `proforma returns -scenario <file> [-plain]

  Displays investor returns per property and for the portfolio.
`
}

func (c *returnsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.scenarioFile, "scenario", "", "Scenario file (.yaml, .yml, .hjson or .json)")
	f.BoolVar(&c.plain, "plain", false, "Print raw Markdown")
}

func (c *returnsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	res, err := runScenario(ctx, c.scenarioFile)
	if err != nil {
		reportError(err)
		return subcommands.ExitFailure
	}
	warnRejected(res)

	md, err := report.ReturnsMarkdown(res)
	if err != nil {
		reportError(err)
		return subcommands.ExitFailure
	}
	if c.plain {
		return exit(writeOutput("", []byte(md)))
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

func exit(err error) subcommands.ExitStatus {
	if err != nil {
		reportError(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
