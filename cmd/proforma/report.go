package main

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"hospitality_proforma/pkg/core/pipeline"
	"hospitality_proforma/pkg/core/report"
)

type reportCmd struct {
	scenarioFile string
	out          string
	html         bool
	plain        bool
	opts         report.Options
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "render statements, cash flows and returns" }
func (*reportCmd) Usage() string {
	return `proforma report -scenario <file> [-html] [-plain] [-out <file>]

  Renders the yearly statements, investor cash flows, returns and findings.
  Without -html or -plain the report is styled for the terminal.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.scenarioFile, "scenario", "", "Scenario file (.yaml, .yml, .hjson or .json)")
	f.StringVar(&c.out, "out", "", "Output file for -html or -plain. Defaults to stdout.")
	f.BoolVar(&c.html, "html", false, "Render a standalone HTML page")
	f.BoolVar(&c.plain, "plain", false, "Print raw Markdown")
	f.StringVar(&c.opts.Title, "title", "", "Report title. Defaults to the scenario name.")
	f.BoolVar(&c.opts.SkipProperties, "portfolio-only", false, "Omit per-property statements")
	f.BoolVar(&c.opts.SkipFindings, "no-findings", false, "Omit business-rule findings")
}

func (c *reportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	res, err := runScenario(ctx, c.scenarioFile)
	if err != nil {
		reportError(err)
		return subcommands.ExitFailure
	}
	warnRejected(res)
	return renderResult(res, c.opts, c.html, c.plain, c.out)
}

// renderResult prints or writes a result in the requested form
func renderResult(res *pipeline.Result, opts report.Options, html, plain bool, out string) subcommands.ExitStatus {
	if html {
		page, err := report.HTMLDocument(res, opts)
		if err != nil {
			return exit(err)
		}
		return exit(writeOutput(out, []byte(page)))
	}

	md, err := report.Markdown(res, opts)
	if err != nil {
		return exit(err)
	}
	if plain || out != "" {
		return exit(writeOutput(out, []byte(md)))
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}
