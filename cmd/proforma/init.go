package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"gopkg.in/yaml.v2"

	"hospitality_proforma/pkg/core/scenario"
)

type initCmd struct {
	out   string
	force bool
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "write an example scenario file" }
func (*initCmd) Usage() string {
	return `proforma init [-o scenario.yaml] [-f]

  Writes a two-property example scenario as YAML or JSON, by file extension.
`
}

func (c *initCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.out, "o", "scenario.yaml", "Scenario file to create (.yaml, .yml or .json)")
	f.BoolVar(&c.force, "f", false, "Overwrite an existing file")
}

func (c *initCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	format, err := scenario.FormatFromPath(c.out)
	if err != nil || format == scenario.FormatHJSON {
		fmt.Fprintf(os.Stderr, "Error: %s must end in .yaml, .yml or .json\n", c.out)
		return subcommands.ExitUsageError
	}
	if _, err := os.Stat(c.out); err == nil && !c.force {
		fmt.Fprintf(os.Stderr, "Error: %s exists, use -f to overwrite\n", c.out)
		return subcommands.ExitFailure
	}

	s := scenario.Example()
	var data []byte
	if format == scenario.FormatYAML {
		data, err = yaml.Marshal(s)
	} else {
		data, err = json.MarshalIndent(s, "", "  ")
	}
	if err != nil {
		reportError(err)
		return subcommands.ExitFailure
	}
	if err := os.WriteFile(c.out, data, 0o644); err != nil {
		reportError(err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", c.out)
	return subcommands.ExitSuccess
}
