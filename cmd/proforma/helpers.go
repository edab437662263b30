package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"hospitality_proforma/pkg/core/assumption"
	"hospitality_proforma/pkg/core/logger"
	"hospitality_proforma/pkg/core/pipeline"
	"hospitality_proforma/pkg/core/scenario"
)

// stdout is swapped in tests
var stdout io.Writer = os.Stdout

// runScenario loads a scenario file and projects it
func runScenario(ctx context.Context, file string) (*pipeline.Result, error) {
	if file == "" {
		return nil, errors.New("missing -scenario")
	}
	s, err := scenario.Load(file)
	if err != nil {
		return nil, err
	}
	return newEngine().Run(ctx, s)
}

func newEngine() *pipeline.Engine {
	return pipeline.NewEngine(pipeline.WithLogger(cliLogger()))
}

func cliLogger() *zap.SugaredLogger {
	return logger.Named("cli")
}

// reportError prints an error, one line per configuration problem
func reportError(err error) {
	var ces assumption.ConfigErrors
	if errors.As(err, &ces) {
		fmt.Fprintln(os.Stderr, "Invalid assumptions:")
		for _, ce := range ces {
			fmt.Fprintf(os.Stderr, "  - %s\n", ce.Error())
		}
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

// warnRejected lists properties excluded from the run
func warnRejected(res *pipeline.Result) {
	for _, rj := range res.Rejected {
		fmt.Fprintf(os.Stderr, "warning: property %q excluded: %v\n", rj.PropertyID, rj.Errors)
	}
}

// printMarkdown renders Markdown for the terminal, falling back to the raw
// text when styling fails
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(0))
	if err == nil {
		out, rerr := r.Render(md)
		if rerr == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	fmt.Fprint(stdout, md)
}

// writeOutput writes data to file, or to stdout when file is empty
func writeOutput(file string, data []byte) error {
	if file == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(file, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", file, err)
	}
	return nil
}
