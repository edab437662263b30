// Command calc-engine is a one-shot projection worker. It reads a scenario
// from -data or -file and prints either its findings (check) or its returns
// (calculate) as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"hospitality_proforma/pkg/core/logger"
	"hospitality_proforma/pkg/core/pipeline"
	"hospitality_proforma/pkg/core/scenario"
	"hospitality_proforma/pkg/core/validate"
	"hospitality_proforma/pkg/core/valuation"
)

type checkOutput struct {
	RunID    string               `json:"run_id"`
	OK       bool                 `json:"ok"`
	Rejected []pipeline.Rejection `json:"rejected,omitempty"`
	Findings []validate.Finding   `json:"findings"`
}

type calculateOutput struct {
	RunID      string                              `json:"run_id"`
	Portfolio  valuation.ReturnsSummary            `json:"portfolio"`
	Properties map[string]valuation.ReturnsSummary `json:"properties"`
	Rejected   []pipeline.Rejection                `json:"rejected,omitempty"`
}

func main() {
	_ = godotenv.Load()
	logger.InitFromEnv()
	defer logger.Sync()

	mode := flag.String("mode", "calculate", "Mode: check or calculate")
	dataStr := flag.String("data", "", "Scenario JSON payload")
	file := flag.String("file", "", "Scenario file (.yaml, .yml, .hjson or .json)")
	flag.Parse()

	s, err := loadScenario(*dataStr, *file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	res, err := pipeline.NewEngine().Run(context.Background(), s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var out interface{}
	switch *mode {
	case "check":
		c := checkOutput{RunID: res.RunID, Rejected: res.Rejected, Findings: res.Findings}
		c.OK = len(res.Rejected) == 0 && len(res.Findings) == 0
		if c.Findings == nil {
			c.Findings = []validate.Finding{}
		}
		out = c
	case "calculate":
		c := calculateOutput{
			RunID:      res.RunID,
			Portfolio:  res.Returns,
			Properties: make(map[string]valuation.ReturnsSummary, len(res.Properties)),
			Rejected:   res.Rejected,
		}
		for _, pr := range res.Properties {
			c.Properties[pr.ID] = pr.Returns
		}
		out = c
	default:
		fmt.Fprintf(os.Stderr, "Unknown mode: %s\n", *mode)
		os.Exit(2)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *mode == "check" && !out.(checkOutput).OK {
		os.Exit(3)
	}
}

func loadScenario(data, file string) (*scenario.Scenario, error) {
	switch {
	case data != "":
		return scenario.Decode([]byte(data), scenario.FormatJSON)
	case file != "":
		return scenario.Load(file)
	}
	return nil, fmt.Errorf("no scenario provided, use -data or -file")
}
