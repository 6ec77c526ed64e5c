package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rebalance"
	"github.com/etnz/rebalance/renderer"
	"github.com/google/subcommands"
)

// planCmd holds the flags for the 'plan' subcommand.
type planCmd struct {
	summaryFile   string
	positionsFile string
	jsonFile      string
	value         string
	fractional    bool
	rounding      string
	exchange      bool
	skipCheck     bool
	tolerance     float64
	asJSON        bool
}

func (*planCmd) Name() string     { return "plan" }
func (*planCmd) Synopsis() string { return "compute the trades that rebalance a portfolio" }
func (*planCmd) Usage() string {
	return `rebal plan -s <summary> -p <positions> [-v <value>] [-f] [-r <mode>] [-x]

  Reads the model summary (ticker, target %, balanced $, actual $) and the
  current positions (ticker/price/quantity spreadsheet blocks), and prints
  the buy/sell or exchange instructions that bring the portfolio to its
  target allocation. Use "-" to read either input from stdin.

Usage Examples:
# Whole-share plan at the current portfolio value.
$ rebal plan -s summary.tsv -p positions.tsv

# Withdraw $1,000 and round partial shares down.
$ rebal plan -s summary.tsv -p positions.tsv -v -1000 -r down

# Fractional shares, moved cash-free between tickers.
$ rebal plan -s summary.tsv -p positions.tsv -f -x
`
}

func (c *planCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.summaryFile, "s", "-", "summary records file, or - for stdin")
	f.StringVar(&c.positionsFile, "p", "", "implementation records file, or - for stdin")
	f.StringVar(&c.jsonFile, "j", "", "JSON positions export, instead of -p")
	f.StringVar(&c.value, "v", "", "desired total value; prefix + or - for an offset from the current value")
	f.BoolVar(&c.fractional, "f", false, "allow fractional shares")
	f.StringVar(&c.rounding, "r", "nearest", "whole-share rounding: nearest, up or down")
	f.BoolVar(&c.exchange, "x", false, "pair sells with buys into cash-free share exchanges")
	f.BoolVar(&c.skipCheck, "skip-check", false, "skip cross-checking summary amounts against positions")
	f.Float64Var(&c.tolerance, "tolerance", 0, "cross-check tolerance in dollars (default $10)")
	f.BoolVar(&c.asJSON, "json", false, "print the result as JSON instead of a report")
}

func (c *planCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	records, positions, ok := loadInputs(c.summaryFile, c.positionsFile, c.jsonFile)
	if !ok {
		return subcommands.ExitFailure
	}

	model, err := rebalance.NewModel(rebalance.Weights(records), positions)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	cashFlow, err := rebalance.ParseDesiredValue(c.value, model.TotalCurrentValue())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	rounding, err := rebalance.ParseRoundingMode(c.rounding)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	if !c.skipCheck {
		total, err := model.TotalValue(cashFlow)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := model.Verify(total, records, rebalance.USD(c.tolerance)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: summary does not match positions: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	result, err := model.Rebalance(rebalance.Options{
		AllowExchange:   c.exchange,
		AllowFractional: c.fractional,
		Rounding:        rounding,
		CashFlow:        cashFlow,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.asJSON {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding result: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println(string(out))
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.Report(result))
	return subcommands.ExitSuccess
}

// loadInputs reads the summary records and the positions from the given
// files, reporting errors on stderr.
func loadInputs(summaryFile, positionsFile, jsonFile string) ([]rebalance.SummaryRecord, []rebalance.Position, bool) {
	if summaryFile == "" {
		fmt.Fprintln(os.Stderr, "Error: a summary file is required (-s)")
		return nil, nil, false
	}
	if positionsFile == "" && jsonFile == "" {
		fmt.Fprintln(os.Stderr, "Error: a positions file is required (-p or -j)")
		return nil, nil, false
	}

	sr, err := open(summaryFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening summary %q: %v\n", summaryFile, err)
		return nil, nil, false
	}
	defer sr.Close()
	records, err := rebalance.ImportSummary(sr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading summary: %v\n", err)
		return nil, nil, false
	}

	var positions []rebalance.Position
	if jsonFile != "" {
		pr, err := open(jsonFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening positions %q: %v\n", jsonFile, err)
			return nil, nil, false
		}
		defer pr.Close()
		positions, err = rebalance.ImportPositionsJSON(pr, rebalance.JSONPaths{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading positions: %v\n", err)
			return nil, nil, false
		}
	} else {
		pr, err := open(positionsFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening positions %q: %v\n", positionsFile, err)
			return nil, nil, false
		}
		defer pr.Close()
		positions, err = rebalance.ImportPositions(pr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading positions: %v\n", err)
			return nil, nil, false
		}
	}
	return records, positions, true
}
