package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rebalance"
	"github.com/google/subcommands"
)

// checkCmd holds the flags for the 'check' subcommand.
type checkCmd struct {
	summaryFile   string
	positionsFile string
	jsonFile      string
	tolerance     float64
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "cross-check transcribed summary amounts against positions" }
func (*checkCmd) Usage() string {
	return `rebal check -s <summary> -p <positions> [-tolerance <dollars>]

  Verifies that the balanced and actual dollar amounts transcribed in the
  summary agree with the prices and quantities of the positions, surfacing
  transcription errors before any plan is computed.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.summaryFile, "s", "-", "summary records file, or - for stdin")
	f.StringVar(&c.positionsFile, "p", "", "implementation records file, or - for stdin")
	f.StringVar(&c.jsonFile, "j", "", "JSON positions export, instead of -p")
	f.Float64Var(&c.tolerance, "tolerance", 0, "tolerance in dollars (default $10)")
}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	records, positions, ok := loadInputs(c.summaryFile, c.positionsFile, c.jsonFile)
	if !ok {
		return subcommands.ExitFailure
	}

	model, err := rebalance.NewModel(rebalance.Weights(records), positions)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	total, err := model.TotalValue(rebalance.USD(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := model.Verify(total, records, rebalance.USD(c.tolerance)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	for _, r := range records {
		fmt.Printf("  %-6s %8s %14s\n", r.Ticker, r.Target.AsPercent(), model.CurrentValue(r.Ticker))
	}
	fmt.Printf("Summary and positions agree on %d tickers (total %s).\n", len(records), total)
	return subcommands.ExitSuccess
}
