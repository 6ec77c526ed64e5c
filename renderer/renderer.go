// Package renderer turns rebalance results into human-readable markdown
// reports. It holds no logic of its own: everything it prints comes from
// the result it is handed.
package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/rebalance"
)

// Report renders the full rebalance report: instructions, totals, applied
// options and any warnings.
func Report(r *rebalance.Result) string {
	var b strings.Builder
	b.WriteString(Instructions(r))
	b.WriteString(Totals(r))
	b.WriteString(OptionsApplied(r))
	b.WriteString(Warnings(r))
	return b.String()
}

// Instructions renders the instruction table, one row per trade, in the
// result's order (largest dollar amount first).
func Instructions(r *rebalance.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Rebalance Instructions\n\n")
	if len(r.Instructions) == 0 {
		fmt.Fprintln(&b, "No rebalance actions required.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Ticker | Action | Shares | Amount |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|")
	for _, in := range r.Instructions {
		switch in.Action {
		case rebalance.Exchange:
			fmt.Fprintf(&b, "| %s → %s | %s | %s → %s | %s |\n",
				in.Ticker, in.Counterpart,
				in.Action,
				shares(in.Shares, r), shares(in.CounterShares, r),
				in.Dollars,
			)
		case rebalance.Sell:
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				in.Ticker, in.Action, shares(in.Shares, r), in.Dollars.Neg())
		default:
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				in.Ticker, in.Action, shares(in.Shares, r), in.Dollars)
		}
	}
	fmt.Fprintln(&b)
	return b.String()
}

// Totals renders the rebalanced value against the target and current ones.
func Totals(r *rebalance.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Totals\n\n")
	fmt.Fprintln(&b, "| | |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Value of rebalanced portfolio | %s |\n", r.Rebalanced)
	fmt.Fprintf(&b, "| vs target value | %s |\n", r.Target)
	fmt.Fprintf(&b, "| vs current value | %s |\n", r.Current)
	fmt.Fprintln(&b)
	return b.String()
}

// OptionsApplied renders the options block of the report.
func OptionsApplied(r *rebalance.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Options Applied\n\n")
	fmt.Fprintf(&b, "- Fractional Shares: %s\n", yesno(r.Options.AllowFractional))
	if !r.Options.AllowFractional {
		fmt.Fprintf(&b, "- Rounding Behavior: %s\n", r.Options.Rounding)
	}
	fmt.Fprintf(&b, "- Share Exchanges: %s\n", yesno(r.Options.AllowExchange))
	if !r.Options.CashFlow.IsZero() {
		fmt.Fprintf(&b, "- Cash Flow: %s\n", r.Options.CashFlow.SignedString())
	}
	fmt.Fprintln(&b)
	return b.String()
}

// Warnings renders partial fills and unmatched residuals, or nothing when
// the result is clean.
func Warnings(r *rebalance.Result) string {
	if len(r.PartialFills) == 0 && len(r.Residuals) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "## Warnings\n\n")
	for _, f := range r.PartialFills {
		fmt.Fprintf(&b, "- %s: only %s of the %s shares to sell are held; the remainder is unmet.\n",
			f.Ticker, shares(f.Filled, r), shares(f.Requested, r))
	}
	for _, in := range r.Residuals {
		fmt.Fprintf(&b, "- %s of %s could not be paired into an exchange and stays a plain %s.\n",
			in.Dollars, in.Ticker, in.Action)
	}
	fmt.Fprintln(&b)
	return b.String()
}

func shares(q rebalance.Quantity, r *rebalance.Result) string {
	if r.Options.AllowFractional || !q.IsInteger() {
		return q.StringFixed(2)
	}
	return q.String()
}

func yesno(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}
