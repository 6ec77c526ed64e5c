// Package rebalance turns a snapshot of a portfolio (current holdings,
// prices, target weights, and an optional cash infusion or withdrawal) into
// a minimal set of BUY/SELL/EXCHANGE instructions that bring the portfolio
// as close as possible to its target allocation.
//
// The core functionalities include:
//   - Portfolio Model: validating the ticker universe, its prices, current
//     quantities and target weights into a consistent snapshot.
//   - Allocation: computing each ticker's exact (continuous) target value
//     and dollar delta using decimal arithmetic, never binary floats.
//   - Apportionment: converting continuous share deltas into whole-share
//     deltas using a largest-remainder method under a configurable rounding
//     policy, with a provable bound on the leftover cash.
//   - Instruction Generation: emitting trade instructions ordered by
//     descending dollar amount, and optionally pairing sells with buys into
//     cash-free share exchanges.
//   - Verification: cross-checking externally transcribed balanced/actual
//     dollar figures against the computed ones to surface data-entry errors.
//
// The whole pipeline is a pure function of its inputs: no component keeps
// state across calls, no file, environment or network access happens inside
// the core. This package serves as the foundational logic for the `rebal`
// command-line tool.
package rebalance
