package rebalance

import (
	"fmt"
	"strings"
)

// RoundingMode selects how a continuous share delta becomes a provisional
// whole-share delta when fractional trading is disabled.
type RoundingMode int

const (
	// RoundNearest rounds to the closest whole share, halves away from zero.
	RoundNearest RoundingMode = iota
	// RoundUp rounds away from zero: buy more, sell more. Rebalancing may
	// require additional cash.
	RoundUp
	// RoundDown rounds toward zero: buy less, sell less. Rebalancing may
	// leave cash uninvested.
	RoundDown
)

func (r RoundingMode) String() string {
	switch r {
	case RoundNearest:
		return "NEAREST"
	case RoundUp:
		return "UP"
	case RoundDown:
		return "DOWN"
	default:
		return "unknown"
	}
}

// ParseRoundingMode parses a string into a RoundingMode.
func ParseRoundingMode(s string) (RoundingMode, error) {
	switch strings.ToLower(s) {
	case "", "nearest":
		return RoundNearest, nil
	case "up":
		return RoundUp, nil
	case "down":
		return RoundDown, nil
	default:
		return 0, fmt.Errorf("unknown rounding mode: %q", s)
	}
}

// round applies the mode to a continuous share delta.
func (r RoundingMode) round(q Quantity) Quantity {
	switch r {
	case RoundUp:
		return q.RoundAway()
	case RoundDown:
		return q.RoundToward()
	default:
		return q.RoundNearest()
	}
}

// PartialFill records a sell clamped to the quantity actually held.
// It is a warning, not an error: the result is complete, only smaller.
type PartialFill struct {
	Ticker    string
	Requested Quantity // shares the allocation wanted to sell (positive)
	Filled    Quantity // shares that can actually be sold (positive)
}

// apportion converts the continuous deltas into whole-share deltas whose
// rebalanced value lands as close to 'total' as full shares permit.
//
// It first rounds every delta per the mode, clamps oversells, then
// redistributes the leftover cash with a largest-remainder rule: repeatedly
// move one whole share of the ticker whose fractional remainder is largest
// among those affordable within the residual, in the direction that shrinks
// the residual, until no move fits. Ties break by ticker symbol ascending,
// so the outcome is deterministic for identical inputs.
//
// The leftover is bounded: |rebalanced - total| stays below the price of
// the most expensive ticker.
func (m *Model) apportion(total Money, deltas []Delta, mode RoundingMode) []PartialFill {
	for i := range deltas {
		deltas[i].Final = mode.round(deltas[i].Ideal)
	}
	fills := m.clampOversell(deltas, true)

	// Remainder left behind by each provisional rounding.
	remainder := make(map[string]Quantity, len(deltas))
	for _, d := range deltas {
		remainder[d.Ticker] = d.Ideal.Sub(d.Final)
	}

	residual := total.Sub(m.rebalancedValue(deltas))
	for !residual.IsZero() {
		buying := residual.IsPositive()

		// The best affordable one-share move: largest |remainder| first,
		// then ticker ascending. Affordable means the move cannot push the
		// residual past zero.
		best := -1
		for i, d := range deltas {
			price := m.Price(d.Ticker)
			if price.GreaterThan(residual.Abs()) {
				continue
			}
			if !buying {
				// Selling one more share must not oversell the position.
				after := m.Held(d.Ticker).Add(d.Final).Sub(Q(1))
				if after.IsNegative() {
					continue
				}
			}
			if best < 0 || remainder[d.Ticker].Abs().GreaterThan(remainder[deltas[best].Ticker].Abs()) {
				best = i
			}
		}
		if best < 0 {
			break
		}

		t := deltas[best].Ticker
		step := Q(1)
		if !buying {
			step = step.Neg()
		}
		deltas[best].Final = deltas[best].Final.Add(step)
		remainder[t] = remainder[t].Sub(step)
		residual = residual.Sub(m.Price(t).Mul(step))
	}

	return fills
}

// clampOversell caps sell deltas at the quantity held so no position can go
// negative. With whole shares, a fractional holding can only shed its whole
// part. Returns one PartialFill per clamped ticker.
func (m *Model) clampOversell(deltas []Delta, wholeShares bool) []PartialFill {
	var fills []PartialFill
	for i, d := range deltas {
		if !d.Final.IsNegative() {
			continue
		}
		sellable := m.Held(d.Ticker)
		if wholeShares {
			sellable = sellable.RoundToward()
		}
		if d.Final.Neg().GreaterThan(sellable) {
			fills = append(fills, PartialFill{
				Ticker:    d.Ticker,
				Requested: d.Final.Neg(),
				Filled:    sellable,
			})
			deltas[i].Final = sellable.Neg()
		}
	}
	return fills
}
