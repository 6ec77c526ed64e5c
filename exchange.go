package rebalance

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Below half a cent a remaining leg is dust from decimal division,
// not a trade.
var centTolerance = decimal.New(5, -3)

// leg is one side of the exchange matching: a SELL source or a BUY
// destination with its remaining dollar capacity.
type leg struct {
	ticker    string
	remaining Money
}

// matchExchanges pairs SELL instructions with BUY instructions of equal
// dollar value so shares move directly between tickers with no cash leg.
//
// Greedy pairing: take the largest remaining source and the largest
// remaining destination (ties by ticker ascending), exchange the smaller of
// the two remainders, and repeat until a side runs dry. A source or
// destination split across several counterparties yields one EXCHANGE
// instruction per pairing.
//
// Whatever remains unmatched afterwards (the cash-flow amount when it is
// nonzero, or the whole-share leftover) comes back as plain BUY/SELL
// instructions in 'residuals', also appended to the instruction list rather
// than silently dropped.
func (m *Model) matchExchanges(ins []Instruction) (out []Instruction, residuals []Instruction) {
	var sources, dests []leg
	for _, in := range ins {
		switch in.Action {
		case Sell:
			sources = append(sources, leg{ticker: in.Ticker, remaining: in.Dollars})
		case Buy:
			dests = append(dests, leg{ticker: in.Ticker, remaining: in.Dollars})
		}
	}

	for len(sources) > 0 && len(dests) > 0 {
		sortLegs(sources)
		sortLegs(dests)
		src, dst := &sources[0], &dests[0]

		amount := src.remaining
		if dst.remaining.LessThan(amount) {
			amount = dst.remaining
		}
		out = append(out, Instruction{
			Action:        Exchange,
			Ticker:        src.ticker,
			Shares:        amount.DivPrice(m.Price(src.ticker)),
			Dollars:       amount,
			Counterpart:   dst.ticker,
			CounterShares: amount.DivPrice(m.Price(dst.ticker)),
		})
		src.remaining = src.remaining.Sub(amount)
		dst.remaining = dst.remaining.Sub(amount)
		sources = dropSpent(sources)
		dests = dropSpent(dests)
	}

	for _, l := range sources {
		residuals = append(residuals, Instruction{
			Action:  Sell,
			Ticker:  l.ticker,
			Shares:  l.remaining.DivPrice(m.Price(l.ticker)),
			Dollars: l.remaining,
		})
	}
	for _, l := range dests {
		residuals = append(residuals, Instruction{
			Action:  Buy,
			Ticker:  l.ticker,
			Shares:  l.remaining.DivPrice(m.Price(l.ticker)),
			Dollars: l.remaining,
		})
	}
	out = append(out, residuals...)
	return out, residuals
}

// sortLegs orders by remaining capacity descending, ties by ticker ascending.
func sortLegs(legs []leg) {
	sort.SliceStable(legs, func(a, b int) bool {
		if !legs[a].remaining.Equal(legs[b].remaining) {
			return legs[a].remaining.GreaterThan(legs[b].remaining)
		}
		return legs[a].ticker < legs[b].ticker
	})
}

// dropSpent removes legs whose remaining capacity is below dust.
func dropSpent(legs []leg) []leg {
	kept := legs[:0]
	for _, l := range legs {
		if l.remaining.value.Abs().GreaterThan(centTolerance) {
			kept = append(kept, l)
		}
	}
	return kept
}
