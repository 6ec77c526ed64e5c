package rebalance

// Delta is the per-ticker outcome of the allocation stage: the exact
// continuous share delta, and the final delta after the optional
// whole-share apportionment.
type Delta struct {
	Ticker string
	Ideal  Quantity // continuous, signed
	Final  Quantity // integer when fractional trading is off
}

// allocate computes, for each ticker, the exact share delta that would move
// the position to its ideal target value fraction of 'total'. No rounding
// happens here: Final starts equal to Ideal. Deltas come out in ascending
// ticker order.
func (m *Model) allocate(total Money) []Delta {
	deltas := make([]Delta, 0, len(m.tickers))
	for _, t := range m.tickers {
		target := total.Mul(m.Fraction(t))
		ideal := target.Sub(m.CurrentValue(t)).DivPrice(m.Price(t))
		deltas = append(deltas, Delta{Ticker: t, Ideal: ideal, Final: ideal})
	}
	return deltas
}

// rebalancedValue returns the market value of the portfolio once the final
// deltas are applied.
func (m *Model) rebalancedValue(deltas []Delta) Money {
	var total Money
	for _, d := range deltas {
		total = total.Add(m.Price(d.Ticker).Mul(m.Held(d.Ticker).Add(d.Final)))
	}
	return total
}
