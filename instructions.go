package rebalance

import "sort"

// Action is the kind of trade an Instruction describes.
type Action int

const (
	Buy Action = iota
	Sell
	Exchange
)

func (a Action) String() string {
	switch a {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	case Exchange:
		return "EXCHANGE"
	default:
		return "unknown"
	}
}

// Instruction is one trade to execute. For BUY and SELL, Ticker, Shares and
// Dollars describe the single leg. For EXCHANGE, Ticker/Shares is the side
// sold and Counterpart/CounterShares the side bought; Dollars is the value
// moved between them, with no cash leg.
type Instruction struct {
	Action        Action
	Ticker        string
	Shares        Quantity // positive
	Dollars       Money    // positive
	Counterpart   string   // EXCHANGE only
	CounterShares Quantity // EXCHANGE only
}

func (i Instruction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("action", i.Action.String())
	w.Append("ticker", i.Ticker)
	w.Append("shares", i.Shares)
	w.Append("dollars", i.Dollars)
	w.Optional("counterpart", i.Counterpart)
	if i.Action == Exchange {
		w.Append("counterShares", i.CounterShares)
	}
	return w.MarshalJSON()
}

// instructions turns nonzero final deltas into BUY/SELL instructions,
// largest dollar amount first. Zero deltas produce nothing. Ties break by
// ticker ascending so report ordering is stable.
func (m *Model) instructions(deltas []Delta) []Instruction {
	var ins []Instruction
	for _, d := range deltas {
		if d.Final.IsZero() {
			continue
		}
		action := Buy
		if d.Final.IsNegative() {
			action = Sell
		}
		shares := d.Final.Abs()
		ins = append(ins, Instruction{
			Action:  action,
			Ticker:  d.Ticker,
			Shares:  shares,
			Dollars: m.Price(d.Ticker).Mul(shares),
		})
	}
	sort.SliceStable(ins, func(a, b int) bool {
		if !ins[a].Dollars.Equal(ins[b].Dollars) {
			return ins[a].Dollars.GreaterThan(ins[b].Dollars)
		}
		return ins[a].Ticker < ins[b].Ticker
	})
	return ins
}
