package rebalance

// Options configures a single rebalance call. The zero value asks for
// whole-share trading, nearest rounding, no exchanges and no cash flow.
type Options struct {
	// AllowExchange pairs sells with buys into cash-free EXCHANGE
	// instructions instead of separate BUY/SELL ones.
	AllowExchange bool
	// AllowFractional permits non-integer share deltas. Rounding is then
	// irrelevant.
	AllowFractional bool
	// Rounding selects the whole-share rounding policy.
	Rounding RoundingMode
	// CashFlow is added to the current value before allocating: positive
	// for an infusion, negative for a withdrawal.
	CashFlow Money
}

// Result is the immutable outcome of one rebalance call.
type Result struct {
	// Instructions to execute, largest dollar amount first. In exchange
	// mode these are EXCHANGE legs plus any unmatched residual.
	Instructions []Instruction
	// PartialFills lists sells clamped to the available quantity.
	PartialFills []PartialFill
	// Residuals are the legs exchange matching could not pair, typically
	// the cash-flow amount. They also appear in Instructions.
	Residuals []Instruction

	Rebalanced Money // value of the portfolio once instructions execute
	Target     Money // value the allocation aimed for
	Current    Money // value before rebalancing

	Options Options
}

func (r *Result) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("instructions", r.Instructions)
	if len(r.PartialFills) > 0 {
		w.Append("partialFills", r.PartialFills)
	}
	if len(r.Residuals) > 0 {
		w.Append("residuals", r.Residuals)
	}
	w.Append("rebalanced", r.Rebalanced)
	w.Append("target", r.Target)
	w.Append("current", r.Current)
	w.Append("fractionalShares", r.Options.AllowFractional)
	w.Append("shareExchanges", r.Options.AllowExchange)
	if !r.Options.AllowFractional {
		w.Append("rounding", r.Options.Rounding.String())
	}
	return w.MarshalJSON()
}

// Rebalance computes the instructions that bring the portfolio described by
// 'weights' and 'positions' to its target allocation under 'opts'.
//
// The call either completes deterministically or fails with
// *ConfigurationError or *InsufficientFundsError; non-fatal conditions
// (partial fills, unmatched residuals) are attached to the result.
func Rebalance(weights []ModelWeight, positions []Position, opts Options) (*Result, error) {
	m, err := NewModel(weights, positions)
	if err != nil {
		return nil, err
	}
	return m.Rebalance(opts)
}

// Rebalance runs the allocation pipeline on an already validated model.
func (m *Model) Rebalance(opts Options) (*Result, error) {
	total, err := m.TotalValue(opts.CashFlow)
	if err != nil {
		return nil, err
	}

	deltas := m.allocate(total)
	var fills []PartialFill
	if opts.AllowFractional {
		fills = m.clampOversell(deltas, false)
	} else {
		fills = m.apportion(total, deltas, opts.Rounding)
	}

	res := &Result{
		PartialFills: fills,
		Rebalanced:   m.rebalancedValue(deltas),
		Target:       total,
		Current:      m.TotalCurrentValue(),
		Options:      opts,
	}
	res.Instructions = m.instructions(deltas)
	if opts.AllowExchange {
		res.Instructions, res.Residuals = m.matchExchanges(res.Instructions)
	}
	return res, nil
}
