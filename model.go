package rebalance

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)

	// weightTolerance is how far the weight sum may stray from 1.
	weightTolerance = decimal.NewFromFloat(1e-6)
)

// ModelWeight assigns a ticker its target fraction of the total portfolio
// value, in (0,1].
type ModelWeight struct {
	Ticker   string
	Fraction Quantity
}

// Position is a currently held instrument: its price per share and the
// quantity held. Quantities may be fractional even when fractional trading
// is disabled: pre-existing fractional holdings are legal.
type Position struct {
	Ticker   string
	Price    Money
	Quantity Quantity
}

// Model is the validated view of a portfolio: a ticker universe where every
// weighted ticker has a position and vice versa, every price is positive,
// and the weights sum to 1 within tolerance.
type Model struct {
	tickers   []string // sorted ascending
	fractions map[string]Quantity
	prices    map[string]Money
	held      map[string]Quantity
}

// NewModel validates weights against positions and builds the model.
// Any inconsistency is reported as a *ConfigurationError naming the
// offending tickers or the weight-sum discrepancy.
func NewModel(weights []ModelWeight, positions []Position) (*Model, error) {
	m := &Model{
		fractions: make(map[string]Quantity, len(weights)),
		prices:    make(map[string]Money, len(positions)),
		held:      make(map[string]Quantity, len(positions)),
	}

	sum := decimal.Zero
	for _, w := range weights {
		if _, ok := m.fractions[w.Ticker]; ok {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("ticker %q weighted twice", w.Ticker)}
		}
		if !w.Fraction.IsPositive() || w.Fraction.GreaterThan(Q(one)) {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("ticker %q target fraction %s is not in (0,1]", w.Ticker, w.Fraction)}
		}
		m.fractions[w.Ticker] = w.Fraction
		m.tickers = append(m.tickers, w.Ticker)
		sum = sum.Add(w.Fraction.value)
	}
	if sum.Sub(one).Abs().GreaterThan(weightTolerance) {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("target fractions sum to %s, want 1", sum)}
	}

	for _, p := range positions {
		if _, ok := m.prices[p.Ticker]; ok {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("ticker %q positioned twice", p.Ticker)}
		}
		if !p.Price.IsPositive() {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("ticker %q price %s is not positive", p.Ticker, p.Price)}
		}
		if p.Quantity.IsNegative() {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("ticker %q quantity %s is negative", p.Ticker, p.Quantity)}
		}
		m.prices[p.Ticker] = p.Price
		m.held[p.Ticker] = p.Quantity
	}

	// Both sides of the universe must match exactly.
	var missing, unweighted []string
	for _, t := range m.tickers {
		if _, ok := m.prices[t]; !ok {
			missing = append(missing, t)
		}
	}
	for t := range m.prices {
		if _, ok := m.fractions[t]; !ok {
			unweighted = append(unweighted, t)
		}
	}
	sort.Strings(unweighted)
	if len(missing) > 0 {
		return nil, &ConfigurationError{Reason: "no position for weighted ticker(s) " + strings.Join(missing, ", ")}
	}
	if len(unweighted) > 0 {
		return nil, &ConfigurationError{Reason: "no target weight for held ticker(s) " + strings.Join(unweighted, ", ")}
	}

	sort.Strings(m.tickers)
	return m, nil
}

// Tickers returns the universe in ascending symbol order.
func (m *Model) Tickers() []string { return m.tickers }

// Price returns the price per share of a ticker.
func (m *Model) Price(ticker string) Money { return m.prices[ticker] }

// Held returns the quantity currently held of a ticker.
func (m *Model) Held(ticker string) Quantity { return m.held[ticker] }

// Fraction returns the ticker's target fraction of the total value.
func (m *Model) Fraction(ticker string) Quantity { return m.fractions[ticker] }

// CurrentValue returns price times quantity held for a ticker.
func (m *Model) CurrentValue(ticker string) Money {
	return m.prices[ticker].Mul(m.held[ticker])
}

// TotalCurrentValue returns the market value of all positions,
// before any cash flow.
func (m *Model) TotalCurrentValue() Money {
	var total Money
	for _, t := range m.tickers {
		total = total.Add(m.CurrentValue(t))
	}
	return total
}

// TotalValue returns the value to allocate: current value plus the signed
// cash flow. A withdrawal driving the total to zero or below is fatal.
func (m *Model) TotalValue(cashFlow Money) (Money, error) {
	current := m.TotalCurrentValue()
	total := current.Add(cashFlow)
	if !total.IsPositive() {
		return Money{}, &InsufficientFundsError{Withdrawal: cashFlow.Abs(), Available: current}
	}
	return total, nil
}
