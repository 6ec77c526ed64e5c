package rebalance

import (
	"errors"
	"testing"
)

// sixTickers is a real-world sized snapshot: a six-fund portfolio worth
// $9,855.59, rebalanced toward a desired value of $9,850.91.
func sixTickers() ([]ModelWeight, []Position) {
	weights := []ModelWeight{
		{Ticker: "VTI", Fraction: Q(0.33)},
		{Ticker: "VEA", Fraction: Q(0.15)},
		{Ticker: "VWO", Fraction: Q(0.12)},
		{Ticker: "VIG", Fraction: Q(0.06)},
		{Ticker: "XLE", Fraction: Q(0.05)},
		{Ticker: "MUB", Fraction: Q(0.29)},
	}
	positions := []Position{
		{Ticker: "VTI", Price: USD(16.26), Quantity: Q(203)},
		{Ticker: "VEA", Price: USD(4.03), Quantity: Q(337)},
		{Ticker: "VWO", Price: USD(4.28), Quantity: Q(267)},
		{Ticker: "VIG", Price: USD(12.29), Quantity: Q(52)},
		{Ticker: "XLE", Price: USD(3.75), Quantity: Q(68)},
		{Ticker: "MUB", Price: USD(11.66), Quantity: Q(271)},
	}
	return weights, positions
}

func TestRebalanceWholeShares(t *testing.T) {
	weights, positions := sixTickers()
	result, err := Rebalance(weights, positions, Options{
		CashFlow: USD(-4.68),
	})
	if err != nil {
		t.Fatalf("Rebalance() error = %v", err)
	}

	type trade struct {
		action Action
		shares Quantity
	}
	want := []struct {
		ticker string
		trade
	}{
		{"MUB", trade{Sell, Q(26)}},
		{"XLE", trade{Buy, Q(63)}},
		{"VEA", trade{Buy, Q(30)}},
		{"VIG", trade{Sell, Q(4)}},
		{"VTI", trade{Sell, Q(3)}},
		{"VWO", trade{Buy, Q(9)}},
	}

	if len(result.Instructions) != len(want) {
		t.Fatalf("len(Instructions) = %d, want %d", len(result.Instructions), len(want))
	}
	for i, w := range want {
		in := result.Instructions[i]
		if in.Ticker != w.ticker || in.Action != w.action || !in.Shares.Equal(w.shares) {
			t.Errorf("Instructions[%d] = %s %s %s, want %s %s %s",
				i, in.Action, in.Ticker, in.Shares, w.action, w.ticker, w.shares)
		}
	}

	// Largest dollar amount first.
	for i := 1; i < len(result.Instructions); i++ {
		if result.Instructions[i].Dollars.GreaterThan(result.Instructions[i-1].Dollars) {
			t.Errorf("Instructions not sorted by amount: %s before %s",
				result.Instructions[i-1].Dollars, result.Instructions[i].Dollars)
		}
	}

	if got, want := result.Current, USD(9855.59); !got.Equal(want) {
		t.Errorf("Current = %s, want %s", got, want)
	}
	if got, want := result.Target, USD(9850.91); !got.Equal(want) {
		t.Errorf("Target = %s, want %s", got, want)
	}
	if got, want := result.Rebalanced, USD(9850.16); !got.Equal(want) {
		t.Errorf("Rebalanced = %s, want %s", got, want)
	}
	// The whole-share gap stays under one share of the priciest ticker.
	if result.Rebalanced.Sub(result.Target).Abs().GreaterThan(USD(16.26)) {
		t.Errorf("gap %s exceeds the most expensive share", result.Rebalanced.Sub(result.Target))
	}
	if len(result.PartialFills) != 0 {
		t.Errorf("PartialFills = %+v, want none", result.PartialFills)
	}
}

func TestRebalanceFractional(t *testing.T) {
	weights, positions := sixTickers()
	result, err := Rebalance(weights, positions, Options{
		AllowFractional: true,
		CashFlow:        USD(-4.68),
	})
	if err != nil {
		t.Fatalf("Rebalance() error = %v", err)
	}

	want := []struct {
		ticker string
		action Action
		shares string
	}{
		{"MUB", Sell, "25.99"},
		{"XLE", Buy, "63.35"},
		{"VEA", Buy, "29.66"},
		{"VTI", Sell, "3.07"},
		{"VIG", Sell, "3.91"},
		{"VWO", Buy, "9.19"},
	}
	if len(result.Instructions) != len(want) {
		t.Fatalf("len(Instructions) = %d, want %d", len(result.Instructions), len(want))
	}
	for i, w := range want {
		in := result.Instructions[i]
		if in.Ticker != w.ticker || in.Action != w.action || in.Shares.StringFixed(2) != w.shares {
			t.Errorf("Instructions[%d] = %s %s %s, want %s %s %s",
				i, in.Action, in.Ticker, in.Shares.StringFixed(2), w.action, w.ticker, w.shares)
		}
	}

	// Fractional shares hit the target to the cent.
	if result.Rebalanced.Sub(result.Target).Abs().GreaterThan(USD(0.01)) {
		t.Errorf("Rebalanced = %s, want %s", result.Rebalanced, result.Target)
	}
}

func TestRebalanceExchanges(t *testing.T) {
	weights, positions := sixTickers()
	result, err := Rebalance(weights, positions, Options{
		AllowFractional: true,
		AllowExchange:   true,
		CashFlow:        USD(-4.68),
	})
	if err != nil {
		t.Fatalf("Rebalance() error = %v", err)
	}

	want := []struct {
		src, dst string
		dollars  string
	}{
		{"MUB", "XLE", "$237.55"},
		{"MUB", "VEA", "$65.55"},
		{"VTI", "VEA", "$49.98"},
		{"VIG", "VWO", "$39.35"},
		{"VIG", "VEA", "$4.00"},
	}
	if len(result.Instructions) != len(want)+1 {
		t.Fatalf("len(Instructions) = %d, want %d", len(result.Instructions), len(want)+1)
	}
	for i, w := range want {
		in := result.Instructions[i]
		if in.Action != Exchange || in.Ticker != w.src || in.Counterpart != w.dst || in.Dollars.String() != w.dollars {
			t.Errorf("Instructions[%d] = %s %s -> %s %s, want %s -> %s %s",
				i, in.Action, in.Ticker, in.Counterpart, in.Dollars, w.src, w.dst, w.dollars)
		}
	}

	// The withdrawal cannot be paired; it survives as a plain SELL residual.
	if len(result.Residuals) != 1 {
		t.Fatalf("len(Residuals) = %d, want 1", len(result.Residuals))
	}
	res := result.Residuals[0]
	if res.Action != Sell || res.Ticker != "VIG" || res.Dollars.String() != "$4.68" {
		t.Errorf("residual = %s %s %s, want SELL VIG $4.68", res.Action, res.Ticker, res.Dollars)
	}
}

func TestRebalanceNoExchangeWhenBalanced(t *testing.T) {
	// A portfolio already at target produces no instructions.
	weights := []ModelWeight{
		{Ticker: "AAA", Fraction: Q(0.5)},
		{Ticker: "BBB", Fraction: Q(0.5)},
	}
	positions := []Position{
		{Ticker: "AAA", Price: USD(100), Quantity: Q(20)},
		{Ticker: "BBB", Price: USD(200), Quantity: Q(10)},
	}
	result, err := Rebalance(weights, positions, Options{})
	if err != nil {
		t.Fatalf("Rebalance() error = %v", err)
	}
	if len(result.Instructions) != 0 {
		t.Errorf("Instructions = %+v, want none", result.Instructions)
	}
	if !result.Rebalanced.Equal(result.Current) {
		t.Errorf("Rebalanced = %s, want current %s", result.Rebalanced, result.Current)
	}
}

func TestRebalanceInvalidModel(t *testing.T) {
	_, err := Rebalance(
		[]ModelWeight{{Ticker: "AAA", Fraction: Q(0.5)}},
		[]Position{{Ticker: "AAA", Price: USD(100), Quantity: Q(1)}},
		Options{},
	)
	var cerr *ConfigurationError
	if !errors.As(err, &cerr) {
		t.Errorf("Rebalance() error = %v, want *ConfigurationError", err)
	}
}
