package rebalance

import "testing"

func TestParseRoundingMode(t *testing.T) {
	tests := []struct {
		in   string
		want RoundingMode
	}{
		{"", RoundNearest},
		{"nearest", RoundNearest},
		{"NEAREST", RoundNearest},
		{"up", RoundUp},
		{"down", RoundDown},
	}
	for _, tt := range tests {
		got, err := ParseRoundingMode(tt.in)
		if err != nil {
			t.Errorf("ParseRoundingMode(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRoundingMode(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
	if _, err := ParseRoundingMode("sideways"); err == nil {
		t.Errorf("ParseRoundingMode(sideways) expected an error")
	}
}

func TestApportion(t *testing.T) {
	// AAA ideal +5 exactly, BBB ideal -2.5: the mode decides the provisional
	// deltas and the leftover redistribution tops AAA up or down.
	tests := []struct {
		mode     RoundingMode
		aaa, bbb int64
	}{
		{RoundNearest, 6, -3},
		{RoundUp, 6, -3},
		{RoundDown, 4, -2},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			weights, positions := twoTickers()
			m, err := NewModel(weights, positions)
			if err != nil {
				t.Fatalf("NewModel() error = %v", err)
			}
			total := USD(4000)
			deltas := m.allocate(total)
			fills := m.apportion(total, deltas, tt.mode)
			if len(fills) != 0 {
				t.Errorf("unexpected partial fills: %+v", fills)
			}
			if got, want := deltas[0].Final, Q(tt.aaa); !got.Equal(want) {
				t.Errorf("AAA final delta = %s, want %s", got, want)
			}
			if got, want := deltas[1].Final, Q(tt.bbb); !got.Equal(want) {
				t.Errorf("BBB final delta = %s, want %s", got, want)
			}
			// Both share mixes are worth exactly the allocated total here.
			if got := m.rebalancedValue(deltas); !got.Equal(total) {
				t.Errorf("rebalancedValue() = %s, want %s", got, total)
			}
		})
	}
}

func TestApportionLargestRemainderTie(t *testing.T) {
	// AAA and BBB carry the same remainder and the same price; the leftover
	// share goes to the first ticker in symbol order.
	weights := []ModelWeight{
		{Ticker: "AAA", Fraction: Q(0.3)},
		{Ticker: "BBB", Fraction: Q(0.3)},
		{Ticker: "CCC", Fraction: Q(0.4)},
	}
	positions := []Position{
		{Ticker: "AAA", Price: USD(10), Quantity: Q(10)},
		{Ticker: "BBB", Price: USD(10), Quantity: Q(10)},
		{Ticker: "CCC", Price: USD(100), Quantity: Q(8)},
	}
	m, err := NewModel(weights, positions)
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}

	total, err := m.TotalValue(USD(55))
	if err != nil {
		t.Fatalf("TotalValue() error = %v", err)
	}
	deltas := m.allocate(total)
	m.apportion(total, deltas, RoundNearest)

	want := map[string]Quantity{"AAA": Q(23), "BBB": Q(22), "CCC": Q(-4)}
	for _, d := range deltas {
		if !d.Final.Equal(want[d.Ticker]) {
			t.Errorf("%s final delta = %s, want %s", d.Ticker, d.Final, want[d.Ticker])
		}
	}
}

func TestApportionOversellClamp(t *testing.T) {
	// Rounding up asks to sell 10 shares of a 9.95 position: only 9 whole
	// shares can go, and the clamp is reported as a partial fill.
	weights := []ModelWeight{{Ticker: "AAA", Fraction: Q(1)}}
	positions := []Position{{Ticker: "AAA", Price: USD(10), Quantity: Q(9.95)}}
	m, err := NewModel(weights, positions)
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}

	total, err := m.TotalValue(USD(-98))
	if err != nil {
		t.Fatalf("TotalValue() error = %v", err)
	}
	deltas := m.allocate(total)
	fills := m.apportion(total, deltas, RoundUp)

	if len(fills) != 1 {
		t.Fatalf("len(fills) = %d, want 1", len(fills))
	}
	if got, want := fills[0].Requested, Q(10); !got.Equal(want) {
		t.Errorf("Requested = %s, want %s", got, want)
	}
	if got, want := fills[0].Filled, Q(9); !got.Equal(want) {
		t.Errorf("Filled = %s, want %s", got, want)
	}
	if got, want := deltas[0].Final, Q(-9); !got.Equal(want) {
		t.Errorf("final delta = %s, want %s", got, want)
	}
}
