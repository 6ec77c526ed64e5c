package rebalance

import (
	"errors"
	"testing"
)

func TestVerify(t *testing.T) {
	weights, positions := twoTickers()
	m, err := NewModel(weights, positions)
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}

	records := []SummaryRecord{
		{Ticker: "AAA", Target: Q(0.5), Balanced: USD(2000), Actual: USD(1500)},
		{Ticker: "BBB", Target: Q(0.5), Balanced: USD(2000), Actual: USD(2500)},
	}
	if err := m.Verify(USD(4000), records, USD(0)); err != nil {
		t.Errorf("Verify() error = %v, want nil", err)
	}

	// A balanced figure off by more than the tolerance is a mismatch.
	bad := []SummaryRecord{
		{Ticker: "AAA", Target: Q(0.5), Balanced: USD(2050), Actual: USD(1500)},
	}
	err = m.Verify(USD(4000), bad, USD(0))
	var mismatch *ValidationMismatch
	if !errors.As(err, &mismatch) {
		t.Fatalf("Verify() error = %v, want *ValidationMismatch", err)
	}
	if mismatch.Ticker != "AAA" || mismatch.Figure != "balanced" {
		t.Errorf("mismatch = %+v, want balanced figure of AAA", mismatch)
	}

	// A wider explicit tolerance accepts the same figure.
	if err := m.Verify(USD(4000), bad, USD(100)); err != nil {
		t.Errorf("Verify() with $100 tolerance error = %v, want nil", err)
	}

	// An actual figure disagreeing with price times quantity is a mismatch too.
	bad = []SummaryRecord{
		{Ticker: "BBB", Target: Q(0.5), Balanced: USD(2000), Actual: USD(2400)},
	}
	err = m.Verify(USD(4000), bad, USD(0))
	if !errors.As(err, &mismatch) {
		t.Fatalf("Verify() error = %v, want *ValidationMismatch", err)
	}
	if mismatch.Ticker != "BBB" || mismatch.Figure != "actual" {
		t.Errorf("mismatch = %+v, want actual figure of BBB", mismatch)
	}
}

func TestWeights(t *testing.T) {
	records := []SummaryRecord{
		{Ticker: "AAA", Target: Q(0.6)},
		{Ticker: "OLD", Target: Q(0)},
		{Ticker: "BBB", Target: Q(0.4)},
	}
	weights := Weights(records)
	if len(weights) != 2 {
		t.Fatalf("len(weights) = %d, want 2", len(weights))
	}
	if weights[0].Ticker != "AAA" || weights[1].Ticker != "BBB" {
		t.Errorf("weights = %+v, want AAA and BBB", weights)
	}
}
