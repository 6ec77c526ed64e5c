package rebalance

import "testing"

func TestAsPercent(t *testing.T) {
	if got, want := Q(0.33).AsPercent(), Percent(33); !got.Equal(want) {
		t.Errorf("Q(0.33).AsPercent() = %s, want %s", got, want)
	}
	if got, want := Percent(33).String(), "33.00%"; got != want {
		t.Errorf("Percent(33).String() = %s, want %s", got, want)
	}
}
