package rebalance

import "testing"

func TestMoneyString(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{1234.56, "$1,234.56"},
		{9850.91, "$9,850.91"},
		{0.5, "$0.50"},
		{-600, "-$600.00"},
		{237.5455, "$237.55"},
	}
	for _, tt := range tests {
		if got := USD(tt.value).String(); got != tt.want {
			t.Errorf("USD(%v).String() = %s, want %s", tt.value, got, tt.want)
		}
	}
}

func TestMoneySignedString(t *testing.T) {
	if got, want := USD(500).SignedString(), "+$500.00"; got != want {
		t.Errorf("SignedString() = %s, want %s", got, want)
	}
	if got, want := USD(-500).SignedString(), "-$500.00"; got != want {
		t.Errorf("SignedString() = %s, want %s", got, want)
	}
	if got, want := USD(0).SignedString(), "-"; got != want {
		t.Errorf("SignedString() = %s, want %s", got, want)
	}
}

func TestMoneyDivPrice(t *testing.T) {
	got := USD(600).DivPrice(USD(200))
	if want := Q(3); !got.Equal(want) {
		t.Errorf("USD(600).DivPrice(USD(200)) = %s, want %s", got, want)
	}
}

func TestMoneyWeakCurrency(t *testing.T) {
	// The zero Money has no currency and adopts its operand's one, so
	// accumulators can start from the zero value.
	var total Money
	total = total.Add(USD(5))
	if got, want := total.Currency(), "USD"; got != want {
		t.Errorf("Currency() = %s, want %s", got, want)
	}
	if !total.Equal(USD(5)) {
		t.Errorf("zero.Add(USD(5)) = %s, want %s", total, USD(5))
	}
}
