package rebalance

import "fmt"

// Percent is a display type for fractions, e.g. Percent(33) renders "33.00%".
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

// AsPercent converts a fraction like 0.33 into its display value 33%.
func (q Quantity) AsPercent() Percent {
	f, _ := q.value.Mul(hundred).Float64()
	return Percent(f)
}
