package rebalance

// SummaryRecord is one row transcribed from an external spreadsheet summary:
// the ticker, its target fraction, and the dollar amounts the spreadsheet
// claims for a balanced and for the actual portfolio.
type SummaryRecord struct {
	Ticker   string
	Target   Quantity // fraction of total value
	Balanced Money
	Actual   Money
}

// DefaultVerifyTolerance absorbs the rounding a spreadsheet typically
// applies to displayed dollar amounts.
var DefaultVerifyTolerance = USD(10)

// Verify cross-checks externally supplied balanced/actual dollar figures
// against the internally computed ideal target value and current value.
// A figure off by more than the tolerance means the upstream transcription
// is inconsistent with the prices and quantities; the first such
// discrepancy is returned as a *ValidationMismatch.
//
// A zero tolerance selects DefaultVerifyTolerance.
func (m *Model) Verify(total Money, records []SummaryRecord, tolerance Money) error {
	if tolerance.IsZero() {
		tolerance = DefaultVerifyTolerance
	}
	for _, r := range records {
		target := total.Mul(r.Target)
		if r.Balanced.Sub(target).Abs().GreaterThan(tolerance) {
			return &ValidationMismatch{Ticker: r.Ticker, Figure: "balanced", Supplied: r.Balanced, Computed: target}
		}
		// A blank actual amount in the source means "not held yet";
		// the computed current value still has to agree.
		current := m.CurrentValue(r.Ticker)
		if r.Actual.Sub(current).Abs().GreaterThan(tolerance) {
			return &ValidationMismatch{Ticker: r.Ticker, Figure: "actual", Supplied: r.Actual, Computed: current}
		}
	}
	return nil
}

// Weights extracts the model weights from summary records, dropping rows
// with a zero target.
func Weights(records []SummaryRecord) []ModelWeight {
	var weights []ModelWeight
	for _, r := range records {
		if r.Target.IsZero() {
			continue
		}
		weights = append(weights, ModelWeight{Ticker: r.Ticker, Fraction: r.Target})
	}
	return weights
}
