package rebalance

import "fmt"

// ConfigurationError reports an inconsistent portfolio description: a weight
// sum off by more than the tolerance, a ticker present on one side only, or
// a non-positive price. The pipeline aborts, nothing is computed.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "invalid portfolio configuration: " + e.Reason
}

// InsufficientFundsError reports a withdrawal larger than the portfolio
// itself: applying the cash flow would drive the total value to zero or below.
type InsufficientFundsError struct {
	Withdrawal Money // absolute amount withdrawn
	Available  Money // portfolio value before the withdrawal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("withdrawal of %s exceeds portfolio value %s",
		e.Withdrawal, e.Available)
}

// ValidationMismatch reports a discrepancy between an externally supplied
// dollar figure and the internally computed one. It signals a transcription
// error in the upstream input, not a bug in the allocation itself.
type ValidationMismatch struct {
	Ticker   string
	Figure   string // "balanced" or "actual"
	Supplied Money
	Computed Money
}

func (e *ValidationMismatch) Error() string {
	return fmt.Sprintf("%s: supplied %s amount %s does not match computed %s",
		e.Ticker, e.Figure, e.Supplied, e.Computed)
}
