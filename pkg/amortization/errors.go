package amortization

import "errors"

// Sentinel errors returned from schedule construction and mutation. Callers
// can match them with errors.Is; the wrapped message carries the offending
// values.
var (
	ErrInvalidAmount           = errors.New("loan amount must be positive")
	ErrInvalidTerm             = errors.New("invalid term")
	ErrNegativeRate            = errors.New("interest rate must be non-negative")
	ErrInvalidFees             = errors.New("early payment fees must be non-negative")
	ErrInvalidPolicy           = errors.New("unknown proration policy")
	ErrInvalidExtraPayment     = errors.New("invalid extra payment")
	ErrInvalidRecurringPayment = errors.New("invalid recurring extra payment")
)
