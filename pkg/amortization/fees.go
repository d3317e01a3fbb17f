package amortization

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// EarlyPaymentFees is the penalty charged on extra principal payments: a
// fixed component plus a percentage of the payment amount. The zero value
// charges nothing.
type EarlyPaymentFees struct {
	Fixed   decimal.Decimal
	Percent decimal.Decimal
}

// Penalty returns the fee withheld from an extra payment of the given amount.
func (f EarlyPaymentFees) Penalty(amount decimal.Decimal) decimal.Decimal {
	percentFee := amount.Mul(f.Percent.Div(percentageDivisor))
	return f.Fixed.Add(percentFee)
}

// Principal returns the portion of an extra payment of the given amount that
// reduces the balance once the penalty is withheld. It is negative when the
// penalty exceeds the payment itself, in which case the balance grows.
func (f EarlyPaymentFees) Principal(amount decimal.Decimal) decimal.Decimal {
	return amount.Sub(f.Penalty(amount))
}

func (f EarlyPaymentFees) validate() error {
	if f.Fixed.IsNegative() || f.Percent.IsNegative() {
		return fmt.Errorf("%w: fixed=%s percent=%s", ErrInvalidFees, f.Fixed, f.Percent)
	}
	return nil
}
