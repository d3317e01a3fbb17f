package amortization

import "fmt"

// ProrationPolicy selects how interest accrual honors rate changes that fall
// inside a payment period.
type ProrationPolicy string

const (
	// WholeMonth applies the single rate in effect at the period start to the
	// entire period.
	WholeMonth ProrationPolicy = "whole_month"

	// ProratedByDaysInMonth prorates interest by day ranges, honoring only
	// rate changes within the period's scheduled calendar month. Changes past
	// the end of that month are ignored until the next period.
	ProratedByDaysInMonth ProrationPolicy = "prorated_by_days_in_month"

	// ProratedByPaymentPeriod prorates interest by day ranges across the full
	// payment-to-payment period.
	ProratedByPaymentPeriod ProrationPolicy = "prorated_by_payment_period"
)

// ParseProrationPolicy converts a wire string into a ProrationPolicy.
func ParseProrationPolicy(s string) (ProrationPolicy, error) {
	switch p := ProrationPolicy(s); p {
	case WholeMonth, ProratedByDaysInMonth, ProratedByPaymentPeriod:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
	}
}

// String returns the wire representation of the policy.
func (p ProrationPolicy) String() string { return string(p) }
