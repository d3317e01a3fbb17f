package amortization

// PaymentKind identifies what produced a schedule row.
type PaymentKind string

const (
	// KindScheduled is a regular monthly installment.
	KindScheduled PaymentKind = "scheduled"

	// KindOneTimeExtra is a single extra principal payment.
	KindOneTimeExtra PaymentKind = "one_time_extra"

	// KindRecurringExtra is one occurrence of a recurring extra principal payment.
	KindRecurringExtra PaymentKind = "recurring_extra"
)

// String returns the wire representation of the kind.
func (k PaymentKind) String() string { return string(k) }

// sortOrder breaks date ties when ordering extra payments: one-time extras
// apply before recurring ones falling on the same day.
func (k PaymentKind) sortOrder() int {
	switch k {
	case KindOneTimeExtra:
		return 0
	case KindRecurringExtra:
		return 1
	default:
		return 2
	}
}
