package amortization

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is the monetary split of a single schedule row.
type Payment struct {
	Kind      PaymentKind
	Principal decimal.Decimal
	Interest  decimal.Decimal
	Fees      decimal.Decimal
}

// Total returns the full outflow of the payment: principal plus interest plus fees.
func (p Payment) Total() decimal.Decimal {
	return p.Principal.Add(p.Interest).Add(p.Fees)
}

// Balance is the outstanding principal surrounding a payment.
type Balance struct {
	Before decimal.Decimal
	After  decimal.Decimal
}

// Installment is one row of an amortization schedule: a scheduled monthly
// payment or an extra principal payment.
type Installment struct {
	// Sequence is the 1-based scheduled payment number. Extra payment rows
	// carry no sequence and leave it 0.
	Sequence int
	Date     time.Time
	Payment  Payment
	Balance  Balance
}

// Scheduled reports whether the row is a scheduled monthly payment.
func (inst Installment) Scheduled() bool { return inst.Payment.Kind == KindScheduled }

// Year returns the calendar year of the row's date.
func (inst Installment) Year() int { return inst.Date.Year() }

// Month returns the calendar month of the row's date.
func (inst Installment) Month() time.Month { return inst.Date.Month() }

// MonthName returns the English month name of the row's date.
func (inst Installment) MonthName() string { return inst.Date.Month().String() }

// ScheduleTotals summarizes a fully consumed schedule generation.
type ScheduleTotals struct {
	Principal decimal.Decimal
	Interest  decimal.Decimal
	Fees      decimal.Decimal
	// Months is the number of scheduled payments that were made.
	Months int
	// PaidOff reports whether the balance reached zero.
	PaidOff bool
}

// TotalOutflow returns all money paid over the generation: principal plus
// interest plus fees.
func (t ScheduleTotals) TotalOutflow() decimal.Decimal {
	return t.Principal.Add(t.Interest).Add(t.Fees)
}
