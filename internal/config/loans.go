// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"time"

	"github.com/iwvelando/amortize/pkg/constants"
)

// Loan indicates a loan and its parameters.
type Loan struct {
	Amount                 float64
	InterestRate           float64 `mapstructure:"interestRate"`
	Term                   Term
	StartDate              time.Time `mapstructure:"startDate"`
	ProrationPolicy        string    `mapstructure:"prorationPolicy"`
	EarlyPaymentFees       EarlyPaymentFees
	InterestRateChanges    []RateChange     `mapstructure:"interestRateChanges"`
	ExtraPayments          []ExtraPayment   `mapstructure:"extraPayments"`
	RecurringExtraPayments []RecurringExtra `mapstructure:"recurringExtraPayments"`
}

// Term holds the loan duration split into years and months.
type Term struct {
	Years  int
	Months int
}

// TotalMonths returns the term length in months.
func (t Term) TotalMonths() int {
	return t.Years*constants.MonthsPerYear + t.Months
}

// EarlyPaymentFees holds the penalty applied to extra principal payments.
type EarlyPaymentFees struct {
	Fixed   float64
	Percent float64
}

// RateChange indicates a new yearly interest rate taking effect on a date.
type RateChange struct {
	Date time.Time
	Rate float64
}

// ExtraPayment indicates a single extra principal payment.
type ExtraPayment struct {
	Date   time.Time
	Amount float64
}

// RecurringExtra indicates a monthly series of extra principal payments.
type RecurringExtra struct {
	StartDate time.Time `mapstructure:"startDate"`
	Amount    float64
	Count     int
}
