// Package config defines conversion utilities for configuration objects.
package config

import (
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/iwvelando/amortize/pkg/amortization"
	"github.com/iwvelando/amortize/pkg/datetime"
)

// ToSchedule converts a config.Loan into an amortization.Schedule with all
// rate changes and extra payments registered, and returns the start date the
// schedule should be generated from. Configuration amounts are float64 for
// YAML friendliness; they become decimals here and stay exact afterwards.
func (loan *Loan) ToSchedule(logger *zap.Logger) (*amortization.Schedule, time.Time, error) {
	term, err := amortization.NewTerm(loan.Term.Years, loan.Term.Months)
	if err != nil {
		return nil, time.Time{}, err
	}

	schedule, err := amortization.NewSchedule(logger, amortization.Loan{
		Amount:       decimal.NewFromFloat(loan.Amount),
		Term:         term,
		InterestRate: decimal.NewFromFloat(loan.InterestRate),
		EarlyPaymentFees: amortization.EarlyPaymentFees{
			Fixed:   decimal.NewFromFloat(loan.EarlyPaymentFees.Fixed),
			Percent: decimal.NewFromFloat(loan.EarlyPaymentFees.Percent),
		},
		Policy: amortization.ProrationPolicy(loan.ProrationPolicy),
	})
	if err != nil {
		return nil, time.Time{}, err
	}

	for _, change := range loan.InterestRateChanges {
		if err := schedule.AddInterestRateChange(change.Date, decimal.NewFromFloat(change.Rate)); err != nil {
			return nil, time.Time{}, err
		}
	}
	for _, extra := range loan.ExtraPayments {
		if err := schedule.AddOneTimeExtraPayment(extra.Date, decimal.NewFromFloat(extra.Amount)); err != nil {
			return nil, time.Time{}, err
		}
	}
	for _, recurring := range loan.RecurringExtraPayments {
		if err := schedule.AddRecurringExtraPayment(recurring.StartDate, decimal.NewFromFloat(recurring.Amount), recurring.Count); err != nil {
			return nil, time.Time{}, err
		}
	}

	startDate := loan.StartDate
	if startDate.IsZero() {
		startDate = datetime.Today()
	}
	return schedule, datetime.Normalize(startDate), nil
}
