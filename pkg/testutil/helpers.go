// Package testutil provides common utility functions for testing.
package testutil

import (
	"time"

	"github.com/iwvelando/amortize/pkg/amortization"
)

// ScheduledPayments returns only the scheduled installments, in order.
func ScheduledPayments(installments []amortization.Installment) []amortization.Installment {
	var scheduled []amortization.Installment
	for _, installment := range installments {
		if installment.Scheduled() {
			scheduled = append(scheduled, installment)
		}
	}
	return scheduled
}

// ExtraPayments returns only the extra payment installments, in order.
func ExtraPayments(installments []amortization.Installment) []amortization.Installment {
	var extras []amortization.Installment
	for _, installment := range installments {
		if !installment.Scheduled() {
			extras = append(extras, installment)
		}
	}
	return extras
}

// FindBySequence finds a scheduled installment by its sequence number.
// Returns a pointer to the installment if found, nil otherwise.
func FindBySequence(installments []amortization.Installment, sequence int) *amortization.Installment {
	for i := range installments {
		if installments[i].Scheduled() && installments[i].Sequence == sequence {
			return &installments[i]
		}
	}
	return nil
}

// FindByDate finds the first installment on the given date.
// Returns a pointer to the installment if found, nil otherwise.
func FindByDate(installments []amortization.Installment, date time.Time) *amortization.Installment {
	for i := range installments {
		if installments[i].Date.Equal(date) {
			return &installments[i]
		}
	}
	return nil
}
