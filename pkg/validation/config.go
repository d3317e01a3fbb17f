// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"
	"time"

	"github.com/iwvelando/amortize/pkg/datetime"
)

// MaturityDate returns the date of a loan's final scheduled payment:
// termMonths month steps from the start date, with day-of-month clamping.
func MaturityDate(startDate time.Time, termMonths int) time.Time {
	date := datetime.Normalize(startDate)
	for n := 0; n < termMonths; n++ {
		date = datetime.NextMonth(date)
	}
	return date
}

// ValidateExtraPaymentDate checks if a one-time extra payment falls within the
// loan's life, returning a warning when it can never apply.
func ValidateExtraPaymentDate(paymentDate, startDate, maturityDate time.Time) string {
	if paymentDate.Before(startDate) {
		return fmt.Sprintf("Extra payment on %s predates the loan start (%s) - it will never apply",
			paymentDate.Format(datetime.DateLayout), startDate.Format(datetime.DateLayout))
	}
	if paymentDate.After(maturityDate) {
		return fmt.Sprintf("Extra payment on %s falls after the final payment (%s) - it will never apply",
			paymentDate.Format(datetime.DateLayout), maturityDate.Format(datetime.DateLayout))
	}
	return ""
}

// ValidateRateChangeDate checks if a rate change takes effect within the
// loan's life. Changes dated before the start are fine; they simply apply
// from the first payment period.
func ValidateRateChangeDate(effectiveDate, maturityDate time.Time) string {
	if effectiveDate.After(maturityDate) {
		return fmt.Sprintf("Rate change on %s takes effect after the final payment (%s) - it will never apply",
			effectiveDate.Format(datetime.DateLayout), maturityDate.Format(datetime.DateLayout))
	}
	return ""
}

// RecurringSeries describes a monthly series of extra payments for validation.
type RecurringSeries struct {
	StartDate time.Time
	Count     int
}

// ValidateRecurringSeries checks if a recurring series falls within the
// loan's life and returns warnings for the parts that do not.
func ValidateRecurringSeries(series RecurringSeries, startDate, maturityDate time.Time) []string {
	var warnings []string
	if series.Count <= 0 {
		// Count validity is enforced when the schedule is built.
		return warnings
	}

	if series.StartDate.Before(startDate) {
		warnings = append(warnings, fmt.Sprintf("Recurring extra payments starting %s begin before the loan start (%s) - leading payments will never apply",
			series.StartDate.Format(datetime.DateLayout), startDate.Format(datetime.DateLayout)))
	}
	if series.StartDate.After(maturityDate) {
		warnings = append(warnings, fmt.Sprintf("Recurring extra payments starting %s begin after the final payment (%s) - they will never apply",
			series.StartDate.Format(datetime.DateLayout), maturityDate.Format(datetime.DateLayout)))
		return warnings
	}

	last := datetime.Normalize(series.StartDate)
	for n := 1; n < series.Count; n++ {
		last = datetime.NextMonth(last)
	}
	if last.After(maturityDate) {
		warnings = append(warnings, fmt.Sprintf("Recurring extra payments starting %s extend past the final payment (%s) - trailing payments will never apply",
			series.StartDate.Format(datetime.DateLayout), maturityDate.Format(datetime.DateLayout)))
	}

	return warnings
}

// ScheduleValidator performs comprehensive date validation over a loan
// configuration.
type ScheduleValidator struct {
	StartDate         time.Time
	TermMonths        int
	ExtraPaymentDates []time.Time
	RecurringSeries   []RecurringSeries
	RateChangeDates   []time.Time
}

// ValidateAll validates the entire configuration and returns warnings.
func (sv *ScheduleValidator) ValidateAll() []string {
	var warnings []string

	startDate := datetime.Normalize(sv.StartDate)
	maturityDate := MaturityDate(startDate, sv.TermMonths)

	for _, paymentDate := range sv.ExtraPaymentDates {
		if warning := ValidateExtraPaymentDate(datetime.Normalize(paymentDate), startDate, maturityDate); warning != "" {
			warnings = append(warnings, warning)
		}
	}

	for _, series := range sv.RecurringSeries {
		warnings = append(warnings, ValidateRecurringSeries(series, startDate, maturityDate)...)
	}

	for _, effectiveDate := range sv.RateChangeDates {
		if warning := ValidateRateChangeDate(datetime.Normalize(effectiveDate), maturityDate); warning != "" {
			warnings = append(warnings, warning)
		}
	}

	return warnings
}
