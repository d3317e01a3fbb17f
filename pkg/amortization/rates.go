package amortization

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iwvelando/amortize/pkg/datetime"
)

// RateChange is an annual nominal interest rate, in percent (e.g. 5.25 for
// 5.25%), effective from a date forward.
type RateChange struct {
	EffectiveDate time.Time
	YearlyRate    decimal.Decimal
}

// yearlyRatePercentFor returns the annual rate, in percent, in effect on dt:
// the latest registered change on or before dt, falling back to the base
// rate. The change list is kept sorted by effective date with insertion order
// preserved, so two changes on the same date resolve to the one added last.
func (it *Iterator) yearlyRatePercentFor(dt time.Time) decimal.Decimal {
	rate := it.plan.baseRate
	for _, change := range it.plan.rateChanges {
		if change.EffectiveDate.After(dt) {
			break
		}
		rate = change.YearlyRate
	}
	return rate
}

// dailyRateFor returns the daily rate fraction in effect on dt. The yearly
// fraction is divided by a fixed 365-day year, leap years included.
func (it *Iterator) dailyRateFor(dt time.Time) decimal.Decimal {
	return it.yearlyRatePercentFor(dt).Div(percentageDivisor).Div(daysPerYear)
}

// dailyRateClamped looks up the daily rate for dt, but never past the end of
// the scheduled calendar month: under ProratedByDaysInMonth, rate changes
// after that month are ignored until the next period.
func (it *Iterator) dailyRateClamped(dt time.Time, scheduledYear int, scheduledMonth time.Month) decimal.Decimal {
	lastDay := datetime.EndOfMonth(scheduledYear, scheduledMonth)
	if dt.After(lastDay) {
		dt = lastDay
	}
	return it.dailyRateFor(dt)
}

// dailyRateForSegment returns the daily rate for an accrual segment starting
// at segStart within the period starting at periodStart.
func (it *Iterator) dailyRateForSegment(periodStart, segStart time.Time) decimal.Decimal {
	switch it.plan.policy {
	case ProratedByDaysInMonth:
		return it.dailyRateClamped(segStart, periodStart.Year(), periodStart.Month())
	case ProratedByPaymentPeriod:
		return it.dailyRateFor(segStart)
	case WholeMonth:
		return it.dailyRateFor(periodStart)
	default:
		return it.dailyRateFor(periodStart)
	}
}

// rateChangeCutPoints returns the dates strictly inside (periodStart,
// periodEnd) where the accrual rate changes under the configured policy.
func (it *Iterator) rateChangeCutPoints(periodStart, periodEnd time.Time) map[time.Time]struct{} {
	points := make(map[time.Time]struct{})
	switch it.plan.policy {
	case WholeMonth:
		// A single rate covers the whole period.
	case ProratedByDaysInMonth:
		scheduledYear, scheduledMonth := periodStart.Year(), periodStart.Month()
		for _, change := range it.plan.rateChanges {
			dt := change.EffectiveDate
			if dt.Year() == scheduledYear && dt.Month() == scheduledMonth &&
				dt.After(periodStart) && dt.Before(periodEnd) {
				points[dt] = struct{}{}
			}
		}
	case ProratedByPaymentPeriod:
		for _, change := range it.plan.rateChanges {
			dt := change.EffectiveDate
			if dt.After(periodStart) && dt.Before(periodEnd) {
				points[dt] = struct{}{}
			}
		}
	}
	return points
}
