package amortization

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iwvelando/amortize/pkg/datetime"
)

// OneTimeExtraPayment is a single extra principal payment on a date.
type OneTimeExtraPayment struct {
	Date   time.Time
	Amount decimal.Decimal
}

// RecurringExtraPayment is a series of extra principal payments made monthly
// from StartDate, Count times. Occurrences step from date to date with
// day-of-month clamping, so a series starting Jan 31 continues Feb 28 and
// then Mar 28.
type RecurringExtraPayment struct {
	StartDate time.Time
	Amount    decimal.Decimal
	Count     int
}

// extraOccurrence is one concrete extra payment candidate within a period.
type extraOccurrence struct {
	kind   PaymentKind
	date   time.Time
	amount decimal.Decimal
}

// extrasForPeriod collects the extra payments dated within [periodStart,
// periodEnd], inclusive of both ends, ordered by date with one-time extras
// ahead of recurring ones on the same day.
func (it *Iterator) extrasForPeriod(periodStart, periodEnd time.Time) []extraOccurrence {
	var extras []extraOccurrence

	for _, oneTime := range it.plan.oneTime {
		if inWindow(oneTime.Date, periodStart, periodEnd) {
			extras = append(extras, extraOccurrence{
				kind:   KindOneTimeExtra,
				date:   oneTime.Date,
				amount: oneTime.Amount,
			})
		}
	}

	for _, recurring := range it.plan.recurring {
		dt := recurring.StartDate
		for n := 0; n < recurring.Count; n++ {
			if inWindow(dt, periodStart, periodEnd) {
				extras = append(extras, extraOccurrence{
					kind:   KindRecurringExtra,
					date:   dt,
					amount: recurring.Amount,
				})
			}
			dt = datetime.NextMonth(dt)
		}
	}

	sort.SliceStable(extras, func(i, j int) bool {
		if !extras[i].date.Equal(extras[j].date) {
			return extras[i].date.Before(extras[j].date)
		}
		return extras[i].kind.sortOrder() < extras[j].kind.sortOrder()
	})
	return extras
}

func inWindow(dt, start, end time.Time) bool {
	return !dt.Before(start) && !dt.After(end)
}

// pendingExtra is an extra payment awaiting application on a known date.
type pendingExtra struct {
	kind   PaymentKind
	amount decimal.Decimal
}

// splitExtrasForPeriodEnd partitions a period's extras into those applied
// during accrual, grouped by date, and those dated exactly on the period end,
// which apply only after the scheduled payment.
func splitExtrasForPeriodEnd(extras []extraOccurrence, periodEnd time.Time) (map[time.Time][]pendingExtra, []extraOccurrence) {
	extrasByDate := make(map[time.Time][]pendingExtra)
	var extrasOnEnd []extraOccurrence

	for _, extra := range extras {
		if extra.date.Equal(periodEnd) {
			extrasOnEnd = append(extrasOnEnd, extra)
			continue
		}
		if extra.date.Before(periodEnd) {
			extrasByDate[extra.date] = append(extrasByDate[extra.date], pendingExtra{
				kind:   extra.kind,
				amount: extra.amount,
			})
		}
	}

	return extrasByDate, extrasOnEnd
}
