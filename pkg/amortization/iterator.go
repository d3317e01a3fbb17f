package amortization

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/iwvelando/amortize/pkg/datetime"
)

// plan is the immutable snapshot of a schedule's configuration taken when a
// generation starts. Mutating the schedule afterwards never affects an
// iterator already handed out.
type plan struct {
	installment decimal.Decimal
	periods     int
	baseRate    decimal.Decimal
	fees        EarlyPaymentFees
	policy      ProrationPolicy
	rateChanges []RateChange
	oneTime     []OneTimeExtraPayment
	recurring   []RecurringExtraPayment
}

// Iterator walks an amortization schedule one installment at a time, in the
// manner of bufio.Scanner:
//
//	it := schedule.Generate(startDate)
//	for it.Next() {
//		row := it.Installment()
//	}
//
// Rows are computed lazily, one payment period at a time. When Next returns
// false the generation is complete and the totals are published to the
// schedule.
type Iterator struct {
	owner  *Schedule
	logger *zap.Logger
	plan   plan

	periodStart time.Time
	period      int
	balance     decimal.Decimal

	queue   []Installment
	current Installment

	totalPrincipal decimal.Decimal
	totalInterest  decimal.Decimal
	totalFees      decimal.Decimal
	monthsCount    int

	finished  bool
	published bool
}

// Next advances the iterator to the next installment, reporting whether one
// is available. The first Next call that returns false publishes the
// generation's totals to the schedule.
func (it *Iterator) Next() bool {
	for len(it.queue) == 0 && !it.finished {
		it.advancePeriod()
	}
	if len(it.queue) > 0 {
		it.current = it.queue[0]
		it.queue = it.queue[1:]
		return true
	}
	if !it.published {
		it.publishTotals()
	}
	return false
}

// Installment returns the row produced by the most recent call to Next.
func (it *Iterator) Installment() Installment {
	return it.current
}

// advancePeriod processes one payment period, queueing its rows in emission
// order: extras applied inside the period, then the scheduled payment, then
// extras dated exactly on the period end.
func (it *Iterator) advancePeriod() {
	if it.period >= it.plan.periods {
		it.finished = true
		return
	}
	it.period++

	periodStart := it.periodStart
	periodEnd := datetime.NextMonth(periodStart)

	extras := it.extrasForPeriod(periodStart, periodEnd)
	result := it.accrueAndApplyExtras(it.balance, periodStart, periodEnd, extras)

	for _, row := range result.extrasBeforeEnd {
		it.queueExtra(row)
	}

	it.balance = result.balance
	if it.balance.Sign() <= 0 {
		// Paid off via extra payments before the scheduled payment date.
		it.logger.Debug(fmt.Sprintf("%s: balance cleared by extra payments before the scheduled payment",
			periodEnd.Format(datetime.DateLayout)),
			zap.String("op", "amortization.Iterator"),
		)
		it.periodStart = periodEnd
		it.finished = true
		return
	}

	scheduledPrincipal := it.plan.installment.Sub(result.interest)
	if scheduledPrincipal.IsNegative() {
		scheduledPrincipal = decimal.Zero
	}

	principal := decimal.Min(scheduledPrincipal, it.balance)
	before := it.balance
	after := before.Sub(principal)

	it.queue = append(it.queue, Installment{
		Sequence: it.period,
		Date:     periodEnd,
		Payment: Payment{
			Kind:      KindScheduled,
			Principal: principal,
			Interest:  result.interest,
			Fees:      decimal.Zero,
		},
		Balance: Balance{Before: before, After: after},
	})

	it.totalInterest = it.totalInterest.Add(result.interest)
	it.totalPrincipal = it.totalPrincipal.Add(principal)
	it.monthsCount = it.period
	it.balance = after

	if it.balance.Sign() <= 0 {
		// The scheduled payment cleared the loan; extras dated on the period
		// end are moot.
		it.periodStart = periodEnd
		it.finished = true
		return
	}

	// Extras dated exactly on the period end apply after the scheduled payment.
	for _, extra := range result.extrasOnEnd {
		row, balance := it.applyExtraPayment(extra.kind, extra.date, extra.amount, it.balance)
		if row == nil {
			continue
		}
		it.balance = balance
		it.queueExtra(*row)
	}

	it.periodStart = periodEnd
	if it.balance.Sign() <= 0 {
		it.finished = true
	}
}

// queueExtra enqueues an extra payment row and folds it into the running totals.
func (it *Iterator) queueExtra(row Installment) {
	it.logger.Debug(fmt.Sprintf("%s: applying %s payment, principal %s with fees %s",
		row.Date.Format(datetime.DateLayout), row.Payment.Kind,
		row.Payment.Principal.StringFixed(2), row.Payment.Fees.StringFixed(2)),
		zap.String("op", "amortization.Iterator"),
	)
	it.queue = append(it.queue, row)
	it.totalPrincipal = it.totalPrincipal.Add(row.Payment.Principal)
	it.totalFees = it.totalFees.Add(row.Payment.Fees)
}

// publishTotals hands the generation's totals back to the owning schedule.
func (it *Iterator) publishTotals() {
	totals := ScheduleTotals{
		Principal: it.totalPrincipal,
		Interest:  it.totalInterest,
		Fees:      it.totalFees,
		Months:    it.monthsCount,
		PaidOff:   it.balance.Sign() <= 0,
	}
	it.owner.setLastTotals(totals)
	it.published = true
	it.logger.Debug(fmt.Sprintf("generation complete: %d scheduled payments, paid off: %t",
		totals.Months, totals.PaidOff),
		zap.String("op", "amortization.Iterator"),
	)
}
