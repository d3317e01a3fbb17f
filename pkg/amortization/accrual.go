package amortization

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/iwvelando/amortize/pkg/datetime"
)

// accrualResult is the outcome of walking one payment period.
type accrualResult struct {
	// interest accrued over [periodStart, periodEnd)
	interest decimal.Decimal
	// balance at periodEnd, before the scheduled payment
	balance decimal.Decimal
	// rows for extras applied before periodEnd, chronological
	extrasBeforeEnd []Installment
	// extras dated exactly on periodEnd, still unapplied
	extrasOnEnd []extraOccurrence
}

// applyExtraPayment turns an extra payment request into a schedule row. The
// requested amount is capped at the outstanding balance, and the capped
// amount is split into principal and penalty fees. The row is nil when
// nothing is payable.
func (it *Iterator) applyExtraPayment(kind PaymentKind, dt time.Time, requested, balance decimal.Decimal) (*Installment, decimal.Decimal) {
	if balance.Sign() <= 0 {
		return nil, balance
	}

	amount := decimal.Min(requested, balance)
	if amount.Sign() <= 0 {
		return nil, balance
	}
	if requested.GreaterThan(balance) {
		it.logger.Debug("capping extra payment to the remaining balance",
			zap.String("op", "amortization.applyExtraPayment"),
			zap.String("date", dt.Format(datetime.DateLayout)),
			zap.String("requested", requested.String()),
			zap.String("balance", balance.String()))
	}

	penalty := it.plan.fees.Penalty(amount)
	principal := it.plan.fees.Principal(amount)
	before := balance
	after := before.Sub(principal)
	row := Installment{
		Date: dt,
		Payment: Payment{
			Kind:      kind,
			Principal: principal,
			Interest:  decimal.Zero,
			Fees:      penalty,
		},
		Balance: Balance{Before: before, After: after},
	}
	return &row, after
}

// accrueAndApplyExtras walks [periodStart, periodEnd): extras are applied as
// principal curtailments on their dates, and daily interest accrues on the
// running balance across each segment between cut points. Cut points come
// from the period boundaries, the policy-selected rate changes, and the extra
// payment dates.
func (it *Iterator) accrueAndApplyExtras(startingBalance decimal.Decimal, periodStart, periodEnd time.Time, extras []extraOccurrence) accrualResult {
	extrasByDate, extrasOnEnd := splitExtrasForPeriodEnd(extras, periodEnd)

	cutPoints := map[time.Time]struct{}{periodStart: {}, periodEnd: {}}
	for dt := range it.rateChangeCutPoints(periodStart, periodEnd) {
		cutPoints[dt] = struct{}{}
	}
	for dt := range extrasByDate {
		cutPoints[dt] = struct{}{}
	}
	points := make([]time.Time, 0, len(cutPoints))
	for dt := range cutPoints {
		points = append(points, dt)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Before(points[j]) })

	result := accrualResult{interest: decimal.Zero, extrasOnEnd: extrasOnEnd}
	balance := startingBalance

	for idx := 0; idx < len(points)-1; idx++ {
		segStart, segEnd := points[idx], points[idx+1]

		for _, pending := range extrasByDate[segStart] {
			var row *Installment
			row, balance = it.applyExtraPayment(pending.kind, segStart, pending.amount, balance)
			if row != nil {
				result.extrasBeforeEnd = append(result.extrasBeforeEnd, *row)
			}
		}

		if balance.Sign() <= 0 {
			continue
		}

		days := datetime.DaysBetween(segStart, segEnd)
		if days <= 0 {
			continue
		}

		dailyRate := it.dailyRateForSegment(periodStart, segStart)
		result.interest = result.interest.Add(balance.Mul(dailyRate).Mul(decimal.NewFromInt(int64(days))))
	}

	result.balance = balance
	return result
}
