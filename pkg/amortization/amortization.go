// Package amortization generates loan amortization schedules: a level monthly
// installment over a fixed term, day-accurate interest accrual under variable
// annual rates, and one-time or recurring extra principal payments subject to
// early-payment penalty fees.
//
// All monetary amounts and rates are shopspring decimals; intermediate values
// are never rounded, so display layers decide their own precision.
package amortization

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/iwvelando/amortize/pkg/constants"
	"github.com/iwvelando/amortize/pkg/datetime"
	"github.com/iwvelando/amortize/pkg/format"
)

var (
	one               = decimal.NewFromInt(1)
	percentageDivisor = decimal.NewFromInt(constants.PercentageDivisor)
	monthsPerYear     = decimal.NewFromInt(constants.MonthsPerYear)
	daysPerYear       = decimal.NewFromInt(constants.DaysPerYear)
)

// Loan describes the parameters of a loan to amortize.
type Loan struct {
	// Amount is the principal borrowed. Must be positive.
	Amount decimal.Decimal

	// Term is the loan duration; build it with NewTerm.
	Term Term

	// InterestRate is the base annual nominal rate in percent (5.5 means
	// 5.5%, not 0.055). Must be non-negative.
	InterestRate decimal.Decimal

	// EarlyPaymentFees is the penalty applied to extra principal payments.
	// Optional; the zero value charges nothing.
	EarlyPaymentFees EarlyPaymentFees

	// Policy selects how rate changes prorate within a payment period.
	// Optional; empty defaults to WholeMonth.
	Policy ProrationPolicy
}

// Schedule is a configured loan whose amortization schedule can be generated
// repeatedly. Rate changes and extra payments are registered through the Add
// methods before generating; Generate snapshots the configuration, so later
// additions require a new Generate call.
//
// A Schedule is not safe for concurrent use.
type Schedule struct {
	logger *zap.Logger

	amount       decimal.Decimal
	term         Term
	interestRate decimal.Decimal
	fees         EarlyPaymentFees
	policy       ProrationPolicy

	rateChanges []RateChange
	oneTime     []OneTimeExtraPayment
	recurring   []RecurringExtraPayment

	lastTotals *ScheduleTotals
}

// NewSchedule validates the loan parameters and returns a schedule for them.
// A nil logger disables logging.
func NewSchedule(logger *zap.Logger, loan Loan) (*Schedule, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loan.Amount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidAmount, loan.Amount)
	}
	if loan.Term.Periods() == 0 {
		return nil, fmt.Errorf("%w: term must include a positive number of months or years", ErrInvalidTerm)
	}
	if loan.InterestRate.IsNegative() {
		return nil, fmt.Errorf("%w: got %s", ErrNegativeRate, loan.InterestRate)
	}
	if err := loan.EarlyPaymentFees.validate(); err != nil {
		return nil, err
	}
	policy := loan.Policy
	if policy == "" {
		policy = WholeMonth
	}
	if _, err := ParseProrationPolicy(string(policy)); err != nil {
		return nil, err
	}

	return &Schedule{
		logger:       logger,
		amount:       loan.Amount,
		term:         loan.Term,
		interestRate: loan.InterestRate,
		fees:         loan.EarlyPaymentFees,
		policy:       policy,
	}, nil
}

// String describes the loan, e.g.
// "250,000.00 over 30 years at 5.50% yearly interest rate".
func (s *Schedule) String() string {
	return fmt.Sprintf("%s over %s at %s%% yearly interest rate",
		format.NumericCurrency(s.amount), s.term, s.interestRate.StringFixed(2))
}

// Amount returns the principal borrowed.
func (s *Schedule) Amount() decimal.Decimal { return s.amount }

// Term returns the loan duration.
func (s *Schedule) Term() Term { return s.term }

// InterestRate returns the base annual rate in percent.
func (s *Schedule) InterestRate() decimal.Decimal { return s.interestRate }

// Policy returns the proration policy in effect.
func (s *Schedule) Policy() ProrationPolicy { return s.policy }

// Periods returns the total number of monthly payment periods.
func (s *Schedule) Periods() int { return s.term.Periods() }

// AddInterestRateChange registers a new annual rate, in percent, effective
// from the given date forward. Changes may be registered in any order; two
// changes on the same date resolve to the one registered last.
func (s *Schedule) AddInterestRateChange(effectiveDate time.Time, yearlyRate decimal.Decimal) error {
	if yearlyRate.IsNegative() {
		return fmt.Errorf("%w: got %s effective %s", ErrNegativeRate, yearlyRate,
			effectiveDate.Format(datetime.DateLayout))
	}
	s.rateChanges = append(s.rateChanges, RateChange{
		EffectiveDate: datetime.Normalize(effectiveDate),
		YearlyRate:    yearlyRate,
	})
	sort.SliceStable(s.rateChanges, func(i, j int) bool {
		return s.rateChanges[i].EffectiveDate.Before(s.rateChanges[j].EffectiveDate)
	})
	return nil
}

// AddOneTimeExtraPayment registers a single extra principal payment on a date.
func (s *Schedule) AddOneTimeExtraPayment(date time.Time, amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return fmt.Errorf("%w: amount must be positive, got %s on %s", ErrInvalidExtraPayment,
			amount, date.Format(datetime.DateLayout))
	}
	s.oneTime = append(s.oneTime, OneTimeExtraPayment{
		Date:   datetime.Normalize(date),
		Amount: amount,
	})
	return nil
}

// AddRecurringExtraPayment registers count monthly extra principal payments
// starting on startDate.
func (s *Schedule) AddRecurringExtraPayment(startDate time.Time, amount decimal.Decimal, count int) error {
	if count <= 0 {
		return fmt.Errorf("%w: count must be positive, got %d", ErrInvalidRecurringPayment, count)
	}
	if amount.Sign() <= 0 {
		return fmt.Errorf("%w: amount must be positive, got %s starting %s", ErrInvalidRecurringPayment,
			amount, startDate.Format(datetime.DateLayout))
	}
	s.recurring = append(s.recurring, RecurringExtraPayment{
		StartDate: datetime.Normalize(startDate),
		Amount:    amount,
		Count:     count,
	})
	return nil
}

// discountFactor is the annuity factor that levels the loan into equal
// monthly installments at the base rate: ((1+r)^n - 1) / (r * (1+r)^n) for
// monthly rate r over n periods, degenerating to n when r is zero.
func (s *Schedule) discountFactor() decimal.Decimal {
	rate := s.interestRate.Div(percentageDivisor).Div(monthsPerYear)
	if rate.IsZero() {
		return decimal.NewFromInt(int64(s.Periods()))
	}
	compound := one
	base := one.Add(rate)
	for n := 0; n < s.Periods(); n++ {
		compound = compound.Mul(base)
	}
	return compound.Sub(one).Div(rate.Mul(compound))
}

// MonthlyInstallment returns the level monthly payment derived from the base
// rate. Rate changes and extra payments never re-derive it.
func (s *Schedule) MonthlyInstallment() decimal.Decimal {
	return s.amount.Div(s.discountFactor())
}

// TotalAmountPaid returns the total outflow of the last fully consumed
// generation. Before any generation has run it estimates the level-payment
// total, installment times periods.
func (s *Schedule) TotalAmountPaid() decimal.Decimal {
	if s.lastTotals != nil {
		return s.lastTotals.TotalOutflow()
	}
	return s.MonthlyInstallment().Mul(decimal.NewFromInt(int64(s.Periods())))
}

// TotalInterestPaid returns the interest paid over the last fully consumed
// generation, or the level-payment estimate before any generation has run.
func (s *Schedule) TotalInterestPaid() decimal.Decimal {
	if s.lastTotals != nil {
		return s.lastTotals.Interest
	}
	return s.TotalAmountPaid().Sub(s.amount)
}

// LastTotals returns the totals of the most recent fully consumed generation.
// The second return is false until an iterator has been drained.
func (s *Schedule) LastTotals() (ScheduleTotals, bool) {
	if s.lastTotals == nil {
		return ScheduleTotals{}, false
	}
	return *s.lastTotals, true
}

func (s *Schedule) setLastTotals(totals ScheduleTotals) {
	s.lastTotals = &totals
}

// Generate returns an iterator over the schedule's installments, with the
// first payment period opening on startDate. The iterator works from a
// snapshot of the current configuration.
func (s *Schedule) Generate(startDate time.Time) *Iterator {
	start := datetime.Normalize(startDate)
	s.logger.Debug(fmt.Sprintf("generating schedule for %s starting %s", s, start.Format(datetime.DateLayout)),
		zap.String("op", "amortization.Generate"),
	)
	return &Iterator{
		owner:  s,
		logger: s.logger,
		plan: plan{
			installment: s.MonthlyInstallment(),
			periods:     s.term.Periods(),
			baseRate:    s.interestRate,
			fees:        s.fees,
			policy:      s.policy,
			rateChanges: append([]RateChange(nil), s.rateChanges...),
			oneTime:     append([]OneTimeExtraPayment(nil), s.oneTime...),
			recurring:   append([]RecurringExtraPayment(nil), s.recurring...),
		},
		periodStart: start,
		balance:     s.amount,
	}
}

// GenerateAll runs a full generation and returns every installment.
func (s *Schedule) GenerateAll(startDate time.Time) []Installment {
	var installments []Installment
	it := s.Generate(startDate)
	for it.Next() {
		installments = append(installments, it.Installment())
	}
	return installments
}
