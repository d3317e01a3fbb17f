package amortization

import (
	"fmt"

	"github.com/iwvelando/amortize/pkg/constants"
)

// Term is a loan duration in years and months, normalized so the month
// component is always in [0, 12).
type Term struct {
	years  int
	months int
}

// NewTerm builds a normalized Term. Both components must be non-negative and
// together they must cover at least one month.
func NewTerm(years, months int) (Term, error) {
	if years < 0 || months < 0 {
		return Term{}, fmt.Errorf("%w: years and months must be non-negative, got %d years and %d months",
			ErrInvalidTerm, years, months)
	}
	total := years*constants.MonthsPerYear + months
	if total == 0 {
		return Term{}, fmt.Errorf("%w: term must include a positive number of months or years", ErrInvalidTerm)
	}
	return Term{
		years:  total / constants.MonthsPerYear,
		months: total % constants.MonthsPerYear,
	}, nil
}

// Years returns the normalized year component.
func (t Term) Years() int { return t.years }

// Months returns the normalized month component.
func (t Term) Months() int { return t.months }

// Periods returns the total number of monthly payment periods.
func (t Term) Periods() int { return t.years*constants.MonthsPerYear + t.months }

// String renders the term as it is spoken: "30 years", "7 months",
// "1 year and 6 months".
func (t Term) String() string {
	if t.years == 0 {
		return plural(t.months, "month")
	}
	if t.months == 0 {
		return plural(t.years, "year")
	}
	return plural(t.years, "year") + " and " + plural(t.months, "month")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
