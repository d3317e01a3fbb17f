package server

import (
	"fmt"

	"github.com/iwvelando/amortize/internal/config"
	"github.com/iwvelando/amortize/pkg/amortization"
	"github.com/iwvelando/amortize/pkg/constants"
	"github.com/iwvelando/amortize/pkg/datetime"
)

// amortizationRequest is the JSON payload accepted by the amortization
// endpoint. Dates are YYYY-MM-DD strings; amounts and rates are numbers.
type amortizationRequest struct {
	Amount                 float64             `json:"amount"`
	InterestRate           float64             `json:"interest_rate"`
	Term                   termPayload         `json:"term"`
	StartDate              string              `json:"startDate,omitempty"`
	ProrationPolicy        string              `json:"prorationPolicy,omitempty"`
	EarlyPaymentFees       *feesPayload        `json:"earlyPaymentFees,omitempty"`
	InterestRateChanges    []rateChangePayload `json:"interestRateChanges,omitempty"`
	ExtraPayments          []extraPayload      `json:"extraPayments,omitempty"`
	RecurringExtraPayments []recurringPayload  `json:"recurringExtraPayments,omitempty"`
}

type termPayload struct {
	Years  int `json:"years"`
	Months int `json:"months"`
}

type feesPayload struct {
	Fixed   float64 `json:"fixed"`
	Percent float64 `json:"percent"`
}

type rateChangePayload struct {
	Date string  `json:"date"`
	Rate float64 `json:"rate"`
}

type extraPayload struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

type recurringPayload struct {
	StartDate string  `json:"startDate"`
	Amount    float64 `json:"amount"`
	Count     int     `json:"count"`
}

// toLoan converts the request into the configuration form shared with the
// CLI, parsing its date strings.
func (req *amortizationRequest) toLoan() (config.Loan, error) {
	loan := config.Loan{
		Amount:          req.Amount,
		InterestRate:    req.InterestRate,
		Term:            config.Term{Years: req.Term.Years, Months: req.Term.Months},
		ProrationPolicy: req.ProrationPolicy,
	}

	if req.StartDate != "" {
		startDate, err := datetime.ParseDate(req.StartDate)
		if err != nil {
			return config.Loan{}, fmt.Errorf("invalid startDate %q: expected YYYY-MM-DD", req.StartDate)
		}
		loan.StartDate = startDate
	}
	if req.EarlyPaymentFees != nil {
		loan.EarlyPaymentFees = config.EarlyPaymentFees{
			Fixed:   req.EarlyPaymentFees.Fixed,
			Percent: req.EarlyPaymentFees.Percent,
		}
	}
	for _, change := range req.InterestRateChanges {
		date, err := datetime.ParseDate(change.Date)
		if err != nil {
			return config.Loan{}, fmt.Errorf("invalid rate change date %q: expected YYYY-MM-DD", change.Date)
		}
		loan.InterestRateChanges = append(loan.InterestRateChanges, config.RateChange{
			Date: date,
			Rate: change.Rate,
		})
	}
	for _, extra := range req.ExtraPayments {
		date, err := datetime.ParseDate(extra.Date)
		if err != nil {
			return config.Loan{}, fmt.Errorf("invalid extra payment date %q: expected YYYY-MM-DD", extra.Date)
		}
		loan.ExtraPayments = append(loan.ExtraPayments, config.ExtraPayment{
			Date:   date,
			Amount: extra.Amount,
		})
	}
	for _, recurring := range req.RecurringExtraPayments {
		startDate, err := datetime.ParseDate(recurring.StartDate)
		if err != nil {
			return config.Loan{}, fmt.Errorf("invalid recurring startDate %q: expected YYYY-MM-DD", recurring.StartDate)
		}
		loan.RecurringExtraPayments = append(loan.RecurringExtraPayments, config.RecurringExtra{
			StartDate: startDate,
			Amount:    recurring.Amount,
			Count:     recurring.Count,
		})
	}

	return loan, nil
}

// amortizationResponse is the JSON document returned by the amortization
// endpoint. Monetary values are fixed to two decimal places as strings so
// clients never see float artifacts.
type amortizationResponse struct {
	Description        string               `json:"description"`
	MonthlyInstallment string               `json:"monthlyInstallment"`
	Installments       []installmentPayload `json:"installments"`
	Totals             totalsPayload        `json:"totals"`
	Warnings           []string             `json:"warnings,omitempty"`
	Duration           string               `json:"duration"`
}

// installmentPayload is one schedule row. Installment is null for extra
// payments, which carry no sequence number.
type installmentPayload struct {
	Installment *int           `json:"installment"`
	Date        string         `json:"date"`
	Year        int            `json:"year"`
	Month       int            `json:"month"`
	MonthName   string         `json:"monthName"`
	Type        string         `json:"type"`
	Principal   string         `json:"principal"`
	Interest    string         `json:"interest"`
	Fees        string         `json:"fees"`
	Total       string         `json:"total"`
	Balance     balancePayload `json:"balance"`
}

type balancePayload struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type totalsPayload struct {
	Principal string `json:"principal"`
	Interest  string `json:"interest"`
	Fees      string `json:"fees"`
	Total     string `json:"total"`
	Months    int    `json:"months"`
	PaidOff   bool   `json:"paidOff"`
}

func buildInstallmentPayloads(installments []amortization.Installment) []installmentPayload {
	payloads := make([]installmentPayload, 0, len(installments))
	for _, installment := range installments {
		var sequence *int
		if installment.Scheduled() {
			v := installment.Sequence
			sequence = &v
		}
		payloads = append(payloads, installmentPayload{
			Installment: sequence,
			Date:        installment.Date.Format(datetime.DateLayout),
			Year:        installment.Year(),
			Month:       int(installment.Month()),
			MonthName:   installment.MonthName(),
			Type:        installment.Payment.Kind.String(),
			Principal:   installment.Payment.Principal.StringFixed(constants.DisplayPlaces),
			Interest:    installment.Payment.Interest.StringFixed(constants.DisplayPlaces),
			Fees:        installment.Payment.Fees.StringFixed(constants.DisplayPlaces),
			Total:       installment.Payment.Total().StringFixed(constants.DisplayPlaces),
			Balance: balancePayload{
				Before: installment.Balance.Before.StringFixed(constants.DisplayPlaces),
				After:  installment.Balance.After.StringFixed(constants.DisplayPlaces),
			},
		})
	}
	return payloads
}

func buildTotalsPayload(totals amortization.ScheduleTotals) totalsPayload {
	return totalsPayload{
		Principal: totals.Principal.StringFixed(constants.DisplayPlaces),
		Interest:  totals.Interest.StringFixed(constants.DisplayPlaces),
		Fees:      totals.Fees.StringFixed(constants.DisplayPlaces),
		Total:     totals.TotalOutflow().StringFixed(constants.DisplayPlaces),
		Months:    totals.Months,
		PaidOff:   totals.PaidOff,
	}
}
