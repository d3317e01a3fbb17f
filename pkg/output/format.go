// Package output provides utilities for formatting and displaying
// amortization schedules.
package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iwvelando/amortize/pkg/amortization"
	"github.com/iwvelando/amortize/pkg/datetime"
	"github.com/iwvelando/amortize/pkg/format"
)

// Header returns the column names shared by the pretty and CSV renderings.
func Header() []string {
	return []string{
		"#",
		"Date",
		"Type",
		"Principal",
		"Interest",
		"Fees",
		"Total",
		"Balance Before",
		"Balance After",
	}
}

// Row renders one installment into the Header column order. Extra payments
// carry no sequence number, so their first cell is empty.
func Row(installment amortization.Installment) []string {
	sequence := ""
	if installment.Scheduled() {
		sequence = strconv.Itoa(installment.Sequence)
	}
	return []string{
		sequence,
		fmt.Sprintf("%d/%s", installment.Year(), installment.MonthName()),
		installment.Payment.Kind.String(),
		format.NumericCurrency(installment.Payment.Principal),
		format.NumericCurrency(installment.Payment.Interest),
		format.NumericCurrency(installment.Payment.Fees),
		format.NumericCurrency(installment.Payment.Total()),
		format.NumericCurrency(installment.Balance.Before),
		format.NumericCurrency(installment.Balance.After),
	}
}

// PrettyString renders a human-readable rather than machine-readable table,
// followed by the schedule's totals.
func PrettyString(schedule *amortization.Schedule, installments []amortization.Installment) string {
	columns := Header()
	widths := make([]int, len(columns))
	for i, column := range columns {
		widths[i] = len(column)
	}
	rows := make([][]string, 0, len(installments))
	for _, installment := range installments {
		row := Row(installment)
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
		rows = append(rows, row)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- Amortization schedule for %s ---\n", schedule)
	writePaddedRow(&b, columns, widths)
	underline := make([]string, len(columns))
	for i := range columns {
		underline[i] = strings.Repeat("_", len(columns[i]))
	}
	writePaddedRow(&b, underline, widths)
	for _, row := range rows {
		writePaddedRow(&b, row, widths)
	}

	fmt.Fprintf(&b, "\nMonthly Installment: %s\n", format.Currency(schedule.MonthlyInstallment()))
	fmt.Fprintf(&b, "Total Interest Paid: %s\n", format.Currency(schedule.TotalInterestPaid()))
	fmt.Fprintf(&b, "Total Amount Paid:   %s\n", format.Currency(schedule.TotalAmountPaid()))
	if totals, ok := schedule.LastTotals(); ok {
		if totals.PaidOff {
			fmt.Fprintf(&b, "Paid off after %d scheduled payments\n", totals.Months)
		} else {
			fmt.Fprintf(&b, "Balance remains after %d scheduled payments\n", totals.Months)
		}
	}
	return b.String()
}

// PrettyFormat outputs the pretty table to stdout.
func PrettyFormat(schedule *amortization.Schedule, installments []amortization.Installment) {
	fmt.Print(PrettyString(schedule, installments))
}

func writePaddedRow(b *strings.Builder, cells []string, widths []int) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteString(" | ")
		}
		fmt.Fprintf(b, "%-*s", widths[i], cell)
	}
	b.WriteString("\n")
}

// CsvString renders the installments in comma-separated value format with
// ISO dates and unseparated two-decimal amounts.
func CsvString(installments []amortization.Installment) string {
	var b strings.Builder
	b.WriteString(`"installment","date","type","principal","interest","fees","total","balance_before","balance_after"` + "\n")
	for _, installment := range installments {
		sequence := ""
		if installment.Scheduled() {
			sequence = strconv.Itoa(installment.Sequence)
		}
		fmt.Fprintf(&b, `"%s","%s","%s","%s","%s","%s","%s","%s","%s"`+"\n",
			sequence,
			installment.Date.Format(datetime.DateLayout),
			installment.Payment.Kind,
			installment.Payment.Principal.StringFixed(2),
			installment.Payment.Interest.StringFixed(2),
			installment.Payment.Fees.StringFixed(2),
			installment.Payment.Total().StringFixed(2),
			installment.Balance.Before.StringFixed(2),
			installment.Balance.After.StringFixed(2),
		)
	}
	return b.String()
}

// CsvFormat outputs in comma-separated value format to stdout.
func CsvFormat(installments []amortization.Installment) {
	fmt.Print(CsvString(installments))
}
