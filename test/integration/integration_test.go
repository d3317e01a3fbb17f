package integration

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/iwvelando/amortize/internal/config"
	"github.com/iwvelando/amortize/pkg/amortization"
	"github.com/iwvelando/amortize/pkg/datetime"
	"github.com/iwvelando/amortize/pkg/output"
	"github.com/iwvelando/amortize/pkg/testutil"
)

// loadBaselineSchedule loads the shared fixture and generates its schedule
// exactly as main() does.
func loadBaselineSchedule(t *testing.T) (*amortization.Schedule, []amortization.Installment, []string) {
	t.Helper()

	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	warnings := conf.ValidateConfiguration()

	schedule, startDate, err := conf.Loan.ToSchedule(zap.NewNop())
	if err != nil {
		t.Fatalf("ToSchedule() error = %v", err)
	}

	return schedule, schedule.GenerateAll(startDate), warnings
}

// TestScheduleIntegrationBaseline tests that the full pipeline produces the
// same results as our baseline captured from the fixture configuration: a
// 30-year loan whose rate rises mid-term while the installment stays level,
// so a balloon balance remains at maturity.
func TestScheduleIntegrationBaseline(t *testing.T) {
	schedule, installments, warnings := loadBaselineSchedule(t)

	if len(warnings) != 0 {
		t.Errorf("Expected no configuration warnings, got %v", warnings)
	}

	if schedule.String() != "250,000.00 over 30 years at 5.50% yearly interest rate" {
		t.Errorf("Unexpected schedule description: %s", schedule.String())
	}

	installment := schedule.MonthlyInstallment()
	if installment.Sub(decimal.RequireFromString("1419.47")).Abs().GreaterThan(decimal.RequireFromString("0.01")) {
		t.Errorf("Expected monthly installment near 1419.47, got %s", installment)
	}

	// 360 scheduled payments plus 1 one-time and 24 recurring extras.
	if len(installments) != 385 {
		t.Fatalf("Expected 385 installments, got %d", len(installments))
	}
	scheduled := testutil.ScheduledPayments(installments)
	if len(scheduled) != 360 {
		t.Errorf("Expected 360 scheduled payments, got %d", len(scheduled))
	}
	extras := testutil.ExtraPayments(installments)
	if len(extras) != 25 {
		t.Errorf("Expected 25 extra payments, got %d", len(extras))
	}

	validateBaselineValues(t, schedule, installments)
}

// validateBaselineValues checks specific key values against our baseline
func validateBaselineValues(t *testing.T, schedule *amortization.Schedule, installments []amortization.Installment) {
	first := testutil.FindBySequence(installments, 1)
	if first == nil {
		t.Fatal("Scheduled payment 1 not found")
	}
	if first.Date.Format("2006-01-02") != "2025-02-01" {
		t.Errorf("Expected first payment on 2025-02-01, got %s", first.Date.Format("2006-01-02"))
	}
	// January 2025 accrues 31 days at 5.5% on the full principal.
	firstInterest := decimal.RequireFromString("1167.81")
	if first.Payment.Interest.Sub(firstInterest).Abs().GreaterThan(decimal.RequireFromString("0.01")) {
		t.Errorf("Expected first interest near %s, got %s", firstInterest, first.Payment.Interest)
	}

	oneTime := testutil.FindByDate(installments, datetime.MustParseDate("2026-03-15"))
	if oneTime == nil {
		t.Fatal("One-time extra payment not found")
	}
	if !oneTime.Payment.Fees.Equal(decimal.RequireFromString("200")) {
		t.Errorf("Expected one-time extra fee 200, got %s", oneTime.Payment.Fees)
	}
	if !oneTime.Payment.Principal.Equal(decimal.RequireFromString("4800")) {
		t.Errorf("Expected one-time extra principal 4800, got %s", oneTime.Payment.Principal)
	}

	totals, ok := schedule.LastTotals()
	if !ok {
		t.Fatal("Expected totals after full generation")
	}
	if totals.Months != 360 {
		t.Errorf("Expected 360 scheduled months, got %d", totals.Months)
	}
	if totals.PaidOff {
		t.Error("Expected a remaining balance; the fixed installment cannot absorb the rate rise")
	}

	// Each 200 recurring extra costs 100 fixed plus 2 percent, the 5000
	// one-time costs 100 plus 100.
	expectedFees := decimal.RequireFromString("2696")
	if !totals.Fees.Equal(expectedFees) {
		t.Errorf("Expected total fees %s, got %s", expectedFees, totals.Fees)
	}

	finalBalance := installments[len(installments)-1].Balance.After
	if !finalBalance.IsPositive() {
		t.Errorf("Expected a positive balloon balance, got %s", finalBalance)
	}
	if !totals.Principal.Add(finalBalance).Equal(decimal.RequireFromString("250000")) {
		t.Errorf("Principal paid %s plus balance %s should equal the amount borrowed",
			totals.Principal, finalBalance)
	}
}

// TestCSVOutputFormat tests that CSV output matches our baseline format
func TestCSVOutputFormat(t *testing.T) {
	_, installments, _ := loadBaselineSchedule(t)

	csv := output.CsvString(installments)
	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")

	if len(lines) != 386 {
		t.Fatalf("Expected 386 CSV lines, got %d", len(lines))
	}

	wantHeader := `"installment","date","type","principal","interest","fees","total","balance_before","balance_after"`
	if lines[0] != wantHeader {
		t.Errorf("Unexpected CSV header: %s", lines[0])
	}

	if !strings.HasPrefix(lines[1], `"1","2025-02-01","scheduled"`) {
		t.Errorf("Unexpected first CSV row: %s", lines[1])
	}
	if !strings.HasPrefix(lines[len(lines)-1], `"360","2055-01-01","scheduled"`) {
		t.Errorf("Unexpected last CSV row: %s", lines[len(lines)-1])
	}

	if got := strings.Count(csv, `"one_time_extra"`); got != 1 {
		t.Errorf("Expected 1 one-time extra row in CSV, got %d", got)
	}
	if got := strings.Count(csv, `"recurring_extra"`); got != 24 {
		t.Errorf("Expected 24 recurring extra rows in CSV, got %d", got)
	}
}

// TestPrettyOutputFormat tests that pretty output matches our baseline format
func TestPrettyOutputFormat(t *testing.T) {
	schedule, installments, _ := loadBaselineSchedule(t)

	pretty := output.PrettyString(schedule, installments)

	if !strings.Contains(pretty, "--- Amortization schedule for 250,000.00 over 30 years at 5.50% yearly interest rate ---") {
		t.Error("Expected schedule description header in pretty output")
	}
	if !strings.Contains(pretty, "Monthly Installment: $1,419.") {
		t.Error("Expected monthly installment line in pretty output")
	}
	if !strings.Contains(pretty, "Balance remains after 360 scheduled payments") {
		t.Error("Expected remaining balance line in pretty output")
	}

	lines := strings.Split(strings.TrimRight(pretty, "\n"), "\n")
	// Title, header, underline, 385 rows, blank, three totals lines, and the
	// remaining balance line.
	if len(lines) != 393 {
		t.Errorf("Expected 393 pretty lines, got %d", len(lines))
	}
}

// TestWarningsForOutOfRangeDates tests that validation warnings surface when
// configured dates cannot take effect.
func TestWarningsForOutOfRangeDates(t *testing.T) {
	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	conf.Loan.ExtraPayments = append(conf.Loan.ExtraPayments, config.ExtraPayment{
		Date:   datetime.MustParseDate("2060-01-01"),
		Amount: 1000,
	})

	warnings := conf.ValidateConfiguration()
	if len(warnings) != 1 {
		t.Fatalf("Expected one warning, got %v", warnings)
	}
	if !strings.Contains(warnings[0], "falls after the final payment") {
		t.Errorf("Unexpected warning: %s", warnings[0])
	}
}
