package calculator

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/finassist/finassist/internal/models"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func intp(v int) *int { return &v }

func mustGet(t *testing.T, result *models.CalculatorResult, name string) decimal.Decimal {
	t.Helper()
	v, ok := result.Get(name)
	if !ok {
		t.Fatalf("result %q missing", name)
	}
	return v
}

func TestCreditAmortization(t *testing.T) {
	result, err := Calculate(models.CalculatorRequest{
		Kind: models.CalculatorCredit,
		Credit: &models.CreditParams{
			Principal:      dec("100000"),
			InterestRate:   dec("5"),
			DurationMonths: intp(240),
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	monthly := mustGet(t, result, "monthly_payment")
	total := mustGet(t, result, "total_amount")
	interest := mustGet(t, result, "total_interest")

	if monthly.LessThan(decimal.RequireFromString("655")) ||
		monthly.GreaterThan(decimal.RequireFromString("665")) {
		t.Fatalf("monthly payment %s out of expected range", monthly)
	}
	if !total.Equal(monthly.Mul(decimal.NewFromInt(240))) {
		t.Fatalf("total %s != monthly %s * 240", total, monthly)
	}
	if !interest.Equal(total.Sub(decimal.NewFromInt(100000))) {
		t.Fatalf("interest %s != total - principal", interest)
	}
	if !interest.IsPositive() {
		t.Fatalf("expected positive interest, got %s", interest)
	}
}

func TestCreditZeroRate(t *testing.T) {
	result, err := Calculate(models.CalculatorRequest{
		Kind: models.CalculatorCredit,
		Credit: &models.CreditParams{
			Principal:      dec("1200"),
			InterestRate:   dec("0"),
			DurationMonths: intp(12),
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := mustGet(t, result, "monthly_payment"); !got.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected monthly payment 100, got %s", got)
	}
	if got := mustGet(t, result, "total_interest"); !got.IsZero() {
		t.Fatalf("expected no interest on a zero-rate loan, got %s", got)
	}
}

func TestSavingsTimeToGoal(t *testing.T) {
	result, err := Calculate(models.CalculatorRequest{
		Kind: models.CalculatorSavings,
		Savings: &models.SavingsParams{
			TargetAmount:        dec("10000"),
			MonthlyContribution: dec("500"),
			CurrentSavings:      dec("1000"),
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := mustGet(t, result, "months_needed"); !got.Equal(decimal.NewFromInt(18)) {
		t.Fatalf("expected 18 months, got %s", got)
	}
	if got := mustGet(t, result, "total_contribution"); !got.Equal(decimal.NewFromInt(9000)) {
		t.Fatalf("expected total contribution 9000, got %s", got)
	}
}

func TestSavingsCeilingProperty(t *testing.T) {
	cases := []struct {
		target, current, contribution string
	}{
		{"10000", "1000", "500"},
		{"10000", "0", "333"},
		{"999", "0", "1000"},
		{"5000", "4999.99", "100"},
		{"750", "0", "250"},
	}
	for i, tc := range cases {
		result, err := Calculate(models.CalculatorRequest{
			Kind: models.CalculatorSavings,
			Savings: &models.SavingsParams{
				TargetAmount:        dec(tc.target),
				MonthlyContribution: dec(tc.contribution),
				CurrentSavings:      dec(tc.current),
			},
		})
		if err != nil {
			t.Fatalf("case %d: unexpected error: %v", i, err)
		}

		months := mustGet(t, result, "months_needed")
		remaining := decimal.RequireFromString(tc.target).Sub(decimal.RequireFromString(tc.current))
		contribution := decimal.RequireFromString(tc.contribution)

		if months.Mul(contribution).LessThan(remaining) {
			t.Fatalf("case %d: %s months * %s does not cover remaining %s", i, months, contribution, remaining)
		}
		if months.IsPositive() {
			under := months.Sub(decimal.NewFromInt(1)).Mul(contribution)
			if !under.LessThan(remaining) {
				t.Fatalf("case %d: %s months is not minimal for remaining %s", i, months, remaining)
			}
		}
	}
}

func TestSavingsTargetAlreadyReached(t *testing.T) {
	result, err := Calculate(models.CalculatorRequest{
		Kind: models.CalculatorSavings,
		Savings: &models.SavingsParams{
			TargetAmount:        dec("1000"),
			MonthlyContribution: dec("100"),
			CurrentSavings:      dec("1500"),
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustGet(t, result, "months_needed"); !got.IsZero() {
		t.Fatalf("expected 0 months for a reached target, got %s", got)
	}
}

func TestInvestmentGrowth(t *testing.T) {
	result, err := Calculate(models.CalculatorRequest{
		Kind: models.CalculatorInvestment,
		Investment: &models.InvestmentParams{
			Principal:      dec("1000"),
			ExpectedReturn: dec("10"),
			DurationMonths: intp(24),
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fv := mustGet(t, result, "future_value")
	profit := mustGet(t, result, "profit")

	if !fv.Equal(decimal.RequireFromString("1210")) {
		t.Fatalf("expected future value 1210, got %s", fv)
	}
	if !profit.Equal(decimal.RequireFromString("210")) {
		t.Fatalf("expected profit 210, got %s", profit)
	}
	if !fv.GreaterThan(decimal.NewFromInt(1000)) {
		t.Fatalf("future value %s not above principal", fv)
	}
	if got := mustGet(t, result, "years"); !got.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("expected 2 years, got %s", got)
	}
}

func TestInvestmentDefaultsToOneYear(t *testing.T) {
	result, err := Calculate(models.CalculatorRequest{
		Kind: models.CalculatorInvestment,
		Investment: &models.InvestmentParams{
			Principal:      dec("2000"),
			ExpectedReturn: dec("5"),
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustGet(t, result, "years"); !got.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("expected 1 year default, got %s", got)
	}
	if got := mustGet(t, result, "future_value"); !got.Equal(decimal.RequireFromString("2100")) {
		t.Fatalf("expected future value 2100, got %s", got)
	}
}

func TestBorrowingCapacity(t *testing.T) {
	result, err := Calculate(models.CalculatorRequest{
		Kind: models.CalculatorBorrowingCapacity,
		Borrowing: &models.BorrowingParams{
			MonthlyIncome:   dec("5000"),
			MonthlyExpenses: dec("2000"),
			OtherDebts:      dec("500"),
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := mustGet(t, result, "net_income"); !got.Equal(decimal.NewFromInt(2500)) {
		t.Fatalf("expected net income 2500, got %s", got)
	}
	if got := mustGet(t, result, "max_monthly_payment"); !got.Equal(decimal.RequireFromString("825")) {
		t.Fatalf("expected max monthly payment 825, got %s", got)
	}

	capacity := mustGet(t, result, "borrowing_capacity")
	if capacity.LessThan(decimal.NewFromInt(100000)) ||
		capacity.GreaterThan(decimal.NewFromInt(150000)) {
		t.Fatalf("capacity %s out of plausible range for 825/month over 20 years at 5%%", capacity)
	}
}

func TestMissingFields(t *testing.T) {
	cases := []struct {
		name string
		req  models.CalculatorRequest
	}{
		{"credit nil params", models.CalculatorRequest{Kind: models.CalculatorCredit}},
		{"credit no rate", models.CalculatorRequest{
			Kind:   models.CalculatorCredit,
			Credit: &models.CreditParams{Principal: dec("1000"), DurationMonths: intp(12)},
		}},
		{"credit no duration", models.CalculatorRequest{
			Kind:   models.CalculatorCredit,
			Credit: &models.CreditParams{Principal: dec("1000"), InterestRate: dec("5")},
		}},
		{"savings nil params", models.CalculatorRequest{Kind: models.CalculatorSavings}},
		{"savings no contribution", models.CalculatorRequest{
			Kind:    models.CalculatorSavings,
			Savings: &models.SavingsParams{TargetAmount: dec("1000")},
		}},
		{"savings zero contribution", models.CalculatorRequest{
			Kind:    models.CalculatorSavings,
			Savings: &models.SavingsParams{TargetAmount: dec("1000"), MonthlyContribution: dec("0")},
		}},
		{"investment nil params", models.CalculatorRequest{Kind: models.CalculatorInvestment}},
		{"investment no return", models.CalculatorRequest{
			Kind:       models.CalculatorInvestment,
			Investment: &models.InvestmentParams{Principal: dec("1000")},
		}},
		{"borrowing nil params", models.CalculatorRequest{Kind: models.CalculatorBorrowingCapacity}},
		{"borrowing no expenses", models.CalculatorRequest{
			Kind:      models.CalculatorBorrowingCapacity,
			Borrowing: &models.BorrowingParams{MonthlyIncome: dec("5000")},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Calculate(tc.req)
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestUnsupportedKind(t *testing.T) {
	_, err := Calculate(models.CalculatorRequest{Kind: "MORTGAGE"})
	if !errors.Is(err, ErrUnsupportedKind) {
		t.Fatalf("expected ErrUnsupportedKind, got %v", err)
	}
}
