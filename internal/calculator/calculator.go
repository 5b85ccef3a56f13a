// Package calculator implements the financial calculators: loan
// amortization, savings time-to-goal, investment growth and borrowing
// capacity. All functions are pure; monetary outputs are rounded half-up to
// 2 decimal places, intermediate rates are kept at 6 decimal places.
package calculator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finassist/finassist/internal/models"
)

// ErrUnsupportedKind is returned for an unrecognized calculator kind
var ErrUnsupportedKind = errors.New("calculator kind not supported")

// ValidationError reports a missing or unusable input field for the
// selected calculator kind.
type ValidationError struct {
	Kind   models.CalculatorKind
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s calculation: field %q %s", e.Kind, e.Field, e.Reason)
}

func missing(kind models.CalculatorKind, field string) error {
	return &ValidationError{Kind: kind, Field: field, Reason: "is required"}
}

// Borrowing capacity inverts the annuity formula at a fixed assumed rate
// and term.
const (
	assumedAnnualRate     = 5
	assumedDurationMonths = 20 * 12
	repaymentShare        = "0.33" // share of net income available for repayment
)

const (
	ratePrecision  = 6
	moneyPrecision = 2
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// Calculate runs the calculator selected by req.Kind and returns its result
// bundle. It fails with a *ValidationError when required fields for the kind
// are absent and with ErrUnsupportedKind for an unknown kind.
func Calculate(req models.CalculatorRequest) (*models.CalculatorResult, error) {
	var (
		results     []models.ResultEntry
		explanation string
		err         error
	)

	switch req.Kind {
	case models.CalculatorCredit:
		results, err = calculateCredit(req.Credit)
		explanation = "Fixed monthly payment for an amortized loan, with total cost and interest over the full term."
	case models.CalculatorSavings:
		results, err = calculateSavings(req.Savings)
		explanation = "Months needed to reach the savings target at a flat monthly contribution. Interest is not compounded into the month count."
	case models.CalculatorInvestment:
		results, err = calculateInvestment(req.Investment)
		explanation = "Future value of a lump-sum investment compounded annually at the expected return."
	case models.CalculatorBorrowingCapacity:
		results, err = calculateBorrowingCapacity(req.Borrowing)
		explanation = "Borrowing capacity assuming a third of net income goes to repayment, at 5% annual over 20 years."
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, req.Kind)
	}
	if err != nil {
		return nil, err
	}

	return &models.CalculatorResult{
		Kind:        req.Kind,
		Results:     results,
		Explanation: explanation,
	}, nil
}

// annuityFactor returns i*(1+i)^n / ((1+i)^n - 1), the factor that turns a
// principal into its fixed monthly payment.
func annuityFactor(monthlyRate decimal.Decimal, months int) decimal.Decimal {
	pow := one.Add(monthlyRate).Pow(decimal.NewFromInt(int64(months)))
	return monthlyRate.Mul(pow).DivRound(pow.Sub(one), ratePrecision)
}

func monthlyRate(annualPercent decimal.Decimal) decimal.Decimal {
	return annualPercent.DivRound(hundred, ratePrecision).DivRound(twelve, ratePrecision)
}

func calculateCredit(p *models.CreditParams) ([]models.ResultEntry, error) {
	const kind = models.CalculatorCredit
	if p == nil || p.Principal == nil {
		return nil, missing(kind, "principal")
	}
	if p.InterestRate == nil {
		return nil, missing(kind, "interest_rate")
	}
	if p.DurationMonths == nil {
		return nil, missing(kind, "duration_months")
	}
	months := *p.DurationMonths
	if months <= 0 {
		return nil, &ValidationError{Kind: kind, Field: "duration_months", Reason: "must be positive"}
	}
	principal := *p.Principal
	monthsDec := decimal.NewFromInt(int64(months))

	rate := monthlyRate(*p.InterestRate)
	var monthlyPayment decimal.Decimal
	if rate.IsZero() {
		// Zero-rate loan repays linearly.
		monthlyPayment = principal.DivRound(monthsDec, moneyPrecision)
	} else {
		pow := one.Add(rate).Pow(monthsDec)
		monthlyPayment = principal.Mul(rate).Mul(pow).DivRound(pow.Sub(one), moneyPrecision)
	}

	totalAmount := monthlyPayment.Mul(monthsDec)
	totalInterest := totalAmount.Sub(principal)

	return []models.ResultEntry{
		{Name: "monthly_payment", Value: monthlyPayment},
		{Name: "total_amount", Value: totalAmount},
		{Name: "total_interest", Value: totalInterest},
		{Name: "principal", Value: principal},
		{Name: "duration_months", Value: monthsDec},
	}, nil
}

func calculateSavings(p *models.SavingsParams) ([]models.ResultEntry, error) {
	const kind = models.CalculatorSavings
	if p == nil || p.TargetAmount == nil {
		return nil, missing(kind, "target_amount")
	}
	if p.MonthlyContribution == nil {
		return nil, missing(kind, "monthly_contribution")
	}
	contribution := *p.MonthlyContribution
	if !contribution.IsPositive() {
		return nil, &ValidationError{Kind: kind, Field: "monthly_contribution", Reason: "must be positive"}
	}
	current := decimal.Zero
	if p.CurrentSavings != nil {
		current = *p.CurrentSavings
	}

	remaining := p.TargetAmount.Sub(current)
	var months decimal.Decimal
	if remaining.IsPositive() {
		months = remaining.Div(contribution).Ceil()
	} else {
		// Target already reached.
		remaining = decimal.Zero
		months = decimal.Zero
	}

	totalContribution := contribution.Mul(months)
	estimatedInterest := totalContribution.Sub(remaining)

	return []models.ResultEntry{
		{Name: "months_needed", Value: months},
		{Name: "total_contribution", Value: totalContribution},
		{Name: "estimated_interest", Value: estimatedInterest},
		{Name: "target_amount", Value: *p.TargetAmount},
		{Name: "current_savings", Value: current},
	}, nil
}

func calculateInvestment(p *models.InvestmentParams) ([]models.ResultEntry, error) {
	const kind = models.CalculatorInvestment
	if p == nil || p.Principal == nil {
		return nil, missing(kind, "principal")
	}
	if p.ExpectedReturn == nil {
		return nil, missing(kind, "expected_return")
	}
	years := 1
	if p.DurationMonths != nil {
		years = *p.DurationMonths / 12
	}
	principal := *p.Principal

	rate := p.ExpectedReturn.DivRound(hundred, ratePrecision)
	futureValue := principal.Mul(one.Add(rate).Pow(decimal.NewFromInt(int64(years)))).
		Round(moneyPrecision)
	profit := futureValue.Sub(principal)

	return []models.ResultEntry{
		{Name: "initial_investment", Value: principal},
		{Name: "future_value", Value: futureValue},
		{Name: "profit", Value: profit},
		{Name: "return_percentage", Value: *p.ExpectedReturn},
		{Name: "years", Value: decimal.NewFromInt(int64(years))},
	}, nil
}

func calculateBorrowingCapacity(p *models.BorrowingParams) ([]models.ResultEntry, error) {
	const kind = models.CalculatorBorrowingCapacity
	if p == nil || p.MonthlyIncome == nil {
		return nil, missing(kind, "monthly_income")
	}
	if p.MonthlyExpenses == nil {
		return nil, missing(kind, "monthly_expenses")
	}
	otherDebts := decimal.Zero
	if p.OtherDebts != nil {
		otherDebts = *p.OtherDebts
	}

	netIncome := p.MonthlyIncome.Sub(*p.MonthlyExpenses).Sub(otherDebts)
	maxMonthlyPayment := netIncome.Mul(decimal.RequireFromString(repaymentShare)).
		Round(moneyPrecision)

	factor := annuityFactor(monthlyRate(decimal.NewFromInt(assumedAnnualRate)), assumedDurationMonths)
	capacity := maxMonthlyPayment.DivRound(factor, moneyPrecision)

	return []models.ResultEntry{
		{Name: "monthly_income", Value: *p.MonthlyIncome},
		{Name: "monthly_expenses", Value: *p.MonthlyExpenses},
		{Name: "net_income", Value: netIncome},
		{Name: "max_monthly_payment", Value: maxMonthlyPayment},
		{Name: "borrowing_capacity", Value: capacity},
		{Name: "estimated_rate", Value: decimal.NewFromInt(assumedAnnualRate)},
		{Name: "estimated_duration_months", Value: decimal.NewFromInt(assumedDurationMonths)},
	}, nil
}
