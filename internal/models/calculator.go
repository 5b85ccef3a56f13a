package models

import "github.com/shopspring/decimal"

// CalculatorKind selects which financial calculator runs for a request
type CalculatorKind string

const (
	CalculatorCredit            CalculatorKind = "CREDIT"
	CalculatorSavings           CalculatorKind = "SAVINGS"
	CalculatorInvestment        CalculatorKind = "INVESTMENT"
	CalculatorBorrowingCapacity CalculatorKind = "BORROWING_CAPACITY"
)

// CalculatorRequest is a tagged union over the calculator kinds. Exactly the
// parameter block matching Kind must be populated; fields are pointers so a
// missing value is distinguishable from an explicit zero.
type CalculatorRequest struct {
	Kind       CalculatorKind    `json:"calculator_type"`
	Credit     *CreditParams     `json:"credit,omitempty"`
	Savings    *SavingsParams    `json:"savings,omitempty"`
	Investment *InvestmentParams `json:"investment,omitempty"`
	Borrowing  *BorrowingParams  `json:"borrowing,omitempty"`
}

// CreditParams are the inputs for a loan amortization calculation
type CreditParams struct {
	Principal      *decimal.Decimal `json:"principal"`
	InterestRate   *decimal.Decimal `json:"interest_rate"` // annual, percent
	DurationMonths *int             `json:"duration_months"`
}

// SavingsParams are the inputs for a time-to-goal calculation
type SavingsParams struct {
	TargetAmount        *decimal.Decimal `json:"target_amount"`
	MonthlyContribution *decimal.Decimal `json:"monthly_contribution"`
	CurrentSavings      *decimal.Decimal `json:"current_savings,omitempty"` // defaults to 0
	InterestRate        *decimal.Decimal `json:"interest_rate,omitempty"`   // accepted, not compounded
}

// InvestmentParams are the inputs for a compound growth calculation
type InvestmentParams struct {
	Principal      *decimal.Decimal `json:"principal"`
	ExpectedReturn *decimal.Decimal `json:"expected_return"` // annual, percent
	DurationMonths *int             `json:"duration_months,omitempty"`
}

// BorrowingParams are the inputs for a borrowing capacity estimate
type BorrowingParams struct {
	MonthlyIncome   *decimal.Decimal `json:"monthly_income"`
	MonthlyExpenses *decimal.Decimal `json:"monthly_expenses"`
	OtherDebts      *decimal.Decimal `json:"other_debts,omitempty"` // defaults to 0
}

// ResultEntry is one named output of a calculation. Entries keep the order
// the calculator produced them in.
type ResultEntry struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// CalculatorResult is the immutable outcome of one calculation
type CalculatorResult struct {
	Kind        CalculatorKind `json:"calculator_type"`
	Results     []ResultEntry  `json:"results"`
	Explanation string         `json:"explanation"`
}

// Get returns the named output and whether it is present
func (r *CalculatorResult) Get(name string) (decimal.Decimal, bool) {
	for _, e := range r.Results {
		if e.Name == name {
			return e.Value, true
		}
	}
	return decimal.Decimal{}, false
}
