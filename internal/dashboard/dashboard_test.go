package dashboard

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finassist/finassist/internal/models"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestHealthScoreZeroIncome(t *testing.T) {
	score := HealthScore(decimal.Zero, d("500"), d("200"), d("100"))
	if !score.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected default score 50 for zero income, got %s", score)
	}
}

func TestHealthScoreExact(t *testing.T) {
	// savings 200/1000 -> 8, expenses 500/1000 -> 15, debt 100/1000 -> 27
	score := HealthScore(d("1000"), d("500"), d("200"), d("100"))
	if !score.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected score 50, got %s", score)
	}
}

func TestHealthScoreClamps(t *testing.T) {
	// savings ratio beyond 1 is capped at the full 40 points; expense and
	// debt penalties bottom out at 0.
	score := HealthScore(d("1000"), d("5000"), d("9000"), d("9000"))
	if !score.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("expected clamped score 40, got %s", score)
	}
}

func TestHealthScoreBounds(t *testing.T) {
	cases := []struct {
		income, expenses, savings, debt string
	}{
		{"0", "0", "0", "0"},
		{"1", "0", "0", "0"},
		{"1000", "999999", "0", "999999"},
		{"1000", "0", "999999", "0"},
		{"2500.50", "1200.75", "300", "4500"},
		{"100", "100", "100", "100"},
	}
	for i, tc := range cases {
		score := HealthScore(d(tc.income), d(tc.expenses), d(tc.savings), d(tc.debt))
		if score.IsNegative() || score.GreaterThan(decimal.NewFromInt(100)) {
			t.Fatalf("case %d: score %s out of [0,100]", i, score)
		}
	}
}

func testSnapshot() Snapshot {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	day := func(y int, m time.Month, dd int) time.Time {
		return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
	}
	return Snapshot{
		Now:           now,
		MonthlyIncome: d("2000"),
		Expenses: []models.Expense{
			{Category: "food", Amount: d("100"), Date: day(2026, time.March, 10)},
			{Category: "food", Amount: d("50"), Date: day(2026, time.February, 20)},
			{Category: "transport", Amount: d("25"), Date: day(2026, time.February, 5)},
			// Outside the lookback window, must be ignored.
			{Category: "food", Amount: d("9999"), Date: day(2025, time.September, 1)},
			{Category: "food", Amount: d("9999"), Date: day(2026, time.April, 1)},
		},
		Budgets: []models.Budget{
			{Amount: d("500"), Spent: d("200")},
			// Overspent budgets contribute nothing, not a negative remainder.
			{Amount: d("100"), Spent: d("150")},
		},
		Goals: []models.SavingsGoal{
			{ID: 1, Name: "car", TargetAmount: d("1000"), CurrentAmount: d("400"),
				TargetDate: day(2026, time.March, 25)},
			{ID: 2, Name: "done", TargetAmount: d("600"), CurrentAmount: d("600"), Completed: true},
			{ID: 3, Name: "empty", TargetAmount: d("0"), CurrentAmount: d("0"),
				TargetDate: day(2026, time.March, 5)},
		},
		Profile: models.UserProfile{
			Points:      120,
			LevelNumber: 2,
			TotalDebt:   d("100"),
		},
		UnreadNotifications: 3,
	}
}

func TestBuildTotals(t *testing.T) {
	summary := Build(testSnapshot())

	if !summary.TotalExpenses.Equal(d("175")) {
		t.Fatalf("expected total expenses 175, got %s", summary.TotalExpenses)
	}
	// 400 + 600 + 0 across all goals, completed ones included.
	if !summary.TotalSavings.Equal(d("1000")) {
		t.Fatalf("expected total savings 1000, got %s", summary.TotalSavings)
	}
	// 300 positive budget remainder + 1000 savings.
	if !summary.TotalIncome.Equal(d("1300")) {
		t.Fatalf("expected total income 1300, got %s", summary.TotalIncome)
	}
	if !summary.TotalDebt.Equal(d("100")) {
		t.Fatalf("expected total debt 100, got %s", summary.TotalDebt)
	}

	want := HealthScore(d("1300"), d("175"), d("1000"), d("100"))
	if !summary.FinancialHealthScore.Equal(want) {
		t.Fatalf("expected score %s, got %s", want, summary.FinancialHealthScore)
	}

	if summary.TotalPoints != 120 || summary.Level != 2 {
		t.Fatalf("expected points/level passthrough, got %d/%d", summary.TotalPoints, summary.Level)
	}
	if summary.UnreadNotifications != 3 {
		t.Fatalf("expected 3 unread notifications, got %d", summary.UnreadNotifications)
	}
}

func TestBuildMonthlySeries(t *testing.T) {
	summary := Build(testSnapshot())

	if len(summary.MonthlyData) != 7 {
		t.Fatalf("expected 7 monthly entries, got %d", len(summary.MonthlyData))
	}
	if summary.MonthlyData[0].Month != "Sep 2025" {
		t.Fatalf("expected first entry Sep 2025, got %s", summary.MonthlyData[0].Month)
	}
	if summary.MonthlyData[6].Month != "Mar 2026" {
		t.Fatalf("expected last entry Mar 2026, got %s", summary.MonthlyData[6].Month)
	}

	for _, entry := range summary.MonthlyData {
		if !entry.Income.Equal(d("2000")) {
			t.Fatalf("expected constant income 2000, got %s in %s", entry.Income, entry.Month)
		}
	}

	// February holds 50 + 25, September's out-of-window expense is gone.
	if !summary.MonthlyData[5].Expenses.Equal(d("75")) {
		t.Fatalf("expected Feb expenses 75, got %s", summary.MonthlyData[5].Expenses)
	}
	if !summary.MonthlyData[0].Expenses.IsZero() {
		t.Fatalf("expected Sep expenses 0, got %s", summary.MonthlyData[0].Expenses)
	}
}

func TestBuildCategoryDistribution(t *testing.T) {
	summary := Build(testSnapshot())

	if len(summary.CategoryExpenses) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(summary.CategoryExpenses))
	}

	top := summary.CategoryExpenses[0]
	if top.Category != "food" || !top.Amount.Equal(d("150")) {
		t.Fatalf("expected food 150 first, got %s %s", top.Category, top.Amount)
	}
	// 150/175 at 4-decimal ratio precision.
	if top.Percentage != 85.71 {
		t.Fatalf("expected food at 85.71%%, got %v", top.Percentage)
	}

	second := summary.CategoryExpenses[1]
	if second.Category != "transport" || second.Percentage != 14.29 {
		t.Fatalf("expected transport at 14.29%%, got %s %v", second.Category, second.Percentage)
	}
}

func TestBuildCategoryDistributionZeroTotal(t *testing.T) {
	s := testSnapshot()
	s.Expenses = []models.Expense{
		{Category: "food", Amount: d("0"), Date: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)},
	}
	summary := Build(s)
	if len(summary.CategoryExpenses) != 1 || summary.CategoryExpenses[0].Percentage != 0 {
		t.Fatalf("expected zero percentage when total is zero, got %+v", summary.CategoryExpenses)
	}
}

func TestBuildActiveGoals(t *testing.T) {
	summary := Build(testSnapshot())

	if len(summary.ActiveGoals) != 2 {
		t.Fatalf("expected 2 active goals, got %d", len(summary.ActiveGoals))
	}

	car := summary.ActiveGoals[0]
	if car.ID != 1 {
		t.Fatalf("expected goal 1 first, got %d", car.ID)
	}
	if !car.RemainingAmount.Equal(d("600")) {
		t.Fatalf("expected remaining 600, got %s", car.RemainingAmount)
	}
	if car.ProgressPercentage != 40 {
		t.Fatalf("expected 40%% progress, got %v", car.ProgressPercentage)
	}
	if car.DaysRemaining != 10 {
		t.Fatalf("expected 10 days remaining, got %d", car.DaysRemaining)
	}

	empty := summary.ActiveGoals[1]
	if empty.ProgressPercentage != 0 {
		t.Fatalf("expected 0%% progress for zero target, got %v", empty.ProgressPercentage)
	}
	// Overdue goals surface a negative day count.
	if empty.DaysRemaining != -10 {
		t.Fatalf("expected -10 days remaining, got %d", empty.DaysRemaining)
	}
}
