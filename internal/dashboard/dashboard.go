// Package dashboard derives the aggregated financial summary from a user's
// raw records. Building a dashboard is a pure computation over a snapshot
// the caller already fetched; nothing here touches storage.
package dashboard

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finassist/finassist/internal/models"
)

// LookbackMonths is the trailing window used to scope expense aggregation
const LookbackMonths = 6

const ratioPrecision = 4

// Snapshot carries a consistent view of one user's records at a point in
// time. Expenses outside the lookback window are ignored.
type Snapshot struct {
	Now                 time.Time
	MonthlyIncome       decimal.Decimal
	Expenses            []models.Expense
	Budgets             []models.Budget
	Goals               []models.SavingsGoal
	Profile             models.UserProfile
	UnreadNotifications int
}

// Build aggregates the snapshot into a dashboard summary.
func Build(s Snapshot) models.Dashboard {
	now := s.Now
	if now.IsZero() {
		now = time.Now()
	}
	windowStart := now.AddDate(0, -LookbackMonths, 0)

	var windowed []models.Expense
	for _, e := range s.Expenses {
		if e.Date.Before(windowStart) || e.Date.After(now) {
			continue
		}
		windowed = append(windowed, e)
	}

	totalExpenses := decimal.Zero
	for _, e := range windowed {
		totalExpenses = totalExpenses.Add(e.Amount)
	}

	// Total savings is canonically the sum of goal balances, not the
	// profile's self-reported figure.
	totalSavings := decimal.Zero
	for _, g := range s.Goals {
		totalSavings = totalSavings.Add(g.CurrentAmount)
	}

	budgetRemaining := decimal.Zero
	for _, b := range s.Budgets {
		if r := b.Amount.Sub(b.Spent); r.IsPositive() {
			budgetRemaining = budgetRemaining.Add(r)
		}
	}
	totalIncome := budgetRemaining.Add(totalSavings)
	totalDebt := s.Profile.TotalDebt

	return models.Dashboard{
		TotalIncome:          totalIncome,
		TotalExpenses:        totalExpenses,
		TotalSavings:         totalSavings,
		TotalDebt:            totalDebt,
		FinancialHealthScore: HealthScore(totalIncome, totalExpenses, totalSavings, totalDebt),
		MonthlyData:          monthlySeries(now, s.MonthlyIncome, windowed),
		CategoryExpenses:     categoryDistribution(windowed, totalExpenses),
		ActiveGoals:          activeGoals(now, s.Goals),
		TotalPoints:          s.Profile.Points,
		Level:                s.Profile.LevelNumber,
		UnreadNotifications:  s.UnreadNotifications,
	}
}

// HealthScore blends savings, expense and debt ratios relative to income
// into a 0-100 indicator. Zero income yields the fixed default of 50.
func HealthScore(income, expenses, savings, debt decimal.Decimal) decimal.Decimal {
	if income.IsZero() {
		return decimal.NewFromInt(50)
	}

	forty := decimal.NewFromInt(40)
	thirty := decimal.NewFromInt(30)

	savingsScore := decimal.Min(savings.DivRound(income, ratioPrecision).Mul(forty), forty)
	expenseScore := decimal.Max(thirty.Sub(expenses.DivRound(income, ratioPrecision).Mul(thirty)), decimal.Zero)
	debtScore := decimal.Max(thirty.Sub(debt.DivRound(income, ratioPrecision).Mul(thirty)), decimal.Zero)

	return savingsScore.Add(expenseScore).Add(debtScore)
}

// monthlySeries returns one entry per calendar month from now-6 months to
// now inclusive, pairing the constant monthly income with that month's
// summed expenses.
func monthlySeries(now time.Time, monthlyIncome decimal.Decimal, expenses []models.Expense) []models.MonthlyData {
	type monthKey struct {
		year  int
		month time.Month
	}
	byMonth := make(map[monthKey]decimal.Decimal)
	for _, e := range expenses {
		k := monthKey{e.Date.Year(), e.Date.Month()}
		byMonth[k] = byMonth[k].Add(e.Amount)
	}

	start := now.AddDate(0, -LookbackMonths, 0)
	cursor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, now.Location())
	end := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var series []models.MonthlyData
	for !cursor.After(end) {
		series = append(series, models.MonthlyData{
			Month:    cursor.Format("Jan 2006"),
			Income:   monthlyIncome,
			Expenses: byMonth[monthKey{cursor.Year(), cursor.Month()}],
		})
		cursor = cursor.AddDate(0, 1, 0)
	}
	return series
}

func categoryDistribution(expenses []models.Expense, total decimal.Decimal) []models.CategoryExpense {
	byCategory := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		byCategory[e.Category] = byCategory[e.Category].Add(e.Amount)
	}

	dist := make([]models.CategoryExpense, 0, len(byCategory))
	for category, amount := range byCategory {
		percentage := 0.0
		if total.IsPositive() {
			percentage, _ = amount.DivRound(total, ratioPrecision).
				Mul(decimal.NewFromInt(100)).Float64()
		}
		dist = append(dist, models.CategoryExpense{
			Category:   category,
			Amount:     amount,
			Percentage: percentage,
		})
	}

	sort.Slice(dist, func(i, j int) bool {
		if c := dist[i].Amount.Cmp(dist[j].Amount); c != 0 {
			return c > 0
		}
		return dist[i].Category < dist[j].Category
	})
	return dist
}

func activeGoals(now time.Time, goals []models.SavingsGoal) []models.GoalProjection {
	var active []models.GoalProjection
	for _, g := range goals {
		if g.Completed {
			continue
		}
		progress := 0.0
		if g.TargetAmount.IsPositive() {
			progress, _ = g.CurrentAmount.DivRound(g.TargetAmount, ratioPrecision).
				Mul(decimal.NewFromInt(100)).Float64()
		}
		active = append(active, models.GoalProjection{
			ID:                 g.ID,
			Name:               g.Name,
			Description:        g.Description,
			TargetAmount:       g.TargetAmount,
			CurrentAmount:      g.CurrentAmount,
			RemainingAmount:    g.TargetAmount.Sub(g.CurrentAmount),
			ProgressPercentage: progress,
			TargetDate:         g.TargetDate,
			DaysRemaining:      daysBetween(now, g.TargetDate),
			Completed:          g.Completed,
		})
	}
	return active
}

// daysBetween counts whole calendar days from a to b; negative when b is in
// the past.
func daysBetween(a, b time.Time) int64 {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int64(bd.Sub(ad).Hours() / 24)
}
