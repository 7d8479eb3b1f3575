package model

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name   string
		spent  string
		budget string
		want   BudgetStatus
	}{
		{"well under", "10", "100", StatusGood},
		{"just under warning", "79.99", "100", StatusGood},
		{"warning lower bound", "80", "100", StatusWarning},
		{"just under over", "99.99", "100", StatusWarning},
		{"exactly spent", "100", "100", StatusOver},
		{"overspent", "150", "100", StatusOver},
		{"zero budget zero spent", "0", "0", StatusGood},
		{"zero budget with spending", "1", "0", StatusOver},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(dec(tt.spent), dec(tt.budget)))
		})
	}
}

func TestSpentPercentage_ZeroBudget(t *testing.T) {
	// Both zero-budget render paths are defined, not NaN or a panic.
	assert.Equal(t, float64(0), SpentPercentage(dec("0"), dec("0")))
	assert.True(t, math.IsInf(SpentPercentage(dec("50"), dec("0")), 1))
}

func TestSpentPercentage(t *testing.T) {
	assert.InDelta(t, 42.5, SpentPercentage(dec("42.50"), dec("100")), 1e-9)
	assert.InDelta(t, 120, SpentPercentage(dec("60"), dec("50")), 1e-9)
}

func TestBudgetTotals(t *testing.T) {
	budgets := []Budget{
		{Category: "Food", BudgetAmount: dec("300"), SpentAmount: dec("120.50")},
		{Category: "Rent", BudgetAmount: dec("1200"), SpentAmount: dec("1200")},
	}
	totalBudget, totalSpent := BudgetTotals(budgets)
	assert.True(t, totalBudget.Equal(dec("1500")))
	assert.True(t, totalSpent.Equal(dec("1320.50")))
}

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		deadline string
		want     int
	}{
		{"deadline today is zero, not overdue", "2025-06-15", 0},
		{"tomorrow", "2025-06-16", 1},
		{"yesterday is overdue", "2025-06-14", -1},
		{"next month", "2025-07-15", 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DaysRemaining(tt.deadline, now)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want < 0, Overdue(got))
		})
	}
}

func TestDaysRemaining_BadDate(t *testing.T) {
	_, err := DaysRemaining("soon", time.Now())
	assert.Error(t, err)
}

func TestGoalProgress(t *testing.T) {
	assert.InDelta(t, 50, GoalProgress(dec("500"), dec("1000")), 1e-9)
	assert.Equal(t, float64(100), GoalProgress(dec("1500"), dec("1000")), "capped at 100")
	assert.Equal(t, float64(0), GoalProgress(dec("0"), dec("0")))
	assert.Equal(t, float64(100), GoalProgress(dec("10"), dec("0")))
}

func TestFilterTransactions(t *testing.T) {
	list := []Transaction{
		{ID: 1, Description: "Coffee at Blue Bottle", Category: "Food", Type: TypeExpense, Amount: dec("4.50")},
		{ID: 2, Description: "Salary", Category: "Income", Type: TypeIncome, Amount: dec("5000")},
		{ID: 3, Description: "Groceries", Category: "Food", Type: TypeExpense, Amount: dec("82.10")},
	}

	t.Run("no constraints keeps everything", func(t *testing.T) {
		assert.Len(t, FilterTransactions(list, TransactionFilter{}), 3)
	})

	t.Run("search matches description case-insensitively", func(t *testing.T) {
		got := FilterTransactions(list, TransactionFilter{Search: "coffee"})
		assert.Len(t, got, 1)
		assert.Equal(t, int64(1), got[0].ID)
	})

	t.Run("search matches category too", func(t *testing.T) {
		got := FilterTransactions(list, TransactionFilter{Search: "food"})
		assert.Len(t, got, 2)
	})

	t.Run("category filter", func(t *testing.T) {
		got := FilterTransactions(list, TransactionFilter{Category: "Income"})
		assert.Len(t, got, 1)
		assert.Equal(t, int64(2), got[0].ID)
	})

	t.Run("type filter combined with search", func(t *testing.T) {
		got := FilterTransactions(list, TransactionFilter{Search: "o", Type: TypeExpense})
		assert.Len(t, got, 2)
	})
}

func TestTransactionTotals(t *testing.T) {
	list := []Transaction{
		{Type: TypeIncome, Amount: dec("5000")},
		{Type: TypeExpense, Amount: dec("120.50")},
		{Type: TypeExpense, Amount: dec("-30")}, // sign-stored expense still counts as 30
	}
	income, expenses := TransactionTotals(list)
	assert.True(t, income.Equal(dec("5000")))
	assert.True(t, expenses.Equal(dec("150.50")))
}

func TestTopCategories(t *testing.T) {
	breakdown := []CategoryAmount{
		{Category: "Rent", Amount: dec("1200")},
		{Category: "Food", Amount: dec("300")},
		{Category: "Transport", Amount: dec("90")},
		{Category: "Fun", Amount: dec("450")},
	}
	got := TopCategories(breakdown, 3)
	assert.Equal(t, []string{"Rent", "Fun", "Food"}, []string{got[0].Category, got[1].Category, got[2].Category})
	// input order untouched
	assert.Equal(t, "Rent", breakdown[0].Category)
	assert.Equal(t, "Food", breakdown[1].Category)
}

func TestMonthHelpers(t *testing.T) {
	now := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-01", CurrentYearMonth(now))
	assert.Equal(t, "2025-01-15", CurrentDate(now))
	assert.Equal(t, "2024-07-01", FirstOfMonth("2024-07"))
	assert.Equal(t, "2024-07", YearMonth("2024-07-01"))
	assert.Equal(t, "2024-07", YearMonth("2024-07"))
}

func TestParseAmount(t *testing.T) {
	got, err := ParseAmount(" 4.50 ")
	assert.NoError(t, err)
	assert.True(t, got.Equal(dec("4.5")))

	_, err = ParseAmount("")
	assert.Error(t, err)
	_, err = ParseAmount("4.5x")
	assert.Error(t, err)
}
