package model

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type BudgetStatus string

const (
	StatusGood    BudgetStatus = "good"
	StatusWarning BudgetStatus = "warning"
	StatusOver    BudgetStatus = "over"
)

const dateLayout = "2006-01-02"

var hundred = decimal.NewFromInt(100)

// SpentPercentage is spent/budget*100. A zero budget is defined explicitly:
// 0 when nothing was spent, +Inf otherwise. Callers render +Inf as "over".
func SpentPercentage(spent, budget decimal.Decimal) float64 {
	if budget.IsZero() {
		if spent.IsZero() {
			return 0
		}
		return math.Inf(1)
	}
	pct, _ := spent.Div(budget).Mul(hundred).Float64()
	return pct
}

// StatusFor classifies a budget: over at >=100%, warning at >=80%, else good.
func StatusFor(spent, budget decimal.Decimal) BudgetStatus {
	pct := SpentPercentage(spent, budget)
	switch {
	case pct >= 100:
		return StatusOver
	case pct >= 80:
		return StatusWarning
	default:
		return StatusGood
	}
}

// BudgetTotals sums budgeted and spent amounts across all budgets.
func BudgetTotals(budgets []Budget) (totalBudget, totalSpent decimal.Decimal) {
	for _, b := range budgets {
		totalBudget = totalBudget.Add(b.BudgetAmount)
		totalSpent = totalSpent.Add(b.SpentAmount)
	}
	return totalBudget, totalSpent
}

// GoalProgress is current/target*100 capped at 100. Zero targets count as
// fully funded only when something was saved.
func GoalProgress(current, target decimal.Decimal) float64 {
	if target.IsZero() {
		if current.IsZero() {
			return 0
		}
		return 100
	}
	pct, _ := current.Div(target).Mul(hundred).Float64()
	return math.Min(pct, 100)
}

// DaysRemaining counts whole days from now's date to the deadline date.
// Deadline today yields 0; negative means overdue.
func DaysRemaining(deadline string, now time.Time) (int, error) {
	due, err := time.ParseInLocation(dateLayout, deadline, now.Location())
	if err != nil {
		return 0, err
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return int(due.Sub(today).Hours() / 24), nil
}

func Overdue(days int) bool { return days < 0 }

// TransactionFilter narrows a transaction list client-side. Zero values mean
// "no constraint"; Search matches description or category, case-insensitive.
type TransactionFilter struct {
	Search   string
	Category string
	Type     TransactionType
}

func (f TransactionFilter) Match(t Transaction) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(t.Description), q) &&
			!strings.Contains(strings.ToLower(t.Category), q) {
			return false
		}
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	return true
}

func FilterTransactions(list []Transaction, f TransactionFilter) []Transaction {
	out := make([]Transaction, 0, len(list))
	for _, t := range list {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// TransactionTotals sums income and expense amounts. Expense amounts are
// reported as absolute values.
func TransactionTotals(list []Transaction) (income, expenses decimal.Decimal) {
	for _, t := range list {
		switch t.Type {
		case TypeIncome:
			income = income.Add(t.Amount)
		case TypeExpense:
			expenses = expenses.Add(t.Amount.Abs())
		}
	}
	return income, expenses
}

// TopCategories sorts a breakdown by amount descending and keeps the first n.
func TopCategories(breakdown []CategoryAmount, n int) []CategoryAmount {
	out := make([]CategoryAmount, len(breakdown))
	copy(out, breakdown)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.GreaterThan(out[j].Amount)
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// CurrentYearMonth renders now as YYYY-MM, the query format of the
// expense-breakdown endpoint and the granularity of the month input.
func CurrentYearMonth(now time.Time) string { return now.Format("2006-01") }

// CurrentDate renders now as YYYY-MM-DD, the default date of the add form.
func CurrentDate(now time.Time) string { return now.Format(dateLayout) }

// FirstOfMonth widens a YYYY-MM input value to the backend's first-of-month
// convention.
func FirstOfMonth(yearMonth string) string { return yearMonth + "-01" }

// YearMonth truncates a stored YYYY-MM-DD month back to the input's
// YYYY-MM granularity.
func YearMonth(monthDate string) string {
	if len(monthDate) < 7 {
		return monthDate
	}
	return monthDate[:7]
}

// ParseAmount parses a form amount. Unlike parseFloat it rejects trailing
// garbage, so "4.5x" is an error rather than 4.5.
func ParseAmount(input string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(input))
}
