package model

import (
	"github.com/shopspring/decimal"
)

func init() {
	// The backend speaks bare JSON numbers for money fields.
	decimal.MarshalJSONWithoutQuotes = true
}

type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Transaction mirrors the backend entity. Dates stay wire-formatted
// (YYYY-MM-DD) because every consumer renders or round-trips them as-is.
type Transaction struct {
	ID          int64           `json:"id,omitempty"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
}

// TransactionDraft is the create/update payload; the server assigns the id.
type TransactionDraft struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
}

// Budget as served by the backend. SpentAmount is computed server-side and
// read-only from the client's perspective. Month is first-of-month, YYYY-MM-01.
type Budget struct {
	ID           int64           `json:"id,omitempty"`
	Category     string          `json:"category"`
	BudgetAmount decimal.Decimal `json:"budgetAmount"`
	SpentAmount  decimal.Decimal `json:"spentAmount"`
	Month        string          `json:"month"`
}

type BudgetDraft struct {
	Category     string          `json:"category"`
	BudgetAmount decimal.Decimal `json:"budgetAmount"`
	Month        string          `json:"month"`
}

type Goal struct {
	ID            int64           `json:"id,omitempty"`
	Title         string          `json:"title"`
	Category      string          `json:"category"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Deadline      string          `json:"deadline"`
}

type GoalDraft struct {
	Title         string          `json:"title"`
	Category      string          `json:"category"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Deadline      string          `json:"deadline"`
}

type Category struct {
	Name string `json:"name"`
}

// DashboardSummary is recomputed by the backend per request; the client never
// mutates it. Change fields are month-over-month percentages.
type DashboardSummary struct {
	TotalIncome                     decimal.Decimal `json:"totalIncome"`
	TotalExpenses                   decimal.Decimal `json:"totalExpenses"`
	NetWorth                        decimal.Decimal `json:"netWorth"`
	SavingsRate                     decimal.Decimal `json:"savingsRate"`
	NetWorthChangePercentage        decimal.Decimal `json:"netWorthChangePercentage"`
	MonthlyIncomeChangePercentage   decimal.Decimal `json:"monthlyIncomeChangePercentage"`
	MonthlyExpensesChangePercentage decimal.Decimal `json:"monthlyExpensesChangePercentage"`
	SavingsRateChangePercentage     decimal.Decimal `json:"savingsRateChangePercentage"`
	AIGenerationsLeft               *int            `json:"aiGenerationsLeft,omitempty"`
}

type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type MonthlyTrend struct {
	Month    string          `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

type MonthlyOverview struct {
	CurrentMonthYearString string          `json:"currentMonthYearString"`
	TotalIncome            decimal.Decimal `json:"totalIncome"`
	TotalExpenses          decimal.Decimal `json:"totalExpenses"`
	NetIncome              decimal.Decimal `json:"netIncome"`
	SavingsRate            decimal.Decimal `json:"savingsRate"`
}

// AIAdvice is the response of the advice endpoint. Exactly one of Advice and
// Message is normally set; GenerationsLeft is authoritative either way.
type AIAdvice struct {
	Advice          string `json:"advice,omitempty"`
	Message         string `json:"error,omitempty"`
	GenerationsLeft int    `json:"generationsLeft"`
}
