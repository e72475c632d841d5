package models

import "github.com/shopspring/decimal"

// ChartPoint is one bar of a chart series.
type ChartPoint struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// MonthlyTotals holds income and expense sums for one calendar month (YYYY-MM).
type MonthlyTotals struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

type TransactionSummary struct {
	Currency           string          `json:"currency"`
	TotalIncome        decimal.Decimal `json:"total_income"`
	TotalExpense       decimal.Decimal `json:"total_expense"`
	Net                decimal.Decimal `json:"net"`
	FormattedNet       string          `json:"formatted_net"`
	ExpensesByCategory []ChartPoint    `json:"expenses_by_category"`
	Monthly            []MonthlyTotals `json:"monthly"`
}

// BalanceDrift reports a user whose stored balance disagrees with the
// signed sum of their transactions.
type BalanceDrift struct {
	UserID   int64           `json:"user_id"`
	Stored   decimal.Decimal `json:"stored"`
	Computed decimal.Decimal `json:"computed"`
}
