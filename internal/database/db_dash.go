package database

import (
	"context"
	"fmt"

	"github.com/valeriaulyamaeva/pocket-ledger/models"
)

// GetTransactionSummary aggregates a user's transactions for the charts:
// overall totals, expenses per category and income/expense per month.
func (q *Queries) GetTransactionSummary(ctx context.Context, userID int64) (*models.TransactionSummary, error) {
	summary := &models.TransactionSummary{
		ExpensesByCategory: make([]models.ChartPoint, 0),
		Monthly:            make([]models.MonthlyTotals, 0),
	}

	err := q.db.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN type = 'INCOME' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'EXPENSE' THEN amount ELSE 0 END), 0)
		FROM transactions
		WHERE user_id = $1`, userID).Scan(&summary.TotalIncome, &summary.TotalExpense)
	if err != nil {
		return nil, fmt.Errorf("summing transactions: %w", err)
	}
	summary.Net = summary.TotalIncome.Sub(summary.TotalExpense)

	rows, err := q.db.Query(ctx, `
		SELECT COALESCE(NULLIF(category, ''), 'Uncategorized') AS name, SUM(amount) AS total
		FROM transactions
		WHERE user_id = $1 AND type = 'EXPENSE'
		GROUP BY name
		ORDER BY total DESC, name`, userID)
	if err != nil {
		return nil, fmt.Errorf("summing expenses by category: %w", err)
	}
	for rows.Next() {
		var p models.ChartPoint
		if err := rows.Scan(&p.Name, &p.Value); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning category total: %w", err)
		}
		summary.ExpensesByCategory = append(summary.ExpensesByCategory, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = q.db.Query(ctx, `
		SELECT to_char(date_trunc('month', created_at), 'YYYY-MM') AS month,
		       COALESCE(SUM(CASE WHEN type = 'INCOME' THEN amount ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN type = 'EXPENSE' THEN amount ELSE 0 END), 0)
		FROM transactions
		WHERE user_id = $1
		GROUP BY month
		ORDER BY month`, userID)
	if err != nil {
		return nil, fmt.Errorf("summing transactions by month: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var m models.MonthlyTotals
		if err := rows.Scan(&m.Month, &m.Income, &m.Expense); err != nil {
			return nil, fmt.Errorf("scanning monthly totals: %w", err)
		}
		summary.Monthly = append(summary.Monthly, m)
	}
	return summary, rows.Err()
}

// ListBalanceDrift finds users whose stored balance no longer matches the
// signed sum of their transactions.
func (q *Queries) ListBalanceDrift(ctx context.Context) ([]models.BalanceDrift, error) {
	rows, err := q.db.Query(ctx, `
		SELECT u.id, u.balance, c.computed
		FROM users u
		JOIN LATERAL (
			SELECT COALESCE(SUM(CASE WHEN t.type = 'INCOME' THEN t.amount ELSE -t.amount END), 0) AS computed
			FROM transactions t
			WHERE t.user_id = u.id
		) c ON true
		WHERE u.balance <> c.computed
		ORDER BY u.id`)
	if err != nil {
		return nil, fmt.Errorf("computing balance drift: %w", err)
	}
	defer rows.Close()

	drift := make([]models.BalanceDrift, 0)
	for rows.Next() {
		var d models.BalanceDrift
		if err := rows.Scan(&d.UserID, &d.Stored, &d.Computed); err != nil {
			return nil, fmt.Errorf("scanning balance drift: %w", err)
		}
		drift = append(drift, d)
	}
	return drift, rows.Err()
}
