package database

import (
	"context"
	"fmt"

	"github.com/valeriaulyamaeva/pocket-ledger/models"
)

func (q *Queries) CreateTransaction(ctx context.Context, transaction *models.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, type, amount, category, description)
		VALUES ($1, $2, $3::numeric, $4, $5)
		RETURNING id, created_at`
	err := q.db.QueryRow(ctx, query,
		transaction.UserID,
		string(transaction.Type),
		transaction.Amount,
		transaction.Category,
		transaction.Description).Scan(&transaction.ID, &transaction.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}
	return nil
}

// GetTransactionsByUserID returns the user's transactions in creation order.
func (q *Queries) GetTransactionsByUserID(ctx context.Context, userID int64) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, type, amount, category, description, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY id`
	rows, err := q.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]models.Transaction, 0)
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Amount, &t.Category, &t.Description, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}
