package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/valeriaulyamaeva/pocket-ledger/models"
)

// UpdateUserCurrency changes the display currency only; stored amounts
// are left as they are.
func (q *Queries) UpdateUserCurrency(ctx context.Context, userID int64, currency string) (*models.User, error) {
	query := `UPDATE users SET currency = $1 WHERE id = $2 RETURNING ` + userColumns
	user, err := scanUser(q.db.QueryRow(ctx, query, currency, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("updating currency for user %d: %w", userID, err)
	}
	return user, nil
}
