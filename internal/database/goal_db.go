package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/pocket-ledger/models"
)

const goalColumns = `id, user_id, name, target_amount, current_amount, target_date, status, created_at`

func scanGoal(row pgx.Row) (*models.Goal, error) {
	var g models.Goal
	if err := row.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &g.TargetDate, &g.Status, &g.CreatedAt); err != nil {
		return nil, err
	}
	return &g, nil
}

// CreateGoal adds a new savings goal.
func (q *Queries) CreateGoal(ctx context.Context, goal *models.Goal) error {
	goal.RefreshStatus()
	query := `
		INSERT INTO savings_goals (user_id, name, target_amount, current_amount, target_date, status)
		VALUES ($1, $2, $3::numeric, $4::numeric, $5, $6)
		RETURNING id, created_at`
	err := q.db.QueryRow(ctx, query,
		goal.UserID,
		goal.Name,
		goal.TargetAmount,
		goal.CurrentAmount,
		goal.TargetDate,
		goal.Status).Scan(&goal.ID, &goal.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting goal: %w", err)
	}
	return nil
}

// GetGoalsByUserID returns all goals of the user in creation order.
func (q *Queries) GetGoalsByUserID(ctx context.Context, userID int64) ([]models.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM savings_goals WHERE user_id = $1 ORDER BY id`
	rows, err := q.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	defer rows.Close()

	goals := make([]models.Goal, 0)
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}
		goals = append(goals, *goal)
	}
	return goals, rows.Err()
}

// AddGoalProgress adds amount to the goal's current progress and refreshes
// its status in the same statement.
func (q *Queries) AddGoalProgress(ctx context.Context, userID, goalID int64, amount decimal.Decimal) (*models.Goal, error) {
	query := `
		UPDATE savings_goals
		SET current_amount = current_amount + $1::numeric,
		    status = CASE WHEN current_amount + $1::numeric >= target_amount THEN 'achieved' ELSE 'active' END
		WHERE id = $2 AND user_id = $3 AND current_amount + $1::numeric >= 0
		RETURNING ` + goalColumns
	goal, err := scanGoal(q.db.QueryRow(ctx, query, amount, goalID, userID))
	if err == nil {
		return goal, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("adding progress to goal %d: %w", goalID, err)
	}

	// Nothing matched: either the goal is not the caller's or the update
	// would have made progress negative.
	var exists bool
	err = q.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM savings_goals WHERE id = $1 AND user_id = $2)`,
		goalID, userID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("checking goal %d: %w", goalID, err)
	}
	if !exists {
		return nil, ErrNotFound
	}
	return nil, ErrNegativeProgress
}
