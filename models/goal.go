package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	GoalStatusActive   = "active"
	GoalStatusAchieved = "achieved"
)

// Goal is a savings target the owner accumulates progress toward.
type Goal struct {
	ID            int64           `json:"id" db:"id"`
	UserID        int64           `json:"user_id" db:"user_id"`
	Name          string          `json:"name" db:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount" db:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount" db:"current_amount"`
	TargetDate    *time.Time      `json:"target_date,omitempty" db:"target_date"`
	Status        string          `json:"status" db:"status"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

func (g *Goal) RemainingAmount() decimal.Decimal {
	remaining := g.TargetAmount.Sub(g.CurrentAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// RefreshStatus marks the goal achieved once progress reaches the target
// and back to active if progress drops below it again.
func (g *Goal) RefreshStatus() {
	if g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount) {
		g.Status = GoalStatusAchieved
		return
	}
	g.Status = GoalStatusActive
}
