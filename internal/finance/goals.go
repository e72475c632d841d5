package finance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/pocket-ledger/internal/database"
	"github.com/valeriaulyamaeva/pocket-ledger/models"
)

type GoalInput struct {
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	TargetDate    *time.Time
}

type GoalService struct {
	store database.Store
}

func NewGoalService(store database.Store) *GoalService {
	return &GoalService{store: store}
}

func (s *GoalService) Create(ctx context.Context, userID int64, in GoalInput) (*models.Goal, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || !in.TargetAmount.IsPositive() || in.CurrentAmount.IsNegative() ||
		!models.IsMoney(in.TargetAmount) || !models.IsMoney(in.CurrentAmount) {
		return nil, ErrInvalidGoal
	}

	goal := &models.Goal{
		UserID:        userID,
		Name:          name,
		TargetAmount:  in.TargetAmount,
		CurrentAmount: in.CurrentAmount,
		TargetDate:    in.TargetDate,
	}
	if err := s.store.CreateGoal(ctx, goal); err != nil {
		return nil, fmt.Errorf("creating goal: %w", err)
	}
	return goal, nil
}

func (s *GoalService) List(ctx context.Context, userID int64) ([]models.Goal, error) {
	goals, err := s.store.GetGoalsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	return goals, nil
}

// AddProgress adds amount to the goal's saved amount. A negative amount is
// a withdrawal and fails with database.ErrNegativeProgress if it would
// leave less than nothing saved. Goals owned by another user are reported
// as database.ErrNotFound.
func (s *GoalService) AddProgress(ctx context.Context, userID, goalID int64, amount decimal.Decimal) (*models.Goal, error) {
	if !models.IsMoney(amount) {
		return nil, ErrInvalidAmount
	}
	goal, err := s.store.AddGoalProgress(ctx, userID, goalID, amount)
	if err != nil {
		return nil, fmt.Errorf("updating goal %d: %w", goalID, err)
	}
	return goal, nil
}
