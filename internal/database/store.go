package database

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/pocket-ledger/models"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicateEmail   = errors.New("email already registered")
	ErrNegativeProgress = errors.New("goal progress cannot drop below zero")
)

// Querier is the set of storage operations over users, transactions and
// savings goals. Every read and write is keyed by the owning user.
type Querier interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUserCurrency(ctx context.Context, userID int64, currency string) (*models.User, error)
	// ApplyBalanceDelta adds delta to the stored balance in a single
	// statement and returns the updated user.
	ApplyBalanceDelta(ctx context.Context, userID int64, delta decimal.Decimal) (*models.User, error)

	CreateTransaction(ctx context.Context, transaction *models.Transaction) error
	GetTransactionsByUserID(ctx context.Context, userID int64) ([]models.Transaction, error)
	GetTransactionSummary(ctx context.Context, userID int64) (*models.TransactionSummary, error)

	CreateGoal(ctx context.Context, goal *models.Goal) error
	GetGoalsByUserID(ctx context.Context, userID int64) ([]models.Goal, error)
	// AddGoalProgress adds amount to the goal's progress, but only when the
	// goal belongs to userID. Missing and foreign goals both yield ErrNotFound.
	AddGoalProgress(ctx context.Context, userID, goalID int64, amount decimal.Decimal) (*models.Goal, error)

	ListBalanceDrift(ctx context.Context) ([]models.BalanceDrift, error)
}

// Store is a Querier that can also run a group of operations atomically.
// If fn returns an error nothing it wrote is kept.
type Store interface {
	Querier
	InTx(ctx context.Context, fn func(q Querier) error) error
	Close()
}
