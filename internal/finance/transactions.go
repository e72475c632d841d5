package finance

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/pocket-ledger/internal/database"
	"github.com/valeriaulyamaeva/pocket-ledger/models"
)

type TransactionInput struct {
	Type        models.TransactionType
	Amount      decimal.Decimal
	Category    string
	Description string
}

type CreateTransactionResult struct {
	Transaction *models.Transaction `json:"transaction"`
	User        *models.User        `json:"user"`
}

type TransactionService struct {
	store database.Store
}

func NewTransactionService(store database.Store) *TransactionService {
	return &TransactionService{store: store}
}

// Create records a transaction and moves the owner's balance by its signed
// amount. Both writes commit together or not at all.
func (s *TransactionService) Create(ctx context.Context, userID int64, in TransactionInput) (*CreateTransactionResult, error) {
	if !in.Type.Valid() || !in.Amount.IsPositive() || !models.IsMoney(in.Amount) {
		return nil, ErrInvalidTransaction
	}

	tx := &models.Transaction{
		UserID:      userID,
		Type:        in.Type,
		Amount:      in.Amount,
		Category:    strings.TrimSpace(in.Category),
		Description: strings.TrimSpace(in.Description),
	}

	var user *models.User
	err := s.store.InTx(ctx, func(q database.Querier) error {
		if err := q.CreateTransaction(ctx, tx); err != nil {
			return fmt.Errorf("inserting transaction: %w", err)
		}
		updated, err := q.ApplyBalanceDelta(ctx, userID, tx.SignedAmount())
		if err != nil {
			return fmt.Errorf("applying balance delta: %w", err)
		}
		user = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &CreateTransactionResult{Transaction: tx, User: user}, nil
}

func (s *TransactionService) List(ctx context.Context, userID int64) ([]models.Transaction, error) {
	transactions, err := s.store.GetTransactionsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	return transactions, nil
}

// Summary returns the chart series for the user's transactions labelled
// with the user's display currency.
func (s *TransactionService) Summary(ctx context.Context, userID int64) (*models.TransactionSummary, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}
	summary, err := s.store.GetTransactionSummary(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("summarizing transactions: %w", err)
	}
	summary.Currency = user.Currency
	return summary, nil
}
