package database_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/pocket-ledger/internal/database"
	"github.com/valeriaulyamaeva/pocket-ledger/models"
)

// openPostgres connects to DATABASE_URL (optionally from .env) and skips
// the test when no database is configured.
func openPostgres(t *testing.T) *database.PostgresStore {
	t.Helper()
	_ = godotenv.Load("../../.env")
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set, skipping postgres tests")
	}

	ctx := context.Background()
	pool, err := database.ConnectDB(ctx, url)
	if err != nil {
		t.Fatalf("connecting to database: %v", err)
	}
	if err := database.Migrate(ctx, pool); err != nil {
		t.Fatalf("migrating: %v", err)
	}
	store := database.NewPostgresStore(pool)
	t.Cleanup(store.Close)
	return store
}

func createPgUser(t *testing.T, s database.Querier) *models.User {
	t.Helper()
	u := &models.User{
		Name:         "pg test",
		Email:        fmt.Sprintf("pg-%d@example.com", time.Now().UnixNano()),
		PasswordHash: "hash",
		Currency:     "USD",
	}
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return u
}

func TestPostgresCreateTransactionWithBalance(t *testing.T) {
	store := openPostgres(t)
	ctx := context.Background()
	u := createPgUser(t, store)

	err := store.InTx(ctx, func(q database.Querier) error {
		tx := &models.Transaction{UserID: u.ID, Type: models.TransactionIncome, Amount: decimal.NewFromInt(100)}
		if err := q.CreateTransaction(ctx, tx); err != nil {
			return err
		}
		_, err := q.ApplyBalanceDelta(ctx, u.ID, tx.SignedAmount())
		return err
	})
	if err != nil {
		t.Fatalf("InTx: %v", err)
	}

	fresh, err := store.GetUserByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if !fresh.Balance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("balance = %s, want 100", fresh.Balance)
	}
}

func TestPostgresInTxRollback(t *testing.T) {
	store := openPostgres(t)
	ctx := context.Background()
	u := createPgUser(t, store)
	boom := errors.New("boom")

	err := store.InTx(ctx, func(q database.Querier) error {
		tx := &models.Transaction{UserID: u.ID, Type: models.TransactionExpense, Amount: decimal.NewFromInt(5)}
		if err := q.CreateTransaction(ctx, tx); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	txs, err := store.GetTransactionsByUserID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetTransactionsByUserID: %v", err)
	}
	if len(txs) != 0 {
		t.Errorf("transactions = %d, want 0 after rollback", len(txs))
	}
}

func TestPostgresGoalProgressOwnership(t *testing.T) {
	store := openPostgres(t)
	ctx := context.Background()
	owner := createPgUser(t, store)
	other := createPgUser(t, store)

	goal := &models.Goal{UserID: owner.ID, Name: "Trip", TargetAmount: decimal.NewFromInt(50)}
	if err := store.CreateGoal(ctx, goal); err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}

	got, err := store.AddGoalProgress(ctx, owner.ID, goal.ID, decimal.NewFromInt(50))
	if err != nil {
		t.Fatalf("AddGoalProgress: %v", err)
	}
	if got.Status != models.GoalStatusAchieved {
		t.Errorf("status = %q, want achieved", got.Status)
	}

	if _, err := store.AddGoalProgress(ctx, other.ID, goal.ID, decimal.NewFromInt(1)); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("foreign goal err = %v, want ErrNotFound", err)
	}
	if _, err := store.AddGoalProgress(ctx, owner.ID, goal.ID, decimal.NewFromInt(-51)); !errors.Is(err, database.ErrNegativeProgress) {
		t.Errorf("overdraw err = %v, want ErrNegativeProgress", err)
	}
}
