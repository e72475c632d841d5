package database_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/pocket-ledger/models"
)

func TestCreateTransaction(t *testing.T) {
	store := openPostgres(t)
	ctx := context.Background()
	u := createPgUser(t, store)

	transaction := &models.Transaction{
		UserID:      u.ID,
		Type:        models.TransactionExpense,
		Amount:      decimal.RequireFromString("42.10"),
		Category:    "Food",
		Description: "Test transaction",
	}
	if err := store.CreateTransaction(ctx, transaction); err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if transaction.ID == 0 || transaction.CreatedAt.IsZero() {
		t.Fatalf("CreateTransaction did not fill id/created_at: %+v", transaction)
	}

	list, err := store.GetTransactionsByUserID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetTransactionsByUserID: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d transactions, want 1", len(list))
	}
	got := list[0]
	if got.Type != transaction.Type || !got.Amount.Equal(transaction.Amount) || got.Description != transaction.Description {
		t.Errorf("stored %+v, want %+v", got, transaction)
	}
}

func TestGetTransactionsByUserIDOrderAndScope(t *testing.T) {
	store := openPostgres(t)
	ctx := context.Background()
	u := createPgUser(t, store)
	other := createPgUser(t, store)

	empty, err := store.GetTransactionsByUserID(ctx, u.ID)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("empty list = %#v, %v", empty, err)
	}

	for _, amount := range []int64{1, 2, 3} {
		tx := &models.Transaction{UserID: u.ID, Type: models.TransactionIncome, Amount: decimal.NewFromInt(amount)}
		if err := store.CreateTransaction(ctx, tx); err != nil {
			t.Fatalf("CreateTransaction: %v", err)
		}
	}
	foreign := &models.Transaction{UserID: other.ID, Type: models.TransactionIncome, Amount: decimal.NewFromInt(9)}
	if err := store.CreateTransaction(ctx, foreign); err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	list, err := store.GetTransactionsByUserID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetTransactionsByUserID: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("got %d transactions, want 3", len(list))
	}
	for i, tx := range list {
		if !tx.Amount.Equal(decimal.NewFromInt(int64(i + 1))) {
			t.Errorf("list[%d] amount = %s, want creation order", i, tx.Amount)
		}
	}
}

func TestGetTransactionSummary(t *testing.T) {
	store := openPostgres(t)
	ctx := context.Background()
	u := createPgUser(t, store)

	for _, tx := range []*models.Transaction{
		{UserID: u.ID, Type: models.TransactionIncome, Amount: decimal.NewFromInt(500), Category: "Salary"},
		{UserID: u.ID, Type: models.TransactionExpense, Amount: decimal.NewFromInt(120), Category: "Rent"},
		{UserID: u.ID, Type: models.TransactionExpense, Amount: decimal.NewFromInt(30)},
	} {
		if err := store.CreateTransaction(ctx, tx); err != nil {
			t.Fatalf("CreateTransaction: %v", err)
		}
	}

	s, err := store.GetTransactionSummary(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetTransactionSummary: %v", err)
	}
	if !s.TotalIncome.Equal(decimal.NewFromInt(500)) || !s.TotalExpense.Equal(decimal.NewFromInt(150)) || !s.Net.Equal(decimal.NewFromInt(350)) {
		t.Errorf("totals = %s / %s / %s", s.TotalIncome, s.TotalExpense, s.Net)
	}
	if len(s.ExpensesByCategory) != 2 || s.ExpensesByCategory[0].Name != "Rent" || s.ExpensesByCategory[1].Name != "Uncategorized" {
		t.Errorf("categories = %+v", s.ExpensesByCategory)
	}
	if len(s.Monthly) != 1 {
		t.Errorf("monthly = %+v, want one month", s.Monthly)
	}
}
