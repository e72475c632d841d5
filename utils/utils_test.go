package utils

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/pocket-ledger/internal/database"
	"github.com/valeriaulyamaeva/pocket-ledger/internal/finance"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount string
		code   string
		want   []string
	}{
		{"1234.5", "USD", []string{"$", "1,234.50"}},
		{"-20", "usd", []string{"-", "$", "20.00"}},
		{"99.99", "EUR", []string{"€", "99.99"}},
		{"10", "??", []string{"10.00 ??"}},
	}
	for _, tt := range tests {
		got := FormatAmount(decimal.RequireFromString(tt.amount), tt.code)
		for _, part := range tt.want {
			if !strings.Contains(got, part) {
				t.Errorf("FormatAmount(%s, %s) = %q, missing %q", tt.amount, tt.code, got, part)
			}
		}
	}
}

func TestGenerateDemoDataKeepsBalancesConsistent(t *testing.T) {
	ctx := context.Background()
	store := database.NewMemoryStore()
	services := finance.NewServices(store)

	users, err := NewDemoData(services, 42, zerolog.Nop()).GenerateDemoData(ctx, 3, 10)
	if err != nil {
		t.Fatalf("GenerateDemoData: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("got %d users, want 3", len(users))
	}

	for _, u := range users {
		txs, err := services.Transactions.List(ctx, u.ID)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(txs) != 10 {
			t.Errorf("user %d has %d transactions, want 10", u.ID, len(txs))
		}
		sum := decimal.Zero
		for i := range txs {
			sum = sum.Add(txs[i].SignedAmount())
		}
		if !sum.Equal(u.Balance) {
			t.Errorf("user %d balance %s, transactions sum to %s", u.ID, u.Balance, sum)
		}

		goals, _ := services.Goals.List(ctx, u.ID)
		if len(goals) != 2 {
			t.Errorf("user %d has %d goals, want 2", u.ID, len(goals))
		}
	}

	drift, err := store.ListBalanceDrift(ctx)
	if err != nil {
		t.Fatalf("ListBalanceDrift: %v", err)
	}
	if len(drift) != 0 {
		t.Errorf("demo data drifted: %+v", drift)
	}

	if _, err := services.Auth.Login(ctx, users[0].Email, DemoPassword); err != nil {
		t.Errorf("demo login: %v", err)
	}
}
