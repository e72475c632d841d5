package models_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/pocket-ledger/models"
)

func TestSignedAmount(t *testing.T) {
	income := models.Transaction{Type: models.TransactionIncome, Amount: decimal.NewFromInt(100)}
	if !income.SignedAmount().Equal(decimal.NewFromInt(100)) {
		t.Errorf("income delta = %s, want 100", income.SignedAmount())
	}

	expense := models.Transaction{Type: models.TransactionExpense, Amount: decimal.NewFromInt(30)}
	if !expense.SignedAmount().Equal(decimal.NewFromInt(-30)) {
		t.Errorf("expense delta = %s, want -30", expense.SignedAmount())
	}
}

func TestGoalRefreshStatus(t *testing.T) {
	g := models.Goal{TargetAmount: decimal.NewFromInt(500), CurrentAmount: decimal.NewFromInt(499)}
	g.RefreshStatus()
	if g.Status != models.GoalStatusActive {
		t.Errorf("status = %q, want active", g.Status)
	}
	if !g.RemainingAmount().Equal(decimal.NewFromInt(1)) {
		t.Errorf("remaining = %s, want 1", g.RemainingAmount())
	}

	g.CurrentAmount = decimal.NewFromInt(650)
	g.RefreshStatus()
	if g.Status != models.GoalStatusAchieved {
		t.Errorf("status = %q, want achieved", g.Status)
	}
	if !g.RemainingAmount().IsZero() {
		t.Errorf("remaining = %s, want 0 when overfunded", g.RemainingAmount())
	}
}

func TestNormalizeCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"usd", "USD", true},
		{" EUR ", "EUR", true},
		{"XYZ", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := models.NormalizeCurrency(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("NormalizeCurrency(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestAmountsEncodeAsNumbers(t *testing.T) {
	u := models.User{ID: 1, Balance: decimal.NewFromInt(100), PasswordHash: "secret"}
	raw, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out["balance"] != float64(100) {
		t.Errorf("balance = %#v, want number 100", out["balance"])
	}
	if _, ok := out["password_hash"]; ok {
		t.Error("password hash must not be serialized")
	}
}

func TestIsMoney(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"0", true},
		{"12.5", true},
		{"12.50", true},
		{"12.500", true},
		{"-30.25", true},
		{"999999999999.99", true},
		{"1000000000000", false},
		{"-1000000000000", false},
		{"0.001", false},
		{"12.345", false},
		{"1e-400", false},
		{"1e50000000", false},
		{"1e12", false},
		{"1e11", true},
		{"1.00e3", true},
	}
	for _, tt := range tests {
		if got := models.IsMoney(decimal.RequireFromString(tt.in)); got != tt.want {
			t.Errorf("IsMoney(%s) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
