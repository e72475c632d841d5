package jobs

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/pocket-ledger/internal/logger"
	"github.com/valeriaulyamaeva/pocket-ledger/models"
)

type fakeDrift struct {
	drift []models.BalanceDrift
	err   error
}

func (f fakeDrift) ListBalanceDrift(context.Context) ([]models.BalanceDrift, error) {
	return f.drift, f.err
}

func TestReconcileLogsDrift(t *testing.T) {
	var buf bytes.Buffer
	s := NewScheduler(fakeDrift{drift: []models.BalanceDrift{
		{UserID: 7, Stored: decimal.NewFromInt(100), Computed: decimal.NewFromInt(70)},
	}}, logger.NewWithWriter(&buf))

	n, err := s.Reconcile(context.Background())
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if n != 1 {
		t.Errorf("drifted = %d, want 1", n)
	}
	out := buf.String()
	for _, want := range []string{`"level":"warn"`, `"user_id":7`, `"stored":"100"`, `"computed":"70"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s:\n%s", want, out)
		}
	}
}

func TestReconcileError(t *testing.T) {
	boom := errors.New("db down")
	s := NewScheduler(fakeDrift{err: boom}, logger.NewWithWriter(&bytes.Buffer{}))
	if _, err := s.Reconcile(context.Background()); !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}

func TestScheduleReconciliationRejectsBadSpec(t *testing.T) {
	s := NewScheduler(fakeDrift{}, logger.NewWithWriter(&bytes.Buffer{}))
	if err := s.ScheduleReconciliation("not a schedule"); err == nil {
		t.Error("expected error for invalid schedule")
	}
	if err := s.ScheduleReconciliation("@hourly"); err != nil {
		t.Errorf("@hourly: %v", err)
	}
}
