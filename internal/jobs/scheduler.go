package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/valeriaulyamaeva/pocket-ledger/models"
)

// DriftLister reports users whose stored balance disagrees with their
// transactions.
type DriftLister interface {
	ListBalanceDrift(ctx context.Context) ([]models.BalanceDrift, error)
}

const reconcileTimeout = time.Minute

// Scheduler runs periodic maintenance. Balances are only ever reported,
// never corrected here.
type Scheduler struct {
	cron  *cron.Cron
	store DriftLister
	log   zerolog.Logger
}

func NewScheduler(store DriftLister, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:  cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		store: store,
		log:   log.With().Str("component", "scheduler").Logger(),
	}
}

// ScheduleReconciliation registers the balance check on schedule, a cron
// expression or descriptor such as "@hourly".
func (s *Scheduler) ScheduleReconciliation(schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
		defer cancel()
		if _, err := s.Reconcile(ctx); err != nil {
			s.log.Error().Err(err).Msg("balance reconciliation failed")
		}
	})
	if err != nil {
		return fmt.Errorf("scheduling reconciliation %q: %w", schedule, err)
	}
	return nil
}

// Reconcile logs every drifted balance and returns how many were found.
func (s *Scheduler) Reconcile(ctx context.Context) (int, error) {
	drift, err := s.store.ListBalanceDrift(ctx)
	if err != nil {
		return 0, err
	}
	for _, d := range drift {
		s.log.Warn().
			Int64("user_id", d.UserID).
			Str("stored", d.Stored.String()).
			Str("computed", d.Computed.String()).
			Msg("balance drift")
	}
	s.log.Info().Int("drifted", len(drift)).Msg("balance reconciliation finished")
	return len(drift), nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling and waits for a running job to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}
