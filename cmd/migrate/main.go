package main

import (
	"context"
	"time"

	"github.com/valeriaulyamaeva/pocket-ledger/internal/config"
	"github.com/valeriaulyamaeva/pocket-ledger/internal/database"
	"github.com/valeriaulyamaeva/pocket-ledger/internal/logger"
)

// Applies the schema and reports balances that no longer match their
// transactions.
func main() {
	log := logger.New("info", true)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := database.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to database")
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	log.Info().Msg("schema is up to date")

	drift, err := database.NewPostgresStore(pool).ListBalanceDrift(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("checking balances")
	}
	for _, d := range drift {
		log.Warn().Int64("user_id", d.UserID).
			Str("stored", d.Stored.String()).
			Str("computed", d.Computed.String()).
			Msg("balance drift")
	}
}
