package main

import (
	"context"
	"flag"

	"github.com/valeriaulyamaeva/pocket-ledger/internal/config"
	"github.com/valeriaulyamaeva/pocket-ledger/internal/database"
	"github.com/valeriaulyamaeva/pocket-ledger/internal/finance"
	"github.com/valeriaulyamaeva/pocket-ledger/internal/logger"
	"github.com/valeriaulyamaeva/pocket-ledger/utils"
)

func main() {
	users := flag.Int("users", 5, "number of demo users")
	txPerUser := flag.Int("transactions", 30, "transactions per user")
	seed := flag.Int64("seed", 0, "random seed, 0 for a random one")
	flag.Parse()

	log := logger.New("info", true)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}

	ctx := context.Background()
	pool, err := database.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to database")
	}
	store := database.NewPostgresStore(pool)
	defer store.Close()

	demo := utils.NewDemoData(finance.NewServices(store), *seed, log)
	created, err := demo.GenerateDemoData(ctx, *users, *txPerUser)
	if err != nil {
		log.Fatal().Err(err).Int("created", len(created)).Msg("seeding failed")
	}
	log.Info().Int("users", len(created)).Str("password", utils.DemoPassword).Msg("demo data ready")
}
