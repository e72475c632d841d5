package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/valeriaulyamaeva/pocket-ledger/internal/auth"
	"github.com/valeriaulyamaeva/pocket-ledger/internal/config"
	"github.com/valeriaulyamaeva/pocket-ledger/internal/database"
	"github.com/valeriaulyamaeva/pocket-ledger/internal/finance"
	"github.com/valeriaulyamaeva/pocket-ledger/internal/jobs"
	"github.com/valeriaulyamaeva/pocket-ledger/internal/logger"
	"github.com/valeriaulyamaeva/pocket-ledger/internal/routes"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", false)
		bootLog.Fatal().Err(err).Msg("loading config")
	}
	log := logger.New(cfg.LogLevel, cfg.LogPretty)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	var (
		store database.Store
		ping  func(context.Context) error
	)
	switch cfg.Storage {
	case config.StorageMemory:
		log.Warn().Msg("using in-memory storage, data is lost on restart")
		if cfg.GeneratedSecret {
			log.Warn().Msg("JWT_SECRET not set, sessions end when the process exits")
		}
		store = database.NewMemoryStore()
	default:
		pool, err := database.ConnectDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		pg := database.NewPostgresStore(pool)
		store, ping = pg, pg.Ping
	}
	defer store.Close()

	scheduler := jobs.NewScheduler(store, log)
	if err := scheduler.ScheduleReconciliation(cfg.ReconcileSchedule); err != nil {
		return err
	}
	scheduler.Start()

	gin.SetMode(gin.ReleaseMode)
	router := routes.SetupRouter(routes.Deps{
		Services:     finance.NewServices(store),
		Tokens:       auth.NewTokenManager(cfg.JWTSecret, cfg.SessionTTL),
		Log:          log,
		CORSOrigins:  cfg.CORSOrigins,
		CookieSecure: cfg.CookieSecure,
		Ping:         ping,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Str("storage", cfg.Storage).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	scheduler.Stop(shutdownCtx)
	return srv.Shutdown(shutdownCtx)
}
