package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/valeriaulyamaeva/pocket-ledger/internal/auth"
	"github.com/valeriaulyamaeva/pocket-ledger/internal/finance"
	"github.com/valeriaulyamaeva/pocket-ledger/internal/handlers"
	"github.com/valeriaulyamaeva/pocket-ledger/internal/validation"
)

type Deps struct {
	Services     *finance.Services
	Tokens       *auth.TokenManager
	Log          zerolog.Logger
	CORSOrigins  []string
	CookieSecure bool
	// Ping checks the backing store for /health. Nil means always healthy.
	Ping func(ctx context.Context) error
}

func SetupRouter(d Deps) *gin.Engine {
	validation.Register()

	r := gin.New()
	r.Use(
		handlers.RequestID(),
		handlers.RequestLogger(d.Log),
		handlers.Recovery(),
		handlers.CORSMiddleware(d.CORSOrigins),
		handlers.ErrorHandler(),
	)

	r.GET("/health", healthHandler(d.Ping))

	sessions := handlers.Sessions{Tokens: d.Tokens, CookieSecure: d.CookieSecure}

	api := r.Group("/api")
	api.POST("/register", handlers.RegisterHandler(d.Services.Auth, sessions))
	api.POST("/login", handlers.LoginHandler(d.Services.Auth, sessions))
	api.POST("/logout", handlers.LogoutHandler(sessions))
	api.GET("/currencies", handlers.GetCurrenciesHandler)

	protected := api.Group("", auth.RequireAuth(d.Tokens))
	protected.GET("/transactions", handlers.GetTransactionsHandler(d.Services.Transactions))
	protected.POST("/transactions", handlers.CreateTransactionHandler(d.Services.Transactions))
	protected.GET("/transactions/summary", handlers.GetTransactionSummaryHandler(d.Services.Transactions))

	protected.GET("/savings-goals", handlers.GetGoalsHandler(d.Services.Goals))
	protected.POST("/savings-goals", handlers.CreateGoalHandler(d.Services.Goals))
	protected.PATCH("/savings-goals/:id", handlers.UpdateGoalProgressHandler(d.Services.Goals))

	protected.GET("/user", handlers.GetCurrentUserHandler(d.Services.Users))
	protected.PATCH("/user/settings", handlers.UpdateUserSettingsHandler(d.Services.Users))

	return r
}

func healthHandler(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
