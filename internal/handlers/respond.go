package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/valeriaulyamaeva/pocket-ledger/internal/auth"
	"github.com/valeriaulyamaeva/pocket-ledger/internal/database"
	"github.com/valeriaulyamaeva/pocket-ledger/internal/finance"
	"github.com/valeriaulyamaeva/pocket-ledger/internal/logger"
	"github.com/valeriaulyamaeva/pocket-ledger/internal/validation"
)

// MessageResponse is the body of every non-validation error.
type MessageResponse struct {
	Message string `json:"message"`
}

type ValidationResponse struct {
	Message string                 `json:"message"`
	Errors  []validation.Violation `json:"errors"`
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, MessageResponse{Message: message})
}

func respondValidation(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ValidationResponse{
		Message: "Validation failed",
		Errors:  validation.Violations(err),
	})
}

// principal returns the caller set by auth.RequireAuth. Routes mounted
// without the middleware get a bare 401.
func principal(c *gin.Context) (auth.Principal, bool) {
	p, ok := auth.PrincipalFrom(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
	}
	return p, ok
}

// ErrorHandler renders errors handlers attached with c.Error and did not
// answer themselves. Unknown errors become a generic 500 and are logged.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		switch {
		case errors.Is(err, database.ErrNotFound):
			respondMessage(c, http.StatusNotFound, "Not Found")
		case errors.Is(err, database.ErrDuplicateEmail):
			respondMessage(c, http.StatusConflict, "Email is already registered")
		case errors.Is(err, finance.ErrInvalidTransaction):
			respondMessage(c, http.StatusBadRequest, "Invalid transaction")
		default:
			log := logger.FromContext(c.Request.Context())
			log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
			respondMessage(c, http.StatusInternalServerError, "Internal Server Error")
		}
	}
}

// requestLogger is attached to each request context by RequestLogger.
func requestLogger(c *gin.Context) zerolog.Logger {
	return logger.FromContext(c.Request.Context())
}
