package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/pocket-ledger/internal/finance"
)

type userSettingsRequest struct {
	Currency string `json:"currency"`
}

// UpdateUserSettingsHandler changes the caller's display currency.
func UpdateUserSettingsHandler(svc *finance.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}

		var req userSettingsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondMessage(c, http.StatusBadRequest, "Currency is required")
			return
		}

		user, err := svc.UpdateCurrency(c.Request.Context(), p.UserID, req.Currency)
		switch {
		case errors.Is(err, finance.ErrCurrencyRequired):
			respondMessage(c, http.StatusBadRequest, "Currency is required")
		case errors.Is(err, finance.ErrUnsupportedCurrency):
			respondMessage(c, http.StatusBadRequest, "Unsupported currency")
		case err != nil:
			_ = c.Error(err)
		default:
			c.JSON(http.StatusOK, user)
		}
	}
}
