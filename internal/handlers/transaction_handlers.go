package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/pocket-ledger/internal/finance"
	"github.com/valeriaulyamaeva/pocket-ledger/internal/validation"
	"github.com/valeriaulyamaeva/pocket-ledger/models"
	"github.com/valeriaulyamaeva/pocket-ledger/utils"
)

type createTransactionRequest struct {
	Type        string            `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Amount      validation.Amount `json:"amount" binding:"required,gt=0,money"`
	Category    string            `json:"category" binding:"max=64"`
	Description string            `json:"description" binding:"max=255"`
}

// GetTransactionsHandler lists the caller's transactions in creation order.
func GetTransactionsHandler(svc *finance.TransactionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		transactions, err := svc.List(c.Request.Context(), p.UserID)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, transactions)
	}
}

// CreateTransactionHandler records a transaction and responds with it and
// the owner's updated balance.
func CreateTransactionHandler(svc *finance.TransactionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}

		var req createTransactionRequest
		if err := validation.BindJSON(c, &req); err != nil {
			respondValidation(c, err)
			return
		}

		result, err := svc.Create(c.Request.Context(), p.UserID, finance.TransactionInput{
			Type:        models.TransactionType(req.Type),
			Amount:      req.Amount.Value,
			Category:    req.Category,
			Description: req.Description,
		})
		if err != nil {
			_ = c.Error(err)
			return
		}

		log := requestLogger(c)
		log.Info().
			Int64("user_id", p.UserID).
			Int64("transaction_id", result.Transaction.ID).
			Str("type", string(result.Transaction.Type)).
			Msg("transaction recorded")
		c.JSON(http.StatusCreated, result)
	}
}

// GetTransactionSummaryHandler returns the chart series with the net
// amount formatted in the caller's currency.
func GetTransactionSummaryHandler(svc *finance.TransactionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		summary, err := svc.Summary(c.Request.Context(), p.UserID)
		if err != nil {
			_ = c.Error(err)
			return
		}
		summary.FormattedNet = utils.FormatAmount(summary.Net, summary.Currency)
		c.JSON(http.StatusOK, summary)
	}
}
