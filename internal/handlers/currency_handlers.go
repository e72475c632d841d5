package handlers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/pocket-ledger/models"
	"github.com/valeriaulyamaeva/pocket-ledger/utils"
)

type currencyOption struct {
	Code    string `json:"code"`
	Example string `json:"example"`
}

// GetCurrenciesHandler lists the display currencies a user can choose in
// settings, each with a formatted sample amount.
func GetCurrenciesHandler(c *gin.Context) {
	sample := decimal.NewFromFloat(1234.5)
	out := make([]currencyOption, 0, len(models.SupportedCurrencies))
	for code := range models.SupportedCurrencies {
		out = append(out, currencyOption{Code: code, Example: utils.FormatAmount(sample, code)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	c.JSON(http.StatusOK, out)
}
