package models

import (
	"strings"

	"golang.org/x/text/currency"
)

const DefaultCurrency = "USD"

// SupportedCurrencies lists the display currencies a user can pick.
var SupportedCurrencies = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "JPY": true, "CHF": true,
	"CAD": true, "AUD": true, "PLN": true, "BYN": true, "KRW": true,
	"INR": true, "CNY": true,
}

// NormalizeCurrency upper-cases code and checks it is a known ISO 4217
// unit we support. The second result is false for anything else.
func NormalizeCurrency(code string) (string, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", false
	}
	code = unit.String()
	return code, SupportedCurrencies[code]
}
