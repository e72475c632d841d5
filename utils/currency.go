package utils

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatAmount renders amount with the symbol and rounding of the given
// ISO currency, e.g. "$ 1,234.50". The amount is displayed as is, never
// converted. Unknown codes fall back to "1234.50 XYZ".
func FormatAmount(amount decimal.Decimal, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	unit, err := currency.ParseISO(code)
	if err != nil {
		return strings.TrimSpace(amount.StringFixed(2) + " " + code)
	}

	f, _ := amount.Float64()
	if amount.IsNegative() {
		return "-" + printer.Sprint(currency.Symbol(unit.Amount(-f)))
	}
	return printer.Sprint(currency.Symbol(unit.Amount(f)))
}
