package models

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Money amounts are stored as NUMERIC(14,2): at most two decimal places and
// twelve integer digits.
const (
	MoneyScale         = 2
	MoneyIntegerDigits = 12
)

// MaxMoney is the smallest magnitude that no longer fits.
var MaxMoney = decimal.New(1, MoneyIntegerDigits)

// IsMoney reports whether d fits the money column. It only inspects the
// coefficient and exponent, so inputs like 1e50000000 are rejected without
// being expanded.
func IsMoney(d decimal.Decimal) bool {
	coef := new(big.Int).Abs(d.Coefficient())
	if coef.Sign() == 0 {
		return true
	}
	digits := int64(len(coef.String()))
	exp := int64(d.Exponent())
	if digits+exp > MoneyIntegerDigits {
		return false
	}
	if exp >= -MoneyScale {
		return true
	}

	// Extra decimal places are fine only when they are trailing zeros.
	zeros := -exp - MoneyScale
	if zeros >= digits {
		return false
	}
	pow := new(big.Int).Exp(big.NewInt(10), big.NewInt(zeros), nil)
	return new(big.Int).Mod(coef, pow).Sign() == 0
}
