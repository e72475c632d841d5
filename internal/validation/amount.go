package validation

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/pocket-ledger/models"
)

// Amount is a money value decoded leniently from a JSON number or a
// numeric string. Decoding never fails: input that is not a number is
// recorded as invalid so that it can be reported next to every other
// violation instead of aborting the bind.
type Amount struct {
	Value   decimal.Decimal
	Present bool
	Valid   bool
}

func NewAmount(d decimal.Decimal) Amount {
	return Amount{Value: d, Present: true, Valid: true}
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = Amount{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	a.Present = true

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		raw = strings.TrimSpace(s)
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	a.Value, a.Valid = d, true
	return nil
}

// IsMoney reports whether a holds a number that fits a money column.
func (a Amount) IsMoney() bool {
	return a.Present && a.Valid && models.IsMoney(a.Value)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Present || !a.Valid {
		return []byte("null"), nil
	}
	return []byte(a.Value.String()), nil
}

// amountValue exposes an Amount to the validator as a float64 so the usual
// tags (required, gt, gte) apply. Missing input becomes nil and
// non-numeric input becomes NaN, which fails every comparison. Numbers that
// do not fit a money column become +Inf and fail the money tag; the float
// conversion only happens for amounts inside that bound.
func amountValue(field reflect.Value) any {
	a, ok := field.Interface().(Amount)
	if !ok || !a.Present {
		return nil
	}
	if !a.Valid {
		return math.NaN()
	}
	if !models.IsMoney(a.Value) {
		return math.Inf(1)
	}
	f, _ := a.Value.Float64()
	return f
}

// isMoney backs the money tag.
func isMoney(fl validator.FieldLevel) bool {
	f := fl.Field()
	if f.Kind() != reflect.Float64 {
		return true
	}
	return !math.IsInf(f.Float(), 0)
}
