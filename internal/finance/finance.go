// Package finance holds the workflows behind the HTTP API: recording
// transactions against the running balance, savings goals, user settings
// and sign-in.
package finance

import (
	"errors"

	"github.com/valeriaulyamaeva/pocket-ledger/internal/database"
)

var (
	ErrInvalidTransaction  = errors.New("transaction needs type INCOME or EXPENSE and a positive money amount")
	ErrInvalidGoal         = errors.New("goal needs a name and a positive target amount")
	ErrInvalidAmount       = errors.New("amount does not fit a money value")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrCurrencyRequired    = errors.New("currency is required")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
)

// Services bundles every workflow over a single store.
type Services struct {
	Auth         *AuthService
	Transactions *TransactionService
	Goals        *GoalService
	Users        *UserService
}

func NewServices(store database.Store) *Services {
	return &Services{
		Auth:         NewAuthService(store),
		Transactions: NewTransactionService(store),
		Goals:        NewGoalService(store),
		Users:        NewUserService(store),
	}
}
