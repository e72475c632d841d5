package finance

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/valeriaulyamaeva/pocket-ledger/internal/auth"
	"github.com/valeriaulyamaeva/pocket-ledger/internal/database"
	"github.com/valeriaulyamaeva/pocket-ledger/models"
)

type UserService struct {
	store database.Store
}

func NewUserService(store database.Store) *UserService {
	return &UserService{store: store}
}

func (s *UserService) Get(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading user %d: %w", userID, err)
	}
	return user, nil
}

// UpdateCurrency changes the display currency. Amounts are not converted.
func (s *UserService) UpdateCurrency(ctx context.Context, userID int64, code string) (*models.User, error) {
	if strings.TrimSpace(code) == "" {
		return nil, ErrCurrencyRequired
	}
	normalized, ok := models.NormalizeCurrency(code)
	if !ok {
		return nil, ErrUnsupportedCurrency
	}

	user, err := s.store.UpdateUserCurrency(ctx, userID, normalized)
	if err != nil {
		return nil, fmt.Errorf("updating currency: %w", err)
	}
	return user, nil
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type AuthService struct {
	store database.Store
}

func NewAuthService(store database.Store) *AuthService {
	return &AuthService{store: store}
}

// Register creates an account with a zero balance in the default currency.
// Emails are stored lower-cased.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        normalizeEmail(in.Email),
		PasswordHash: hash,
		Currency:     models.DefaultCurrency,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("registering user: %w", err)
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.store.GetUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
