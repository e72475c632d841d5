package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/pocket-ledger/internal/finance"
	"github.com/valeriaulyamaeva/pocket-ledger/models"
)

// DemoPassword is the password every generated account gets.
const DemoPassword = "demo-password"

var (
	expenseCategories = []string{"Groceries", "Rent", "Transport", "Dining", "Utilities", "Health", "Entertainment"}
	incomeCategories  = []string{"Salary", "Freelance", "Gift", "Interest"}
)

// DemoData generates fake accounts and their history. Everything goes
// through the regular workflows so balances match the transactions.
type DemoData struct {
	services *finance.Services
	faker    *gofakeit.Faker
	log      zerolog.Logger
}

// NewDemoData uses seed for reproducible output; 0 picks a random seed.
func NewDemoData(services *finance.Services, seed int64, log zerolog.Logger) *DemoData {
	return &DemoData{services: services, faker: gofakeit.New(seed), log: log}
}

// GenerateDemoData creates numUsers accounts with txPerUser transactions
// and a couple of savings goals each, and returns the created users.
func (d *DemoData) GenerateDemoData(ctx context.Context, numUsers, txPerUser int) ([]*models.User, error) {
	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := d.services.Auth.Register(ctx, finance.RegisterInput{
			Name:     d.faker.Name(),
			Email:    fmt.Sprintf("%d.%s", i, d.faker.Email()),
			Password: DemoPassword,
		})
		if err != nil {
			return users, fmt.Errorf("creating demo user: %w", err)
		}

		if err := d.generateTransactions(ctx, user.ID, txPerUser); err != nil {
			return users, err
		}
		if err := d.generateGoals(ctx, user.ID); err != nil {
			return users, err
		}

		fresh, err := d.services.Users.Get(ctx, user.ID)
		if err != nil {
			return users, err
		}
		d.log.Info().Int64("user_id", fresh.ID).Str("email", fresh.Email).
			Str("balance", fresh.Balance.String()).Msg("demo user created")
		users = append(users, fresh)
	}
	return users, nil
}

func (d *DemoData) generateTransactions(ctx context.Context, userID int64, n int) error {
	for i := 0; i < n; i++ {
		in := finance.TransactionInput{
			Type:        models.TransactionExpense,
			Amount:      d.price(5, 300),
			Category:    d.faker.RandomString(expenseCategories),
			Description: d.faker.Sentence(4),
		}
		// Roughly one in four is income, and larger.
		if d.faker.Number(1, 4) == 1 {
			in.Type = models.TransactionIncome
			in.Amount = d.price(200, 3000)
			in.Category = d.faker.RandomString(incomeCategories)
		}
		if _, err := d.services.Transactions.Create(ctx, userID, in); err != nil {
			return fmt.Errorf("creating demo transaction: %w", err)
		}
	}
	return nil
}

func (d *DemoData) generateGoals(ctx context.Context, userID int64) error {
	for i := 0; i < 2; i++ {
		target := d.price(500, 5000)
		due := time.Now().AddDate(0, d.faker.Number(1, 24), 0).UTC().Truncate(24 * time.Hour)
		goal, err := d.services.Goals.Create(ctx, userID, finance.GoalInput{
			Name:         d.faker.BuzzWord() + " fund",
			TargetAmount: target,
			TargetDate:   &due,
		})
		if err != nil {
			return fmt.Errorf("creating demo goal: %w", err)
		}
		if _, err := d.services.Goals.AddProgress(ctx, userID, goal.ID, d.price(0, 500)); err != nil {
			return fmt.Errorf("adding demo goal progress: %w", err)
		}
	}
	return nil
}

func (d *DemoData) price(min, max float64) decimal.Decimal {
	return decimal.NewFromFloat(d.faker.Price(min, max)).Round(2)
}
