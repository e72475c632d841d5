package database

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/pocket-ledger/models"
)

// MemoryStore is an in-memory Store. It is safe for concurrent use and is
// used by the tests and by STORAGE=memory. Data is lost on restart.
type MemoryStore struct {
	mu    sync.Mutex
	state *memState
	now   func() time.Time
}

type memState struct {
	users        map[int64]models.User
	transactions []models.Transaction
	goals        []models.Goal
	lastUserID   int64
	lastTxID     int64
	lastGoalID   int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		state: &memState{users: make(map[int64]models.User)},
		now:   time.Now,
	}
}

func (s *memState) clone() *memState {
	c := *s
	c.users = make(map[int64]models.User, len(s.users))
	for id, u := range s.users {
		c.users[id] = u
	}
	c.transactions = append([]models.Transaction(nil), s.transactions...)
	c.goals = append([]models.Goal(nil), s.goals...)
	return &c
}

// InTx runs fn against a private copy of the data and publishes the copy
// only if fn succeeds.
func (m *MemoryStore) InTx(ctx context.Context, fn func(q Querier) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	working := m.state.clone()
	if err := fn(&memQueries{state: working, now: m.now}); err != nil {
		return err
	}
	m.state = working
	return nil
}

func (m *MemoryStore) Close() {}

// run executes fn against the live state under the store lock.
func (m *MemoryStore) run(fn func(q *memQueries) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(&memQueries{state: m.state, now: m.now})
}

func (m *MemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	return m.run(func(q *memQueries) error { return q.CreateUser(ctx, user) })
}

func (m *MemoryStore) GetUserByID(ctx context.Context, id int64) (user *models.User, err error) {
	err = m.run(func(q *memQueries) error {
		user, err = q.GetUserByID(ctx, id)
		return err
	})
	return user, err
}

func (m *MemoryStore) GetUserByEmail(ctx context.Context, email string) (user *models.User, err error) {
	err = m.run(func(q *memQueries) error {
		user, err = q.GetUserByEmail(ctx, email)
		return err
	})
	return user, err
}

func (m *MemoryStore) UpdateUserCurrency(ctx context.Context, userID int64, currency string) (user *models.User, err error) {
	err = m.run(func(q *memQueries) error {
		user, err = q.UpdateUserCurrency(ctx, userID, currency)
		return err
	})
	return user, err
}

func (m *MemoryStore) ApplyBalanceDelta(ctx context.Context, userID int64, delta decimal.Decimal) (user *models.User, err error) {
	err = m.run(func(q *memQueries) error {
		user, err = q.ApplyBalanceDelta(ctx, userID, delta)
		return err
	})
	return user, err
}

func (m *MemoryStore) CreateTransaction(ctx context.Context, transaction *models.Transaction) error {
	return m.run(func(q *memQueries) error { return q.CreateTransaction(ctx, transaction) })
}

func (m *MemoryStore) GetTransactionsByUserID(ctx context.Context, userID int64) (out []models.Transaction, err error) {
	err = m.run(func(q *memQueries) error {
		out, err = q.GetTransactionsByUserID(ctx, userID)
		return err
	})
	return out, err
}

func (m *MemoryStore) GetTransactionSummary(ctx context.Context, userID int64) (out *models.TransactionSummary, err error) {
	err = m.run(func(q *memQueries) error {
		out, err = q.GetTransactionSummary(ctx, userID)
		return err
	})
	return out, err
}

func (m *MemoryStore) CreateGoal(ctx context.Context, goal *models.Goal) error {
	return m.run(func(q *memQueries) error { return q.CreateGoal(ctx, goal) })
}

func (m *MemoryStore) GetGoalsByUserID(ctx context.Context, userID int64) (out []models.Goal, err error) {
	err = m.run(func(q *memQueries) error {
		out, err = q.GetGoalsByUserID(ctx, userID)
		return err
	})
	return out, err
}

func (m *MemoryStore) AddGoalProgress(ctx context.Context, userID, goalID int64, amount decimal.Decimal) (goal *models.Goal, err error) {
	err = m.run(func(q *memQueries) error {
		goal, err = q.AddGoalProgress(ctx, userID, goalID, amount)
		return err
	})
	return goal, err
}

func (m *MemoryStore) ListBalanceDrift(ctx context.Context) (out []models.BalanceDrift, err error) {
	err = m.run(func(q *memQueries) error {
		out, err = q.ListBalanceDrift(ctx)
		return err
	})
	return out, err
}

// memQueries implements Querier over a memState. Callers hold the lock.
type memQueries struct {
	state *memState
	now   func() time.Time
}

func (q *memQueries) CreateUser(_ context.Context, user *models.User) error {
	for _, u := range q.state.users {
		if strings.EqualFold(u.Email, user.Email) {
			return ErrDuplicateEmail
		}
	}
	q.state.lastUserID++
	user.ID = q.state.lastUserID
	user.Balance = decimal.Zero
	user.CreatedAt = q.now().UTC()
	q.state.users[user.ID] = *user
	return nil
}

func (q *memQueries) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := q.state.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (q *memQueries) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range q.state.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (q *memQueries) UpdateUserCurrency(_ context.Context, userID int64, currency string) (*models.User, error) {
	u, ok := q.state.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	u.Currency = currency
	q.state.users[userID] = u
	return &u, nil
}

func (q *memQueries) ApplyBalanceDelta(_ context.Context, userID int64, delta decimal.Decimal) (*models.User, error) {
	u, ok := q.state.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	u.Balance = u.Balance.Add(delta)
	q.state.users[userID] = u
	return &u, nil
}

func (q *memQueries) CreateTransaction(_ context.Context, transaction *models.Transaction) error {
	if _, ok := q.state.users[transaction.UserID]; !ok {
		return ErrNotFound
	}
	q.state.lastTxID++
	transaction.ID = q.state.lastTxID
	transaction.CreatedAt = q.now().UTC()
	q.state.transactions = append(q.state.transactions, *transaction)
	return nil
}

func (q *memQueries) GetTransactionsByUserID(_ context.Context, userID int64) ([]models.Transaction, error) {
	out := make([]models.Transaction, 0)
	for _, t := range q.state.transactions {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (q *memQueries) GetTransactionSummary(ctx context.Context, userID int64) (*models.TransactionSummary, error) {
	summary := &models.TransactionSummary{
		ExpensesByCategory: make([]models.ChartPoint, 0),
		Monthly:            make([]models.MonthlyTotals, 0),
	}
	byCategory := make(map[string]decimal.Decimal)
	byMonth := make(map[string]*models.MonthlyTotals)

	transactions, _ := q.GetTransactionsByUserID(ctx, userID)
	for _, t := range transactions {
		month := t.CreatedAt.UTC().Format("2006-01")
		m, ok := byMonth[month]
		if !ok {
			m = &models.MonthlyTotals{Month: month}
			byMonth[month] = m
		}

		if t.Type == models.TransactionIncome {
			summary.TotalIncome = summary.TotalIncome.Add(t.Amount)
			m.Income = m.Income.Add(t.Amount)
			continue
		}
		summary.TotalExpense = summary.TotalExpense.Add(t.Amount)
		m.Expense = m.Expense.Add(t.Amount)
		category := t.Category
		if category == "" {
			category = "Uncategorized"
		}
		byCategory[category] = byCategory[category].Add(t.Amount)
	}
	summary.Net = summary.TotalIncome.Sub(summary.TotalExpense)

	for name, total := range byCategory {
		summary.ExpensesByCategory = append(summary.ExpensesByCategory, models.ChartPoint{Name: name, Value: total})
	}
	sort.Slice(summary.ExpensesByCategory, func(i, j int) bool {
		a, b := summary.ExpensesByCategory[i], summary.ExpensesByCategory[j]
		if !a.Value.Equal(b.Value) {
			return a.Value.GreaterThan(b.Value)
		}
		return a.Name < b.Name
	})

	for _, m := range byMonth {
		summary.Monthly = append(summary.Monthly, *m)
	}
	sort.Slice(summary.Monthly, func(i, j int) bool {
		return summary.Monthly[i].Month < summary.Monthly[j].Month
	})
	return summary, nil
}

func (q *memQueries) CreateGoal(_ context.Context, goal *models.Goal) error {
	if _, ok := q.state.users[goal.UserID]; !ok {
		return ErrNotFound
	}
	goal.RefreshStatus()
	q.state.lastGoalID++
	goal.ID = q.state.lastGoalID
	goal.CreatedAt = q.now().UTC()
	q.state.goals = append(q.state.goals, *goal)
	return nil
}

func (q *memQueries) GetGoalsByUserID(_ context.Context, userID int64) ([]models.Goal, error) {
	out := make([]models.Goal, 0)
	for _, g := range q.state.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (q *memQueries) AddGoalProgress(_ context.Context, userID, goalID int64, amount decimal.Decimal) (*models.Goal, error) {
	for i := range q.state.goals {
		g := q.state.goals[i]
		if g.ID != goalID || g.UserID != userID {
			continue
		}
		next := g.CurrentAmount.Add(amount)
		if next.IsNegative() {
			return nil, ErrNegativeProgress
		}
		g.CurrentAmount = next
		g.RefreshStatus()
		q.state.goals[i] = g
		return &g, nil
	}
	return nil, ErrNotFound
}

func (q *memQueries) ListBalanceDrift(ctx context.Context) ([]models.BalanceDrift, error) {
	computed := make(map[int64]decimal.Decimal, len(q.state.users))
	for _, t := range q.state.transactions {
		computed[t.UserID] = computed[t.UserID].Add(t.SignedAmount())
	}

	drift := make([]models.BalanceDrift, 0)
	for id, u := range q.state.users {
		if !u.Balance.Equal(computed[id]) {
			drift = append(drift, models.BalanceDrift{UserID: id, Stored: u.Balance, Computed: computed[id]})
		}
	}
	sort.Slice(drift, func(i, j int) bool { return drift[i].UserID < drift[j].UserID })
	return drift, nil
}

var (
	_ Store   = (*MemoryStore)(nil)
	_ Store   = (*PostgresStore)(nil)
	_ Querier = (*memQueries)(nil)
)
