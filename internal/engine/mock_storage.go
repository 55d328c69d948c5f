package engine

import (
	"context"
	"sync"
	"time"

	"github.com/investbot-app/investbot/internal/common"
	"github.com/investbot-app/investbot/internal/model"
	"github.com/investbot-app/investbot/internal/service"
	"github.com/shopspring/decimal"
)

// MockStorage is an in-memory implementation of service.Storage used by the
// engine and scheduler tests. Errors can be injected per method name.
type MockStorage struct {
	usersByPhone map[string]*model.User
	usersByID    map[string]*model.User
	goals        map[string][]model.Goal
	errs         map[string]error
	transactions []model.Transaction
	mu           sync.Mutex
}

// NewMockStorage creates an empty in-memory storage.
func NewMockStorage() *MockStorage {
	return &MockStorage{
		usersByPhone: make(map[string]*model.User),
		usersByID:    make(map[string]*model.User),
		goals:        make(map[string][]model.Goal),
		errs:         make(map[string]error),
	}
}

// FailWith makes the named method return the given error.
func (m *MockStorage) FailWith(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[method] = err
}

// AddUser seeds a user.
func (m *MockStorage) AddUser(user *model.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.usersByPhone[user.Phone] = user
	m.usersByID[user.ID] = user
}

// AddGoal seeds a goal for a user.
func (m *MockStorage) AddGoal(goal model.Goal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.goals[goal.UserID] = append(m.goals[goal.UserID], goal)
}

// AddTransaction seeds a transaction.
func (m *MockStorage) AddTransaction(txn model.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions = append(m.transactions, txn)
}

// Transactions returns a copy of all stored transactions.
func (m *MockStorage) Transactions() []model.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Transaction, len(m.transactions))
	copy(out, m.transactions)
	return out
}

// UserCount returns the number of registered users.
func (m *MockStorage) UserCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.usersByID)
}

func (m *MockStorage) GetUserByPhone(_ context.Context, phone string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errs["GetUserByPhone"]; err != nil {
		return nil, err
	}
	user, ok := m.usersByPhone[phone]
	if !ok {
		return nil, common.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (m *MockStorage) GetUserByID(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errs["GetUserByID"]; err != nil {
		return nil, err
	}
	user, ok := m.usersByID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (m *MockStorage) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errs["CreateUser"]; err != nil {
		return nil, err
	}
	if _, exists := m.usersByPhone[user.Phone]; exists {
		return nil, common.ErrDuplicateEntry
	}
	clone := *user
	m.usersByPhone[user.Phone] = &clone
	m.usersByID[user.ID] = &clone
	return user, nil
}

func (m *MockStorage) GetAllActiveUsers(_ context.Context) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errs["GetAllActiveUsers"]; err != nil {
		return nil, err
	}
	var users []model.User
	for _, user := range m.usersByID {
		if user.IsActive {
			users = append(users, *user)
		}
	}
	return users, nil
}

func (m *MockStorage) CreateTransaction(_ context.Context, txn *model.Transaction) (*model.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errs["CreateTransaction"]; err != nil {
		return nil, err
	}
	m.transactions = append(m.transactions, *txn)
	return txn, nil
}

func (m *MockStorage) GetUserTransactions(_ context.Context, userID string) ([]model.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errs["GetUserTransactions"]; err != nil {
		return nil, err
	}
	var txns []model.Transaction
	for _, txn := range m.transactions {
		if txn.UserID == userID {
			txns = append(txns, txn)
		}
	}
	return txns, nil
}

func (m *MockStorage) GetTransactionsByPeriod(_ context.Context, userID string, start, end time.Time) ([]model.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errs["GetTransactionsByPeriod"]; err != nil {
		return nil, err
	}
	var txns []model.Transaction
	for _, txn := range m.transactions {
		if txn.UserID == userID && !txn.Date.Before(start) && txn.Date.Before(end) {
			txns = append(txns, txn)
		}
	}
	return txns, nil
}

func (m *MockStorage) GetUserBalance(_ context.Context, userID string) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errs["GetUserBalance"]; err != nil {
		return decimal.Zero, err
	}
	var balance decimal.Decimal
	for _, txn := range m.transactions {
		if txn.UserID == userID {
			balance = balance.Add(txn.Signed())
		}
	}
	return balance, nil
}

func (m *MockStorage) GetMonthlyStats(_ context.Context, userID string, now time.Time) (*service.MonthlyStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errs["GetMonthlyStats"]; err != nil {
		return nil, err
	}
	stats := &service.MonthlyStats{}
	for _, txn := range m.transactions {
		if txn.UserID != userID {
			continue
		}
		if txn.Date.Year() != now.Year() || txn.Date.Month() != now.Month() {
			continue
		}
		switch txn.Type {
		case model.TransactionTypeIncome:
			stats.Income = stats.Income.Add(txn.Amount)
		case model.TransactionTypeExpense:
			stats.Expenses = stats.Expenses.Add(txn.Amount)
		}
	}
	return stats, nil
}

func (m *MockStorage) GetAverageExpense(_ context.Context, userID string) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errs["GetAverageExpense"]; err != nil {
		return decimal.Zero, err
	}
	var total decimal.Decimal
	count := 0
	for _, txn := range m.transactions {
		if txn.UserID == userID && txn.Type == model.TransactionTypeExpense {
			total = total.Add(txn.Amount)
			count++
		}
	}
	if count == 0 {
		return decimal.Zero, nil
	}
	return total.Div(decimal.NewFromInt(int64(count))), nil
}

func (m *MockStorage) GetUserGoals(_ context.Context, userID string) ([]model.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errs["GetUserGoals"]; err != nil {
		return nil, err
	}
	out := make([]model.Goal, len(m.goals[userID]))
	copy(out, m.goals[userID])
	return out, nil
}

func (m *MockStorage) CreateGoal(_ context.Context, goal *model.Goal) (*model.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errs["CreateGoal"]; err != nil {
		return nil, err
	}
	m.goals[goal.UserID] = append(m.goals[goal.UserID], *goal)
	return goal, nil
}

func (m *MockStorage) UpdateGoal(_ context.Context, goal *model.Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errs["UpdateGoal"]; err != nil {
		return err
	}
	goals := m.goals[goal.UserID]
	for i := range goals {
		if goals[i].ID == goal.ID {
			goals[i] = *goal
			return nil
		}
	}
	return common.ErrNotFound
}

func (m *MockStorage) Migrate(_ context.Context) error { return nil }

func (m *MockStorage) Close() error { return nil }
