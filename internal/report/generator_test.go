package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/investbot-app/investbot/internal/model"
	"github.com/investbot-app/investbot/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore implements Store with canned data for report tests.
type fakeStore struct {
	err          error
	stats        *service.MonthlyStats
	transactions []model.Transaction
	goals        []model.Goal
	balance      decimal.Decimal
}

func (f *fakeStore) GetUserTransactions(_ context.Context, _ string) ([]model.Transaction, error) {
	return f.transactions, f.err
}

func (f *fakeStore) GetTransactionsByPeriod(_ context.Context, _ string, start, end time.Time) ([]model.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Transaction
	for _, txn := range f.transactions {
		if !txn.Date.Before(start) && !txn.Date.After(end) {
			out = append(out, txn)
		}
	}
	return out, nil
}

func (f *fakeStore) GetUserBalance(_ context.Context, _ string) (decimal.Decimal, error) {
	return f.balance, f.err
}

func (f *fakeStore) GetMonthlyStats(_ context.Context, _ string, _ time.Time) (*service.MonthlyStats, error) {
	return f.stats, f.err
}

func (f *fakeStore) GetUserGoals(_ context.Context, _ string) ([]model.Goal, error) {
	return f.goals, f.err
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

var testUser = &model.User{ID: "u1", Name: "Maria Souza", Phone: "5511999990000"}

func fixedNow() time.Time {
	return time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
}

func TestGenerator_Daily(t *testing.T) {
	store := &fakeStore{
		transactions: []model.Transaction{
			{Type: model.TransactionTypeExpense, Amount: dec("80"), Date: time.Date(2024, time.March, 14, 10, 0, 0, 0, time.UTC)},
			{Type: model.TransactionTypeIncome, Amount: dec("200"), Date: time.Date(2024, time.March, 14, 15, 0, 0, 0, time.UTC)},
			// Outside yesterday's window, must be excluded.
			{Type: model.TransactionTypeExpense, Amount: dec("999"), Date: time.Date(2024, time.March, 10, 10, 0, 0, 0, time.UTC)},
		},
	}
	gen := NewGenerator(store, fixedNow)

	msg, err := gen.Daily(context.Background(), testUser)
	require.NoError(t, err)
	assert.Contains(t, msg, "Bom dia, Maria!")
	assert.Contains(t, msg, "R$ 200.00")
	assert.Contains(t, msg, "R$ 80.00")
	assert.Contains(t, msg, "R$ 120.00")
	assert.NotContains(t, msg, "999")
}

func TestGenerator_DailySkipsQuietUsers(t *testing.T) {
	gen := NewGenerator(&fakeStore{}, fixedNow)

	msg, err := gen.Daily(context.Background(), testUser)
	require.NoError(t, err)
	assert.Empty(t, msg)
}

func TestGenerator_Weekly(t *testing.T) {
	store := &fakeStore{
		balance: dec("1500.50"),
		transactions: []model.Transaction{
			{Type: model.TransactionTypeIncome, Amount: dec("1000"), Date: time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC)},
			{Type: model.TransactionTypeExpense, Amount: dec("300"), Date: time.Date(2024, time.March, 13, 0, 0, 0, 0, time.UTC)},
		},
	}
	gen := NewGenerator(store, fixedNow)

	msg, err := gen.Weekly(context.Background(), testUser)
	require.NoError(t, err)
	assert.Contains(t, msg, "Resumo Semanal - Maria")
	assert.Contains(t, msg, "R$ 1000.00")
	assert.Contains(t, msg, "R$ 300.00")
	assert.Contains(t, msg, "R$ 1500.50")
}

func TestGenerator_Monthly(t *testing.T) {
	// Previous month relative to 2024-03-15 is February.
	feb := func(day int, amt, cat string, typ model.TransactionType) model.Transaction {
		return model.Transaction{
			Type:     typ,
			Amount:   dec(amt),
			Category: cat,
			Date:     time.Date(2024, time.February, day, 12, 0, 0, 0, time.UTC),
		}
	}
	store := &fakeStore{
		transactions: []model.Transaction{
			feb(1, "3000", "Salário", model.TransactionTypeIncome),
			feb(5, "900", "Moradia", model.TransactionTypeExpense),
			feb(10, "600", "Alimentação", model.TransactionTypeExpense),
			feb(12, "150", "Lazer", model.TransactionTypeExpense),
			feb(20, "100", "Transporte", model.TransactionTypeExpense),
		},
	}
	gen := NewGenerator(store, fixedNow)

	msg, err := gen.Monthly(context.Background(), testUser)
	require.NoError(t, err)
	assert.Contains(t, msg, "Análise Completa do Mês Anterior")
	// Savings rate: (3000-1750)/3000 = 41.7% -> congratulation band.
	assert.Contains(t, msg, "41.7%")
	assert.Contains(t, msg, "Parabéns")
	// Top 3 categories by spend; Transporte (4th) must be cut.
	assert.Contains(t, msg, "1. Moradia: R$ 900.00")
	assert.Contains(t, msg, "2. Alimentação: R$ 600.00")
	assert.Contains(t, msg, "3. Lazer: R$ 150.00")
	assert.NotContains(t, msg, "Transporte")
}

func TestGenerator_Balance(t *testing.T) {
	store := &fakeStore{
		balance: dec("2500"),
		stats:   &service.MonthlyStats{Income: dec("3000"), Expenses: dec("1200")},
	}
	gen := NewGenerator(store, fixedNow)

	msg, err := gen.Balance(context.Background(), testUser)
	require.NoError(t, err)
	assert.Contains(t, msg, "R$ 2500.00")
	assert.Contains(t, msg, "R$ 3000.00")
	assert.Contains(t, msg, "R$ 1200.00")
	assert.Contains(t, msg, "60.0%")
}

func TestGenerator_Statement(t *testing.T) {
	mar := func(day int, amt, desc string, typ model.TransactionType) model.Transaction {
		return model.Transaction{
			Type:        typ,
			Amount:      dec(amt),
			Description: desc,
			Date:        time.Date(2024, time.March, day, 12, 0, 0, 0, time.UTC),
		}
	}
	store := &fakeStore{
		transactions: []model.Transaction{
			mar(1, "3000", "salário", model.TransactionTypeIncome),
			mar(2, "900", "aluguel", model.TransactionTypeExpense),
			mar(3, "50", "mercado", model.TransactionTypeExpense),
			mar(4, "40", "uber", model.TransactionTypeExpense),
			mar(5, "30", "lanche", model.TransactionTypeExpense),
			mar(6, "20", "padaria", model.TransactionTypeExpense),
			mar(7, "10", "café", model.TransactionTypeExpense),
		},
	}
	gen := NewGenerator(store, fixedNow)

	msg, err := gen.Statement(context.Background(), testUser)
	require.NoError(t, err)
	assert.Contains(t, msg, "1. 📈 R$ 3000.00 - salário")
	assert.Contains(t, msg, "2. 📉 R$ 900.00 - aluguel")
	// Only the top five are listed.
	assert.Contains(t, msg, "5. 📉 R$ 30.00 - lanche")
	assert.NotContains(t, msg, "padaria")
	assert.NotContains(t, msg, "café")
}

func TestGenerator_StatementEmpty(t *testing.T) {
	gen := NewGenerator(&fakeStore{}, fixedNow)

	msg, err := gen.Statement(context.Background(), testUser)
	require.NoError(t, err)
	assert.Contains(t, msg, "Nenhuma transação encontrada")
}

func TestGenerator_AdviceBands(t *testing.T) {
	tests := []struct {
		name    string
		income  string
		expense string
		want    string
	}{
		{name: "low savings", income: "1000", expense: "950", want: "abaixo do ideal"},
		{name: "medium savings", income: "1000", expense: "850", want: "caminho certo"},
		{name: "high savings", income: "1000", expense: "500", want: "Excelente trabalho"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{
				transactions: []model.Transaction{
					{Type: model.TransactionTypeIncome, Amount: dec(tt.income)},
					{Type: model.TransactionTypeExpense, Amount: dec(tt.expense)},
				},
			}
			gen := NewGenerator(store, fixedNow)

			msg, err := gen.Advice(context.Background(), testUser)
			require.NoError(t, err)
			assert.Contains(t, msg, tt.want)
		})
	}
}

func TestGenerator_PropagatesStoreErrors(t *testing.T) {
	gen := NewGenerator(&fakeStore{err: errors.New("db down")}, fixedNow)

	_, err := gen.Daily(context.Background(), testUser)
	assert.Error(t, err)

	_, err = gen.Balance(context.Background(), testUser)
	assert.Error(t, err)
}
