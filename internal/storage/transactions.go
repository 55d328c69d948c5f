package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/investbot-app/investbot/internal/model"
	"github.com/investbot-app/investbot/internal/service"
)

const transactionColumns = "id, user_id, type, amount, description, category, date, created_at"

// CreateTransaction inserts one financial movement. Amounts are stored as
// exact decimal strings; SQLite never touches them as floats.
func (s *SQLiteStorage) CreateTransaction(ctx context.Context, txn *model.Transaction) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateTransaction(txn); err != nil {
		return nil, err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (id, user_id, type, amount, description, category, date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, txn.ID, txn.UserID, string(txn.Type), txn.Amount.String(),
		txn.Description, txn.Category, txn.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", mapConstraintErr(err))
	}

	row := s.db.QueryRowContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE id = ?", txn.ID)
	return scanTransaction(row)
}

// GetUserTransactions returns every movement for a user, newest first.
func (s *SQLiteStorage) GetUserTransactions(ctx context.Context, userID string) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE user_id = ? ORDER BY date DESC",
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	return collectTransactions(rows)
}

// GetTransactionsByPeriod returns the movements in [start, end), oldest first.
func (s *SQLiteStorage) GetTransactionsByPeriod(ctx context.Context, userID string, start, end time.Time) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if !start.Before(end) {
		return nil, ErrInvalidDateRange
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE user_id = ? AND date >= ? AND date < ? ORDER BY date",
		userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions by period: %w", err)
	}
	return collectTransactions(rows)
}

// GetUserBalance computes income minus expenses across the user's whole
// history. The sum runs in Go so decimals stay exact.
func (s *SQLiteStorage) GetUserBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	txns, err := s.GetUserTransactions(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}

	var balance decimal.Decimal
	for i := range txns {
		balance = balance.Add(txns[i].Signed())
	}
	return balance, nil
}

// GetMonthlyStats totals income and expenses for the calendar month
// containing now.
func (s *SQLiteStorage) GetMonthlyStats(ctx context.Context, userID string, now time.Time) (*service.MonthlyStats, error) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0)

	txns, err := s.GetTransactionsByPeriod(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	stats := &service.MonthlyStats{}
	for _, txn := range txns {
		switch txn.Type {
		case model.TransactionTypeIncome:
			stats.Income = stats.Income.Add(txn.Amount)
		case model.TransactionTypeExpense:
			stats.Expenses = stats.Expenses.Add(txn.Amount)
		}
	}
	return stats, nil
}

// GetAverageExpense returns the mean expense amount over the user's whole
// history, or zero when there are no expenses.
func (s *SQLiteStorage) GetAverageExpense(ctx context.Context, userID string) (decimal.Decimal, error) {
	txns, err := s.GetUserTransactions(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}

	var total decimal.Decimal
	count := 0
	for _, txn := range txns {
		if txn.Type == model.TransactionTypeExpense {
			total = total.Add(txn.Amount)
			count++
		}
	}
	if count == 0 {
		return decimal.Zero, nil
	}
	return total.Div(decimal.NewFromInt(int64(count))), nil
}

func collectTransactions(rows *sql.Rows) ([]model.Transaction, error) {
	defer func() { _ = rows.Close() }()

	var txns []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return txns, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(scanner rowScanner) (*model.Transaction, error) {
	var txn model.Transaction
	var txnType, amount string
	if err := scanner.Scan(&txn.ID, &txn.UserID, &txnType, &amount,
		&txn.Description, &txn.Category, &txn.Date, &txn.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}

	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("corrupt amount %q for transaction %s: %w", amount, txn.ID, err)
	}
	txn.Type = model.TransactionType(txnType)
	txn.Amount = parsed
	return &txn, nil
}
