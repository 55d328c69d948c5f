package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money entering from money leaving an account.
type TransactionType string

const (
	// TransactionTypeIncome represents money received by the user.
	TransactionTypeIncome TransactionType = "income"
	// TransactionTypeExpense represents money spent by the user.
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction represents a single financial movement recorded for a user.
type Transaction struct {
	Date        time.Time
	CreatedAt   time.Time
	ID          string
	UserID      string
	Type        TransactionType
	Description string
	Category    string
	Amount      decimal.Decimal
}

// Signed returns the amount with income positive and expense negative,
// suitable for balance accumulation.
func (t *Transaction) Signed() decimal.Decimal {
	if t.Type == TransactionTypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}
