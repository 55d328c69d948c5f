package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoalStatus tracks the lifecycle of a financial goal.
type GoalStatus string

const (
	// GoalStatusActive marks goals still being worked toward.
	GoalStatusActive GoalStatus = "active"
	// GoalStatusCompleted marks goals that reached their target.
	GoalStatusCompleted GoalStatus = "completed"
	// GoalStatusCancelled marks goals abandoned by the user.
	GoalStatusCancelled GoalStatus = "cancelled"
)

// GoalCategoryExpenseLimit is the goal category used for spending caps;
// alert rules treat progress against these goals as budget consumption.
const GoalCategoryExpenseLimit = "expense-limit"

// Goal represents a savings target or spending limit owned by a user.
type Goal struct {
	Deadline      time.Time
	CreatedAt     time.Time
	ID            string
	UserID        string
	Title         string
	Category      string
	Status        GoalStatus
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
}

// Progress returns completion as a percentage of the target amount.
// A zero target reports zero progress rather than dividing by zero.
func (g *Goal) Progress() float64 {
	if g.TargetAmount.IsZero() {
		return 0
	}
	ratio, _ := g.CurrentAmount.Div(g.TargetAmount).Float64()
	return ratio * 100
}

// Remaining returns the amount still needed to reach the target.
func (g *Goal) Remaining() decimal.Decimal {
	return g.TargetAmount.Sub(g.CurrentAmount)
}
