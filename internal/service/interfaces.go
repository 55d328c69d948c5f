// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/investbot-app/investbot/internal/model"
	"github.com/shopspring/decimal"
)

// MonthlyStats aggregates a user's income and expenses for the current month.
type MonthlyStats struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

// Storage defines the data gateway contract. Implementations return validated
// domain entities; callers never see raw storage rows. Absence is signaled
// with common.ErrNotFound, not with nil results.
type Storage interface {
	// User operations
	GetUserByPhone(ctx context.Context, phone string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetAllActiveUsers(ctx context.Context) ([]model.User, error)

	// Transaction operations
	CreateTransaction(ctx context.Context, txn *model.Transaction) (*model.Transaction, error)
	GetUserTransactions(ctx context.Context, userID string) ([]model.Transaction, error)
	GetTransactionsByPeriod(ctx context.Context, userID string, start, end time.Time) ([]model.Transaction, error)
	GetUserBalance(ctx context.Context, userID string) (decimal.Decimal, error)
	GetMonthlyStats(ctx context.Context, userID string, now time.Time) (*MonthlyStats, error)
	GetAverageExpense(ctx context.Context, userID string) (decimal.Decimal, error)

	// Goal operations
	GetUserGoals(ctx context.Context, userID string) ([]model.Goal, error)
	CreateGoal(ctx context.Context, goal *model.Goal) (*model.Goal, error)
	UpdateGoal(ctx context.Context, goal *model.Goal) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// InboundMessage is one text message delivered by the transport.
type InboundMessage struct {
	Timestamp time.Time
	From      string
	Text      string
}

// TransportEventKind enumerates transport lifecycle signals.
type TransportEventKind string

const (
	// TransportReady signals a completed handshake.
	TransportReady TransportEventKind = "ready"
	// TransportAuthenticated signals successful authentication.
	TransportAuthenticated TransportEventKind = "authenticated"
	// TransportAuthFailure signals failed authentication.
	TransportAuthFailure TransportEventKind = "auth_failure"
	// TransportDisconnected signals a dropped session.
	TransportDisconnected TransportEventKind = "disconnected"
	// TransportError signals a non-fatal transport error.
	TransportError TransportEventKind = "error"
)

// TransportEvent is one lifecycle signal from the transport.
type TransportEvent struct {
	Kind   TransportEventKind
	Reason string
}

// Transport is the external chat channel. Implementations deliver lifecycle
// events and inbound messages on channels and accept outbound sends.
type Transport interface {
	// Connect starts the handshake. Outcome is reported via Events, not the
	// return value; an error here means the attempt could not even start.
	Connect(ctx context.Context) error
	// Disconnect tears down the session.
	Disconnect() error
	// Send delivers one text message to the given identity.
	Send(ctx context.Context, to, text string) error
	// Healthy reports whether the underlying session is still alive.
	Healthy(ctx context.Context) error
	// Events delivers lifecycle signals.
	Events() <-chan TransportEvent
	// Messages delivers inbound text messages.
	Messages() <-chan InboundMessage
}

// Sender is the outbound primitive shared by the engine and the scheduler.
type Sender interface {
	Send(ctx context.Context, to, text string) error
}

// Stats is the administrative snapshot of the messaging subsystem.
type Stats struct {
	IsReady           bool  `json:"isReady"`
	ActiveSessions    int   `json:"activeSessions"`
	ReconnectAttempts int   `json:"reconnectAttempts"`
	UptimeSeconds     int64 `json:"uptime"`
}

// BroadcastResult reports the outcome of a fan-out cycle.
type BroadcastResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// RetryPolicy configures the supervisor's reconnect backoff. The delay before
// attempt n is BaseDelay * n; attempts beyond MaxRetries exhaust the policy.
type RetryPolicy struct {
	BaseDelay  time.Duration
	MaxRetries int
}

// Delay returns the backoff before the given attempt (1-based).
func (p RetryPolicy) Delay(attempt int) time.Duration {
	return p.BaseDelay * time.Duration(attempt)
}

// Exhausted reports whether the given attempt exceeds the retry budget.
func (p RetryPolicy) Exhausted(attempt int) bool {
	return attempt > p.MaxRetries
}
