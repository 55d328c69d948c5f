// Package engine implements the interaction engine: it routes every
// inbound chat message to exactly one handling path and produces at most
// one outbound reply.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/investbot-app/investbot/internal/common"
	"github.com/investbot-app/investbot/internal/model"
	"github.com/investbot-app/investbot/internal/report"
	"github.com/investbot-app/investbot/internal/rules"
	"github.com/investbot-app/investbot/internal/service"
	"github.com/investbot-app/investbot/internal/session"
)

// ConnectionStats is the slice of the supervisor the engine needs for
// diagnostics.
type ConnectionStats interface {
	IsReady() bool
	ReconnectAttempts() int
	UptimeSeconds() int64
}

// Config holds engine tuning knobs.
type Config struct {
	AdminPhone  string
	CallTimeout time.Duration
	Alerts      rules.AlertConfig
}

// DefaultConfig returns the production engine settings.
func DefaultConfig() Config {
	return Config{
		CallTimeout: 10 * time.Second,
		Alerts:      rules.DefaultAlertConfig(),
	}
}

// Engine turns inbound messages into replies. Each message is processed
// to completion before the next one starts; the transport is assumed to
// deliver messages for a single identity serially.
type Engine struct {
	now      func() time.Time
	store    service.Storage
	sender   service.Sender
	conn     ConnectionStats
	sessions *session.Store
	reports  *report.Generator
	cfg      Config
}

// New creates an interaction engine.
func New(store service.Storage, sessions *session.Store, sender service.Sender, conn ConnectionStats, cfg Config) *Engine {
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = DefaultConfig().CallTimeout
	}
	if cfg.Alerts.AbsoluteThreshold.IsZero() {
		cfg.Alerts = rules.DefaultAlertConfig()
	}
	e := &Engine{
		store:    store,
		sessions: sessions,
		sender:   sender,
		conn:     conn,
		cfg:      cfg,
		now:      time.Now,
	}
	e.reports = report.NewGenerator(store, func() time.Time { return e.now() })
	return e
}

// Run consumes inbound messages until the context ends. Send failures are
// logged and dropped; the loop itself never stops over a single message.
func (e *Engine) Run(ctx context.Context, messages <-chan service.InboundMessage) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			reply := e.Process(ctx, msg)
			if reply == "" {
				continue
			}
			if err := e.sender.Send(ctx, msg.From, reply); err != nil {
				common.LogError(err, "Failed to send reply", common.Fields{"to": msg.From})
			}
		}
	}
}

// Process routes one inbound message and returns the reply text, or an
// empty string when no reply is warranted.
func (e *Engine) Process(ctx context.Context, msg service.InboundMessage) string {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return ""
	}

	slog.Info("Processing inbound message", "from", msg.From)

	// Privileged diagnostics short-circuit everything else.
	if e.cfg.AdminPhone != "" && msg.From == e.cfg.AdminPhone && strings.EqualFold(text, "/status") {
		return e.statusReply()
	}

	callCtx, cancel := context.WithTimeout(ctx, e.cfg.CallTimeout)
	defer cancel()

	user, err := e.store.GetUserByPhone(callCtx, msg.From)
	switch {
	case errors.Is(err, common.ErrNotFound):
		return e.handleUnknownSender(ctx, msg.From, text)
	case err != nil:
		common.LogError(err, "User lookup failed", common.Fields{"from": msg.From})
		return replyApology
	}

	return e.dispatch(ctx, user, text)
}

// handleUnknownSender continues an in-flight onboarding session, starts a
// new one on a trigger keyword, or invites the sender to register.
func (e *Engine) handleUnknownSender(ctx context.Context, phone, text string) string {
	if sess := e.sessions.Get(phone); sess != nil {
		return e.advanceOnboarding(ctx, sess, text)
	}
	if matchesOnboardingTrigger(text) {
		return e.advanceOnboarding(ctx, &model.OnboardingSession{Phone: phone, Step: model.StepStart}, text)
	}
	return replyInvitation
}

func (e *Engine) dispatch(ctx context.Context, user *model.User, text string) string {
	intent := rules.ClassifyMessage(text)
	slog.Info("Classified message", "user_id", user.ID, "intent", intent)

	switch intent {
	case model.IntentExpense:
		return e.handleExpense(ctx, user, text)
	case model.IntentIncome:
		return e.handleIncome(ctx, user, text)
	case model.IntentBalance:
		return e.handleBalance(ctx, user)
	case model.IntentReport:
		return e.handleReport(ctx, user)
	case model.IntentAdvice:
		return e.handleAdvice(ctx, user)
	case model.IntentGoal:
		return e.handleGoals(ctx, user)
	case model.IntentAnalysis:
		return e.handleAnalysis(ctx, user)
	case model.IntentPrediction:
		return e.handlePrediction(ctx, user)
	case model.IntentSuggestion:
		return replySavingTips
	case model.IntentComparison:
		return e.handleComparison(ctx, user)
	case model.IntentGeneral:
		return e.handleGeneral(user, text)
	}
	return e.handleGeneral(user, text)
}

func (e *Engine) statusReply() string {
	stats := e.Stats()
	status := "✅ Online"
	if !stats.IsReady {
		status = "❌ Offline"
	}
	return fmt.Sprintf("🤖 InvestBot Status:\n%s\n📊 Sessões ativas: %d\n🔁 Reconexões: %d\n⏰ Uptime: %ds",
		status, stats.ActiveSessions, stats.ReconnectAttempts, stats.UptimeSeconds)
}

// Stats reports the administrative snapshot consumed by the HTTP surface.
func (e *Engine) Stats() service.Stats {
	return service.Stats{
		IsReady:           e.conn.IsReady(),
		ActiveSessions:    e.sessions.Count(),
		ReconnectAttempts: e.conn.ReconnectAttempts(),
		UptimeSeconds:     e.conn.UptimeSeconds(),
	}
}
