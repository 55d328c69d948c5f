// Package supervisor owns the lifecycle of the single outbound chat
// session. It reacts to transport lifecycle events, reconnects with a
// bounded linear backoff, and exposes the readiness flag and send
// primitive the rest of the system depends on.
package supervisor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/investbot-app/investbot/internal/common"
	"github.com/investbot-app/investbot/internal/service"
)

// State is the connection lifecycle state.
type State string

const (
	// StateUninitialized is the state before Run is called.
	StateUninitialized State = "uninitialized"
	// StateInitializing means a handshake attempt is in flight.
	StateInitializing State = "initializing"
	// StateReady means the transport session is live.
	StateReady State = "ready"
	// StateDegraded means the session dropped and a retry is pending.
	StateDegraded State = "degraded"
	// StateExhausted means the retry budget ran out; only an external
	// restart can revive the connection.
	StateExhausted State = "exhausted"
)

// Config holds supervisor tuning knobs.
type Config struct {
	AdminPhone  string
	Retry       service.RetryPolicy
	SendTimeout time.Duration
}

// DefaultConfig returns the production supervisor settings.
func DefaultConfig() Config {
	return Config{
		Retry: service.RetryPolicy{
			BaseDelay:  5 * time.Second,
			MaxRetries: 5,
		},
		SendTimeout: 30 * time.Second,
	}
}

// Supervisor drives the transport connection state machine. All state
// transitions, including the ones triggered by the liveness probe and the
// reconnect timer, are serialized through a single mutex.
type Supervisor struct {
	startTime  time.Time
	transport  service.Transport
	clock      common.Clock
	retryCh    chan int
	cfg        Config
	state      State
	retryCount int
	mu         sync.Mutex
	sendMu     sync.Mutex
}

// New creates a supervisor over the given transport.
func New(transport service.Transport, cfg Config, clock common.Clock) *Supervisor {
	if clock == nil {
		clock = common.RealClock{}
	}
	if cfg.Retry.BaseDelay <= 0 {
		cfg.Retry = DefaultConfig().Retry
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = DefaultConfig().SendTimeout
	}
	return &Supervisor{
		transport: transport,
		cfg:       cfg,
		clock:     clock,
		state:     StateUninitialized,
		retryCh:   make(chan int, 1),
	}
}

// Run connects the transport and processes lifecycle events until the
// context is canceled. It owns every state transition; the reconnect
// timer and the liveness probe only feed it signals.
func (s *Supervisor) Run(ctx context.Context) error {
	s.mu.Lock()
	s.startTime = s.clock.Now()
	s.mu.Unlock()

	s.initialize(ctx)

	for {
		select {
		case <-ctx.Done():
			if err := s.transport.Disconnect(); err != nil {
				slog.Warn("Transport disconnect failed during shutdown", "error", err)
			}
			return ctx.Err()
		case ev, ok := <-s.transport.Events():
			if !ok {
				return nil
			}
			s.handleEvent(ctx, ev)
		case attempt := <-s.retryCh:
			s.retryInitialize(ctx, attempt)
		}
	}
}

func (s *Supervisor) handleEvent(ctx context.Context, ev service.TransportEvent) {
	switch ev.Kind {
	case service.TransportReady:
		s.toReady(ctx)
	case service.TransportAuthenticated:
		slog.Info("Transport authenticated")
	case service.TransportAuthFailure:
		slog.Error("Transport authentication failed", "reason", ev.Reason)
		s.toDegraded(ev.Reason)
	case service.TransportDisconnected:
		slog.Warn("Transport disconnected", "reason", ev.Reason)
		s.toDegraded(ev.Reason)
	case service.TransportError:
		slog.Error("Transport error", "reason", ev.Reason)
	}
}

// initialize starts a handshake attempt. A connect error counts as a
// disconnect and enters the backoff path.
func (s *Supervisor) initialize(ctx context.Context) {
	s.mu.Lock()
	s.state = StateInitializing
	s.mu.Unlock()

	slog.Info("Initializing transport connection")
	if err := s.transport.Connect(ctx); err != nil {
		slog.Error("Transport connect failed", "error", err)
		s.toDegraded(err.Error())
	}
}

// retryInitialize runs a scheduled reconnect attempt. Stale timers are
// dropped: the attempt must still match the current retry counter and the
// state must still be degraded.
func (s *Supervisor) retryInitialize(ctx context.Context, attempt int) {
	s.mu.Lock()
	if s.state != StateDegraded || attempt != s.retryCount {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	slog.Info("Reconnecting transport",
		"attempt", attempt,
		"max_retries", s.cfg.Retry.MaxRetries)
	s.initialize(ctx)
}

func (s *Supervisor) toReady(ctx context.Context) {
	s.mu.Lock()
	s.state = StateReady
	s.retryCount = 0
	s.mu.Unlock()

	slog.Info("Transport ready")

	if s.cfg.AdminPhone != "" {
		if err := s.Send(ctx, s.cfg.AdminPhone, "🤖 InvestBot está online e funcionando 24h!"); err != nil {
			slog.Warn("Failed to send ready self-notification", "error", err)
		}
	}
}

// toDegraded records the failure and schedules the next reconnect, or
// gives up when the retry budget is spent.
func (s *Supervisor) toDegraded(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateDegraded || s.state == StateExhausted {
		return
	}
	s.state = StateDegraded

	attempt := s.retryCount + 1
	if s.cfg.Retry.Exhausted(attempt) {
		s.state = StateExhausted
		slog.Error("Reconnect attempts exhausted; operator intervention required",
			"attempts", s.retryCount,
			"reason", reason)
		return
	}
	s.retryCount = attempt

	delay := s.cfg.Retry.Delay(attempt)
	slog.Warn("Transport degraded, scheduling reconnect",
		"reason", reason,
		"attempt", attempt,
		"delay", delay)

	go func() {
		if err := s.clock.Sleep(context.Background(), delay); err != nil {
			return
		}
		select {
		case s.retryCh <- attempt:
		default:
		}
	}()
}

// Probe checks transport health while ready and degrades the connection
// on failure. Exhausted connections are restarted outright; this is the
// external watchdog path out of the terminal state.
func (s *Supervisor) Probe(ctx context.Context) {
	s.mu.Lock()
	state := s.state
	s.mu.Unlock()

	switch state {
	case StateReady:
		if err := s.transport.Healthy(ctx); err != nil {
			slog.Warn("Liveness probe failed", "error", err)
			s.toDegraded(fmt.Sprintf("liveness probe: %v", err))
		}
	case StateExhausted:
		s.Restart(ctx)
	case StateUninitialized, StateInitializing, StateDegraded:
		// A handshake or retry is already in flight.
	}
}

// RunLivenessProbe probes on a fixed interval until the context ends.
func (s *Supervisor) RunLivenessProbe(ctx context.Context, interval time.Duration) {
	for {
		if err := s.clock.Sleep(ctx, interval); err != nil {
			return
		}
		s.Probe(ctx)
	}
}

// Restart resets the retry budget and forces a new handshake. It is the
// operator path out of the exhausted state.
func (s *Supervisor) Restart(ctx context.Context) {
	s.mu.Lock()
	s.retryCount = 0
	s.mu.Unlock()

	slog.Info("Restarting transport connection")
	s.initialize(ctx)
}

// Send delivers one message through the transport. When the connection is
// not ready it fails immediately without queueing; the message is dropped
// and must be regenerated by the caller if it retries.
func (s *Supervisor) Send(ctx context.Context, to, text string) error {
	if !s.IsReady() {
		return common.ErrTransportNotReady
	}

	// The transport session is not assumed reentrant; all sends are
	// serialized through one owner.
	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	sendCtx, cancel := context.WithTimeout(ctx, s.cfg.SendTimeout)
	defer cancel()

	if err := s.transport.Send(sendCtx, to, text); err != nil {
		return fmt.Errorf("%w: %v", common.ErrSendFailed, err)
	}
	return nil
}

// IsReady reports whether the transport session is live.
func (s *Supervisor) IsReady() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateReady
}

// CurrentState returns the lifecycle state for diagnostics.
func (s *Supervisor) CurrentState() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ReconnectAttempts returns the current retry counter.
func (s *Supervisor) ReconnectAttempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.retryCount
}

// UptimeSeconds returns seconds elapsed since Run started.
func (s *Supervisor) UptimeSeconds() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.startTime.IsZero() {
		return 0
	}
	return int64(s.clock.Now().Sub(s.startTime).Seconds())
}
