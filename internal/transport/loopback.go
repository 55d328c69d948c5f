// Package transport contains chat channel implementations. The loopback
// transport runs fully in-process and backs local development and tests;
// a real channel plugs in by implementing service.Transport.
package transport

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/investbot-app/investbot/internal/common"
	"github.com/investbot-app/investbot/internal/service"
)

// Loopback is an in-process transport. Connect succeeds immediately,
// outbound messages are recorded, and inbound traffic is injected by the
// caller.
type Loopback struct {
	events   chan service.TransportEvent
	messages chan service.InboundMessage
	mu       sync.Mutex
	outbox   []service.InboundMessage
	alive    bool
}

// NewLoopback creates a disconnected loopback transport.
func NewLoopback() *Loopback {
	return &Loopback{
		events:   make(chan service.TransportEvent, 16),
		messages: make(chan service.InboundMessage, 64),
	}
}

// Connect marks the session alive and emits the handshake events.
func (l *Loopback) Connect(_ context.Context) error {
	l.mu.Lock()
	l.alive = true
	l.mu.Unlock()

	l.events <- service.TransportEvent{Kind: service.TransportAuthenticated}
	l.events <- service.TransportEvent{Kind: service.TransportReady}
	return nil
}

// Disconnect marks the session dead and emits a disconnect event.
func (l *Loopback) Disconnect() error {
	l.mu.Lock()
	l.alive = false
	l.mu.Unlock()

	l.events <- service.TransportEvent{Kind: service.TransportDisconnected, Reason: "local disconnect"}
	return nil
}

// Send records the outbound message. Sending on a dead session fails the
// way a real channel would.
func (l *Loopback) Send(_ context.Context, to, text string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.alive {
		return common.ErrSendFailed
	}
	l.outbox = append(l.outbox, service.InboundMessage{
		Timestamp: time.Now(),
		From:      to,
		Text:      text,
	})
	slog.Debug("Loopback delivered message", "to", to)
	return nil
}

// Healthy reports whether the session is alive.
func (l *Loopback) Healthy(_ context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.alive {
		return common.ErrTransportNotReady
	}
	return nil
}

// Events delivers lifecycle signals.
func (l *Loopback) Events() <-chan service.TransportEvent {
	return l.events
}

// Messages delivers injected inbound messages.
func (l *Loopback) Messages() <-chan service.InboundMessage {
	return l.messages
}

// Inject queues an inbound message as if a user had sent it.
func (l *Loopback) Inject(from, text string) {
	l.messages <- service.InboundMessage{
		Timestamp: time.Now(),
		From:      from,
		Text:      text,
	}
}

// Drop simulates a connection loss without a clean disconnect.
func (l *Loopback) Drop(reason string) {
	l.mu.Lock()
	l.alive = false
	l.mu.Unlock()

	l.events <- service.TransportEvent{Kind: service.TransportDisconnected, Reason: reason}
}

// Outbox returns a copy of every message sent so far.
func (l *Loopback) Outbox() []service.InboundMessage {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]service.InboundMessage, len(l.outbox))
	copy(out, l.outbox)
	return out
}
