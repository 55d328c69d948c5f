package transport

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/investbot-app/investbot/internal/common"
	"github.com/investbot-app/investbot/internal/service"
)

func TestLoopbackHandshake(t *testing.T) {
	l := NewLoopback()

	require.NoError(t, l.Connect(context.Background()))

	ev := <-l.Events()
	assert.Equal(t, service.TransportAuthenticated, ev.Kind)
	ev = <-l.Events()
	assert.Equal(t, service.TransportReady, ev.Kind)
	assert.NoError(t, l.Healthy(context.Background()))
}

func TestLoopbackSendRequiresLiveSession(t *testing.T) {
	l := NewLoopback()

	err := l.Send(context.Background(), "5511999990000", "olá")
	assert.ErrorIs(t, err, common.ErrSendFailed)

	require.NoError(t, l.Connect(context.Background()))
	require.NoError(t, l.Send(context.Background(), "5511999990000", "olá"))

	outbox := l.Outbox()
	require.Len(t, outbox, 1)
	assert.Equal(t, "5511999990000", outbox[0].From)
	assert.Equal(t, "olá", outbox[0].Text)
}

func TestLoopbackInject(t *testing.T) {
	l := NewLoopback()

	l.Inject("5511988887777", "Gastei 50 reais")

	msg := <-l.Messages()
	assert.Equal(t, "5511988887777", msg.From)
	assert.Equal(t, "Gastei 50 reais", msg.Text)
	assert.False(t, msg.Timestamp.IsZero())
}

func TestLoopbackDrop(t *testing.T) {
	l := NewLoopback()
	require.NoError(t, l.Connect(context.Background()))
	<-l.Events()
	<-l.Events()

	l.Drop("network blip")

	ev := <-l.Events()
	assert.Equal(t, service.TransportDisconnected, ev.Kind)
	assert.Equal(t, "network blip", ev.Reason)
	assert.ErrorIs(t, l.Healthy(context.Background()), common.ErrTransportNotReady)
}
