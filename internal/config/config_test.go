package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/investbot-app/investbot/internal/common"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoadWithDefaults(t *testing.T) {
	resetViper(t)
	SetDefaults()

	cfg, err := Load()

	require.NoError(t, err)
	assert.NotEmpty(t, cfg.DatabasePath)
	assert.Equal(t, ":3000", cfg.ServerAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.SendTimeout)
	assert.Equal(t, 5*time.Second, cfg.RetryBaseDelay)
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, 2*time.Second, cfg.BroadcastDelay)
	assert.Equal(t, 30*time.Minute, cfg.ProbeInterval)
}

func TestLoadOverrides(t *testing.T) {
	resetViper(t)
	SetDefaults()
	viper.Set("database.path", "/tmp/test.db")
	viper.Set("admin.phone", "5511999990000")
	viper.Set("transport.max_retries", 3)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "/tmp/test.db", cfg.DatabasePath)
	assert.Equal(t, "5511999990000", cfg.AdminPhone)
	assert.Equal(t, 3, cfg.MaxRetries)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
		want  error
	}{
		{"empty database path", "database.path", "", common.ErrMissingConfig},
		{"empty server addr", "server.addr", "", common.ErrMissingConfig},
		{"zero send timeout", "transport.send_timeout", "0s", common.ErrInvalidConfig},
		{"negative retries", "transport.max_retries", -1, common.ErrInvalidConfig},
		{"negative broadcast delay", "scheduler.broadcast_delay", "-1s", common.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			SetDefaults()
			viper.Set(tt.key, tt.value)

			_, err := Load()

			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("INVESTBOT_TEST_DIR", "/srv/data")

	assert.Equal(t, "/srv/data/investbot.db", ExpandPath("$INVESTBOT_TEST_DIR/investbot.db"))
	assert.Equal(t, "", ExpandPath(""))
	assert.NotContains(t, ExpandPath("~/investbot.db"), "~")
}
