package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AgentConfig(t *testing.T) {
	t.Setenv("DEVICE_ID", "tablet-3")
	t.Setenv("DEVICE_KEY", "secret")
	t.Setenv("STORAGE_DSN", "/data/clinic.db")
	t.Setenv("ADAPTER_ADDRESS", "https://sync.example.org")
	t.Setenv("SYNC_RETRY_MAX_ATTEMPTS", "7")
	t.Setenv("SYNC_PUSH_TIMEOUT", "90s")

	cfg, err := parseEnv[AgentConfig]()
	require.NoError(t, err)

	assert.Equal(t, "tablet-3", cfg.Device.ID)
	assert.Equal(t, "secret", cfg.Device.Key)
	assert.Equal(t, "/data/clinic.db", cfg.Storage.DSN)
	assert.Equal(t, "https://sync.example.org", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 7, cfg.Sync.RetryMaxAttempts)
	assert.Equal(t, 90*time.Second, cfg.Sync.PushTimeout)
}

func TestParseEnv_ServerConfig(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", "0.0.0.0:9090")
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://localhost/clinsync")
	t.Setenv("APP_TOKEN_SIGN_KEY", "sign-key")
	t.Setenv("APP_TOKEN_DURATION", "12h")

	cfg, err := parseEnv[ServerConfig]()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.Server.HTTPAddress)
	assert.Equal(t, "postgres://localhost/clinsync", cfg.Storage.DB.DSN)
	assert.Equal(t, "sign-key", cfg.App.TokenSignKey)
	assert.Equal(t, 12*time.Hour, cfg.App.TokenDuration)
}
