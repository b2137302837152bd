package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigBuilder_EarlierSourceWins(t *testing.T) {
	first := func() (*AgentConfig, error) {
		return &AgentConfig{Adapter: AgentAdapter{HTTPAddress: "from-first"}}, nil
	}
	second := func() (*AgentConfig, error) {
		return &AgentConfig{
			Adapter: AgentAdapter{HTTPAddress: "from-second", RequestTimeout: 30 * time.Second},
		}, nil
	}

	cfg, err := newConfigBuilder[AgentConfig]().with(first).with(second).build()
	require.NoError(t, err)

	assert.Equal(t, "from-first", cfg.Adapter.HTTPAddress)
	// fields the first source left zero are filled from the second
	assert.Equal(t, 30*time.Second, cfg.Adapter.RequestTimeout)
}

func TestConfigBuilder_SourceErrorPoisonsBuild(t *testing.T) {
	boom := errors.New("boom")
	failing := func() (*AgentConfig, error) { return nil, boom }
	ok := func() (*AgentConfig, error) { return &AgentConfig{}, nil }

	_, err := newConfigBuilder[AgentConfig]().with(failing).with(ok).build()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestConfigBuilder_WithJSON_NoPathIsNoop(t *testing.T) {
	source := func() (*AgentConfig, error) { return &AgentConfig{}, nil }

	cfg, err := newConfigBuilder[AgentConfig]().
		with(source).
		withJSON(parseAgentJSON, func(c *AgentConfig) string { return c.JSONFilePath }).
		build()

	require.NoError(t, err)
	require.NotNil(t, cfg)
}

func TestSyncWithDefaults(t *testing.T) {
	s := Sync{}.withDefaults()

	assert.Equal(t, DefaultRetryBaseDelay, s.RetryBaseDelay)
	assert.Equal(t, DefaultRetryMaxDelay, s.RetryMaxDelay)
	assert.Equal(t, DefaultRetryMaxAttempts, s.RetryMaxAttempts)
	assert.Equal(t, DefaultPushTimeout, s.PushTimeout)
	assert.Equal(t, DefaultSessionPushTimeout, s.SessionPushTimeout)
	assert.Equal(t, DefaultSessionConcurrency, s.SessionConcurrency)
}

func TestSyncWithDefaults_DoesNotOverrideSetValues(t *testing.T) {
	s := Sync{RetryBaseDelay: time.Second, SessionConcurrency: 8}.withDefaults()

	assert.Equal(t, time.Second, s.RetryBaseDelay)
	assert.Equal(t, 8, s.SessionConcurrency)
}

func TestValidateAgentConfig(t *testing.T) {
	valid := &AgentConfig{
		Device:  Device{ID: "dev-1", Key: "secret"},
		Storage: AgentStorage{DSN: "clinic.db"},
		Adapter: AgentAdapter{HTTPAddress: "https://sync.example.org"},
	}
	require.NoError(t, validateAgentConfig(valid))

	missingRemote := *valid
	missingRemote.Adapter.HTTPAddress = ""
	assert.ErrorIs(t, validateAgentConfig(&missingRemote), ErrNoRemoteAddress)

	missingDevice := *valid
	missingDevice.Device.Key = ""
	assert.ErrorIs(t, validateAgentConfig(&missingDevice), ErrNoDeviceIdentity)
}

func TestValidateServerConfig(t *testing.T) {
	valid := &ServerConfig{
		App:     ServerApp{TokenSignKey: "sign-key"},
		Storage: ServerStorage{DB: DB{DSN: "postgres://localhost/clinsync"}},
		Server:  Server{HTTPAddress: "0.0.0.0:8080"},
	}
	require.NoError(t, validateServerConfig(valid))

	missingKey := *valid
	missingKey.App.TokenSignKey = ""
	assert.ErrorIs(t, validateServerConfig(&missingKey), ErrNoTokenSignKey)
}
