// SPDX-License-Identifier: Apache-2.0

package config

import (
	"time"
)

// AgentConfig is the top-level configuration container for the field-device
// sync agent. Populated the same way as [ServerConfig]: environment
// variables, then flags, then an optional JSON file.
type AgentConfig struct {
	// Device identifies this field device to the remote store.
	Device Device `envPrefix:"DEVICE_"`

	// Storage holds the local encrypted database settings.
	Storage AgentStorage `envPrefix:"STORAGE_"`

	// Adapter holds the remote document store endpoint settings.
	Adapter AgentAdapter `envPrefix:"ADAPTER_"`

	// Sync tunes the synchronization engine: staging bounds, retry policy,
	// timeouts and worker cadence.
	Sync Sync `envPrefix:"SYNC_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Env: CONFIG
	JSONFilePath string `env:"CONFIG"`
}

// Device holds the agent's remote-access identity.
type Device struct {
	// ID is the stable device identifier registered with the server.
	// Env: DEVICE_ID
	ID string `env:"ID"`

	// Key is the device secret presented at login. Must be kept
	// confidential.
	// Env: DEVICE_KEY
	Key string `env:"KEY"`

	// Label is a human-readable device description (e.g. "clinic tablet 3").
	// Env: DEVICE_LABEL
	Label string `env:"LABEL"`

	// Passphrase is the secret the local data key is derived from. Must be
	// kept confidential.
	// Env: DEVICE_PASSPHRASE
	Passphrase string `env:"PASSPHRASE"`

	// KeySalt is the per-device key-derivation salt, assigned at
	// provisioning time and stable for the device's lifetime.
	// Env: DEVICE_KEY_SALT
	KeySalt string `env:"KEY_SALT"`
}

// AgentStorage holds the local store settings.
type AgentStorage struct {
	// DSN is the SQLite database file path of the encrypted local store.
	// Env: STORAGE_DSN
	DSN string `env:"DSN"`
}

// AgentAdapter holds the remote document store endpoint settings.
type AgentAdapter struct {
	// HTTPAddress is the base address of the remote document store
	// (e.g. "https://sync.example.org").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Sync tunes the synchronization engine.
type Sync struct {
	// StagingMaxDocs bounds the number of plaintext documents held in the
	// staging cache at once.
	// Env: SYNC_STAGING_MAX_DOCS
	StagingMaxDocs int `env:"STAGING_MAX_DOCS"`

	// StagingMaxBytes is the advisory byte bound reported by cache stats.
	// Env: SYNC_STAGING_MAX_BYTES
	StagingMaxBytes int64 `env:"STAGING_MAX_BYTES"`

	// RetryBaseDelay is the first automatic-retry delay after a retriable
	// failure; it doubles on every attempt.
	// Env: SYNC_RETRY_BASE_DELAY
	RetryBaseDelay time.Duration `env:"RETRY_BASE_DELAY"`

	// RetryMaxDelay caps the doubling retry delay.
	// Env: SYNC_RETRY_MAX_DELAY
	RetryMaxDelay time.Duration `env:"RETRY_MAX_DELAY"`

	// RetryMaxAttempts bounds the automatic retries that follow the initial
	// attempt of a cycle, so a budget of five allows six attempts in total.
	// After exhausting them the error state is sticky until an external
	// trigger.
	// Env: SYNC_RETRY_MAX_ATTEMPTS
	RetryMaxAttempts int `env:"RETRY_MAX_ATTEMPTS"`

	// PushTimeout bounds a bulk replication call.
	// Env: SYNC_PUSH_TIMEOUT
	PushTimeout time.Duration `env:"PUSH_TIMEOUT"`

	// SessionPushTimeout bounds a session-scoped replication call.
	// Env: SYNC_SESSION_PUSH_TIMEOUT
	SessionPushTimeout time.Duration `env:"SESSION_PUSH_TIMEOUT"`

	// SessionConcurrency is the worker-pool size for batch session sync.
	// Env: SYNC_SESSION_CONCURRENCY
	SessionConcurrency int `env:"SESSION_CONCURRENCY"`

	// Interval is the cadence of the periodic background sync job.
	// Env: SYNC_INTERVAL
	Interval time.Duration `env:"INTERVAL"`

	// ProbeInterval is the cadence of the connectivity watcher's health
	// probe.
	// Env: SYNC_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`

	// TokenLeeway is how close to expiry a stored credential may be before
	// the agent re-authenticates.
	// Env: SYNC_TOKEN_LEEWAY
	TokenLeeway time.Duration `env:"TOKEN_LEEWAY"`
}

// Sync defaults. Applied by GetAgentConfig for every field the merged
// sources left zero.
const (
	DefaultRetryBaseDelay     = 5 * time.Second
	DefaultRetryMaxDelay      = 60 * time.Second
	DefaultRetryMaxAttempts   = 5
	DefaultPushTimeout        = 120 * time.Second
	DefaultSessionPushTimeout = 60 * time.Second
	DefaultSessionConcurrency = 3
	DefaultSyncInterval       = 5 * time.Minute
	DefaultProbeInterval      = 30 * time.Second
	DefaultTokenLeeway        = time.Minute
)

func (s Sync) withDefaults() Sync {
	if s.RetryBaseDelay <= 0 {
		s.RetryBaseDelay = DefaultRetryBaseDelay
	}
	if s.RetryMaxDelay <= 0 {
		s.RetryMaxDelay = DefaultRetryMaxDelay
	}
	if s.RetryMaxAttempts <= 0 {
		s.RetryMaxAttempts = DefaultRetryMaxAttempts
	}
	if s.PushTimeout <= 0 {
		s.PushTimeout = DefaultPushTimeout
	}
	if s.SessionPushTimeout <= 0 {
		s.SessionPushTimeout = DefaultSessionPushTimeout
	}
	if s.SessionConcurrency <= 0 {
		s.SessionConcurrency = DefaultSessionConcurrency
	}
	if s.Interval <= 0 {
		s.Interval = DefaultSyncInterval
	}
	if s.ProbeInterval <= 0 {
		s.ProbeInterval = DefaultProbeInterval
	}
	if s.TokenLeeway <= 0 {
		s.TokenLeeway = DefaultTokenLeeway
	}
	return s
}

// GetAgentConfig loads, merges and validates the agent configuration. Source
// priority matches [GetServerConfig]. Sync fields left unset by every source
// receive the documented defaults.
func GetAgentConfig() (*AgentConfig, error) {
	cfg, err := newConfigBuilder[AgentConfig]().
		with(parseEnv[AgentConfig]).
		with(parseAgentFlags).
		withJSON(parseAgentJSON, func(c *AgentConfig) string { return c.JSONFilePath }).
		build()
	if err != nil {
		return nil, err
	}

	cfg.Sync = cfg.Sync.withDefaults()

	if err := validateAgentConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
