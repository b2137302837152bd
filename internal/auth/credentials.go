// SPDX-License-Identifier: Apache-2.0

// Package auth keeps the agent's bearer token valid across sync cycles.
package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fieldcare/clinsync/internal/adapter"
	"github.com/fieldcare/clinsync/internal/logger"
	"github.com/fieldcare/clinsync/internal/utils"
	"github.com/fieldcare/clinsync/models"
)

//go:generate mockgen -source=credentials.go -destination=../mock/credentials_mock.go -package=mock

// CredentialProvider guarantees the remote adapter holds a usable token
// before an authenticated call is made.
type CredentialProvider interface {
	// EnsureValid re-authenticates if the stored token is missing or expires
	// within the configured leeway. Safe for concurrent use; concurrent
	// callers share a single login round-trip.
	EnsureValid(ctx context.Context) error

	// Invalidate drops the stored token so the next EnsureValid performs a
	// fresh login. Called after the server rejects a request with 401.
	Invalidate()
}

type credentialProvider struct {
	remote adapter.RemoteStore
	creds  models.DeviceCredentials
	leeway time.Duration
	logger *logger.Logger

	mu sync.Mutex
}

// NewCredentialProvider builds a provider that logs in with the given device
// credentials whenever the adapter's token is absent or about to expire.
func NewCredentialProvider(remote adapter.RemoteStore, creds models.DeviceCredentials, leeway time.Duration, log *logger.Logger) CredentialProvider {
	return &credentialProvider{
		remote: remote,
		creds:  creds,
		leeway: leeway,
		logger: log,
	}
}

func (p *credentialProvider) EnsureValid(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	token := p.remote.Token()
	if token != "" && !utils.TokenExpiresWithin(token, p.leeway) {
		return nil
	}

	p.logger.Debug().Str("device_id", p.creds.DeviceID).Msg("token missing or stale, re-authenticating")

	if _, err := p.remote.Login(ctx, p.creds); err != nil {
		return fmt.Errorf("device login failed: %w", err)
	}

	return nil
}

func (p *credentialProvider) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.remote.SetToken("")
}
