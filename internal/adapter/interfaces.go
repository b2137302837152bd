// SPDX-License-Identifier: Apache-2.0

// Package adapter provides transport-layer abstractions for communicating
// with the remote document store.
//
// The primary abstraction is [RemoteStore], which decouples the sync engine
// from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPRemoteStore]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrUnauthorized] for 401, [ErrServer] for 5xx).
package adapter

import (
	"context"

	"github.com/fieldcare/clinsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_store_mock.go -package=mock

// RemoteStore defines transport-agnostic communication with the remote
// document store. Implementations are responsible for serialisation,
// authentication header management, and mapping transport-level errors to
// the sentinel values defined in this package.
type RemoteStore interface {
	// SetToken stores the bearer token attached to all subsequent
	// authenticated requests. Called after a successful Login.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Login authenticates the device and returns the issued bearer token.
	// On success the token is also stored via SetToken.
	Login(ctx context.Context, creds models.DeviceCredentials) (string, error)

	// Push replicates a batch of documents. baseRevisions carries, per
	// document id, the revision the agent believes is current remotely. The
	// server returns one outcome per document: accepted (revision advanced),
	// conflict (divergent remote revision, current remote document
	// attached), or error.
	Push(ctx context.Context, docs []models.Document, baseRevisions map[string]string) ([]models.PushOutcome, error)

	// WriteAuthoritative writes a merged document as the authoritative next
	// revision, without layering it as another edit over the conflict.
	// Returns the revision the server assigned.
	WriteAuthoritative(ctx context.Context, doc models.Document) (string, error)

	// Fetch retrieves full documents by id.
	Fetch(ctx context.Context, ids []string) ([]models.Document, error)

	// States fetches lightweight revision descriptors for every document
	// visible to the authenticated device, without shipping payloads.
	States(ctx context.Context) ([]models.DocumentState, error)

	// Ping probes server reachability. Used by the connectivity watcher.
	Ping(ctx context.Context) error
}
